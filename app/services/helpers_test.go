package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/center-locator/app/models"
	"github.com/center-locator/internal/normalizer"
	"github.com/center-locator/internal/resolver"
	"github.com/center-locator/internal/search"
)

const fixturePath = "../../internal/resolver/testdata/centers.json"

// stubSource nguồn catalog có thể đổi dữ liệu giữa các lần Load
type stubSource struct {
	mu    sync.Mutex
	rows  []resolver.CenterRow
	err   error
	loads int
}

func (s *stubSource) Load(ctx context.Context) ([]resolver.CenterRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	if s.err != nil {
		return nil, s.err
	}
	return s.rows, nil
}

func (s *stubSource) Describe() string { return "stub" }

func (s *stubSource) set(rows []resolver.CenterRow, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows, s.err = rows, err
}

// fakeMirror ghi lại các lần publish
type fakeMirror struct {
	mu        sync.Mutex
	published []string
	err       error
}

func (m *fakeMirror) Publish(ctx context.Context, version string, docs []models.CenterDocument) (*search.PublishReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.published = append(m.published, version)
	return &search.PublishReport{Index: "centers", CatalogVersion: version, Documents: len(docs), Batches: 1}, nil
}

func (m *fakeMirror) Search(ctx context.Context, query string, limit int64) ([]models.CenterDocument, int64, error) {
	return []models.CenterDocument{{ID: "LW-0323", Code: "ES0323", Name: "Padilla"}}, 1, nil
}

var errSourceDown = errors.New("source down")

func newTestResolver() *resolver.Resolver {
	return resolver.NewResolver(normalizer.Default(), nil)
}

func fixtureRows(t *testing.T) []resolver.CenterRow {
	t.Helper()
	rows, err := NewFileCatalogSource(fixturePath).Load(context.Background())
	require.NoError(t, err)
	return rows
}

// newLoadedCatalogService catalog service đã nạp fixture
func newLoadedCatalogService(t *testing.T, mirror CatalogMirror) (*CatalogService, *stubSource) {
	t.Helper()
	src := &stubSource{rows: fixtureRows(t)}
	cs := NewCatalogService(src, newTestResolver(), mirror, nil)
	_, err := cs.Reload(context.Background())
	require.NoError(t, err)
	return cs, src
}
