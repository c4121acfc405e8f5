package resolver

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/center-locator/internal/normalizer"
)

type fixtureFile struct {
	Centers []struct {
		ID       string `json:"id_centro"`
		Code     string `json:"codigo"`
		Name     string `json:"nombre"`
		City     string `json:"poblacion"`
		Province string `json:"provincia"`
		Address  string `json:"direccion"`
	} `json:"centers"`
}

func newTestResolver() *Resolver {
	return NewResolver(normalizer.Default(), nil)
}

func fixtureRows(t *testing.T) []CenterRow {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("testdata", "centers.json"))
	require.NoError(t, err)

	var f fixtureFile
	require.NoError(t, json.Unmarshal(data, &f))

	rows := make([]CenterRow, 0, len(f.Centers))
	for _, c := range f.Centers {
		rows = append(rows, CenterRow{ID: c.ID, Code: c.Code, Name: c.Name, City: c.City, Province: c.Province, Address: c.Address})
	}
	return rows
}

func loadFixture(t *testing.T) (*Resolver, *LoadedCatalog) {
	t.Helper()

	r := newTestResolver()
	cat := r.BuildIndex(fixtureRows(t))
	require.Equal(t, 8, cat.Len())
	return r, cat
}

func codes(result MatchResult) []string {
	out := make([]string, 0, len(result.Candidates))
	for _, c := range result.Candidates {
		out = append(out, c.Record.Code)
	}
	return out
}
