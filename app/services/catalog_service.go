package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/center-locator/app/metrics"
	"github.com/center-locator/app/models"
	"github.com/center-locator/internal/resolver"
	"github.com/center-locator/internal/search"
)

// CatalogMirror bản sao catalog cho operator tra cứu (Meilisearch)
type CatalogMirror interface {
	Publish(ctx context.Context, version string, docs []models.CenterDocument) (*search.PublishReport, error)
	Search(ctx context.Context, query string, limit int64) ([]models.CenterDocument, int64, error)
}

// ReloadReport kết quả một lần nạp catalog
type ReloadReport struct {
	Source          string                `json:"source"`
	Version         string                `json:"version"`
	PreviousVersion string                `json:"previous_version,omitempty"`
	Changed         bool                  `json:"changed"`
	Centers         int                   `json:"centers"`
	Cities          int                   `json:"cities"`
	Provinces       int                   `json:"provinces"`
	Skipped         []resolver.SkippedRow `json:"skipped,omitempty"`
	DurationMs      int64                 `json:"duration_ms"`
	Mirror          *search.PublishReport `json:"mirror,omitempty"`
	MirrorError     string                `json:"mirror_error,omitempty"`
}

// CatalogStats trạng thái của catalog đang active
type CatalogStats struct {
	Source          string     `json:"source"`
	Version         string     `json:"version"`
	Centers         int        `json:"centers"`
	Cities          int        `json:"cities"`
	Provinces       int        `json:"provinces"`
	Skipped         int        `json:"skipped"`
	LoadedAt        *time.Time `json:"loaded_at,omitempty"`
	LastReloadError string     `json:"last_reload_error,omitempty"`
	MirrorEnabled   bool       `json:"mirror_enabled"`
}

// CatalogService giữ snapshot catalog hiện tại và nạp lại khi được yêu cầu.
// Query đọc snapshot qua atomic pointer nên không bao giờ thấy catalog nạp dở.
type CatalogService struct {
	source   CatalogSource
	resolver *resolver.Resolver
	mirror   CatalogMirror
	logger   *zap.Logger

	current  atomic.Pointer[resolver.LoadedCatalog]
	reloadMu sync.Mutex

	stateMu   sync.RWMutex
	loadedAt  time.Time
	lastError string
}

// NewCatalogService tạo mới CatalogService. mirror có thể nil.
func NewCatalogService(source CatalogSource, r *resolver.Resolver, mirror CatalogMirror, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	cs := &CatalogService{
		source:   source,
		resolver: r,
		mirror:   mirror,
		logger:   logger,
	}
	cs.current.Store(r.BuildIndex(nil))
	return cs
}

// Init nạp catalog lần đầu. Lỗi không làm dừng process: catalog rỗng được
// giữ nguyên và mọi query nhận câu trả lời "unavailable".
func (cs *CatalogService) Init(ctx context.Context) error {
	if _, err := cs.Reload(ctx); err != nil {
		cs.logger.Error("Initial catalog load failed, serving empty catalog",
			zap.String("source", cs.source.Describe()),
			zap.Error(err))
	}
	return nil
}

// Reload đọc lại nguồn và thay snapshot. Các lần reload chạy tuần tự;
// nếu lỗi thì snapshot cũ vẫn active.
func (cs *CatalogService) Reload(ctx context.Context) (*ReloadReport, error) {
	cs.reloadMu.Lock()
	defer cs.reloadMu.Unlock()

	start := time.Now()
	previous := cs.current.Load()

	rows, err := cs.source.Load(ctx)
	if err != nil {
		return nil, cs.reloadFailed(fmt.Errorf("load catalog from %s: %w", cs.source.Describe(), err))
	}

	cat := cs.resolver.BuildIndex(rows)
	for _, s := range cat.Skipped {
		cs.logger.Warn("Catalog row skipped",
			zap.Int("index", s.Index),
			zap.String("id", s.ID),
			zap.String("code", s.Code),
			zap.String("reason", s.Reason))
	}
	if cat.Empty() {
		return nil, cs.reloadFailed(fmt.Errorf("%s: %w", cs.source.Describe(), ErrEmptyCatalog))
	}

	cs.current.Store(cat)

	cs.stateMu.Lock()
	cs.loadedAt = time.Now()
	cs.lastError = ""
	cs.stateMu.Unlock()

	metrics.CatalogCenters.Set(float64(cat.Len()))
	metrics.CatalogSkippedRows.Set(float64(len(cat.Skipped)))
	metrics.CatalogReloadsTotal.WithLabelValues("success").Inc()

	report := &ReloadReport{
		Source:          cs.source.Describe(),
		Version:         cat.Version,
		PreviousVersion: previous.Version,
		Changed:         previous.Version != cat.Version,
		Centers:         cat.Len(),
		Cities:          len(cat.Cities),
		Provinces:       len(cat.Provinces),
		Skipped:         cat.Skipped,
		DurationMs:      time.Since(start).Milliseconds(),
	}

	cs.logger.Info("Catalog loaded",
		zap.String("source", report.Source),
		zap.String("version", report.Version),
		zap.Int("centers", report.Centers),
		zap.Int("skipped", len(report.Skipped)),
		zap.Bool("changed", report.Changed))

	// Mirror lỗi chỉ log, không ảnh hưởng snapshot
	if cs.mirror != nil && report.Changed {
		mirror, err := cs.mirror.Publish(ctx, cat.Version, CenterDocuments(cat))
		if err != nil {
			cs.logger.Warn("Catalog mirror publish failed", zap.Error(err))
			report.MirrorError = err.Error()
		}
		report.Mirror = mirror
	}

	return report, nil
}

func (cs *CatalogService) reloadFailed(err error) error {
	metrics.CatalogReloadsTotal.WithLabelValues("failed").Inc()
	cs.stateMu.Lock()
	cs.lastError = err.Error()
	cs.stateMu.Unlock()
	return err
}

// Current trả về snapshot đang active, không bao giờ nil
func (cs *CatalogService) Current() *resolver.LoadedCatalog {
	return cs.current.Load()
}

// Resolver resolver dùng để build snapshot
func (cs *CatalogService) Resolver() *resolver.Resolver {
	return cs.resolver
}

// MirrorEnabled báo có cấu hình Meilisearch hay không
func (cs *CatalogService) MirrorEnabled() bool {
	return cs.mirror != nil
}

// Publish đẩy snapshot hiện tại sang mirror
func (cs *CatalogService) Publish(ctx context.Context) (*search.PublishReport, error) {
	if cs.mirror == nil {
		return nil, ErrMirrorDisabled
	}
	cat := cs.Current()
	if cat.Empty() {
		return nil, ErrEmptyCatalog
	}
	return cs.mirror.Publish(ctx, cat.Version, CenterDocuments(cat))
}

// SearchMirror tra cứu trong mirror
func (cs *CatalogService) SearchMirror(ctx context.Context, query string, limit int64) ([]models.CenterDocument, int64, error) {
	if cs.mirror == nil {
		return nil, 0, ErrMirrorDisabled
	}
	return cs.mirror.Search(ctx, query, limit)
}

// Stats trạng thái catalog
func (cs *CatalogService) Stats() CatalogStats {
	cat := cs.Current()

	cs.stateMu.RLock()
	defer cs.stateMu.RUnlock()

	stats := CatalogStats{
		Source:          cs.source.Describe(),
		Version:         cat.Version,
		Centers:         cat.Len(),
		Cities:          len(cat.Cities),
		Provinces:       len(cat.Provinces),
		Skipped:         len(cat.Skipped),
		LastReloadError: cs.lastError,
		MirrorEnabled:   cs.mirror != nil,
	}
	if !cs.loadedAt.IsZero() {
		loadedAt := cs.loadedAt
		stats.LoadedAt = &loadedAt
	}
	return stats
}

// CenterDocuments chuyển snapshot sang document cho Meilisearch
func CenterDocuments(cat *resolver.LoadedCatalog) []models.CenterDocument {
	docs := make([]models.CenterDocument, 0, cat.Len())
	for _, rec := range cat.Records {
		docs = append(docs, models.CenterDocument{
			ID:             rec.ID,
			Code:           rec.Code,
			Name:           rec.Name,
			City:           rec.City,
			Province:       rec.Province,
			Address:        rec.Address,
			NormName:       rec.NormName,
			NormCity:       rec.NormCity,
			NormProvince:   rec.NormProvince,
			NormAddress:    rec.NormAddress,
			CatalogVersion: cat.Version,
		})
	}
	return docs
}
