package services

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/center-locator/app/models"
	"github.com/center-locator/internal/search"
)

// AdminService service quản lý admin functions
type AdminService struct {
	catalog   *CatalogService
	chat      *ChatService
	logger    *zap.Logger
	startedAt time.Time
}

// SystemStats thống kê hệ thống
type SystemStats struct {
	Uptime      string                 `json:"uptime"`
	Catalog     CatalogStats           `json:"catalog"`
	Cache       *CacheStats            `json:"cache,omitempty"`
	CacheError  string                 `json:"cache_error,omitempty"`
	Goroutines  int                    `json:"goroutines"`
	MemoryUsage map[string]interface{} `json:"memory_usage"`
}

// NewAdminService tạo mới AdminService
func NewAdminService(catalog *CatalogService, chat *ChatService, logger *zap.Logger) *AdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{
		catalog:   catalog,
		chat:      chat,
		logger:    logger,
		startedAt: time.Now(),
	}
}

// GetSystemStats lấy thống kê hệ thống
func (as *AdminService) GetSystemStats(ctx context.Context) *SystemStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	stats := &SystemStats{
		Uptime:     time.Since(as.startedAt).Round(time.Second).String(),
		Catalog:    as.catalog.Stats(),
		Goroutines: runtime.NumGoroutine(),
		MemoryUsage: map[string]interface{}{
			"alloc_mb":       bToMb(m.Alloc),
			"total_alloc_mb": bToMb(m.TotalAlloc),
			"sys_mb":         bToMb(m.Sys),
			"num_gc":         m.NumGC,
		},
	}

	cacheStats, err := as.chat.CacheStats(ctx)
	if err != nil {
		as.logger.Warn("Cannot read cache stats", zap.Error(err))
		stats.CacheError = err.Error()
	}
	stats.Cache = cacheStats

	return stats
}

// ReloadCatalog nạp lại catalog; nếu catalog đổi thì xoá cache cho gọn bộ nhớ
func (as *AdminService) ReloadCatalog(ctx context.Context) (*ReloadReport, error) {
	report, err := as.catalog.Reload(ctx)
	if err != nil {
		as.logger.Error("Catalog reload failed", zap.Error(err))
		return nil, err
	}

	if report.Changed {
		if err := as.chat.InvalidateCache(ctx); err != nil {
			// Key có version nên cache cũ không bị dùng lại, chỉ log
			as.logger.Warn("Cache clear after reload failed", zap.Error(err))
		}
	}
	return report, nil
}

// InvalidateCache xoá toàn bộ cache câu trả lời
func (as *AdminService) InvalidateCache(ctx context.Context) error {
	if err := as.chat.InvalidateCache(ctx); err != nil {
		return fmt.Errorf("invalidate cache: %w", err)
	}
	as.logger.Info("Answer cache invalidated")
	return nil
}

// PublishCatalog đẩy snapshot hiện tại sang Meilisearch
func (as *AdminService) PublishCatalog(ctx context.Context) (*search.PublishReport, error) {
	return as.catalog.Publish(ctx)
}

// SearchCatalog tra cứu catalog qua Meilisearch
func (as *AdminService) SearchCatalog(ctx context.Context, query string, limit int64) ([]models.CenterDocument, int64, error) {
	return as.catalog.SearchMirror(ctx, query, limit)
}

func bToMb(b uint64) uint64 {
	return b / 1024 / 1024
}
