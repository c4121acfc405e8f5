package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/center-locator/app/models"
)

// CacheStats thống kê cache
type CacheStats struct {
	Backend    string  `json:"backend"`
	HitRate    float64 `json:"hit_rate"`
	TotalHits  int64   `json:"total_hits"`
	TotalMiss  int64   `json:"total_miss"`
	TotalItems int64   `json:"total_items"`
}

// IAnswerCache interface định nghĩa các method cần thiết cho cache câu trả lời
type IAnswerCache interface {
	// Get lấy câu trả lời từ cache
	Get(ctx context.Context, key string) (*models.ChatAnswer, bool, error)

	// Set lưu câu trả lời vào cache
	Set(ctx context.Context, key string, answer *models.ChatAnswer) error

	// Delete xóa một key khỏi cache
	Delete(ctx context.Context, key string) error

	// Clear xóa tất cả cache
	Clear(ctx context.Context) error

	// GetStats lấy thống kê cache
	GetStats(ctx context.Context) (*CacheStats, error)

	// Close đóng kết nối (nếu cần)
	Close() error
}

// AnswerCacheKey tạo cache key từ phiên bản catalog và message đã chuẩn hoá.
// Đổi catalog thì key đổi theo, nên câu trả lời cũ không bao giờ bị dùng lại.
func AnswerCacheKey(catalogVersion, normalizedMessage string) string {
	sum := sha256.Sum256([]byte(catalogVersion + "\x00" + normalizedMessage))
	return catalogVersion + ":" + hex.EncodeToString(sum[:])
}

func hitRate(hits, misses int64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}
