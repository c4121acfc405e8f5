package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/center-locator/app/models"
)

// MemoryAnswerCache cache in-memory có giới hạn số phần tử và TTL
type MemoryAnswerCache struct {
	lru    *expirable.LRU[string, *models.ChatAnswer]
	hits   atomic.Int64
	misses atomic.Int64
}

// NewMemoryAnswerCache tạo mới MemoryAnswerCache
func NewMemoryAnswerCache(size int, ttl time.Duration) *MemoryAnswerCache {
	if size <= 0 {
		size = 10000
	}
	return &MemoryAnswerCache{
		lru: expirable.NewLRU[string, *models.ChatAnswer](size, nil, ttl),
	}
}

// Get lấy câu trả lời từ cache
func (mc *MemoryAnswerCache) Get(ctx context.Context, key string) (*models.ChatAnswer, bool, error) {
	answer, ok := mc.lru.Get(key)
	if !ok {
		mc.misses.Add(1)
		return nil, false, nil
	}
	mc.hits.Add(1)
	return answer, true, nil
}

// Set lưu câu trả lời vào cache
func (mc *MemoryAnswerCache) Set(ctx context.Context, key string, answer *models.ChatAnswer) error {
	mc.lru.Add(key, answer)
	return nil
}

// Delete xóa item khỏi cache
func (mc *MemoryAnswerCache) Delete(ctx context.Context, key string) error {
	mc.lru.Remove(key)
	return nil
}

// Clear xóa toàn bộ cache
func (mc *MemoryAnswerCache) Clear(ctx context.Context) error {
	mc.lru.Purge()
	return nil
}

// GetStats lấy thống kê cache
func (mc *MemoryAnswerCache) GetStats(ctx context.Context) (*CacheStats, error) {
	hits, misses := mc.hits.Load(), mc.misses.Load()
	return &CacheStats{
		Backend:    "memory",
		HitRate:    hitRate(hits, misses),
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: int64(mc.lru.Len()),
	}, nil
}

// Close không làm gì với cache in-memory
func (mc *MemoryAnswerCache) Close() error {
	return nil
}
