package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/center-locator/app/models"
)

// HybridAnswerCache cache kết hợp memory (L1) + Redis (L2)
type HybridAnswerCache struct {
	memory *MemoryAnswerCache // L1 cache - trong process
	redis  *RedisAnswerCache  // L2 cache - chia sẻ giữa các replica
	logger *zap.Logger
}

// NewHybridAnswerCache tạo mới hybrid cache
func NewHybridAnswerCache(memory *MemoryAnswerCache, redis *RedisAnswerCache, logger *zap.Logger) *HybridAnswerCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HybridAnswerCache{
		memory: memory,
		redis:  redis,
		logger: logger,
	}
}

// Get lấy câu trả lời (memory trước, Redis sau)
func (hc *HybridAnswerCache) Get(ctx context.Context, key string) (*models.ChatAnswer, bool, error) {
	// 1. Thử L1
	if answer, found, _ := hc.memory.Get(ctx, key); found {
		return answer, true, nil
	}

	// 2. Thử L2
	answer, found, err := hc.redis.Get(ctx, key)
	if err != nil {
		// Redis lỗi thì coi như miss, request vẫn được resolve
		hc.logger.Warn("Redis cache error, treating as miss", zap.Error(err))
		return nil, false, nil
	}
	if !found {
		return nil, false, nil
	}

	// 3. Có trong Redis thì đồng bộ về memory
	_ = hc.memory.Set(ctx, key, answer)
	hc.logger.Debug("L2 cache hit (Redis)", zap.String("key", key))
	return answer, true, nil
}

// Set lưu vào cả 2 tầng
func (hc *HybridAnswerCache) Set(ctx context.Context, key string, answer *models.ChatAnswer) error {
	_ = hc.memory.Set(ctx, key, answer)
	if err := hc.redis.Set(ctx, key, answer); err != nil {
		return fmt.Errorf("set l2: %w", err)
	}
	return nil
}

// Delete xóa key khỏi cả 2 tầng
func (hc *HybridAnswerCache) Delete(ctx context.Context, key string) error {
	_ = hc.memory.Delete(ctx, key)
	return hc.redis.Delete(ctx, key)
}

// Clear xóa toàn bộ cache (memory và Redis)
func (hc *HybridAnswerCache) Clear(ctx context.Context) error {
	_ = hc.memory.Clear(ctx)
	if err := hc.redis.Clear(ctx); err != nil {
		return fmt.Errorf("clear l2: %w", err)
	}
	hc.logger.Info("Cleared hybrid cache (memory + Redis)")
	return nil
}

// GetStats kết hợp thống kê của 2 tầng. Items lấy theo Redis vì L1 là tập con.
func (hc *HybridAnswerCache) GetStats(ctx context.Context) (*CacheStats, error) {
	mem, _ := hc.memory.GetStats(ctx)
	red, err := hc.redis.GetStats(ctx)
	if err != nil {
		hc.logger.Warn("Cannot read Redis stats", zap.Error(err))
		mem.Backend = "hybrid"
		return mem, nil
	}

	// L1 miss mà L2 hit vẫn là hit
	hits := mem.TotalHits + red.TotalHits
	misses := red.TotalMiss
	return &CacheStats{
		Backend:    "hybrid",
		HitRate:    hitRate(hits, misses),
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: red.TotalItems,
	}, nil
}

// Close đóng cả 2 tầng
func (hc *HybridAnswerCache) Close() error {
	return errors.Join(hc.memory.Close(), hc.redis.Close())
}
