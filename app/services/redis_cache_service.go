package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/center-locator/app/models"
)

const redisKeyPrefix = "center_locator:"

// RedisAnswerCache cache câu trả lời dùng Redis, chia sẻ giữa các replica
type RedisAnswerCache struct {
	client *redis.Client
	logger *zap.Logger
	prefix string
	ttl    time.Duration

	// Stats
	hits   atomic.Int64
	misses atomic.Int64
}

// NewRedisAnswerCache tạo mới Redis cache từ URL và kiểm tra kết nối
func NewRedisAnswerCache(ctx context.Context, redisURL string, ttl time.Duration, logger *zap.Logger) (*RedisAnswerCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	// Test connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	return NewRedisAnswerCacheWithClient(client, ttl, logger), nil
}

// NewRedisAnswerCacheWithClient bọc một client đã có sẵn
func NewRedisAnswerCacheWithClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisAnswerCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisAnswerCache{
		client: client,
		logger: logger,
		prefix: redisKeyPrefix,
		ttl:    ttl,
	}
}

// Get lấy câu trả lời từ cache
func (rc *RedisAnswerCache) Get(ctx context.Context, key string) (*models.ChatAnswer, bool, error) {
	cacheKey := rc.prefix + key

	val, err := rc.client.Get(ctx, cacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		rc.misses.Add(1)
		return nil, false, nil
	}
	if err != nil {
		rc.logger.Error("Redis get failed", zap.Error(err), zap.String("key", cacheKey))
		return nil, false, err
	}

	var answer models.ChatAnswer
	if err := json.Unmarshal(val, &answer); err != nil {
		// Dữ liệu hỏng thì coi như miss và xoá đi
		rc.logger.Warn("Corrupted cache entry", zap.Error(err), zap.String("key", cacheKey))
		_ = rc.client.Del(ctx, cacheKey).Err()
		rc.misses.Add(1)
		return nil, false, nil
	}

	rc.hits.Add(1)
	return &answer, true, nil
}

// Set lưu câu trả lời vào cache
func (rc *RedisAnswerCache) Set(ctx context.Context, key string, answer *models.ChatAnswer) error {
	data, err := json.Marshal(answer)
	if err != nil {
		return fmt.Errorf("marshal answer: %w", err)
	}

	if err := rc.client.Set(ctx, rc.prefix+key, data, rc.ttl).Err(); err != nil {
		rc.logger.Error("Redis set failed", zap.Error(err), zap.String("key", key))
		return err
	}
	return nil
}

// Delete xóa key khỏi cache
func (rc *RedisAnswerCache) Delete(ctx context.Context, key string) error {
	return rc.client.Del(ctx, rc.prefix+key).Err()
}

// Clear xóa toàn bộ key có prefix, dùng SCAN thay vì KEYS
func (rc *RedisAnswerCache) Clear(ctx context.Context) error {
	deleted, err := rc.scan(ctx, func(keys []string) error {
		return rc.client.Del(ctx, keys...).Err()
	})
	if err != nil {
		return fmt.Errorf("clear redis cache: %w", err)
	}

	rc.logger.Info("Redis cache cleared", zap.Int("keys_deleted", deleted))
	return nil
}

// GetStats lấy thống kê cache
func (rc *RedisAnswerCache) GetStats(ctx context.Context) (*CacheStats, error) {
	items, err := rc.scan(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("count redis keys: %w", err)
	}

	hits, misses := rc.hits.Load(), rc.misses.Load()
	return &CacheStats{
		Backend:    "redis",
		HitRate:    hitRate(hits, misses),
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: int64(items),
	}, nil
}

// Close đóng kết nối Redis
func (rc *RedisAnswerCache) Close() error {
	return rc.client.Close()
}

// scan duyệt các key có prefix theo từng lô, gọi fn cho mỗi lô nếu fn != nil
func (rc *RedisAnswerCache) scan(ctx context.Context, fn func(keys []string) error) (int, error) {
	var (
		cursor uint64
		total  int
	)
	for {
		keys, next, err := rc.client.Scan(ctx, cursor, rc.prefix+"*", 500).Result()
		if err != nil {
			return total, err
		}
		if len(keys) > 0 {
			total += len(keys)
			if fn != nil {
				if err := fn(keys); err != nil {
					return total, err
				}
			}
		}
		cursor = next
		if cursor == 0 {
			return total, nil
		}
	}
}
