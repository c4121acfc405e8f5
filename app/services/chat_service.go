package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/center-locator/app/metrics"
	"github.com/center-locator/app/models"
)

// ChatOptions giới hạn cho chat service
type ChatOptions struct {
	Timeout      time.Duration // deadline cho một message
	MaxBatch     int           // số message tối đa trong một batch
	BatchWorkers int           // số message resolve song song trong batch
}

// ChatReply câu trả lời kèm thông tin cache
type ChatReply struct {
	Answer   *models.ChatAnswer
	CacheHit bool
}

// ChatService trả lời message dựa trên snapshot catalog hiện tại
type ChatService struct {
	catalog *CatalogService
	cache   IAnswerCache
	opts    ChatOptions
	logger  *zap.Logger
}

// NewChatService tạo mới ChatService. cache có thể nil.
func NewChatService(catalog *CatalogService, cache IAnswerCache, opts ChatOptions, logger *zap.Logger) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxBatch <= 0 {
		opts.MaxBatch = 100
	}
	if opts.BatchWorkers <= 0 {
		opts.BatchWorkers = 8
	}
	return &ChatService{
		catalog: catalog,
		cache:   cache,
		opts:    opts,
		logger:  logger,
	}
}

// Ask trả lời một message
func (s *ChatService) Ask(ctx context.Context, message string) (*ChatReply, error) {
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	cat := s.catalog.Current()
	r := s.catalog.Resolver()
	key := AnswerCacheKey(cat.Version, r.Normalizer().Normalize(message))

	if s.cache != nil && !cat.Empty() {
		answer, found, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("Answer cache lookup failed", zap.Error(err))
		}
		if found {
			metrics.CacheRequestsTotal.WithLabelValues("hit").Inc()
			metrics.ChatOutcomesTotal.WithLabelValues(answer.Outcome).Inc()
			return &ChatReply{Answer: answer, CacheHit: true}, nil
		}
		metrics.CacheRequestsTotal.WithLabelValues("miss").Inc()
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("ask: %w", err)
	}

	start := time.Now()
	result := r.Resolve(cat, message)
	metrics.ResolveDuration.Observe(time.Since(start).Seconds())

	answer := Present(result, cat.Version)
	metrics.ChatOutcomesTotal.WithLabelValues(answer.Outcome).Inc()

	if s.cache != nil && answer.Cacheable() {
		if err := s.cache.Set(ctx, key, answer); err != nil {
			s.logger.Warn("Answer cache store failed", zap.Error(err))
		}
	}

	return &ChatReply{Answer: answer}, nil
}

// AskBatch trả lời nhiều message song song, kết quả giữ đúng thứ tự input
func (s *ChatService) AskBatch(ctx context.Context, messages []string) ([]*ChatReply, error) {
	if len(messages) > s.opts.MaxBatch {
		return nil, fmt.Errorf("%d messages, limit %d: %w", len(messages), s.opts.MaxBatch, ErrBatchTooLarge)
	}

	replies := make([]*ChatReply, len(messages))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.BatchWorkers)

	for i, msg := range messages {
		i, msg := i, msg
		g.Go(func() error {
			reply, err := s.Ask(gctx, msg)
			if err != nil {
				return fmt.Errorf("message %d: %w", i, err)
			}
			replies[i] = reply
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return replies, nil
}

// InvalidateCache xoá toàn bộ câu trả lời đã cache
func (s *ChatService) InvalidateCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Clear(ctx)
}

// CacheStats thống kê cache, nil nếu không bật cache
func (s *ChatService) CacheStats(ctx context.Context) (*CacheStats, error) {
	if s.cache == nil {
		return nil, nil
	}
	return s.cache.GetStats(ctx)
}
