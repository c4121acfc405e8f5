// Package bootstrap builds the long-lived components shared by the HTTP
// server and the centerctl CLI from a loaded Config.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/center-locator/app/config"
	"github.com/center-locator/app/services"
	"github.com/center-locator/internal/search"
)

// NewLogger khởi tạo structured logger theo môi trường
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.IsProduction() {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}

	if cfg.App.LogLevel != "" {
		level, err := zapcore.ParseLevel(cfg.App.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		zc.Level = zap.NewAtomicLevelAt(level)
	}

	return zc.Build()
}

// NewCatalogSource tạo nguồn catalog theo catalog.source. Hàm close trả về
// luôn khác nil và phải được gọi khi tắt process.
func NewCatalogSource(ctx context.Context, cfg *config.Config, logger *zap.Logger) (services.CatalogSource, func(), error) {
	switch cfg.Catalog.Source {
	case "mongo":
		db, err := connectMongo(ctx, cfg.Mongo, logger)
		if err != nil {
			return nil, func() {}, err
		}
		closeFn := func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := db.Client().Disconnect(dctx); err != nil {
				logger.Error("Error disconnecting MongoDB", zap.Error(err))
			}
		}
		return services.NewMongoCatalogSource(db, cfg.Mongo.Collection, cfg.Mongo.Timeout, logger), closeFn, nil
	default:
		return services.NewFileCatalogSource(cfg.Catalog.Path), func() {}, nil
	}
}

// connectMongo khởi tạo kết nối MongoDB
func connectMongo(ctx context.Context, mc config.MongoConfig, logger *zap.Logger) (*mongo.Database, error) {
	if mc.Timeout <= 0 {
		mc.Timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, mc.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mc.URL))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	// Test connection
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	logger.Info("Connected to MongoDB",
		zap.String("database", mc.Database),
		zap.String("collection", mc.Collection))
	return client.Database(mc.Database), nil
}

// NewMirror trả về mirror Meilisearch nếu được bật, ngược lại interface nil
func NewMirror(cfg *config.Config, logger *zap.Logger) services.CatalogMirror {
	if !cfg.Meilisearch.Enabled {
		return nil
	}
	logger.Info("Meilisearch mirror enabled",
		zap.String("host", cfg.Meilisearch.URL),
		zap.String("index", cfg.Meilisearch.IndexName))
	return NewIndexer(cfg, logger)
}

// NewIndexer tạo CenterIndexer từ cấu hình, không xét meilisearch.enabled
func NewIndexer(cfg *config.Config, logger *zap.Logger) *search.CenterIndexer {
	return search.NewCenterIndexer(search.IndexerConfig{
		Host:      cfg.Meilisearch.URL,
		APIKey:    cfg.Meilisearch.APIKey,
		IndexName: cfg.Meilisearch.IndexName,
		BatchSize: cfg.Meilisearch.BatchSize,
	}, logger)
}

// NewAnswerCache chọn cache: tắt, chỉ memory, hoặc memory + Redis.
// Redis không kết nối được thì chạy với memory và log cảnh báo.
func NewAnswerCache(ctx context.Context, cfg *config.Config, logger *zap.Logger) services.IAnswerCache {
	if !cfg.Cache.Enabled {
		logger.Info("Answer cache disabled")
		return nil
	}

	memory := services.NewMemoryAnswerCache(cfg.Cache.L1Size, cfg.Cache.TTL)
	if cfg.Cache.RedisURL == "" {
		return memory
	}

	redisCache, err := services.NewRedisAnswerCache(ctx, cfg.Cache.RedisURL, cfg.Cache.TTL, logger)
	if err != nil {
		logger.Warn("Redis unavailable, using in-process cache only", zap.Error(err))
		return memory
	}
	return services.NewHybridAnswerCache(memory, redisCache, logger)
}
