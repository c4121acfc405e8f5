package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix là tiền tố cho biến môi trường, vd CENTER_CATALOG_PATH
const EnvPrefix = "CENTER"

type AppConfig struct {
	Name            string        `mapstructure:"name"`
	Port            string        `mapstructure:"port"`
	Env             string        `mapstructure:"env"`
	LogLevel        string        `mapstructure:"log_level"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type CatalogConfig struct {
	// Source: "file" hoặc "mongo"
	Source string `mapstructure:"source"`
	Path   string `mapstructure:"path"`
}

type CacheConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	L1Size   int           `mapstructure:"l1_size"`
	TTL      time.Duration `mapstructure:"ttl"`
	RedisURL string        `mapstructure:"redis_url"`
}

type MongoConfig struct {
	URL        string        `mapstructure:"url"`
	Database   string        `mapstructure:"database"`
	Collection string        `mapstructure:"collection"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type MeilisearchConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	URL       string        `mapstructure:"url"`
	APIKey    string        `mapstructure:"api_key"`
	IndexName string        `mapstructure:"index_name"`
	Timeout   time.Duration `mapstructure:"timeout"`
	BatchSize int           `mapstructure:"batch_size"`
}

type ChatConfig struct {
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxBatch     int           `mapstructure:"max_batch"`
	BatchWorkers int           `mapstructure:"batch_workers"`
}

// Config là cấu hình đầy đủ của service
type Config struct {
	App         AppConfig         `mapstructure:"app"`
	Catalog     CatalogConfig     `mapstructure:"catalog"`
	Cache       CacheConfig       `mapstructure:"cache"`
	Mongo       MongoConfig       `mapstructure:"mongo"`
	Meilisearch MeilisearchConfig `mapstructure:"meilisearch"`
	Chat        ChatConfig        `mapstructure:"chat"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "center-locator")
	v.SetDefault("app.port", "3000")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.cors_origins", []string{"*"})
	v.SetDefault("app.shutdown_timeout", 10*time.Second)

	v.SetDefault("catalog.source", "file")
	v.SetDefault("catalog.path", "centers.json")

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.l1_size", 10000)
	v.SetDefault("cache.ttl", time.Hour)
	v.SetDefault("cache.redis_url", "")

	v.SetDefault("mongo.url", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "center_locator")
	v.SetDefault("mongo.collection", "centers")
	v.SetDefault("mongo.timeout", 10*time.Second)

	v.SetDefault("meilisearch.enabled", false)
	v.SetDefault("meilisearch.url", "http://localhost:7700")
	v.SetDefault("meilisearch.api_key", "")
	v.SetDefault("meilisearch.index_name", "centers")
	v.SetDefault("meilisearch.timeout", 30*time.Second)
	v.SetDefault("meilisearch.batch_size", 1000)

	v.SetDefault("chat.timeout", 1500*time.Millisecond)
	v.SetDefault("chat.max_batch", 100)
	v.SetDefault("chat.batch_workers", 8)
}

// Load đọc cấu hình theo thứ tự ưu tiên: env > file > default.
// path rỗng thì tìm app.yaml trong ./config và thư mục hiện tại; không có file không phải lỗi.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("app")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate kiểm tra các giá trị không hợp lệ
func (c *Config) Validate() error {
	switch c.Catalog.Source {
	case "file", "mongo":
	default:
		return fmt.Errorf("catalog.source must be file or mongo, got %q", c.Catalog.Source)
	}
	if c.Catalog.Source == "file" && c.Catalog.Path == "" {
		return errors.New("catalog.path is required for the file source")
	}
	if c.Chat.MaxBatch <= 0 || c.Chat.BatchWorkers <= 0 {
		return errors.New("chat.max_batch and chat.batch_workers must be positive")
	}
	return nil
}

// IsProduction báo môi trường production
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
