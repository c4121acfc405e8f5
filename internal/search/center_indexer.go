// Package search mirrors the loaded center catalog into Meilisearch so
// operators can browse it. The resolver never reads from the mirror.
package search

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"

	"github.com/center-locator/app/models"
	"github.com/center-locator/internal/normalizer"
)

// primaryKey là field dùng làm primary key của index
const primaryKey = "key"

// maxKeyPrefix giới hạn phần đọc được của key đã sanitize (Meilisearch cho tối đa 511 byte)
const maxKeyPrefix = 64

// IndexerConfig cấu hình cho Meilisearch
type IndexerConfig struct {
	Host      string
	APIKey    string
	IndexName string
	BatchSize int
}

// PublishReport kết quả một lần publish catalog
type PublishReport struct {
	Index          string  `json:"index"`
	CatalogVersion string  `json:"catalog_version"`
	Documents      int     `json:"documents"`
	Batches        int     `json:"batches"`
	TaskUIDs       []int64 `json:"task_uids"`
}

// CenterIndexer ghi catalog vào một index Meilisearch
type CenterIndexer struct {
	client    meilisearch.ServiceManager
	logger    *zap.Logger
	indexName string
	batchSize int
}

// NewCenterIndexer tạo mới CenterIndexer. Không gọi network, Health được kiểm tra khi publish.
func NewCenterIndexer(config IndexerConfig, logger *zap.Logger) *CenterIndexer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.BatchSize <= 0 {
		config.BatchSize = 1000
	}
	if config.IndexName == "" {
		config.IndexName = "centers"
	}
	return &CenterIndexer{
		client:    meilisearch.New(config.Host, meilisearch.WithAPIKey(config.APIKey)),
		logger:    logger,
		indexName: config.IndexName,
		batchSize: config.BatchSize,
	}
}

// IndexName tên index đích
func (ci *CenterIndexer) IndexName() string {
	return ci.indexName
}

// Publish thay toàn bộ document trong index bằng catalog hiện tại.
// Các task Meilisearch chạy bất đồng bộ, Publish chỉ chờ tới khi task được enqueue.
func (ci *CenterIndexer) Publish(ctx context.Context, version string, docs []models.CenterDocument) (*PublishReport, error) {
	if len(docs) == 0 {
		return nil, errors.New("no documents to publish")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Test connection
	if _, err := ci.client.Health(); err != nil {
		return nil, fmt.Errorf("meilisearch health: %w", err)
	}

	if err := ci.configureIndex(); err != nil {
		return nil, err
	}

	index := ci.client.Index(ci.indexName)
	report := &PublishReport{Index: ci.indexName, CatalogVersion: version}

	task, err := index.DeleteAllDocuments()
	if err != nil {
		return nil, fmt.Errorf("clear index %s: %w", ci.indexName, err)
	}
	report.TaskUIDs = append(report.TaskUIDs, task.TaskUID)

	for start := 0; start < len(docs); start += ci.batchSize {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		end := start + ci.batchSize
		if end > len(docs) {
			end = len(docs)
		}

		batch := make([]models.CenterDocument, end-start)
		copy(batch, docs[start:end])
		for i := range batch {
			batch[i].Key = DocumentKey(batch[i].ID)
			batch[i].CatalogVersion = version
		}

		task, err := index.AddDocuments(batch, primaryKey)
		if err != nil {
			return report, fmt.Errorf("add documents batch %d: %w", report.Batches+1, err)
		}
		report.TaskUIDs = append(report.TaskUIDs, task.TaskUID)
		report.Batches++
		report.Documents += len(batch)
	}

	ci.logger.Info("Catalog published to Meilisearch",
		zap.String("index", ci.indexName),
		zap.String("catalog_version", version),
		zap.Int("documents", report.Documents),
		zap.Int("batches", report.Batches))
	return report, nil
}

// Search tìm trong bản mirror, dùng cho trang admin
func (ci *CenterIndexer) Search(ctx context.Context, query string, limit int64) ([]models.CenterDocument, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if limit <= 0 {
		limit = 20
	}

	result, err := ci.client.Index(ci.indexName).Search(query, &meilisearch.SearchRequest{Limit: limit})
	if err != nil {
		return nil, 0, fmt.Errorf("meilisearch search: %w", err)
	}

	// Hits là JSON tuỳ ý, đi qua encoding/json để lấy đúng field
	raw, err := json.Marshal(result.Hits)
	if err != nil {
		return nil, 0, fmt.Errorf("encode hits: %w", err)
	}
	var docs []models.CenterDocument
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode hits: %w", err)
	}
	return docs, result.EstimatedTotalHits, nil
}

// configureIndex cấu hình searchable/filterable attributes
func (ci *CenterIndexer) configureIndex() error {
	index := ci.client.Index(ci.indexName)

	task, err := index.UpdateSettings(&meilisearch.Settings{
		SearchableAttributes: []string{"name", "city", "province", "address", "norm_name", "norm_city", "norm_province", "norm_address", "id", "code"},
		FilterableAttributes: []string{"city", "province", "catalog_version"},
		SortableAttributes:   []string{"name"},
		RankingRules: []string{
			"words",
			"typo",
			"proximity",
			"attribute",
			"sort",
			"exactness",
		},
	})
	if err != nil {
		return fmt.Errorf("configure index %s: %w", ci.indexName, err)
	}

	ci.logger.Debug("Meilisearch index settings enqueued", zap.Int64("task_uid", task.TaskUID))
	return nil
}

// DocumentKey trả về primary key Meilisearch cho một center ID. Meilisearch chỉ nhận
// [A-Za-z0-9_-], nên ID hợp lệ được giữ nguyên, còn ID khác ("ES/0263", "ÑU 01") được
// bỏ dấu, thay ký tự lạ bằng '_' và gắn thêm hash của ID gốc để hai ID khác nhau
// không bao giờ cho cùng một key.
func DocumentKey(id string) string {
	if validKey(id) {
		return id
	}

	var b strings.Builder
	for _, r := range normalizer.StripDiacritics(id) {
		if b.Len() >= maxKeyPrefix {
			break
		}
		if isKeyChar(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	sum := sha256.Sum256([]byte(id))
	return b.String() + "-" + hex.EncodeToString(sum[:4])
}

func validKey(s string) bool {
	if s == "" || len(s) > maxKeyPrefix {
		return false
	}
	for _, r := range s {
		if !isKeyChar(r) {
			return false
		}
	}
	return true
}

func isKeyChar(r rune) bool {
	return r == '-' || r == '_' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
