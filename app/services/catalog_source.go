package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/center-locator/internal/resolver"
)

// CatalogSource nguồn dữ liệu catalog trung tâm
type CatalogSource interface {
	// Load đọc toàn bộ dòng catalog, chưa chuẩn hoá
	Load(ctx context.Context) ([]resolver.CenterRow, error)
	// Describe mô tả nguồn để log
	Describe() string
}

// Các key được chấp nhận cho mỗi field: key gốc tiếng Tây Ban Nha trước, key tiếng Anh sau
var rowKeys = struct {
	id, code, name, city, province, address []string
}{
	id:       []string{"id_centro", "id"},
	code:     []string{"codigo", "code"},
	name:     []string{"nombre", "name"},
	city:     []string{"poblacion", "city"},
	province: []string{"provincia", "province"},
	address:  []string{"direccion", "address"},
}

// rowFromMap map một object catalog sang CenterRow
func rowFromMap(m map[string]any) resolver.CenterRow {
	return resolver.CenterRow{
		ID:       pick(m, rowKeys.id),
		Code:     pick(m, rowKeys.code),
		Name:     pick(m, rowKeys.name),
		City:     pick(m, rowKeys.city),
		Province: pick(m, rowKeys.province),
		Address:  pick(m, rowKeys.address),
	}
}

func pick(m map[string]any, keys []string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return coerceString(v)
		}
	}
	return ""
}

// coerceString: số được format lại, kiểu khác (bool, object, list) thành ""
func coerceString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case json.Number:
		return t.String()
	case primitive.ObjectID:
		return t.Hex()
	default:
		return ""
	}
}

// FileCatalogSource đọc catalog từ file JSON hoặc YAML.
// Chấp nhận {"centers": [...]} hoặc mảng ở top-level.
type FileCatalogSource struct {
	Path string
}

// NewFileCatalogSource tạo mới FileCatalogSource
func NewFileCatalogSource(path string) *FileCatalogSource {
	return &FileCatalogSource{Path: path}
}

// Describe mô tả nguồn
func (fs *FileCatalogSource) Describe() string {
	return "file:" + fs.Path
}

// Load đọc và parse file catalog
func (fs *FileCatalogSource) Load(ctx context.Context) ([]resolver.CenterRow, error) {
	data, err := os.ReadFile(fs.Path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return ParseCatalog(data, filepath.Ext(fs.Path))
}

// ParseCatalog parse nội dung catalog. ext ".yaml"/".yml" dùng YAML, còn lại JSON.
func ParseCatalog(data []byte, ext string) ([]resolver.CenterRow, error) {
	var doc any
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse catalog yaml: %w", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("parse catalog json: %w", err)
		}
	}

	var items []any
	switch t := doc.(type) {
	case map[string]any:
		list, ok := t["centers"].([]any)
		if !ok {
			return nil, fmt.Errorf("catalog: missing \"centers\" list")
		}
		items = list
	case []any:
		items = t
	default:
		return nil, fmt.Errorf("catalog: unexpected top-level %T", doc)
	}

	rows := make([]resolver.CenterRow, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			// Giữ chỗ để index của SkippedRow khớp với vị trí trong file
			rows = append(rows, resolver.CenterRow{})
			continue
		}
		rows = append(rows, rowFromMap(m))
	}
	return rows, nil
}

// MongoCatalogSource đọc catalog từ một collection MongoDB
type MongoCatalogSource struct {
	collection *mongo.Collection
	timeout    time.Duration
	logger     *zap.Logger
}

// NewMongoCatalogSource tạo mới MongoCatalogSource
func NewMongoCatalogSource(db *mongo.Database, collection string, timeout time.Duration, logger *zap.Logger) *MongoCatalogSource {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &MongoCatalogSource{
		collection: db.Collection(collection),
		timeout:    timeout,
		logger:     logger,
	}
}

// Describe mô tả nguồn
func (ms *MongoCatalogSource) Describe() string {
	return "mongo:" + ms.collection.Database().Name() + "." + ms.collection.Name()
}

// Load đọc toàn bộ document, sắp theo _id để thứ tự ổn định giữa các lần reload
func (ms *MongoCatalogSource) Load(ctx context.Context) ([]resolver.CenterRow, error) {
	ctx, cancel := context.WithTimeout(ctx, ms.timeout)
	defer cancel()

	cursor, err := ms.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find catalog documents: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []resolver.CenterRow
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			ms.logger.Warn("Cannot decode catalog document", zap.Error(err))
			rows = append(rows, resolver.CenterRow{})
			continue
		}
		rows = append(rows, rowFromMap(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog documents: %w", err)
	}
	return rows, nil
}
