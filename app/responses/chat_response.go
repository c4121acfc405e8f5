package responses

import (
	"github.com/center-locator/app/models"
	"github.com/center-locator/app/services"
	"github.com/center-locator/internal/search"
)

// ChatResponse response cho một câu hỏi. Field "response" giữ nguyên contract cũ của /api/chat.
type ChatResponse struct {
	Response         string              `json:"response"`           // Câu trả lời đã render
	Outcome          string              `json:"outcome"`            // Loại kết quả
	Centers          []models.CenterView `json:"centers"`            // Trung tâm theo thứ tự xếp hạng
	Intent           models.IntentFlags  `json:"intent"`             // Intent đã phát hiện
	CatalogVersion   string              `json:"catalog_version"`    // Phiên bản catalog
	RequestID        string              `json:"request_id"`         // ID của request
	CacheHit         bool                `json:"cache_hit"`          // Có hit cache không
	ProcessingTimeMs int64               `json:"processing_time_ms"` // Thời gian xử lý (ms)
}

// BatchChatItem một câu trả lời trong batch
type BatchChatItem struct {
	Index    int                 `json:"index"`     // Vị trí trong request
	Response string              `json:"response"`  // Câu trả lời đã render
	Outcome  string              `json:"outcome"`   // Loại kết quả
	Centers  []models.CenterView `json:"centers"`   // Trung tâm theo thứ tự xếp hạng
	Intent   models.IntentFlags  `json:"intent"`    // Intent đã phát hiện
	CacheHit bool                `json:"cache_hit"` // Có hit cache không
}

// BatchChatResponse response cho batch
type BatchChatResponse struct {
	BatchID          string          `json:"batch_id"`           // ID của batch
	RequestID        string          `json:"request_id"`         // ID của request
	Results          []BatchChatItem `json:"results"`            // Kết quả theo thứ tự input
	ProcessingTimeMs int64           `json:"processing_time_ms"` // Thời gian xử lý (ms)
}

// HealthResponse response health check
type HealthResponse struct {
	Status         string `json:"status"`          // "healthy"
	Service        string `json:"service"`         // Tên service
	CatalogSize    int    `json:"catalog_size"`    // Số trung tâm đang phục vụ
	CatalogVersion string `json:"catalog_version"` // Phiên bản catalog
}

// ErrorResponse response lỗi
type ErrorResponse struct {
	Error   string `json:"error"`   // Mã lỗi
	Message string `json:"message"` // Thông báo lỗi
}

// SuccessResponse response thành công chung
type SuccessResponse struct {
	Success bool        `json:"success"`        // Thành công hay không
	Message string      `json:"message"`        // Thông báo
	Data    interface{} `json:"data,omitempty"` // Dữ liệu kèm theo
}

// ReloadResponse response reload catalog
type ReloadResponse struct {
	Report           *services.ReloadReport `json:"report"`             // Kết quả reload
	ProcessingTimeMs int64                  `json:"processing_time_ms"` // Thời gian xử lý (ms)
}

// PublishResponse response publish catalog sang Meilisearch
type PublishResponse struct {
	Report           *search.PublishReport `json:"report"`             // Kết quả publish
	ProcessingTimeMs int64                 `json:"processing_time_ms"` // Thời gian xử lý (ms)
}

// CatalogSearchResponse response tra cứu catalog
type CatalogSearchResponse struct {
	Query     string                  `json:"query"`     // Từ khoá
	Total     int64                   `json:"total"`     // Tổng số kết quả ước tính
	Documents []models.CenterDocument `json:"documents"` // Kết quả
}
