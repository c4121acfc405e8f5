package requests

// ChatRequest request hỏi một câu. Message rỗng vẫn hợp lệ và nhận câu trả lời "underspecified".
type ChatRequest struct {
	Message string `json:"message"` // Câu hỏi tự do của người dùng
}

// BatchChatRequest request hỏi nhiều câu một lúc
type BatchChatRequest struct {
	Messages []string `json:"messages" binding:"required,min=1"` // Danh sách câu hỏi, giới hạn theo chat.max_batch
}

// CatalogSearchRequest query tra cứu catalog qua Meilisearch
type CatalogSearchRequest struct {
	Query string `form:"q"`     // Từ khoá
	Limit int64  `form:"limit"` // Số kết quả tối đa
}
