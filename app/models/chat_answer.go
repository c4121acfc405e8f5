package models

import "time"

// Outcome values
const (
	OutcomeNoMatch        = "no_match"
	OutcomeSingle         = "single_match"
	OutcomeClarification  = "clarification"
	OutcomeUnderspecified = "underspecified"
	OutcomeUnavailable    = "unavailable"
)

// IntentFlags cờ intent của câu hỏi
type IntentFlags struct {
	WantsID          bool `json:"wants_id"`           // Hỏi Center ID
	WantsCode        bool `json:"wants_code"`         // Hỏi code
	WantsMachineInfo bool `json:"wants_machine_info"` // Hỏi về máy móc/thiết bị
}

// ChatAnswer câu trả lời cho một message, cũng là giá trị được cache
type ChatAnswer struct {
	Outcome        string       `json:"outcome"`         // no_match, single_match, clarification, underspecified, unavailable
	Message        string       `json:"message"`         // Câu trả lời đã render
	Centers        []CenterView `json:"centers"`         // Trung tâm theo thứ tự xếp hạng
	Intent         IntentFlags  `json:"intent"`          // Intent đã phát hiện
	CatalogVersion string       `json:"catalog_version"` // Phiên bản catalog dùng để trả lời
	AnsweredAt     time.Time    `json:"answered_at"`     // Thời điểm resolve
}

// Cacheable báo câu trả lời có nên được cache không (unavailable thì không)
func (a *ChatAnswer) Cacheable() bool {
	return a != nil && a.Outcome != OutcomeUnavailable
}
