package resolver

import (
	"strings"

	"github.com/center-locator/internal/normalizer"
)

// Intent là các cờ độc lập cho biết người dùng hỏi gì
type Intent struct {
	WantsID          bool `json:"wants_id"`
	WantsCode        bool `json:"wants_code"`
	WantsMachineInfo bool `json:"wants_machine_info"`
}

// ShowID: chỉ ẩn ID khi người dùng hỏi code mà không hỏi ID
func (i Intent) ShowID() bool {
	return !(i.WantsCode && !i.WantsID)
}

// ShowCode: chỉ ẩn code khi người dùng hỏi ID mà không hỏi code
func (i Intent) ShowCode() bool {
	return !(i.WantsID && !i.WantsCode)
}

// IntentDetector phân loại token của query theo các tập từ khoá cố định
type IntentDetector struct {
	id      map[string]struct{}
	code    map[string]struct{}
	machine map[string]struct{}
}

// NewIntentDetector tạo detector từ bảng từ khoá
func NewIntentDetector(kw normalizer.IntentKeywords) *IntentDetector {
	return &IntentDetector{
		id:      keywordSet(kw.ID),
		code:    keywordSet(kw.Code),
		machine: keywordSet(kw.Machine),
	}
}

func keywordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}

// Detect chạy trên token thô (chưa lọc stopword) của query đã chuẩn hoá
func (d *IntentDetector) Detect(rawTokens []string) Intent {
	var intent Intent
	for _, tok := range rawTokens {
		cleaned := normalizer.CleanToken(tok)
		if contains(d.id, cleaned) {
			intent.WantsID = true
		}
		if contains(d.code, cleaned) {
			intent.WantsCode = true
		}
		if contains(d.machine, tok) {
			intent.WantsMachineInfo = true
		}
	}
	return intent
}
