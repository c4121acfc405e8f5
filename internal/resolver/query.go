package resolver

import (
	"strings"

	"github.com/center-locator/internal/normalizer"
	"github.com/center-locator/internal/similarity"
)

// QueryContext là trạng thái tạm của một query, chỉ sống trong một lần Resolve
type QueryContext struct {
	Raw        string
	Normalized string
	Tokens     []string
	TokenSet   map[string]struct{}
	Intent     Intent

	CityHints     map[string]struct{}
	ProvinceHints map[string]struct{}

	joined         string
	phonetic       map[string]string
	identifierKeys map[string]struct{}
}

// Analyze chuẩn hoá và tách token cho message. Không dò location hint.
func (r *Resolver) Analyze(message string) *QueryContext {
	normalized := r.norm.Normalize(message)
	raw := normalizer.Tokens(normalized)
	tokens, set := r.norm.SignificantTokens(normalized)

	q := &QueryContext{
		Raw:            message,
		Normalized:     normalized,
		Tokens:         tokens,
		TokenSet:       set,
		Intent:         r.intents.Detect(raw),
		joined:         strings.Join(tokens, " "),
		phonetic:       make(map[string]string, len(tokens)),
		identifierKeys: make(map[string]struct{}, 2*len(raw)),
	}
	for _, tok := range tokens {
		if code, ok := similarity.Phonetic(tok); ok {
			q.phonetic[tok] = code
		}
	}
	for _, tok := range raw {
		q.identifierKeys[tok] = struct{}{}
		if cleaned := normalizer.CleanToken(tok); cleaned != "" {
			q.identifierKeys[cleaned] = struct{}{}
		}
	}
	return q
}

// Underspecified: sau khi bỏ stopword không còn token nào
func (q *QueryContext) Underspecified() bool {
	return len(q.Tokens) == 0
}
