package resolver

import (
	"github.com/center-locator/internal/normalizer"
	"github.com/center-locator/internal/similarity"
)

// LocationIndexEntry là một giá trị city/province đã chuẩn hoá (không trùng lặp)
// cùng tập token có nghĩa của nó.
type LocationIndexEntry struct {
	Value  string
	Tokens map[string]struct{}
}

const (
	hintMultiTokenRatio = 0.6
	hintPartialRatio    = 0.4
	hintWholeStringMin  = 0.88
)

func buildLocationIndex(tn *normalizer.TextNormalizer, records []*CenterRecord, value func(*CenterRecord) string) []LocationIndexEntry {
	seen := make(map[string]struct{})
	entries := make([]LocationIndexEntry, 0)
	for _, rec := range records {
		v := value(rec)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		_, tokens := tn.FieldTokens(v)
		entries = append(entries, LocationIndexEntry{Value: v, Tokens: tokens})
	}
	return entries
}

// DetectHints trả về các giá trị location mà query nhắc tới. Một query có thể
// khớp nhiều entry; tất cả đều được giữ lại để bước chấm điểm quyết định.
func DetectHints(queryTokens map[string]struct{}, normalizedQuery string, entries []LocationIndexEntry) map[string]struct{} {
	hints := make(map[string]struct{})
	for _, e := range entries {
		if isHint(queryTokens, normalizedQuery, e) {
			hints[e.Value] = struct{}{}
		}
	}
	return hints
}

func isHint(queryTokens map[string]struct{}, normalizedQuery string, e LocationIndexEntry) bool {
	n := len(e.Tokens)
	if n > 0 {
		overlap := 0
		for tok := range e.Tokens {
			if _, ok := queryTokens[tok]; ok {
				overlap++
			}
		}
		ratio := float64(overlap) / float64(n)

		switch {
		case overlap == n:
			return true
		case n > 1 && ratio >= hintMultiTokenRatio:
			return true
		case n == 1 && overlap == 1:
			return true
		case overlap >= 1 && ratio >= hintPartialRatio:
			return true
		}
	}
	return similarity.Ratio(normalizedQuery, e.Value) >= hintWholeStringMin
}
