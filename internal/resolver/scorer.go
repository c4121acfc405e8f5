package resolver

import (
	"strings"

	"github.com/center-locator/internal/similarity"
)

// MatchCandidate là kết quả chấm điểm một record cho một query.
// Score có thể vượt 1.0 ở một số nhánh và không bị chuẩn hoá lại.
type MatchCandidate struct {
	Record        *CenterRecord `json:"record"`
	Score         float64       `json:"score"`
	LocationScore float64       `json:"location_score"`
	NameScore     float64       `json:"name_score"`
	Direct        bool          `json:"direct"`
}

const (
	acceptThreshold       = 0.4
	hintedAcceptThreshold = 0.35

	fuzzyTokenMin   = 0.88
	globalFuzzyMin  = 0.70
	overlapFloor    = 0.6
	minFuzzyLen     = 2
	minSubstringLen = 3

	combinedFallbackMin    = 0.82
	combinedFallbackWeight = 0.7
)

type fieldSignals struct {
	overlap   float64
	phonetic  bool
	fuzzy     bool
	substring bool
	ratio     float64
}

func (s fieldSignals) eligible(globalFuzzy bool) bool {
	return s.overlap > 0 || s.phonetic || s.fuzzy || s.substring || globalFuzzy
}

// isDirectMatch: một token của query trùng id hoặc code của record
func isDirectMatch(rec *CenterRecord, q *QueryContext) bool {
	for key := range q.identifierKeys {
		if _, ok := rec.identifiers[key]; ok {
			return true
		}
	}
	return false
}

// scoreRecord chấm điểm một record. ok=false khi record bị loại (không field nào
// đủ điều kiện, hoặc dưới ngưỡng và fallback tổng hợp cũng không đạt).
func scoreRecord(rec *CenterRecord, q *QueryContext, hinted bool) (MatchCandidate, bool) {
	if isDirectMatch(rec, q) {
		return MatchCandidate{Record: rec, Score: 1.0, LocationScore: 1.0, NameScore: 1.0, Direct: true}, true
	}

	name := computeSignals(&rec.name, q)
	city := computeSignals(&rec.city, q)
	province := computeSignals(&rec.province, q)
	address := computeSignals(&rec.address, q)

	globalFuzzy := name.ratio >= globalFuzzyMin || city.ratio >= globalFuzzyMin ||
		province.ratio >= globalFuzzyMin || address.ratio >= globalFuzzyMin

	if !name.eligible(globalFuzzy) && !city.eligible(globalFuzzy) &&
		!province.eligible(globalFuzzy) && !address.eligible(globalFuzzy) {
		return MatchCandidate{}, false
	}

	n, nameOverlap := blend(name, globalFuzzy, 0.3, 0.7)
	c, _ := blend(city, globalFuzzy, 0.3, 0.7)
	p, _ := blend(province, globalFuzzy, 0.3, 0.7)
	a, addressOverlap := blend(address, globalFuzzy, 0.4, 0.6)

	final := composite(n, c, p, a, nameOverlap, addressOverlap)
	location := max(c, p, a)

	threshold := acceptThreshold
	if hinted {
		threshold = hintedAcceptThreshold
	}
	if final < threshold {
		sim := similarity.Ratio(q.joined, rec.combined)
		if sim < combinedFallbackMin {
			return MatchCandidate{}, false
		}
		final = sim * combinedFallbackWeight
		location = max(location, sim)
	}

	return MatchCandidate{Record: rec, Score: final, LocationScore: location, NameScore: n}, true
}

// blend trả về điểm của field và overlap sau khi áp floor
func blend(s fieldSignals, globalFuzzy bool, ratioWeight, overlapWeight float64) (float64, float64) {
	overlap := s.overlap
	if s.phonetic || s.fuzzy {
		overlap = max(overlap, overlapFloor)
	}
	if !s.eligible(globalFuzzy) {
		return 0, overlap
	}
	return ratioWeight*s.ratio + overlapWeight*overlap, overlap
}

// composite áp dụng chính sách tổng hợp theo thứ tự ưu tiên, nhánh đầu tiên khớp thắng
func composite(name, city, province, address, nameOverlap, addressOverlap float64) float64 {
	dualLocation := (city > 0.35 && province > 0.35) || (address > 0.35 && (city > 0.3 || province > 0.3))
	strongAddressName := (name > 0.6 && address > 0.6) || (nameOverlap >= 0.7 && addressOverlap >= 0.7)

	switch {
	case dualLocation && strongAddressName:
		return (city + province + address + 3*name) / 2.0
	case dualLocation && (name > 0.5 || address > 0.5):
		return (city + province + address + 2*name) / 2.5
	case dualLocation:
		return (city + province + address) * 1.1
	case strongAddressName:
		return max(name, address) * 1.2
	case name > 0.5 || address > 0.5:
		return max(name, address) * 0.95
	case city > 0.5 || province > 0.5:
		return max(city, province) * 0.8
	default:
		return max(name*0.7, city*0.8, province*0.7, address*0.7, (city+province+address)/3*0.85)
	}
}

func computeSignals(f *fieldProfile, q *QueryContext) fieldSignals {
	var s fieldSignals

	if len(f.set) > 0 {
		overlap := 0
		for tok := range f.set {
			if _, ok := q.TokenSet[tok]; ok {
				overlap++
			}
		}
		s.overlap = min(float64(overlap)/float64(len(f.set)), 1.0)
	}

	for _, qt := range q.Tokens {
		if code, ok := q.phonetic[qt]; ok {
			if _, hit := f.phonetic[code]; hit {
				s.phonetic = true
			}
		}
		if !s.fuzzy && len(qt) > minFuzzyLen {
			for _, ft := range f.tokens {
				if len(ft) > minFuzzyLen && similarity.TokenSimilarity(qt, ft) >= fuzzyTokenMin {
					s.fuzzy = true
					break
				}
			}
		}
		if !s.substring && f.text != "" && len(qt) > minSubstringLen {
			s.substring = strings.Contains(f.text, qt) || strings.Contains(qt, f.text)
		}
	}

	s.ratio = similarity.Ratio(q.joined, f.text)
	return s
}
