// Package resolver matches a free-form query against a loaded center catalog.
//
// A query goes through fixed stages: normalize, detect location hints and
// pre-filter, score every remaining record, re-rank, decide. A LoadedCatalog is
// immutable, so one Resolver can serve concurrent queries against a shared
// snapshot without locking.
package resolver

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/center-locator/internal/normalizer"
)

const (
	locationThreshold         = 0.4
	filteredLocationThreshold = 0.35

	clarificationGap  = 0.15
	maxClarifications = 10
)

// Resolver service thực hiện chuẩn hoá, chấm điểm và ra quyết định
type Resolver struct {
	norm    *normalizer.TextNormalizer
	intents *IntentDetector
	logger  *zap.Logger
}

// NewResolver tạo mới Resolver
func NewResolver(textNormalizer *normalizer.TextNormalizer, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		norm:    textNormalizer,
		intents: NewIntentDetector(textNormalizer.Rules().Intents),
		logger:  logger,
	}
}

// Normalizer trả về normalizer dùng cho cả catalog và query
func (r *Resolver) Normalizer() *normalizer.TextNormalizer {
	return r.norm
}

// Resolve tìm trung tâm khớp với message. Catalog nil hoặc rỗng cho OutcomeUnavailable.
func (r *Resolver) Resolve(cat *LoadedCatalog, message string) MatchResult {
	start := time.Now()

	result := r.resolve(cat, message)

	r.logger.Debug("Center resolution completed",
		zap.String("message", message),
		zap.String("outcome", string(result.Outcome)),
		zap.Int("candidates", len(result.Candidates)),
		zap.Duration("duration", time.Since(start)))

	return result
}

func (r *Resolver) resolve(cat *LoadedCatalog, message string) MatchResult {
	if cat.Empty() {
		return MatchResult{Outcome: OutcomeUnavailable}
	}

	// 1. Normalizing
	q := r.Analyze(message)
	if q.Underspecified() {
		return MatchResult{Outcome: OutcomeUnderspecified, Intent: q.Intent}
	}

	// id/code trong query thắng mọi tín hiệu khác, kể cả bộ lọc location
	direct := make([]MatchCandidate, 0, 1)
	for _, rec := range cat.Records {
		if isDirectMatch(rec, q) {
			direct = append(direct, MatchCandidate{Record: rec, Score: 1.0, LocationScore: 1.0, NameScore: 1.0, Direct: true})
		}
	}
	if len(direct) > 0 {
		return decide(direct, q.Intent)
	}

	// 2. LocationFiltering
	q.CityHints = DetectHints(q.TokenSet, q.Normalized, cat.Cities)
	q.ProvinceHints = DetectHints(q.TokenSet, q.Normalized, cat.Provinces)
	hinted := len(q.CityHints) > 0 || len(q.ProvinceHints) > 0
	pool, filterActive := filterByLocation(cat.Records, q)

	// 3. Scoring
	candidates := make([]MatchCandidate, 0)
	for _, rec := range pool {
		if c, ok := scoreRecord(rec, q, hinted); ok {
			candidates = append(candidates, c)
		}
	}

	// 4-5. Ranking
	candidates = rerank(candidates, filterActive)

	// 6. Deciding
	return decide(candidates, q.Intent)
}

// filterByLocation áp dụng lần lượt bộ lọc city rồi province. Bộ lọc nào làm
// rỗng tập record thì bị bỏ qua (inactive) thay vì làm hỏng cả query.
func filterByLocation(records []*CenterRecord, q *QueryContext) ([]*CenterRecord, bool) {
	pool := records
	active := false

	if len(q.CityHints) > 0 {
		if kept := keepRecords(pool, q.CityHints, func(rec *CenterRecord) string { return rec.NormCity }); len(kept) > 0 {
			pool, active = kept, true
		}
	}
	if len(q.ProvinceHints) > 0 {
		if kept := keepRecords(pool, q.ProvinceHints, func(rec *CenterRecord) string { return rec.NormProvince }); len(kept) > 0 {
			pool, active = kept, true
		}
	}
	return pool, active
}

func keepRecords(records []*CenterRecord, values map[string]struct{}, field func(*CenterRecord) string) []*CenterRecord {
	kept := make([]*CenterRecord, 0, len(records))
	for _, rec := range records {
		if _, ok := values[field(rec)]; ok {
			kept = append(kept, rec)
		}
	}
	return kept
}

// rerank ưu tiên các candidate có location score đủ cao. Nếu không có candidate
// nào như vậy mà bộ lọc location đang bật thì xếp theo (location, score) thay vì loại bỏ.
func rerank(candidates []MatchCandidate, filterActive bool) []MatchCandidate {
	threshold := locationThreshold
	if filterActive {
		threshold = filteredLocationThreshold
	}

	preferred := make([]MatchCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.LocationScore >= threshold {
			preferred = append(preferred, c)
		}
	}

	switch {
	case len(preferred) > 0:
		candidates = preferred
	case filterActive:
		sort.SliceStable(candidates, func(i, j int) bool {
			if candidates[i].LocationScore != candidates[j].LocationScore {
				return candidates[i].LocationScore > candidates[j].LocationScore
			}
			return candidates[i].Score > candidates[j].Score
		})
		return candidates
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	return candidates
}

// decide chọn giữa NoMatch, SingleMatch và danh sách cần làm rõ
func decide(candidates []MatchCandidate, intent Intent) MatchResult {
	switch {
	case len(candidates) == 0:
		return MatchResult{Outcome: OutcomeNoMatch, Intent: intent}
	case len(candidates) == 1:
		return MatchResult{Outcome: OutcomeSingle, Candidates: candidates, Intent: intent}
	case candidates[0].Score-candidates[1].Score > clarificationGap:
		return MatchResult{Outcome: OutcomeSingle, Candidates: candidates[:1], Intent: intent}
	default:
		n := min(maxClarifications, len(candidates))
		return MatchResult{Outcome: OutcomeClarification, Candidates: candidates[:n], Intent: intent}
	}
}
