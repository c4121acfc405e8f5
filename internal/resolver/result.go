package resolver

// Outcome là loại kết quả cuối cùng của một query
type Outcome string

const (
	OutcomeNoMatch        Outcome = "no_match"
	OutcomeSingle         Outcome = "single_match"
	OutcomeClarification  Outcome = "clarification"
	OutcomeUnderspecified Outcome = "underspecified"
	OutcomeUnavailable    Outcome = "unavailable"
)

// MatchResult là output của Resolver. Candidates có đúng 1 phần tử với
// OutcomeSingle, 2..10 phần tử với OutcomeClarification, rỗng với các outcome còn lại.
type MatchResult struct {
	Outcome    Outcome          `json:"outcome"`
	Candidates []MatchCandidate `json:"candidates,omitempty"`
	Intent     Intent           `json:"intent"`
}

// Best trả về candidate đứng đầu, hoặc nil
func (m MatchResult) Best() *MatchCandidate {
	if len(m.Candidates) == 0 {
		return nil
	}
	return &m.Candidates[0]
}
