package resolver

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_FixtureQueries(t *testing.T) {
	r, cat := loadFixture(t)

	testCases := []struct {
		name    string
		message string
		code    string
	}{
		{"code lookup", "show me center code ES0263", "ES0263"},
		{"id and code lookup", "I need the center id for code ES0263", "ES0263"},
		{"address and city", "Padilla 239 in Barcelona", "ES0323"},
		{"regional spelling", "center id for Sardinia 200 Barcelona", "ES0284"},
		{"number words and phonetic street", "Cali d Sardinia two hundred", "ES0284"},
		{"misspelled city", "Santa Cruz, the Tenerefaith", "ES0401"},
		{"name without accent", "Chamberi Madrid", "ES0105"},
		{"address only", "Fuencarral 120", "ES0105"},
		{"city only", "san sebastian", "ES0610"},
		{"cleaned id", "code lw0263", "ES0263"},
		{"id with punctuation", "LW-0263", "ES0263"},
		{"near miss city", "tenerif", "ES0401"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Resolve(cat, tc.message)
			require.Equal(t, OutcomeSingle, result.Outcome, "candidates: %v", codes(result))
			assert.Equal(t, tc.code, result.Best().Record.Code)
		})
	}
}

func TestResolve_DirectMatchScoresOne(t *testing.T) {
	r, cat := loadFixture(t)

	result := r.Resolve(cat, "show me center code es0263")
	require.Equal(t, OutcomeSingle, result.Outcome)
	assert.Equal(t, 1.0, result.Best().Score)
	assert.True(t, result.Best().Direct)
	assert.True(t, result.Intent.WantsCode)
	assert.False(t, result.Intent.WantsID)
}

func TestResolve_DirectMatchIgnoresLocationFilter(t *testing.T) {
	r, cat := loadFixture(t)

	result := r.Resolve(cat, "ES0105 in Barcelona")
	require.Equal(t, OutcomeSingle, result.Outcome)
	assert.Equal(t, "ES0105", result.Best().Record.Code)
}

func TestResolve_SeveralIdentifiersAskForClarification(t *testing.T) {
	r, cat := loadFixture(t)

	result := r.Resolve(cat, "ES0263 or ES0323")
	require.Equal(t, OutcomeClarification, result.Outcome)
	assert.Equal(t, []string{"ES0263", "ES0323"}, codes(result))
}

func TestResolve_SingleRecordCatalog(t *testing.T) {
	r := newTestResolver()
	cat := r.BuildIndex([]CenterRow{{
		ID: "ES0263", Code: "ES0263", Name: "Centro A",
		City: "Barcelona", Province: "Barcelona", Address: "Av. los Pescadores 6",
	}})

	result := r.Resolve(cat, "show me center code ES0263")
	require.Equal(t, OutcomeSingle, result.Outcome)
	assert.Equal(t, "ES0263", result.Best().Record.ID)
}

func TestResolve_SantAndreuListsBothCenters(t *testing.T) {
	r, cat := loadFixture(t)

	result := r.Resolve(cat, "centers in Sant Andreu de la Barca Barcelona")
	require.Equal(t, OutcomeClarification, result.Outcome)
	assert.Contains(t, codes(result), "ES0172")
	assert.Contains(t, codes(result), "ES0329")
}

func TestResolve_StopwordsOnlyIsUnderspecified(t *testing.T) {
	r, cat := loadFixture(t)

	for _, msg := range []string{"what is the", "", "   ", "show me the center code"} {
		result := r.Resolve(cat, msg)
		assert.Equal(t, OutcomeUnderspecified, result.Outcome, "message %q", msg)
	}
}

func TestResolve_NonsenseIsNoMatch(t *testing.T) {
	r, cat := loadFixture(t)

	for _, msg := range []string{"xylophone", "quantum banana"} {
		result := r.Resolve(cat, msg)
		assert.Equal(t, OutcomeNoMatch, result.Outcome, "message %q got %v", msg, codes(result))
	}
}

func TestResolve_EmptyCatalogIsUnavailable(t *testing.T) {
	r := newTestResolver()

	assert.Equal(t, OutcomeUnavailable, r.Resolve(nil, "Padilla 239").Outcome)
	assert.Equal(t, OutcomeUnavailable, r.Resolve(r.BuildIndex(nil), "Padilla 239").Outcome)
	assert.Equal(t, OutcomeUnavailable, r.Resolve(r.BuildIndex(nil), "what is the").Outcome)
}

func TestResolve_LocationHintKeepsWeakCandidate(t *testing.T) {
	r := newTestResolver()
	cat := r.BuildIndex([]CenterRow{
		weakCityRow,
		{ID: "W-2", Code: "W2", Name: "Kiruna", City: "Umea", Province: "Norrbotten"},
	})

	result := r.Resolve(cat, weakCityQuery())
	require.Equal(t, OutcomeSingle, result.Outcome)
	assert.Equal(t, "W1", result.Best().Record.Code)
	assert.InDelta(t, 0.384, result.Best().Score, 1e-9)
}

func TestResolve_ScoresAreNotClamped(t *testing.T) {
	r, cat := loadFixture(t)

	result := r.Resolve(cat, "Padilla 239 in Barcelona")
	require.Equal(t, OutcomeSingle, result.Outcome)
	assert.InDelta(t, 2.5807142857142855, result.Best().Score, 1e-9)
}

func TestResolve_ConcurrentQueriesShareSnapshot(t *testing.T) {
	r, cat := loadFixture(t)

	done := make(chan string, 16)
	for i := 0; i < 16; i++ {
		go func(i int) {
			msg := "Padilla 239 in Barcelona"
			if i%2 == 0 {
				msg = "center id for Sardinia 200 Barcelona"
			}
			res := r.Resolve(cat, msg)
			done <- fmt.Sprintf("%s|%s", msg, res.Best().Record.Code)
		}(i)
	}
	for i := 0; i < 16; i++ {
		got := <-done
		assert.Contains(t, []string{
			"Padilla 239 in Barcelona|ES0323",
			"center id for Sardinia 200 Barcelona|ES0284",
		}, got)
	}
}

func TestDecide_GapRule(t *testing.T) {
	a := &CenterRecord{Code: "A"}
	b := &CenterRecord{Code: "B"}

	single := decide([]MatchCandidate{{Record: a, Score: 0.80}, {Record: b, Score: 0.60}}, Intent{})
	require.Equal(t, OutcomeSingle, single.Outcome)
	assert.Equal(t, "A", single.Best().Record.Code)

	clarify := decide([]MatchCandidate{{Record: a, Score: 0.80}, {Record: b, Score: 0.70}}, Intent{WantsID: true})
	require.Equal(t, OutcomeClarification, clarify.Outcome)
	assert.Equal(t, []string{"A", "B"}, codes(clarify))
	assert.True(t, clarify.Intent.WantsID)

	assert.Equal(t, OutcomeNoMatch, decide(nil, Intent{}).Outcome)
	assert.Equal(t, OutcomeSingle, decide([]MatchCandidate{{Record: a, Score: 0.41}}, Intent{}).Outcome)
}

func TestDecide_ClarificationListIsCapped(t *testing.T) {
	candidates := make([]MatchCandidate, 12)
	for i := range candidates {
		candidates[i] = MatchCandidate{Record: &CenterRecord{Code: fmt.Sprintf("C%02d", i)}, Score: 0.9}
	}

	result := decide(candidates, Intent{})
	require.Equal(t, OutcomeClarification, result.Outcome)
	assert.Len(t, result.Candidates, 10)
	assert.Equal(t, "C00", result.Candidates[0].Record.Code)
}

func TestRerank(t *testing.T) {
	a := &CenterRecord{Code: "A"}
	b := &CenterRecord{Code: "B"}
	c := &CenterRecord{Code: "C"}

	t.Run("prefers candidates with a location score", func(t *testing.T) {
		out := rerank([]MatchCandidate{
			{Record: a, Score: 0.9, LocationScore: 0.1},
			{Record: b, Score: 0.5, LocationScore: 0.5},
			{Record: c, Score: 0.7, LocationScore: 0.45},
		}, false)
		assert.Equal(t, []string{"C", "B"}, codes(MatchResult{Candidates: out}))
	})

	t.Run("filtered query keeps everything ordered by location", func(t *testing.T) {
		out := rerank([]MatchCandidate{
			{Record: a, Score: 0.9, LocationScore: 0.1},
			{Record: b, Score: 0.5, LocationScore: 0.3},
			{Record: c, Score: 0.7, LocationScore: 0.3},
		}, true)
		assert.Equal(t, []string{"C", "B", "A"}, codes(MatchResult{Candidates: out}))
	})

	t.Run("stable on ties", func(t *testing.T) {
		out := rerank([]MatchCandidate{
			{Record: a, Score: 0.6, LocationScore: 0.5},
			{Record: b, Score: 0.6, LocationScore: 0.5},
		}, false)
		assert.Equal(t, []string{"A", "B"}, codes(MatchResult{Candidates: out}))
	})

	t.Run("unfiltered query without location keeps score order", func(t *testing.T) {
		out := rerank([]MatchCandidate{
			{Record: a, Score: 0.5, LocationScore: 0.1},
			{Record: b, Score: 0.9, LocationScore: 0.2},
		}, false)
		assert.Equal(t, []string{"B", "A"}, codes(MatchResult{Candidates: out}))
	})
}
