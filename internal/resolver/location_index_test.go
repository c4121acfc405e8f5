package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func values(entries []LocationIndexEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Value
	}
	return out
}

func tokenSet(tokens ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}

func TestBuildLocationIndex_Deduplicates(t *testing.T) {
	_, cat := loadFixture(t)

	assert.Equal(t, []string{
		"castelldefels", "barcelona", "sant andreu de la barca",
		"santa cruz de tenerife", "madrid", "san sebastian",
	}, values(cat.Cities))
	assert.Equal(t, []string{"barcelona", "santa cruz de tenerife", "madrid", "gipuzkoa"}, values(cat.Provinces))

	for _, e := range cat.Cities {
		if e.Value == "sant andreu de la barca" {
			assert.Equal(t, tokenSet("sant", "andreu", "barca"), e.Tokens)
		}
	}
}

func TestDetectHints_FixtureQuery(t *testing.T) {
	r, cat := loadFixture(t)
	q := r.Analyze("centers in Sant Andreu de la Barca Barcelona")

	assert.Equal(t, tokenSet("sant andreu de la barca", "barcelona"), DetectHints(q.TokenSet, q.Normalized, cat.Cities))
	assert.Equal(t, tokenSet("barcelona"), DetectHints(q.TokenSet, q.Normalized, cat.Provinces))
}

func TestDetectHints_Rules(t *testing.T) {
	entries := []LocationIndexEntry{
		{Value: "madrid", Tokens: tokenSet("madrid")},
		{Value: "a1 b1", Tokens: tokenSet("a1", "b1")},
		{Value: "a1 b1 c1", Tokens: tokenSet("a1", "b1", "c1")},
		{Value: "x1 y1 z1 w1 v1", Tokens: tokenSet("x1", "y1", "z1", "w1", "v1")},
		{Value: "tenerife", Tokens: tokenSet("tenerife")},
	}

	testCases := []struct {
		name       string
		tokens     map[string]struct{}
		normalized string
		expected   map[string]struct{}
	}{
		{"single token entry", tokenSet("madrid", "chamberi"), "madrid chamberi", tokenSet("madrid")},
		{"half of a two token entry", tokenSet("a1"), "a1", tokenSet("a1 b1")},
		{"two thirds of a three token entry", tokenSet("a1", "b1"), "a1 b1", tokenSet("a1 b1", "a1 b1 c1")},
		{"two of five tokens", tokenSet("x1", "y1"), "x1 y1", tokenSet("x1 y1 z1 w1 v1")},
		{"one of five tokens is not enough", tokenSet("x1"), "x1", tokenSet()},
		{"whole string similarity", tokenSet("tenerif"), "tenerif", tokenSet("tenerife")},
		{"nothing", tokenSet("padilla"), "padilla", tokenSet()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, DetectHints(tc.tokens, tc.normalized, entries))
		})
	}
}

func TestFilterByLocation(t *testing.T) {
	r, cat := loadFixture(t)

	q := r.Analyze("centers in Sant Andreu de la Barca Barcelona")
	q.CityHints = tokenSet("sant andreu de la barca")
	q.ProvinceHints = tokenSet("madrid")
	pool, active := filterByLocation(cat.Records, q)
	assert.True(t, active)
	assert.Len(t, pool, 2, "province filter would empty the pool and is skipped")

	q.CityHints = tokenSet()
	q.ProvinceHints = tokenSet()
	pool, active = filterByLocation(cat.Records, q)
	assert.False(t, active)
	assert.Len(t, pool, cat.Len())
}
