package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tn := Default()

	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"catalan diacritics", "Sant Andreu de la Barca", "sant andreu de la barca"},
		{"accented name", "Constitució", "constitucio"},
		{"spanish accents", "San Sebastián", "san sebastian"},
		{"transliteration fallback", "Straße", "strasse"},
		{"whitespace collapse", "  Padilla   239 ", "padilla 239"},
		{"number words", "Sardinia two hundred", "sardenya 200"},
		{"number with connector", "one hundred and five", "105"},
		{"number with scale", "two thousand three hundred twelve", "2312"},
		{"tens and units", "Fuencarral one hundred twenty", "fuencarral 120"},
		{"invalid run kept", "one two", "one two"},
		{"bare connector kept", "rock and roll", "rock and roll"},
		{"alias order", "Islas Baleares", "illes balears"},
		{"single alias", "Baleares", "illes balears"},
		{"street type alias", "Avenida Diagonal", "av diagonal"},
		{"alias keeps punctuation", "Sardinia, 200", "sardenya, 200"},
		{"alias word boundary", "sardinias", "sardinias"},
		{"empty", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tn.Normalize(tc.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	tn := Default()

	inputs := []string{
		"Centers in Sant Andreu de la Barca, Barcelona",
		"Cali d Sardinia two hundred",
		"Santa Cruz, the Tenerefaith",
		"one two three",
		"and and",
		"ninety nine thousand and one",
		"Islas Baleares / Gerona / La Coruña",
		"C/ Padilla 239",
		"Av. Constitució 45",
		"Øresund Straße",
		"calle carrer avenida avda",
	}

	for _, in := range inputs {
		once := tn.Normalize(in)
		assert.Equal(t, once, tn.Normalize(once), "input %q", in)
	}
}

func TestNormalize_TwoHundredBecomesToken(t *testing.T) {
	tn := Default()

	tokens := Tokens(tn.Normalize("Cali d Sardinia two hundred"))
	assert.Contains(t, tokens, "200")
}

func TestNormalizeAny(t *testing.T) {
	tn := Default()

	assert.Equal(t, "", tn.NormalizeAny(nil))
	assert.Equal(t, "", tn.NormalizeAny(42))
	assert.Equal(t, "", tn.NormalizeAny([]string{"Madrid"}))
	assert.Equal(t, "madrid", tn.NormalizeAny("Madrid"))
}

func TestAliasTableIsClosed(t *testing.T) {
	tn := Default()

	for _, rule := range tn.Rules().Aliases {
		assert.Equal(t, rule.To, tn.Normalize(rule.To), "alias target %q is rewritten again", rule.To)
	}
}

func TestWordsToNumber(t *testing.T) {
	testCases := []struct {
		run []string
		out string
		ok  bool
	}{
		{[]string{"zero"}, "0", true},
		{[]string{"hundred"}, "100", true},
		{[]string{"twenty", "one"}, "21", true},
		{[]string{"nineteen", "hundred"}, "1900", true},
		{[]string{"one", "million", "two", "thousand"}, "1002000", true},
		{[]string{"and"}, "", false},
		{[]string{"one", "two"}, "", false},
		{[]string{"twenty", "thirty"}, "", false},
		{[]string{"twenty", "hundred"}, "", false},
		{[]string{"thousand", "million"}, "", false},
	}

	for _, tc := range testCases {
		out, ok := wordsToNumber(tc.run)
		assert.Equal(t, tc.ok, ok, "run %v", tc.run)
		assert.Equal(t, tc.out, out, "run %v", tc.run)
	}
}

func TestNewTextNormalizerFromRules_RejectsEmptyAlias(t *testing.T) {
	_, err := NewTextNormalizerFromRules(&RulesConfig{Aliases: []AliasRule{{From: " ", To: "x"}}})
	require.Error(t, err)
}
