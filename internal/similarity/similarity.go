// Package similarity holds the string metrics the scorer combines: a
// character-sequence ratio, a normalized edit-distance similarity and a
// phonetic key.
package similarity

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/xrash/smetrics"
)

// MinPhoneticLen: tokens of this length or shorter get no phonetic key.
const MinPhoneticLen = 2

// Ratio returns the character-sequence similarity 2*M/T of a and b, where M is
// the number of characters in matching blocks and T the total length. Two empty
// strings are identical (1.0).
func Ratio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.Ratio()
}

// TokenSimilarity returns 1 - editDistance/maxLen, in [0,1].
func TokenSimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := max(len([]rune(a)), len([]rune(b)))
	if maxLen == 0 {
		return 1.0
	}
	d := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(d)/float64(maxLen)
}

// Phonetic returns the Soundex key of a token. Tokens that are too short or do
// not start with a letter have no key (house numbers would otherwise all
// collapse to the same code).
func Phonetic(tok string) (string, bool) {
	if len(tok) <= MinPhoneticLen {
		return "", false
	}
	c := tok[0]
	if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
		return "", false
	}
	return smetrics.Soundex(tok), true
}
