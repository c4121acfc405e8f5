package normalizer

import (
	"strings"
	"unicode"
)

// Tokens splits normalized text on whitespace and trims leading and trailing
// punctuation from each token. Tokens that are pure punctuation are dropped.
func Tokens(normalized string) []string {
	fields := strings.Fields(normalized)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if tok := strings.TrimFunc(f, isPunct); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// CleanToken removes every non letter/digit rune from a token ("es-0263." -> "es0263").
func CleanToken(tok string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, tok)
}

func isPunct(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// IsStopword reports whether tok is excluded from significant-token sets.
func (tn *TextNormalizer) IsStopword(tok string) bool {
	_, ok := tn.stopwords[tok]
	return ok
}

// SignificantTokens returns the non-stopword tokens in order of first
// appearance together with their set. The result may be empty.
func (tn *TextNormalizer) SignificantTokens(normalized string) ([]string, map[string]struct{}) {
	return tn.filter(Tokens(normalized))
}

// FieldTokens is SignificantTokens for catalog fields: when every token is a
// stopword the unfiltered tokens are used instead.
func (tn *TextNormalizer) FieldTokens(normalized string) ([]string, map[string]struct{}) {
	all := Tokens(normalized)
	ordered, set := tn.filter(all)
	if len(ordered) > 0 {
		return ordered, set
	}
	return dedupe(all)
}

func (tn *TextNormalizer) filter(tokens []string) ([]string, map[string]struct{}) {
	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if !tn.IsStopword(tok) {
			kept = append(kept, tok)
		}
	}
	return dedupe(kept)
}

func dedupe(tokens []string) ([]string, map[string]struct{}) {
	set := make(map[string]struct{}, len(tokens))
	ordered := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, dup := set[tok]; dup {
			continue
		}
		set[tok] = struct{}{}
		ordered = append(ordered, tok)
	}
	return ordered, set
}
