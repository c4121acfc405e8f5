// Package normalizer turns free text into the canonical form used for matching:
// diacritics stripped, lowercase ASCII, number words collapsed to digits and
// regional spelling variants rewritten through an ordered alias table.
package normalizer

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

type compiledAlias struct {
	pattern *regexp.Regexp
	to      string
}

// TextNormalizer is immutable after construction and safe for concurrent use.
type TextNormalizer struct {
	rules     *RulesConfig
	aliases   []compiledAlias
	stopwords map[string]struct{}
}

var (
	defaultOnce       sync.Once
	defaultNormalizer *TextNormalizer
)

// Default returns the normalizer built from the embedded rule tables.
// It panics if the embedded tables are malformed, which is a build defect.
func Default() *TextNormalizer {
	defaultOnce.Do(func() {
		tn, err := NewTextNormalizer()
		if err != nil {
			panic(fmt.Sprintf("normalizer: embedded rules: %v", err))
		}
		defaultNormalizer = tn
	})
	return defaultNormalizer
}

// NewTextNormalizer creates a normalizer from the embedded rule tables.
func NewTextNormalizer() (*TextNormalizer, error) {
	cfg, err := LoadRulesConfig()
	if err != nil {
		return nil, err
	}
	return NewTextNormalizerFromRules(cfg)
}

// NewTextNormalizerFromRules creates a normalizer from an explicit rule set.
func NewTextNormalizerFromRules(cfg *RulesConfig) (*TextNormalizer, error) {
	tn := &TextNormalizer{
		rules:     cfg,
		aliases:   make([]compiledAlias, 0, len(cfg.Aliases)),
		stopwords: make(map[string]struct{}, len(cfg.Stopwords)),
	}

	for _, rule := range cfg.Aliases {
		from := foldText(strings.TrimSpace(rule.From))
		if from == "" {
			return nil, fmt.Errorf("alias rule with empty source (to=%q)", rule.To)
		}
		re, err := regexp.Compile(`\b` + regexp.QuoteMeta(from) + `\b`)
		if err != nil {
			return nil, fmt.Errorf("compile alias %q: %w", rule.From, err)
		}
		tn.aliases = append(tn.aliases, compiledAlias{pattern: re, to: foldText(rule.To)})
	}

	for _, w := range cfg.Stopwords {
		tn.stopwords[foldText(w)] = struct{}{}
	}

	return tn, nil
}

// Rules returns the rule tables the normalizer was built from.
func (tn *TextNormalizer) Rules() *RulesConfig {
	return tn.rules
}

// Normalize returns the canonical form of text. The result is a pure function
// of the input and the rule tables, and Normalize(Normalize(x)) == Normalize(x).
func (tn *TextNormalizer) Normalize(text string) string {
	s := foldText(text)
	s = collapseNumberWords(s)
	return tn.applyAliases(s)
}

// NormalizeAny normalizes loosely typed input. Anything that is not a string
// yields "".
func (tn *TextNormalizer) NormalizeAny(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return tn.Normalize(s)
}

func (tn *TextNormalizer) applyAliases(s string) string {
	for _, a := range tn.aliases {
		s = a.pattern.ReplaceAllLiteralString(s, a.to)
	}
	return s
}
