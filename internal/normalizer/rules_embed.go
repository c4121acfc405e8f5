package normalizer

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/aliases.yaml
var aliasesYAML []byte

//go:embed data/stopwords.yaml
var stopwordsYAML []byte

//go:embed data/intents.yaml
var intentsYAML []byte

// AliasRule là một phép thay thế nguyên từ, áp dụng theo thứ tự trong bảng
type AliasRule struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// IntentKeywords chứa các tập từ khoá cho cờ intent
type IntentKeywords struct {
	ID      []string `yaml:"id"`
	Code    []string `yaml:"code"`
	Machine []string `yaml:"machine"`
}

// RulesConfig chứa cấu hình rules được load từ YAML
type RulesConfig struct {
	Aliases   []AliasRule    `yaml:"aliases"`
	Stopwords []string       `yaml:"stopwords"`
	Intents   IntentKeywords `yaml:"intents"`
}

// LoadRulesConfig load cấu hình rules từ embedded YAML files
func LoadRulesConfig() (*RulesConfig, error) {
	config := &RulesConfig{}

	sources := []struct {
		name string
		data []byte
	}{
		{"aliases.yaml", aliasesYAML},
		{"stopwords.yaml", stopwordsYAML},
		{"intents.yaml", intentsYAML},
	}
	for _, src := range sources {
		if err := yaml.Unmarshal(src.data, config); err != nil {
			return nil, fmt.Errorf("parse %s: %w", src.name, err)
		}
	}

	return config, nil
}
