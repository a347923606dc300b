package router

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ruleConfig is the YAML wire form of a Rule. CacheTTL is a duration
// string ("5m", "1h").
type ruleConfig struct {
	Rank     int         `yaml:"rank"`
	Intent   string      `yaml:"intent"`
	Keywords []string    `yaml:"keywords"`
	Excludes []string    `yaml:"excludes"`
	Patterns []string    `yaml:"patterns"`
	Params   []ParamSpec `yaml:"params"`
	CacheTTL string      `yaml:"cache_ttl"`
}

type ruleFile struct {
	Rules []ruleConfig `yaml:"rules"`
}

// ParseRules decodes a YAML rule document. The result still has to go
// through NewTable for validation.
func ParseRules(data []byte) ([]Rule, error) {
	var f ruleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("router: parsing rules: %w", err)
	}
	if len(f.Rules) == 0 {
		return nil, fmt.Errorf("router: rule file declares no rules")
	}

	rules := make([]Rule, 0, len(f.Rules))
	for _, rc := range f.Rules {
		r := Rule{
			Rank:     rc.Rank,
			Intent:   rc.Intent,
			Keywords: rc.Keywords,
			Excludes: rc.Excludes,
			Patterns: rc.Patterns,
			Params:   rc.Params,
		}
		if rc.CacheTTL != "" {
			ttl, err := time.ParseDuration(rc.CacheTTL)
			if err != nil {
				return nil, fmt.Errorf("router: rule %q: cache_ttl %q: %w", rc.Intent, rc.CacheTTL, err)
			}
			r.CacheTTL = ttl
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// LoadTable reads a YAML rule file and builds a validated table from it.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("router: reading rule file: %w", err)
	}
	rules, err := ParseRules(data)
	if err != nil {
		return nil, err
	}
	return NewTable(rules)
}
