package intent

import (
	"fmt"
	"os"
	"regexp"

	"github.com/goccy/go-yaml"
)

// RuleSpec is the YAML form of one rule in a rule pack.
type RuleSpec struct {
	Category string   `yaml:"category"`
	Pattern  string   `yaml:"pattern"`
	Template string   `yaml:"template"`
	Slots    []string `yaml:"slots,omitempty"`
	Examples []string `yaml:"examples,omitempty"`
}

type ruleFile struct {
	Rules []RuleSpec `yaml:"rules"`
}

// LoadRuleFile parses a YAML rule pack. Any malformed entry rejects the
// whole file so a deployment cannot end up with half a pack loaded.
func LoadRuleFile(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule file: %w", err)
	}

	var file ruleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse rule file %s: %w", path, err)
	}
	if len(file.Rules) == 0 {
		return nil, fmt.Errorf("rule file %s contains no rules", path)
	}

	rules := make([]Rule, 0, len(file.Rules))
	for i, spec := range file.Rules {
		re, err := regexp.Compile(spec.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %d (%s): bad pattern: %w", i, spec.Category, err)
		}
		r := Rule{
			Category: spec.Category,
			Pattern:  re,
			Template: spec.Template,
			Slots:    spec.Slots,
			Examples: spec.Examples,
		}
		if err := r.validate(); err != nil {
			return nil, fmt.Errorf("rule %d (%s): %w", i, spec.Category, err)
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// LoadFile appends the rules from a YAML pack after the current table and
// returns how many were added. The table is unchanged on error.
func (t *Table) LoadFile(path string) (int, error) {
	rules, err := LoadRuleFile(path)
	if err != nil {
		return 0, err
	}
	if err := t.Append(rules...); err != nil {
		return 0, err
	}
	return len(rules), nil
}
