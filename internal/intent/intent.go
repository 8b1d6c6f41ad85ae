// Package intent resolves natural language input to command invocations.
//
// Resolution is an ordered scan over a table of regex rules: the first rule
// whose pattern matches the normalized input wins, its capture groups are
// cleaned into argument slots, and the slot values are substituted into the
// rule's command template. No scoring, no fuzzy ranking. Identical input
// against an identical table always yields the identical command, which
// keeps the feature testable and its misfires explainable by reading the
// table top to bottom.
//
// The builtin table ships in rules.go; deployments may append their own
// rules from a YAML pack via LoadRuleFile.
package intent

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Adi-aygd/nlterm/internal/parser"
	"github.com/Adi-aygd/nlterm/internal/shared/types"
)

// Rule maps one input pattern to a command template. Templates reference
// capture groups through {slot} placeholders; Slots lists placeholder
// names in capture-group order and may be omitted when that order equals
// the order placeholders appear in the template.
type Rule struct {
	Category string
	Pattern  *regexp.Regexp
	Template string
	Slots    []string
	Examples []string
}

// Translation is a successful resolution: the invocation to dispatch, the
// rendered command line shown to the user, and the rule that produced it.
type Translation struct {
	Invocation types.Invocation
	Rendered   string
	Rule       *Rule
}

// Table is an ordered rule list. Earlier rules shadow later ones, so
// narrow patterns must precede broad ones. Append all custom rules before
// serving traffic; Translate does not lock.
type Table struct {
	rules []Rule
}

// NewTable returns a table holding the builtin rules.
func NewTable() *Table {
	return &Table{rules: builtinRules()}
}

// NewEmptyTable returns a table with no rules. Used by tests and rule pack
// tooling.
func NewEmptyTable() *Table {
	return &Table{}
}

// Len returns the number of rules in the table.
func (t *Table) Len() int {
	return len(t.rules)
}

// Rules exposes the table for iteration. Callers must not modify it.
func (t *Table) Rules() []Rule {
	return t.rules
}

// Append validates rules and adds them after the existing ones. On any
// validation error the table is left unchanged.
func (t *Table) Append(rules ...Rule) error {
	for i := range rules {
		if err := rules[i].validate(); err != nil {
			return fmt.Errorf("rule %d (%s): %w", i, rules[i].Category, err)
		}
	}
	t.rules = append(t.rules, rules...)
	return nil
}

// Translate resolves text to a command. It returns false when no rule
// matches or the matching rule's required slots clean to nothing.
func (t *Table) Translate(text string) (*Translation, bool) {
	q := Normalize(text)
	if q == "" {
		return nil, false
	}

	for i := range t.rules {
		r := &t.rules[i]
		m := r.Pattern.FindStringSubmatch(q)
		if m == nil {
			continue
		}
		rendered, ok := r.instantiate(m)
		if !ok {
			// A matched pattern with an empty required slot falls
			// through to later rules.
			continue
		}
		tokens := parser.Tokenize(rendered)
		if len(tokens) == 0 {
			continue
		}
		return &Translation{
			Invocation: types.Invocation{Command: tokens[0], Args: tokens[1:]},
			Rendered:   rendered,
			Rule:       r,
		}, true
	}
	return nil, false
}

// Normalize lower-cases, trims, and collapses internal whitespace. All
// matching and slot extraction operates on normalized text.
func Normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

var placeholderRe = regexp.MustCompile(`\{(\w+)\}`)

// slotNames returns the effective capture-group ordering for the rule.
func (r *Rule) slotNames() []string {
	if len(r.Slots) > 0 {
		return r.Slots
	}
	return placeholders(r.Template)
}

// placeholders lists the distinct {slot} names in template order.
func placeholders(template string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range placeholderRe.FindAllStringSubmatch(template, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			out = append(out, m[1])
		}
	}
	return out
}

// instantiate substitutes cleaned capture groups into the template. The
// bool is false when a required slot cleans to nothing.
func (r *Rule) instantiate(match []string) (string, bool) {
	rendered := r.Template
	for i, slot := range r.slotNames() {
		raw := ""
		if i+1 < len(match) {
			raw = match[i+1]
		}
		value, ok := cleanSlot(slot, raw)
		if !ok {
			return "", false
		}
		rendered = strings.ReplaceAll(rendered, "{"+slot+"}", value)
	}
	return rendered, true
}

// knownSlots enumerates the placeholder vocabulary. The name slot cleans
// as a filename; the rest clean as paths.
var knownSlots = map[string]bool{
	"path":   true,
	"name":   true,
	"source": true,
	"dest":   true,
	"target": true,
	"file":   true,
}

func (r *Rule) validate() error {
	if r.Category == "" {
		return fmt.Errorf("missing category")
	}
	if r.Pattern == nil {
		return fmt.Errorf("missing pattern")
	}
	if strings.TrimSpace(r.Template) == "" {
		return fmt.Errorf("missing template")
	}

	slots := r.slotNames()
	for _, s := range slots {
		if !knownSlots[s] {
			return fmt.Errorf("unknown slot {%s}", s)
		}
	}
	if n := r.Pattern.NumSubexp(); n < len(slots) {
		return fmt.Errorf("pattern has %d capture groups for %d slots", n, len(slots))
	}

	// Explicit slot lists must cover every placeholder in the template.
	for _, ph := range placeholders(r.Template) {
		found := false
		for _, s := range slots {
			if s == ph {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("template placeholder {%s} has no slot", ph)
		}
	}
	return nil
}
