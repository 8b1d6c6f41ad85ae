package intent

// Examples aggregates the example phrases attached to rules, keyed by
// category. Within a category the phrases keep table order.
func (t *Table) Examples() map[string][]string {
	out := make(map[string][]string)
	for i := range t.rules {
		r := &t.rules[i]
		if len(r.Examples) > 0 {
			out[r.Category] = append(out[r.Category], r.Examples...)
		}
	}
	return out
}

// Categories lists the category names in first-appearance order, giving
// renderers a stable iteration order over the Examples map.
func (t *Table) Categories() []string {
	var out []string
	seen := make(map[string]bool)
	for i := range t.rules {
		c := t.rules[i].Category
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// ExampleQueries flattens every example phrase into one list in table
// order. The REPL's "ai examples" listing renders this.
func (t *Table) ExampleQueries() []string {
	var out []string
	for i := range t.rules {
		out = append(out, t.rules[i].Examples...)
	}
	return out
}
