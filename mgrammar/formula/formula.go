// Package formula implements the SQL-like "formula" mini-grammar the
// REDUCE/SORT executors accept (spec §6): a comma-separated list of
// field-or-aggregate selectors, e.g. "name, count(*), sum(amount)".
// Grounded on the same executor token family as package key/filter.
package formula

import "strings"

// Selector is one output column of a formula: either a bare field or an
// aggregate function call over a field ("*" for count(*)).
type Selector struct {
	Func  string // "" for a bare field
	Field string
}

// Formula is an ordered list of selectors.
type Formula struct {
	Selectors []Selector
}

// Parse tokenizes and parses a formula string.
func Parse(s string) (*Formula, error) {
	f := &Formula{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		f.Selectors = append(f.Selectors, parseSelector(part))
	}
	return f, nil
}

func parseSelector(s string) Selector {
	if i := strings.IndexByte(s, '('); i >= 0 && strings.HasSuffix(s, ")") {
		return Selector{Func: s[:i], Field: s[i+1 : len(s)-1]}
	}
	return Selector{Field: s}
}

// String renders the formula back to its canonical comma-joined form.
func (f *Formula) String() string {
	parts := make([]string, len(f.Selectors))
	for i, sel := range f.Selectors {
		if sel.Func == "" {
			parts[i] = sel.Field
			continue
		}
		parts[i] = sel.Func + "(" + sel.Field + ")"
	}
	return strings.Join(parts, ", ")
}
