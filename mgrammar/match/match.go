// Package match implements the <match> element's comparator mini-grammar
// (spec §6), expanded per original_source/Source/PurC/interpreter/match.c's
// full comparator set rather than spec.md's minimal equality-only
// description: "eq"/"ne"/"gt"/"ge"/"lt"/"le"/"like"/"in" against a literal
// or comma-separated literal list.
package match

import "strings"

// Comparator is the named relation a <match> clause applies.
type Comparator string

const (
	Eq   Comparator = "eq"
	Ne   Comparator = "ne"
	Gt   Comparator = "gt"
	Ge   Comparator = "ge"
	Lt   Comparator = "lt"
	Le   Comparator = "le"
	Like Comparator = "like"
	In   Comparator = "in"
)

// Clause is one parsed "<comparator> <operand>" expression, e.g.
// "eq 'ready'" or "in 'a','b','c'".
type Clause struct {
	Cmp      Comparator
	Operands []string
}

// Parse splits s into a comparator keyword and its comma-separated operand
// list.
func Parse(s string) (*Clause, error) {
	fields := strings.SplitN(strings.TrimSpace(s), " ", 2)
	if len(fields) != 2 {
		return nil, errBadClause
	}
	cmp := Comparator(fields[0])
	var operands []string
	for _, op := range strings.Split(fields[1], ",") {
		operands = append(operands, strings.Trim(strings.TrimSpace(op), `'"`))
	}
	return &Clause{Cmp: cmp, Operands: operands}, nil
}

var errBadClause = matchErr("match: clause needs a comparator and at least one operand")

type matchErr string

func (e matchErr) Error() string { return string(e) }

// Eval applies the clause against value.
func (c *Clause) Eval(value string) bool {
	switch c.Cmp {
	case Eq:
		return len(c.Operands) > 0 && value == c.Operands[0]
	case Ne:
		return len(c.Operands) > 0 && value != c.Operands[0]
	case Gt:
		return len(c.Operands) > 0 && value > c.Operands[0]
	case Ge:
		return len(c.Operands) > 0 && value >= c.Operands[0]
	case Lt:
		return len(c.Operands) > 0 && value < c.Operands[0]
	case Le:
		return len(c.Operands) > 0 && value <= c.Operands[0]
	case Like:
		return len(c.Operands) > 0 && strings.Contains(value, c.Operands[0])
	case In:
		for _, o := range c.Operands {
			if o == value {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// String renders the clause back to its canonical form.
func (c *Clause) String() string {
	quoted := make([]string, len(c.Operands))
	for i, o := range c.Operands {
		quoted[i] = "'" + o + "'"
	}
	return string(c.Cmp) + " " + strings.Join(quoted, ",")
}
