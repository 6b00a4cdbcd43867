// Package frame implements the per-coroutine execution frame and its eight
// symbol variables (spec §4.3), plus the Stack that holds them.
package frame

import "github.com/purc-go/purc/variant"

// SymbolKey indexes the eight punctuation-named symbol variables.
type SymbolKey int

const (
	SymLess SymbolKey = iota // <  immediate input from parent frame
	SymAt                    // @  parent's output-DOM insertion point, wrapped
	SymBang                  // !  fresh scratch object bag
	SymQuestion              // ?  result of the most recently completed child frame
	SymPercent               // %  iteration counter
	SymCaret                 // ^  reserved
	SymAmp                   // &  reserved
	SymColon                 // :  reserved

	symbolCount = 8
)

func (k SymbolKey) String() string {
	return [symbolCount]string{"<", "@", "!", "?", "%", "^", "&", ":"}[k]
}

// ParseSymbol maps a punctuation token to its SymbolKey.
func ParseSymbol(tok string) (SymbolKey, bool) {
	switch tok {
	case "<":
		return SymLess, true
	case "@":
		return SymAt, true
	case "!":
		return SymBang, true
	case "?":
		return SymQuestion, true
	case "%":
		return SymPercent, true
	case "^":
		return SymCaret, true
	case "&":
		return SymAmp, true
	case ":":
		return SymColon, true
	default:
		return 0, false
	}
}

type symbolTable [symbolCount]*variant.Value

// newSymbolTable sets every symbol to undefined, then (for a Normal frame)
// overwrites `%` with 0, mirroring init_symvals_with_vals in
// original_source/Source/PurC/interpreter/interpreter.c: init_undefined_symvals
// first, then init_percent_symval only for non-pseudo frames.
func newSymbolTable(kind Kind) symbolTable {
	var t symbolTable
	for i := range t {
		t[i] = variant.Undef()
	}
	if kind != Pseudo {
		t[SymPercent] = variant.U64(0)
	}
	return t
}
