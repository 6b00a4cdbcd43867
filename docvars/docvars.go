// Package docvars builds the built-in document variables spec §6 lists:
// $HVML, $SYSTEM, $DATETIME, $T, $L, $STR, $STREAM, $DOC, $SESSION, $EJSON,
// $TIMERS, plus a supplemented $RUNNER coroutine-identity variable (no
// original-source function backs this one; see New's doc comment). Grounded
// on the teacher's stdlib registration pattern (src/stdlib.go's table of
// name -> Dynamic-like callable) generalized from PSL verbs to read-only
// document variants.
package docvars

import (
	"runtime"
	"time"

	"github.com/purc-go/purc/variant"
)

// Set bundles every built-in document variable as a ready-to-bind Object,
// keyed by name without the leading '$' (spec §6's doc-var table).
type Set struct {
	vars map[string]*variant.Value
}

// New builds the fixed doc-var table for one coroutine. coroutineID seeds
// $RUNNER.id, a supplemented doc-var giving HVML code a way to read its own
// coroutine identity; there is no pcintr_bind_builtin_runner_variable or
// equivalent in the pack's original_source to ground this on (the symbol
// doesn't exist anywhere in interpreter.c), so this is a from-spec design
// choice, not a port: it reuses coroutine.Coroutine's own ID field
// (coroutine.go's CoroutineID) rather than inventing a separate identity
// scheme.
func New(coroutineID int64, doc *variant.Value, timers *variant.Value) *Set {
	s := &Set{vars: map[string]*variant.Value{}}
	s.vars["HVML"] = variant.MakeObjectByCKeys()
	s.vars["SYSTEM"] = variant.MakeObjectByCKeys(
		"os", variant.Str(runtime.GOOS),
		"arch", variant.Str(runtime.GOARCH),
	)
	s.vars["DATETIME"] = variant.Dyn(func(args []*variant.Value) *variant.Value {
		return variant.Str(time.Now().Format(time.RFC3339))
	}, nil)
	s.vars["T"] = variant.Dyn(func(args []*variant.Value) *variant.Value {
		if len(args) == 0 {
			return variant.Undef()
		}
		return args[0]
	}, nil)
	s.vars["L"] = variant.MakeObjectByCKeys()
	s.vars["STR"] = variant.MakeObjectByCKeys()
	s.vars["STREAM"] = variant.MakeObjectByCKeys()
	s.vars["DOC"] = doc
	s.vars["SESSION"] = variant.MakeObjectByCKeys()
	s.vars["EJSON"] = variant.MakeObjectByCKeys()
	s.vars["TIMERS"] = timers
	s.vars["RUNNER"] = variant.MakeObjectByCKeys(
		"id", variant.I64(coroutineID),
	)
	return s
}

// Lookup resolves a doc-var name (without '$') to its variant, or (nil,
// false) if it isn't one of the built-ins.
func (s *Set) Lookup(name string) (*variant.Value, bool) {
	v, ok := s.vars[name]
	return v, ok
}
