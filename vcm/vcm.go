// Package vcm defines the expression-evaluator boundary spec §1 names out
// of scope: tag Ops call Eval on an attribute's unevaluated VCM tree and get
// back a variant.Value, without this package knowing anything about the
// real VCM tree shape or the scoped-variable/symbol-variable resolution
// rules used to get there (those live in scopevar and frame).
package vcm

import "github.com/purc-go/purc/variant"

// Context is whatever an Evaluator needs from the calling frame to resolve
// `$VAR`, `<`, `@`, and friends; it's opaque here and supplied by the
// caller (in practice, *frame.Frame plus *frame.Stack, boxed by package
// element so this package never imports frame).
type Context interface{}

// Evaluator evaluates one VCM tree, silently or not (spec §4.3's "silently"
// attribute modifier: on failure, return Undefined instead of raising).
type Evaluator interface {
	Eval(tree interface{}, ctxt Context, silently bool) (*variant.Value, error)
}

// Literal is a trivial Evaluator used by tests and by tags whose attribute
// values are already literals (no expression syntax): a *variant.Value is
// ref'd and returned as-is; a bare Go string/bool/float64 (as produced by
// vdom.Builder's fixture attributes) is wrapped into the matching variant
// kind.
type Literal struct{}

func (Literal) Eval(tree interface{}, _ Context, silently bool) (*variant.Value, error) {
	switch t := tree.(type) {
	case *variant.Value:
		return variant.Ref(t), nil
	case string:
		return variant.Str(t), nil
	case bool:
		return variant.Bool(t), nil
	case float64:
		return variant.Num(t), nil
	}
	if silently {
		return variant.Undef(), nil
	}
	return variant.Undef(), errNotLiteral
}

var errNotLiteral = errLiteral("vcm: tree is not a *variant.Value literal")

type errLiteral string

func (e errLiteral) Error() string { return string(e) }
