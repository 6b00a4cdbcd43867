package element

import (
	"github.com/purc-go/purc/frame"
	"github.com/purc-go/purc/herr"
	"github.com/purc-go/purc/mgrammar/match"
	"github.com/purc-go/purc/variant"
	"github.com/purc-go/purc/vdom"
)

// bodyOps is <body>: a plain structural container, like hvml/head, but it
// also owns the document's $DOC root attachment point (the caller wires
// f.EDOM to the output tree's <body> node before pushing this frame).
type bodyOps struct{}

func (b *bodyOps) Name() string { return "body" }
func (b *bodyOps) AfterPushed(s *frame.Stack, f *frame.Frame) (interface{}, bool) { return nil, true }
func (b *bodyOps) SelectChild(s *frame.Stack, f *frame.Frame) (*vdom.Node, bool) {
	return defaultSelectChild(f)
}
func (b *bodyOps) Rerun(s *frame.Stack, f *frame.Frame) bool     { return false }
func (b *bodyOps) OnPopping(s *frame.Stack, f *frame.Frame) bool { return true }

// iterateOps runs its children once per element of an "on" collection,
// refreshing `%` (the iteration counter) each pass (spec §4.3, E2).
type iterateOps struct {
	r      *Registry
	items  []*variant.Value
	idx    int
}

func (it *iterateOps) Name() string { return "iterate" }

func (it *iterateOps) AfterPushed(s *frame.Stack, f *frame.Frame) (interface{}, bool) {
	on, err := it.r.evalAttr(f, "on")
	if err != nil {
		s.Env.RaiseException(err.Atom, nil)
		return nil, false
	}
	it.items = collectionItems(on)
	it.idx = 0
	return it, len(it.items) > 0
}

func (it *iterateOps) SelectChild(s *frame.Stack, f *frame.Frame) (*vdom.Node, bool) {
	return defaultSelectChild(f)
}

// OnPopping asks whether every item has been visited; while items remain it
// returns false, sending the frame to Rerun instead of popping (spec §4.4's
// "on_popping: if true pop frame, else set RERUN"). On the pass over the
// last item it sets `%` to len(items) before reporting done, so `%` reads
// the final count exactly when select_child last returns none (spec §8 E2).
func (it *iterateOps) OnPopping(s *frame.Stack, f *frame.Frame) bool {
	done := it.idx+1 >= len(it.items)
	if done {
		f.SetSymbol(frame.SymPercent, variant.U64(uint64(len(it.items))))
	}
	return done
}

// Rerun advances to the next item, refreshes `%` to match, and resets the
// child cursor so the iterate body runs again; only called while OnPopping
// still has items left, so it always succeeds.
func (it *iterateOps) Rerun(s *frame.Stack, f *frame.Frame) bool {
	it.idx++
	f.IncPercent()
	f.SetChildCursor(0)
	return true
}

func collectionItems(v *variant.Value) []*variant.Value {
	switch v.Kind() {
	case variant.Array:
		n := v.ArrayLen()
		items := make([]*variant.Value, n)
		for i := 0; i < n; i++ {
			items[i] = v.ArrayGet(i)
		}
		return items
	default:
		return []*variant.Value{v}
	}
}

// chooseOps evaluates "on" once and runs its children against that single
// value, without looping (the non-iterating sibling of <iterate>).
type chooseOps struct {
	r *Registry
}

func (c *chooseOps) Name() string { return "choose" }
func (c *chooseOps) AfterPushed(s *frame.Stack, f *frame.Frame) (interface{}, bool) {
	on, err := c.r.evalAttr(f, "on")
	if err != nil {
		s.Env.RaiseException(err.Atom, nil)
		return nil, false
	}
	f.SetSymbol(frame.SymQuestion, on)
	return nil, true
}
func (c *chooseOps) SelectChild(s *frame.Stack, f *frame.Frame) (*vdom.Node, bool) {
	return defaultSelectChild(f)
}
func (c *chooseOps) Rerun(s *frame.Stack, f *frame.Frame) bool     { return false }
func (c *chooseOps) OnPopping(s *frame.Stack, f *frame.Frame) bool { return true }

// exceptOps runs its children only while no exception is pending in the
// owning coroutine; it is the "guard" counterpart to <catch>.
type exceptOps struct{ r *Registry }

func (e *exceptOps) Name() string { return "except" }
func (e *exceptOps) AfterPushed(s *frame.Stack, f *frame.Frame) (interface{}, bool) {
	return nil, s.Env.CurrentException() == nil
}
func (e *exceptOps) SelectChild(s *frame.Stack, f *frame.Frame) (*vdom.Node, bool) {
	if s.Env.CurrentException() != nil {
		return nil, true
	}
	return defaultSelectChild(f)
}
func (e *exceptOps) Rerun(s *frame.Stack, f *frame.Frame) bool     { return false }
func (e *exceptOps) OnPopping(s *frame.Stack, f *frame.Frame) bool { return true }

// testOps runs its children iff its "on" attribute evaluates truthy.
type testOps struct{ r *Registry }

func (t *testOps) Name() string { return "test" }
func (t *testOps) AfterPushed(s *frame.Stack, f *frame.Frame) (interface{}, bool) {
	on, err := t.r.evalAttr(f, "on")
	if err != nil {
		s.Env.RaiseException(err.Atom, nil)
		return nil, false
	}
	return nil, on.AsBool()
}
func (t *testOps) SelectChild(s *frame.Stack, f *frame.Frame) (*vdom.Node, bool) {
	return defaultSelectChild(f)
}
func (t *testOps) Rerun(s *frame.Stack, f *frame.Frame) bool     { return false }
func (t *testOps) OnPopping(s *frame.Stack, f *frame.Frame) bool { return true }

// differOps is <test>'s negation: runs its children iff "on" is falsy.
type differOps struct{ r *Registry }

func (d *differOps) Name() string { return "differ" }
func (d *differOps) AfterPushed(s *frame.Stack, f *frame.Frame) (interface{}, bool) {
	on, err := d.r.evalAttr(f, "on")
	if err != nil {
		s.Env.RaiseException(err.Atom, nil)
		return nil, false
	}
	return nil, !on.AsBool()
}
func (d *differOps) SelectChild(s *frame.Stack, f *frame.Frame) (*vdom.Node, bool) {
	return defaultSelectChild(f)
}
func (d *differOps) Rerun(s *frame.Stack, f *frame.Frame) bool     { return false }
func (d *differOps) OnPopping(s *frame.Stack, f *frame.Frame) bool { return true }

// matchOps compares "on" against "for" using the match mini-grammar's
// comparator clause (package mgrammar/match), e.g. for="eq 'ready'".
type matchOps struct{ r *Registry }

func (m *matchOps) Name() string { return "match" }
func (m *matchOps) AfterPushed(s *frame.Stack, f *frame.Frame) (interface{}, bool) {
	on, err := m.r.evalAttr(f, "on")
	if err != nil {
		s.Env.RaiseException(err.Atom, nil)
		return nil, false
	}
	forAttr, _ := f.Pos.Attr("for")
	expr, _ := forAttr.ValueVCM.(string)
	clause, perr := match.Parse(expr)
	if perr != nil {
		s.Env.RaiseException(herr.AtomInvalidOperand, nil)
		return nil, false
	}
	return nil, clause.Eval(on.AsString())
}
func (m *matchOps) SelectChild(s *frame.Stack, f *frame.Frame) (*vdom.Node, bool) {
	return defaultSelectChild(f)
}
func (m *matchOps) Rerun(s *frame.Stack, f *frame.Frame) bool     { return false }
func (m *matchOps) OnPopping(s *frame.Stack, f *frame.Frame) bool { return true }

// catchOps runs its children iff the owning coroutine currently has a
// pending exception matching its "for" atom (or any exception, if "for" is
// absent); on entry it consumes the exception (spec §7, E4).
type catchOps struct {
	r       *Registry
	matched bool
}

func (c *catchOps) Name() string { return "catch" }
func (c *catchOps) AfterPushed(s *frame.Stack, f *frame.Frame) (interface{}, bool) {
	forAtom := herr.AtomNone
	if a, ok := f.Pos.Attr("for"); ok {
		if lit, ok := a.ValueVCM.(string); ok {
			forAtom = herr.Atom(lit)
		}
	}
	c.matched = s.Env.CatchIfMatches(forAtom)
	return c, c.matched
}
func (c *catchOps) SelectChild(s *frame.Stack, f *frame.Frame) (*vdom.Node, bool) {
	return defaultSelectChild(f)
}
func (c *catchOps) Rerun(s *frame.Stack, f *frame.Frame) bool     { return false }
func (c *catchOps) OnPopping(s *frame.Stack, f *frame.Frame) bool { return true }

// inheritOps re-raises whatever exception is pending on the parent scope,
// used inside a <catch> body to propagate instead of swallow.
type inheritOps struct{}

func (i *inheritOps) Name() string { return "inherit" }
func (i *inheritOps) AfterPushed(s *frame.Stack, f *frame.Frame) (interface{}, bool) {
	if cur := s.Env.CurrentException(); cur != nil {
		s.Env.RaiseException(cur.Atom, nil)
	}
	return nil, true
}
func (i *inheritOps) SelectChild(s *frame.Stack, f *frame.Frame) (*vdom.Node, bool) {
	return defaultSelectChild(f)
}
func (i *inheritOps) Rerun(s *frame.Stack, f *frame.Frame) bool     { return false }
func (i *inheritOps) OnPopping(s *frame.Stack, f *frame.Frame) bool { return true }

// exitOps terminates the owning coroutine with its "with" value as the
// coroutine's result (spec §3's terminal operation).
type exitOps struct{ r *Registry }

func (e *exitOps) Name() string { return "exit" }
func (e *exitOps) AfterPushed(s *frame.Stack, f *frame.Frame) (interface{}, bool) {
	with, err := e.r.evalAttr(f, "with")
	if err != nil {
		s.Env.RaiseException(err.Atom, nil)
		return nil, false
	}
	s.Env.SetExit(with)
	return nil, false
}
func (e *exitOps) SelectChild(s *frame.Stack, f *frame.Frame) (*vdom.Node, bool) { return nil, false }
func (e *exitOps) Rerun(s *frame.Stack, f *frame.Frame) bool                     { return false }
func (e *exitOps) OnPopping(s *frame.Stack, f *frame.Frame) bool                 { return true }

// backOps pops frames up to and including the named ancestor tag, used to
// break out of an enclosing <iterate> or <choose> early.
type backOps struct{}

func (b *backOps) Name() string { return "back" }
func (b *backOps) AfterPushed(s *frame.Stack, f *frame.Frame) (interface{}, bool) { return nil, true }
func (b *backOps) SelectChild(s *frame.Stack, f *frame.Frame) (*vdom.Node, bool)  { return nil, false }
func (b *backOps) Rerun(s *frame.Stack, f *frame.Frame) bool                      { return false }
// OnPopping unwinds every frame above the named ancestor tag, then reports
// true so the scheduler's own unconditional pop consumes the ancestor frame
// itself too (the stack's top at that point, once this loop is done) — "pop
// up to and including the named ancestor."
func (b *backOps) OnPopping(s *frame.Stack, f *frame.Frame) bool {
	to, _ := f.Pos.Attr("to")
	target, _ := to.ValueVCM.(string)
	if target == "" {
		return true
	}
	for i := len(s.Frames) - 2; i >= 0; i-- {
		if s.Frames[i].Pos != nil && s.Frames[i].Pos.Tag == target {
			for j := len(s.Frames) - 1; j > i; j-- {
				s.Pop()
			}
			break
		}
	}
	return true
}
