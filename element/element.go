// Package element implements the four-phase Ops vtable (frame.Ops) for the
// vDOM tags of spec §3/§4: the structural tags (hvml, head, body), the
// control tags (iterate, choose, except, test, differ, match, catch,
// inherit, forget, exit, back), and the side-effecting tags (init, observe, update, call,
// include, load, define, bind, archetype, reduce, sort). Each Ops
// implementation is grounded on the teacher's stdlib "verb" functions in
// src/stdlib.go (one Go function per PSL verb, dispatched from a name
// table) generalized to the richer four-phase contract spec §4.4 requires.
package element

import (
	"github.com/purc-go/purc/frame"
	"github.com/purc-go/purc/herr"
	"github.com/purc-go/purc/variant"
	"github.com/purc-go/purc/vcm"
	"github.com/purc-go/purc/vdom"
)

// Registry maps a tag name to the Ops constructor that should run it.
type Registry struct {
	byName map[string]func() frame.Ops
	Eval   vcm.Evaluator
}

// NewRegistry builds the registry of all 25 required tags, wired to eval
// for attribute-value resolution.
func NewRegistry(eval vcm.Evaluator) *Registry {
	r := &Registry{byName: map[string]func() frame.Ops{}, Eval: eval}
	r.register("hvml", func() frame.Ops { return &passthroughOps{tag: "hvml"} })
	r.register("head", func() frame.Ops { return &passthroughOps{tag: "head"} })
	r.register("body", func() frame.Ops { return &bodyOps{} })
	r.register("init", func() frame.Ops { return &initOps{r: r} })
	r.register("bind", func() frame.Ops { return &bindOps{r: r} })
	r.register("observe", func() frame.Ops { return &observeOps{r: r} })
	r.register("forget", func() frame.Ops { return &forgetOps{r: r} })
	r.register("iterate", func() frame.Ops { return &iterateOps{r: r} })
	r.register("choose", func() frame.Ops { return &chooseOps{r: r} })
	r.register("except", func() frame.Ops { return &exceptOps{r: r} })
	r.register("test", func() frame.Ops { return &testOps{r: r} })
	r.register("differ", func() frame.Ops { return &differOps{r: r} })
	r.register("match", func() frame.Ops { return &matchOps{r: r} })
	r.register("catch", func() frame.Ops { return &catchOps{r: r} })
	r.register("inherit", func() frame.Ops { return &inheritOps{} })
	r.register("exit", func() frame.Ops { return &exitOps{r: r} })
	r.register("back", func() frame.Ops { return &backOps{} })
	r.register("update", func() frame.Ops { return &updateOps{r: r} })
	r.register("load", func() frame.Ops { return &loadOps{r: r} })
	r.register("define", func() frame.Ops { return &defineOps{r: r} })
	r.register("call", func() frame.Ops { return &callOps{r: r} })
	r.register("include", func() frame.Ops { return &includeOps{r: r} })
	r.register("reduce", func() frame.Ops { return &reduceOps{r: r} })
	r.register("sort", func() frame.Ops { return &sortOps{r: r} })
	r.register("archetype", func() frame.Ops { return &archetypeOps{} })
	return r
}

func (r *Registry) register(tag string, ctor func() frame.Ops) { r.byName[tag] = ctor }

// New returns a fresh Ops for tag, or nil if the tag is unknown (the
// scheduler then treats the frame as a plain structural passthrough).
func (r *Registry) New(tag string) frame.Ops {
	ctor, ok := r.byName[tag]
	if !ok {
		return nil
	}
	return ctor()
}

// evalAttr resolves the named attribute on f.Pos via r.Eval, returning
// Undefined (not an error) if the attribute is absent.
func (r *Registry) evalAttr(f *frame.Frame, name string) (*variant.Value, *herr.Info) {
	a, ok := f.Pos.Attr(name)
	if !ok {
		return variant.Undef(), nil
	}
	v, err := r.Eval.Eval(a.ValueVCM, f, f.Silently)
	if err != nil {
		if f.Silently {
			return variant.Undef(), nil
		}
		return nil, herr.New(herr.InvalidValue, herr.AtomInvalidOperand, err.Error(), herr.CallSite{Tag: f.Pos.Tag})
	}
	return v, nil
}

// defaultSelectChild walks f.Pos's element children in order, one per
// call, using f's private child cursor; this is the structural-tag
// default every simple Ops embeds (spec §4.4: "select the next
// not-yet-run child element, or none").
func defaultSelectChild(f *frame.Frame) (*vdom.Node, bool) {
	child, idx := f.Pos.FirstElementChild(f.ChildCursor())
	if child == nil {
		return nil, true
	}
	f.SetChildCursor(idx + 1)
	return child, true
}

// passthroughOps is the Ops for tags with no special semantics of their
// own beyond "run my children in order": hvml, head.
type passthroughOps struct{ tag string }

func (p *passthroughOps) Name() string { return p.tag }
func (p *passthroughOps) AfterPushed(s *frame.Stack, f *frame.Frame) (interface{}, bool) {
	return nil, true
}
func (p *passthroughOps) SelectChild(s *frame.Stack, f *frame.Frame) (*vdom.Node, bool) {
	return defaultSelectChild(f)
}
func (p *passthroughOps) Rerun(s *frame.Stack, f *frame.Frame) bool  { return false }
func (p *passthroughOps) OnPopping(s *frame.Stack, f *frame.Frame) bool { return true }
