package frame

import (
	"github.com/purc-go/purc/domtree"
	"github.com/purc-go/purc/variant"
	"github.com/purc-go/purc/vdom"
)

// Kind distinguishes a frame bound to a live vDOM element from one
// synthesized to run an observer's handler (spec §3).
type Kind int

const (
	Normal Kind = iota
	Pseudo
)

// NextStep is the scheduler's per-frame cursor through the four phases of
// spec §4.4.
type NextStep int

const (
	AfterPushed NextStep = iota
	SelectChild
	Rerun
	OnPopping
)

func (s NextStep) String() string {
	return [...]string{"AFTER_PUSHED", "SELECT_CHILD", "RERUN", "ON_POPPING"}[s]
}

// Preemptor is a one-shot transition override a frame may install; if
// present the scheduler runs it instead of the phase dispatcher exactly
// once, then clears it (spec §4.4).
type Preemptor func(stack *Stack, f *Frame)

// Ops is the four-phase vtable every vDOM tag provides (spec §4.4). Every
// method is optional at the call site: a tag that doesn't need, say,
// Rerun simply never returns false from OnPopping.
type Ops interface {
	Name() string
	AfterPushed(stack *Stack, f *Frame) (ctxt interface{}, ok bool)
	SelectChild(stack *Stack, f *Frame) (child *vdom.Node, ok bool)
	Rerun(stack *Stack, f *Frame) bool
	OnPopping(stack *Stack, f *Frame) bool
}

// Frame is one node of a coroutine's execution stack (spec §3).
type Frame struct {
	Kind   Kind
	Pos    *vdom.Node // current vDOM element; for a Pseudo frame, the observer element whose handler it runs
	Scope  *vdom.Node // vDOM node used for scoped-var lookup
	EDOM   *domtree.Node
	Ctxt   interface{}
	AttrVars *variant.Value // evaluated attribute values, an Object

	ResultFromChild *variant.Value
	symbols         symbolTable

	NextStep  NextStep
	Silently  bool
	Preemptor Preemptor
	Ops       Ops

	// childCursor is private per-tag bookkeeping some Ops implementations
	// use to remember "which child comes next"; exposed so ops can stash
	// their own typed cursor in Ctxt instead when they need more state.
	childCursor int
}

// NewFrame allocates a frame with all eight symbol variables initialized to
// undefined, except `%` which starts at 0 for a Normal frame (spec §4.3's
// symbol table; a Pseudo frame has no iteration counter to seed).
func NewFrame(kind Kind, pos, scope *vdom.Node, ops Ops) *Frame {
	return &Frame{
		Kind:    kind,
		Pos:     pos,
		Scope:   scope,
		Ops:     ops,
		symbols: newSymbolTable(kind),
	}
}

// ChildCursor reports how many element children this frame has already
// dispatched, for Ops implementations using the default one-child-per-call
// SelectChild walk.
func (f *Frame) ChildCursor() int { return f.childCursor }

// SetChildCursor advances the child cursor.
func (f *Frame) SetChildCursor(n int) { f.childCursor = n }

// GetSymbol reads a symbol variable without taking a new reference.
func (f *Frame) GetSymbol(k SymbolKey) *variant.Value {
	return f.symbols[k]
}

// SetSymbol unrefs the old value at k and installs value, ref'ing it.
func (f *Frame) SetSymbol(k SymbolKey, value *variant.Value) {
	variant.Unref(f.symbols[k])
	f.symbols[k] = variant.Ref(value)
}

// IncPercent increments the `%` iteration counter symbol.
func (f *Frame) IncPercent() {
	cur := f.GetSymbol(SymPercent).AsU64()
	f.SetSymbol(SymPercent, variant.U64(cur+1))
}

// RefreshAt recomputes `@` from the frame's current output-DOM insertion
// point (spec §4.3); callers pass whatever "elements" wrapper shape they
// use (here: a native variant holding the *domtree.Node).
func (f *Frame) RefreshAt(wrap func(*domtree.Node) *variant.Value) {
	f.SetSymbol(SymAt, wrap(f.EDOM))
}

// release unrefs every symbol variable and the attr_vars/result_from_child
// variants a frame owns, mirroring stack_frame_release in
// original_source/Source/PurC/interpreter/interpreter.c.
func (f *Frame) release() {
	for i := range f.symbols {
		variant.Unref(f.symbols[i])
		f.symbols[i] = nil
	}
	variant.Unref(f.AttrVars)
	variant.Unref(f.ResultFromChild)
}
