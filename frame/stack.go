package frame

import (
	"github.com/purc-go/purc/domtree"
	"github.com/purc-go/purc/herr"
	"github.com/purc-go/purc/scopevar"
	"github.com/purc-go/purc/variant"
	"github.com/purc-go/purc/vdom"
)

// ObserverHandle identifies a live observer registration; opaque to this
// package, owned and interpreted by whatever implements Env.
type ObserverHandle uint64

// Env is the coroutine-level capability surface the four-phase Ops
// implementations call into: observer registration, message dispatch,
// exception handling, and exit. Declaring it here (rather than importing
// package coroutine) lets *coroutine.Coroutine implement it without frame
// and coroutine importing each other.
type Env interface {
	RegisterObserver(observed *variant.Value, eventAtom, subType string,
		scope *vdom.Node, edom *domtree.Node, pos *vdom.Node,
		onRevoke func(data interface{}), revokeData interface{}) ObserverHandle
	RevokeObserver(h ObserverHandle)
	DispatchMessage(source *variant.Value, eventAtom, subType string, extra *variant.Value)

	RaiseException(atom herr.Atom, exInfo *variant.Value)
	CurrentException() *herr.Info
	ClearException() *herr.Info
	CatchIfMatches(atom herr.Atom) bool

	SetExit(value *variant.Value)
	Exited() (bool, *variant.Value)

	CoroutineID() int64
}

// Stack is the per-coroutine frame list plus the shared handles every Ops
// implementation needs: the output-DOM tree, the scoped-variable registry,
// the vDOM document, the coroutine-level Env, and the tag->Ops resolver the
// scheduler uses when it pushes a new child frame.
type Stack struct {
	Frames []*Frame
	Tree   *domtree.Tree
	Vars   *scopevar.Registry
	Doc    *vdom.Document
	Env    Env

	// Resolver maps a vDOM tag name to a fresh Ops instance for it (nil for
	// unrecognized tags, which the scheduler then treats as a plain
	// structural passthrough). Kept as a function value here rather than an
	// import of package element, so the scheduler/frame/coroutine layer
	// stays agnostic of any particular tag set.
	Resolver func(tag string) Ops
}

// NewStack creates an empty frame stack bound to the given document, output
// tree, coroutine-level Env, and tag resolver.
func NewStack(doc *vdom.Document, tree *domtree.Tree, env Env, resolver func(tag string) Ops) *Stack {
	return &Stack{
		Frames:   nil,
		Tree:     tree,
		Vars:     scopevar.NewRegistry(),
		Doc:      doc,
		Env:      env,
		Resolver: resolver,
	}
}

// Top returns the current (innermost) frame, or nil if the stack is empty.
func (s *Stack) Top() *Frame {
	if len(s.Frames) == 0 {
		return nil
	}
	return s.Frames[len(s.Frames)-1]
}

// Push installs f as the new current frame.
func (s *Stack) Push(f *Frame) {
	s.Frames = append(s.Frames, f)
}

// Pop removes and releases the current frame, returning it.
func (s *Stack) Pop() *Frame {
	if len(s.Frames) == 0 {
		return nil
	}
	f := s.Frames[len(s.Frames)-1]
	s.Frames = s.Frames[:len(s.Frames)-1]
	f.release()
	return f
}

// Empty reports whether the frame stack has no frames left.
func (s *Stack) Empty() bool { return len(s.Frames) == 0 }

// Parent returns the frame immediately below f on the stack, or nil if f is
// the bottom frame or not found. Mirrors
// pcintr_stack_frame_get_parent in
// original_source/Source/PurC/interpreter/interpreter.c, which walks the
// frame list's previous link rather than the vDOM tree.
func (s *Stack) Parent(f *Frame) *Frame {
	for i, cur := range s.Frames {
		if cur == f {
			if i == 0 {
				return nil
			}
			return s.Frames[i-1]
		}
	}
	return nil
}

// SymbolAt reads symbol k starting at f and climbing through Parent until a
// frame defines it or the stack bottom is reached; used by an expression
// evaluator resolving a depth-prefixed symbol reference (e.g. an ancestor
// `<iterate>`'s `%`) rather than always reading the current frame's own
// copy, since symbol.go's table gives every frame its own undefined-or-zero
// starting value and never copies a parent's value down.
func (s *Stack) SymbolAt(f *Frame, k SymbolKey) (*variant.Value, bool) {
	for cur := f; cur != nil; cur = s.Parent(cur) {
		if v := cur.GetSymbol(k); v != nil && v.Kind() != variant.Undefined {
			return v, true
		}
	}
	return nil, false
}

// Depth reports the number of live frames.
func (s *Stack) Depth() int { return len(s.Frames) }
