// Package coroutine implements the HVML coroutine of spec §3 as an explicit
// state machine, not as a goroutine-per-coroutine: scheduler.Step advances
// it one phase transition at a time and the heap calls it repeatedly
// (through scheduler.Run), exactly as
// spec §9's Design Notes require ("coroutines expressed via explicit state
// machines rather than language-level coroutines... keep it so").
package coroutine

import (
	"fmt"
	"regexp"
	"sync/atomic"

	"github.com/purc-go/purc/domtree"
	"github.com/purc-go/purc/frame"
	"github.com/purc-go/purc/herr"
	"github.com/purc-go/purc/variant"
	"github.com/purc-go/purc/vdom"
)

// State is the coroutine's run state (spec §4.5).
type State int

const (
	Ready State = iota
	Running
	Waiting
)

func (s State) String() string {
	return [...]string{"READY", "RUNNING", "WAITING"}[s]
}

// Stage distinguishes the first execution of the vDOM tree from the
// steady-state event loop that follows it (spec §4.5).
type Stage int

const (
	FirstRound Stage = iota
	EventLoop
)

var idSeq int64

// observerEntry is one registration against a coroutine's common, dynamic,
// or native observer list (spec §5; grounded in
// original_source/Source/PurC/interpreter/interpreter.c's
// pcintr_observer_t and is_observer_match).
type observerEntry struct {
	handle     frame.ObserverHandle
	observed   *variant.Value
	eventAtom  string
	subRegex   *regexp.Regexp // nil means subLiteral is compared literally; an empty subLiteral then matches any sub-type
	subLiteral string
	scope      *vdom.Node
	edom       *domtree.Node
	pos        *vdom.Node
	onRevoke   func(data interface{})
	revokeData interface{}
	revoked    bool
}

// Coroutine is one HVML coroutine: its frame stack, its observer list (one
// slice for common, dynamic and native registrations), its exception slot, its loaded-module table, and its scheduling
// state. It implements frame.Env so Ops implementations in package element
// can reach back into it without an import cycle.
type Coroutine struct {
	ID int64

	Stack *frame.Stack

	State State
	Stage Stage
	Waits int // number of live observers; >0 parks the coroutine as WAITING once its frame stack is empty

	observers       []*observerEntry
	nextObserverSeq frame.ObserverHandle

	errSlot herr.Slot

	exitValue  *variant.Value
	hasExited  bool

	Modules map[string]*variant.Value // loaded <load>/<define> modules, keyed by name

	AsyncRequestIDs map[int64]bool

	pendingWake []func() // pseudo-frame thunks queued by dispatch, run by the scheduler before normal stepping resumes
}

// New allocates a coroutine bound to doc/tree, with an empty frame stack.
// resolver maps a vDOM tag name to the Ops that should run it (typically
// (*element.Registry).New); nil means every tag is a plain structural
// passthrough.
func New(doc *vdom.Document, tree *domtree.Tree, resolver func(tag string) frame.Ops) *Coroutine {
	id := atomic.AddInt64(&idSeq, 1)
	co := &Coroutine{
		ID:              id,
		State:           Ready,
		Stage:           FirstRound,
		Modules:         map[string]*variant.Value{},
		AsyncRequestIDs: map[int64]bool{},
	}
	co.Stack = frame.NewStack(doc, tree, co, resolver)
	return co
}

// --- frame.Env ---

func (co *Coroutine) CoroutineID() int64 { return co.ID }

func (co *Coroutine) RegisterObserver(observed *variant.Value, eventAtom, subType string,
	scope *vdom.Node, edom *domtree.Node, pos *vdom.Node,
	onRevoke func(data interface{}), revokeData interface{}) frame.ObserverHandle {

	co.nextObserverSeq++
	h := co.nextObserverSeq
	e := &observerEntry{
		handle:     h,
		observed:   variant.Ref(observed),
		eventAtom:  eventAtom,
		subLiteral: subType,
		scope:      scope,
		edom:       edom,
		pos:        pos,
		onRevoke:   onRevoke,
		revokeData: revokeData,
	}
	if subType != "" && looksLikeRegex(subType) {
		if re, err := regexp.Compile(subType); err == nil {
			e.subRegex = re
		}
	}
	co.observers = append(co.observers, e)
	co.Waits++
	return h
}

// looksLikeRegex mirrors is_observer_match's heuristic in
// original_source/Source/PurC/interpreter/interpreter.c: a sub-type
// containing regex metacharacters is compiled and matched as a pattern,
// otherwise it's compared literally.
func looksLikeRegex(s string) bool {
	for _, c := range s {
		switch c {
		case '*', '+', '?', '[', ']', '(', ')', '|', '^', '$', '.':
			return true
		}
	}
	return false
}

func (co *Coroutine) RevokeObserver(h frame.ObserverHandle) {
	for _, e := range co.observers {
		if e.handle == h && !e.revoked {
			e.revoked = true
			co.Waits--
			if e.onRevoke != nil {
				e.onRevoke(e.revokeData)
			}
			variant.Unref(e.observed)
		}
	}
}

// DispatchMessage fires every live observer whose (observed, event, sub)
// matches, using a snapshot of the observer list so that revocations or new
// registrations made by a handler don't corrupt the in-flight iteration
// (spec §5, same reentrancy discipline as variant/listener.go).
func (co *Coroutine) DispatchMessage(source *variant.Value, eventAtom, subType string, extra *variant.Value) {
	snapshot := make([]*observerEntry, len(co.observers))
	copy(snapshot, co.observers)

	for _, e := range snapshot {
		if e.revoked || e.observed != source || e.eventAtom != eventAtom {
			continue
		}
		if !subMatches(e, subType) {
			continue
		}
		co.pendingWake = append(co.pendingWake, func() {
			co.runObserverHandler(e, extra)
		})
	}

	co.compactObservers()
}

func subMatches(e *observerEntry, subType string) bool {
	if e.subRegex != nil {
		return e.subRegex.MatchString(subType)
	}
	if e.subLiteral == "" {
		return true
	}
	return e.subLiteral == subType
}

func (co *Coroutine) compactObservers() {
	kept := co.observers[:0]
	for _, e := range co.observers {
		if !e.revoked {
			kept = append(kept, e)
		}
	}
	co.observers = kept
}

// runObserverHandler pushes a Pseudo frame rooted at the observer's
// registered scope/edom/pos so the scheduler runs it through the same
// four-phase dispatch as any other frame (spec §3, §5).
func (co *Coroutine) runObserverHandler(e *observerEntry, extra *variant.Value) {
	f := frame.NewFrame(frame.Pseudo, e.pos, e.scope, nil)
	f.EDOM = e.edom
	f.Ctxt = extra
	co.Stack.Push(f)
	co.State = Ready
}

func (co *Coroutine) RaiseException(atom herr.Atom, exInfo *variant.Value) {
	_ = exInfo
	co.errSlot.Set(herr.New(herr.InvalidValue, atom, exInfo, herr.CallSite{}))
}

func (co *Coroutine) CurrentException() *herr.Info { return co.errSlot.Peek() }

func (co *Coroutine) ClearException() *herr.Info { return co.errSlot.Clear() }

// CatchIfMatches consumes the current exception iff its atom equals atom,
// or atom is herr.AtomNone (catch-all), mirroring <catch>'s semantics.
func (co *Coroutine) CatchIfMatches(atom herr.Atom) bool {
	cur := co.errSlot.Peek()
	if cur == nil {
		return false
	}
	if atom != herr.AtomNone && cur.Atom != atom {
		return false
	}
	co.errSlot.Clear()
	return true
}

func (co *Coroutine) SetExit(value *variant.Value) {
	co.hasExited = true
	co.exitValue = variant.Ref(value)
}

func (co *Coroutine) Exited() (bool, *variant.Value) { return co.hasExited, co.exitValue }

// --- scheduling ---

// HasWork reports whether this coroutine has a non-empty frame stack or a
// queued observer wakeup — the condition the heap uses to decide whether a
// READY coroutine can still make progress (spec §4.5).
func (co *Coroutine) HasWork() bool {
	return !co.Stack.Empty() || len(co.pendingWake) > 0
}

// DrainWakeups runs any pseudo-frame pushes queued by DispatchMessage. The
// scheduler calls this at the start of every Step, so a coroutine woken
// while WAITING gets its handler frame installed before the step runs.
func (co *Coroutine) DrainWakeups() {
	pending := co.pendingWake
	co.pendingWake = nil
	for _, fn := range pending {
		fn()
	}
}

func (co *Coroutine) String() string {
	return fmt.Sprintf("coroutine#%d[%s depth=%d]", co.ID, co.State, co.Stack.Depth())
}
