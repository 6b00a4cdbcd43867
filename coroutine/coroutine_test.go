package coroutine

import (
	"testing"

	"github.com/purc-go/purc/domtree"
	"github.com/purc-go/purc/herr"
	"github.com/purc-go/purc/variant"
	"github.com/purc-go/purc/vdom"
)

func newTestCoroutine() *Coroutine {
	b := vdom.NewBuilder()
	b.Open("body")
	b.Close()
	doc := b.Build()

	outDoc := domtree.NewDocument()
	tree := domtree.NewTree(outDoc, nil, "")
	tree.NoRenderMode = true

	return New(doc, tree, nil)
}

func TestRegisterAndDispatchMatchingObserver(t *testing.T) {
	co := newTestCoroutine()
	source := variant.MakeObjectByCKeys("id", variant.Str("s1"))

	co.RegisterObserver(source, "change", "", nil, nil, nil, nil, nil)
	co.DispatchMessage(source, "change", "", variant.Undef())
	co.DrainWakeups()

	if co.Stack.Empty() {
		t.Fatal("expected a matching observer to push a pseudo-frame")
	}
}

func TestDispatchIgnoresDifferentEvent(t *testing.T) {
	co := newTestCoroutine()
	source := variant.MakeObjectByCKeys("id", variant.Str("s1"))

	co.RegisterObserver(source, "change", "", nil, nil, nil, nil, nil)
	co.DispatchMessage(source, "grow", "", variant.Undef())
	co.DrainWakeups()

	if !co.Stack.Empty() {
		t.Fatal("expected a non-matching event not to fire the observer")
	}
}

func TestSubTypeLiteralMatch(t *testing.T) {
	co := newTestCoroutine()
	source := variant.MakeObjectByCKeys("id", variant.Str("s1"))

	co.RegisterObserver(source, "message", "ping", nil, nil, nil, nil, nil)
	co.DispatchMessage(source, "message", "pong", variant.Undef())
	co.DrainWakeups()
	if !co.Stack.Empty() {
		t.Fatal("expected a different literal sub-type not to match")
	}

	co.DispatchMessage(source, "message", "ping", variant.Undef())
	co.DrainWakeups()
	if co.Stack.Empty() {
		t.Fatal("expected a matching literal sub-type to fire")
	}
}

func TestSubTypeRegexMatch(t *testing.T) {
	co := newTestCoroutine()
	source := variant.MakeObjectByCKeys("id", variant.Str("s1"))

	co.RegisterObserver(source, "message", "ping.*", nil, nil, nil, nil, nil)
	co.DispatchMessage(source, "message", "pingback", variant.Undef())
	co.DrainWakeups()

	if co.Stack.Empty() {
		t.Fatal("expected a regex sub-type to match by pattern")
	}
}

func TestRevokeObserverStopsFutureDispatch(t *testing.T) {
	co := newTestCoroutine()
	source := variant.MakeObjectByCKeys("id", variant.Str("s1"))

	revoked := false
	h := co.RegisterObserver(source, "change", "", nil, nil, nil, func(data interface{}) { revoked = true }, nil)
	co.RevokeObserver(h)
	if !revoked {
		t.Fatal("expected onRevoke callback to run")
	}

	co.DispatchMessage(source, "change", "", variant.Undef())
	co.DrainWakeups()
	if !co.Stack.Empty() {
		t.Fatal("expected a revoked observer not to fire")
	}
}

func TestWaitsTracksLiveObserverCount(t *testing.T) {
	co := newTestCoroutine()
	if co.Waits != 0 {
		t.Fatalf("expected a fresh coroutine to have Waits=0, got %d", co.Waits)
	}

	source := variant.MakeObjectByCKeys("id", variant.Str("s1"))
	h1 := co.RegisterObserver(source, "change", "", nil, nil, nil, nil, nil)
	if co.Waits != 1 {
		t.Fatalf("expected Waits=1 after one RegisterObserver, got %d", co.Waits)
	}

	h2 := co.RegisterObserver(source, "grow", "", nil, nil, nil, nil, nil)
	if co.Waits != 2 {
		t.Fatalf("expected Waits=2 after a second RegisterObserver, got %d", co.Waits)
	}

	co.RevokeObserver(h1)
	if co.Waits != 1 {
		t.Fatalf("expected Waits=1 after revoking one of two observers, got %d", co.Waits)
	}

	co.RevokeObserver(h1)
	if co.Waits != 1 {
		t.Fatalf("expected revoking an already-revoked handle to leave Waits unchanged, got %d", co.Waits)
	}

	co.RevokeObserver(h2)
	if co.Waits != 0 {
		t.Fatalf("expected Waits=0 once every observer is revoked, got %d", co.Waits)
	}
}

func TestExceptionRaiseCatchClear(t *testing.T) {
	co := newTestCoroutine()
	if co.CurrentException() != nil {
		t.Fatal("expected no exception initially")
	}

	co.RaiseException(herr.Atom("NoData"), variant.Str("nothing to report"))
	if co.CurrentException() == nil {
		t.Fatal("expected an exception after RaiseException")
	}

	if co.CatchIfMatches(herr.Atom("WrongAtom")) {
		t.Fatal("expected CatchIfMatches to refuse a non-matching atom")
	}
	if !co.CatchIfMatches(herr.Atom("NoData")) {
		t.Fatal("expected CatchIfMatches to consume a matching atom")
	}
	if co.CurrentException() != nil {
		t.Fatal("expected the exception to be cleared after a matching catch")
	}
}

func TestCatchAllClearsAnyException(t *testing.T) {
	co := newTestCoroutine()
	co.RaiseException(herr.Atom("Whatever"), variant.Undef())
	if !co.CatchIfMatches(herr.AtomNone) {
		t.Fatal("expected AtomNone to catch any exception")
	}
}

func TestSetExitRecordsValueAndFlag(t *testing.T) {
	co := newTestCoroutine()
	exited, _ := co.Exited()
	if exited {
		t.Fatal("expected not exited initially")
	}

	co.SetExit(variant.Str("done"))
	exited, val := co.Exited()
	if !exited || val.AsString() != "done" {
		t.Fatalf("expected exited with value 'done', got exited=%v val=%v", exited, val)
	}
}

func TestHasWorkReflectsStackAndWakeups(t *testing.T) {
	co := newTestCoroutine()
	if co.HasWork() {
		t.Fatal("expected a fresh coroutine with an empty stack to have no work")
	}

	source := variant.MakeObjectByCKeys("id", variant.Str("s1"))
	co.RegisterObserver(source, "change", "", nil, nil, nil, nil, nil)
	co.DispatchMessage(source, "change", "", variant.Undef())

	if !co.HasWork() {
		t.Fatal("expected a pending wakeup to count as work before it's drained")
	}
}
