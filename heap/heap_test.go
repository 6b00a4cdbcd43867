package heap

import (
	"testing"

	"github.com/purc-go/purc/coroutine"
	"github.com/purc-go/purc/domtree"
	"github.com/purc-go/purc/element"
	"github.com/purc-go/purc/frame"
	"github.com/purc-go/purc/request"
	"github.com/purc-go/purc/vcm"
	"github.com/purc-go/purc/vdom"
)

func newCoroutine() *coroutine.Coroutine {
	b := vdom.NewBuilder()
	b.Open("body")
	b.Open("init", vdom.A("as", "x"), vdom.A("at", "1"))
	b.Close()
	b.Close()
	doc := b.Build()

	outDoc := domtree.NewDocument()
	tree := domtree.NewTree(outDoc, nil, "")
	tree.NoRenderMode = true

	reg := element.NewRegistry(vcm.Literal{})
	co := coroutine.New(doc, tree, reg.New)

	root := doc.Root
	f := frame.NewFrame(frame.Normal, root, root, reg.New(root.Tag))
	co.Stack.Push(f)
	return co
}

func TestRunRoundDrainsRegisteredCoroutines(t *testing.T) {
	h := New()
	co := newCoroutine()
	h.Register(co)

	for h.RunRound() > 0 {
	}

	if !co.Stack.Empty() {
		t.Fatalf("expected the coroutine's frame stack to drain, depth=%d", co.Stack.Depth())
	}
}

func TestRunRoundCountsMultipleCoroutines(t *testing.T) {
	h := New()
	h.Register(newCoroutine())
	h.Register(newCoroutine())

	remaining := h.RunRound()
	for remaining > 0 {
		remaining = h.RunRound()
	}
	if len(h.coroutines) != 2 {
		t.Fatalf("expected both coroutines to remain registered, got %d", len(h.coroutines))
	}
}

func TestUnregisterRemovesCoroutine(t *testing.T) {
	h := New()
	co := newCoroutine()
	h.Register(co)
	h.Unregister(co)

	if _, ok := h.coroutines[co.ID]; ok {
		t.Fatal("expected Unregister to remove the coroutine")
	}
}

func TestRequestLifecycleTransitions(t *testing.T) {
	h := New()
	req := request.NewRequest(1, request.Sync, 99, "file:///tmp/x")

	h.Submit(req)
	if req.State != request.Pending {
		t.Fatalf("expected PENDING after Submit, got %s", req.State)
	}

	h.Activate(req)
	if req.State != request.Activating {
		t.Fatalf("expected ACTIVATING after Activate, got %s", req.State)
	}
	if len(h.pending) != 0 || len(h.active) != 1 {
		t.Fatalf("expected request to move from pending to active, pending=%d active=%d", len(h.pending), len(h.active))
	}

	h.Hibernate(req)
	if req.State != request.Hibernating || len(h.hibernating) != 1 {
		t.Fatalf("expected HIBERNATING, got %s (hibernating list len %d)", req.State, len(h.hibernating))
	}

	h.Complete(req)
	if req.State != request.Complete || len(h.hibernating) != 0 {
		t.Fatalf("expected COMPLETE and an empty hibernating list, got %s len=%d", req.State, len(h.hibernating))
	}
}

func TestCancelMovesRequestToDyingAndReleaseDrains(t *testing.T) {
	h := New()
	req := request.NewRequest(2, request.Async, 1, "file:///tmp/y")
	h.Submit(req)
	h.Activate(req)

	h.Cancel(req)
	if req.State != request.Dying {
		t.Fatalf("expected DYING after Cancel, got %s", req.State)
	}
	if len(h.active) != 0 {
		t.Fatalf("expected Cancel to remove the request from active, len=%d", len(h.active))
	}

	if n := h.ReleaseDying(); n != 1 {
		t.Fatalf("expected ReleaseDying to report 1, got %d", n)
	}
	if n := h.ReleaseDying(); n != 0 {
		t.Fatalf("expected a second ReleaseDying to report 0, got %d", n)
	}
}
