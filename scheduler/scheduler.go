// Package scheduler implements the per-frame phase dispatch of spec §4.4
// (AFTER_PUSHED / SELECT_CHILD / RERUN / ON_POPPING) and the per-coroutine
// tick loop of spec §4.5. It pushes child frames and pops finished ones on a
// coroutine.Coroutine's frame.Stack, and every Ops implementation in package
// element is called from here. Two other places change the stack: <back>'s
// OnPopping pops the frames above its target, and the observer wakeups that
// coroutine.DispatchMessage queues push Pseudo handler frames.
package scheduler

import (
	"github.com/purc-go/purc/coroutine"
	"github.com/purc-go/purc/frame"
	"github.com/purc-go/purc/variant"
	"github.com/purc-go/purc/vdom"
)

// Step first pushes any observer handler frames queued by DispatchMessage,
// then advances co by exactly one phase transition on its current frame. It
// returns false once the frame stack is empty.
func Step(co *coroutine.Coroutine) bool {
	co.DrainWakeups()

	f := co.Stack.Top()
	if f == nil {
		co.State = coroutine.Ready
		return false
	}
	co.State = coroutine.Running

	if f.Preemptor != nil {
		p := f.Preemptor
		f.Preemptor = nil
		p(co.Stack, f)
		return true
	}

	switch f.NextStep {
	case frame.AfterPushed:
		stepAfterPushed(co, f)
	case frame.SelectChild:
		stepSelectChild(co, f)
	case frame.Rerun:
		stepRerun(co, f)
	case frame.OnPopping:
		stepOnPopping(co, f)
	}

	return !co.Stack.Empty() || len(co.Stack.Frames) > 0
}

func stepAfterPushed(co *coroutine.Coroutine, f *frame.Frame) {
	if f.Ops == nil {
		f.NextStep = frame.SelectChild
		return
	}
	ctxt, ok := f.Ops.AfterPushed(co.Stack, f)
	f.Ctxt = ctxt
	if !ok {
		f.NextStep = frame.OnPopping
		return
	}
	f.NextStep = frame.SelectChild
}

func stepSelectChild(co *coroutine.Coroutine, f *frame.Frame) {
	var child *vdom.Node
	ok := false
	if f.Ops == nil {
		// No tag-specific Ops: walk f.Pos's element children in order.
		if f.Pos != nil {
			var idx int
			if child, idx = f.Pos.FirstElementChild(f.ChildCursor()); child != nil {
				f.SetChildCursor(idx + 1)
				ok = true
			}
		}
	} else {
		child, ok = f.Ops.SelectChild(co.Stack, f)
	}
	if !ok || child == nil {
		// No more children this round (or select_child declined outright);
		// ask on_popping whether the tag is actually done (spec §4.4).
		f.NextStep = frame.OnPopping
		return
	}
	var ops frame.Ops
	if co.Stack.Resolver != nil {
		ops = co.Stack.Resolver(child.Tag)
	}
	childFrame := frame.NewFrame(frame.Normal, child, f.Scope, ops)
	childFrame.EDOM = f.EDOM
	co.Stack.Push(childFrame)
}

// stepRerun runs Rerun unconditionally once on_popping has declined to pop
// (spec §4.4: "RERUN: run rerun; set SELECT_CHILD"); Rerun's own bool result
// carries no transition meaning here — on_popping already decided there is
// more work, so Rerun always runs its side effect and control always
// returns to SELECT_CHILD, mirroring on_rerun in
// original_source/Source/PurC/interpreter/interpreter.c (which asserts its
// ops.rerun callback returns true rather than branching on it).
func stepRerun(co *coroutine.Coroutine, f *frame.Frame) {
	if f.Ops != nil {
		f.Ops.Rerun(co.Stack, f)
	}
	f.NextStep = frame.SelectChild
}

// stepOnPopping asks on_popping whether the frame should actually pop: true
// pops it now, false sends it to RERUN instead (spec §4.4's literal
// transition table — on_popping==true means "yes, pop").
func stepOnPopping(co *coroutine.Coroutine, f *frame.Frame) {
	ok := true
	if f.Ops != nil {
		ok = f.Ops.OnPopping(co.Stack, f)
	}
	if !ok {
		f.NextStep = frame.Rerun
		return
	}
	// Pop releases the frame, which unrefs its ResultFromChild, so take a
	// reference first and hand that one to the new top frame.
	result := variant.Ref(co.Stack.Top().ResultFromChild)
	co.Stack.Pop()
	if parent := co.Stack.Top(); parent != nil {
		variant.Unref(parent.ResultFromChild)
		parent.ResultFromChild = result
	} else {
		variant.Unref(result)
	}
}

// Run steps co until its frame stack is empty, then parks it as WAITING if
// it still has live observers (Waits > 0). It returns true if the coroutine
// is parked (WAITING, not finished) and false once it has finished.
func Run(co *coroutine.Coroutine) bool {
	for {
		if !Step(co) {
			break
		}
	}
	if co.Waits > 0 {
		co.State = coroutine.Waiting
		return true
	}
	done, _ := co.Exited()
	if done || co.Stack.Empty() {
		co.State = coroutine.Ready
		return false
	}
	return true
}
