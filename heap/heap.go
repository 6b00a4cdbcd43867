// Package heap implements the registry described in spec §4.5: the set of
// live coroutines sharing one runloop, plus the five request lists
// (pending/active/hibernating/cancelled/dying) their RAW/SYNC/ASYNC
// requests move through. Grounded on the teacher's module registry in
// src/module.go (a mutex-guarded map keyed by name, with a "current"
// pointer) generalized to coroutines keyed by ID.
package heap

import (
	"sync"

	"github.com/purc-go/purc/coroutine"
	"github.com/purc-go/purc/request"
	"github.com/purc-go/purc/scheduler"
)

// Heap owns every coroutine sharing a runloop and the request lists that
// cross coroutine boundaries (an async request started by one coroutine is
// fulfilled from the owning runloop's thread and must wake the right one).
type Heap struct {
	mu         sync.Mutex
	coroutines map[int64]*coroutine.Coroutine
	running    *coroutine.Coroutine

	pending     []*request.Request
	active      []*request.Request
	hibernating []*request.Request
	cancelled   []*request.Request
	dying       []*request.Request
}

func New() *Heap {
	return &Heap{coroutines: map[int64]*coroutine.Coroutine{}}
}

// Register adds co to the heap's coroutine set.
func (h *Heap) Register(co *coroutine.Coroutine) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.coroutines[co.ID] = co
}

// Unregister removes co, e.g. once it has exited and its requests drained.
func (h *Heap) Unregister(co *coroutine.Coroutine) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.coroutines, co.ID)
}

// Running returns the coroutine currently being stepped, or nil between
// ticks.
func (h *Heap) Running() *coroutine.Coroutine {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.running
}

// RunRound runs every coroutine through scheduler.Run, except a WAITING
// coroutine with no queued work, which is skipped and not counted. It
// returns how many of the coroutines it ran are still not finished (parked
// as WAITING by scheduler.Run). The heap's runloop caller (spec names the
// runloop itself an external collaborator) invokes RunRound repeatedly
// until it returns 0 or an external event (timer fire, request completion,
// message dispatch) wakes a parked coroutine.
func (h *Heap) RunRound() int {
	h.mu.Lock()
	ids := make([]*coroutine.Coroutine, 0, len(h.coroutines))
	for _, co := range h.coroutines {
		ids = append(ids, co)
	}
	h.mu.Unlock()

	remaining := 0
	for _, co := range ids {
		if co.State == coroutine.Waiting && !co.HasWork() {
			continue
		}
		h.mu.Lock()
		h.running = co
		h.mu.Unlock()

		if scheduler.Run(co) {
			remaining++
		}
	}

	h.mu.Lock()
	h.running = nil
	h.mu.Unlock()
	return remaining
}

// --- request lists ---

// Submit files req onto the pending list (spec §6: every new RAW/SYNC/ASYNC
// request starts PENDING).
func (h *Heap) Submit(req *request.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	req.State = request.Pending
	h.pending = append(h.pending, req)
}

// Activate moves req from pending to active, marking it ACTIVATING.
func (h *Heap) Activate(req *request.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending = removeReq(h.pending, req)
	req.State = request.Activating
	h.active = append(h.active, req)
}

// Hibernate moves req from active to hibernating (spec §6: an async
// request whose owning coroutine has been parked waiting on something
// else).
func (h *Heap) Hibernate(req *request.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.active = removeReq(h.active, req)
	req.State = request.Hibernating
	h.hibernating = append(h.hibernating, req)
}

// Complete moves req out of active/hibernating entirely; its result is
// already installed by the caller.
func (h *Heap) Complete(req *request.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.active = removeReq(h.active, req)
	h.hibernating = removeReq(h.hibernating, req)
	req.State = request.Complete
}

// Cancel moves req (from any live list) to cancelled, then immediately to
// dying: spec §6's PENDING -> CANCELLED -> DYING -> released chain collapses
// here since nothing observes the CANCELLED state separately from DYING in
// this implementation.
func (h *Heap) Cancel(req *request.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending = removeReq(h.pending, req)
	h.active = removeReq(h.active, req)
	h.hibernating = removeReq(h.hibernating, req)
	req.State = request.Cancelled
	h.cancelled = append(h.cancelled, req)
	h.cancelled = removeReq(h.cancelled, req)
	req.State = request.Dying
	h.dying = append(h.dying, req)
}

// ReleaseDying drops every request on the dying list, returning how many
// were released.
func (h *Heap) ReleaseDying() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := len(h.dying)
	h.dying = nil
	return n
}

func removeReq(list []*request.Request, req *request.Request) []*request.Request {
	for i, r := range list {
		if r == req {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}
