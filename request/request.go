// Package request implements the RAW/SYNC/ASYNC request lifecycle of spec
// §6: a request object moving through PENDING -> ACTIVATING ->
// (COMPLETE|HIBERNATING), or PENDING -> CANCELLED -> DYING -> released,
// guarded only by the heap's lock (package heap owns the lists; this
// package owns the record and its state enum, mirroring how the teacher
// separates channel.go's Message struct from module.go's registry).
package request

import "github.com/purc-go/purc/variant"

// Kind is the request's delivery mode (spec §6).
type Kind int

const (
	Raw Kind = iota
	Sync
	Async
)

func (k Kind) String() string {
	return [...]string{"RAW", "SYNC", "ASYNC"}[k]
}

// State is where the request sits in its lifecycle.
type State int

const (
	Pending State = iota
	Activating
	Complete
	Hibernating
	Cancelled
	Dying
)

func (s State) String() string {
	return [...]string{"PENDING", "ACTIVATING", "COMPLETE", "HIBERNATING", "CANCELLED", "DYING"}[s]
}

// Request is one in-flight <load>/<call>/network/timer-backed request.
type Request struct {
	ID          int64
	Kind        Kind
	State       State
	CoroutineID int64 // the owning coroutine, for wakeup routing
	URI         string
	Result      *variant.Value
	Err         error

	// OnComplete is invoked by whoever fulfills the request (the reference
	// runloop, or a test fake) once Result/Err are set; the owning
	// coroutine's Ops implementation uses it to push a pseudo-frame
	// continuation rather than blocking a goroutine.
	OnComplete func(*Request)
}

// NewRequest allocates a request in PENDING state.
func NewRequest(id int64, kind Kind, coroutineID int64, uri string) *Request {
	return &Request{ID: id, Kind: kind, State: Pending, CoroutineID: coroutineID, URI: uri}
}

// Fulfill installs result/err and invokes OnComplete, transitioning the
// caller-visible state to COMPLETE. The heap's list bookkeeping (moving the
// request off active/hibernating) is the caller's responsibility via
// heap.Complete.
func (r *Request) Fulfill(result *variant.Value, err error) {
	r.Result = result
	r.Err = err
	r.State = Complete
	if r.OnComplete != nil {
		r.OnComplete(r)
	}
}
