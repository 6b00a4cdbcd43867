package variant

// ListenerFunc is a post-mutation listener callback. args carries the
// event-specific payload, e.g. [keyNew, valueNew, keyOld, valueOld] for
// object grow/shrink per spec §4.1.
type ListenerFunc func(source *Value, event string, ctxt interface{}, args []*Value)

// Handle identifies a registered listener so it can be revoked later.
type Handle uint64

type listenerEntry struct {
	handle Handle
	event  string
	fn     ListenerFunc
	ctxt   interface{}
	// revoked is set instead of removing the slice element in place so
	// that a snapshot-by-index iterator started before revocation still
	// sees a stable length (design notes §9: generation-counted listener
	// snapshots, mutation never reenters the mutator below refcount 1).
	revoked bool
}

type listenerList struct {
	nextHandle Handle
	entries    []*listenerEntry
	generation uint64
}

func (l *listenerList) register(event string, fn ListenerFunc, ctxt interface{}) Handle {
	l.nextHandle++
	h := l.nextHandle
	l.entries = append(l.entries, &listenerEntry{handle: h, event: event, fn: fn, ctxt: ctxt})
	l.generation++
	return h
}

func (l *listenerList) revoke(h Handle) bool {
	for _, e := range l.entries {
		if e.handle == h && !e.revoked {
			e.revoked = true
			l.generation++
			return true
		}
	}
	return false
}

// fire invokes every live listener registered for event, in registration
// order, against a snapshot taken before any callback runs (so a listener
// that registers or revokes another listener mid-fire does not perturb this
// dispatch, matching spec §4.1's synchronous-after-mutation-completes rule).
func (l *listenerList) fire(source *Value, event string, args []*Value) {
	if l == nil {
		return
	}
	snapshot := make([]*listenerEntry, len(l.entries))
	copy(snapshot, l.entries)
	for _, e := range snapshot {
		if e.revoked || e.event != event {
			continue
		}
		e.fn(source, event, e.ctxt, args)
	}
}
