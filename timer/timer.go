// Package timer wires the `$TIMERS` set-variant of spec §6 to runloop
// one-shot/repeating timers: adding an element to the set creates and
// starts a timer, removing one destroys it, and replacing an element (a
// SetAdd with the same id) stops the old timer and starts one for the new
// element if it is active. Edits to an element object's fields in place
// are not observed. Grounded on the teacher's
// own timer-ish terminal polling loop (src/terminal.go) generalized to a
// real scheduled-callback abstraction.
package timer

import (
	"github.com/purc-go/purc/runloop"
	"github.com/purc-go/purc/variant"
)

// Manager owns the live timers backing one coroutine's $TIMERS set and
// keeps them in sync with that set's grow/shrink/change events.
type Manager struct {
	loop   *runloop.Loop
	byID   map[string]runloop.TimerHandle
	onFire func(id string)
}

// NewManager attaches to set, registering grow/shrink/change listeners that
// create/destroy/restart the backing runloop timers (spec §6).
func NewManager(loop *runloop.Loop, set *variant.Value, onFire func(id string)) *Manager {
	m := &Manager{loop: loop, byID: map[string]runloop.TimerHandle{}, onFire: onFire}
	set.RegisterPostListener(variant.EventGrow, m.onGrow, nil)
	set.RegisterPostListener(variant.EventShrink, m.onShrink, nil)
	set.RegisterPostListener(variant.EventChange, m.onChange, nil)
	return m
}

func (m *Manager) onGrow(v *variant.Value, event string, ctxt interface{}, args []*variant.Value) {
	if len(args) < 2 {
		return
	}
	elem := args[1]
	m.start(elem)
}

func (m *Manager) onShrink(v *variant.Value, event string, ctxt interface{}, args []*variant.Value) {
	if len(args) < 4 {
		return
	}
	elem := args[3]
	m.stop(elem)
}

func (m *Manager) onChange(v *variant.Value, event string, ctxt interface{}, args []*variant.Value) {
	if len(args) < 2 {
		return
	}
	m.stop(args[len(args)-1])
	m.start(args[1])
}

func (m *Manager) start(elem *variant.Value) {
	if elem.Kind() != variant.Object {
		return
	}
	id, _ := elem.ObjectGetByCKey("id", true)
	interval, _ := elem.ObjectGetByCKey("interval", true)
	active, _ := elem.ObjectGetByCKey("active", true)
	if id == nil || !active.AsBool() {
		return
	}
	key := id.AsString()
	ms := int(interval.AsNumber())
	if interval != nil && interval.Kind() == variant.LongInt {
		ms = int(interval.AsI64())
	}
	h := m.loop.ScheduleRepeating(ms, func() {
		if m.onFire != nil {
			m.onFire(key)
		}
	})
	m.byID[key] = h
}

func (m *Manager) stop(elem *variant.Value) {
	if elem == nil || elem.Kind() != variant.Object {
		return
	}
	id, _ := elem.ObjectGetByCKey("id", true)
	if id == nil {
		return
	}
	key := id.AsString()
	if h, ok := m.byID[key]; ok {
		m.loop.Cancel(h)
		delete(m.byID, key)
	}
}
