package variant

import (
	"sync/atomic"
)

// Value is a reference-counted handle to a tagged dynamic value. The zero
// Value (nil pointer) is never a valid variant; use Undef() instead.
type Value struct {
	kind      Kind
	refcount  int64
	data      interface{}
	listeners *listenerList
}

func newCell(k Kind, data interface{}) *Value {
	return &Value{kind: k, refcount: 1, data: data}
}

// Kind reports the variant's discriminant.
func (v *Value) Kind() Kind {
	if v == nil {
		return Undefined
	}
	return v.kind
}

// Ref increments the refcount and returns v, mirroring purc_variant_ref's
// "returns the same handle" convention so call sites can write
// `held := variant.Ref(x)`.
func Ref(v *Value) *Value {
	if v == nil {
		return v
	}
	atomic.AddInt64(&v.refcount, 1)
	return v
}

// Unref decrements the refcount; at zero it releases the kind's owned
// resources (unref'ing contained variants, invoking a native's cleaner and
// OnRelease) exactly once.
func Unref(v *Value) {
	if v == nil {
		return
	}
	n := atomic.AddInt64(&v.refcount, -1)
	if n > 0 {
		return
	}
	if n < 0 {
		panic("variant: refcount went negative")
	}
	v.release()
}

// RefCount reports the current refcount, for tests verifying the balance
// invariant of spec §8.
func (v *Value) RefCount() int64 {
	if v == nil {
		return 0
	}
	return atomic.LoadInt64(&v.refcount)
}

func (v *Value) release() {
	switch v.kind {
	case Array:
		for _, e := range v.data.(*arrayData).items {
			Unref(e)
		}
	case Tuple:
		for _, e := range v.data.(*tupleData).items {
			Unref(e)
		}
	case Object:
		od := v.data.(*objectData)
		for _, k := range od.m.Keys() {
			val, _ := od.m.Get(k)
			Unref(val.(*Value))
		}
	case Set:
		sd := v.data.(*setData)
		for _, e := range sd.s.Values() {
			Unref(e.(*Value))
		}
	case Native:
		nd := v.data.(*nativeData)
		if nd.ops != nil {
			if nd.ops.Cleaner != nil {
				nd.ops.Cleaner(nd.entity)
			}
			if nd.ops.Eraser != nil {
				nd.ops.Eraser(nd.entity)
			}
			if nd.ops.OnRelease != nil {
				nd.ops.OnRelease(nd.entity)
			}
		}
	}
}

// --- scalar constructors ---

func Undef() *Value { return newCell(Undefined, nil) }
func Nul() *Value   { return newCell(Null, nil) }

func Bool(b bool) *Value { return newCell(Boolean, b) }
func (v *Value) AsBool() bool {
	if v == nil || v.kind != Boolean {
		return false
	}
	return v.data.(bool)
}

func Num(f float64) *Value { return newCell(Number, f) }
func (v *Value) AsNumber() float64 {
	if v == nil || v.kind != Number {
		return 0
	}
	return v.data.(float64)
}

func I64(i int64) *Value { return newCell(LongInt, i) }
func (v *Value) AsI64() int64 {
	if v == nil || v.kind != LongInt {
		return 0
	}
	return v.data.(int64)
}

func U64(u uint64) *Value { return newCell(ULongInt, u) }
func (v *Value) AsU64() uint64 {
	if v == nil || v.kind != ULongInt {
		return 0
	}
	return v.data.(uint64)
}

func Str(s string) *Value { return newCell(String, s) }
func (v *Value) AsString() string {
	if v == nil {
		return ""
	}
	if s, ok := v.data.(string); ok && v.kind == String {
		return s
	}
	return ""
}

func Bytes(b []byte) *Value { return newCell(ByteSequence, append([]byte(nil), b...)) }
func (v *Value) AsBytes() []byte {
	if v == nil || v.kind != ByteSequence {
		return nil
	}
	return v.data.([]byte)
}

// DynGetter/DynSetter back a Dynamic variant's getter/setter pair.
type DynGetter func(args []*Value) *Value
type DynSetter func(args []*Value) bool

type dynData struct {
	get DynGetter
	set DynSetter
}

func Dyn(get DynGetter, set DynSetter) *Value {
	return newCell(Dynamic, &dynData{get: get, set: set})
}

func (v *Value) DynGet(args []*Value) *Value {
	if v == nil || v.kind != Dynamic {
		return Undef()
	}
	dd := v.data.(*dynData)
	if dd.get == nil {
		return Undef()
	}
	return dd.get(args)
}

func (v *Value) DynSet(args []*Value) bool {
	if v == nil || v.kind != Dynamic {
		return false
	}
	dd := v.data.(*dynData)
	if dd.set == nil {
		return false
	}
	return dd.set(args)
}

// listenerBus lazily allocates the listener list, since most variants never
// have anything observing them.
func (v *Value) listenerBus() *listenerList {
	if v.listeners == nil {
		v.listeners = &listenerList{}
	}
	return v.listeners
}

// RegisterPostListener subscribes fn to a container's grow/shrink events
// (or a native's change events). Returns a handle for RevokeListener.
func (v *Value) RegisterPostListener(event string, fn ListenerFunc, ctxt interface{}) Handle {
	return v.listenerBus().register(event, fn, ctxt)
}

// RevokeListener unregisters a previously registered listener.
func (v *Value) RevokeListener(h Handle) bool {
	if v == nil || v.listeners == nil {
		return false
	}
	return v.listeners.revoke(h)
}

func (v *Value) fireListeners(event string, args []*Value) {
	if v == nil || v.listeners == nil {
		return
	}
	v.listeners.fire(v, event, args)
}
