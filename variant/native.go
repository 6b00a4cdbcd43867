package variant

// NativeOps is the per-instance vtable a native variant's opaque pointer is
// paired with (spec §3, §4.1). Every callback is optional; a nil callback
// means "this native kind does not support that operation".
type NativeOps struct {
	PropertyGetter func(entity interface{}, name string) *Value
	PropertySetter func(entity interface{}, name string, value *Value) bool
	Cleaner        func(entity interface{}) bool
	Eraser         func(entity interface{}) bool
	OnObserve      func(entity interface{}, event, sub string) bool
	OnRelease      func(entity interface{})
	OnForget       func(entity interface{}, event, sub string)
	Updater        func(entity interface{}, value *Value) bool
}

type nativeData struct {
	entity interface{}
	ops    *NativeOps
	// forgottenSet tracks which (event, sub) pairs have already had OnForget
	// fire, so it happens exactly once per pair even if revocation runs
	// through multiple paths (spec §3 invariant).
	forgottenSet map[[2]string]bool
}

// MakeNative wraps an opaque Go value with its vtable into a native variant.
func MakeNative(entity interface{}, ops *NativeOps) *Value {
	return newCell(Native, &nativeData{entity: entity, ops: ops, forgottenSet: map[[2]string]bool{}})
}

// NativeEntity returns the opaque pointer behind a native variant, or nil.
func (v *Value) NativeEntity() interface{} {
	if v == nil || v.kind != Native {
		return nil
	}
	return v.data.(*nativeData).entity
}

// NativeOps returns the vtable behind a native variant, or nil.
func (v *Value) NativeOps() *NativeOps {
	if v == nil || v.kind != Native {
		return nil
	}
	return v.data.(*nativeData).ops
}

// NotifyObserve calls the native's OnObserve hook the first time an
// observer registers for (event, sub); callers are responsible for only
// calling this on the first registration (this method keeps no count of
// registrations itself).
func (v *Value) NotifyObserve(event, sub string) bool {
	nd := v.data.(*nativeData)
	if nd.ops == nil || nd.ops.OnObserve == nil {
		return true
	}
	return nd.ops.OnObserve(nd.entity, event, sub)
}

// NotifyForget calls the native's OnForget hook exactly once per (event,
// sub) pair, the first time it is invoked for that pair.
func (v *Value) NotifyForget(event, sub string) {
	nd := v.data.(*nativeData)
	key := [2]string{event, sub}
	if nd.forgottenSet[key] {
		return
	}
	nd.forgottenSet[key] = true
	if nd.ops != nil && nd.ops.OnForget != nil {
		nd.ops.OnForget(nd.entity, event, sub)
	}
}
