package variant

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/purc-go/purc/herr"
)

// objectData backs the Object kind: an insertion-ordered string-keyed map,
// using emirpasic/gods' linkedhashmap the way
// _examples/npillmayer-gorgo/lr/tables.go uses gods' ordered collections
// for deterministic iteration order instead of Go's randomized map order.
type objectData struct {
	m *linkedhashmap.Map
}

// MakeObject constructs an empty object variant.
func MakeObject() *Value {
	return newCell(Object, &objectData{m: linkedhashmap.New()})
}

// MakeObjectByCKeys builds an object from alternating key/value pairs, the
// Go analogue of purc_variant_make_object_by_ckeys.
func MakeObjectByCKeys(kv ...interface{}) *Value {
	o := MakeObject()
	for i := 0; i+1 < len(kv); i += 2 {
		key, _ := kv[i].(string)
		val, _ := kv[i+1].(*Value)
		o.ObjectSet(key, val)
	}
	return o
}

func (v *Value) obj() *objectData { return v.data.(*objectData) }

// ObjectSet inserts or replaces key -> value, ref'ing value and unref'ing
// whatever value key previously held. Fires `grow` if the key is new,
// `change` if it replaced an existing value — post-listeners run after the
// map mutation is already visible, with args [keyNew, valueNew, keyOld,
// valueOld] per spec §4.1.
func (v *Value) ObjectSet(key string, value *Value) {
	od := v.obj()
	old, existed := od.m.Get(key)
	od.m.Put(key, Ref(value))
	keyV := Str(key)
	if !existed {
		v.fireListeners(EventGrow, []*Value{keyV, value, Undef(), Undef()})
		return
	}
	oldVal := old.(*Value)
	v.fireListeners(EventChange, []*Value{keyV, value, keyV, oldVal})
	Unref(oldVal)
}

// ObjectGetByCKey looks up key; when silent is false and the key is
// missing, err is a NOT_EXISTS/NoSuchKey herr.Info (spec §4.1).
func (v *Value) ObjectGetByCKey(key string, silent bool) (*Value, *herr.Info) {
	od := v.obj()
	val, found := od.m.Get(key)
	if !found {
		if silent {
			return Undef(), nil
		}
		return Undef(), herr.New(herr.NotExists, herr.AtomNoSuchKey, key, herr.CallSite{})
	}
	return val.(*Value), nil
}

// ObjectRemoveByCKey deletes key, unref'ing its value and firing `shrink`
// with args [undefined, undefined, keyOld, valueOld].
func (v *Value) ObjectRemoveByCKey(key string) bool {
	od := v.obj()
	old, found := od.m.Get(key)
	if !found {
		return false
	}
	od.m.Remove(key)
	oldVal := old.(*Value)
	v.fireListeners(EventShrink, []*Value{Undef(), Undef(), Str(key), oldVal})
	Unref(oldVal)
	return true
}

// ObjectKeys returns the keys in insertion order.
func (v *Value) ObjectKeys() []string {
	if v == nil || v.kind != Object {
		return nil
	}
	raw := v.obj().m.Keys()
	keys := make([]string, len(raw))
	for i, k := range raw {
		keys[i] = k.(string)
	}
	return keys
}

// ObjectLen reports the number of keys.
func (v *Value) ObjectLen() int {
	if v == nil || v.kind != Object {
		return 0
	}
	return v.obj().m.Size()
}

// ObjectEach iterates key/value pairs in insertion order, matching the
// snapshot-by-index discipline of spec §4.1 (gods' Keys() already returns
// a fresh slice, so mutation from inside fn cannot perturb this iteration).
func (v *Value) ObjectEach(fn func(key string, val *Value)) {
	for _, k := range v.ObjectKeys() {
		val, _ := v.obj().m.Get(k)
		fn(k, val.(*Value))
	}
}
