package variant

import (
	"fmt"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// setData backs the Set kind: a collection whose elements are unique by a
// chosen key-field, backed by emirpasic/gods' treeset the way
// _examples/npillmayer-gorgo/lr/tables.go builds a treeset.NewWith(cmp) over
// a domain-specific comparator.
type setData struct {
	keyField string
	s        *treeset.Set
}

func keyOf(keyField string, v *Value) string {
	if keyField == "" {
		return fmt.Sprintf("%p", v)
	}
	if v.Kind() != Object {
		return v.AsString()
	}
	field, err := v.ObjectGetByCKey(keyField, true)
	if err != nil || field == nil {
		return ""
	}
	return field.AsString()
}

func setComparator(keyField string) utils.Comparator {
	return func(a, b interface{}) int {
		ka, kb := keyOf(keyField, a.(*Value)), keyOf(keyField, b.(*Value))
		switch {
		case ka < kb:
			return -1
		case ka > kb:
			return 1
		default:
			return 0
		}
	}
}

// MakeSetByCKey constructs an empty set keyed by keyField (empty string
// means "unique by identity", used for sets of scalars).
func MakeSetByCKey(keyField string, elems ...*Value) *Value {
	sd := &setData{keyField: keyField, s: treeset.NewWith(setComparator(keyField))}
	v := newCell(Set, sd)
	for _, e := range elems {
		v.SetAdd(e)
	}
	return v
}

func (v *Value) set() *setData { return v.data.(*setData) }

// SetKeyField reports the field name elements are deduplicated by.
func (v *Value) SetKeyField() string {
	if v == nil || v.kind != Set {
		return ""
	}
	return v.set().keyField
}

// SetAdd inserts value if no existing element shares its key; replaces the
// existing element (and fires `change`) if one does; otherwise fires
// `grow`. Returns true if the set changed.
func (v *Value) SetAdd(value *Value) bool {
	sd := v.set()
	k := keyOf(sd.keyField, value)
	if existing := sd.findByKey(k); existing != nil {
		if existing == value {
			return false
		}
		sd.s.Remove(existing)
		sd.s.Add(Ref(value))
		v.fireListeners(EventChange, []*Value{Undef(), value, Undef(), existing})
		Unref(existing)
		return true
	}
	sd.s.Add(Ref(value))
	v.fireListeners(EventGrow, []*Value{Undef(), value, Undef(), Undef()})
	return true
}

func (sd *setData) findByKey(k string) *Value {
	for _, raw := range sd.s.Values() {
		e := raw.(*Value)
		if keyOf(sd.keyField, e) == k {
			return e
		}
	}
	return nil
}

// SetRemoveByKey removes the element whose key-field equals k, if present.
func (v *Value) SetRemoveByKey(k string) bool {
	sd := v.set()
	existing := sd.findByKey(k)
	if existing == nil {
		return false
	}
	sd.s.Remove(existing)
	v.fireListeners(EventShrink, []*Value{Undef(), Undef(), Undef(), existing})
	Unref(existing)
	return true
}

// SetValues returns the set's elements; order follows the treeset's
// comparator (key-field lexical order), a deterministic but not
// insertion-preserving order.
func (v *Value) SetValues() []*Value {
	if v == nil || v.kind != Set {
		return nil
	}
	raw := v.set().s.Values()
	out := make([]*Value, len(raw))
	for i, r := range raw {
		out[i] = r.(*Value)
	}
	return out
}

// SetLen reports the number of elements.
func (v *Value) SetLen() int {
	if v == nil || v.kind != Set {
		return 0
	}
	return v.set().s.Size()
}

// SetGetByKey looks up the element with the given key-field value.
func (v *Value) SetGetByKey(k string) *Value {
	if v == nil || v.kind != Set {
		return nil
	}
	return v.set().findByKey(k)
}
