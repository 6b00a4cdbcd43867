package variant

// arrayData backs the Array kind: an ordered, index-addressed sequence.
type arrayData struct {
	items []*Value
}

// MakeArray constructs an array variant owning (ref'd) copies of elems.
func MakeArray(elems ...*Value) *Value {
	items := make([]*Value, len(elems))
	for i, e := range elems {
		items[i] = Ref(e)
	}
	return newCell(Array, &arrayData{items: items})
}

func (v *Value) arr() *arrayData { return v.data.(*arrayData) }

// ArrayLen returns the number of elements, or 0 for a non-array.
func (v *Value) ArrayLen() int {
	if v == nil || v.kind != Array {
		return 0
	}
	return len(v.arr().items)
}

// ArrayGet returns the element at i without taking a new reference, the
// borrow-semantics spec.md uses throughout (spec §4.2). A caller that needs
// the value to outlive a subsequent mutation must Ref it explicitly.
//
// Snapshot-by-index iteration (spec §4.1): because ArrayGet re-reads the
// live slice by index rather than handing back an iterator, a caller who
// cached `n := v.ArrayLen()` before a concurrent append sees only indices
// `0..n` even if the array grew meanwhile.
func (v *Value) ArrayGet(i int) *Value {
	if v == nil || v.kind != Array {
		return Undef()
	}
	a := v.arr()
	if i < 0 || i >= len(a.items) {
		return Undef()
	}
	return a.items[i]
}

// ArrayAppend appends value, ref'ing it, and fires a grow post-listener
// with args [index-as-number, value, undefined, undefined].
func (v *Value) ArrayAppend(value *Value) {
	a := v.arr()
	a.items = append(a.items, Ref(value))
	idx := Num(float64(len(a.items) - 1))
	v.fireListeners(EventGrow, []*Value{idx, value, Undef(), Undef()})
}

// ArrayRemove removes the element at i, unref'ing it, and fires shrink.
func (v *Value) ArrayRemove(i int) bool {
	a := v.arr()
	if i < 0 || i >= len(a.items) {
		return false
	}
	old := a.items[i]
	a.items = append(a.items[:i], a.items[i+1:]...)
	v.fireListeners(EventShrink, []*Value{Num(float64(i)), Undef(), Num(float64(i)), old})
	Unref(old)
	return true
}

// tupleData backs the fixed-arity, immutable Tuple kind.
type tupleData struct {
	items []*Value
}

// MakeTuple constructs a fixed-arity tuple; unlike Array it never grows or
// shrinks, so it has no grow/shrink listeners.
func MakeTuple(elems ...*Value) *Value {
	items := make([]*Value, len(elems))
	for i, e := range elems {
		items[i] = Ref(e)
	}
	return newCell(Tuple, &tupleData{items: items})
}

func (v *Value) TupleLen() int {
	if v == nil || v.kind != Tuple {
		return 0
	}
	return len(v.data.(*tupleData).items)
}

func (v *Value) TupleGet(i int) *Value {
	if v == nil || v.kind != Tuple {
		return Undef()
	}
	td := v.data.(*tupleData)
	if i < 0 || i >= len(td.items) {
		return Undef()
	}
	return td.items[i]
}
