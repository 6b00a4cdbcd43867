package variant

import "testing"

func TestObjectSetGetRoundTrip(t *testing.T) {
	o := MakeObject()
	v := Str("hello")
	o.ObjectSet("greeting", v)

	got, err := o.ObjectGetByCKey("greeting", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != v {
		t.Fatalf("round trip failed: got %v want %v", got, v)
	}
}

func TestObjectGetMissingNotSilentErrors(t *testing.T) {
	o := MakeObject()
	_, err := o.ObjectGetByCKey("missing", false)
	if err == nil {
		t.Fatal("expected NOT_EXISTS error")
	}
	if err.Code != 4 { // herr.NotExists
		t.Fatalf("unexpected code: %v", err.Code)
	}
}

func TestObjectGetMissingSilentIsUndefined(t *testing.T) {
	o := MakeObject()
	v, err := o.ObjectGetByCKey("missing", true)
	if err != nil {
		t.Fatalf("silent lookup should not error, got %v", err)
	}
	if v.Kind() != Undefined {
		t.Fatalf("expected undefined, got %v", v.Kind())
	}
}

func TestObjectGrowShrinkListenersFireExactlyOnce(t *testing.T) {
	o := MakeObject()
	var growCount, shrinkCount int
	h := o.RegisterPostListener(EventGrow, func(source *Value, event string, ctxt interface{}, args []*Value) {
		growCount++
	}, nil)
	o.RegisterPostListener(EventShrink, func(source *Value, event string, ctxt interface{}, args []*Value) {
		shrinkCount++
	}, nil)

	o.ObjectSet("a", I64(1))
	o.ObjectRemoveByCKey("a")
	if growCount != 1 {
		t.Fatalf("expected 1 grow event, got %d", growCount)
	}
	if shrinkCount != 1 {
		t.Fatalf("expected 1 shrink event, got %d", shrinkCount)
	}

	o.RevokeListener(h)
	o.ObjectSet("b", I64(2))
	if growCount != 1 {
		t.Fatalf("listener fired after revocation")
	}
}

func TestRefcountBalance(t *testing.T) {
	v := Str("x")
	if v.RefCount() != 1 {
		t.Fatalf("expected refcount 1 at construction, got %d", v.RefCount())
	}
	Ref(v)
	if v.RefCount() != 2 {
		t.Fatalf("expected refcount 2 after Ref, got %d", v.RefCount())
	}
	Unref(v)
	Unref(v)
	if v.RefCount() != 0 {
		t.Fatalf("expected refcount 0 after balanced unref, got %d", v.RefCount())
	}
}

func TestArraySnapshotIterationDuringGrow(t *testing.T) {
	a := MakeArray(I64(1), I64(2), I64(3))
	n := a.ArrayLen()
	seen := 0
	for i := 0; i < n; i++ {
		_ = a.ArrayGet(i)
		seen++
		if i == 0 {
			a.ArrayAppend(I64(99)) // grows past the snapshot bound n
		}
	}
	if seen != 3 {
		t.Fatalf("expected snapshot iteration of 3, got %d", seen)
	}
	if a.ArrayLen() != 4 {
		t.Fatalf("expected array to have grown to 4, got %d", a.ArrayLen())
	}
}

func TestSetUniqueByKeyField(t *testing.T) {
	s := MakeSetByCKey("id")
	e1 := MakeObjectByCKeys("id", Str("t"), "interval", I64(20))
	e2 := MakeObjectByCKeys("id", Str("t"), "interval", I64(30))

	changed := s.SetAdd(e1)
	if !changed {
		t.Fatal("expected first add to change the set")
	}
	changed = s.SetAdd(e2)
	if !changed {
		t.Fatal("expected replace-by-key to report a change")
	}
	if s.SetLen() != 1 {
		t.Fatalf("expected set to stay unique by key, got %d elements", s.SetLen())
	}
	got := s.SetGetByKey("t")
	iv, _ := got.ObjectGetByCKey("interval", true)
	if iv.AsI64() != 30 {
		t.Fatalf("expected latest element to win, got %v", iv.AsI64())
	}
}

func TestNativeOnForgetFiresOnce(t *testing.T) {
	forgetCount := 0
	ops := &NativeOps{
		OnForget: func(entity interface{}, event, sub string) { forgetCount++ },
	}
	n := MakeNative(struct{}{}, ops)
	n.NotifyForget("expired", "t")
	n.NotifyForget("expired", "t")
	if forgetCount != 1 {
		t.Fatalf("expected OnForget exactly once, got %d", forgetCount)
	}
}
