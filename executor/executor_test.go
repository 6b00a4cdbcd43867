package executor

import (
	"testing"

	"github.com/purc-go/purc/variant"
)

func evenPredicate(elem *variant.Value) bool {
	return int64(elem.AsNumber())%2 == 0
}

func sample() *variant.Value {
	return variant.MakeArray(variant.Num(1), variant.Num(2), variant.Num(3), variant.Num(4), variant.Num(5))
}

func TestChooseYieldsOneMatchAtATime(t *testing.T) {
	e := Create(sample(), evenPredicate)

	v, ok := e.Choose()
	if !ok || v.AsNumber() != 2 {
		t.Fatalf("expected first even element 2, got %v ok=%v", v, ok)
	}
	v, ok = e.Choose()
	if !ok || v.AsNumber() != 4 {
		t.Fatalf("expected second even element 4, got %v ok=%v", v, ok)
	}
	if _, ok = e.Choose(); ok {
		t.Fatal("expected no further even elements")
	}
}

func TestIterateCollectsAllMatches(t *testing.T) {
	e := Create(sample(), evenPredicate)
	out := e.Iterate()
	if len(out) != 2 {
		t.Fatalf("expected 2 matches, got %d: %v", len(out), out)
	}
}

func TestIterateWithNilPredicateYieldsEverything(t *testing.T) {
	e := Create(sample(), nil)
	out := e.Iterate()
	if len(out) != 5 {
		t.Fatalf("expected 5 matches with a nil predicate, got %d", len(out))
	}
}

func TestReduceFolds(t *testing.T) {
	e := Create(sample(), evenPredicate)
	sum := e.Reduce(variant.Num(0), func(acc, elem *variant.Value) *variant.Value {
		return variant.Num(acc.AsNumber() + elem.AsNumber())
	})
	if sum.AsNumber() != 6 {
		t.Fatalf("expected sum of evens (2+4=6), got %v", sum.AsNumber())
	}
}

func TestCreateWithScalarSourceWrapsSingleElement(t *testing.T) {
	e := Create(variant.Num(7), nil)
	out := e.Iterate()
	if len(out) != 1 || out[0].AsNumber() != 7 {
		t.Fatalf("expected single-element source to yield itself, got %v", out)
	}
}

func TestDestroyClearsState(t *testing.T) {
	e := Create(sample(), evenPredicate)
	e.Destroy()
	if _, ok := e.Choose(); ok {
		t.Fatal("expected Choose to yield nothing after Destroy")
	}
}
