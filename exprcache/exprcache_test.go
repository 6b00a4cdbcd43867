package exprcache

import (
	"testing"

	"github.com/purc-go/purc/variant"
)

func TestGetMissesBeforePut(t *testing.T) {
	c := New()
	scope := []uintptr{0x1, 0x2}
	if _, ok := c.Get(scope, 0xdead); ok {
		t.Fatal("expected a miss on an empty cache")
	}
}

func TestPutThenGetHits(t *testing.T) {
	c := New()
	scope := []uintptr{0x1, 0x2}
	c.Put(scope, 0xdead, variant.Num(42))

	v, ok := c.Get(scope, 0xdead)
	if !ok {
		t.Fatal("expected a hit after Put")
	}
	if v.AsNumber() != 42 {
		t.Fatalf("expected cached value 42, got %v", v.AsNumber())
	}
}

func TestDistinctScopeFingerprintsDoNotCollide(t *testing.T) {
	c := New()
	c.Put([]uintptr{0x1}, 0xbeef, variant.Num(1))
	c.Put([]uintptr{0x2}, 0xbeef, variant.Num(2))

	v1, ok1 := c.Get([]uintptr{0x1}, 0xbeef)
	v2, ok2 := c.Get([]uintptr{0x2}, 0xbeef)
	if !ok1 || !ok2 {
		t.Fatal("expected both entries present")
	}
	if v1.AsNumber() == v2.AsNumber() {
		t.Fatalf("expected distinct scope fingerprints to hold distinct values, got %v and %v", v1.AsNumber(), v2.AsNumber())
	}
}

func TestPutRefsTheStoredValue(t *testing.T) {
	c := New()
	v := variant.Num(9)
	before := v.RefCount()
	c.Put(nil, 0x1, v)
	if v.RefCount() != before+1 {
		t.Fatalf("expected Put to take its own reference, refcount %d -> %d", before, v.RefCount())
	}
	c.Release()
}

func TestReleaseUnrefsEveryEntry(t *testing.T) {
	c := New()
	v := variant.Num(9)
	c.Put(nil, 0x1, v)
	before := v.RefCount()
	c.Release()
	if v.RefCount() != before-1 {
		t.Fatalf("expected Release to drop the cache's reference, refcount %d -> %d", before, v.RefCount())
	}
}
