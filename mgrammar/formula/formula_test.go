package formula

import "testing"

func TestParseBareFieldsAndAggregates(t *testing.T) {
	f, err := Parse("name, count(*), sum(amount)")
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Selectors) != 3 {
		t.Fatalf("expected 3 selectors, got %d: %+v", len(f.Selectors), f.Selectors)
	}
	if f.Selectors[0] != (Selector{Field: "name"}) {
		t.Fatalf("unexpected first selector: %+v", f.Selectors[0])
	}
	if f.Selectors[1] != (Selector{Func: "count", Field: "*"}) {
		t.Fatalf("unexpected second selector: %+v", f.Selectors[1])
	}
	if f.Selectors[2] != (Selector{Func: "sum", Field: "amount"}) {
		t.Fatalf("unexpected third selector: %+v", f.Selectors[2])
	}
}

func TestRoundTrip(t *testing.T) {
	f, err := Parse("name, count(*), sum(amount)")
	if err != nil {
		t.Fatal(err)
	}
	got := f.String()
	f2, err := Parse(got)
	if err != nil {
		t.Fatalf("Parse(String())=%q: %v", got, err)
	}
	if len(f.Selectors) != len(f2.Selectors) {
		t.Fatalf("round trip selector count mismatch")
	}
	for i := range f.Selectors {
		if f.Selectors[i] != f2.Selectors[i] {
			t.Fatalf("selector %d mismatch: %+v vs %+v", i, f.Selectors[i], f2.Selectors[i])
		}
	}
}
