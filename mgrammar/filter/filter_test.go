package filter

import "testing"

func TestParseSingleClause(t *testing.T) {
	r, err := Parse("age > 18")
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Clauses) != 1 {
		t.Fatalf("expected 1 clause, got %d", len(r.Clauses))
	}
	c := r.Clauses[0]
	if c.Field != "age" || c.Op != Gt || c.Literal != "18" {
		t.Fatalf("unexpected clause: %+v", c)
	}
}

func TestParseConjunction(t *testing.T) {
	r, err := Parse("age >= 18 and status == 'active'")
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Clauses) != 2 {
		t.Fatalf("expected 2 clauses, got %d: %+v", len(r.Clauses), r.Clauses)
	}
	if r.Clauses[0].Op != Ge || r.Clauses[1].Op != Eq {
		t.Fatalf("unexpected operators: %+v", r.Clauses)
	}
	if r.Clauses[1].Literal != "active" {
		t.Fatalf("expected unquoted literal 'active', got %q", r.Clauses[1].Literal)
	}
}

func TestParseNoOperatorErrors(t *testing.T) {
	if _, err := Parse("just a field name"); err == nil {
		t.Fatal("expected an error for a clause with no operator")
	}
}

func TestRoundTrip(t *testing.T) {
	r, err := Parse("age >= 18 and status == 'active'")
	if err != nil {
		t.Fatal(err)
	}
	got := r.String()
	r2, err := Parse(got)
	if err != nil {
		t.Fatalf("Parse(String())=%q: %v", got, err)
	}
	if len(r.Clauses) != len(r2.Clauses) {
		t.Fatalf("round trip clause count mismatch: %d vs %d", len(r.Clauses), len(r2.Clauses))
	}
	for i := range r.Clauses {
		if r.Clauses[i] != r2.Clauses[i] {
			t.Fatalf("clause %d mismatch: %+v vs %+v", i, r.Clauses[i], r2.Clauses[i])
		}
	}
}
