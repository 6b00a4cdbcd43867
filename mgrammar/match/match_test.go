package match

import "testing"

func TestParseAndEvalEq(t *testing.T) {
	c, err := Parse("eq 'ready'")
	if err != nil {
		t.Fatal(err)
	}
	if c.Cmp != Eq || len(c.Operands) != 1 || c.Operands[0] != "ready" {
		t.Fatalf("unexpected clause: %+v", c)
	}
	if !c.Eval("ready") {
		t.Fatal("expected eq 'ready' to match \"ready\"")
	}
	if c.Eval("busy") {
		t.Fatal("expected eq 'ready' not to match \"busy\"")
	}
}

func TestParseAndEvalIn(t *testing.T) {
	c, err := Parse("in 'a','b','c'")
	if err != nil {
		t.Fatal(err)
	}
	if c.Cmp != In || len(c.Operands) != 3 {
		t.Fatalf("unexpected clause: %+v", c)
	}
	if !c.Eval("b") {
		t.Fatal("expected in 'a','b','c' to match \"b\"")
	}
	if c.Eval("d") {
		t.Fatal("expected in 'a','b','c' not to match \"d\"")
	}
}

func TestEvalOrdering(t *testing.T) {
	c, err := Parse("gt '5'")
	if err != nil {
		t.Fatal(err)
	}
	if !c.Eval("6") {
		t.Fatal("expected gt '5' to match \"6\" under lexical comparison")
	}
	if c.Eval("5") {
		t.Fatal("expected gt '5' not to match \"5\" itself")
	}
}

func TestParseMissingOperandErrors(t *testing.T) {
	if _, err := Parse("eq"); err == nil {
		t.Fatal("expected an error for a clause with no operand")
	}
}

func TestRoundTrip(t *testing.T) {
	for _, s := range []string{"eq 'ready'", "in 'a','b','c'"} {
		c, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q): %v", s, err)
		}
		got := c.String()
		c2, err := Parse(got)
		if err != nil {
			t.Fatalf("Parse(String())=%q: %v", got, err)
		}
		if c.Cmp != c2.Cmp || len(c.Operands) != len(c2.Operands) {
			t.Fatalf("round trip mismatch for %q: %+v vs %+v", s, c, c2)
		}
		for i := range c.Operands {
			if c.Operands[i] != c2.Operands[i] {
				t.Fatalf("operand %d mismatch: %q vs %q", i, c.Operands[i], c2.Operands[i])
			}
		}
	}
}
