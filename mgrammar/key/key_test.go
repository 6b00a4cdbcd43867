package key

import "testing"

func TestParseDottedPath(t *testing.T) {
	p, err := Parse("a.b.c")
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Segments) != 3 || p.Segments[1].Name != "b" {
		t.Fatalf("unexpected segments: %+v", p.Segments)
	}
	if p.Delim != '.' {
		t.Fatalf("expected default delim '.', got %q", p.Delim)
	}
}

func TestParseIndexSegment(t *testing.T) {
	p, err := Parse("items[2].name")
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Segments) != 3 {
		t.Fatalf("expected 3 segments, got %d: %+v", len(p.Segments), p.Segments)
	}
	if p.Segments[0].Name != "items" {
		t.Fatalf("expected first segment 'items', got %+v", p.Segments[0])
	}
	if !p.Segments[1].IsIndex || p.Segments[1].Index != 2 {
		t.Fatalf("expected second segment to be index 2, got %+v", p.Segments[1])
	}
	if p.Segments[2].Name != "name" {
		t.Fatalf("expected third segment 'name', got %+v", p.Segments[2])
	}
}

func TestParseCustomDelimiter(t *testing.T) {
	p, err := Parse("/a/b/c")
	if err != nil {
		t.Fatal(err)
	}
	if p.Delim != '/' {
		t.Fatalf("expected delim '/', got %q", p.Delim)
	}
	if len(p.Segments) != 3 || p.Segments[2].Name != "c" {
		t.Fatalf("unexpected segments: %+v", p.Segments)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, s := range []string{"a.b.c", "items[2].name", "/a/b/c"} {
		p, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q): %v", s, err)
		}
		got := p.String()
		p2, err := Parse(got)
		if err != nil {
			t.Fatalf("Parse(String())=%q: %v", got, err)
		}
		if len(p.Segments) != len(p2.Segments) || p.Delim != p2.Delim {
			t.Fatalf("round trip mismatch for %q: %+v vs %+v", s, p, p2)
		}
		for i := range p.Segments {
			if p.Segments[i] != p2.Segments[i] {
				t.Fatalf("segment %d mismatch: %+v vs %+v", i, p.Segments[i], p2.Segments[i])
			}
		}
	}
}
