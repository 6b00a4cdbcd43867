package docvars

import (
	"testing"

	"github.com/purc-go/purc/variant"
)

func TestNewBindsEveryBuiltin(t *testing.T) {
	doc := variant.Str("<hvml></hvml>")
	timers := variant.MakeSetByCKey("id")
	s := New(42, doc, timers)

	for _, name := range []string{"SYSTEM", "DATETIME", "T", "L", "STR", "STREAM", "DOC", "SESSION", "EJSON", "TIMERS", "RUNNER"} {
		if _, ok := s.Lookup(name); !ok {
			t.Fatalf("expected %q to be bound", name)
		}
	}
	if _, ok := s.Lookup("NOSUCHVAR"); ok {
		t.Fatal("expected an unknown name to be absent")
	}
}

func TestRunnerCarriesCoroutineID(t *testing.T) {
	s := New(7, variant.Undef(), variant.MakeSetByCKey("id"))
	runner, ok := s.Lookup("RUNNER")
	if !ok {
		t.Fatal("expected RUNNER to be bound")
	}
	id, herrInfo := runner.ObjectGetByCKey("id", true)
	if herrInfo != nil {
		t.Fatalf("unexpected error reading RUNNER.id: %v", herrInfo)
	}
	if id.AsI64() != 7 {
		t.Fatalf("expected RUNNER.id == 7, got %d", id.AsI64())
	}
}

func TestDocIsThePassedDocument(t *testing.T) {
	doc := variant.Str("payload")
	s := New(1, doc, variant.MakeSetByCKey("id"))
	got, _ := s.Lookup("DOC")
	if got.AsString() != "payload" {
		t.Fatalf("expected DOC to be the passed document, got %q", got.AsString())
	}
}

func TestDatetimeIsCallable(t *testing.T) {
	s := New(1, variant.Undef(), variant.MakeSetByCKey("id"))
	dt, _ := s.Lookup("DATETIME")
	result := dt.DynGet(nil)
	if result.AsString() == "" {
		t.Fatal("expected $DATETIME() to return a non-empty timestamp string")
	}
}
