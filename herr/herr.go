// Package herr implements the interpreter's error taxonomy: the abstract
// error codes of spec §7, the interned-atom exception names HVML code
// raises (BadName, NoSuchKey, ExternalFailure, ...), and the per-coroutine
// exception record that travels with a frame stack instead of living in a
// real thread-local slot (Go has none; single-owner-thread discipline
// makes a plain struct field equivalent, see spec §5).
package herr

import "fmt"

// Code is one of the abstract error kinds every leaf operation may report.
type Code int

const (
	OK Code = iota
	OutOfMemory
	InvalidValue
	BadArg
	NotExists
	NotAllowed
	NotImplemented
	WrongStage
	ServerRefused
	ExternalFailure
)

func (c Code) String() string {
	switch c {
	case OK:
		return "OK"
	case OutOfMemory:
		return "OUT_OF_MEMORY"
	case InvalidValue:
		return "INVALID_VALUE"
	case BadArg:
		return "BAD_ARG"
	case NotExists:
		return "NOT_EXISTS"
	case NotAllowed:
		return "NOT_ALLOWED"
	case NotImplemented:
		return "NOT_IMPLEMENTED"
	case WrongStage:
		return "WRONG_STAGE"
	case ServerRefused:
		return "SERVER_REFUSED"
	case ExternalFailure:
		return "EXTERNAL_FAILURE"
	default:
		return "UNKNOWN"
	}
}

// Atom is an interned HVML-level exception name (BadName, NoSuchKey, ...).
// Atoms are compared by identity (string equality on the interned value),
// matching purc_atom_t's use in original_source/Source/PurC/interpreter.
type Atom string

// Well-known exception atoms raised by the core itself; tags and the VCM
// evaluator may raise further application atoms at will.
const (
	AtomNone            Atom = ""
	AtomBadName         Atom = "BadName"
	AtomNoSuchKey       Atom = "NoSuchKey"
	AtomExternalFailure Atom = "ExternalFailure"
	AtomEntityNotFound  Atom = "EntityNotFound"
	AtomWrongDataType   Atom = "WrongDataType"
	AtomInvalidOperand  Atom = "InvalidOperand"
)

// CallSite records where an error was raised, for backtrace construction.
type CallSite struct {
	Tag  string // vDOM tag name, "" outside tag dispatch
	File string
	Line int
}

func (c CallSite) String() string {
	if c.Tag == "" {
		return fmt.Sprintf("%s:%d", c.File, c.Line)
	}
	return fmt.Sprintf("<%s> %s:%d", c.Tag, c.File, c.Line)
}

// Info is the full captured error: code, exception atom, an opaque
// info-value (kept as interface{} to avoid an import cycle with variant;
// the scheduler stores a variant.Value here in practice), and a backtrace
// snapshotted at the moment the error was raised.
type Info struct {
	Code      Code
	Atom      Atom
	ExInfo    interface{}
	Backtrace []CallSite
}

func (e *Info) Error() string {
	if e == nil {
		return "<nil error>"
	}
	if e.Atom != AtomNone {
		return fmt.Sprintf("%s: %s", e.Code, e.Atom)
	}
	return e.Code.String()
}

// New creates an Info with a backtrace of a single call site.
func New(code Code, atom Atom, exInfo interface{}, site CallSite) *Info {
	return &Info{Code: code, Atom: atom, ExInfo: exInfo, Backtrace: []CallSite{site}}
}

// Slot is a per-owner "thread-local" error slot. A coroutine keeps its
// current exception in one: RaiseException sets it, CurrentException peeks
// at it, and ClearException or a matching CatchIfMatches clears it.
type Slot struct {
	err *Info
}

// Set records an error on the slot, overwriting whatever was there.
func (s *Slot) Set(err *Info) { s.err = err }

// Clear empties the slot and returns what was there, or nil.
func (s *Slot) Clear() *Info {
	e := s.err
	s.err = nil
	return e
}

// Peek reports the slot's current error without clearing it.
func (s *Slot) Peek() *Info { return s.err }

// Empty reports whether the slot currently holds no error.
func (s *Slot) Empty() bool { return s.err == nil }
