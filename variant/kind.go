// Package variant implements the interpreter's tagged dynamic value: a
// reference-counted union of the kinds listed in spec §3, with post-mutation
// listener dispatch for the container kinds and a native escape hatch keyed
// by a per-instance vtable. Ordered containers (object, set) are backed by
// github.com/emirpasic/gods (as used for ordered collections in
// _examples/npillmayer-gorgo/lr/tables.go) instead of a hand-rolled
// slice+map pair.
package variant

// Kind discriminates the fourteen shapes a Value can take.
type Kind int

const (
	Undefined Kind = iota
	Null
	Boolean
	Number
	LongInt
	ULongInt
	String
	ByteSequence
	Array
	Object
	Set
	Tuple
	Dynamic
	Native
)

func (k Kind) String() string {
	switch k {
	case Undefined:
		return "undefined"
	case Null:
		return "null"
	case Boolean:
		return "boolean"
	case Number:
		return "number"
	case LongInt:
		return "longint"
	case ULongInt:
		return "ulongint"
	case String:
		return "string"
	case ByteSequence:
		return "bsequence"
	case Array:
		return "array"
	case Object:
		return "object"
	case Set:
		return "set"
	case Tuple:
		return "tuple"
	case Dynamic:
		return "dynamic"
	case Native:
		return "native"
	default:
		return "?"
	}
}

// Event names used by the post-listener bus for container mutation.
const (
	EventGrow   = "grow"
	EventShrink = "shrink"
	EventChange = "change"
)
