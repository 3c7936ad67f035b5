package value

import (
	"fmt"
	"math"
)

// Handle is an opaque caller token (an index, an ID, a key into the caller's
// own tables). The containers copy it by value and never interpret it.
type Handle uint64

// Kind tags the active member of a Value.
type Kind uint8

const (
	KindInt Kind = iota + 1
	KindFloat
	KindHandle
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindHandle:
		return "handle"
	default:
		return "invalid"
	}
}

// Value holds exactly one of {int32, float32, Handle}. The zero Value has no
// kind and reports itself as invalid.
type Value struct {
	kind Kind
	bits uint64
}

func FromInt(v int32) Value { return Value{kind: KindInt, bits: uint64(uint32(v))} }
func FromFloat(v float32) Value { return Value{kind: KindFloat, bits: uint64(math.Float32bits(v))} }
func FromHandle(h Handle) Value { return Value{kind: KindHandle, bits: uint64(h)} }
func (v Value) Kind() Kind { return v.kind }
func (v Value) IsValid() bool { return v.kind >= KindInt && v.kind <= KindHandle }
func (v Value) Int() int32 { return int32(uint32(v.bits)) }
func (v Value) Float() float32 { return math.Float32frombits(uint32(v.bits)) }
func (v Value) Handle() Handle { return Handle(v.bits) }

// AsInt returns the int32 payload and whether v holds one.
func (v Value) AsInt() (int32, bool) { return v.Int(), v.kind == KindInt }

// AsFloat returns the float32 payload and whether v holds one.
func (v Value) AsFloat() (float32, bool) { return v.Float(), v.kind == KindFloat }

// AsHandle returns the Handle payload and whether v holds one.
func (v Value) AsHandle() (Handle, bool) { return v.Handle(), v.kind == KindHandle }

func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return fmt.Sprintf("int(%d)", v.Int())
	case KindFloat:
		return fmt.Sprintf("float(%g)", v.Float())
	case KindHandle:
		return fmt.Sprintf("handle(%#x)", uint64(v.Handle()))
	default:
		return "invalid"
	}
}

// Scalar is the closed set of payload types a container slot can hold.
// Every member is pointer-free, so slots can live in a plain byte region.
type Scalar interface {
	int32 | float32 | Handle | Value
}
