package value

import (
	"encoding/binary"
	"math"
)

const (
	int32Size   = 4
	float32Size = 4
	handleSize  = 8

	// Value layout: [Kind u8 | pad 3 | payload u64]
	valueKindOff    = 0
	valuePayloadOff = 4
	valueSize       = valuePayloadOff + 8
)

// Codec stores one T in a fixed-width little-endian slot.
// Put and Get expect len(b) >= Size(); the slice bound is the only check.
type Codec[T Scalar] interface {
	Size() int
	Put(b []byte, v T)
	Get(b []byte) T
}

type int32Codec struct{}

func (int32Codec) Size() int { return int32Size }
func (int32Codec) Put(b []byte, v int32) { binary.LittleEndian.PutUint32(b, uint32(v)) }
func (int32Codec) Get(b []byte) int32 { return int32(binary.LittleEndian.Uint32(b)) }

type float32Codec struct{}

func (float32Codec) Size() int { return float32Size }
func (float32Codec) Put(b []byte, v float32) { binary.LittleEndian.PutUint32(b, math.Float32bits(v)) }
func (float32Codec) Get(b []byte) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(b)) }

type handleCodec struct{}

func (handleCodec) Size() int { return handleSize }
func (handleCodec) Put(b []byte, v Handle) { binary.LittleEndian.PutUint64(b, uint64(v)) }
func (handleCodec) Get(b []byte) Handle { return Handle(binary.LittleEndian.Uint64(b)) }

type valueCodec struct{}

func (valueCodec) Size() int { return valueSize }

func (valueCodec) Put(b []byte, v Value) {
	_ = b[valueSize-1]
	b[valueKindOff] = byte(v.kind)
	b[1], b[2], b[3] = 0, 0, 0
	binary.LittleEndian.PutUint64(b[valuePayloadOff:], v.bits)
}

func (valueCodec) Get(b []byte) Value {
	_ = b[valueSize-1]
	return Value{kind: Kind(b[valueKindOff]), bits: binary.LittleEndian.Uint64(b[valuePayloadOff:])}
}

// CodecOf returns the codec for T. The switch is exhaustive over Scalar.
func CodecOf[T Scalar]() Codec[T] {
	var zero T
	switch any(zero).(type) {
	case int32:
		return any(int32Codec{}).(Codec[T])
	case float32:
		return any(float32Codec{}).(Codec[T])
	case Handle:
		return any(handleCodec{}).(Codec[T])
	default:
		return any(valueCodec{}).(Codec[T])
	}
}

// SizeOf returns the slot width of T in bytes.
func SizeOf[T Scalar]() int {
	return CodecOf[T]().Size()
}
