// Copyright 2026 The midlc Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package wire

import (
	"encoding/binary"
	"math"
)

// Widths, in bytes, of the fundamental scalar types.
const (
	WidthU8  = 1
	WidthU16 = 2
	WidthU32 = 4
	WidthU64 = 8
	WidthF32 = 4
	WidthF64 = 8
)

// putU16, putU32, putU64 and their u/i loaders are the little-endian,
// two's-complement primitive codec. Signed values are stored as
// the unsigned bit pattern of the same width; Go's uintN(intN) conversion is
// already two's-complement, so the helpers below only exist to make that
// conversion a named, single call site for the emitter to generate against.

func putU8(b []byte, v uint8) { b[0] = v }
func u8(b []byte) uint8       { return b[0] }

func putU16(b []byte, v uint16) { binary.LittleEndian.PutUint16(b, v) }
func u16(b []byte) uint16       { return binary.LittleEndian.Uint16(b) }

func putU32(b []byte, v uint32) { binary.LittleEndian.PutUint32(b, v) }
func u32(b []byte) uint32       { return binary.LittleEndian.Uint32(b) }

func putU64(b []byte, v uint64) { binary.LittleEndian.PutUint64(b, v) }
func u64(b []byte) uint64       { return binary.LittleEndian.Uint64(b) }

func putI8(b []byte, v int8)   { putU8(b, uint8(v)) }
func i8(b []byte) int8         { return int8(u8(b)) }
func putI16(b []byte, v int16) { putU16(b, uint16(v)) }
func i16(b []byte) int16       { return int16(u16(b)) }
func putI32(b []byte, v int32) { putU32(b, uint32(v)) }
func i32(b []byte) int32       { return int32(u32(b)) }
func putI64(b []byte, v int64) { putU64(b, uint64(v)) }
func i64(b []byte) int64       { return int64(u64(b)) }

// FloatClass is a float's classification for the purposes of canonical
// encoding: the sign and payload of a NaN are never preserved on
// the wire, only the fact that the value was a NaN.
type FloatClass int

const (
	ClassNormal FloatClass = iota
	ClassPositiveInfinity
	ClassNegativeInfinity
	ClassZero
	ClassNaN
)

// Canonical IEEE-754 bit patterns used for encoding special float values.
const (
	f32PosInf uint32 = 0x7f800000
	f32NegInf uint32 = 0xff800000
	f32NaN    uint32 = 0x7fffffff

	f64PosInf uint64 = 0x7ff0000000000000
	f64NegInf uint64 = 0xfff0000000000000
	f64NaN    uint64 = 0x7ff8000000000000
)

// ClassifyF32 reports which of the canonical classes v belongs to.
func ClassifyF32(v float32) FloatClass {
	switch {
	case math.IsNaN(float64(v)):
		return ClassNaN
	case v == 0:
		return ClassZero
	case math.IsInf(float64(v), 1):
		return ClassPositiveInfinity
	case math.IsInf(float64(v), -1):
		return ClassNegativeInfinity
	default:
		return ClassNormal
	}
}

// ClassifyF64 reports which of the canonical classes v belongs to.
func ClassifyF64(v float64) FloatClass {
	switch {
	case math.IsNaN(v):
		return ClassNaN
	case v == 0:
		return ClassZero
	case math.IsInf(v, 1):
		return ClassPositiveInfinity
	case math.IsInf(v, -1):
		return ClassNegativeInfinity
	default:
		return ClassNormal
	}
}

// encodeF32Bits maps v to the uint32 bit pattern written to the wire,
// canonicalizing zero, the infinities, and NaN.
func encodeF32Bits(v float32) uint32 {
	switch ClassifyF32(v) {
	case ClassZero:
		return 0
	case ClassPositiveInfinity:
		return f32PosInf
	case ClassNegativeInfinity:
		return f32NegInf
	case ClassNaN:
		return f32NaN
	default:
		return math.Float32bits(v)
	}
}

// decodeF32Bits is the inverse of encodeF32Bits. Any incoming NaN bit
// pattern decodes to Go's canonical NaN, never preserving its payload.
func decodeF32Bits(bits uint32) float32 {
	switch bits {
	case 0, 0x80000000:
		return 0
	case f32PosInf:
		return float32(math.Inf(1))
	case f32NegInf:
		return float32(math.Inf(-1))
	}
	if bits&0x7f800000 == 0x7f800000 && bits&0x007fffff != 0 {
		return float32(math.NaN())
	}
	return math.Float32frombits(bits)
}

func encodeF64Bits(v float64) uint64 {
	switch ClassifyF64(v) {
	case ClassZero:
		return 0
	case ClassPositiveInfinity:
		return f64PosInf
	case ClassNegativeInfinity:
		return f64NegInf
	case ClassNaN:
		return f64NaN
	default:
		return math.Float64bits(v)
	}
}

func decodeF64Bits(bits uint64) float64 {
	switch bits {
	case 0, 0x8000000000000000:
		return 0
	case f64PosInf:
		return math.Inf(1)
	case f64NegInf:
		return math.Inf(-1)
	}
	if bits&0x7ff0000000000000 == 0x7ff0000000000000 && bits&0x000fffffffffffff != 0 {
		return math.NaN()
	}
	return math.Float64frombits(bits)
}

func putF32(b []byte, v float32) { putU32(b, encodeF32Bits(v)) }
func f32(b []byte) float32       { return decodeF32Bits(u32(b)) }
func putF64(b []byte, v float64) { putU64(b, encodeF64Bits(v)) }
func f64(b []byte) float64       { return decodeF64Bits(u64(b)) }
