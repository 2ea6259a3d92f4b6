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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntegerRoundTrip(t *testing.T) {
	b := make([]byte, 8)

	putU16(b, 0xABCD)
	assert.Equal(t, uint16(0xABCD), u16(b))
	assert.Equal(t, byte(0xCD), b[0], "little-endian: low byte first")

	putU32(b, 0xDEADBEEF)
	assert.Equal(t, uint32(0xDEADBEEF), u32(b))

	putU64(b, 0x0102030405060708)
	assert.Equal(t, uint64(0x0102030405060708), u64(b))
	assert.Equal(t, byte(0x08), b[0])

	putI32(b, -1)
	assert.Equal(t, int32(-1), i32(b))
	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0xff}, b[:4])

	putI64(b, math.MinInt64)
	assert.Equal(t, int64(math.MinInt64), i64(b))
}

func TestFloatClassification(t *testing.T) {
	assert.Equal(t, ClassZero, ClassifyF32(0))
	assert.Equal(t, ClassZero, ClassifyF32(float32(math.Copysign(0, -1))))
	assert.Equal(t, ClassPositiveInfinity, ClassifyF32(float32(math.Inf(1))))
	assert.Equal(t, ClassNegativeInfinity, ClassifyF32(float32(math.Inf(-1))))
	assert.Equal(t, ClassNaN, ClassifyF32(float32(math.NaN())))
	assert.Equal(t, ClassNormal, ClassifyF32(3.25))
}

func TestFloatEncodeCanonicalBits(t *testing.T) {
	assert.Equal(t, f32PosInf, encodeF32Bits(float32(math.Inf(1))))
	assert.Equal(t, f32NegInf, encodeF32Bits(float32(math.Inf(-1))))
	assert.Equal(t, f32NaN, encodeF32Bits(float32(math.NaN())))
	assert.Equal(t, uint32(0), encodeF32Bits(0))

	// An arbitrary incoming NaN bit pattern is not preserved: only its
	// NaN-ness survives the round trip.
	weird := uint32(0x7fc00001)
	assert.True(t, math.IsNaN(float64(decodeF32Bits(weird))))

	assert.Equal(t, f64PosInf, encodeF64Bits(math.Inf(1)))
	assert.Equal(t, f64NaN, encodeF64Bits(math.NaN()))
}

func TestFloatRoundTripNormal(t *testing.T) {
	b := make([]byte, 8)

	putF32(b, 3.5)
	assert.InDelta(t, float32(3.5), f32(b), 0)

	putF64(b, -2.25)
	assert.InDelta(t, -2.25, f64(b), 0)
}
