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

import "github.com/midlc/midlc/internal/debug"

// Iterator holds the two cursors into one Message's flat
// (bytes, submsgs) capacity: a byte cursor bounded by the message's byte
// count, and a submsg cursor bounded by its submsg count. Generated
// count/write/read methods share one Iterator across an entire struct
// value's encoding, including whatever dynamic content (sequence elements,
// optional payloads, nested structs' own dynamic content) that struct's
// fields contribute — all of it lives in this one Message, at growing
// offsets, in field-encounter order.
type Iterator struct {
	msg *Message

	bytes, bytesLim     int
	submsgs, submsgsLim int
}

// NewIterator returns an Iterator over the full capacity of m.
func NewIterator(m *Message) *Iterator {
	return &Iterator{
		msg:        m,
		bytesLim:   len(m.Bytes),
		submsgsLim: len(m.Submsgs),
	}
}

// AtEnd reports whether both cursors have reached their limits.
func (it *Iterator) AtEnd() bool {
	return it.bytes == it.bytesLim && it.submsgs == it.submsgsLim
}

// GetSegment advances both cursors by nb bytes and ns submsgs and returns a
// Segment positioned at the start of the reserved range. It fails with
// ErrUnderflow if either bound would be crossed, without advancing either
// cursor.
func (it *Iterator) GetSegment(nb, ns int) (*Segment, error) {
	if it.bytes+nb > it.bytesLim || it.submsgs+ns > it.submsgsLim {
		return nil, ErrUnderflow
	}

	seg := &Segment{
		msg:       it.msg,
		byteStart: it.bytes,
		byteEnd:   it.bytes + nb,
		subStart:  it.submsgs,
		subEnd:    it.submsgs + ns,
	}
	seg.bytePos = seg.byteStart
	seg.subPos = seg.subStart

	it.bytes += nb
	it.submsgs += ns
	return seg, nil
}

// Segment is a bounded, detached pair of cursors into the Message an
// Iterator was reserved from. Its bounds were proven valid at
// GetSegment time, so its primitive reads/writes below advance the cursor
// by the primitive's width without rechecking them; debug.Assert instead
// catches a generator bug that would otherwise silently corrupt adjacent
// memory.
type Segment struct {
	msg *Message

	byteStart, byteEnd int
	subStart, subEnd   int
	bytePos, subPos    int
}

func (s *Segment) advanceBytes(n int) int {
	debug.Assert(s.bytePos+n <= s.byteEnd, "segment byte overrun: %d+%d > %d", s.bytePos, n, s.byteEnd)
	p := s.bytePos
	s.bytePos += n
	return p
}

func (s *Segment) advanceSubmsg() int {
	debug.Assert(s.subPos < s.subEnd, "segment submsg overrun: %d >= %d", s.subPos, s.subEnd)
	p := s.subPos
	s.subPos++
	return p
}

// PutU8, PutU16, ... write a primitive of the named width at the segment's
// current byte position and advance past it.
func (s *Segment) PutU8(v uint8)   { putU8(s.msg.Bytes[s.advanceBytes(WidthU8):], v) }
func (s *Segment) PutU16(v uint16) { putU16(s.msg.Bytes[s.advanceBytes(WidthU16):], v) }
func (s *Segment) PutU32(v uint32) { putU32(s.msg.Bytes[s.advanceBytes(WidthU32):], v) }
func (s *Segment) PutU64(v uint64) { putU64(s.msg.Bytes[s.advanceBytes(WidthU64):], v) }
func (s *Segment) PutI8(v int8)    { putI8(s.msg.Bytes[s.advanceBytes(WidthU8):], v) }
func (s *Segment) PutI16(v int16)  { putI16(s.msg.Bytes[s.advanceBytes(WidthU16):], v) }
func (s *Segment) PutI32(v int32)  { putI32(s.msg.Bytes[s.advanceBytes(WidthU32):], v) }
func (s *Segment) PutI64(v int64)  { putI64(s.msg.Bytes[s.advanceBytes(WidthU64):], v) }
func (s *Segment) PutF32(v float32) { putF32(s.msg.Bytes[s.advanceBytes(WidthF32):], v) }
func (s *Segment) PutF64(v float64) { putF64(s.msg.Bytes[s.advanceBytes(WidthF64):], v) }

// U8, U16, ... read a primitive of the named width from the segment's
// current byte position and advance past it.
func (s *Segment) U8() uint8    { return u8(s.msg.Bytes[s.advanceBytes(WidthU8):]) }
func (s *Segment) U16() uint16  { return u16(s.msg.Bytes[s.advanceBytes(WidthU16):]) }
func (s *Segment) U32() uint32  { return u32(s.msg.Bytes[s.advanceBytes(WidthU32):]) }
func (s *Segment) U64() uint64  { return u64(s.msg.Bytes[s.advanceBytes(WidthU64):]) }
func (s *Segment) I8() int8     { return i8(s.msg.Bytes[s.advanceBytes(WidthU8):]) }
func (s *Segment) I16() int16   { return i16(s.msg.Bytes[s.advanceBytes(WidthU16):]) }
func (s *Segment) I32() int32   { return i32(s.msg.Bytes[s.advanceBytes(WidthU32):]) }
func (s *Segment) I64() int64   { return i64(s.msg.Bytes[s.advanceBytes(WidthU64):]) }
func (s *Segment) F32() float32 { return f32(s.msg.Bytes[s.advanceBytes(WidthF32):]) }
func (s *Segment) F64() float64 { return f64(s.msg.Bytes[s.advanceBytes(WidthF64):]) }

// PutString writes str as a submsg whose bytes are the string payload with
// no terminator. The caller must have reserved exactly one
// submsg for it, e.g. via GetSegment(0, 1).
func (s *Segment) PutString(str string) {
	s.msg.Submsgs[s.advanceSubmsg()] = &Message{Bytes: []byte(str)}
}

// String reads the next submsg as a string, validating that its payload
// contains no zero byte.
func (s *Segment) String() (string, error) {
	child := s.msg.Submsgs[s.advanceSubmsg()]
	if child == nil {
		return "", ErrInvalidString
	}
	for _, b := range child.Bytes {
		if b == 0 {
			return "", ErrInvalidString
		}
	}
	return string(child.Bytes), nil
}

// PutMessage transfers ownership of child into the next submsg slot.
func (s *Segment) PutMessage(child *Message) {
	s.msg.Submsgs[s.advanceSubmsg()] = child
}

// Message transfers ownership of the next submsg slot to the caller.
func (s *Segment) Message() *Message {
	return s.msg.Submsgs[s.advanceSubmsg()]
}
