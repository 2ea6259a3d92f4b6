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

import "errors"

// Sentinel decode errors returned by the runtime's read/deserialize paths.
// Generated read/deserialize code returns these (wrapped with context where
// useful) rather than panicking, so that a partially-read value can be
// unwound and freed by its caller.
var (
	// ErrUnderflow is returned by GetSegment when reserving nb bytes or ns
	// submsgs would cross the iterator's bound.
	ErrUnderflow = errors.New("wire: buffer underflow")

	// ErrInvalidString is returned when a string submsg's payload contains
	// a zero byte.
	ErrInvalidString = errors.New("wire: string contains null byte")

	// ErrTrailingData is returned by Deserialize (the struct-level one, not
	// the layout one) when an iterator is not fully consumed after a read.
	ErrTrailingData = errors.New("wire: trailing data after decode")

	// ErrBlockTooLarge is returned when a message byte block's length does
	// not fit the 30-bit length field of a layout entry.
	ErrBlockTooLarge = errors.New("wire: message block exceeds 2^30-1 bytes")

	// ErrTruncatedLayout is returned by DeserializeLayout when the layout
	// vector ends before every declared child has been consumed, or its
	// final entry still carries a continuation bit.
	ErrTruncatedLayout = errors.New("wire: truncated layout vector")

	// ErrTrailingLayout is returned by DeserializeLayout when entries
	// remain unconsumed after reconstructing the tree.
	ErrTrailingLayout = errors.New("wire: trailing entries in layout vector")

	// ErrBlockCountMismatch is returned by DeserializeLayout when the
	// number of supplied blocks does not match what the layout declares.
	ErrBlockCountMismatch = errors.New("wire: block count does not match layout")

	// ErrEmptyLayout is returned by DeserializeLayout for a zero-length
	// layout vector, which can never describe a tree (every tree has at
	// least a root).
	ErrEmptyLayout = errors.New("wire: empty layout vector")

	// ErrMethodIDOutOfRange names the case of a method-call envelope whose
	// prefix byte does not address a known method. Nothing in this module
	// returns it; servant.Call answers that case with an error reply.
	ErrMethodIDOutOfRange = errors.New("wire: method id out of range")
)
