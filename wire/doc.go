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

// Package wire implements the runtime that code emitted by midlc depends on:
// a little-endian, two's-complement, IEEE-754 primitive codec; a
// tree-structured [Message] with a breadth-first layout encoding; and a
// bounds-checked [Iterator]/[Segment] pair that generated count/write/read
// functions use to produce and consume a message's bytes.
//
// None of the types here know about any particular schema. They exist so
// that generated struct methods have a small, well-tested vocabulary to
// build on, the same way protobuf-generated code builds on a wire runtime
// package rather than reimplementing varint decoding per message type.
package wire
