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

package schema

import "fmt"

// Fundamental is one of the twelve built-in scalar/str/msg base types. Its
// ordinal is stable: code outside this package (notably the emitter) may
// rely on the numeric values below not changing.
type Fundamental int

const (
	// FundamentalNone marks a Type whose Base is a user-defined symbol
	// instead of a Fundamental; see Type.User.
	FundamentalNone Fundamental = iota
	U8
	U16
	U32
	U64
	I8
	I16
	I32
	I64
	F32
	F64
	Str
	Msg
)

func (f Fundamental) String() string {
	switch f {
	case FundamentalNone:
		return "<user-defined>"
	case U8:
		return "u8"
	case U16:
		return "u16"
	case U32:
		return "u32"
	case U64:
		return "u64"
	case I8:
		return "i8"
	case I16:
		return "i16"
	case I32:
		return "i32"
	case I64:
		return "i64"
	case F32:
		return "f32"
	case F64:
		return "f64"
	case Str:
		return "str"
	case Msg:
		return "msg"
	default:
		return fmt.Sprintf("Fundamental(%d)", int(f))
	}
}

// Width is the fixed byte width of a scalar fundamental, or 0 for the
// fundamentals that occupy a submsg slot instead (str, msg).
func (f Fundamental) Width() int {
	switch f {
	case U8, I8:
		return 1
	case U16, I16:
		return 2
	case U32, I32, F32:
		return 4
	case U64, I64, F64:
		return 8
	default:
		return 0
	}
}

// IsBaseless reports whether f is the base of a "baseless optional" (spec
// §3/§9): str and msg already have a null-representable in-memory form, so
// optional-of-str/msg needs no extra presence indirection beyond the
// pointer/handle itself.
func (f Fundamental) IsBaseless() bool {
	return f == Str || f == Msg
}

// Complexity is the wrapper a TypeDescriptor applies around its base type
//.
type Complexity int

const (
	Scalar Complexity = iota
	Array
	Sequence
	Optional
)

func (c Complexity) String() string {
	switch c {
	case Scalar:
		return "scalar"
	case Array:
		return "array"
	case Sequence:
		return "sequence"
	case Optional:
		return "optional"
	default:
		return fmt.Sprintf("Complexity(%d)", int(c))
	}
}

// Type is a type descriptor: a base, which is either a
// Fundamental or a reference to a user-defined Struct, plus a complexity
// wrapper. ArrayLen is only meaningful when Complexity == Array, and must
// be > 0 there.
type Type struct {
	Fundamental Fundamental // FundamentalNone if User != nil
	User        *Struct     // non-nil iff this type names a user-defined struct

	Complexity Complexity
	ArrayLen   int // > 0, only set when Complexity == Array
}

// IsUserDefined reports whether this type's base is a user-defined struct
// rather than a fundamental.
func (t Type) IsUserDefined() bool {
	return t.User != nil
}

// BaselessOptional reports whether t is an optional whose base is str or
// msg.
func (t Type) BaselessOptional() bool {
	return t.Complexity == Optional && !t.IsUserDefined() && t.Fundamental.IsBaseless()
}

// Name returns the base type's name, for diagnostics and emitted code
// identifiers.
func (t Type) Name() string {
	if t.IsUserDefined() {
		return t.User.Name
	}
	return t.Fundamental.String()
}

func (t Type) String() string {
	switch t.Complexity {
	case Array:
		return fmt.Sprintf("array(%d) %s", t.ArrayLen, t.Name())
	case Sequence:
		return fmt.Sprintf("seq %s", t.Name())
	case Optional:
		return fmt.Sprintf("optional %s", t.Name())
	default:
		return t.Name()
	}
}
