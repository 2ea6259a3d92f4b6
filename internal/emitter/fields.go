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

package emitter

import (
	"fmt"

	"github.com/midlc/midlc/schema"
)

// baseGoType returns the Go type of one base value of t, ignoring t's
// complexity wrapper entirely.
func baseGoType(t schema.Type) string {
	if t.IsUserDefined() {
		return t.User.Name
	}
	switch t.Fundamental {
	case schema.U8:
		return "uint8"
	case schema.U16:
		return "uint16"
	case schema.U32:
		return "uint32"
	case schema.U64:
		return "uint64"
	case schema.I8:
		return "int8"
	case schema.I16:
		return "int16"
	case schema.I32:
		return "int32"
	case schema.I64:
		return "int64"
	case schema.F32:
		return "float32"
	case schema.F64:
		return "float64"
	case schema.Str:
		return "string"
	case schema.Msg:
		return "*wire.Message"
	default:
		return "/* unknown base */ any"
	}
}

// goFieldType returns the Go type of a field/variable of type t, applying
// its complexity wrapper over baseGoType. Optional fields of every base
// (including the baseless str/msg bases) are represented uniformly as a
// pointer whose nil-ness is the presence tag — see DESIGN.md for why this
// rewrite does not special-case baseless optionals in the Go representation
// even though the wire contract permits it.
func goFieldType(t schema.Type) string {
	base := baseGoType(t)
	switch t.Complexity {
	case schema.Array:
		return fmt.Sprintf("[%d]%s", t.ArrayLen, base)
	case schema.Sequence:
		return "[]" + base
	case schema.Optional:
		if t.Fundamental == schema.Msg && !t.IsUserDefined() {
			// *wire.Message is already nilable; no double pointer.
			return base
		}
		return "*" + base
	default:
		return base
	}
}

// fundamentalIsBoxed reports whether f's base value occupies a submsg slot
// (str, msg) rather than living flat in bytes.
func fundamentalIsBoxed(f schema.Fundamental) bool {
	return f == schema.Str || f == schema.Msg
}

// scalarPutExpr returns the Segment method call that writes one base value
// of t (a fundamental, non-user-defined, non-boxed type) held in valExpr
// onto dst.
func scalarPutExpr(dst string, valExpr string, f schema.Fundamental) string {
	var method string
	switch f {
	case schema.U8:
		method = "PutU8"
	case schema.U16:
		method = "PutU16"
	case schema.U32:
		method = "PutU32"
	case schema.U64:
		method = "PutU64"
	case schema.I8:
		method = "PutI8"
	case schema.I16:
		method = "PutI16"
	case schema.I32:
		method = "PutI32"
	case schema.I64:
		method = "PutI64"
	case schema.F32:
		method = "PutF32"
	case schema.F64:
		method = "PutF64"
	}
	return fmt.Sprintf("%s.%s(%s)", dst, method, valExpr)
}

// scalarGetExpr returns the Segment method call that reads one base value
// of a scalar fundamental from src.
func scalarGetExpr(src string, f schema.Fundamental) string {
	var method string
	switch f {
	case schema.U8:
		method = "U8"
	case schema.U16:
		method = "U16"
	case schema.U32:
		method = "U32"
	case schema.U64:
		method = "U64"
	case schema.I8:
		method = "I8"
	case schema.I16:
		method = "I16"
	case schema.I32:
		method = "I32"
	case schema.I64:
		method = "I64"
	case schema.F32:
		method = "F32"
	case schema.F64:
		method = "F64"
	}
	return fmt.Sprintf("%s.%s()", src, method)
}

// needsFree reports whether a value of type t owns anything a generated
// free() method must recurse into: a msg handle (dropped early rather than
// left for the garbage collector to find) or a user-defined struct's own
// owned members. Plain strings need no explicit free: read() already copies
// their bytes out of the submsg into a detached Go string.
func needsFree(t schema.Type) bool {
	if t.IsUserDefined() {
		return true
	}
	return t.Fundamental == schema.Msg
}

// scalarOf returns t's base (Fundamental or User) wrapped back up as a bare
// Scalar type, discarding whatever Array/Sequence/Optional wrapper it had.
// Used to recurse into one element/payload of a composite field.
func scalarOf(t schema.Type) schema.Type {
	return schema.Type{Fundamental: t.Fundamental, User: t.User, Complexity: schema.Scalar}
}

// exportedFieldName turns a schema variable name into an exported Go field
// name, capitalizing its first rune. Schema identifiers are plain
// [A-Za-z_][A-Za-z0-9_]*, so this is a straightforward ASCII-safe
// capitalization, not a general Unicode title-case.
func exportedFieldName(name string) string {
	if name == "" {
		return name
	}
	if name[0] >= 'a' && name[0] <= 'z' {
		return string(name[0]-'a'+'A') + name[1:]
	}
	return name
}
