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

package lexer

import "fmt"

// Kind identifies what a Token is.
type Kind int

const (
	EOF Kind = iota
	Ident
	IntLiteral
	StringLiteral

	// Punctuators.
	LBrace    // {
	RBrace    // }
	LParen    // (
	RParen    // )
	Semi      // ;
	Colon     // :
	Comma     // ,
	Arrow     // ->
	Equals    // =

	// Keywords.
	KwU8
	KwU16
	KwU32
	KwU64
	KwI8
	KwI16
	KwI32
	KwI64
	KwF32
	KwF64
	KwStr
	KwMsg
	KwArray
	KwSeq
	KwOptional
	KwStruct
	KwInterface
	KwRef
	KwIn
	KwOut
	KwConst
	KwInt
)

var keywords = map[string]Kind{
	"u8": KwU8, "u16": KwU16, "u32": KwU32, "u64": KwU64,
	"i8": KwI8, "i16": KwI16, "i32": KwI32, "i64": KwI64,
	"f32": KwF32, "f64": KwF64, "str": KwStr, "msg": KwMsg,
	"array": KwArray, "seq": KwSeq, "optional": KwOptional,
	"struct": KwStruct, "interface": KwInterface, "ref": KwRef,
	"in": KwIn, "out": KwOut, "const": KwConst, "int": KwInt,
}

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Ident:
		return "identifier"
	case IntLiteral:
		return "integer literal"
	case StringLiteral:
		return "string literal"
	case LBrace:
		return "'{'"
	case RBrace:
		return "'}'"
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	case Semi:
		return "';'"
	case Colon:
		return "':'"
	case Comma:
		return "','"
	case Arrow:
		return "'->'"
	case Equals:
		return "'='"
	default:
		for text, kw := range keywords {
			if kw == k {
				return fmt.Sprintf("%q", text)
			}
		}
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Token is one lexed unit plus its source position and, for literals, its
// parsed value.
type Token struct {
	Kind Kind
	Text string
	Line int
	Col  int

	IntValue int64
	StrValue string
}
