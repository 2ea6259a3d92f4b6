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

package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midlc/midlc/internal/arena"
	"github.com/midlc/midlc/internal/parser"
	"github.com/midlc/midlc/internal/symboldb"
	"github.com/midlc/midlc/schema"
)

func TestParseStructFields(t *testing.T) {
	a := &arena.Arena{}
	syms, sink, err := parser.Parse("t.midl", `
struct Point {
  i32 x;
  i32 y;
}
`, nil, nil, a)
	require.NoError(t, err)
	require.False(t, sink.HasErrors())
	require.Len(t, syms, 1)

	st, ok := syms[0].(*schema.Struct)
	require.True(t, ok)
	assert.Equal(t, "Point", st.Name)
	require.Len(t, st.Fields.Vars, 2)
	assert.Equal(t, "x", st.Fields.Vars[0].Name)
	assert.Equal(t, schema.I32, st.Fields.Vars[0].Type.Fundamental)
}

func TestParseStructReferencingEarlierStruct(t *testing.T) {
	a := &arena.Arena{}
	syms, sink, err := parser.Parse("t.midl", `
struct Inner { u8 b; }
struct Outer { Inner inner; optional Inner maybe; }
`, nil, nil, a)
	require.NoError(t, err)
	require.False(t, sink.HasErrors())
	require.Len(t, syms, 2)

	outer := syms[1].(*schema.Struct)
	require.Len(t, outer.Fields.Vars, 2)
	assert.True(t, outer.Fields.Vars[0].Type.IsUserDefined())
	assert.Equal(t, "Inner", outer.Fields.Vars[0].Type.Name())
	assert.Equal(t, schema.Optional, outer.Fields.Vars[1].Type.Complexity)
}

func TestParseArrayAndSeqTypes(t *testing.T) {
	a := &arena.Arena{}
	syms, sink, err := parser.Parse("t.midl", `
struct Buf {
  array(4) u8 data;
  seq i32 items;
}
`, nil, nil, a)
	require.NoError(t, err)
	require.False(t, sink.HasErrors())
	st := syms[0].(*schema.Struct)
	assert.Equal(t, schema.Array, st.Fields.Vars[0].Type.Complexity)
	assert.Equal(t, 4, st.Fields.Vars[0].Type.ArrayLen)
	assert.Equal(t, schema.Sequence, st.Fields.Vars[1].Type.Complexity)
}

func TestParseInterfaceWithInheritance(t *testing.T) {
	a := &arena.Arena{}
	syms, sink, err := parser.Parse("t.midl", `
interface Base {
  ping(i32 x) -> (i32 y);
}
interface Derived : Base {
  pong(i32 x) -> (i32 y);
}
`, nil, nil, a)
	require.NoError(t, err)
	require.False(t, sink.HasErrors())
	require.Len(t, syms, 2)

	derived := syms[1].(*schema.Interface)
	require.NotNil(t, derived.Parent)
	assert.Equal(t, 1, derived.MethodIDOffset())
	assert.Equal(t, 1, derived.MethodID(0))
}

func TestParseConstants(t *testing.T) {
	a := &arena.Arena{}
	syms, sink, err := parser.Parse("t.midl", `
const int MaxRetries = 3;
const str Greeting = "hi";
`, nil, nil, a)
	require.NoError(t, err)
	require.False(t, sink.HasErrors())
	require.Len(t, syms, 2)
	assert.Equal(t, int64(3), syms[0].(*schema.IntConst).Value)
	assert.Equal(t, "hi", syms[1].(*schema.StrConst).Value)
}

func TestParseDuplicateFieldNameIsError(t *testing.T) {
	a := &arena.Arena{}
	_, sink, err := parser.Parse("t.midl", `
struct S { u8 a; u8 a; }
`, nil, nil, a)
	require.NoError(t, err)
	assert.True(t, sink.HasErrors())
}

func TestParseUnresolvedReferenceIsError(t *testing.T) {
	a := &arena.Arena{}
	_, sink, err := parser.Parse("t.midl", `
struct S { Missing m; }
`, nil, nil, a)
	require.NoError(t, err)
	assert.True(t, sink.HasErrors())
}

func TestParseWrongKindReferenceNamesBothKinds(t *testing.T) {
	a := &arena.Arena{}
	_, sink, err := parser.Parse("t.midl", `
interface Foo { }
struct S { Foo f; }
`, nil, nil, a)
	require.NoError(t, err)
	require.True(t, sink.HasErrors())

	found := false
	for _, d := range sink.All() {
		if d.Message == `"Foo" is an interface, expected a struct` {
			found = true
		}
	}
	assert.True(t, found, "expected a clash message naming both kinds, got: %v", sink.All())
}

func TestParseNameClashReportsExistingKind(t *testing.T) {
	a := &arena.Arena{}
	_, sink, err := parser.Parse("t.midl", `
struct Dup { u8 a; }
interface Dup { }
`, nil, nil, a)
	require.NoError(t, err)
	require.True(t, sink.HasErrors())
}

func TestParseRefImportsSymbols(t *testing.T) {
	a := &arena.Arena{}

	var db *symboldb.DB
	db = symboldb.New(func(path string, db *symboldb.DB) ([]symboldb.Symbol, error) {
		syms, _, err := parser.Parse(path, `struct Shared { u8 v; }`, db, nil, a)
		out := make([]symboldb.Symbol, len(syms))
		for i, s := range syms {
			out[i] = s
		}
		return out, err
	})

	resolve := func(from, ref string) (string, error) { return ref, nil }

	syms, sink, err := parser.Parse("main.midl", `
ref "shared.midl";
struct UsesShared { Shared s; }
`, db, resolve, a)
	require.NoError(t, err)
	require.False(t, sink.HasErrors())
	require.Len(t, syms, 1)

	st := syms[0].(*schema.Struct)
	assert.Equal(t, "Shared", st.Fields.Vars[0].Type.Name())
}
