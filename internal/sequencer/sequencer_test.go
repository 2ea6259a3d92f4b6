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

package sequencer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midlc/midlc/internal/sequencer"
	"github.com/midlc/midlc/schema"
)

func indexOf(t *testing.T, syms []schema.Symbol, name string) int {
	t.Helper()
	for i, s := range syms {
		if s.SymbolName() == name {
			return i
		}
	}
	t.Fatalf("symbol %q not found in %v", name, syms)
	return -1
}

func TestSequenceOrdersDependencyFirst(t *testing.T) {
	inner := &schema.Struct{Name: "Inner", Fields: schema.VarList{Vars: []*schema.Variable{
		{Type: schema.Type{Fundamental: schema.U8}, Name: "b"},
	}}}
	outer := &schema.Struct{Name: "Outer", Fields: schema.VarList{Vars: []*schema.Variable{
		{Type: schema.Type{User: inner}, Name: "in"},
	}}}

	// Declared out of dependency order on purpose: Outer appears first in
	// the input list but must be sequenced after Inner.
	out := sequencer.Sequence([]schema.Symbol{outer, inner})
	require.Len(t, out, 2)
	assert.Less(t, indexOf(t, out, "Inner"), indexOf(t, out, "Outer"))
}

func TestSequenceDedupesSharedDependency(t *testing.T) {
	shared := &schema.Struct{Name: "Shared"}
	a := &schema.Struct{Name: "A", Fields: schema.VarList{Vars: []*schema.Variable{
		{Type: schema.Type{User: shared}, Name: "s"},
	}}}
	b := &schema.Struct{Name: "B", Fields: schema.VarList{Vars: []*schema.Variable{
		{Type: schema.Type{User: shared}, Name: "s"},
	}}}

	out := sequencer.Sequence([]schema.Symbol{a, b})
	require.Len(t, out, 3)
	assert.Less(t, indexOf(t, out, "Shared"), indexOf(t, out, "A"))
	assert.Less(t, indexOf(t, out, "Shared"), indexOf(t, out, "B"))
}

func TestSequenceInterfaceInheritance(t *testing.T) {
	base := &schema.Interface{Name: "Base"}
	derived := &schema.Interface{Name: "Derived", Parent: base}

	out := sequencer.Sequence([]schema.Symbol{derived})
	require.Len(t, out, 2)
	assert.Less(t, indexOf(t, out, "Base"), indexOf(t, out, "Derived"))
}

func TestSequenceFunctionArgumentTypes(t *testing.T) {
	arg := &schema.Struct{Name: "Args"}
	iface := &schema.Interface{Name: "Svc", Fns: []*schema.Function{
		{Name: "Do", In: schema.VarList{Vars: []*schema.Variable{{Type: schema.Type{User: arg}, Name: "a"}}}},
	}}

	out := sequencer.Sequence([]schema.Symbol{iface})
	require.Len(t, out, 2)
	assert.Less(t, indexOf(t, out, "Args"), indexOf(t, out, "Svc"))
}
