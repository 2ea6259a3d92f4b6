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

// Package sequencer orders a file's structs and interfaces so that every
// user-defined type a symbol references appears earlier in the output —
// the order the emitter needs to generate forward-declaration-free Go
// source in one pass.
package sequencer

import "github.com/midlc/midlc/schema"

// Sequence returns symbols in dependency order via depth-first post-order
// traversal: a symbol is appended to the output only after every
// user-defined type its fields/arguments reference has been appended.
// Struct self-reference cycles are not detected here: a self-referential
// struct is sequenced like any other, and schema.sizer's memoization
// reports the cycle when internal/driver computes base sizes over the
// sequenced output afterwards.
func Sequence(symbols []schema.Symbol) []schema.Symbol {
	s := &sequencer{visited: make(map[string]bool)}
	for _, sym := range symbols {
		s.visit(sym)
	}
	return s.out
}

type sequencer struct {
	visited map[string]bool
	out     []schema.Symbol
}

func (s *sequencer) visit(sym schema.Symbol) {
	name := sym.SymbolName()
	if s.visited[name] {
		return
	}
	s.visited[name] = true

	switch v := sym.(type) {
	case *schema.Struct:
		for _, f := range v.Fields.Vars {
			s.visitType(f.Type)
		}
	case *schema.Interface:
		if v.Parent != nil {
			s.visit(v.Parent)
		}
		for _, fn := range v.Fns {
			for _, a := range fn.In.Vars {
				s.visitType(a.Type)
			}
			for _, a := range fn.Out.Vars {
				s.visitType(a.Type)
			}
		}
	default:
		// IntConst/StrConst reference nothing else; they still occupy an
		// entry in the output, and the emitter declares each as a Go const.
	}

	s.out = append(s.out, sym)
}

func (s *sequencer) visitType(t schema.Type) {
	if t.IsUserDefined() {
		s.visit(t.User)
	}
}
