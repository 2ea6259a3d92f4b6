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

// Variable is a typed, named slot: a struct field, or a function
// parameter.
type Variable struct {
	Type Type
	Name string
}

// VarList is an ordered list of Variables. Its base-size and const-size
// are computed by the sizer and memoized there, keyed on the
// VarList's identity, rather than stored inline here.
type VarList struct {
	Vars []*Variable
}

// ByName returns the variable with the given name, or nil.
func (l *VarList) ByName(name string) *Variable {
	for _, v := range l.Vars {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// Symbol is the tagged union of declarable top-level names: a Struct,
// Interface, IntConst, or StrConst. It is a sealed interface rather than
// an inheritance hierarchy — isSymbol is unexported, so only this
// package's types can implement it.
type Symbol interface {
	// SymbolName returns the symbol's declared name.
	SymbolName() string

	isSymbol()
}

// Struct is a user-defined structured type.
type Struct struct {
	Name   string
	Fields VarList

	// File is the path of the schema file this struct was declared in,
	// used by the driver to decide whether to emit implementations for it
	//.
	File string
}

func (s *Struct) SymbolName() string { return s.Name }
func (*Struct) isSymbol()            {}

// Function is a named operation with independent in/out parameter lists
//.
type Function struct {
	Name string
	In   VarList
	Out  VarList
}

// Interface is an ordered list of Functions with optional single
// inheritance. MethodIDOffset is the cumulative function count of
// the parent chain, i.e. this interface's own methods are numbered
// [MethodIDOffset, MethodIDOffset+len(Fns)).
type Interface struct {
	Name   string
	Parent *Interface
	Fns    []*Function

	File string
}

func (i *Interface) SymbolName() string { return i.Name }
func (*Interface) isSymbol()            {}

// MethodIDOffset returns the total function count of i's ancestor chain,
// i.e. the method id of i's first own function.
func (i *Interface) MethodIDOffset() int {
	if i.Parent == nil {
		return 0
	}
	return i.Parent.MethodIDOffset() + len(i.Parent.Fns)
}

// TotalMethodCount returns MethodIDOffset(i) + len(i.Fns): the number of
// method ids this interface and its ancestors occupy in total.
func (i *Interface) TotalMethodCount() int {
	return i.MethodIDOffset() + len(i.Fns)
}

// MethodID returns the method id of i's fn-th own function (0-indexed
// within i.Fns, not within the inherited range).
func (i *Interface) MethodID(fn int) int {
	return i.MethodIDOffset() + fn
}

// IntConst is a named integer constant. It exists in the symbol table so
// references to it resolve, and the emitter declares it as a Go const.
type IntConst struct {
	Name  string
	Value int64
}

func (c *IntConst) SymbolName() string { return c.Name }
func (*IntConst) isSymbol()            {}

// StrConst is a named string constant.
type StrConst struct {
	Name  string
	Value string
}

func (c *StrConst) SymbolName() string { return c.Name }
func (*StrConst) isSymbol()            {}
