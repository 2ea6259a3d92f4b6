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

import (
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru"
)

// ErrRecursiveSize is returned when computing a VarList's size would
// require recursing into itself — a struct that (directly or through
// scalar/array fields only) contains itself. A "computing" sentinel set
// catches this rather than looping forever.
var ErrRecursiveSize = errors.New("schema: struct's size is recursively self-referential")

// sizeInfo is a VarList's memoized base-size/const-size pair.
type sizeInfo struct {
	bytes, submsgs int
	constSize      bool
}

// sizeCache memoizes sizeInfo per *VarList. It is an LRU rather than an
// unbounded map purely as a cache: BaseSize/ConstSize are pure functions of
// the schema, so an eviction only costs a recomputation, never a wrong
// answer (see DESIGN.md). The in-progress "computing" set below is kept
// separately and is never evicted, since losing it mid-computation would
// defeat the cycle check it exists for.
var sizeCache, _ = lru.New(4096)

var computing = map[*VarList]bool{}

// BaseSize returns the (bytes, submsgs) pair a value of type t contributes
// to its containing struct's base-size.
func BaseSize(t Type) (bytes, submsgs int, err error) {
	switch t.Complexity {
	case Scalar:
		return baseBaseSize(t)
	case Array:
		bb, bs, err := baseBaseSize(t)
		if err != nil {
			return 0, 0, err
		}
		return t.ArrayLen * bb, t.ArrayLen * bs, nil
	case Sequence:
		return 4, 0, nil // length prefix only; elements are dynamic
	case Optional:
		return 1, 0, nil // presence byte only; value is dynamic
	default:
		return 0, 0, fmt.Errorf("schema: unknown complexity %v", t.Complexity)
	}
}

// ConstSize reports whether every instance of t has the same base-size:
// true for Scalar/Array types whose base is itself const-size, always
// false for Sequence and Optional.
func ConstSize(t Type) (bool, error) {
	switch t.Complexity {
	case Scalar, Array:
		return baseConstSize(t)
	default:
		return false, nil
	}
}

// baseBaseSize computes the size of exactly one instance of t's base type,
// ignoring t's complexity wrapper.
func baseBaseSize(t Type) (bytes, submsgs int, err error) {
	if t.IsUserDefined() {
		info, err := varListSize(&t.User.Fields)
		if err != nil {
			return 0, 0, err
		}
		return info.bytes, info.submsgs, nil
	}
	if t.Fundamental == Str || t.Fundamental == Msg {
		return 0, 1, nil
	}
	return t.Fundamental.Width(), 0, nil
}

// baseConstSize reports whether one instance of t's base type is const-size.
func baseConstSize(t Type) (bool, error) {
	if t.IsUserDefined() {
		info, err := varListSize(&t.User.Fields)
		if err != nil {
			return false, err
		}
		return info.constSize, nil
	}
	return t.Fundamental != Str && t.Fundamental != Msg, nil
}

// VarListBaseSize returns l's (bytes, submsgs): the componentwise sum of
// its entries' BaseSize.
func VarListBaseSize(l *VarList) (bytes, submsgs int, err error) {
	info, err := varListSize(l)
	if err != nil {
		return 0, 0, err
	}
	return info.bytes, info.submsgs, nil
}

// VarListConstSize reports whether every entry in l is const-size.
func VarListConstSize(l *VarList) (bool, error) {
	info, err := varListSize(l)
	if err != nil {
		return false, err
	}
	return info.constSize, nil
}

func varListSize(l *VarList) (sizeInfo, error) {
	if v, ok := sizeCache.Get(l); ok {
		return v.(sizeInfo), nil
	}
	if computing[l] {
		return sizeInfo{}, ErrRecursiveSize
	}
	computing[l] = true
	defer delete(computing, l)

	var bytes, submsgs int
	constSize := true
	for _, v := range l.Vars {
		b, s, err := BaseSize(v.Type)
		if err != nil {
			return sizeInfo{}, err
		}
		cs, err := ConstSize(v.Type)
		if err != nil {
			return sizeInfo{}, err
		}
		bytes += b
		submsgs += s
		constSize = constSize && cs
	}

	info := sizeInfo{bytes: bytes, submsgs: submsgs, constSize: constSize}
	sizeCache.Add(l, info)
	return info, nil
}
