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

// Package arena provides a bump allocator with bulk release, used to own the
// objects built during one parse.
//
// Unlike the teacher package this is derived from, which packs values into
// raw byte chunks behind unsafe.Pointer casts to squeeze out allocator
// overhead on a hot wire-decode path, this arena is a compile-time
// convenience, not a hot path: it is a thin, safe wrapper that defers
// releasing a batch of ordinary Go allocations until [Arena.Release], so that
// a parser can own a scratch generation and drop it all at once without
// walking every object it handed out.
package arena

// Arena owns a batch of allocations that are released together.
//
// A zero Arena is empty and ready to use.
type Arena struct {
	live []any
}

// New records v as owned by a and returns it. This is purely bookkeeping:
// Go's allocator already did the work, New exists so that every object built
// during a parse generation can be dropped from a single call to
// [Arena.Release] when the scratch generation's lifetime ends, without the
// owner needing to track the objects itself.
func New[T any](a *Arena, v *T) *T {
	a.live = append(a.live, v)
	return v
}

// NewSlice records s as owned by a and returns it.
func NewSlice[T any](a *Arena, s []T) []T {
	a.live = append(a.live, s)
	return s
}

// Release drops this arena's references to everything it was given,
// allowing the garbage collector to reclaim it. Objects obtained from this
// arena must not be used after Release.
func (a *Arena) Release() {
	a.live = nil
}

// Len reports how many objects this arena currently owns. Exposed for
// tests and for driver diagnostics (the per-file object count it logs).
func (a *Arena) Len() int {
	return len(a.live)
}
