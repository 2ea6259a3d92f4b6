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

// Package debug includes small internal-invariant helpers shared by the
// compiler pipeline and the runtime it emits against.
//
// Unlike the teacher this package is derived from, there is no build-tag
// gated fast path here: midlc is a compiler, not a hot-path wire runtime, so
// its assertions run unconditionally rather than only in debug builds.
package debug

import "fmt"

// Assert panics if cond is false. Used for invariants a correct compiler
// pipeline must never violate (e.g. a symbol missing from the sequencer's
// visited set), as opposed to user-facing diagnostics, which go through
// internal/diagnostics instead.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Errorf("midlc: internal assertion failed: "+format, args...))
	}
}
