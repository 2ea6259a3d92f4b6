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

// Package schema is the symbol and type model: fundamental
// types, type descriptors with their complexity wrapper, structs,
// functions, interfaces, and constants, plus the recursive base-size and
// const-size computation the emitter and runtime both depend on.
//
// Nothing in this package parses text or writes Go source; it is the
// in-memory shape that internal/parser populates and internal/emitter
// walks.
package schema
