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

// Package symboldb tracks the per-file parse lifecycle and the global
// symbol index that cross-file references resolve against. It never
// parses source text itself — a ParseFunc is injected by the driver so
// this package and internal/parser don't need to import each other.
package symboldb

import "fmt"

// State is a file's position in its parse lifecycle.
type State int

const (
	Unknown State = iota
	Parsing
	Parsed
	Bad
)

func (s State) String() string {
	switch s {
	case Unknown:
		return "unknown"
	case Parsing:
		return "parsing"
	case Parsed:
		return "parsed"
	case Bad:
		return "bad"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// File is one schema file's record: its lifecycle state and, once Parsed,
// its insertion-ordered symbol list.
type File struct {
	Path    string
	State   State
	Symbols []Symbol
}

// Symbol is the subset of schema.Symbol the database needs: a name to
// index by. Declared locally (rather than importing schema) so this
// package has no dependency on the symbol model's shape, only its naming
// contract.
type Symbol interface {
	SymbolName() string
}

// ParseFunc parses the file at path and returns its declared symbols in
// declaration order. It is called at most once per path (Parsed/Bad are
// terminal); it may itself call db.ParseIfNeeded to resolve references to
// other files.
type ParseFunc func(path string, db *DB) ([]Symbol, error)

// DB is the process-wide symbol database: one File record per path plus a
// flat global name -> Symbol index populated only from Parsed files. It is
// owned by the driver and is never accessed concurrently (the pipeline is
// single-threaded).
type DB struct {
	files  map[string]*File
	global map[string]Symbol

	parse ParseFunc
}

// New returns an empty DB that uses parse to parse files it has not seen.
func New(parse ParseFunc) *DB {
	return &DB{
		files:  make(map[string]*File),
		global: make(map[string]Symbol),
		parse:  parse,
	}
}

// ParseIfNeeded implements the Unknown/Parsing/Parsed/Bad state machine.
func (db *DB) ParseIfNeeded(path string) (*File, error) {
	f, ok := db.files[path]
	if !ok {
		f = &File{Path: path, State: Unknown}
		db.files[path] = f
	}

	switch f.State {
	case Parsing:
		return f, fmt.Errorf("symboldb: cyclic reference to %q", path)
	case Parsed:
		return f, nil
	case Bad:
		return f, fmt.Errorf("symboldb: %q previously failed to parse", path)
	}

	f.State = Parsing
	syms, err := db.parse(path, db)
	if err != nil {
		f.State = Bad
		return f, err
	}

	for _, s := range syms {
		if _, exists := db.global[s.SymbolName()]; exists {
			// A compiler invariant, not a user-facing input error: the parser
			// must already have rejected a name clashing with an import before
			// handing symbols here.
			panic(fmt.Sprintf("symboldb: duplicate global symbol %q", s.SymbolName()))
		}
		db.global[s.SymbolName()] = s
	}

	f.Symbols = syms
	f.State = Parsed
	return f, nil
}

// Lookup finds a symbol by its global name, across every Parsed file.
func (db *DB) Lookup(name string) (Symbol, bool) {
	s, ok := db.global[name]
	return s, ok
}

// File returns the file record for path, or nil if it has never been seen.
func (db *DB) File(path string) *File {
	return db.files[path]
}
