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

package symboldb_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midlc/midlc/internal/symboldb"
)

type fakeSymbol string

func (f fakeSymbol) SymbolName() string { return string(f) }

func TestParseIfNeededParsesOnce(t *testing.T) {
	calls := 0
	db := symboldb.New(func(path string, db *symboldb.DB) ([]symboldb.Symbol, error) {
		calls++
		return []symboldb.Symbol{fakeSymbol(path + "#Thing")}, nil
	})

	f1, err := db.ParseIfNeeded("a.midl")
	require.NoError(t, err)
	assert.Equal(t, symboldb.Parsed, f1.State)
	assert.Equal(t, 1, calls)

	f2, err := db.ParseIfNeeded("a.midl")
	require.NoError(t, err)
	assert.Same(t, f1, f2)
	assert.Equal(t, 1, calls, "second call must be a no-op")

	sym, ok := db.Lookup("a.midl#Thing")
	require.True(t, ok)
	assert.Equal(t, "a.midl#Thing", sym.SymbolName())
}

func TestParseIfNeededMarksBadOnError(t *testing.T) {
	db := symboldb.New(func(path string, db *symboldb.DB) ([]symboldb.Symbol, error) {
		return nil, fmt.Errorf("boom")
	})
	f, err := db.ParseIfNeeded("bad.midl")
	require.Error(t, err)
	assert.Equal(t, symboldb.Bad, f.State)

	_, err = db.ParseIfNeeded("bad.midl")
	assert.Error(t, err)
}

func TestParseIfNeededDetectsCycle(t *testing.T) {
	var db *symboldb.DB
	db = symboldb.New(func(path string, db *symboldb.DB) ([]symboldb.Symbol, error) {
		if path == "a.midl" {
			_, err := db.ParseIfNeeded("b.midl")
			require.Error(t, err)
			return nil, err
		}
		_, err := db.ParseIfNeeded("a.midl")
		return nil, err
	})
	_, err := db.ParseIfNeeded("a.midl")
	require.Error(t, err)
	assert.Equal(t, symboldb.Bad, db.File("a.midl").State)
}

func TestDuplicateGlobalNamePanics(t *testing.T) {
	db := symboldb.New(func(path string, db *symboldb.DB) ([]symboldb.Symbol, error) {
		return []symboldb.Symbol{fakeSymbol("Dup")}, nil
	})
	_, err := db.ParseIfNeeded("a.midl")
	require.NoError(t, err)

	assert.Panics(t, func() {
		_, _ = db.ParseIfNeeded("b.midl")
	})
}
