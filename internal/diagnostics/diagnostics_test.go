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

package diagnostics_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midlc/midlc/internal/diagnostics"
)

func TestSinkCountsBySeverity(t *testing.T) {
	s := diagnostics.NewSink("foo.midl")
	s.Log(diagnostics.Error, 1, 1, "unexpected token %q", "}")
	s.Log(diagnostics.Warning, 2, 5, "unused import")
	s.Log(diagnostics.Warning, 3, 1, "unused import")
	s.Log(diagnostics.Message, 4, 1, "note")

	assert.Equal(t, 1, s.Count(diagnostics.Error))
	assert.Equal(t, 2, s.Count(diagnostics.Warning))
	assert.Equal(t, 1, s.Count(diagnostics.Message))
	assert.Equal(t, 0, s.Count(diagnostics.Debug))
	assert.True(t, s.HasErrors())
	assert.Equal(t, "foo.midl: 1 errors, 2 warnings, 1 messages, 0 debugs", s.Summary())
}

func TestSinkNoErrorsHasErrorsFalse(t *testing.T) {
	s := diagnostics.NewSink("ok.midl")
	s.Log(diagnostics.Message, 1, 1, "fyi")
	require.False(t, s.HasErrors())
}

func TestDiagnosticString(t *testing.T) {
	d := diagnostics.Diagnostic{Severity: diagnostics.Error, File: "a.midl", Line: 3, Col: 7, Message: "boom"}
	assert.Equal(t, "a.midl:3:7: error: boom", d.String())
}

func TestSinkWriteToPlain(t *testing.T) {
	s := diagnostics.NewSink("a.midl")
	s.Log(diagnostics.Error, 1, 1, "bad")
	var buf bytes.Buffer
	s.WriteTo(&buf, false)
	assert.Equal(t, "a.midl:1:1: error: bad\n", buf.String())
}

func TestSortByLocation(t *testing.T) {
	diags := []diagnostics.Diagnostic{
		{File: "b.midl", Line: 1, Col: 1},
		{File: "a.midl", Line: 5, Col: 1},
		{File: "a.midl", Line: 2, Col: 9},
	}
	diagnostics.SortByLocation(diags)
	assert.Equal(t, "a.midl", diags[0].File)
	assert.Equal(t, 2, diags[0].Line)
	assert.Equal(t, "a.midl", diags[1].File)
	assert.Equal(t, 5, diags[1].Line)
	assert.Equal(t, "b.midl", diags[2].File)
}
