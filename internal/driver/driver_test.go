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

package driver_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midlc/midlc/internal/driver"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestRunCompilesStructToOutputFiles(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "point.midl", `
struct Point {
  i32 x;
  i32 y;
}
`)
	stderr := newCaptureFile(t, dir)

	code := driver.Run(driver.Options{
		SchemaPath:   schemaPath,
		OutputPrefix: filepath.Join(dir, "point"),
		NoProgress:   true,
		NoColor:      true,
		Stderr:       stderr,
	})
	assert.Equal(t, 0, code)

	types, err := os.ReadFile(filepath.Join(dir, "point_types.go"))
	require.NoError(t, err)
	assert.Contains(t, string(types), "type Point struct {")

	impl, err := os.ReadFile(filepath.Join(dir, "point_impl.go"))
	require.NoError(t, err)
	assert.Contains(t, string(impl), "func (v *Point) write(seg *wire.Segment, iter *wire.Iterator) error {")
}

func TestRunUsesOutputPrefixAndPackageOverride(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "point.midl", `struct Point { i32 x; }`)
	writeFile(t, dir, ".midlc.yaml", "package: mypkg\n")
	stderr := newCaptureFile(t, dir)

	code := driver.Run(driver.Options{
		SchemaPath:   schemaPath,
		OutputPrefix: filepath.Join(dir, "gen"),
		NoProgress:   true,
		NoColor:      true,
		Stderr:       stderr,
	})
	require.Equal(t, 0, code)

	types, err := os.ReadFile(filepath.Join(dir, "gen_types.go"))
	require.NoError(t, err)
	assert.Contains(t, string(types), "package mypkg")
}

func TestRunFollowsRefAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "shared.midl", `struct Shared { u8 v; }`)
	schemaPath := writeFile(t, dir, "main.midl", `
ref "shared.midl";
struct UsesShared { Shared s; }
`)
	stderr := newCaptureFile(t, dir)

	code := driver.Run(driver.Options{
		SchemaPath:   schemaPath,
		OutputPrefix: filepath.Join(dir, "main"),
		NoProgress:   true,
		NoColor:      true,
		Stderr:       stderr,
	})
	require.Equal(t, 0, code)

	types, err := os.ReadFile(filepath.Join(dir, "main_types.go"))
	require.NoError(t, err)
	assert.Contains(t, string(types), "type Shared struct {")
	assert.Contains(t, string(types), "type UsesShared struct {")

	impl, err := os.ReadFile(filepath.Join(dir, "main_impl.go"))
	require.NoError(t, err)
	// Shared is declared in shared.midl, not the root file, so it gets no
	// implementation of its own even though UsesShared inlines it.
	assert.NotContains(t, string(impl), "func (v *Shared) write")
	assert.Contains(t, string(impl), "func (v *UsesShared) write")
}

func TestRunFailsOnParseErrors(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "bad.midl", `struct { i32 x; }`)
	stderrPath := filepath.Join(dir, "stderr.txt")
	stderr := newCaptureFileAt(t, stderrPath)

	code := driver.Run(driver.Options{
		SchemaPath: schemaPath,
		NoProgress: true,
		NoColor:    true,
		Stderr:     stderr,
	})
	assert.Equal(t, 1, code)

	report, err := os.ReadFile(stderrPath)
	require.NoError(t, err)
	assert.Contains(t, string(report), "error")
}

func TestRunFailsOnRecursiveStruct(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "cyclic.midl", `struct Node { Node next; }`)
	stderrPath := filepath.Join(dir, "stderr.txt")
	stderr := newCaptureFileAt(t, stderrPath)

	code := driver.Run(driver.Options{
		SchemaPath: schemaPath,
		NoProgress: true,
		NoColor:    true,
		Stderr:     stderr,
	})
	assert.Equal(t, 1, code)

	report, err := os.ReadFile(stderrPath)
	require.NoError(t, err)
	assert.Contains(t, string(report), "recursively self-referential")
}

func TestRunDerivesPrefixFromSchemaBasename(t *testing.T) {
	// With no output_prefix, the default prefix is the schema's own base file
	// name (extension kept, directory stripped) and the generated files land
	// relative to the working directory — matching the original C driver,
	// which never stripped infile's extension for the implicit prefix.
	dir := t.TempDir()
	sub := filepath.Join(dir, "schemas")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	writeFile(t, sub, "widgets.midl", `struct Widget { u8 id; }`)
	stderr := newCaptureFile(t, dir)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(sub))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	code := driver.Run(driver.Options{
		SchemaPath: "widgets.midl",
		NoProgress: true,
		NoColor:    true,
		Stderr:     stderr,
	})
	require.Equal(t, 0, code)

	_, err = os.Stat(filepath.Join(sub, "widgets.midl_types.go"))
	assert.NoError(t, err, "default prefix keeps the schema's extension and writes relative to cwd")
}

func newCaptureFile(t *testing.T, dir string) *os.File {
	t.Helper()
	return newCaptureFileAt(t, filepath.Join(dir, "stderr.txt"))
}

func newCaptureFileAt(t *testing.T, path string) *os.File {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}
