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

// Package driver wires the frontend (lexer/parser/symboldb), the
// sequencer, and the emitter into the one pipeline `cmd/midlc` runs: read a
// root schema file, follow its `ref`s, sequence every symbol it reaches,
// generate Go source for two sinks, and write them next to an output
// prefix. It owns the pieces a compiler-as-a-library caller never has to
// think about: diagnostic collection/rendering, optional terminal
// progress, and the `.midlc.yaml` / CLI flag precedence.
package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/midlc/midlc/internal/arena"
	"github.com/midlc/midlc/internal/diagnostics"
	"github.com/midlc/midlc/internal/emitter"
	"github.com/midlc/midlc/internal/parser"
	"github.com/midlc/midlc/internal/sequencer"
	"github.com/midlc/midlc/internal/symboldb"
	"github.com/midlc/midlc/schema"
)

// Options is everything the CLI layer gathers from flags and argv before
// handing control to Run.
type Options struct {
	SchemaPath   string // required, positional
	OutputPrefix string // optional positional; derived from SchemaPath if empty
	ConfigPath   string // --config
	NoColor      bool   // --no-color
	NoProgress   bool   // --no-progress
	Stderr       *os.File
}

// Run executes one compile: parse, sequence, emit, write. It returns the
// process exit code per spec.md §6 (0 success, 1 parse/I-O/usage failure)
// and never calls os.Exit itself, so cmd/midlc stays a thin shell.
func Run(opts Options) int {
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	cfg, err := loadConfig(opts.ConfigPath, opts.SchemaPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	prefix := opts.OutputPrefix
	if prefix == "" {
		prefix = derivePrefix(opts.SchemaPath)
	}
	pkg := cfg.Package
	if pkg == "" {
		// Unlike the output prefix, the default package name always drops the
		// schema's extension: "widgets.midl" must produce package "widgets",
		// not the syntactically invalid "widgets.midl".
		base := filepath.Base(opts.SchemaPath)
		pkg = strings.TrimSuffix(base, filepath.Ext(base))
	}

	colorize := !opts.NoColor && cfg.Color != "never"

	var sinks []*diagnostics.Sink
	parse := func(path string, db *symboldb.DB) ([]symboldb.Symbol, error) {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("driver: reading %q: %w", path, err)
		}

		fileArena := &arena.Arena{}
		syms, sink, err := parser.Parse(path, string(src), db, resolveRef, fileArena)
		sinks = append(sinks, sink)
		if err != nil {
			return nil, err
		}
		if sink.HasErrors() {
			return nil, fmt.Errorf("driver: %q failed to parse", path)
		}
		diagnostics.Log.Debugf("driver: parsed %q (%d symbol objects)", path, fileArena.Len())

		out := make([]symboldb.Symbol, len(syms))
		for i, s := range syms {
			out[i] = s
		}
		return out, nil
	}

	db := symboldb.New(parse)
	file, parseErr := db.ParseIfNeeded(opts.SchemaPath)

	if parseErr != nil {
		diagnostics.Log.Errorf("compile failed: %v", parseErr)
		diagnostics.WriteReport(stderr, sinks, colorize)
		return 1
	}

	rootSymbols := make([]schema.Symbol, len(file.Symbols))
	for i, s := range file.Symbols {
		rootSymbols[i] = s.(schema.Symbol)
	}

	sequenced := sequencer.Sequence(rootSymbols)

	// The sequencer never calls schema's base-size functions; do it here, once
	// per sequenced struct, so a recursively self-referential struct is
	// reported as a diagnostic instead of surfacing only once the emitter
	// tries (and fails) to compute a base-size constant for it.
	sizeSink := diagnostics.NewSink(opts.SchemaPath)
	for _, sym := range sequenced {
		st, ok := sym.(*schema.Struct)
		if !ok {
			continue
		}
		if _, _, err := schema.VarListBaseSize(&st.Fields); err != nil {
			sizeSink.Log(diagnostics.Error, 0, 0, "struct %q: %v", st.Name, err)
		}
	}
	sinks = append(sinks, sizeSink)
	if sizeSink.HasErrors() {
		diagnostics.WriteReport(stderr, sinks, colorize)
		return 1
	}

	emitOpts := []emitter.Option{emitter.WithFormat(cfg.Format)}
	var bar *progressbar.ProgressBar
	if !opts.NoProgress && term.IsTerminal(int(stderr.Fd())) {
		bar = progressbar.NewOptions(len(sequenced),
			progressbar.OptionSetDescription("emitting "+pkg),
			progressbar.OptionSetWriter(stderr),
			progressbar.OptionClearOnFinish(),
		)
		emitOpts = append(emitOpts, emitter.WithProgress(func(done, total int) {
			_ = bar.Set(done)
		}))
	}

	res, err := emitter.Emit(pkg, sequenced, opts.SchemaPath, emitOpts...)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		diagnostics.Log.Errorf("code generation failed: %v", err)
		diagnostics.WriteReport(stderr, sinks, colorize)
		return 1
	}

	if err := writeSink(prefix+"_types.go", res.Types); err != nil {
		diagnostics.Log.Errorf("%v", err)
		diagnostics.WriteReport(stderr, sinks, colorize)
		return 1
	}
	if err := writeSink(prefix+"_impl.go", res.Impl); err != nil {
		diagnostics.Log.Errorf("%v", err)
		diagnostics.WriteReport(stderr, sinks, colorize)
		return 1
	}

	diagnostics.WriteReport(stderr, sinks, colorize)
	return 0
}

func writeSink(path string, src []byte) error {
	if err := os.WriteFile(path, src, 0o644); err != nil {
		return fmt.Errorf("driver: writing %q: %w", path, err)
	}
	return nil
}

// derivePrefix strips the schema path down to its base file name (extension
// kept) when no output_prefix is given, matching the original C driver: the
// default prefix is the input's own name with its directory stripped, not
// the name minus its extension, and the generated files land relative to
// the process's working directory rather than next to the schema.
func derivePrefix(schemaPath string) string {
	return filepath.Base(schemaPath)
}

// resolveRef resolves a `ref` path relative to the file that declared it.
func resolveRef(fromFile, refPath string) (string, error) {
	return filepath.Clean(filepath.Join(filepath.Dir(fromFile), refPath)), nil
}
