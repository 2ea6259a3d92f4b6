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

// Package diagnostics is the per-file counting sink lexing, parsing, and
// semantic analysis report through, plus the terminal/process-facing
// rendering of what it collects.
package diagnostics

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Severity ranks a Diagnostic's urgency. Order matches the final per-file
// summary line: errors, warnings, messages, debugs.
type Severity int

const (
	Error Severity = iota
	Warning
	Message
	Debug

	numSeverities
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Message:
		return "message"
	case Debug:
		return "debug"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Diagnostic is one reported finding, tied to a source location.
type Diagnostic struct {
	Severity Severity
	File     string
	Line     int
	Col      int
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %s: %s", d.File, d.Line, d.Col, d.Severity, d.Message)
}

// Sink collects Diagnostics for one file and counts them by severity. A
// parser owns exactly one Sink for the file it is parsing; references to
// other files get their own Sink via the symbol database.
type Sink struct {
	File  string
	diags []Diagnostic
	count [numSeverities]int
}

// NewSink returns a Sink for the named file.
func NewSink(file string) *Sink {
	return &Sink{File: file}
}

// Log appends a Diagnostic at (line, col) with the given severity and
// counts it.
func (s *Sink) Log(sev Severity, line, col int, format string, args ...any) {
	d := Diagnostic{
		Severity: sev,
		File:     s.File,
		Line:     line,
		Col:      col,
		Message:  fmt.Sprintf(format, args...),
	}
	s.diags = append(s.diags, d)
	s.count[sev]++
	observe(sev)
}

// Count returns how many Diagnostics of sev have been logged.
func (s *Sink) Count(sev Severity) int {
	return s.count[sev]
}

// HasErrors reports whether any Error-severity Diagnostic was logged. A
// parser that returns with HasErrors true must mark its file Bad.
func (s *Sink) HasErrors() bool {
	return s.count[Error] > 0
}

// All returns every logged Diagnostic in the order it was reported.
func (s *Sink) All() []Diagnostic {
	return s.diags
}

// Summary formats the final per-file line: "<path>: E errors, W warnings,
// M messages, D debugs".
func (s *Sink) Summary() string {
	return fmt.Sprintf("%s: %d errors, %d warnings, %d messages, %d debugs",
		s.File, s.count[Error], s.count[Warning], s.count[Message], s.count[Debug])
}

var severityColor = map[Severity]*color.Color{
	Error:   color.New(color.FgRed, color.Bold),
	Warning: color.New(color.FgYellow),
	Message: color.New(color.FgCyan),
	Debug:   color.New(color.FgWhite, color.Faint),
}

// WriteTo renders every Diagnostic in s to w, one per line, colorized when
// w is a terminal and colorize is true.
func (s *Sink) WriteTo(w io.Writer, colorize bool) {
	useColor := colorize
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		useColor = useColor && term.IsTerminal(int(f.Fd()))
	}
	for _, d := range s.diags {
		line := d.String()
		if useColor {
			if c, ok := severityColor[d.Severity]; ok {
				line = c.Sprint(line)
			}
		}
		fmt.Fprintln(w, line)
	}
}

// SortByLocation orders diags by (file, line, col) for stable, readable
// output when multiple Sinks are merged for a final report.
func SortByLocation(diags []Diagnostic) {
	sort.Slice(diags, func(i, j int) bool {
		a, b := diags[i], diags[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Col < b.Col
	})
}

// WriteReport merges every Diagnostic across sinks, sorts them by location,
// and writes them to w one per line (colorized under the same terminal gate
// as Sink.WriteTo), followed by each sink's summary line.
func WriteReport(w io.Writer, sinks []*Sink, colorize bool) {
	var all []Diagnostic
	for _, s := range sinks {
		all = append(all, s.diags...)
	}
	SortByLocation(all)

	useColor := colorize
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		useColor = useColor && term.IsTerminal(int(f.Fd()))
	}
	for _, d := range all {
		line := d.String()
		if useColor {
			if c, ok := severityColor[d.Severity]; ok {
				line = c.Sprint(line)
			}
		}
		fmt.Fprintln(w, line)
	}
	for _, s := range sinks {
		fmt.Fprintln(w, s.Summary())
	}
}
