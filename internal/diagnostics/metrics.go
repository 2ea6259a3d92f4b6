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

package diagnostics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// DiagnosticsTotal counts every Diagnostic ever logged across all Sinks in
// this process, partitioned by severity. It is not registered with the
// global registry; Register adds it to a caller-supplied one, so a library
// user embedding midlc does not collide with their own /metrics handler.
// Nothing in this module calls Register.
var DiagnosticsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "midlc_diagnostics_total",
		Help: "Count of compiler diagnostics logged, by severity.",
	},
	[]string{"severity"},
)

// Register adds the package's metrics to reg.
func Register(reg *prometheus.Registry) {
	reg.MustRegister(DiagnosticsTotal)
}

// observe increments the process-wide counter alongside the Sink's own
// per-instance tally.
func observe(sev Severity) {
	DiagnosticsTotal.WithLabelValues(sev.String()).Inc()
}
