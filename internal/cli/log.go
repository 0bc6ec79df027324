// Package cli implements the lifeline command-line interface.
//
// The CLI reads sequence diagrams in the JSON or YAML interchange format,
// assigns coordinates to them, renders them and serves the same pipeline
// over HTTP. It is built using cobra and logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - layout: Assign coordinates and write the laid-out diagram
//   - render: Generate SVG, PNG, PDF, DOT or JSON output
//   - inspect: Browse the geometry of a laid-out diagram
//   - serve: Run the HTTP API
//   - cache: Manage the layout and artifact cache
//
// # Configuration
//
// Settings come from a TOML or YAML file (see package config), selected with
// --config or $LIFELINE_CONFIG. Flags override file values.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which includes
// the decisions of the coordinate pass.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with
// elapsed duration at debug level.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, rounded to the millisecond.
func (p *progress) done(msg string, keyvals ...any) {
	p.logger.Debug(msg, append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))...)
}
