// Package cli implements the spritesheet command-line interface.
//
// The commands are:
//   - generate: trim, pack and compose images into a texture plus data files
//   - inspect: browse the frames of a sheet file
//   - serve: run the HTTP layout service
//   - cache: clear or locate the trim and layout cache
//
// generate reads spritesheet.toml from the working directory when present
// (or the file named by --config). Flags set explicitly win over the file,
// which wins over the built-in defaults.
//
// --verbose (-v) switches every command to debug logging, which also
// reports each pipeline stage and cache lookup.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// logTimeFormat prints wall-clock time to the hundredth of a second.
const logTimeFormat = "15:04:05.00"

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      logTimeFormat,
		Level:           level,
	})
}

// progress logs how long an operation took, measured from its creation.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs "msg (elapsed)" at info level, e.g. "Packed 42 sprites (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
