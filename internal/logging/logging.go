// ABOUTME: Structured logger construction on top of charmbracelet/log.
// ABOUTME: Loggers are injected into components; nothing here keeps global state.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to w at the named level.
// Unknown level names fall back to info.
func New(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "yoroi",
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
}

// Stderr returns a logger on standard error.
func Stderr(level string) *log.Logger {
	return New(os.Stderr, level)
}

// Discard returns a logger that writes nothing.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
