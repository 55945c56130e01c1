// ABOUTME: Tests for logger construction.
// ABOUTME: Checks level parsing and prefixing.
package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewParsesLevel(t *testing.T) {
	l := New(&bytes.Buffer{}, "debug")
	if l.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug", l.GetLevel())
	}
}

func TestNewUnknownLevelFallsBackToInfo(t *testing.T) {
	l := New(&bytes.Buffer{}, "chatty")
	if l.GetLevel() != log.InfoLevel {
		t.Errorf("level = %v, want info", l.GetLevel())
	}
}

func TestNewWritesPrefix(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info")
	l.Warn("parse failed", "key", "@yoroi_workouts")

	out := buf.String()
	if !strings.Contains(out, "yoroi") || !strings.Contains(out, "@yoroi_workouts") {
		t.Errorf("log output = %q, want prefix and key", out)
	}
}

func TestNewFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "error")
	l.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}
