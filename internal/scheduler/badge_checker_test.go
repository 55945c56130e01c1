// ABOUTME: Tests for the cron-driven badge checker.
// ABOUTME: Runs checks directly against a memory-backed store with a fixed clock.
package scheduler

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/yoroi/internal/logging"
	"github.com/harperreed/yoroi/internal/models"
	"github.com/harperreed/yoroi/internal/storage"
)

var fixedNow = time.Date(2026, 2, 15, 10, 0, 0, 0, time.Local)

func setupTestChecker(t *testing.T, schedule string) (*BadgeChecker, *storage.Store, *bytes.Buffer) {
	t.Helper()
	clock := func() time.Time { return fixedNow }
	s := storage.NewMemory(storage.WithClock(clock))
	t.Cleanup(func() { _ = s.Close() })

	var buf bytes.Buffer
	c := NewBadgeChecker(s, schedule, logging.New(&buf, "debug"))
	c.now = clock
	return c, s, &buf
}

func TestNewBadgeCheckerDefaultSchedule(t *testing.T) {
	c, _, _ := setupTestChecker(t, "")
	if c.schedule != DefaultSchedule {
		t.Errorf("schedule = %q, want %q", c.schedule, DefaultSchedule)
	}
}

func TestRunOnceUnlocks(t *testing.T) {
	c, s, buf := setupTestChecker(t, "")
	ctx := context.Background()

	m := models.NewMeasurement("2026-02-15", 80)
	if _, err := s.AddMeasurement(ctx, *m); err != nil {
		t.Fatalf("AddMeasurement failed: %v", err)
	}

	fresh, err := c.RunOnce(ctx)
	if err != nil {
		t.Fatalf("RunOnce failed: %v", err)
	}
	if len(fresh) == 0 {
		t.Fatal("expected at least one badge unlocked")
	}
	if !s.IsBadgeUnlocked(ctx, "first_step") {
		t.Error("first_step should be unlocked")
	}
	if !strings.Contains(buf.String(), "badge unlocked") {
		t.Errorf("expected unlock to be logged, got %q", buf.String())
	}

	again, err := c.RunOnce(ctx)
	if err != nil {
		t.Fatalf("second RunOnce failed: %v", err)
	}
	if len(again) != 0 {
		t.Errorf("second run unlocked %d badges, want 0", len(again))
	}
}

func TestStartRejectsBadSchedule(t *testing.T) {
	c, _, _ := setupTestChecker(t, "not a cron spec")
	if err := c.Start(); err == nil {
		t.Error("expected error for invalid schedule")
	}
}

func TestStartStop(t *testing.T) {
	c, _, _ := setupTestChecker(t, "@every 1h")
	if err := c.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Stop(ctx); err != nil {
		t.Errorf("Stop failed: %v", err)
	}
}
