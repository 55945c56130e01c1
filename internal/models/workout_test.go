// ABOUTME: Tests for Workout model and date helpers.
// ABOUTME: Validates constructors, normalization, and day arithmetic.
package models

import (
	"testing"
	"time"
)

func TestNewWorkout(t *testing.T) {
	w := NewWorkout("2026-02-10", "jjb")

	if w.ID == "" {
		t.Error("expected ID to be set")
	}
	if w.Date != "2026-02-10" {
		t.Errorf("Date = %s, want 2026-02-10", w.Date)
	}
	if w.Type != "jjb" {
		t.Errorf("Type = %s, want jjb", w.Type)
	}
	if w.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestNewWorkoutUniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		w := NewWorkout("2026-02-10", "run")
		if seen[w.ID] {
			t.Fatalf("duplicate ID %s", w.ID)
		}
		seen[w.ID] = true
	}
}

func TestWorkoutNormalize(t *testing.T) {
	w := Workout{Date: "2024-01-01"}
	w.Normalize()

	if w.ID == "" {
		t.Error("expected Normalize to generate an ID")
	}
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local).UTC()
	if !w.CreatedAt.Equal(want) {
		t.Errorf("CreatedAt = %v, want %v", w.CreatedAt, want)
	}
}

func TestDaysAgo(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)
	if got := DaysAgo(now, 1); got != "2026-02-28" {
		t.Errorf("DaysAgo(1) = %s, want 2026-02-28", got)
	}
	if got := Today(now); got != "2026-03-01" {
		t.Errorf("Today = %s, want 2026-03-01", got)
	}
}

func TestValidDate(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"2026-02-10", true},
		{"2026-2-10", false},
		{"2026-02-30", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidDate(tt.in); got != tt.want {
			t.Errorf("ValidDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
