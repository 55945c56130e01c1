// ABOUTME: Tests for export, import, reset, and streak statistics.
// ABOUTME: Round-trips backups through JSON and YAML encodings.
package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/harperreed/yoroi/internal/models"
)

func seedStore(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()
	for _, d := range []string{"2026-02-10", "2026-02-11", "2026-02-12", "2026-02-14"} {
		if _, err := s.AddWorkout(ctx, d, "jjb"); err != nil {
			t.Fatalf("AddWorkout failed: %v", err)
		}
	}
	for _, d := range []string{"2026-02-01", "2026-02-02"} {
		if _, err := s.AddMeasurement(ctx, *models.NewMeasurement(d, 80)); err != nil {
			t.Fatalf("AddMeasurement failed: %v", err)
		}
	}
	if _, err := s.UnlockBadge(ctx, "first_step"); err != nil {
		t.Fatalf("UnlockBadge failed: %v", err)
	}
	if _, err := s.AddHydrationEntry(ctx, 500, ""); err != nil {
		t.Fatalf("AddHydrationEntry failed: %v", err)
	}
	if _, err := s.SaveMood(ctx, MoodInput{Mood: models.MoodCalm, Energy: 3}); err != nil {
		t.Fatalf("SaveMood failed: %v", err)
	}
	if err := s.SaveSelectedLogo(ctx, "samurai"); err != nil {
		t.Fatalf("SaveSelectedLogo failed: %v", err)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			src, _, _ := setupTestStore(t)
			seedStore(t, src)
			ctx := context.Background()

			backup, err := src.ExportAllData(ctx)
			if err != nil {
				t.Fatalf("ExportAllData failed: %v", err)
			}
			if backup.Version != BackupVersion {
				t.Errorf("Version = %s, want %s", backup.Version, BackupVersion)
			}

			data, err := EncodeBackup(backup, format)
			if err != nil {
				t.Fatalf("EncodeBackup failed: %v", err)
			}
			decoded, err := DecodeBackup(data, format)
			if err != nil {
				t.Fatalf("DecodeBackup failed: %v", err)
			}

			dst, _, _ := setupTestStore(t)
			if err := dst.ImportAllData(ctx, decoded); err != nil {
				t.Fatalf("ImportAllData failed: %v", err)
			}

			if got := len(dst.GetAllWorkouts(ctx)); got != 4 {
				t.Errorf("workouts = %d, want 4", got)
			}
			if got := len(dst.GetAllMeasurements(ctx)); got != 2 {
				t.Errorf("measurements = %d, want 2", got)
			}
			if !dst.IsBadgeUnlocked(ctx, "first_step") {
				t.Error("badge lost in round trip")
			}
			if got := dst.GetDailyHydrationTotal(ctx, "2026-02-15"); got != 500 {
				t.Errorf("hydration total = %d, want 500", got)
			}
			if dst.GetTodayMood(ctx) == nil {
				t.Error("mood lost in round trip")
			}
			if got := dst.GetSelectedLogo(ctx); got != "samurai" {
				t.Errorf("logo = %s, want samurai", got)
			}
		})
	}
}

func TestImportRejectsUnknownVersion(t *testing.T) {
	s, _, _ := setupTestStore(t)
	err := s.ImportAllData(context.Background(), &Backup{Version: "2.0.0"})
	if !errors.Is(err, ErrUnsupportedBackup) {
		t.Errorf("ImportAllData err = %v, want ErrUnsupportedBackup", err)
	}
}

func TestImportDeduplicatesIDs(t *testing.T) {
	s, _, _ := setupTestStore(t)
	ctx := context.Background()
	b := &Backup{
		Version: BackupVersion,
		Workouts: []models.Workout{
			{ID: "same", Date: "2026-01-01", Type: "run"},
			{ID: "same", Date: "2026-01-02", Type: "run"},
		},
		Badges: []models.BadgeUnlock{{BadgeID: "first_step"}, {BadgeID: "first_step"}},
	}
	if err := s.ImportAllData(ctx, b); err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	ws := s.GetAllWorkouts(ctx)
	if len(ws) != 2 || ws[0].ID == ws[1].ID {
		t.Errorf("workouts = %+v, want two distinct ids", ws)
	}
	if got := len(s.GetUnlockedBadges(ctx)); got != 1 {
		t.Errorf("badges = %d, want 1", got)
	}
}

func TestDecodeBackupUnknownFormat(t *testing.T) {
	if _, err := DecodeBackup([]byte("{}"), "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestResetAllData(t *testing.T) {
	s, plain, secure := setupTestStore(t)
	seedStore(t, s)
	ctx := context.Background()

	if err := s.ResetAllData(ctx); err != nil {
		t.Fatalf("ResetAllData failed: %v", err)
	}
	if plain.Len() != 0 || secure.Len() != 0 {
		t.Errorf("keys left: plain %d, secure %d", plain.Len(), secure.Len())
	}
	if got := s.GetStats(ctx); got.TotalWorkouts != 0 || got.TotalMeasurements != 0 {
		t.Errorf("stats after reset = %+v", got)
	}
}

func TestGetStatsAndStreaks(t *testing.T) {
	s, _, _ := setupTestStore(t)
	seedStore(t, s)
	ctx := context.Background()

	st := s.GetStats(ctx)
	if st.TotalWorkouts != 4 || st.TotalMeasurements != 2 || st.TotalBadges != 1 {
		t.Errorf("stats = %+v", st)
	}
	if st.FirstMeasurementDate == nil || *st.FirstMeasurementDate != "2026-02-01" {
		t.Errorf("FirstMeasurementDate = %v, want 2026-02-01", st.FirstMeasurementDate)
	}
	if got := s.CalculateWorkoutStreak(ctx); got != 3 {
		t.Errorf("CalculateWorkoutStreak = %d, want 3", got)
	}
	if got := s.CalculateWeightStreak(ctx); got != 2 {
		t.Errorf("CalculateWeightStreak = %d, want 2", got)
	}
}

func TestLongestStreak(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		want  int
	}{
		{"empty", nil, 0},
		{"single", []string{"2026-01-01"}, 1},
		{"duplicates count once", []string{"2026-01-01", "2026-01-01", "2026-01-02"}, 2},
		{"month boundary", []string{"2026-01-31", "2026-02-01", "2026-02-02"}, 3},
		{"gap resets", []string{"2026-01-01", "2026-01-02", "2026-01-04", "2026-01-05", "2026-01-06"}, 3},
		{"malformed ignored", []string{"garbage", "2026-01-01"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LongestStreak(tt.dates); got != tt.want {
				t.Errorf("LongestStreak = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCurrentStreak(t *testing.T) {
	dates := []string{"2026-02-13", "2026-02-14", "2026-02-10"}
	if got := CurrentStreak(dates, "2026-02-15"); got != 2 {
		t.Errorf("CurrentStreak (ending yesterday) = %d, want 2", got)
	}
	if got := CurrentStreak(append(dates, "2026-02-15"), "2026-02-15"); got != 3 {
		t.Errorf("CurrentStreak (including today) = %d, want 3", got)
	}
	if got := CurrentStreak([]string{"2026-02-01"}, "2026-02-15"); got != 0 {
		t.Errorf("CurrentStreak (stale) = %d, want 0", got)
	}
}
