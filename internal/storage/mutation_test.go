// ABOUTME: Tests for read-modify-write paths over legacy, undecodable, and unreadable data.
// ABOUTME: Covers stable backfilled IDs, refused overwrites, and write-free export.
package storage

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/yoroi/internal/kv"
	"github.com/harperreed/yoroi/internal/models"
)

func TestLegacyRecordIDIsStableAcrossReads(t *testing.T) {
	s, plain, _ := setupTestStore(t)
	ctx := context.Background()
	rawSet(t, plain, KeyWorkouts, `[{"date":"2026-02-10","type":"jjb"}]`)

	first := s.GetAllWorkouts(ctx)
	second := s.GetAllWorkouts(ctx)
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("len = %d, %d, want 1", len(first), len(second))
	}
	if first[0].ID == "" || first[0].ID != second[0].ID {
		t.Fatalf("IDs differ between reads: %q vs %q", first[0].ID, second[0].ID)
	}

	found, err := s.FindWorkout(ctx, first[0].ID[:8])
	if err != nil || found.ID != first[0].ID {
		t.Errorf("FindWorkout = %v, %v", found, err)
	}

	ok, err := s.DeleteWorkout(ctx, first[0].ID)
	if err != nil || !ok {
		t.Fatalf("DeleteWorkout(listed id) = %v, %v, want true", ok, err)
	}
	if got := s.GetAllWorkouts(ctx); len(got) != 0 {
		t.Errorf("remaining = %d, want 0", len(got))
	}
}

func TestIdenticalLegacyRecordsGetDistinctIDs(t *testing.T) {
	s, plain, _ := setupTestStore(t)
	ctx := context.Background()
	rawSet(t, plain, KeyHydrationLog, `[{"date":"2026-02-14","amount":250},{"date":"2026-02-14","amount":250}]`)

	entries := s.GetAllHydrationEntries(ctx)
	if len(entries) != 2 || entries[0].ID == entries[1].ID {
		t.Fatalf("entries = %+v, want two distinct IDs", entries)
	}

	ok, err := s.DeleteHydrationEntry(ctx, entries[1].ID)
	if err != nil || !ok {
		t.Fatalf("DeleteHydrationEntry = %v, %v", ok, err)
	}
	left := s.GetAllHydrationEntries(ctx)
	if len(left) != 1 || left[0].ID != entries[0].ID {
		t.Errorf("left = %+v, want %s", left, entries[0].ID)
	}
}

func TestUpdateLegacyMeasurementByListedID(t *testing.T) {
	s, _, secure := setupTestStore(t)
	ctx := context.Background()
	rawSet(t, secure, KeyMeasurements, `[{"date":"2026-02-10","weight":82}]`)

	listed := s.GetAllMeasurements(ctx)
	if len(listed) != 1 {
		t.Fatalf("len = %d, want 1", len(listed))
	}
	weight := 81.5
	ok, err := s.UpdateMeasurement(ctx, listed[0].ID, models.MeasurementPatch{Weight: &weight})
	if err != nil || !ok {
		t.Fatalf("UpdateMeasurement = %v, %v, want true", ok, err)
	}
	got := s.GetAllMeasurements(ctx)
	if got[0].ID != listed[0].ID || got[0].Weight != 81.5 {
		t.Errorf("got %+v, want id %s weight 81.5", got[0], listed[0].ID)
	}
}

func TestMutationsRefuseUnreadableCollection(t *testing.T) {
	s, plain, secure := setupTestStore(t)
	ctx := context.Background()
	rawSet(t, plain, KeyWorkouts, `[{"id":"w1","date":"2026-02-10","type":"jjb"}]`)
	rawSet(t, secure, KeyMoodLog, `[{"id":"m1","date":"2026-02-10","mood":"calm","energy":3}]`)

	unavailable := errors.New("backend unavailable")
	plain.FailGet = unavailable
	secure.FailGet = unavailable

	if _, err := s.AddWorkout(ctx, "2026-02-11", "run"); !errors.Is(err, unavailable) {
		t.Errorf("AddWorkout err = %v, want %v", err, unavailable)
	}
	if _, err := s.DeleteWorkout(ctx, "w1"); !errors.Is(err, unavailable) {
		t.Errorf("DeleteWorkout err = %v, want %v", err, unavailable)
	}
	if _, err := s.SaveMood(ctx, MoodInput{Mood: "happy", Energy: 4}); !errors.Is(err, unavailable) {
		t.Errorf("SaveMood err = %v, want %v", err, unavailable)
	}
	if _, err := s.UnlockBadge(ctx, "first_step"); !errors.Is(err, unavailable) {
		t.Errorf("UnlockBadge err = %v, want %v", err, unavailable)
	}
	if err := s.SaveUserSettings(ctx, map[string]any{"theme": "dark"}); !errors.Is(err, unavailable) {
		t.Errorf("SaveUserSettings err = %v, want %v", err, unavailable)
	}
	if _, err := s.SetSectionVisible(ctx, "stats", false); !errors.Is(err, unavailable) {
		t.Errorf("SetSectionVisible err = %v, want %v", err, unavailable)
	}

	plain.FailGet = nil
	secure.FailGet = nil
	if got := s.GetAllWorkouts(ctx); len(got) != 1 || got[0].ID != "w1" {
		t.Errorf("workouts = %+v, want the original record", got)
	}
	if got := s.GetMoods(ctx, 0); len(got) != 1 || got[0].ID != "m1" {
		t.Errorf("moods = %+v, want the original record", got)
	}
}

func TestAddMeasurementWithWrongKeyKeepsSealedData(t *testing.T) {
	ctx := context.Background()
	plain := kv.NewMemoryStore()
	inner := kv.NewMemoryStore()
	k1, _ := kv.GenerateKey()
	k2, _ := kv.GenerateKey()
	clock := WithClock(func() time.Time { return fixedNow })

	s1 := New(plain, kv.NewUnlockedSecureStore(inner, k1), clock)
	for _, w := range []float64{82, 81.5, 81} {
		if _, err := s1.AddMeasurement(ctx, *models.NewMeasurement("2026-02-10", w)); err != nil {
			t.Fatalf("AddMeasurement failed: %v", err)
		}
	}

	s2 := New(plain, kv.NewUnlockedSecureStore(inner, k2), clock)
	if _, err := s2.AddMeasurement(ctx, *models.NewMeasurement("2026-02-11", 80)); !errors.Is(err, kv.ErrDecrypt) {
		t.Errorf("AddMeasurement with wrong key err = %v, want ErrDecrypt", err)
	}

	if got := s1.GetAllMeasurements(ctx); len(got) != 3 {
		t.Errorf("measurements with original key = %d, want 3", len(got))
	}
}

func TestUndecodableRecordSurvivesAdd(t *testing.T) {
	s, plain, _ := setupTestStore(t)
	ctx := context.Background()
	rawSet(t, plain, KeyHydrationLog, `[{"id":"a","date":"2026-02-14","amount":"250"},{"id":"b","date":"2026-02-14","amount":300}]`)

	if got := s.GetAllHydrationEntries(ctx); len(got) != 1 {
		t.Fatalf("readable entries = %d, want 1", len(got))
	}
	if _, err := s.AddHydrationEntry(ctx, 200, "2026-02-14"); err != nil {
		t.Fatalf("AddHydrationEntry failed: %v", err)
	}

	raw, _, err := plain.Get(ctx, KeyHydrationLog)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !strings.Contains(raw, `"id":"a"`) || !strings.Contains(raw, `"amount":"250"`) {
		t.Errorf("undecodable record was dropped: %s", raw)
	}
	if got := s.GetAllHydrationEntries(ctx); len(got) != 2 {
		t.Errorf("readable entries = %d, want 2", len(got))
	}

	ok, err := s.DeleteHydrationEntry(ctx, "b")
	if err != nil || !ok {
		t.Fatalf("DeleteHydrationEntry = %v, %v", ok, err)
	}
	raw, _, _ = plain.Get(ctx, KeyHydrationLog)
	if !strings.Contains(raw, `"id":"a"`) {
		t.Errorf("undecodable record was dropped by delete: %s", raw)
	}
}

func TestExportDoesNotWrite(t *testing.T) {
	s, plain, secure := setupTestStore(t)
	ctx := context.Background()

	b, err := s.ExportAllData(ctx)
	if err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}
	if len(b.Clubs) != 3 || len(b.Gear) != 3 {
		t.Errorf("exported %d clubs, %d gear, want the 3 defaults each", len(b.Clubs), len(b.Gear))
	}
	if b.Settings.WeightUnit != "kg" {
		t.Errorf("exported WeightUnit = %q, want kg", b.Settings.WeightUnit)
	}

	for _, key := range AllKeys {
		store := kv.Store(plain)
		if IsSecureKey(key) {
			store = secure
		}
		if _, present, _ := store.Get(ctx, key); present {
			t.Errorf("export wrote %s", key)
		}
	}
}

func TestSaveUserSettingsRejectsUnknownUnits(t *testing.T) {
	s, _, _ := setupTestStore(t)
	ctx := context.Background()

	for _, patch := range []map[string]any{
		{"weight_unit": "stone"},
		{"measurement_unit": "ft"},
	} {
		if err := s.SaveUserSettings(ctx, patch); err == nil {
			t.Errorf("SaveUserSettings(%v) accepted", patch)
		}
	}
	if err := s.SaveUserSettings(ctx, map[string]any{"weight_unit": "lb", "measurement_unit": "in"}); err != nil {
		t.Fatalf("SaveUserSettings(lb, in) failed: %v", err)
	}
	got := s.GetUserSettings(ctx)
	if got.WeightUnit != "lb" || got.MeasurementUnit != "in" {
		t.Errorf("units = %s/%s, want lb/in", got.WeightUnit, got.MeasurementUnit)
	}
}
