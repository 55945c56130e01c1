// ABOUTME: Tests for settings, body status, home layout, logo, clubs, and gear.
// ABOUTME: Covers lazy defaults, shallow merges, and seed-on-first-read.
package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/harperreed/yoroi/internal/models"
)

func TestUserSettingsPersistDefaultsOnFirstRead(t *testing.T) {
	s, _, secure := setupTestStore(t)
	ctx := context.Background()

	got := s.GetUserSettings(ctx)
	if got.WeightUnit != "kg" || got.MeasurementUnit != "cm" {
		t.Errorf("defaults = %+v", got)
	}
	raw, ok, _ := secure.Get(ctx, KeyUserSettings)
	if !ok || !strings.Contains(raw, `"weight_unit":"kg"`) {
		t.Errorf("defaults not persisted: %q", raw)
	}
}

func TestSaveUserSettingsShallowMerge(t *testing.T) {
	s, _, _ := setupTestStore(t)
	ctx := context.Background()

	if err := s.SaveUserSettings(ctx, map[string]any{"username": "Houari", "height": 178}); err != nil {
		t.Fatalf("SaveUserSettings failed: %v", err)
	}
	if err := s.SaveUserSettings(ctx, map[string]any{"weight_unit": "lb", "favorite_sport": "jjb"}); err != nil {
		t.Fatalf("SaveUserSettings failed: %v", err)
	}

	got := s.GetUserSettings(ctx)
	if got.WeightUnit != "lb" {
		t.Errorf("WeightUnit = %s, want lb", got.WeightUnit)
	}
	if got.MeasurementUnit != "cm" {
		t.Errorf("MeasurementUnit = %s, want cm", got.MeasurementUnit)
	}
	if got.Username == nil || *got.Username != "Houari" {
		t.Errorf("Username = %v, want Houari", got.Username)
	}
	if got.Height == nil || *got.Height != 178 {
		t.Errorf("Height = %v, want 178", got.Height)
	}
	if _, ok := got.Extra["favorite_sport"]; !ok {
		t.Error("unknown key favorite_sport was dropped")
	}

	if err := s.SaveUserSettings(ctx, map[string]any{"username": nil}); err != nil {
		t.Fatalf("SaveUserSettings failed: %v", err)
	}
	if got := s.GetUserSettings(ctx); got.Username != nil {
		t.Errorf("Username = %v, want removed", *got.Username)
	}
}

func TestSaveUserSettingsRejectsWrongType(t *testing.T) {
	s, _, _ := setupTestStore(t)
	if err := s.SaveUserSettings(context.Background(), map[string]any{"height": "tall"}); err == nil {
		t.Error("expected error for non-numeric height")
	}
}

func TestBodyStatus(t *testing.T) {
	s, _, _ := setupTestStore(t)
	ctx := context.Background()

	if got := s.GetUserBodyStatus(ctx); len(got) != 0 {
		t.Errorf("empty body status = %v", got)
	}
	err := s.SaveUserBodyStatus(ctx, models.BodyStatus{"left_knee": {Status: "warning", Pain: 3}})
	if err != nil {
		t.Fatalf("SaveUserBodyStatus failed: %v", err)
	}
	err = s.SaveUserBodyStatus(ctx, models.BodyStatus{"right_shoulder": {Status: "injured", Pain: 6}})
	if err != nil {
		t.Fatalf("SaveUserBodyStatus failed: %v", err)
	}
	got := s.GetUserBodyStatus(ctx)
	if _, ok := got["left_knee"]; ok {
		t.Error("save should replace, not merge")
	}
	if got["right_shoulder"].Pain != 6 {
		t.Errorf("right_shoulder = %+v", got["right_shoulder"])
	}
}

func TestHomeLayoutMergesSavedSubset(t *testing.T) {
	s, plain, _ := setupTestStore(t)
	rawSet(t, plain, KeyHomeLayout, `[{"id":"hero","visible":false}]`)

	got := s.GetHomeLayout(context.Background())
	if len(got) != len(models.DefaultHomeSections) {
		t.Fatalf("len = %d, want %d", len(got), len(models.DefaultHomeSections))
	}
	for i, sec := range got {
		if sec.ID == "hero" {
			if sec.Visible {
				t.Error("hero visible = true, want false")
			}
			continue
		}
		if sec.Visible != models.DefaultHomeSections[i].Visible {
			t.Errorf("%s visible = %v, want default", sec.ID, sec.Visible)
		}
	}
}

func TestHomeLayoutEmptyIsDefaults(t *testing.T) {
	s, _, _ := setupTestStore(t)
	got := s.GetHomeLayout(context.Background())
	for i := range got {
		if got[i] != models.DefaultHomeSections[i] {
			t.Errorf("section %d = %+v, want %+v", i, got[i], models.DefaultHomeSections[i])
		}
	}
}

func TestSetSectionVisible(t *testing.T) {
	s, _, _ := setupTestStore(t)
	ctx := context.Background()

	ok, err := s.SetSectionVisible(ctx, "shortcuts", false)
	if err != nil || !ok {
		t.Fatalf("SetSectionVisible = %v, %v", ok, err)
	}
	if ok, _ := s.SetSectionVisible(ctx, "nope", false); ok {
		t.Error("SetSectionVisible(unknown) = true, want false")
	}
	for _, sec := range s.GetHomeLayout(ctx) {
		if sec.ID == "shortcuts" && sec.Visible {
			t.Error("shortcuts still visible")
		}
	}

	if err := s.ResetHomeLayout(ctx); err != nil {
		t.Fatalf("ResetHomeLayout failed: %v", err)
	}
	if got := s.GetHomeLayout(ctx); !got[1].Visible {
		t.Error("reset should restore default visibility")
	}
}

func TestSelectedLogo(t *testing.T) {
	s, plain, _ := setupTestStore(t)
	ctx := context.Background()

	if got := s.GetSelectedLogo(ctx); got != "default" {
		t.Errorf("GetSelectedLogo = %q, want default", got)
	}
	if err := s.SaveSelectedLogo(ctx, "samurai"); err != nil {
		t.Fatalf("SaveSelectedLogo failed: %v", err)
	}
	raw, _, _ := plain.Get(ctx, KeySelectedLogo)
	if raw != "samurai" {
		t.Errorf("stored logo = %q, want bare string", raw)
	}
	if err := s.SaveSelectedLogo(ctx, ""); err == nil {
		t.Error("expected error for empty logo id")
	}
}

func TestClubsSeededOnFirstRead(t *testing.T) {
	s, _, secure := setupTestStore(t)
	ctx := context.Background()

	clubs := s.GetUserClubs(ctx)
	if len(clubs) != 3 {
		t.Fatalf("len = %d, want 3", len(clubs))
	}
	types := map[string]bool{}
	for _, c := range clubs {
		types[c.Type] = true
	}
	for _, want := range []string{models.ClubBasicFit, models.ClubGracieBarra, models.ClubRunning} {
		if !types[want] {
			t.Errorf("missing default club type %s", want)
		}
	}
	if _, ok, _ := secure.Get(ctx, KeyUserClubs); !ok {
		t.Error("defaults were not persisted")
	}

	for _, c := range clubs {
		if ok, err := s.DeleteClub(ctx, c.ID); err != nil || !ok {
			t.Fatalf("DeleteClub = %v, %v", ok, err)
		}
	}
	if got := s.GetUserClubs(ctx); len(got) != 0 {
		t.Errorf("clubs after deleting all = %d, want 0 (no reseed)", len(got))
	}
}

func TestClubCRUD(t *testing.T) {
	s, _, _ := setupTestStore(t)
	ctx := context.Background()

	c, err := s.AddClub(ctx, models.Club{Name: "Judo Club", Type: "judo"})
	if err != nil {
		t.Fatalf("AddClub failed: %v", err)
	}
	if got := s.GetUserClubs(ctx); len(got) != 4 {
		t.Errorf("len = %d, want 3 defaults + 1", len(got))
	}

	c.Name = "Judo Club Paris"
	if ok, err := s.UpdateClub(ctx, *c); err != nil || !ok {
		t.Fatalf("UpdateClub = %v, %v", ok, err)
	}
	if ok, _ := s.UpdateClub(ctx, models.Club{ID: "missing", Name: "x"}); ok {
		t.Error("UpdateClub(missing) = true, want false")
	}
	if _, err := s.AddClub(ctx, models.Club{Name: "  "}); err == nil {
		t.Error("expected error for blank club name")
	}
}

func TestGearSeededAndCRUD(t *testing.T) {
	s, plain, _ := setupTestStore(t)
	ctx := context.Background()

	gear := s.GetUserGear(ctx)
	if len(gear) != 3 {
		t.Fatalf("len = %d, want 3", len(gear))
	}
	if _, ok, _ := plain.Get(ctx, KeyUserGear); !ok {
		t.Error("gear defaults were not persisted")
	}

	g, err := s.AddGear(ctx, models.Gear{Name: "Protège-dents", Type: "autre"})
	if err != nil {
		t.Fatalf("AddGear failed: %v", err)
	}
	if ok, _ := s.DeleteGear(ctx, g.ID); !ok {
		t.Error("DeleteGear = false, want true")
	}
	if got := s.GetUserGear(ctx); len(got) != 3 {
		t.Errorf("len = %d, want 3", len(got))
	}
}
