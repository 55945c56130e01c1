// ABOUTME: Tests for settings, hydration settings, and home layout models.
// ABOUTME: Covers unknown-key preservation and the default layout merge.
package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestUserSettingsKeepsUnknownKeys(t *testing.T) {
	raw := `{"weight_unit":"lb","measurement_unit":"in","favorite_sport":"jjb"}`
	var s UserSettings
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if s.WeightUnit != "lb" {
		t.Errorf("WeightUnit = %s, want lb", s.WeightUnit)
	}
	out, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(out), `"favorite_sport":"jjb"`) {
		t.Errorf("unknown key lost: %s", out)
	}
}

func TestHydrationGoalML(t *testing.T) {
	s := DefaultHydrationSettings()
	if got := s.GoalML(); got != 2500 {
		t.Errorf("GoalML() = %d, want 2500", got)
	}
	custom := 3200
	s.CustomGoal = &custom
	if got := s.GoalML(); got != 3200 {
		t.Errorf("GoalML() with custom = %d, want 3200", got)
	}
}

func TestMergeHomeLayoutSubset(t *testing.T) {
	hidden := false
	got := MergeHomeLayout([]SavedSection{{ID: "hero", Visible: &hidden}})

	if len(got) != len(DefaultHomeSections) {
		t.Fatalf("len = %d, want %d", len(got), len(DefaultHomeSections))
	}
	for i, s := range got {
		if s.ID != DefaultHomeSections[i].ID {
			t.Errorf("section %d = %s, want %s", i, s.ID, DefaultHomeSections[i].ID)
		}
		if s.ID == "hero" {
			if s.Visible {
				t.Error("hero should be hidden")
			}
		} else if s.Visible != DefaultHomeSections[i].Visible {
			t.Errorf("%s visible = %v, want default %v", s.ID, s.Visible, DefaultHomeSections[i].Visible)
		}
	}
}

func TestMergeHomeLayoutDropsUnknownAndKeepsLabels(t *testing.T) {
	shown := true
	got := MergeHomeLayout([]SavedSection{
		{ID: "legacy_widget", Visible: &shown},
		{ID: "hero", Label: "Poids", Visible: &shown},
		{ID: "shortcuts"},
	})
	if len(got) != len(DefaultHomeSections) {
		t.Fatalf("len = %d, want %d", len(got), len(DefaultHomeSections))
	}
	if got[0].Label != "Poids actuel" {
		t.Errorf("hero label = %q, want default label", got[0].Label)
	}
	for _, s := range got {
		if s.ID == "legacy_widget" {
			t.Error("unknown section should be dropped")
		}
	}
	if !got[1].Visible {
		t.Error("section without visible flag should keep default visibility")
	}
}

func TestDefaultHomeSectionsShape(t *testing.T) {
	if len(DefaultHomeSections) < 8 {
		t.Errorf("len(DefaultHomeSections) = %d, want at least 8", len(DefaultHomeSections))
	}
	seen := make(map[string]bool)
	for _, s := range DefaultHomeSections {
		if seen[s.ID] {
			t.Errorf("duplicate section id %s", s.ID)
		}
		seen[s.ID] = true
	}
}
