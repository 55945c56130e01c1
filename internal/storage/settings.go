// ABOUTME: User settings, body status, home layout, and logo repositories.
// ABOUTME: Settings are created with defaults on first read and updated by shallow merge.
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harperreed/yoroi/internal/models"
	"github.com/tidwall/gjson"
)

// GetUserSettings returns the saved settings. The first read persists the defaults.
func (s *Store) GetUserSettings(ctx context.Context) models.UserSettings {
	settings, saved := s.peekUserSettings(ctx)
	if saved {
		return settings
	}

	_, present, err := s.secure.Get(ctx, KeyUserSettings)
	if err == nil && !present {
		err := s.mutate(ctx, KeyUserSettings, func() error {
			return s.save(ctx, KeyUserSettings, settings)
		})
		if err != nil {
			s.log.Warn("failed to persist default settings", "err", err)
		}
	}
	return settings
}

// peekUserSettings reads the settings without writing. It reports false
// when the defaults were returned.
func (s *Store) peekUserSettings(ctx context.Context) (models.UserSettings, bool) {
	settings := models.DefaultUserSettings()
	if loadObject(ctx, s, KeyUserSettings, &settings) {
		settings.Normalize()
		return settings, true
	}
	return models.DefaultUserSettings(), false
}

// SaveUserSettings shallow-merges patch into the stored settings.
// A nil value removes the key.
func (s *Store) SaveUserSettings(ctx context.Context, patch map[string]any) error {
	err := s.mutate(ctx, KeyUserSettings, func() error {
		merged := make(map[string]json.RawMessage)
		found, err := loadObjectForUpdate(ctx, s, KeyUserSettings, &merged)
		if err != nil {
			return err
		}
		if !found {
			defaults, _ := json.Marshal(models.DefaultUserSettings())
			_ = json.Unmarshal(defaults, &merged)
		}
		for k, v := range patch {
			if v == nil {
				delete(merged, k)
				continue
			}
			data, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("encode %s: %w", k, err)
			}
			merged[k] = data
		}

		data, _ := json.Marshal(merged)
		var check models.UserSettings
		if err := json.Unmarshal(data, &check); err != nil {
			return fmt.Errorf("invalid settings: %w", err)
		}
		check.Normalize()
		if err := check.ValidateUnits(); err != nil {
			return fmt.Errorf("invalid settings: %w", err)
		}
		return s.save(ctx, KeyUserSettings, merged)
	})
	if err != nil {
		return fmt.Errorf("save user settings: %w", err)
	}
	return nil
}

// GetUserBodyStatus returns the per-zone status, empty if none is saved.
func (s *Store) GetUserBodyStatus(ctx context.Context) models.BodyStatus {
	status := make(models.BodyStatus)
	if !loadObject(ctx, s, KeyUserBodyStatus, &status) {
		return make(models.BodyStatus)
	}
	return status
}

// SaveUserBodyStatus replaces the body status.
func (s *Store) SaveUserBodyStatus(ctx context.Context, status models.BodyStatus) error {
	if status == nil {
		status = make(models.BodyStatus)
	}
	err := s.mutate(ctx, KeyUserBodyStatus, func() error {
		return s.save(ctx, KeyUserBodyStatus, status)
	})
	if err != nil {
		return fmt.Errorf("save body status: %w", err)
	}
	return nil
}

// GetHomeLayout returns the saved layout merged onto the default sections.
func (s *Store) GetHomeLayout(ctx context.Context) []models.HomeSection {
	var saved []models.SavedSection
	if res, ok := s.readRaw(ctx, KeyHomeLayout); ok && res.IsArray() {
		res.ForEach(func(_, v gjson.Result) bool {
			var sec models.SavedSection
			if err := json.Unmarshal([]byte(v.Raw), &sec); err == nil {
				saved = append(saved, sec)
			}
			return true
		})
	}
	return models.MergeHomeLayout(saved)
}

// SaveHomeLayout stores sections as given.
func (s *Store) SaveHomeLayout(ctx context.Context, sections []models.HomeSection) error {
	if sections == nil {
		sections = []models.HomeSection{}
	}
	err := s.mutate(ctx, KeyHomeLayout, func() error {
		return s.save(ctx, KeyHomeLayout, sections)
	})
	if err != nil {
		return fmt.Errorf("save home layout: %w", err)
	}
	return nil
}

// SetSectionVisible toggles one home section. It returns false for unknown ids.
func (s *Store) SetSectionVisible(ctx context.Context, id string, visible bool) (bool, error) {
	found := false
	err := s.mutate(ctx, KeyHomeLayout, func() error {
		if _, _, err := s.plain.Get(ctx, KeyHomeLayout); err != nil {
			return fmt.Errorf("read %s: %w", KeyHomeLayout, err)
		}
		layout := s.GetHomeLayout(ctx)
		for i := range layout {
			if layout[i].ID == id {
				layout[i].Visible = visible
				found = true
			}
		}
		if !found {
			return nil
		}
		return s.save(ctx, KeyHomeLayout, layout)
	})
	if err != nil {
		return false, fmt.Errorf("save home layout: %w", err)
	}
	return found, nil
}

// ResetHomeLayout drops the saved layout so the defaults apply.
func (s *Store) ResetHomeLayout(ctx context.Context) error {
	return s.mutate(ctx, KeyHomeLayout, func() error {
		return s.plain.Remove(ctx, KeyHomeLayout)
	})
}

// GetSelectedLogo returns the chosen logo id, or the default.
func (s *Store) GetSelectedLogo(ctx context.Context) string {
	logo, ok, err := s.plain.Get(ctx, KeySelectedLogo)
	if err != nil {
		s.log.Error("failed to read key", "key", KeySelectedLogo, "err", err)
		return models.DefaultLogo
	}
	if !ok || logo == "" {
		return models.DefaultLogo
	}
	return logo
}

// SaveSelectedLogo stores the logo id as a bare string.
func (s *Store) SaveSelectedLogo(ctx context.Context, logo string) error {
	if logo == "" {
		return fmt.Errorf("save selected logo: logo id is required")
	}
	err := s.mutate(ctx, KeySelectedLogo, func() error {
		return s.plain.Set(ctx, KeySelectedLogo, logo)
	})
	if err != nil {
		return fmt.Errorf("save selected logo: %w", err)
	}
	return nil
}
