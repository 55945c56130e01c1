// ABOUTME: Export, import, and reset of every owned key.
// ABOUTME: Backups encode as JSON or YAML; export gathers collections concurrently.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/yoroi/internal/models"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// BackupVersion is written into every export.
const BackupVersion = "1.0.0"

// ErrUnsupportedBackup is returned for backups from an incompatible version.
var ErrUnsupportedBackup = errors.New("unsupported backup version")

// Backup is the full export format.
type Backup struct {
	Version           string                    `json:"version"`
	ExportedAt        time.Time                 `json:"exported_at"`
	Measurements      []models.Measurement      `json:"measurements"`
	Workouts          []models.Workout          `json:"workouts"`
	Settings          models.UserSettings       `json:"settings"`
	Badges            []models.BadgeUnlock      `json:"badges"`
	Hydration         []models.HydrationEntry   `json:"hydration"`
	HydrationSettings *models.HydrationSettings `json:"hydration_settings,omitempty"`
	Moods             []models.MoodEntry        `json:"moods"`
	BodyStatus        models.BodyStatus         `json:"body_status,omitempty"`
	Clubs             []models.Club             `json:"clubs,omitempty"`
	Gear              []models.Gear             `json:"gear,omitempty"`
	HomeLayout        []models.HomeSection      `json:"home_layout,omitempty"`
	SelectedLogo      string                    `json:"selected_logo,omitempty"`
}

// ExportAllData snapshots every collection. It never writes: settings, clubs
// and gear that were never stored are exported as their defaults.
func (s *Store) ExportAllData(ctx context.Context) (*Backup, error) {
	b := &Backup{Version: BackupVersion, ExportedAt: s.now().UTC()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { b.Measurements = s.GetAllMeasurements(gctx); return gctx.Err() })
	g.Go(func() error { b.Workouts = s.GetAllWorkouts(gctx); return gctx.Err() })
	g.Go(func() error { b.Settings, _ = s.peekUserSettings(gctx); return gctx.Err() })
	g.Go(func() error { b.Badges = s.GetUnlockedBadges(gctx); return gctx.Err() })
	g.Go(func() error { b.Hydration = s.GetAllHydrationEntries(gctx); return gctx.Err() })
	g.Go(func() error {
		hs := s.GetHydrationSettings(gctx)
		b.HydrationSettings = &hs
		return gctx.Err()
	})
	g.Go(func() error { b.Moods = s.GetMoods(gctx, 0); return gctx.Err() })
	g.Go(func() error { b.BodyStatus = s.GetUserBodyStatus(gctx); return gctx.Err() })
	g.Go(func() error {
		b.Clubs = peekSeeded[models.Club](gctx, s, KeyUserClubs, s.defaultClubs)
		return gctx.Err()
	})
	g.Go(func() error {
		b.Gear = peekSeeded[models.Gear](gctx, s, KeyUserGear, s.defaultGear)
		return gctx.Err()
	})
	g.Go(func() error { b.HomeLayout = s.GetHomeLayout(gctx); return gctx.Err() })
	g.Go(func() error { b.SelectedLogo = s.GetSelectedLogo(gctx); return gctx.Err() })
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("export data: %w", err)
	}

	s.log.Info("data exported", "measurements", len(b.Measurements), "workouts", len(b.Workouts))
	return b, nil
}

// ImportAllData overwrites every collection present in b.
func (s *Store) ImportAllData(ctx context.Context, b *Backup) error {
	if b == nil {
		return fmt.Errorf("import data: empty backup")
	}
	if !strings.HasPrefix(b.Version, "1.") {
		return fmt.Errorf("import data: %w: %q", ErrUnsupportedBackup, b.Version)
	}

	writes := []keyWrite{
		{KeyMeasurements, orEmpty(dedupeIDs(b.Measurements, func(m *models.Measurement) *string { return &m.ID }))},
		{KeyWorkouts, orEmpty(dedupeIDs(b.Workouts, func(w *models.Workout) *string { return &w.ID }))},
		{KeyUserSettings, b.Settings},
		{KeyUserBadges, orEmpty(dedupeBadges(b.Badges))},
		{KeyHydrationLog, orEmpty(dedupeIDs(b.Hydration, func(e *models.HydrationEntry) *string { return &e.ID }))},
		{KeyMoodLog, orEmpty(dedupeIDs(b.Moods, func(m *models.MoodEntry) *string { return &m.ID }))},
	}
	if b.HydrationSettings != nil {
		writes = append(writes, keyWrite{KeyHydrationSettings, *b.HydrationSettings})
	}
	if b.BodyStatus != nil {
		writes = append(writes, keyWrite{KeyUserBodyStatus, b.BodyStatus})
	}
	if b.Clubs != nil {
		writes = append(writes, keyWrite{KeyUserClubs, dedupeIDs(b.Clubs, func(c *models.Club) *string { return &c.ID })})
	}
	if b.Gear != nil {
		writes = append(writes, keyWrite{KeyUserGear, dedupeIDs(b.Gear, func(g *models.Gear) *string { return &g.ID })})
	}
	if b.HomeLayout != nil {
		writes = append(writes, keyWrite{KeyHomeLayout, b.HomeLayout})
	}

	for _, w := range writes {
		err := s.mutate(ctx, w.key, func() error { return s.save(ctx, w.key, w.value) })
		if err != nil {
			return fmt.Errorf("import data: %w", err)
		}
	}
	if b.SelectedLogo != "" {
		if err := s.SaveSelectedLogo(ctx, b.SelectedLogo); err != nil {
			return fmt.Errorf("import data: %w", err)
		}
	}
	s.log.Info("data imported", "measurements", len(b.Measurements), "workouts", len(b.Workouts))
	return nil
}

// ResetAllData removes every owned key from both stores.
func (s *Store) ResetAllData(ctx context.Context) error {
	var errs []error
	for _, key := range AllKeys {
		err := s.mutate(ctx, key, func() error { return s.backend(key).Remove(ctx, key) })
		if err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", key, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("reset data: %w", err)
	}
	s.log.Info("all data removed")
	return nil
}

// EncodeBackup renders b as "json" or "yaml".
func EncodeBackup(b *Backup, format string) ([]byte, error) {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	switch format {
	case "", "json":
		return data, nil
	case "yaml", "yml":
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return nil, fmt.Errorf("encode backup: %w", err)
		}
		out, err := yaml.Marshal(generic)
		if err != nil {
			return nil, fmt.Errorf("encode backup: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown format: %q (use json or yaml)", format)
	}
}

// DecodeBackup parses a JSON or YAML backup.
func DecodeBackup(data []byte, format string) (*Backup, error) {
	switch format {
	case "", "json":
	case "yaml", "yml":
		var generic any
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return nil, fmt.Errorf("decode backup: %w", err)
		}
		converted, err := json.Marshal(generic)
		if err != nil {
			return nil, fmt.Errorf("decode backup: %w", err)
		}
		data = converted
	default:
		return nil, fmt.Errorf("unknown format: %q (use json or yaml)", format)
	}

	var b Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("decode backup: %w", err)
	}
	return &b, nil
}

type keyWrite struct {
	key   string
	value any
}

func dedupeIDs[T any](items []T, id func(*T) *string) []T {
	seen := make(map[string]bool, len(items))
	for i := range items {
		p := id(&items[i])
		if *p == "" || seen[*p] {
			*p = uuid.NewString()
		}
		seen[*p] = true
	}
	return items
}

func dedupeBadges(badges []models.BadgeUnlock) []models.BadgeUnlock {
	seen := make(map[string]bool, len(badges))
	out := make([]models.BadgeUnlock, 0, len(badges))
	for _, b := range badges {
		if b.BadgeID == "" || seen[b.BadgeID] {
			continue
		}
		seen[b.BadgeID] = true
		out = append(out, b)
	}
	return out
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
