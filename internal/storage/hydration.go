// ABOUTME: Hydration log and hydration settings repositories.
// ABOUTME: Amounts are millilitres; negative amounts are corrections.
package storage

import (
	"context"
	"fmt"

	"github.com/harperreed/yoroi/internal/models"
)

// GetAllHydrationEntries returns every entry in insertion order.
func (s *Store) GetAllHydrationEntries(ctx context.Context) []models.HydrationEntry {
	return loadList[models.HydrationEntry](ctx, s, KeyHydrationLog)
}

// GetHydrationByDate returns the entries logged on date.
func (s *Store) GetHydrationByDate(ctx context.Context, date string) []models.HydrationEntry {
	out := make([]models.HydrationEntry, 0)
	for _, e := range s.GetAllHydrationEntries(ctx) {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out
}

// GetDailyHydrationTotal sums the amounts logged on date.
func (s *Store) GetDailyHydrationTotal(ctx context.Context, date string) int {
	total := 0
	for _, e := range s.GetHydrationByDate(ctx, date) {
		total += e.Amount
	}
	return total
}

// AddHydrationEntry logs amount millilitres on date. An empty date means today.
func (s *Store) AddHydrationEntry(ctx context.Context, amount int, date string) (*models.HydrationEntry, error) {
	if date == "" {
		date = s.today()
	}
	if !models.ValidDate(date) {
		return nil, fmt.Errorf("add hydration entry: %w: %q", ErrInvalidDate, date)
	}
	e := models.NewHydrationEntry(date, amount)
	e.Timestamp = s.now().UTC()

	err := s.mutate(ctx, KeyHydrationLog, func() error {
		entries, err := loadForUpdate[models.HydrationEntry](ctx, s, KeyHydrationLog)
		if err != nil {
			return err
		}
		entries.items = append(entries.items, *e)
		return s.save(ctx, KeyHydrationLog, entries)
	})
	if err != nil {
		return nil, fmt.Errorf("add hydration entry: %w", err)
	}
	return e, nil
}

// DeleteHydrationEntry removes the entry with id. It returns false if none matched.
func (s *Store) DeleteHydrationEntry(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, s, KeyHydrationLog, id, func(e models.HydrationEntry) string { return e.ID })
}

// GetHydrationSettings returns saved settings merged over the defaults.
func (s *Store) GetHydrationSettings(ctx context.Context) models.HydrationSettings {
	settings := models.DefaultHydrationSettings()
	loadObject(ctx, s, KeyHydrationSettings, &settings)
	return settings
}

// SaveHydrationSettings replaces the hydration settings.
func (s *Store) SaveHydrationSettings(ctx context.Context, settings models.HydrationSettings) error {
	return s.mutate(ctx, KeyHydrationSettings, func() error {
		return s.save(ctx, KeyHydrationSettings, settings)
	})
}
