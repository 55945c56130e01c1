// ABOUTME: Measurement repository over the secure @yoroi_measurements collection.
// ABOUTME: Supports partial updates through models.MeasurementPatch.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/yoroi/internal/models"
)

// GetAllMeasurements returns every measurement, newest day first.
func (s *Store) GetAllMeasurements(ctx context.Context) []models.Measurement {
	ms := loadList[models.Measurement](ctx, s, KeyMeasurements)
	sortNewestFirst(ms, func(m models.Measurement) time.Time { return m.CreatedAt })
	return ms
}

// GetLatestMeasurement returns the newest measurement, or nil when there is none.
func (s *Store) GetLatestMeasurement(ctx context.Context) *models.Measurement {
	ms := s.GetAllMeasurements(ctx)
	if len(ms) == 0 {
		return nil
	}
	return &ms[0]
}

// GetMeasurementsByPeriod returns measurements dated within the last days days.
func (s *Store) GetMeasurementsByPeriod(ctx context.Context, days int) []models.Measurement {
	cutoff := models.DaysAgo(s.now(), days)
	out := make([]models.Measurement, 0)
	for _, m := range s.GetAllMeasurements(ctx) {
		if m.Date >= cutoff {
			out = append(out, m)
		}
	}
	return out
}

// AddMeasurement stores a copy of m with a fresh ID and creation time.
func (s *Store) AddMeasurement(ctx context.Context, m models.Measurement) (*models.Measurement, error) {
	if m.Date == "" {
		m.Date = s.today()
	}
	if !models.ValidDate(m.Date) {
		return nil, fmt.Errorf("add measurement: %w: %q", ErrInvalidDate, m.Date)
	}
	m.ID = uuid.NewString()
	m.CreatedAt = s.now().UTC()

	err := s.mutate(ctx, KeyMeasurements, func() error {
		ms, err := loadForUpdate[models.Measurement](ctx, s, KeyMeasurements)
		if err != nil {
			return err
		}
		ms.items = append(ms.items, m)
		return s.save(ctx, KeyMeasurements, ms)
	})
	if err != nil {
		return nil, fmt.Errorf("add measurement: %w", err)
	}
	s.log.Debug("measurement added", "id", m.ID)
	return &m, nil
}

// UpdateMeasurement merges patch into the measurement with id.
// It returns false if no measurement matched.
func (s *Store) UpdateMeasurement(ctx context.Context, id string, patch models.MeasurementPatch) (bool, error) {
	if patch.Date != nil && !models.ValidDate(*patch.Date) {
		return false, fmt.Errorf("update measurement: %w: %q", ErrInvalidDate, *patch.Date)
	}
	found := false
	err := s.mutate(ctx, KeyMeasurements, func() error {
		ms, err := loadForUpdate[models.Measurement](ctx, s, KeyMeasurements)
		if err != nil {
			return err
		}
		for i := range ms.items {
			if ms.items[i].ID == id {
				patch.Apply(&ms.items[i])
				found = true
				break
			}
		}
		if !found {
			return nil
		}
		return s.save(ctx, KeyMeasurements, ms)
	})
	if err != nil {
		return false, fmt.Errorf("update measurement: %w", err)
	}
	return found, nil
}

// FindMeasurement resolves a full ID or unique ID prefix.
func (s *Store) FindMeasurement(ctx context.Context, idOrPrefix string) (*models.Measurement, error) {
	ms := loadList[models.Measurement](ctx, s, KeyMeasurements)
	ids := make([]string, len(ms))
	for i, m := range ms {
		ids[i] = m.ID
	}
	id, err := resolvePrefix(ids, idOrPrefix)
	if err != nil {
		return nil, err
	}
	for i := range ms {
		if ms[i].ID == id {
			return &ms[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
}

// DeleteMeasurement removes the measurement with id. It returns false if none matched.
func (s *Store) DeleteMeasurement(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, s, KeyMeasurements, id, func(m models.Measurement) string { return m.ID })
}

// DeleteAllMeasurements clears the collection.
func (s *Store) DeleteAllMeasurements(ctx context.Context) error {
	return s.mutate(ctx, KeyMeasurements, func() error {
		return s.save(ctx, KeyMeasurements, []models.Measurement{})
	})
}
