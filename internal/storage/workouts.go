// ABOUTME: Workout repository over the @yoroi_workouts collection.
// ABOUTME: Workouts are added and deleted, never edited.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/yoroi/internal/models"
)

// GetAllWorkouts returns every workout, newest day first.
func (s *Store) GetAllWorkouts(ctx context.Context) []models.Workout {
	workouts := loadList[models.Workout](ctx, s, KeyWorkouts)
	sortNewestFirst(workouts, func(w models.Workout) time.Time { return w.CreatedAt })
	return workouts
}

// GetWorkoutsByPeriod returns workouts dated within the last days days.
func (s *Store) GetWorkoutsByPeriod(ctx context.Context, days int) []models.Workout {
	cutoff := models.DaysAgo(s.now(), days)
	out := make([]models.Workout, 0)
	for _, w := range s.GetAllWorkouts(ctx) {
		if w.Date >= cutoff {
			out = append(out, w)
		}
	}
	return out
}

// GetWorkoutsByMonth returns workouts in the given calendar month.
func (s *Store) GetWorkoutsByMonth(ctx context.Context, year int, month time.Month) []models.Workout {
	prefix := fmt.Sprintf("%04d-%02d-", year, int(month))
	out := make([]models.Workout, 0)
	for _, w := range s.GetAllWorkouts(ctx) {
		if strings.HasPrefix(w.Date, prefix) {
			out = append(out, w)
		}
	}
	return out
}

// HasWorkoutOnDate reports whether any workout is logged on date.
func (s *Store) HasWorkoutOnDate(ctx context.Context, date string) bool {
	for _, w := range loadList[models.Workout](ctx, s, KeyWorkouts) {
		if w.Date == date {
			return true
		}
	}
	return false
}

// AddWorkout appends a workout. An empty date means today.
func (s *Store) AddWorkout(ctx context.Context, date, workoutType string) (*models.Workout, error) {
	if date == "" {
		date = s.today()
	}
	if !models.ValidDate(date) {
		return nil, fmt.Errorf("add workout: %w: %q", ErrInvalidDate, date)
	}
	if strings.TrimSpace(workoutType) == "" {
		return nil, fmt.Errorf("add workout: type is required")
	}

	w := models.NewWorkout(date, workoutType)
	err := s.mutate(ctx, KeyWorkouts, func() error {
		workouts, err := loadForUpdate[models.Workout](ctx, s, KeyWorkouts)
		if err != nil {
			return err
		}
		workouts.items = append(workouts.items, *w)
		return s.save(ctx, KeyWorkouts, workouts)
	})
	if err != nil {
		return nil, fmt.Errorf("add workout: %w", err)
	}
	s.log.Debug("workout added", "id", w.ID, "type", w.Type)
	return w, nil
}

// FindWorkout resolves a full ID or unique ID prefix.
func (s *Store) FindWorkout(ctx context.Context, idOrPrefix string) (*models.Workout, error) {
	workouts := loadList[models.Workout](ctx, s, KeyWorkouts)
	ids := make([]string, len(workouts))
	for i, w := range workouts {
		ids[i] = w.ID
	}
	id, err := resolvePrefix(ids, idOrPrefix)
	if err != nil {
		return nil, err
	}
	for i := range workouts {
		if workouts[i].ID == id {
			return &workouts[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
}

// DeleteWorkout removes the workout with id. It returns false if none matched.
func (s *Store) DeleteWorkout(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, s, KeyWorkouts, id, func(w models.Workout) string { return w.ID })
}

// DeleteAllWorkouts clears the collection.
func (s *Store) DeleteAllWorkouts(ctx context.Context) error {
	return s.mutate(ctx, KeyWorkouts, func() error {
		return s.save(ctx, KeyWorkouts, []models.Workout{})
	})
}

// deleteByID removes the first element whose id matches and writes the collection back.
func deleteByID[T any, PT normalizer[T]](ctx context.Context, s *Store, key, id string, idOf func(T) string) (bool, error) {
	found := false
	err := s.mutate(ctx, key, func() error {
		c, err := loadForUpdate[T, PT](ctx, s, key)
		if err != nil {
			return err
		}
		kept := make([]T, 0, len(c.items))
		for _, item := range c.items {
			if !found && idOf(item) == id {
				found = true
				continue
			}
			kept = append(kept, item)
		}
		if !found {
			return nil
		}
		c.items = kept
		return s.save(ctx, key, c)
	})
	if err != nil {
		return false, err
	}
	return found, nil
}
