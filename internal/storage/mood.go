// ABOUTME: Mood log repository over the secure @yoroi_mood_log collection.
// ABOUTME: Entries are append-only.
package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/yoroi/internal/models"
)

// MoodInput is the caller-supplied part of a mood entry.
type MoodInput struct {
	Date   string `json:"date,omitempty"`
	Mood   string `json:"mood"`
	Energy int    `json:"energy"`
}

// SaveMood appends a mood entry. An empty date means today.
func (s *Store) SaveMood(ctx context.Context, in MoodInput) (*models.MoodEntry, error) {
	if in.Date == "" {
		in.Date = s.today()
	}
	if !models.ValidDate(in.Date) {
		return nil, fmt.Errorf("save mood: %w: %q", ErrInvalidDate, in.Date)
	}
	if !models.IsValidMood(in.Mood) {
		return nil, fmt.Errorf("save mood: unknown mood %q", in.Mood)
	}
	if in.Energy < 1 || in.Energy > 5 {
		return nil, fmt.Errorf("save mood: energy must be between 1 and 5, got %d", in.Energy)
	}

	entry := models.MoodEntry{
		ID:        uuid.NewString(),
		Date:      in.Date,
		Mood:      in.Mood,
		Energy:    in.Energy,
		Timestamp: s.now().UTC(),
	}
	err := s.mutate(ctx, KeyMoodLog, func() error {
		moods, err := loadForUpdate[models.MoodEntry](ctx, s, KeyMoodLog)
		if err != nil {
			return err
		}
		moods.items = append(moods.items, entry)
		return s.save(ctx, KeyMoodLog, moods)
	})
	if err != nil {
		return nil, fmt.Errorf("save mood: %w", err)
	}
	return &entry, nil
}

// GetMoods returns entries from the last days days, or all entries when days <= 0.
func (s *Store) GetMoods(ctx context.Context, days int) []models.MoodEntry {
	moods := loadList[models.MoodEntry](ctx, s, KeyMoodLog)
	if days <= 0 {
		return moods
	}
	cutoff := models.DaysAgo(s.now(), days)
	out := make([]models.MoodEntry, 0)
	for _, m := range moods {
		if m.Date >= cutoff {
			out = append(out, m)
		}
	}
	return out
}

// GetTodayMood returns the latest entry for today, or nil.
func (s *Store) GetTodayMood(ctx context.Context) *models.MoodEntry {
	today := s.today()
	var latest *models.MoodEntry
	moods := loadList[models.MoodEntry](ctx, s, KeyMoodLog)
	for i := range moods {
		if moods[i].Date != today {
			continue
		}
		if latest == nil || !moods[i].Timestamp.Before(latest.Timestamp) {
			latest = &moods[i]
		}
	}
	return latest
}
