// ABOUTME: Badge unlock, hydration, and mood records.
// ABOUTME: Hydration amounts are integer millilitres and may be negative for corrections.
package models

import (
	"time"

	"github.com/google/uuid"
)

// BadgeUnlock records when a badge was earned. BadgeID is the natural key.
type BadgeUnlock struct {
	BadgeID    string    `json:"badge_id"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

// HydrationEntry is one drink (or correction) logged on a day.
type HydrationEntry struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Amount    int       `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

// NewHydrationEntry creates an entry with a generated ID.
func NewHydrationEntry(date string, amount int) *HydrationEntry {
	return &HydrationEntry{
		ID:        uuid.NewString(),
		Date:      date,
		Amount:    amount,
		Timestamp: time.Now().UTC(),
	}
}

// BackfillID sets id when the record was stored without one.
func (h *HydrationEntry) BackfillID(id string) {
	if h.ID == "" {
		h.ID = id
	}
}

// Normalize fills fields missing from records written by older versions.
func (h *HydrationEntry) Normalize() {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	if h.Timestamp.IsZero() {
		h.Timestamp = dateStart(h.Date)
	}
}

// HydrationSettings configures the daily water goal.
type HydrationSettings struct {
	DailyGoal        float64 `json:"dailyGoal"`
	CustomGoal       *int    `json:"customGoal,omitempty"`
	ReminderEnabled  bool    `json:"reminderEnabled"`
	ReminderInterval int     `json:"reminderInterval"`
	TrainingDayBonus float64 `json:"trainingDayBonus"`
}

// DefaultHydrationSettings returns the settings used before the user saves any.
func DefaultHydrationSettings() HydrationSettings {
	return HydrationSettings{
		DailyGoal:        2.5,
		ReminderEnabled:  false,
		ReminderInterval: 120,
		TrainingDayBonus: 0.5,
	}
}

// GoalML returns the daily goal in millilitres. CustomGoal wins when set.
func (s HydrationSettings) GoalML() int {
	if s.CustomGoal != nil && *s.CustomGoal > 0 {
		return *s.CustomGoal
	}
	return int(s.DailyGoal*1000 + 0.5)
}

// Mood values accepted by SaveMood.
const (
	MoodHappy     = "happy"
	MoodEnergetic = "energetic"
	MoodCalm      = "calm"
	MoodNeutral   = "neutral"
	MoodTired     = "tired"
	MoodStressed  = "stressed"
	MoodSad       = "sad"
)

// AllMoods lists the known mood values.
var AllMoods = []string{MoodHappy, MoodEnergetic, MoodCalm, MoodNeutral, MoodTired, MoodStressed, MoodSad}

// IsValidMood reports whether m is a known mood.
func IsValidMood(m string) bool {
	for _, v := range AllMoods {
		if v == m {
			return true
		}
	}
	return false
}

// MoodEntry is a daily mood check-in. Energy is 1 to 5.
type MoodEntry struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Mood      string    `json:"mood"`
	Energy    int       `json:"energy"`
	Timestamp time.Time `json:"timestamp"`
}

// BackfillID sets id when the record was stored without one.
func (m *MoodEntry) BackfillID(id string) {
	if m.ID == "" {
		m.ID = id
	}
}

// Normalize fills fields missing from records written by older versions.
func (m *MoodEntry) Normalize() {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = dateStart(m.Date)
	}
}

// Normalize backfills the unlock time for old records.
func (b *BadgeUnlock) Normalize() {
	if b.UnlockedAt.IsZero() {
		b.UnlockedAt = time.Unix(0, 0).UTC()
	}
}
