// ABOUTME: Workout model for logged training sessions.
// ABOUTME: Workouts are immutable once created; only add and delete are supported.
package models

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar-day format used by every dated record.
const DateLayout = "2006-01-02"

// Workout represents one training session on a calendar day.
type Workout struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// NewWorkout creates a Workout with a generated ID and current timestamp.
func NewWorkout(date, workoutType string) *Workout {
	return &Workout{
		ID:        uuid.NewString(),
		Date:      date,
		Type:      workoutType,
		CreatedAt: time.Now().UTC(),
	}
}

// BackfillID sets id when the record was stored without one.
func (w *Workout) BackfillID(id string) {
	if w.ID == "" {
		w.ID = id
	}
}

// Normalize fills fields missing from records written by older versions.
func (w *Workout) Normalize() {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = dateStart(w.Date)
	}
}

// SortKey returns the value records are ordered by.
func (w Workout) SortKey() string { return w.Date }

// Today returns now's calendar day in local time.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// DaysAgo returns the calendar day n days before now.
func DaysAgo(now time.Time, n int) string {
	return now.AddDate(0, 0, -n).Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD day in local time.
func ParseDate(date string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, date, time.Local)
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD day.
func ValidDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

func dateStart(date string) time.Time {
	t, err := ParseDate(date)
	if err != nil {
		return time.Now().UTC()
	}
	return t.UTC()
}
