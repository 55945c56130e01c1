// ABOUTME: Aggregate counts and day-streak calculations over stored collections.
// ABOUTME: Streaks count consecutive calendar days; several records on one day count once.
package storage

import (
	"context"
	"sort"

	"github.com/harperreed/yoroi/internal/models"
)

// Stats summarizes stored data.
type Stats struct {
	TotalMeasurements    int     `json:"total_measurements"`
	TotalWorkouts        int     `json:"total_workouts"`
	TotalBadges          int     `json:"total_badges"`
	TotalHydrationLogs   int     `json:"total_hydration_logs"`
	TotalMoods           int     `json:"total_moods"`
	FirstMeasurementDate *string `json:"first_measurement_date"`
	WeightStreak         int     `json:"weight_streak"`
	WorkoutStreak        int     `json:"workout_streak"`
}

// GetStats counts every collection.
func (s *Store) GetStats(ctx context.Context) Stats {
	ms := s.GetAllMeasurements(ctx)
	ws := s.GetAllWorkouts(ctx)
	st := Stats{
		TotalMeasurements:  len(ms),
		TotalWorkouts:      len(ws),
		TotalBadges:        len(s.GetUnlockedBadges(ctx)),
		TotalHydrationLogs: len(s.GetAllHydrationEntries(ctx)),
		TotalMoods:         len(s.GetMoods(ctx, 0)),
		WeightStreak:       LongestStreak(measurementDates(ms)),
		WorkoutStreak:      LongestStreak(workoutDates(ws)),
	}
	if len(ms) > 0 {
		first := ms[len(ms)-1].Date
		st.FirstMeasurementDate = &first
	}
	return st
}

// CalculateWeightStreak returns the longest run of consecutive days with a weigh-in.
func (s *Store) CalculateWeightStreak(ctx context.Context) int {
	return LongestStreak(measurementDates(s.GetAllMeasurements(ctx)))
}

// CalculateWorkoutStreak returns the longest run of consecutive days with a workout.
func (s *Store) CalculateWorkoutStreak(ctx context.Context) int {
	return LongestStreak(workoutDates(s.GetAllWorkouts(ctx)))
}

// LongestStreak returns the longest run of consecutive calendar days in dates.
// Malformed dates are ignored.
func LongestStreak(dates []string) int {
	days := uniqueDays(dates)
	if len(days) == 0 {
		return 0
	}
	best, run := 1, 1
	for i := 1; i < len(days); i++ {
		prev, _ := models.ParseDate(days[i-1])
		if prev.AddDate(0, 0, 1).Format(models.DateLayout) == days[i] {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 1
		}
	}
	return best
}

// CurrentStreak counts consecutive days ending today, or yesterday if today has no entry yet.
func CurrentStreak(dates []string, today string) int {
	have := make(map[string]bool, len(dates))
	for _, d := range uniqueDays(dates) {
		have[d] = true
	}
	day, err := models.ParseDate(today)
	if err != nil {
		return 0
	}
	if !have[today] {
		day = day.AddDate(0, 0, -1)
	}
	n := 0
	for have[day.Format(models.DateLayout)] {
		n++
		day = day.AddDate(0, 0, -1)
	}
	return n
}

func uniqueDays(dates []string) []string {
	seen := make(map[string]bool, len(dates))
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		if seen[d] || !models.ValidDate(d) {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

func measurementDates(ms []models.Measurement) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Date
	}
	return out
}

func workoutDates(ws []models.Workout) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.Date
	}
	return out
}
