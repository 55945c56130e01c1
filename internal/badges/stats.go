// ABOUTME: Derives badge progress statistics from the stored collections.
// ABOUTME: Hours are read in the clock's location so "before 7am" means local time.
package badges

import (
	"context"
	"sort"
	"time"

	"github.com/harperreed/yoroi/internal/models"
	"github.com/harperreed/yoroi/internal/storage"
)

// Source is the read side of the repository the badge engine needs.
type Source interface {
	GetAllMeasurements(ctx context.Context) []models.Measurement
	GetAllWorkouts(ctx context.Context) []models.Workout
	GetAllHydrationEntries(ctx context.Context) []models.HydrationEntry
	GetHydrationSettings(ctx context.Context) models.HydrationSettings
	GetUserSettings(ctx context.Context) models.UserSettings
	GetMoods(ctx context.Context, days int) []models.MoodEntry
}

// Stats feeds every badge predicate.
type Stats struct {
	CurrentStreak           int     `json:"current_streak"`
	MaxStreak               int     `json:"max_streak"`
	TotalMeasurements       int     `json:"total_measurements"`
	WeightLost              float64 `json:"weight_lost"`
	GoalReached             bool    `json:"goal_reached"`
	HalfwayGoalReached      bool    `json:"halfway_goal_reached"`
	TotalWorkouts           int     `json:"total_workouts"`
	EarlyMeasurements       int     `json:"early_measurements"`
	LateWorkouts            int     `json:"late_workouts"`
	MeasurementsWithDetails int     `json:"measurements_with_details"`
	CompleteMeasurements    int     `json:"complete_measurements"`
	HasDoubleSession        bool    `json:"has_double_session"`
	HasTripleSession        bool    `json:"has_triple_session"`
	HasWeekendWarrior       bool    `json:"has_weekend_warrior"`
	HydrationStreak         int     `json:"hydration_streak"`
	DaysUsingApp            int     `json:"days_using_app"`
	IsAnniversary           bool    `json:"is_anniversary"`
}

const (
	earlyHour         = 7
	lateHour          = 21
	hydrationLookback = 365
)

// CalculateStats reads src and computes Stats as of now.
func CalculateStats(ctx context.Context, src Source, now time.Time) Stats {
	ms := src.GetAllMeasurements(ctx)
	ws := src.GetAllWorkouts(ctx)
	settings := src.GetUserSettings(ctx)
	today := models.Today(now)

	dates := make([]string, len(ms))
	for i, m := range ms {
		dates[i] = m.Date
	}

	st := Stats{
		CurrentStreak:     storage.CurrentStreak(dates, today),
		MaxStreak:         storage.LongestStreak(dates),
		TotalMeasurements: len(ms),
		TotalWorkouts:     len(ws),
	}

	byDate := chronological(ms)
	if len(byDate) >= 2 {
		st.WeightLost = max(0, byDate[0].Weight-byDate[len(byDate)-1].Weight)
	}
	if len(byDate) > 0 && settings.WeightGoal != nil {
		st.GoalReached, st.HalfwayGoalReached = goalProgress(byDate, settings)
	}

	loc := now.Location()
	for _, m := range ms {
		if !m.CreatedAt.IsZero() && m.CreatedAt.In(loc).Hour() < earlyHour {
			st.EarlyMeasurements++
		}
		if m.Measurements.Count() > 0 {
			st.MeasurementsWithDetails++
		}
		if m.IsComplete() {
			st.CompleteMeasurements++
		}
	}
	for _, w := range ws {
		if !w.CreatedAt.IsZero() && w.CreatedAt.In(loc).Hour() >= lateHour {
			st.LateWorkouts++
		}
	}

	st.HasDoubleSession, st.HasTripleSession = multipleSessions(ws)
	st.HasWeekendWarrior = weekendWarrior(ws)
	hs := src.GetAllHydrationEntries(ctx)
	st.HydrationStreak = hydrationStreak(hs, src.GetHydrationSettings(ctx).GoalML(), now)

	if first, ok := firstUse(ms, ws, hs, src.GetMoods(ctx, 0)); ok {
		st.DaysUsingApp = int(now.Sub(first).Hours() / 24)
		first = first.In(loc)
		st.IsAnniversary = st.DaysUsingApp >= 365 && first.Month() == now.Month() && first.Day() == now.Day()
	}
	return st
}

// chronological returns ms ordered oldest day first.
func chronological(ms []models.Measurement) []models.Measurement {
	out := append([]models.Measurement(nil), ms...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// goalProgress compares the latest weight to the goal. The halfway mark is
// measured from the profile's start weight, or the first weigh-in.
func goalProgress(byDate []models.Measurement, settings models.UserSettings) (reached, halfway bool) {
	goal := *settings.WeightGoal
	latest := byDate[len(byDate)-1].Weight
	start := byDate[0].Weight
	if settings.StartWeight != nil && *settings.StartWeight > 0 {
		start = *settings.StartWeight
	}

	reached = latest <= goal
	switch {
	case start > goal:
		halfway = start-latest >= (start-goal)*0.5
	case start < goal:
		halfway = latest-start >= (goal-start)*0.5
	}
	return reached, halfway
}

func multipleSessions(ws []models.Workout) (double, triple bool) {
	perDay := make(map[string]int)
	for _, w := range ws {
		perDay[w.Date]++
	}
	for _, n := range perDay {
		if n >= 2 {
			double = true
		}
		if n >= 3 {
			triple = true
		}
	}
	return double, triple
}

// weekendWarrior reports a Saturday and the following Sunday both trained.
func weekendWarrior(ws []models.Workout) bool {
	type weekend struct{ sat, sun bool }
	weeks := make(map[string]*weekend)
	for _, w := range ws {
		d, err := models.ParseDate(w.Date)
		if err != nil {
			continue
		}
		var monday time.Time
		switch d.Weekday() {
		case time.Saturday:
			monday = d.AddDate(0, 0, -5)
		case time.Sunday:
			monday = d.AddDate(0, 0, -6)
		default:
			continue
		}
		key := monday.Format(models.DateLayout)
		wk, ok := weeks[key]
		if !ok {
			wk = &weekend{}
			weeks[key] = wk
		}
		if d.Weekday() == time.Saturday {
			wk.sat = true
		} else {
			wk.sun = true
		}
		if wk.sat && wk.sun {
			return true
		}
	}
	return false
}

// hydrationStreak counts days ending today whose intake met goalML.
func hydrationStreak(entries []models.HydrationEntry, goalML int, now time.Time) int {
	if goalML <= 0 || len(entries) == 0 {
		return 0
	}
	totals := make(map[string]int)
	for _, e := range entries {
		totals[e.Date] += e.Amount
	}
	n := 0
	for i := 0; i < hydrationLookback; i++ {
		if totals[models.DaysAgo(now, i)] < goalML {
			break
		}
		n++
	}
	return n
}

// firstUse returns the earliest creation time across the user's records.
func firstUse(ms []models.Measurement, ws []models.Workout, hs []models.HydrationEntry, moods []models.MoodEntry) (time.Time, bool) {
	var first time.Time
	see := func(t time.Time) {
		if !t.IsZero() && (first.IsZero() || t.Before(first)) {
			first = t
		}
	}
	for _, m := range ms {
		see(m.CreatedAt)
	}
	for _, w := range ws {
		see(w.CreatedAt)
	}
	for _, h := range hs {
		see(h.Timestamp)
	}
	for _, m := range moods {
		see(m.Timestamp)
	}
	return first, !first.IsZero()
}
