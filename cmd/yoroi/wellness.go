// ABOUTME: CLI commands for hydration and mood logs.
// ABOUTME: water add|list|delete|recommend|settings and mood add|list|today.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/yoroi/internal/models"
	"github.com/harperreed/yoroi/internal/nutrition"
	"github.com/harperreed/yoroi/internal/storage"
	"github.com/harperreed/yoroi/internal/validation"
	"github.com/spf13/cobra"
)

var (
	waterDate    string
	waterWeight  float64
	waterCorrect bool
	moodDate    string
	moodDays    int
)

var waterCmd = &cobra.Command{
	Use:   "water",
	Short: "Hydration log",
	Long: `Log water intake and compare it with your daily goal.

COMMANDS:

  add        Log an amount in ml
  list       Show a day's entries and total
  delete     Delete an entry
  recommend  Suggested daily intake from body weight
  settings   Show or change the daily goal and reminders`,
}

var waterAddCmd = &cobra.Command{
	Use:   "add <ml>",
	Short: "Log water intake",
	Long: `Log water intake in whole millilitres (50-2000 per entry).

A correction entry subtracts from the day's total: pass --correct, or a
negative amount after "--".

Examples:
  yoroi water add 500
  yoroi water add 250 --date 2026-02-14
  yoroi water add 250 --correct
  yoroi water add -- -250`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		r := validation.ValidateHydrationAmount(args[0])
		if !r.Valid {
			return fmt.Errorf("invalid amount: %s", r.Error)
		}
		amount := r.Value.(int)
		if waterCorrect && amount > 0 {
			amount = -amount
		}

		e, err := repo.AddHydrationEntry(ctx, amount, waterDate)
		if err != nil {
			return fmt.Errorf("failed to add hydration: %w", err)
		}

		total := repo.GetDailyHydrationTotal(ctx, e.Date)
		goal := repo.GetHydrationSettings(ctx).GoalML()
		if e.Amount < 0 {
			color.Yellow("✓ Corrected %d ml", e.Amount)
		} else {
			color.Green("✓ Added %d ml", e.Amount)
		}
		fmt.Printf("  %s %s %d/%d ml\n", color.New(color.Faint).Sprint(shortID(e.ID)), e.Date, total, goal)
		return nil
	},
}

var waterListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show a day's hydration",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		date := waterDate
		if date == "" {
			date = models.Today(now())
		}
		entries := repo.GetHydrationByDate(ctx, date)
		faint := color.New(color.Faint)
		for _, e := range entries {
			fmt.Printf("%s %s %5d ml\n", faint.Sprint(shortID(e.ID)), e.Timestamp.Local().Format("15:04"), e.Amount)
		}

		total := repo.GetDailyHydrationTotal(ctx, date)
		goal := repo.GetHydrationSettings(ctx).GoalML()
		pct := 0.0
		if goal > 0 {
			pct = min(100, float64(total)*100/float64(goal))
		}
		fmt.Printf("%s %s %d/%d ml\n", date, progressBar(pct, 20), total, goal)
		return nil
	},
}

var waterDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a hydration entry",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		entries := repo.GetAllHydrationEntries(ctx)
		i, err := matchID(len(entries), func(i int) string { return entries[i].ID }, args[0])
		if err != nil {
			return fmt.Errorf("hydration entry %w", err)
		}
		e := entries[i]
		if _, err := repo.DeleteHydrationEntry(ctx, e.ID); err != nil {
			return fmt.Errorf("failed to delete hydration entry: %w", err)
		}
		color.Yellow("✗ Deleted %d ml from %s", e.Amount, e.Date)
		return nil
	},
}

var waterRecommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Suggested daily intake",
	RunE: func(cmd *cobra.Command, args []string) error {
		weight := waterWeight
		if weight <= 0 {
			m := repo.GetLatestMeasurement(cmd.Context())
			if m == nil {
				return fmt.Errorf("no weigh-in recorded: pass --weight")
			}
			weight = m.Weight
		}
		fmt.Printf("%.1f L per day for %.1f kg\n", nutrition.CalculateRecommendedHydration(weight), weight)
		return nil
	},
}

var waterSettingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change hydration settings",
	Long: `Show or change hydration settings. Without flags, prints the current values.

Examples:
  yoroi water settings
  yoroi water settings --goal 3
  yoroi water settings --custom-ml 2800 --reminders --interval 90`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		flags := cmd.Flags()
		s := repo.GetHydrationSettings(ctx)

		changed := false
		if flags.Changed("goal") {
			g, _ := flags.GetFloat64("goal")
			if r := validation.Validate("dailyGoal", g); !r.Valid {
				return fmt.Errorf("invalid goal: %s", r.Error)
			}
			s.DailyGoal = g
			s.CustomGoal = nil
			changed = true
		}
		if flags.Changed("custom-ml") {
			ml, _ := flags.GetInt("custom-ml")
			if ml <= 0 {
				s.CustomGoal = nil
			} else {
				s.CustomGoal = &ml
			}
			changed = true
		}
		if flags.Changed("reminders") {
			s.ReminderEnabled, _ = flags.GetBool("reminders")
			changed = true
		}
		if flags.Changed("interval") {
			s.ReminderInterval, _ = flags.GetInt("interval")
			changed = true
		}
		if flags.Changed("training-bonus") {
			s.TrainingDayBonus, _ = flags.GetFloat64("training-bonus")
			changed = true
		}

		if changed {
			if err := repo.SaveHydrationSettings(ctx, s); err != nil {
				return fmt.Errorf("failed to save hydration settings: %w", err)
			}
			color.Green("✓ Saved hydration settings")
		}

		fmt.Printf("  Daily goal:      %d ml\n", s.GoalML())
		fmt.Printf("  Reminders:       %t (every %d min)\n", s.ReminderEnabled, s.ReminderInterval)
		fmt.Printf("  Training bonus:  %.1f L\n", s.TrainingDayBonus)
		return nil
	},
}

var moodCmd = &cobra.Command{
	Use:   "mood",
	Short: "Mood and energy log",
	Long: `Record how you feel and how much energy you have.

Moods: ` + strings.Join(models.AllMoods, ", ") + `
Energy: 1 (exhausted) to 5 (full of energy)`,
}

var moodAddCmd = &cobra.Command{
	Use:   "add <mood> <energy>",
	Short: "Record a mood",
	Long: `Record a mood and energy level.

Examples:
  yoroi mood add happy 4
  yoroi mood add tired 2 --date 2026-02-14`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		energy, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid energy: %s", args[1])
		}

		e, err := repo.SaveMood(cmd.Context(), storage.MoodInput{Date: moodDate, Mood: args[0], Energy: energy})
		if err != nil {
			return fmt.Errorf("failed to save mood: %w", err)
		}
		color.Green("✓ Saved mood %s", e.Mood)
		fmt.Printf("  %s energy %d/5\n", e.Date, e.Energy)
		return nil
	},
}

var moodListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recent moods",
	RunE: func(cmd *cobra.Command, args []string) error {
		moods := repo.GetMoods(cmd.Context(), moodDays)
		if len(moods) == 0 {
			fmt.Println("No moods found.")
			return nil
		}
		for _, m := range moods {
			fmt.Printf("%s %s %s\n", m.Date, padRight(m.Mood, 10), strings.Repeat("●", m.Energy))
		}
		return nil
	},
}

var moodTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's mood",
	RunE: func(cmd *cobra.Command, args []string) error {
		m := repo.GetTodayMood(cmd.Context())
		if m == nil {
			fmt.Println("No mood recorded today.")
			return nil
		}
		fmt.Printf("%s, energy %d/5\n", m.Mood, m.Energy)
		return nil
	},
}

func init() {
	waterAddCmd.Flags().StringVar(&waterDate, "date", "", "day (YYYY-MM-DD, default today)")
	waterAddCmd.Flags().BoolVar(&waterCorrect, "correct", false, "log the amount as a correction (subtracted)")
	waterListCmd.Flags().StringVar(&waterDate, "date", "", "day (YYYY-MM-DD, default today)")
	waterRecommendCmd.Flags().Float64Var(&waterWeight, "weight", 0, "body weight in kg (default latest weigh-in)")
	waterSettingsCmd.Flags().Float64("goal", 0, "daily goal in litres")
	waterSettingsCmd.Flags().Int("custom-ml", 0, "exact daily goal in ml (0 clears)")
	waterSettingsCmd.Flags().Bool("reminders", false, "enable reminders")
	waterSettingsCmd.Flags().Int("interval", 0, "reminder interval in minutes")
	waterSettingsCmd.Flags().Float64("training-bonus", 0, "extra litres on training days")

	waterCmd.AddCommand(waterAddCmd)
	waterCmd.AddCommand(waterListCmd)
	waterCmd.AddCommand(waterDeleteCmd)
	waterCmd.AddCommand(waterRecommendCmd)
	waterCmd.AddCommand(waterSettingsCmd)
	rootCmd.AddCommand(waterCmd)

	moodAddCmd.Flags().StringVar(&moodDate, "date", "", "day (YYYY-MM-DD, default today)")
	moodListCmd.Flags().IntVar(&moodDays, "days", 7, "only the last N days (0 for all)")

	moodCmd.AddCommand(moodAddCmd)
	moodCmd.AddCommand(moodListCmd)
	moodCmd.AddCommand(moodTodayCmd)
	rootCmd.AddCommand(moodCmd)
}
