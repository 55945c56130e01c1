// ABOUTME: CLI commands for managing training sessions.
// ABOUTME: Supports add, list, delete, and clear subcommands.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/yoroi/internal/models"
	"github.com/spf13/cobra"
)

var (
	workoutDate  string
	workoutType  string
	workoutDays  int
	workoutMonth string
	workoutLimit int
	workoutYes   bool
)

var workoutCmd = &cobra.Command{
	Use:     "workout",
	Aliases: []string{"w"},
	Short:   "Manage training sessions",
	Long: `Track training sessions by day and type.

The type is freeform. Common ones: jjb, musculation, running, basic_fit,
boxe, mma, yoga. Several sessions on the same day count once for streaks
but unlock the double and triple session badges.

COMMANDS:

  add      Log a session
  list     List recent sessions
  delete   Delete a session by ID prefix
  clear    Delete every session`,
}

var workoutAddCmd = &cobra.Command{
	Use:   "add <type>",
	Short: "Log a training session",
	Long: `Log a training session.

Examples:
  yoroi workout add jjb
  yoroi workout add running --date 2026-02-14`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := repo.AddWorkout(cmd.Context(), workoutDate, args[0])
		if err != nil {
			return fmt.Errorf("failed to add workout: %w", err)
		}

		color.Green("✓ Added %s session", w.Type)
		fmt.Printf("  %s %s\n", color.New(color.Faint).Sprint(shortID(w.ID)), w.Date)
		return nil
	},
}

var workoutListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List training sessions",
	Long: `List training sessions, newest first.

Examples:
  yoroi workout list
  yoroi workout list --type jjb --days 30
  yoroi workout list --month 2026-02`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var workouts []models.Workout
		switch {
		case workoutMonth != "":
			m, err := time.Parse("2006-01", workoutMonth)
			if err != nil {
				return fmt.Errorf("invalid month: %s (use YYYY-MM)", workoutMonth)
			}
			workouts = repo.GetWorkoutsByMonth(ctx, m.Year(), m.Month())
		case workoutDays > 0:
			workouts = repo.GetWorkoutsByPeriod(ctx, workoutDays)
		default:
			workouts = repo.GetAllWorkouts(ctx)
		}

		faint := color.New(color.Faint)
		shown := 0
		for _, w := range workouts {
			if workoutType != "" && w.Type != workoutType {
				continue
			}
			if workoutLimit > 0 && shown == workoutLimit {
				break
			}
			fmt.Printf("%s %s %s\n",
				faint.Sprint(shortID(w.ID)),
				w.Date,
				padRight(w.Type, 12))
			shown++
		}

		if shown == 0 {
			fmt.Println("No workouts found.")
		}
		return nil
	},
}

var workoutDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a training session",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		w, err := repo.FindWorkout(ctx, args[0])
		if err != nil {
			return fmt.Errorf("workout not found: %w", err)
		}
		if _, err := repo.DeleteWorkout(ctx, w.ID); err != nil {
			return fmt.Errorf("failed to delete workout: %w", err)
		}

		color.Yellow("✗ Deleted %s session", w.Type)
		fmt.Printf("  %s %s\n", color.New(color.Faint).Sprint(shortID(w.ID)), w.Date)
		return nil
	},
}

var workoutClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every training session",
	RunE: func(cmd *cobra.Command, args []string) error {
		ok, err := confirm("Delete ALL training sessions?", workoutYes)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Canceled.")
			return nil
		}

		if err := repo.DeleteAllWorkouts(cmd.Context()); err != nil {
			return fmt.Errorf("failed to clear workouts: %w", err)
		}
		color.Yellow("✗ All training sessions deleted")
		return nil
	},
}

func init() {
	workoutAddCmd.Flags().StringVar(&workoutDate, "date", "", "day of the session (YYYY-MM-DD, default today)")

	workoutListCmd.Flags().StringVarP(&workoutType, "type", "t", "", "filter by workout type")
	workoutListCmd.Flags().IntVar(&workoutDays, "days", 0, "only the last N days")
	workoutListCmd.Flags().StringVar(&workoutMonth, "month", "", "only one month (YYYY-MM)")
	workoutListCmd.Flags().IntVarP(&workoutLimit, "limit", "n", 20, "max number of results")

	workoutClearCmd.Flags().BoolVarP(&workoutYes, "yes", "y", false, "skip confirmation prompt")

	workoutCmd.AddCommand(workoutAddCmd)
	workoutCmd.AddCommand(workoutListCmd)
	workoutCmd.AddCommand(workoutDeleteCmd)
	workoutCmd.AddCommand(workoutClearCmd)
	rootCmd.AddCommand(workoutCmd)
}
