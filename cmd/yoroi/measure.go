// ABOUTME: CLI commands for weigh-ins and body measurements.
// ABOUTME: Supports add, list, update, delete, and latest subcommands.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harperreed/yoroi/internal/models"
	"github.com/harperreed/yoroi/internal/nutrition"
	"github.com/harperreed/yoroi/internal/validation"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	measureDate  string
	measureNotes string
	measureDays  int
	measureLimit int
)

// compositionFlags map flag names to measurement fields.
var compositionFlags = []struct {
	name, usage string
	field       func(*models.Measurement) **float64
}{
	{"body-fat", "body fat %", func(m *models.Measurement) **float64 { return &m.BodyFat }},
	{"muscle", "muscle mass", func(m *models.Measurement) **float64 { return &m.MuscleMass }},
	{"water", "body water %", func(m *models.Measurement) **float64 { return &m.Water }},
	{"bone", "bone mass kg", func(m *models.Measurement) **float64 { return &m.BoneMass }},
	{"visceral", "visceral fat rating", func(m *models.Measurement) **float64 { return &m.VisceralFat }},
	{"metabolic-age", "metabolic age", func(m *models.Measurement) **float64 { return &m.MetabolicAge }},
	{"bmr", "basal metabolic rate kcal", func(m *models.Measurement) **float64 { return &m.BMR }},
}

// girthFlags map flag names to body measurement fields, in cm.
var girthFlags = []struct {
	name  string
	field func(*models.BodyMeasurements) **float64
}{
	{"chest", func(b *models.BodyMeasurements) **float64 { return &b.Chest }},
	{"waist", func(b *models.BodyMeasurements) **float64 { return &b.Waist }},
	{"navel", func(b *models.BodyMeasurements) **float64 { return &b.Navel }},
	{"hips", func(b *models.BodyMeasurements) **float64 { return &b.Hips }},
	{"shoulder", func(b *models.BodyMeasurements) **float64 { return &b.Shoulder }},
	{"left-arm", func(b *models.BodyMeasurements) **float64 { return &b.LeftArm }},
	{"right-arm", func(b *models.BodyMeasurements) **float64 { return &b.RightArm }},
	{"left-thigh", func(b *models.BodyMeasurements) **float64 { return &b.LeftThigh }},
	{"right-thigh", func(b *models.BodyMeasurements) **float64 { return &b.RightThigh }},
}

var measureCmd = &cobra.Command{
	Use:     "measure",
	Aliases: []string{"m"},
	Short:   "Manage weigh-ins",
	Long: `Record weigh-ins with optional body composition and girths.

Values are checked against plausible ranges (weight 20-350 kg, body fat
2-60%, and so on). Notes are stripped of markup. When your height is set
('yoroi settings set height 178') the BMI is filled in automatically.

COMMANDS:

  add      Record a weigh-in
  list     List weigh-ins
  update   Change fields of a weigh-in
  delete   Delete a weigh-in
  latest   Show the most recent weigh-in`,
}

var measureAddCmd = &cobra.Command{
	Use:   "add <weight>",
	Short: "Record a weigh-in",
	Long: `Record a weigh-in in kg.

Examples:
  yoroi measure add 82.5
  yoroi measure add 82.5 --body-fat 18.2 --muscle 38 --water 55
  yoroi measure add 81.9 --waist 84 --hips 98 --chest 104 --date 2026-02-14`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		weight, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid weight: %s", args[0])
		}

		m := models.Measurement{Date: measureDate, Weight: weight}
		if m.Date == "" {
			m.Date = models.Today(now())
		}
		applyMeasureFlags(cmd.Flags(), &m)
		if measureNotes != "" {
			m.WithNotes(measureNotes)
		}

		if err := validation.ValidateMeasurement(&m); err != nil {
			return err
		}
		if m.BMI == nil {
			if s := repo.GetUserSettings(ctx); s.Height != nil {
				if bmi, err := nutrition.CalculateBMI(*s.Height, m.Weight); err == nil {
					m.BMI = &bmi
				}
			}
		}

		saved, err := repo.AddMeasurement(ctx, m)
		if err != nil {
			return fmt.Errorf("failed to add measurement: %w", err)
		}

		color.Green("✓ Added weigh-in")
		printMeasurement(saved)
		return nil
	},
}

var measureListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List weigh-ins",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var ms []models.Measurement
		if measureDays > 0 {
			ms = repo.GetMeasurementsByPeriod(ctx, measureDays)
		} else {
			ms = repo.GetAllMeasurements(ctx)
		}
		if measureLimit > 0 && len(ms) > measureLimit {
			ms = ms[:measureLimit]
		}

		if len(ms) == 0 {
			fmt.Println("No measurements found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, m := range ms {
			extra := ""
			if m.BodyFat != nil {
				extra += fmt.Sprintf("  fat %.1f%%", *m.BodyFat)
			}
			if m.MuscleMass != nil {
				extra += fmt.Sprintf("  muscle %.1f", *m.MuscleMass)
			}
			if m.Notes != nil && *m.Notes != "" {
				extra += faint.Sprintf("  (%s)", truncate(*m.Notes, 30))
			}
			fmt.Printf("%s %s %6.1f kg%s\n", faint.Sprint(shortID(m.ID)), m.Date, m.Weight, extra)
		}
		return nil
	},
}

var measureUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change fields of a weigh-in",
	Long: `Change fields of a weigh-in. Only the flags you pass are updated.

Examples:
  yoroi measure update abc12345 --weight 82.1
  yoroi measure update abc12345 --body-fat 17.9 --notes "after fast"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		flags := cmd.Flags()

		current, err := repo.FindMeasurement(ctx, args[0])
		if err != nil {
			return fmt.Errorf("measurement not found: %w", err)
		}

		updated := *current
		if flags.Changed("date") {
			updated.Date = measureDate
		}
		if flags.Changed("weight") {
			w, _ := flags.GetFloat64("weight")
			updated.Weight = w
		}
		applyMeasureFlags(flags, &updated)
		if flags.Changed("notes") {
			updated.WithNotes(measureNotes)
		}

		if err := validation.ValidateMeasurement(&updated); err != nil {
			return err
		}

		patch := models.MeasurementPatch{
			Date:         &updated.Date,
			Weight:       &updated.Weight,
			BodyFat:      updated.BodyFat,
			MuscleMass:   updated.MuscleMass,
			Water:        updated.Water,
			VisceralFat:  updated.VisceralFat,
			MetabolicAge: updated.MetabolicAge,
			BoneMass:     updated.BoneMass,
			BMR:          updated.BMR,
			BMI:          updated.BMI,
			Measurements: updated.Measurements,
			Notes:        updated.Notes,
		}
		ok, err := repo.UpdateMeasurement(ctx, current.ID, patch)
		if err != nil {
			return fmt.Errorf("failed to update measurement: %w", err)
		}
		if !ok {
			return fmt.Errorf("measurement not found: %s", args[0])
		}

		color.Green("✓ Updated weigh-in")
		printMeasurement(&updated)
		return nil
	},
}

var measureDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a weigh-in",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		m, err := repo.FindMeasurement(ctx, args[0])
		if err != nil {
			return fmt.Errorf("measurement not found: %w", err)
		}
		if _, err := repo.DeleteMeasurement(ctx, m.ID); err != nil {
			return fmt.Errorf("failed to delete measurement: %w", err)
		}

		color.Yellow("✗ Deleted weigh-in")
		fmt.Printf("  %s %s %.1f kg\n", color.New(color.Faint).Sprint(shortID(m.ID)), m.Date, m.Weight)
		return nil
	},
}

var measureLatestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Show the most recent weigh-in",
	RunE: func(cmd *cobra.Command, args []string) error {
		m := repo.GetLatestMeasurement(cmd.Context())
		if m == nil {
			fmt.Println("No measurements found.")
			return nil
		}
		printMeasurement(m)
		return nil
	},
}

func applyMeasureFlags(flags *pflag.FlagSet, m *models.Measurement) {
	for _, f := range compositionFlags {
		if flags.Changed(f.name) {
			v, _ := flags.GetFloat64(f.name)
			*f.field(m) = &v
		}
	}
	for _, f := range girthFlags {
		if !flags.Changed(f.name) {
			continue
		}
		v, _ := flags.GetFloat64(f.name)
		if m.Measurements == nil {
			m.Measurements = &models.BodyMeasurements{}
		} else {
			cp := *m.Measurements
			m.Measurements = &cp
		}
		*f.field(m.Measurements) = &v
	}
}

func printMeasurement(m *models.Measurement) {
	faint := color.New(color.Faint)
	fmt.Printf("  %s %s %.1f kg\n", faint.Sprint(shortID(m.ID)), m.Date, m.Weight)
	if m.BMI != nil {
		fmt.Printf("  BMI %.1f (%s)\n", *m.BMI, nutrition.BMICategory(*m.BMI))
	}
	for _, f := range compositionFlags {
		if v := *f.field(m); v != nil {
			fmt.Printf("  %-14s %.1f\n", f.usage, *v)
		}
	}
	if m.Measurements != nil {
		for _, f := range girthFlags {
			if v := *f.field(m.Measurements); v != nil {
				fmt.Printf("  %-14s %.1f cm\n", f.name, *v)
			}
		}
	}
	if m.Notes != nil && *m.Notes != "" {
		fmt.Printf("  %s\n", faint.Sprint(*m.Notes))
	}
}

func addMeasureFlags(cmd *cobra.Command) {
	for _, f := range compositionFlags {
		cmd.Flags().Float64(f.name, 0, f.usage)
	}
	for _, f := range girthFlags {
		cmd.Flags().Float64(f.name, 0, f.name+" girth in cm")
	}
	cmd.Flags().StringVar(&measureDate, "date", "", "day of the weigh-in (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&measureNotes, "notes", "", "notes for the weigh-in")
}

func init() {
	addMeasureFlags(measureAddCmd)
	addMeasureFlags(measureUpdateCmd)
	measureUpdateCmd.Flags().Float64("weight", 0, "weight in kg")

	measureListCmd.Flags().IntVar(&measureDays, "days", 0, "only the last N days")
	measureListCmd.Flags().IntVarP(&measureLimit, "limit", "n", 20, "max number of results")

	measureCmd.AddCommand(measureAddCmd)
	measureCmd.AddCommand(measureListCmd)
	measureCmd.AddCommand(measureUpdateCmd)
	measureCmd.AddCommand(measureDeleteCmd)
	measureCmd.AddCommand(measureLatestCmd)
	rootCmd.AddCommand(measureCmd)
}
