// ABOUTME: CLI commands for backups and data lifecycle: export, import, reset and stats.
// ABOUTME: Backups are JSON or YAML; import replaces every collection present in the file.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/yoroi/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportFormat string
	importFormat string
	importYes    bool
	resetYes     bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every collection to a backup",
	Long: `Export every collection to a backup file.

FORMATS:

  json   Full backup (default)
  yaml   Same content, human-readable

EXAMPLES:

  yoroi export                       # JSON to stdout
  yoroi export -o backup.json        # Save to file
  yoroi export -o backup.yaml        # Format from the extension
  yoroi export --format yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := exportFormat
		if format == "" {
			format = formatFromPath(exportOutput)
		}

		b, err := repo.ExportAllData(cmd.Context())
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		data, err := storage.EncodeBackup(b, format)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput == "" {
			fmt.Println(string(data))
			return nil
		}
		if err := os.WriteFile(exportOutput, data, 0600); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		color.Green("✓ Exported to %s", exportOutput)
		fmt.Printf("  %d weigh-ins, %d sessions, %d hydration logs, %d moods\n",
			len(b.Measurements), len(b.Workouts), len(b.Hydration), len(b.Moods))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Restore data from a backup",
	Long: `Restore data from a JSON or YAML backup.

Every collection present in the backup replaces the stored one.
Duplicate IDs inside the backup are dropped.

EXAMPLES:

  yoroi import backup.json
  yoroi import backup.yaml --yes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		format := importFormat
		if format == "" {
			format = formatFromPath(filename)
		}
		b, err := storage.DecodeBackup(data, format)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		ok, err := confirm("Replace stored data with "+filename+"?", importYes)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Canceled.")
			return nil
		}

		if err := repo.ImportAllData(cmd.Context(), b); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		color.Green("✓ Imported from %s", filename)
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all stored data",
	RunE: func(cmd *cobra.Command, args []string) error {
		ok, err := confirm("Delete ALL yoroi data? This cannot be undone.", resetYes)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Canceled.")
			return nil
		}

		if err := repo.ResetAllData(cmd.Context()); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
		color.Yellow("✗ All data deleted")
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Totals and streaks",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st := repo.GetStats(ctx)

		fmt.Printf("  Weigh-ins        %d\n", st.TotalMeasurements)
		fmt.Printf("  Sessions         %d\n", st.TotalWorkouts)
		fmt.Printf("  Hydration logs   %d\n", st.TotalHydrationLogs)
		fmt.Printf("  Moods            %d\n", st.TotalMoods)
		fmt.Printf("  Badges           %d\n", st.TotalBadges)
		if st.FirstMeasurementDate != nil {
			fmt.Printf("  First weigh-in   %s\n", *st.FirstMeasurementDate)
		}
		fmt.Printf("  Weigh-in streak  %d days (best)\n", st.WeightStreak)
		fmt.Printf("  Training streak  %d days (best)\n", st.WorkoutStreak)

		if m := repo.GetLatestMeasurement(ctx); m != nil {
			fmt.Printf("  Latest weight    %.1f kg (%s)\n", m.Weight, m.Date)
		}
		return nil
	},
}

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "json or yaml (default from the file extension)")

	importCmd.Flags().StringVarP(&importFormat, "format", "f", "", "json or yaml (default from the file extension)")
	importCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "skip confirmation prompt")

	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "skip confirmation prompt")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
}
