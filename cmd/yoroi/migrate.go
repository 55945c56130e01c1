// ABOUTME: CLI command for copying all data from one storage backend to another.
// ABOUTME: Exports from the source, closes it, then imports into the target.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/yoroi/internal/config"
	"github.com/harperreed/yoroi/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateFrom   string
	migrateTo     string
	migrateDryRun bool
	migrateSwitch bool
)

var migrateCmd = &cobra.Command{
	Use:         "migrate",
	Short:       "Copy data between storage backends",
	Annotations: withoutStorage(),
	Long: `Copy every collection from one storage backend to another.

Backends: badger, sqlite, charm. Both use the same data directory and
master key, so encrypted collections carry over unchanged.

USAGE:

  yoroi migrate --to sqlite --dry-run     # Preview
  yoroi migrate --to sqlite               # Copy from the current backend
  yoroi migrate --from badger --to charm --switch

--switch saves the target as the configured backend afterwards.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		from := migrateFrom
		if from == "" {
			from = cfg.GetBackend()
		}
		if migrateTo == "" {
			return fmt.Errorf("--to is required")
		}
		if from == migrateTo {
			return fmt.Errorf("source and target are both %s", from)
		}

		src := *cfg
		src.Backend = from
		srcStore, err := src.OpenStorage(logger)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", from, err)
		}
		b, err := srcStore.ExportAllData(ctx)
		if cerr := srcStore.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", from, err)
		}

		printBackupCounts(b)
		if migrateDryRun {
			color.Yellow("Dry run: nothing written to %s", migrateTo)
			return nil
		}

		dst := *cfg
		dst.Backend = migrateTo
		dstStore, err := dst.OpenStorage(logger)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", migrateTo, err)
		}
		err = dstStore.ImportAllData(ctx, b)
		if cerr := dstStore.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", migrateTo, err)
		}
		color.Green("✓ Migrated %s → %s", from, migrateTo)

		if migrateSwitch {
			file, err := config.LoadFile()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			file.Backend = migrateTo
			if err := file.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			color.Green("✓ Backend set to %s", migrateTo)
		}
		return nil
	},
}

func printBackupCounts(b *storage.Backup) {
	fmt.Printf("  Weigh-ins       %d\n", len(b.Measurements))
	fmt.Printf("  Sessions        %d\n", len(b.Workouts))
	fmt.Printf("  Badges          %d\n", len(b.Badges))
	fmt.Printf("  Hydration logs  %d\n", len(b.Hydration))
	fmt.Printf("  Moods           %d\n", len(b.Moods))
	fmt.Printf("  Clubs           %d\n", len(b.Clubs))
	fmt.Printf("  Gear            %d\n", len(b.Gear))
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "", "source backend (default: configured backend)")
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "target backend")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	migrateCmd.Flags().BoolVar(&migrateSwitch, "switch", false, "make the target the configured backend")
	rootCmd.AddCommand(migrateCmd)
}
