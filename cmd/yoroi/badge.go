// ABOUTME: CLI commands for badges and XP.
// ABOUTME: Supports list, check, and unlock subcommands.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/yoroi/internal/badges"
	"github.com/spf13/cobra"
)

var (
	badgeCategory string
	badgeUnlocked bool
)

var badgeCmd = &cobra.Command{
	Use:     "badge",
	Aliases: []string{"b"},
	Short:   "Badges and XP",
	Long: `Badges are earned from streaks, weight progress, training volume,
special sessions and time spent with the app. Each badge is worth XP.

COMMANDS:

  list     Show every badge with progress
  check    Unlock every badge you have earned
  unlock   Unlock one badge by ID`,
}

var badgeListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show badges with progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		progress := badges.AllProgress(cmd.Context(), repo, now())

		faint := color.New(color.Faint)
		var ids []string
		for _, p := range progress {
			if p.Unlocked {
				ids = append(ids, p.Badge.ID)
			}
			if badgeCategory != "" && string(p.Badge.Category) != badgeCategory {
				continue
			}
			if badgeUnlocked && !p.Unlocked {
				continue
			}

			mark := faint.Sprint("·")
			if p.Unlocked {
				mark = color.GreenString("✓")
			}
			fmt.Printf("%s %s %s %s %s\n",
				mark,
				padRight(p.Badge.Name, 24),
				progressBar(p.Percent, 10),
				faint.Sprintf("%3.0f%%", p.Percent),
				faint.Sprintf("%s, %d XP", p.Badge.ID, p.Badge.XP))
		}

		fmt.Printf("\n%d/%d unlocked, %d XP\n", len(ids), len(badges.All), badges.TotalXP(ids))
		return nil
	},
}

var badgeCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Unlock every earned badge",
	RunE: func(cmd *cobra.Command, args []string) error {
		fresh, err := badges.CheckAndUnlock(cmd.Context(), repo, now())
		for _, b := range fresh {
			color.Green("✓ Unlocked %s (+%d XP)", b.Name, b.XP)
			fmt.Printf("  %s\n", color.New(color.Faint).Sprint(b.Description))
		}
		if err != nil {
			return fmt.Errorf("failed to check badges: %w", err)
		}
		if len(fresh) == 0 {
			fmt.Println("No new badges.")
		}
		return nil
	},
}

var badgeUnlockCmd = &cobra.Command{
	Use:   "unlock <id>",
	Short: "Unlock a badge by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, ok := badges.ByID(args[0])
		if !ok {
			return fmt.Errorf("unknown badge: %s", args[0])
		}

		added, err := repo.UnlockBadge(cmd.Context(), b.ID)
		if err != nil {
			return fmt.Errorf("failed to unlock badge: %w", err)
		}
		if !added {
			color.Yellow("%s is already unlocked", b.Name)
			return nil
		}
		color.Green("✓ Unlocked %s (+%d XP)", b.Name, b.XP)
		return nil
	},
}

func progressBar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	filled = max(0, min(width, filled))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func init() {
	badgeListCmd.Flags().StringVarP(&badgeCategory, "category", "c", "", "filter by category (streak, weight, training, special, time)")
	badgeListCmd.Flags().BoolVar(&badgeUnlocked, "unlocked", false, "only unlocked badges")

	badgeCmd.AddCommand(badgeListCmd)
	badgeCmd.AddCommand(badgeCheckCmd)
	badgeCmd.AddCommand(badgeUnlockCmd)
	rootCmd.AddCommand(badgeCmd)
}
