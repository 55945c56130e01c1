// ABOUTME: CLI commands for clubs and training gear.
// ABOUTME: Both lists are seeded with defaults the first time they are read.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/yoroi/internal/models"
	"github.com/spf13/cobra"
)

var (
	clubType     string
	clubColor    string
	clubSessions int
	gearType     string
	gearBrand    string
	gearBought   string
)

var clubCmd = &cobra.Command{
	Use:   "club",
	Short: "Gyms, academies and training groups",
}

var clubListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List clubs",
	RunE: func(cmd *cobra.Command, args []string) error {
		faint := color.New(color.Faint)
		for _, c := range repo.GetUserClubs(cmd.Context()) {
			extra := ""
			if c.SessionsPerWeek != nil {
				extra = fmt.Sprintf("  %d/week", *c.SessionsPerWeek)
			}
			fmt.Printf("%s %s %s%s\n", faint.Sprint(shortID(c.ID)), padRight(c.Name, 20), faint.Sprint(c.Type), extra)
		}
		return nil
	},
}

var clubAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a club",
	Long: `Add a club.

Examples:
  yoroi club add "Gracie Barra Lyon" --type gracie_barra --sessions 3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := models.Club{Name: args[0], Type: clubType, Color: clubColor}
		if clubSessions > 0 {
			n := clubSessions
			c.SessionsPerWeek = &n
		}

		saved, err := repo.AddClub(cmd.Context(), c)
		if err != nil {
			return fmt.Errorf("failed to add club: %w", err)
		}
		color.Green("✓ Added club %s", saved.Name)
		fmt.Printf("  %s\n", color.New(color.Faint).Sprint(shortID(saved.ID)))
		return nil
	},
}

var clubDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a club",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		clubs := repo.GetUserClubs(ctx)
		i, err := matchID(len(clubs), func(i int) string { return clubs[i].ID }, args[0])
		if err != nil {
			return fmt.Errorf("club %w", err)
		}
		if _, err := repo.DeleteClub(ctx, clubs[i].ID); err != nil {
			return fmt.Errorf("failed to delete club: %w", err)
		}
		color.Yellow("✗ Deleted club %s", clubs[i].Name)
		return nil
	},
}

var gearCmd = &cobra.Command{
	Use:   "gear",
	Short: "Training equipment",
}

var gearListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List gear",
	RunE: func(cmd *cobra.Command, args []string) error {
		faint := color.New(color.Faint)
		for _, g := range repo.GetUserGear(cmd.Context()) {
			extra := ""
			if g.Brand != nil {
				extra += "  " + *g.Brand
			}
			if g.PurchaseDate != nil {
				extra += faint.Sprintf("  since %s", *g.PurchaseDate)
			}
			fmt.Printf("%s %s %s%s\n", faint.Sprint(shortID(g.ID)), padRight(g.Name, 24), faint.Sprint(g.Type), extra)
		}
		return nil
	},
}

var gearAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a piece of gear",
	Long: `Add a piece of gear. Types: kimono, chaussure, gants, autre.

Examples:
  yoroi gear add "Kimono bleu" --type kimono --brand Tatami --bought 2025-09-01`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g := models.Gear{Name: args[0], Type: gearType}
		if gearBrand != "" {
			b := gearBrand
			g.Brand = &b
		}
		if gearBought != "" {
			if !models.ValidDate(gearBought) {
				return fmt.Errorf("invalid date: %s (use YYYY-MM-DD)", gearBought)
			}
			d := gearBought
			g.PurchaseDate = &d
		}

		saved, err := repo.AddGear(cmd.Context(), g)
		if err != nil {
			return fmt.Errorf("failed to add gear: %w", err)
		}
		color.Green("✓ Added %s", saved.Name)
		fmt.Printf("  %s\n", color.New(color.Faint).Sprint(shortID(saved.ID)))
		return nil
	},
}

var gearDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a piece of gear",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		gear := repo.GetUserGear(ctx)
		i, err := matchID(len(gear), func(i int) string { return gear[i].ID }, args[0])
		if err != nil {
			return fmt.Errorf("gear %w", err)
		}
		if _, err := repo.DeleteGear(ctx, gear[i].ID); err != nil {
			return fmt.Errorf("failed to delete gear: %w", err)
		}
		color.Yellow("✗ Deleted %s", gear[i].Name)
		return nil
	},
}

// matchID returns the index whose ID equals prefix, or the single ID starting with it.
func matchID(n int, id func(int) string, prefix string) (int, error) {
	found := -1
	for i := 0; i < n; i++ {
		if id(i) == prefix {
			return i, nil
		}
		if prefix != "" && strings.HasPrefix(id(i), prefix) {
			if found >= 0 {
				return -1, fmt.Errorf("id %s is ambiguous", prefix)
			}
			found = i
		}
	}
	if found < 0 {
		return -1, fmt.Errorf("not found: %s", prefix)
	}
	return found, nil
}

func init() {
	clubAddCmd.Flags().StringVarP(&clubType, "type", "t", models.ClubOther, "club type (basic_fit, gracie_barra, running, other)")
	clubAddCmd.Flags().StringVar(&clubColor, "color", "", "display color (#RRGGBB)")
	clubAddCmd.Flags().IntVar(&clubSessions, "sessions", 0, "planned sessions per week")

	clubCmd.AddCommand(clubListCmd)
	clubCmd.AddCommand(clubAddCmd)
	clubCmd.AddCommand(clubDeleteCmd)
	rootCmd.AddCommand(clubCmd)

	gearAddCmd.Flags().StringVarP(&gearType, "type", "t", models.GearOther, "gear type (kimono, chaussure, gants, autre)")
	gearAddCmd.Flags().StringVar(&gearBrand, "brand", "", "brand")
	gearAddCmd.Flags().StringVar(&gearBought, "bought", "", "purchase date (YYYY-MM-DD)")

	gearCmd.AddCommand(gearListCmd)
	gearCmd.AddCommand(gearAddCmd)
	gearCmd.AddCommand(gearDeleteCmd)
	rootCmd.AddCommand(gearCmd)
}
