// ABOUTME: CLI commands for profile settings, body zone status, home layout and logo.
// ABOUTME: Settings values are validated with the same rules as the app forms.
package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/yoroi/internal/models"
	"github.com/harperreed/yoroi/internal/validation"
	"github.com/spf13/cobra"
)

var bodyPain int

// settingKeys lists the settings the CLI can change, with their value kind.
var settingKeys = map[string]string{
	"username":         "text",
	"gender":           "text",
	"height":           "number",
	"weight_goal":      "number",
	"start_weight":     "number",
	"target_date":      "date",
	"weight_unit":      "text",
	"measurement_unit": "text",
	"theme":            "text",
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Profile settings",
	Long: `Show or change profile settings.

Keys: username, gender (male|female), height (cm), weight_goal (kg),
start_weight (kg), target_date (YYYY-MM-DD), weight_unit, measurement_unit,
theme.`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show profile settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := repo.GetUserSettings(cmd.Context())

		fmt.Printf("  %-17s %s\n", "username", strOr(s.Username))
		fmt.Printf("  %-17s %s\n", "gender", strOr(s.Gender))
		fmt.Printf("  %-17s %s\n", "height", floatOr(s.Height, "cm"))
		fmt.Printf("  %-17s %s\n", "weight_goal", floatOr(s.WeightGoal, "kg"))
		fmt.Printf("  %-17s %s\n", "start_weight", floatOr(s.StartWeight, "kg"))
		fmt.Printf("  %-17s %s\n", "target_date", strOr(s.TargetDate))
		fmt.Printf("  %-17s %s\n", "weight_unit", s.WeightUnit)
		fmt.Printf("  %-17s %s\n", "measurement_unit", s.MeasurementUnit)
		if s.Theme != "" {
			fmt.Printf("  %-17s %s\n", "theme", s.Theme)
		}
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a profile setting",
	Long: `Change a profile setting.

Examples:
  yoroi settings set height 178
  yoroi settings set weight_goal 77.5
  yoroi settings set gender male`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, raw := args[0], args[1]
		value, err := parseSetting(key, raw)
		if err != nil {
			return err
		}

		if err := repo.SaveUserSettings(cmd.Context(), map[string]any{key: value}); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		color.Green("✓ Set %s = %v", key, value)
		return nil
	},
}

// parseSetting checks a raw CLI value for key and converts it to the stored type.
func parseSetting(key, raw string) (any, error) {
	kind, ok := settingKeys[key]
	if !ok {
		known := make([]string, 0, len(settingKeys))
		for k := range settingKeys {
			known = append(known, k)
		}
		sort.Strings(known)
		return nil, fmt.Errorf("unknown setting: %s (known: %s)", key, strings.Join(known, ", "))
	}

	switch key {
	case "gender":
		if raw != "male" && raw != "female" {
			return nil, fmt.Errorf("invalid gender: %s (use male or female)", raw)
		}
		return raw, nil
	case "weight_unit":
		if raw != "kg" && raw != "lb" {
			return nil, fmt.Errorf("invalid weight unit: %s (use kg or lb)", raw)
		}
		return raw, nil
	case "measurement_unit":
		if raw != "cm" && raw != "in" {
			return nil, fmt.Errorf("invalid measurement unit: %s (use cm or in)", raw)
		}
		return raw, nil
	}

	field := key
	if kind == "date" {
		field = "date"
	}
	r := validation.Validate(field, raw)
	if !r.Valid {
		return nil, fmt.Errorf("invalid %s: %s", key, r.Error)
	}
	return r.Value, nil
}

var bodyCmd = &cobra.Command{
	Use:   "body",
	Short: "Body zone status",
	Long: `Track the state of body zones (injuries, soreness).

Examples:
  yoroi body set left_knee injured --pain 6
  yoroi body set left_knee ok
  yoroi body show`,
}

var bodyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show body zone status",
	RunE: func(cmd *cobra.Command, args []string) error {
		status := repo.GetUserBodyStatus(cmd.Context())
		if len(status) == 0 {
			fmt.Println("No body zones recorded.")
			return nil
		}

		zones := make([]string, 0, len(status))
		for z := range status {
			zones = append(zones, z)
		}
		sort.Strings(zones)
		for _, z := range zones {
			zs := status[z]
			fmt.Printf("  %s %s pain %d/10\n", padRight(z, 16), padRight(zs.Status, 10), zs.Pain)
		}
		return nil
	},
}

var bodySetCmd = &cobra.Command{
	Use:   "set <zone> <status>",
	Short: "Set the status of a body zone",
	Long: `Set the status of a body zone. Status "ok" with no pain clears the zone.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		zone, state := args[0], args[1]

		if r := validation.Validate("pain", bodyPain); !r.Valid {
			return fmt.Errorf("invalid pain: %s", r.Error)
		}

		status := repo.GetUserBodyStatus(ctx)
		next := make(models.BodyStatus, len(status)+1)
		for k, v := range status {
			next[k] = v
		}
		if state == "ok" && bodyPain == 0 {
			delete(next, zone)
		} else {
			next[zone] = models.ZoneStatus{Status: state, Pain: bodyPain}
		}

		if err := repo.SaveUserBodyStatus(ctx, next); err != nil {
			return fmt.Errorf("failed to save body status: %w", err)
		}
		color.Green("✓ %s: %s", zone, state)
		return nil
	},
}

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Home screen sections",
}

var layoutShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show home sections in order",
	RunE: func(cmd *cobra.Command, args []string) error {
		faint := color.New(color.Faint)
		for _, s := range repo.GetHomeLayout(cmd.Context()) {
			mark := faint.Sprint("·")
			if s.Visible {
				mark = color.GreenString("✓")
			}
			fmt.Printf("%s %s %s\n", mark, padRight(s.ID, 12), faint.Sprint(s.Label))
		}
		return nil
	},
}

var layoutHideCmd = &cobra.Command{
	Use:   "hide <section>",
	Short: "Hide a home section",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setSectionVisible(cmd, args[0], false)
	},
}

var layoutUnhideCmd = &cobra.Command{
	Use:   "unhide <section>",
	Short: "Show a hidden home section",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setSectionVisible(cmd, args[0], true)
	},
}

var layoutResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default home layout",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := repo.ResetHomeLayout(cmd.Context()); err != nil {
			return fmt.Errorf("failed to reset layout: %w", err)
		}
		color.Green("✓ Home layout reset")
		return nil
	},
}

func setSectionVisible(cmd *cobra.Command, id string, visible bool) error {
	ok, err := repo.SetSectionVisible(cmd.Context(), id, visible)
	if err != nil {
		return fmt.Errorf("failed to save layout: %w", err)
	}
	if !ok {
		return fmt.Errorf("unknown section: %s", id)
	}
	if visible {
		color.Green("✓ Showing %s", id)
	} else {
		color.Yellow("✗ Hiding %s", id)
	}
	return nil
}

var logoCmd = &cobra.Command{
	Use:   "logo [name]",
	Short: "Show or choose the app logo",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if len(args) == 0 {
			fmt.Println(repo.GetSelectedLogo(ctx))
			return nil
		}
		if err := repo.SaveSelectedLogo(ctx, args[0]); err != nil {
			return fmt.Errorf("failed to save logo: %w", err)
		}
		color.Green("✓ Logo set to %s", args[0])
		return nil
	},
}

func strOr(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func floatOr(f *float64, unit string) string {
	if f == nil {
		return "-"
	}
	return fmt.Sprintf("%g %s", *f, unit)
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)

	bodySetCmd.Flags().IntVar(&bodyPain, "pain", 0, "pain level 0-10")
	bodyCmd.AddCommand(bodyShowCmd)
	bodyCmd.AddCommand(bodySetCmd)
	rootCmd.AddCommand(bodyCmd)

	layoutCmd.AddCommand(layoutShowCmd)
	layoutCmd.AddCommand(layoutHideCmd)
	layoutCmd.AddCommand(layoutUnhideCmd)
	layoutCmd.AddCommand(layoutResetCmd)
	rootCmd.AddCommand(layoutCmd)

	rootCmd.AddCommand(logoCmd)
}
