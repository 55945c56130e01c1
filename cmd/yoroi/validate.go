// ABOUTME: CLI command that checks a value against the input validation rules.
// ABOUTME: Prints the sanitized value or the rule's error message.
package main

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/harperreed/yoroi/internal/validation"
	"github.com/spf13/cobra"
)

var validateList bool

var validateCmd = &cobra.Command{
	Use:         "validate <field> <value>",
	Short:       "Check a value against the input rules",
	Annotations: withoutStorage(),
	Long: `Check a value against the rule for a field.

Examples:
  yoroi validate weight 82.5
  yoroi validate body_fat 70
  yoroi validate notes "<b>bold</b> text"
  yoroi validate --list`,
	Args: func(cmd *cobra.Command, args []string) error {
		if validateList {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(2)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if validateList {
			rules := validation.Rules()
			fields := make([]string, 0, len(rules))
			for f := range rules {
				fields = append(fields, f)
			}
			sort.Strings(fields)
			faint := color.New(color.Faint)
			for _, f := range fields {
				r := rules[f]
				fmt.Printf("  %s %s %s\n", padRight(f, 18), padRight(string(r.Kind), 7), faint.Sprint(r.Message))
			}
			return nil
		}

		field, value := args[0], args[1]
		r := validation.Validate(field, value)
		if !r.Valid {
			return fmt.Errorf("%s: %s", field, r.Error)
		}
		if _, known := validation.Lookup(field); !known {
			color.Yellow("no rule for %s; accepted as is", field)
		}
		color.Green("✓ %s = %v", field, r.Value)
		return nil
	},
}

func init() {
	validateCmd.Flags().BoolVar(&validateList, "list", false, "list every field rule")
	rootCmd.AddCommand(validateCmd)
}
