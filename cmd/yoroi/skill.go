// ABOUTME: Install the Claude Code skill for yoroi.
// ABOUTME: Embeds the skill definition and writes it to ~/.claude/skills/yoroi/.

package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

//go:embed skill/SKILL.md
var skillFS embed.FS

var skillSkipConfirm bool

var installSkillCmd = &cobra.Command{
	Use:         "install-skill",
	Short:       "Install Claude Code skill",
	Annotations: withoutStorage(),
	Long: `Install the yoroi skill for Claude Code.

This copies the skill definition to ~/.claude/skills/yoroi/
so Claude Code can use yoroi tools contextually.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		return installSkill(home, skillSkipConfirm)
	},
}

func init() {
	installSkillCmd.Flags().BoolVarP(&skillSkipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(installSkillCmd)
}

func skillPath(home string) string {
	return filepath.Join(home, ".claude", "skills", "yoroi", "SKILL.md")
}

func installSkill(home string, skipConfirm bool) error {
	path := skillPath(home)

	fmt.Println("This will install the yoroi skill, enabling Claude Code to:")
	fmt.Println()
	fmt.Println("  • Log weigh-ins, training sessions and water")
	fmt.Println("  • Record mood and energy")
	fmt.Println("  • Check streaks and unlock badges")
	fmt.Println("  • Compute calorie and macro targets")
	fmt.Println()
	fmt.Println("Destination:")
	fmt.Printf("  %s\n", path)
	fmt.Println()

	if _, err := os.Stat(path); err == nil {
		fmt.Println("Note: A skill file already exists and will be overwritten.")
		fmt.Println()
	}

	ok, err := confirm("Install the yoroi skill?", skipConfirm)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Installation canceled.")
		return nil
	}

	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		return fmt.Errorf("failed to read embedded skill: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create skill directory: %w", err)
	}
	if err := os.WriteFile(path, content, 0600); err != nil {
		return fmt.Errorf("failed to write skill file: %w", err)
	}

	color.Green("✓ Installed yoroi skill")
	fmt.Println("Try asking Claude: \"Log 82.4 kg this morning\" or \"Which badges am I close to?\"")
	return nil
}
