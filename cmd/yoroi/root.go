// ABOUTME: Root Cobra command for the yoroi CLI.
// ABOUTME: Loads config and opens storage in PersistentPreRunE, closes it in PersistentPostRunE.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/yoroi/internal/config"
	"github.com/harperreed/yoroi/internal/logging"
	"github.com/harperreed/yoroi/internal/storage"
	"github.com/spf13/cobra"
)

// noStorage marks commands that run without opening the repository.
const noStorage = "no-storage"

var (
	cfg    *config.Config
	repo   storage.Repository
	logger *log.Logger

	logLevel string

	now = time.Now
)

var rootCmd = &cobra.Command{
	Use:   "yoroi",
	Short: "Local wellness tracker for combat athletes",
	Long: `Yoroi tracks weigh-ins, training sessions, hydration, mood and badges,
all stored locally with sensitive records encrypted at rest.

WHAT IT TRACKS:

  Body        weight, body composition, girths, body zone status
  Training    sessions per day and type, clubs, gear
  Wellness    hydration log and goal, daily mood and energy
  Progress    streaks, badges and XP, nutrition targets

QUICK START:

  $ yoroi measure add 82.5 --body-fat 18    # Log a weigh-in
  $ yoroi workout add jjb                   # Log today's session
  $ yoroi water add 500                     # Log a glass of water
  $ yoroi badge check                       # Unlock earned badges
  $ yoroi stats                             # Totals and streaks

STORAGE:

  Backends: badger (default), sqlite, charm (cloud sync).
  Choose one in ~/.config/yoroi/config.json or with YOROI_BACKEND.
  Data lives under ~/.local/share/yoroi unless YOROI_DATA_DIR is set.

MCP INTEGRATION:

  Run 'yoroi mcp' to start the Model Context Protocol server:

  {
    "mcpServers": {
      "yoroi": { "command": "yoroi", "args": ["mcp"] }
    }
  }`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		level := cfg.GetLogLevel()
		if logLevel != "" {
			level = logLevel
		}
		logger = logging.Stderr(level)

		if skipsStorage(cmd) {
			return nil
		}

		repo, err = cfg.OpenStorage(logger)
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo == nil {
			return nil
		}
		err := repo.Close()
		repo = nil
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

func skipsStorage(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[noStorage] == "true" {
			return true
		}
	}
	return false
}

func withoutStorage() map[string]string {
	return map[string]string{noStorage: "true"}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

// confirm asks a yes/no question on stdin. skip answers yes without asking.
func confirm(prompt string, skip bool) (bool, error) {
	if skip {
		return true, nil
	}
	fmt.Print(prompt + " [y/N] ")
	response, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read response: %w", err)
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
