// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/yoroi/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout. Logs go to stderr.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "yoroi": {
        "command": "yoroi",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  add_workout        Log a training session
  list_workouts      List sessions, optionally by type
  delete_workout     Delete a session by ID prefix
  add_measurement    Record a weigh-in (validated, BMI filled in)
  list_measurements  List recent weigh-ins
  add_hydration      Log water intake
  hydration_today    Today's intake against the goal
  save_mood          Record mood and energy
  unlock_badge       Unlock a badge by ID
  check_badges       Unlock every earned badge
  nutrition_plan     Calorie and macro targets
  validate_field     Check a value against the input rules

AVAILABLE RESOURCES:

  yoroi://today      Today's sessions, weigh-ins, hydration and mood
  yoroi://summary    Totals, streaks, badges and recent sessions`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(repo, logger)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
