// ABOUTME: CLI command that runs the periodic badge checker until interrupted.
// ABOUTME: The cron schedule comes from config or --schedule.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harperreed/yoroi/internal/scheduler"
	"github.com/spf13/cobra"
)

var daemonSchedule string

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Unlock earned badges on a schedule",
	Long: `Run in the foreground and unlock earned badges on a cron schedule.

The schedule defaults to "` + scheduler.DefaultSchedule + `". Set badge_schedule in the
config file, YOROI_BADGE_SCHEDULE, or pass --schedule.

Examples:
  yoroi daemon
  yoroi daemon --schedule "0 7 * * *"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		schedule := cfg.GetBadgeSchedule()
		if daemonSchedule != "" {
			schedule = daemonSchedule
		}

		checker := scheduler.NewBadgeChecker(repo, schedule, logger)
		if _, err := checker.RunOnce(cmd.Context()); err != nil {
			logger.Warn("initial badge check failed", "err", err)
		}
		if err := checker.Start(); err != nil {
			return fmt.Errorf("failed to start badge checker: %w", err)
		}

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return checker.Stop(ctx)
	},
}

func init() {
	daemonCmd.Flags().StringVar(&daemonSchedule, "schedule", "", "cron spec (default from config)")
	rootCmd.AddCommand(daemonCmd)
}
