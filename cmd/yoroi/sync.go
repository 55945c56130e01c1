// ABOUTME: CLI commands for the Charm cloud sync backend.
// ABOUTME: Supports link, unlink, status, now and reset; only meaningful with backend "charm".
package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/fatih/color"
	"github.com/harperreed/yoroi/internal/config"
	"github.com/harperreed/yoroi/internal/kv"
	"github.com/spf13/cobra"
)

var syncResetYes bool

var syncCmd = &cobra.Command{
	Use:         "sync",
	Aliases:     []string{"s"},
	Short:       "Sync data across devices with Charm",
	Annotations: withoutStorage(),
	Long: `Sync non-sensitive data across devices using Charm Cloud.

Select the backend with "backend": "charm" in the config file or
YOROI_BACKEND=charm. Data is E2E encrypted with your SSH key before upload.
Sensitive collections (weigh-ins, body status) stay in the local
encrypted store and never sync.

COMMANDS:

  link     Link this device to your Charm account
  unlink   Disconnect this device from Charm
  status   Show account and replica info
  now      Pull and push immediately
  reset    Drop the local replica and restore from cloud (destructive)`,
}

var syncLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link this device to Charm",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runCharm("link"); err != nil {
			return fmt.Errorf("failed to link: %w\n\nMake sure 'charm' CLI is installed: go install github.com/charmbracelet/charm@latest", err)
		}
		color.Green("\n✓ Device linked to Charm")
		warnIfNotCharm()
		return nil
	},
}

var syncUnlinkCmd = &cobra.Command{
	Use:   "unlink",
	Short: "Disconnect from Charm",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runCharm("unlink"); err != nil {
			return fmt.Errorf("failed to unlink: %w", err)
		}
		color.Green("✓ Device unlinked from Charm")
		fmt.Println("Your local data is preserved.")
		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	RunE: func(cmd *cobra.Command, args []string) error {
		warnIfNotCharm()

		store, err := kv.OpenCharm()
		if err != nil {
			return fmt.Errorf("failed to open charm store: %w", err)
		}
		defer store.Close()

		id, err := store.ID()
		if err != nil {
			color.Yellow("Not linked to Charm")
			fmt.Println("\nRun 'yoroi sync link' to connect to Charm.")
			return nil
		}

		fmt.Println("Charm ID:", id)
		fmt.Println("Database:", kv.CharmDBName)
		if n, err := store.KeyCount(); err == nil {
			fmt.Printf("Keys:     %d\n", n)
		}
		if store.IsReadOnly() {
			color.Yellow("Read-only: another yoroi process holds the lock")
		} else {
			color.Green("✓ Connected to Charm")
		}
		return nil
	},
}

var syncNowCmd = &cobra.Command{
	Use:   "now",
	Short: "Sync immediately",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := kv.OpenCharm()
		if err != nil {
			return fmt.Errorf("failed to open charm store: %w", err)
		}
		defer store.Close()

		if store.IsReadOnly() {
			return fmt.Errorf("charm store is locked by another process")
		}
		if err := store.Sync(); err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}
		color.Green("✓ Synced")
		return nil
	},
}

var syncResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the local replica from cloud",
	RunE: func(cmd *cobra.Command, args []string) error {
		ok, err := confirm("This will DELETE the local replica and restore from cloud. Continue?", syncResetYes)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Canceled.")
			return nil
		}

		store, err := kv.OpenCharm()
		if err != nil {
			return fmt.Errorf("failed to open charm store: %w", err)
		}
		defer store.Close()

		if err := store.Reset(); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
		color.Green("✓ Local replica reset and restored from cloud")
		return nil
	},
}

func runCharm(arg string) error {
	c := exec.Command("charm", arg)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

func warnIfNotCharm() {
	if cfg != nil && cfg.GetBackend() != config.BackendCharm {
		color.Yellow("⚠ Backend is %q; set backend to %q to sync.", cfg.GetBackend(), config.BackendCharm)
	}
}

func init() {
	syncResetCmd.Flags().BoolVarP(&syncResetYes, "yes", "y", false, "skip confirmation prompt")

	syncCmd.AddCommand(syncLinkCmd)
	syncCmd.AddCommand(syncUnlinkCmd)
	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncNowCmd)
	syncCmd.AddCommand(syncResetCmd)
	rootCmd.AddCommand(syncCmd)
}
