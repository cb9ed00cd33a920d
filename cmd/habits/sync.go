// ABOUTME: CLI commands for the Charm backend's cloud sync.
// ABOUTME: Wraps charm link/unlink and the kv maintenance helpers (repair, reset, wipe).
package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/charmbracelet/charm/kv"
	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/charm"
	"github.com/harperreed/habits/internal/config"
	"github.com/harperreed/habits/internal/storage"
	"github.com/spf13/cobra"
)

var syncRepairForce bool

var syncCmd = &cobra.Command{
	Use:     "sync",
	Aliases: []string{"s"},
	Short:   "Sync habits across devices via Charm",
	Long: `Manage cloud sync for the charm backend.

With the charm backend every change is encrypted with your SSH key and pushed
to Charm Cloud, so the same habits and logs show up on each linked device.
Other backends keep data on this machine only. To move over:

  habits migrate --to charm --switch

SUBCOMMANDS:

  link     Link this device to a Charm account (runs 'charm link')
  unlink   Disconnect this device (local data is kept)
  status   Show the account, lock state, and what is stored
  repair   Fix a corrupted or locked local database
  reset    Throw away local data and pull from the cloud
  wipe     Delete cloud backups and local data`,
	Annotations: map[string]string{storeAnnotation: storeNone},
}

// runCharmCLI shells out to the charm binary with the terminal attached.
func runCharmCLI(args ...string) error {
	c := exec.Command("charm", args...)
	c.Stdin, c.Stdout, c.Stderr = os.Stdin, os.Stdout, os.Stderr
	return c.Run()
}

var syncLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link this device to Charm",
	Long: `Link this device to a Charm account.

A new account is created from your SSH key on first use. On later devices,
follow the prompt to join the existing account.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runCharmCLI("link"); err != nil {
			return fmt.Errorf("charm link: %w (install with: go install github.com/charmbracelet/charm@latest)", err)
		}
		color.Green("✓ Device linked")

		client, err := charm.InitClient()
		if err != nil {
			color.Yellow("⚠ Linked, but the habits database could not be opened: %v", err)
			return nil
		}
		defer client.Close()

		if err := client.Sync(); err != nil {
			color.Yellow("⚠ First sync failed: %v", err)
			return nil
		}
		color.Green("✓ Pulled habits from the cloud")
		return nil
	},
}

var syncUnlinkCmd = &cobra.Command{
	Use:   "unlink",
	Short: "Disconnect this device from Charm",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runCharmCLI("unlink"); err != nil {
			return fmt.Errorf("charm unlink: %w", err)
		}
		color.Green("✓ Device unlinked; local habits are untouched")
		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	RunE: func(cmd *cobra.Command, args []string) error {
		if c, err := config.Load(); err == nil && c.GetBackend() != config.BackendCharm {
			color.Yellow("Active backend is %s; nothing is synced until you switch to charm.", c.GetBackend())
		}

		client, err := charm.InitClient()
		if err != nil {
			color.Yellow("Charm is not available: %v", err)
			fmt.Println("Run 'habits sync link' first.")
			return nil
		}
		defer client.Close()

		id, err := client.ID()
		if err != nil {
			color.Yellow("This device is not linked.")
			fmt.Println("Run 'habits sync link' first.")
			return nil
		}

		fmt.Printf("Account:  %s\n", id)
		fmt.Printf("Server:   %s\n", os.Getenv("CHARM_HOST"))
		if client.IsReadOnly() {
			color.Yellow("Lock:     read-only, another habits process (MCP server?) is running")
		}

		counts, err := storage.CountItems(client)
		if err != nil {
			return fmt.Errorf("read stored habits: %w", err)
		}
		fmt.Printf("Habits:   %d\n", counts.Habits)
		fmt.Printf("Logs:     %d\n", counts.Logs)
		return nil
	},
}

var syncRepairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Repair the local Charm database",
	Long: `Checkpoint the write-ahead log, drop a stale shared-memory file, run an
integrity check, and vacuum. Use --force to keep going when the integrity
check fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := kv.Repair(charm.DBName, syncRepairForce)

		step := func(ok bool, label string) {
			if ok {
				color.Green("  ✓ %s", label)
			}
		}
		step(result.WalCheckpointed, "write-ahead log checkpointed")
		step(result.ShmRemoved, "shared-memory file removed")
		step(result.Vacuumed, "vacuumed")
		if !result.IntegrityOK {
			color.Red("  ✗ integrity check failed")
		}

		if err != nil {
			if !syncRepairForce {
				color.Yellow("Retry with --force to attempt recovery.")
			}
			return fmt.Errorf("repair: %w", err)
		}
		color.Green("✓ Repair complete")
		return nil
	},
}

var syncResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Replace local data with the cloud copy",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirm(cmd, "Local habits will be deleted and pulled again from the cloud. Continue? [y/N] ", "y", "yes") {
			fmt.Println("Canceled.")
			return nil
		}
		if err := kv.Reset(charm.DBName); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		color.Green("✓ Local data restored from the cloud")
		return nil
	},
}

var syncWipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete cloud backups and local data",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirm(cmd, "Every cloud backup and local copy of your habits will be deleted. Type 'wipe' to confirm: ", "wipe") {
			fmt.Println("Canceled.")
			return nil
		}
		result, err := kv.Wipe(charm.DBName)
		if err != nil {
			return fmt.Errorf("wipe: %w", err)
		}
		color.Green("✓ Wiped")
		fmt.Printf("  Cloud backups deleted: %d\n", result.CloudBackupsDeleted)
		fmt.Printf("  Local files deleted:   %d\n", result.LocalFilesDeleted)
		return nil
	},
}

func init() {
	syncRepairCmd.Flags().BoolVar(&syncRepairForce, "force", false, "continue even if the integrity check fails")
	syncCmd.AddCommand(syncLinkCmd, syncUnlinkCmd, syncStatusCmd, syncRepairCmd, syncResetCmd, syncWipeCmd)
	rootCmd.AddCommand(syncCmd)
}
