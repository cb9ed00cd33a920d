// ABOUTME: CLI command for copying habit data between storage backends.
// ABOUTME: Copies from the active backend to the one named by --to.
package main

import (
	"fmt"
	"slices"

	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/charm"
	"github.com/harperreed/habits/internal/config"
	"github.com/harperreed/habits/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateTo     string
	migrateForce  bool
	migrateSwitch bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy data to another storage backend",
	Long: `Copy all habits and logs from the active backend to another one.

BACKENDS:

  sqlite, badger, charm

IMPORTANT:

  - The destination must be empty unless --force is given
  - The source is left untouched
  - Use --switch to make the destination the default backend afterwards

EXAMPLES:

  habits migrate --to badger                 # sqlite -> badger
  habits migrate --to charm --switch         # move to Charm and start syncing
  habits --backend badger migrate --to sqlite --force`,
	Annotations: map[string]string{storeAnnotation: storeRaw},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !slices.Contains(config.Backends, migrateTo) || migrateTo == config.BackendMemory {
			return fmt.Errorf("unknown destination backend: %q (use sqlite, badger, or charm)", migrateTo)
		}
		if migrateTo == cfg.GetBackend() {
			return fmt.Errorf("source and destination are both %s", migrateTo)
		}

		dst, err := config.OpenBackend(migrateTo, cfg.GetDataDir())
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", migrateTo, err)
		}
		defer dst.Close()

		if !migrateForce {
			hasData, err := storage.HasData(dst)
			if err != nil {
				return err
			}
			if hasData {
				return fmt.Errorf("%s already has data (use --force to overwrite)", migrateTo)
			}
		}

		// Batch the copy into a single push when migrating to Charm.
		remote, isCharm := dst.(*charm.Client)
		if isCharm {
			remote.SetAutoSync(false)
		}

		summary, err := storage.MigrateData(store, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		if isCharm {
			if err := remote.Sync(); err != nil {
				color.Yellow("⚠ Copied locally but sync failed: %v", err)
			}
		}

		color.Green("✓ Migrated %s → %s", cfg.GetBackend(), migrateTo)
		fmt.Printf("  Habits: %d\n", summary.Habits)
		fmt.Printf("  Daily logs: %d\n", summary.Logs)

		if migrateSwitch {
			cfg.Backend = migrateTo
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			color.Green("✓ Default backend is now %s", migrateTo)
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "destination backend (sqlite, badger, charm)")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "overwrite data in the destination")
	migrateCmd.Flags().BoolVar(&migrateSwitch, "switch", false, "make the destination the default backend")
	_ = migrateCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(migrateCmd)
}
