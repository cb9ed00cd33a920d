// ABOUTME: Root Cobra command for habits CLI.
// ABOUTME: Opens the configured store and tracker via PersistentPre/PostRunE.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/habits/internal/config"
	"github.com/harperreed/habits/internal/logging"
	"github.com/harperreed/habits/internal/storage"
	"github.com/harperreed/habits/internal/tracker"
	"github.com/spf13/cobra"
)

// storeAnnotation controls what PersistentPreRunE opens for a command.
const (
	storeAnnotation = "habits.store"
	storeNone       = "none" // nothing is opened
	storeRaw        = "raw"  // the BlobStore only, no tracker (avoids seeding)
)

var (
	backendFlag string
	dataDirFlag string

	cfg        *config.Config
	store      storage.BlobStore
	appTracker *tracker.Tracker
	logger     *log.Logger

	// now is swapped in tests.
	now = time.Now
)

var rootCmd = &cobra.Command{
	Use:   "habits",
	Short: "Personal habit tracker",
	Long: `Habits is a CLI tool for building daily habits.

Track habits in five categories (Health, Productivity, Learning, Mental,
Social), tick them off each day, write a short reflection with a mood score,
and watch completion and mood trends over the last week or month.

QUICK START:

  $ habits add "Read 20 pages" -c Learning   # Create a habit
  $ habits today                             # What's left today?
  $ habits done 3f2a                         # Tick it off (ID prefix)
  $ habits reflect --mood 8 --notes "Good"   # Record how the day went
  $ habits stats --range month               # Trends for the last 30 days

STREAKS:

  Every completion adds one to a habit's streak. Un-ticking a day resets the
  streak to zero.

STORAGE:

  Data lives in ~/.local/share/habits/habits.db (SQLite) by default.
  Choose another backend in ~/.config/habits/config.json or with --backend:

    sqlite   single-file database (default)
    badger   embedded key-value store
    charm    Charm Cloud KV with encrypted sync ('habits sync')
    memory   nothing is saved

MCP INTEGRATION:

  Run 'habits mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants:

  {
    "mcpServers": {
      "habits": { "command": "habits", "args": ["mcp"] }
    }
  }`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		mode := storeModeFor(cmd)
		if mode == storeNone {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if backendFlag != "" {
			cfg.Backend = backendFlag
		}
		if dataDirFlag != "" {
			cfg.DataDir = dataDirFlag
		}

		logger = logging.New(os.Stderr, cfg.LogLevel)
		logger.Debug("opening store", "backend", cfg.GetBackend(), "data_dir", cfg.GetDataDir())

		store, err = cfg.OpenStore()
		if err != nil {
			return fmt.Errorf("failed to open %s store: %w", cfg.GetBackend(), err)
		}
		if mode == storeRaw {
			return nil
		}

		appTracker, err = tracker.Open(storage.NewAdapter(store, logger))
		if err != nil {
			return fmt.Errorf("failed to load habits: %w", err)
		}
		appTracker.Subscribe(func(s tracker.Snapshot) {
			logger.Debug("state changed", "habits", len(s.Habits), "logs", len(s.Logs))
		})
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeStore()
	},
}

// Execute runs the root command and releases the store even when a command
// fails, since cobra skips post-run hooks on error.
func Execute() error {
	err := rootCmd.Execute()
	if cerr := closeStore(); err == nil {
		err = cerr
	}
	return err
}

func closeStore() error {
	appTracker = nil
	if store == nil {
		return nil
	}
	err := store.Close()
	store = nil
	return err
}

// storeModeFor returns the nearest storeAnnotation on cmd or its parents.
func storeModeFor(cmd *cobra.Command) string {
	for c := cmd; c != nil; c = c.Parent() {
		if mode, ok := c.Annotations[storeAnnotation]; ok {
			return mode
		}
	}
	if cmd.Name() == "help" || cmd.Name() == "completion" {
		return storeNone
	}
	return ""
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "storage backend (sqlite, badger, charm, memory)")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "data directory (default ~/.local/share/habits)")
}
