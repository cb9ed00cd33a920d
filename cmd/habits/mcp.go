// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for Claude integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/habits/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to read and update your habits through
a standardized protocol. The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "habits": {
        "command": "habits",
        "args": ["mcp"]
      }
    }
  }

  On macOS, the config is at:
    ~/Library/Application Support/Claude/claude_desktop_config.json

AVAILABLE TOOLS:

  add_habit           Create a habit
  toggle_habit        Mark a habit done for a day (or undo)
  delete_habit        Delete a habit by ID
  list_habits         List habits with streaks
  update_reflection   Record mood and notes for a day
  get_day             Get a day's habits, mood, and notes
  get_stats           Completion, mood, and category stats

AVAILABLE RESOURCES:

  habits://today          Today's habits, mood, and notes
  habits://stats/week     Stats for the last 7 days
  habits://stats/month    Stats for the last 30 days
  habits://categories     Per-category habit counts`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(appTracker)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		logger.Debug("mcp server starting", "backend", cfg.GetBackend())
		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
