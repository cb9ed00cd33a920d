// ABOUTME: CLI command for deleting habits.
// ABOUTME: Supports deletion by full ID or ID prefix and strips the habit from every log.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a habit",
	Long: `Delete a habit by its ID or ID prefix.

You can use either the full UUID or just the first few characters (prefix).
The ID prefix is shown in the first column of 'habits list' output.

The habit is also removed from every day's completions. Mood and notes are
kept.

EXAMPLES:

  habits delete abc12345                    # Delete by 8-char prefix
  habits rm abc1                            # Short prefix (if unique)

CAUTION:

  This permanently deletes the habit and its history. There is no undo.
  If the prefix matches multiple habits, an error is returned.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := appTracker.ResolveHabit(args[0])
		if err != nil {
			return err
		}

		appTracker.DeleteHabit(h.ID)

		color.Yellow("✗ Deleted %s", h.Name)
		fmt.Printf("  %s %s  %d completions removed\n",
			color.New(color.Faint).Sprint(h.ShortID()),
			h.Category, h.TotalCompletions)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
