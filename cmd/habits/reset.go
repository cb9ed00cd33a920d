// ABOUTME: CLI command that deletes every habit and log.
// ABOUTME: Asks for confirmation unless --yes is given.
package main

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var resetSkipConfirm bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all habits and logs",
	Long: `Delete every habit, completion, mood, and note from the current backend.

This is a DESTRUCTIVE operation. Export first if you want a backup:

  habits export json -o backup.json
  habits reset

The example habits are not added back; start over with 'habits add'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetSkipConfirm && !confirm(cmd, "This will PERMANENTLY DELETE all habits and logs. Continue? [y/N] ", "y", "yes") {
			fmt.Println("Canceled.")
			return nil
		}

		habits := len(appTracker.Habits())
		logs := len(appTracker.Logs())
		appTracker.ResetAll()

		color.Green("✓ Reset complete")
		fmt.Printf("  Habits deleted: %d\n", habits)
		fmt.Printf("  Daily logs deleted: %d\n", logs)
		return nil
	},
}

// confirm prompts on the command's output and reports whether the typed
// answer is one of accept (case-insensitive).
func confirm(cmd *cobra.Command, prompt string, accept ...string) bool {
	return confirmFrom(cmd.InOrStdin(), cmd.OutOrStdout(), prompt, accept...)
}

func confirmFrom(r io.Reader, w io.Writer, prompt string, accept ...string) bool {
	fmt.Fprint(w, prompt)
	response, _ := bufio.NewReader(r).ReadString('\n')
	response = strings.ToLower(strings.TrimSpace(response))
	return slices.Contains(accept, response)
}

func init() {
	resetCmd.Flags().BoolVarP(&resetSkipConfirm, "yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}
