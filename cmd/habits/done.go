// ABOUTME: CLI command for ticking a habit off for a day.
// ABOUTME: Toggles, so running it twice undoes the completion.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/models"
	"github.com/spf13/cobra"
)

var (
	doneDate string
	doneMood int
)

var doneCmd = &cobra.Command{
	Use:     "done <id>",
	Aliases: []string{"d", "toggle", "check"},
	Short:   "Toggle a habit's completion",
	Long: `Mark a habit as done for a day, or undo it if it is already done.

Completing adds one to the habit's streak and total. Undoing removes the
completion and resets the streak to zero.

If this is the first activity of the day, the day's log is created with
mood 5 unless --mood is given.

EXAMPLES:

  habits done 3f2a1b9c                  # Toggle today
  habits done 3f2a --date 2024-01-31    # Toggle another day
  habits done 3f2a --mood 8             # Also seed the day's mood`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := resolveDate(doneDate)
		if err != nil {
			return err
		}

		h, err := appTracker.ResolveHabit(args[0])
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("mood") {
			if doneMood < models.MinMood || doneMood > models.MaxMood {
				return &models.ValidationError{Field: "mood", Reason: fmt.Sprintf("%d is outside %d-%d", doneMood, models.MinMood, models.MaxMood)}
			}
			appTracker.SetDraftMood(doneMood)
		}

		completed, ok := appTracker.ToggleCompletion(h.ID, date)
		if !ok {
			return fmt.Errorf("habit not found: %s", args[0])
		}

		updated, _ := appTracker.Habit(h.ID)
		if completed {
			color.Green("✓ Completed %s", updated.Name)
		} else {
			color.Yellow("✗ Uncompleted %s", updated.Name)
		}
		fmt.Printf("  %s %s  streak %d  total %d\n",
			color.New(color.Faint).Sprint(updated.ShortID()),
			date, updated.Streak, updated.TotalCompletions)

		return nil
	},
}

func init() {
	doneCmd.Flags().StringVarP(&doneDate, "date", "d", "", "day to toggle (YYYY-MM-DD, default today)")
	doneCmd.Flags().IntVarP(&doneMood, "mood", "m", 5, "mood (1-10) if this creates the day's log")
	rootCmd.AddCommand(doneCmd)
}
