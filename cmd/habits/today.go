// ABOUTME: CLI command showing one day's habits, mood, and notes.
// ABOUTME: Also holds the --date parsing shared by day-oriented commands.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/models"
	"github.com/spf13/cobra"
)

var todayDate string

var todayCmd = &cobra.Command{
	Use:     "today",
	Aliases: []string{"t", "day"},
	Short:   "Show today's habits",
	Long: `Show every habit's completion state for a day, plus the day's mood and notes.

Days without any activity show mood 5 and no notes.

EXAMPLES:

  habits today
  habits today --date 2024-01-31`,
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := resolveDate(todayDate)
		if err != nil {
			return err
		}

		day := appTracker.DayView(date)
		faint := color.New(color.Faint)

		fmt.Printf("%s  %d/%d done\n", color.New(color.Bold).Sprint(day.Date), day.CompletedCount(), len(day.Habits))
		fmt.Println()

		if len(day.Habits) == 0 {
			fmt.Println("No habits yet. Add one with 'habits add <name>'.")
		}
		for _, dh := range day.Habits {
			mark := faint.Sprint("[ ]")
			if dh.Completed {
				mark = color.GreenString("[✓]")
			}
			fmt.Printf("%s %s %s %s\n",
				mark,
				faint.Sprint(dh.Habit.ShortID()),
				padRight(truncate(dh.Habit.Name, 28), 28),
				faint.Sprintf("%s 🔥%d", dh.Habit.Category, dh.Habit.Streak))
		}

		fmt.Println()
		fmt.Printf("Mood: %s %d/10\n", moodBar(day.Mood), day.Mood)
		if strings.TrimSpace(day.Notes) != "" {
			fmt.Printf("Notes: %s\n", day.Notes)
		}
		return nil
	},
}

// resolveDate validates a YYYY-MM-DD flag value, defaulting to today.
func resolveDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "", "today":
		return models.FormatDate(now()), nil
	case "yesterday":
		return models.FormatDate(now().AddDate(0, 0, -1)), nil
	}
	return models.ParseDate(s)
}

func init() {
	todayCmd.Flags().StringVarP(&todayDate, "date", "d", "", "day to show (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(todayCmd)
}
