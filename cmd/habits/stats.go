// ABOUTME: CLI command rendering completion, mood, and category charts as text.
// ABOUTME: Covers the trailing week or month ending today.
package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/analytics"
	"github.com/spf13/cobra"
)

const barWidth = 20

var (
	statsRange string
	statsJSON  bool
)

var statsCmd = &cobra.Command{
	Use:     "stats",
	Aliases: []string{"analytics", "st"},
	Short:   "Show completion and mood trends",
	Long: `Show analytics for the last week (7 days) or month (30 days):

  Completion   percentage of habits done each day
  Mood         each day's mood (days without a log are marked ·)
  Categories   habits and total completions per category

EXAMPLES:

  habits stats                  # Last 7 days
  habits stats -r month         # Last 30 days
  habits stats --json           # Machine-readable output`,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := analytics.ParseWindow(statsRange)
		if err != nil {
			return err
		}

		summary := analytics.Summarize(appTracker.Habits(), appTracker.Logs(), w, now())

		if statsJSON {
			data, err := json.MarshalIndent(summary, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal stats: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		printStats(summary)
		return nil
	},
}

func printStats(s *analytics.Summary) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	bold.Printf("Daily completion (last %s)\n", s.Window)
	for _, p := range s.Completion {
		fmt.Printf("  %s %s %3d%% %s\n",
			p.Label(),
			completionBar(p.Percentage),
			p.Percentage,
			faint.Sprintf("%d/%d", p.Completed, p.Total))
	}

	fmt.Println()
	bold.Printf("Mood (last %s)\n", s.Window)
	for _, p := range s.Mood {
		if !p.HasEntry() {
			fmt.Printf("  %s %s\n", p.Label(), faint.Sprint("·"))
			continue
		}
		fmt.Printf("  %s %s %d\n", p.Label(), moodBar(p.Mood), p.Mood)
	}

	fmt.Println()
	bold.Println("Categories")
	if len(s.Categories) == 0 {
		fmt.Println("  No habits yet.")
	}
	for _, c := range s.Categories {
		fmt.Printf("  %s %s %s\n",
			padRight(string(c.Category), 13),
			padRight(fmt.Sprintf("%d habits", c.HabitCount), 10),
			faint.Sprintf("%d completions", c.TotalCompletions))
	}
}

// bar renders filled out of total cells.
func bar(filled, total int) string {
	filled = min(max(filled, 0), total)
	return strings.Repeat("█", filled) + strings.Repeat("░", total-filled)
}

func completionBar(pct int) string {
	b := bar(pct*barWidth/100, barWidth)
	switch {
	case pct >= 80:
		return color.GreenString(b)
	case pct >= 40:
		return color.YellowString(b)
	default:
		return color.RedString(b)
	}
}

func moodBar(mood int) string {
	return color.CyanString(bar(mood, 10))
}

func init() {
	statsCmd.Flags().StringVarP(&statsRange, "range", "r", "week", "time range: week or month")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print JSON instead of charts")
	rootCmd.AddCommand(statsCmd)
}
