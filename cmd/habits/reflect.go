// ABOUTME: CLI command for recording a day's mood and notes.
// ABOUTME: Leaves the day's completions untouched.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/models"
	"github.com/spf13/cobra"
)

var (
	reflectDate  string
	reflectMood  int
	reflectNotes string
)

var reflectCmd = &cobra.Command{
	Use:     "reflect",
	Aliases: []string{"r", "mood"},
	Short:   "Record mood and notes for a day",
	Long: `Record how a day went: a mood from 1 to 10 and free-form notes.

Flags you leave out keep their current value for that day.

EXAMPLES:

  habits reflect --mood 8 --notes "Slept well, good focus"
  habits reflect --date 2024-01-31 --mood 4
  habits reflect --notes "Skipped the gym, sore throat"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		moodSet := cmd.Flags().Changed("mood")
		notesSet := cmd.Flags().Changed("notes")
		if !moodSet && !notesSet {
			return fmt.Errorf("nothing to record: pass --mood and/or --notes")
		}
		if moodSet && (reflectMood < models.MinMood || reflectMood > models.MaxMood) {
			return &models.ValidationError{Field: "mood", Reason: fmt.Sprintf("%d is outside %d-%d", reflectMood, models.MinMood, models.MaxMood)}
		}

		date, err := resolveDate(reflectDate)
		if err != nil {
			return err
		}

		day := appTracker.DayView(date)
		mood, notes := day.Mood, day.Notes
		if moodSet {
			mood = reflectMood
		}
		if notesSet {
			notes = strings.TrimSpace(reflectNotes)
		}

		l := appTracker.UpdateReflection(date, mood, notes)

		color.Green("✓ Saved reflection for %s", l.Date)
		fmt.Printf("  Mood: %s %d/10\n", moodBar(l.Mood), l.Mood)
		if l.Notes != "" {
			fmt.Printf("  Notes: %s\n", l.Notes)
		}
		return nil
	},
}

func init() {
	reflectCmd.Flags().StringVarP(&reflectDate, "date", "d", "", "day to update (YYYY-MM-DD, default today)")
	reflectCmd.Flags().IntVarP(&reflectMood, "mood", "m", models.DefaultMood, "mood from 1 to 10")
	reflectCmd.Flags().StringVarP(&reflectNotes, "notes", "n", "", "reflection notes")
	rootCmd.AddCommand(reflectCmd)
}
