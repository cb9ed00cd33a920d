// ABOUTME: CLI command for listing habits.
// ABOUTME: Shows ID prefix, name, category, streak, and total completions.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/models"
	"github.com/spf13/cobra"
)

var listCategory string

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List habits",
	Long: `List every habit with its statistics.

OUTPUT FORMAT:

  Each line shows: ID  NAME  CATEGORY  STREAK  TOTAL

  The ID is an 8-character prefix you can use with done and delete.

EXAMPLES:

  habits list                   # All habits
  habits list -c health         # Only Health habits`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var filter models.Category
		if listCategory != "" {
			c, err := models.ParseCategory(listCategory)
			if err != nil {
				return err
			}
			filter = c
		}

		faint := color.New(color.Faint)
		shown := 0
		for _, h := range appTracker.Habits() {
			if filter != "" && h.Category != filter {
				continue
			}
			fmt.Printf("%s %s %s %s %s\n",
				faint.Sprint(h.ShortID()),
				padRight(truncate(h.Name, 28), 28),
				padRight(string(h.Category), 13),
				padRight(fmt.Sprintf("🔥%d", h.Streak), 6),
				faint.Sprintf("%d total", h.TotalCompletions))
			shown++
		}

		if shown == 0 {
			fmt.Println("No habits found. Add one with 'habits add <name>'.")
		}
		return nil
	},
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "filter by category")
	rootCmd.AddCommand(listCmd)
}
