// ABOUTME: CLI command for creating habits.
// ABOUTME: Validates the category and prints the new habit's ID prefix.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/models"
	"github.com/spf13/cobra"
)

var addCategory string

var addCmd = &cobra.Command{
	Use:     "add <name>",
	Aliases: []string{"a", "new"},
	Short:   "Add a habit",
	Long: `Add a habit to track.

CATEGORIES:

  Health, Productivity, Learning, Mental, Social (case-insensitive)

  The category decides the habit's color in charts and is used for the
  category breakdown in 'habits stats'.

EXAMPLES:

  habits add Meditate -c Mental
  habits add "Read 20 pages" --category learning
  habits add Stretch                    # defaults to Health`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		category, err := models.ParseCategory(addCategory)
		if err != nil {
			return fmt.Errorf("%w\nValid categories: %s", err, categoryList())
		}

		h, err := appTracker.AddHabit(strings.Join(args, " "), category)
		if err != nil {
			return err
		}

		color.Green("✓ Added %s", h.Name)
		fmt.Printf("  %s %s\n",
			color.New(color.Faint).Sprint(h.ShortID()),
			h.Category)

		return nil
	},
}

func categoryList() string {
	names := make([]string, 0, len(models.AllCategories))
	for _, c := range models.AllCategories {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

func init() {
	addCmd.Flags().StringVarP(&addCategory, "category", "c", string(models.CategoryHealth), "habit category")
	rootCmd.AddCommand(addCmd)
}
