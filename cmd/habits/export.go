// ABOUTME: CLI commands for exporting and importing habit data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats and JSON import.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/models"
	"github.com/harperreed/habits/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportSince  string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export habit data",
	Long: `Export habit data in various formats.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export grouped by category (human-readable)
  markdown   Markdown tables (for documentation/sharing)

OPTIONS:

  --output, -o   Write to file instead of stdout
  --since        Only include days since this date (markdown only)

EXAMPLES:

  habits export json                        # Export all data as JSON
  habits export json -o backup.json         # Save to file
  habits export yaml                        # Export as YAML
  habits export markdown --since 2024-01-01 # Days from 2024 onward`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]
		exportData := storage.NewExportData(appTracker.Habits(), appTracker.Logs())

		var data []byte
		var err error

		switch format {
		case "json":
			data, err = exportData.ExportJSON()
		case "yaml":
			data, err = exportData.ExportYAML()
		case "markdown", "md":
			since := ""
			if exportSince != "" {
				since, err = models.ParseDate(exportSince)
				if err != nil {
					return fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", exportSince)
				}
			}
			data = []byte(exportData.ExportMarkdown(since))
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", format)
		}

		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
		} else {
			fmt.Println(string(data))
		}

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import habit data from JSON",
	Long: `Import habit data from a JSON backup file.

This REPLACES all current habits and logs with the contents of a file
previously written by 'habits export json'. Streak and completion counts are
checked against the completion dates on the way in.

EXAMPLES:

  habits import backup.json               # Import from file`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		imported, err := storage.ImportJSON(data)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		appTracker.Import(imported.Habits, imported.Logs)

		color.Green("✓ Imported from %s", filename)
		fmt.Printf("  Habits: %d\n", len(imported.Habits))
		fmt.Printf("  Daily logs: %d\n", len(imported.Logs))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only include days since date (YYYY-MM-DD)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
