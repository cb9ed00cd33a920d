// ABOUTME: Export and import functionality for habit data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package storage

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/harperreed/habits/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is written into every export.
const ExportVersion = "1.0"

// ExportData represents the full export format for habit data.
type ExportData struct {
	Version    string             `json:"version" yaml:"version"`
	ExportedAt time.Time          `json:"exported_at" yaml:"exported_at"`
	Tool       string             `json:"tool" yaml:"tool"`
	Habits     []*models.Habit    `json:"habits" yaml:"habits"`
	Logs       []*models.DailyLog `json:"logs" yaml:"logs"`
}

// NewExportData wraps both collections for export.
func NewExportData(habits []*models.Habit, logs []*models.DailyLog) *ExportData {
	return &ExportData{
		Version:    ExportVersion,
		ExportedAt: time.Now(),
		Tool:       "habits",
		Habits:     habits,
		Logs:       logs,
	}
}

// ExportJSON exports all data as JSON.
func (e *ExportData) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(e, "", "  ")
}

// ExportYAML exports all data as YAML, with habits grouped by category.
func (e *ExportData) ExportYAML() ([]byte, error) {
	yamlData := struct {
		Version    string                 `yaml:"version"`
		ExportedAt string                 `yaml:"exported_at"`
		Tool       string                 `yaml:"tool"`
		Habits     map[string][]yamlHabit `yaml:"habits"`
		Logs       []yamlLog              `yaml:"logs"`
	}{
		Version:    e.Version,
		ExportedAt: e.ExportedAt.Format(time.RFC3339),
		Tool:       e.Tool,
		Habits:     make(map[string][]yamlHabit),
		Logs:       make([]yamlLog, 0, len(e.Logs)),
	}

	names := habitNames(e.Habits)
	for _, h := range e.Habits {
		yamlData.Habits[string(h.Category)] = append(yamlData.Habits[string(h.Category)], yamlHabit{
			ID:               h.ShortID(),
			Name:             h.Name,
			Streak:           h.Streak,
			TotalCompletions: h.TotalCompletions,
			CompletionDates:  h.CompletionDates,
		})
	}

	for _, l := range sortedLogs(e.Logs) {
		yamlData.Logs = append(yamlData.Logs, yamlLog{
			Date:      l.Date,
			Mood:      l.Mood,
			Notes:     l.Notes,
			Completed: completedNames(l, names),
		})
	}

	return yaml.Marshal(yamlData)
}

type yamlHabit struct {
	ID               string   `yaml:"id"`
	Name             string   `yaml:"name"`
	Streak           int      `yaml:"streak"`
	TotalCompletions int      `yaml:"total_completions"`
	CompletionDates  []string `yaml:"completion_dates,omitempty"`
}

type yamlLog struct {
	Date      string   `yaml:"date"`
	Mood      int      `yaml:"mood"`
	Notes     string   `yaml:"notes,omitempty"`
	Completed []string `yaml:"completed,omitempty"`
}

// ExportMarkdown exports data as Markdown tables. When since is non-empty,
// only logs on or after that ISO date are included.
func (e *ExportData) ExportMarkdown(since string) string {
	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# Habits Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	sb.WriteString("## Habits\n\n")
	sb.WriteString("| Habit | Category | Streak | Completions |\n")
	sb.WriteString("|-------|----------|--------|-------------|\n")
	for _, h := range e.Habits {
		sb.WriteString(fmt.Sprintf("| %s | %s | %d | %d |\n",
			h.Name, h.Category, h.Streak, h.TotalCompletions))
	}

	names := habitNames(e.Habits)
	var rows []*models.DailyLog
	for _, l := range sortedLogs(e.Logs) {
		// ISO dates compare lexically
		if since != "" && l.Date < since {
			continue
		}
		rows = append(rows, l)
	}

	if len(rows) > 0 {
		sb.WriteString("\n## Daily Log\n\n")
		sb.WriteString("| Date | Completed | Mood | Notes |\n")
		sb.WriteString("|------|-----------|------|-------|\n")
		for _, l := range rows {
			sb.WriteString(fmt.Sprintf("| %s | %s | %d | %s |\n",
				l.Date, strings.Join(completedNames(l, names), ", "), l.Mood, l.Notes))
		}
	}

	return sb.String()
}

// ImportJSON parses a JSON export and normalizes its contents.
func ImportJSON(data []byte) (*ExportData, error) {
	var exportData ExportData
	if err := json.Unmarshal(data, &exportData); err != nil {
		return nil, fmt.Errorf("unmarshal JSON: %w", err)
	}

	habits := make([]*models.Habit, 0, len(exportData.Habits))
	for _, h := range exportData.Habits {
		if h == nil {
			continue
		}
		if h.ID == "" || strings.TrimSpace(h.Name) == "" {
			return nil, &models.ValidationError{Field: "habit", Reason: "id and name are required"}
		}
		if !models.IsValidCategory(string(h.Category)) {
			return nil, &models.ValidationError{Field: "category", Reason: "unknown category " + string(h.Category)}
		}
		h.Normalize()
		habits = append(habits, h)
	}

	logs := make([]*models.DailyLog, 0, len(exportData.Logs))
	for _, l := range exportData.Logs {
		if l == nil {
			continue
		}
		if _, err := models.ParseDate(l.Date); err != nil {
			return nil, err
		}
		if l.CompletedHabits == nil {
			l.CompletedHabits = []string{}
		}
		l.Mood = models.ClampMood(l.Mood)
		logs = append(logs, l)
	}

	exportData.Habits = models.UniqueHabits(habits)
	exportData.Logs = models.MergeLogs(logs)
	return &exportData, nil
}

func habitNames(habits []*models.Habit) map[string]string {
	names := make(map[string]string, len(habits))
	for _, h := range habits {
		names[h.ID] = h.Name
	}
	return names
}

func completedNames(l *models.DailyLog, names map[string]string) []string {
	var out []string
	for _, id := range l.CompletedHabits {
		if name, ok := names[id]; ok {
			out = append(out, name)
		}
	}
	return out
}

func sortedLogs(logs []*models.DailyLog) []*models.DailyLog {
	sorted := slices.Clone(logs)
	slices.SortFunc(sorted, func(a, b *models.DailyLog) int {
		return strings.Compare(a.Date, b.Date)
	})
	return sorted
}
