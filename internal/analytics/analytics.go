// ABOUTME: Read-only projections over habits and logs for the stats view.
// ABOUTME: Daily completion, daily mood, and per-category breakdown over a trailing window.
package analytics

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/harperreed/habits/internal/models"
)

// Window is the number of trailing days a projection covers, ending today.
type Window int

const (
	Week  Window = 7
	Month Window = 30
)

// ParseWindow accepts "week" or "month".
func ParseWindow(s string) (Window, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "week", "w", "7":
		return Week, nil
	case "month", "m", "30":
		return Month, nil
	default:
		return 0, &models.ValidationError{Field: "range", Reason: fmt.Sprintf("%q is not week or month", s)}
	}
}

func (w Window) String() string {
	switch w {
	case Week:
		return "week"
	case Month:
		return "month"
	default:
		return fmt.Sprintf("%d days", int(w))
	}
}

// Dates returns the window's ISO dates, oldest first, ending on today's
// calendar date in today's location.
func (w Window) Dates(today time.Time) []string {
	// Noon keeps AddDate clear of DST transitions.
	anchor := time.Date(today.Year(), today.Month(), today.Day(), 12, 0, 0, 0, today.Location())
	n := int(w)
	dates := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		dates = append(dates, models.FormatDate(anchor.AddDate(0, 0, -i)))
	}
	return dates
}

// CompletionPoint is one day of the completion chart.
type CompletionPoint struct {
	Date       string `json:"date"`
	Completed  int    `json:"completed"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
}

// Label renders the date as MM/DD.
func (p CompletionPoint) Label() string {
	return Label(p.Date)
}

// MoodPoint is one day of the mood chart. Mood 0 means no log that day.
type MoodPoint struct {
	Date string `json:"date"`
	Mood int    `json:"mood"`
}

// Label renders the date as MM/DD.
func (p MoodPoint) Label() string {
	return Label(p.Date)
}

// HasEntry reports whether a log existed for the day.
func (p MoodPoint) HasEntry() bool {
	return p.Mood != 0
}

// CategoryStat summarizes the habits in one category.
type CategoryStat struct {
	Category         models.Category `json:"category"`
	HabitCount       int             `json:"habit_count"`
	TotalCompletions int             `json:"total_completions"`
}

// Summary bundles every projection for one window.
type Summary struct {
	Window     string            `json:"window"`
	Completion []CompletionPoint `json:"completion"`
	Mood       []MoodPoint       `json:"mood"`
	Categories []CategoryStat    `json:"categories"`
}

// Label turns YYYY-MM-DD into MM/DD.
func Label(date string) string {
	parts := strings.SplitN(date, "-", 2)
	if len(parts) != 2 {
		return date
	}
	return strings.ReplaceAll(parts[1], "-", "/")
}

// DailyCompletion counts completed habits per day. Only ids of current
// habits are counted, so the percentage stays within [0,100].
func DailyCompletion(habits []*models.Habit, logs []*models.DailyLog, w Window, today time.Time) []CompletionPoint {
	known := make(map[string]bool, len(habits))
	for _, h := range habits {
		known[h.ID] = true
	}
	byDate := indexLogs(logs)
	total := len(habits)

	dates := w.Dates(today)
	points := make([]CompletionPoint, 0, len(dates))
	for _, d := range dates {
		completed := 0
		if l, ok := byDate[d]; ok {
			for _, id := range l.CompletedHabits {
				if known[id] {
					completed++
				}
			}
		}
		points = append(points, CompletionPoint{
			Date:       d,
			Completed:  completed,
			Total:      total,
			Percentage: percentage(completed, total),
		})
	}
	return points
}

// DailyMood reports each day's mood, or 0 when the day has no log.
func DailyMood(logs []*models.DailyLog, w Window, today time.Time) []MoodPoint {
	byDate := indexLogs(logs)
	dates := w.Dates(today)
	points := make([]MoodPoint, 0, len(dates))
	for _, d := range dates {
		mood := 0
		if l, ok := byDate[d]; ok {
			mood = l.Mood
		}
		points = append(points, MoodPoint{Date: d, Mood: mood})
	}
	return points
}

// CategoryBreakdown groups habits by category in display order, omitting
// categories without habits.
func CategoryBreakdown(habits []*models.Habit) []CategoryStat {
	stats := make([]CategoryStat, 0, len(models.AllCategories))
	for _, c := range models.AllCategories {
		stat := CategoryStat{Category: c}
		for _, h := range habits {
			if h.Category == c {
				stat.HabitCount++
				stat.TotalCompletions += h.TotalCompletions
			}
		}
		if stat.HabitCount > 0 {
			stats = append(stats, stat)
		}
	}
	return stats
}

// Summarize computes every projection for w.
func Summarize(habits []*models.Habit, logs []*models.DailyLog, w Window, today time.Time) *Summary {
	return &Summary{
		Window:     w.String(),
		Completion: DailyCompletion(habits, logs, w, today),
		Mood:       DailyMood(logs, w, today),
		Categories: CategoryBreakdown(habits),
	}
}

func percentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	p := int(math.Round(float64(completed) / float64(total) * 100))
	return min(max(p, 0), 100)
}

func indexLogs(logs []*models.DailyLog) map[string]*models.DailyLog {
	byDate := make(map[string]*models.DailyLog, len(logs))
	for _, l := range logs {
		byDate[l.Date] = l
	}
	return byDate
}
