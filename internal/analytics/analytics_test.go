// ABOUTME: Tests for analytics projections.
// ABOUTME: Covers window dates, completion percentages, mood sentinel, and category breakdown.
package analytics

import (
	"testing"
	"time"

	"github.com/harperreed/habits/internal/models"
	"github.com/harperreed/habits/internal/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2024, time.March, 3, 9, 30, 0, 0, time.UTC)

func TestWindowDates(t *testing.T) {
	dates := Week.Dates(today)
	require.Len(t, dates, 7)
	assert.Equal(t, "2024-02-26", dates[0])
	assert.Equal(t, "2024-03-03", dates[6])

	month := Month.Dates(today)
	require.Len(t, month, 30)
	assert.Equal(t, "2024-02-03", month[0])
	assert.Equal(t, "2024-03-03", month[29])
}

func TestParseWindow(t *testing.T) {
	w, err := ParseWindow("week")
	require.NoError(t, err)
	assert.Equal(t, Week, w)

	w, err = ParseWindow("Month")
	require.NoError(t, err)
	assert.Equal(t, Month, w)

	_, err = ParseWindow("year")
	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "03/03", Label("2024-03-03"))
	assert.Equal(t, "garbage", Label("garbage"))
}

func TestDailyCompletion(t *testing.T) {
	habits := []*models.Habit{
		{ID: "a", Category: models.CategoryHealth},
		{ID: "b", Category: models.CategoryHealth},
		{ID: "c", Category: models.CategoryMental},
	}
	logs := []*models.DailyLog{
		{Date: "2024-03-03", CompletedHabits: []string{"a", "b"}, Mood: 7},
		{Date: "2024-03-01", CompletedHabits: []string{"a", "b", "c"}, Mood: 4},
		{Date: "2024-02-27", CompletedHabits: []string{"deleted"}, Mood: 2},
		{Date: "2023-01-01", CompletedHabits: []string{"a"}, Mood: 2},
	}

	points := DailyCompletion(habits, logs, Week, today)
	require.Len(t, points, 7)

	last := points[6]
	assert.Equal(t, "2024-03-03", last.Date)
	assert.Equal(t, 2, last.Completed)
	assert.Equal(t, 3, last.Total)
	assert.Equal(t, 67, last.Percentage)
	assert.Equal(t, "03/03", last.Label())

	assert.Equal(t, 100, points[4].Percentage)
	assert.Equal(t, 0, points[1].Completed, "dangling ids are not counted")

	for _, p := range points {
		assert.GreaterOrEqual(t, p.Percentage, 0)
		assert.LessOrEqual(t, p.Percentage, 100)
	}
}

func TestDailyCompletionNoHabits(t *testing.T) {
	logs := []*models.DailyLog{{Date: "2024-03-03", CompletedHabits: []string{"x"}, Mood: 5}}

	for _, p := range DailyCompletion(nil, logs, Month, today) {
		assert.Equal(t, 0, p.Percentage)
		assert.Equal(t, 0, p.Total)
	}
}

func TestDailyMood(t *testing.T) {
	logs := []*models.DailyLog{
		{Date: "2024-03-02", Mood: 8},
	}
	points := DailyMood(logs, Week, today)
	require.Len(t, points, 7)

	assert.Equal(t, 8, points[5].Mood)
	assert.True(t, points[5].HasEntry())
	assert.Equal(t, 0, points[6].Mood)
	assert.False(t, points[6].HasEntry())
}

func TestCategoryBreakdown(t *testing.T) {
	habits := []*models.Habit{
		{ID: "a", Category: models.CategorySocial, TotalCompletions: 2},
		{ID: "b", Category: models.CategoryHealth, TotalCompletions: 5},
		{ID: "c", Category: models.CategoryHealth, TotalCompletions: 1},
	}

	stats := CategoryBreakdown(habits)
	require.Len(t, stats, 2)
	assert.Equal(t, CategoryStat{Category: models.CategoryHealth, HabitCount: 2, TotalCompletions: 6}, stats[0])
	assert.Equal(t, CategoryStat{Category: models.CategorySocial, HabitCount: 1, TotalCompletions: 2}, stats[1])

	assert.Empty(t, CategoryBreakdown(nil))
}

func TestCategoryBreakdownScenario(t *testing.T) {
	tr := tracker.New(nil, nil, nil)
	_, err := tr.AddHabit("X", models.CategoryHealth)
	require.NoError(t, err)
	_, err = tr.AddHabit("Y", models.CategoryHealth)
	require.NoError(t, err)

	stats := CategoryBreakdown(tr.Habits())
	require.Len(t, stats, 1)
	assert.Equal(t, models.CategoryHealth, stats[0].Category)
	assert.Equal(t, 2, stats[0].HabitCount)
}

func TestDeletedHabitLeavesBreakdown(t *testing.T) {
	tr := tracker.New(nil, nil, nil)
	keep, _ := tr.AddHabit("Keep", models.CategoryHealth)
	gone, _ := tr.AddHabit("Gone", models.CategoryLearning)
	tr.ToggleCompletion(gone.ID, "2024-03-03")

	tr.DeleteHabit(gone.ID)

	stats := CategoryBreakdown(tr.Habits())
	require.Len(t, stats, 1)
	assert.Equal(t, models.CategoryHealth, stats[0].Category)

	points := DailyCompletion(tr.Habits(), tr.Logs(), Week, today)
	assert.Equal(t, 0, points[6].Completed)
	_ = keep
}

func TestSummarize(t *testing.T) {
	habits := []*models.Habit{{ID: "a", Category: models.CategoryLearning, TotalCompletions: 1}}
	logs := []*models.DailyLog{{Date: "2024-03-03", CompletedHabits: []string{"a"}, Mood: 9}}

	s := Summarize(habits, logs, Week, today)
	assert.Equal(t, "week", s.Window)
	assert.Len(t, s.Completion, 7)
	assert.Len(t, s.Mood, 7)
	assert.Len(t, s.Categories, 1)
	assert.Equal(t, 100, s.Completion[6].Percentage)
	assert.Equal(t, 9, s.Mood[6].Mood)
}
