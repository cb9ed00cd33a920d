// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Covers NewServer, tool handlers, and resource handlers against an in-memory tracker.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/habits/internal/analytics"
	"github.com/harperreed/habits/internal/models"
	"github.com/harperreed/habits/internal/storage"
	"github.com/harperreed/habits/internal/tracker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var fixedNow = time.Date(2024, time.January, 7, 20, 0, 0, 0, time.UTC)

// setupTestServer creates a server over an empty tracker backed by memory.
func setupTestServer(t *testing.T) *Server {
	t.Helper()

	store := storage.NewMemoryStore()
	store.Save(storage.HabitsKey, []byte(`[]`))
	tr, err := tracker.Open(storage.NewAdapter(store, nil))
	if err != nil {
		t.Fatalf("Failed to open tracker: %v", err)
	}

	server, err := NewServer(tr)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	server.now = func() time.Time { return fixedNow }
	return server
}

func addHabit(t *testing.T, s *Server, name, category string) addHabitOutput {
	t.Helper()
	_, out, err := s.handleAddHabit(context.Background(), nil, addHabitInput{Name: name, Category: category})
	if err != nil {
		t.Fatalf("add_habit failed: %v", err)
	}
	return out
}

func TestNewServer(t *testing.T) {
	server := setupTestServer(t)

	if server.mcpServer == nil {
		t.Error("Expected non-nil mcpServer")
	}
	if server.tracker == nil {
		t.Error("Expected non-nil tracker")
	}

	if _, err := NewServer(nil); err == nil {
		t.Error("Expected error for nil tracker")
	}
}

func TestHandleAddHabit(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		input     addHabitInput
		wantErr   bool
		errSubstr string
	}{
		{name: "valid habit", input: addHabitInput{Name: "Meditate", Category: "Mental"}},
		{name: "lowercase category", input: addHabitInput{Name: "Run", Category: "health"}},
		{name: "blank name", input: addHabitInput{Name: "  ", Category: "Health"}, wantErr: true, errSubstr: "name"},
		{name: "unknown category", input: addHabitInput{Name: "Sleep", Category: "Rest"}, wantErr: true, errSubstr: "category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out, err := server.handleAddHabit(ctx, nil, tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error")
				}
				if !strings.Contains(err.Error(), tt.errSubstr) {
					t.Errorf("error %q should mention %q", err, tt.errSubstr)
				}
				var verr *models.ValidationError
				if !errors.As(err, &verr) {
					t.Errorf("expected ValidationError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if out.ID == "" || out.Color == "" {
				t.Errorf("incomplete output: %+v", out)
			}
		})
	}

	if n := len(server.tracker.Habits()); n != 2 {
		t.Errorf("Expected 2 habits, got %d", n)
	}
}

func TestHandleToggleHabit(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()
	h := addHabit(t, server, "Meditate", "Mental")

	_, out, err := server.handleToggleHabit(ctx, nil, toggleHabitInput{ID: h.ID, Date: "2024-01-01", Mood: 8})
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !out.Completed || out.Streak != 1 || out.TotalCompletions != 1 {
		t.Errorf("after first toggle: %+v", out)
	}
	l, ok := server.tracker.Log("2024-01-01")
	if !ok || l.Mood != 8 {
		t.Errorf("expected log created with mood 8, got %+v", l)
	}

	_, out, err = server.handleToggleHabit(ctx, nil, toggleHabitInput{ID: h.ID, Date: "2024-01-01"})
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if out.Completed || out.Streak != 0 || out.TotalCompletions != 0 {
		t.Errorf("after second toggle: %+v", out)
	}
}

func TestHandleToggleHabitDefaultsToToday(t *testing.T) {
	server := setupTestServer(t)
	h := addHabit(t, server, "Run", "Health")

	_, out, err := server.handleToggleHabit(context.Background(), nil, toggleHabitInput{ID: h.ID})
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if out.Date != "2024-01-07" {
		t.Errorf("Date = %s, want 2024-01-07", out.Date)
	}
}

func TestHandleToggleHabitErrors(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()
	h := addHabit(t, server, "Run", "Health")

	if _, _, err := server.handleToggleHabit(ctx, nil, toggleHabitInput{ID: "nope"}); !errors.Is(err, tracker.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, _, err := server.handleToggleHabit(ctx, nil, toggleHabitInput{ID: h.ID, Date: "Jan 1"}); err == nil {
		t.Error("expected error for bad date")
	}
	for _, mood := range []int{-1, 11} {
		_, _, err := server.handleToggleHabit(ctx, nil, toggleHabitInput{ID: h.ID, Date: "2024-01-01", Mood: mood})
		var verr *models.ValidationError
		if !errors.As(err, &verr) || verr.Field != "mood" {
			t.Errorf("mood %d: expected mood ValidationError, got %v", mood, err)
		}
	}
	if len(server.tracker.Logs()) != 0 {
		t.Error("failed toggles must not create logs")
	}
	if server.tracker.DraftMood() != models.DefaultMood {
		t.Errorf("rejected mood changed draft mood to %d", server.tracker.DraftMood())
	}
}

func TestHandleDeleteHabit(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()
	h := addHabit(t, server, "Run", "Health")
	server.handleToggleHabit(ctx, nil, toggleHabitInput{ID: h.ID, Date: "2024-01-01"})

	_, out, err := server.handleDeleteHabit(ctx, nil, habitIDInput{ID: h.ID})
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if !strings.Contains(out.Message, "Run") {
		t.Errorf("unexpected message: %s", out.Message)
	}
	if len(server.tracker.Habits()) != 0 {
		t.Error("habit still present")
	}
	l, _ := server.tracker.Log("2024-01-01")
	if len(l.CompletedHabits) != 0 {
		t.Errorf("habit id left in log: %v", l.CompletedHabits)
	}

	if _, _, err := server.handleDeleteHabit(ctx, nil, habitIDInput{ID: h.ID}); err == nil {
		t.Error("expected error deleting missing habit")
	}
}

func TestHandleListHabits(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()
	addHabit(t, server, "Run", "Health")
	addHabit(t, server, "Lift", "Health")
	addHabit(t, server, "Read", "Learning")

	_, all, err := server.handleListHabits(ctx, nil, listHabitsInput{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all.Habits) != 3 {
		t.Errorf("Expected 3 habits, got %d", len(all.Habits))
	}

	_, health, err := server.handleListHabits(ctx, nil, listHabitsInput{Category: "Health"})
	if err != nil {
		t.Fatalf("filtered list failed: %v", err)
	}
	if len(health.Habits) != 2 {
		t.Errorf("Expected 2 Health habits, got %d", len(health.Habits))
	}

	if _, _, err := server.handleListHabits(ctx, nil, listHabitsInput{Category: "Sleep"}); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestHandleUpdateReflection(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()
	h := addHabit(t, server, "Run", "Health")
	server.handleToggleHabit(ctx, nil, toggleHabitInput{ID: h.ID, Date: "2024-01-05"})

	_, out, err := server.handleUpdateReflection(ctx, nil, updateReflectionInput{Date: "2024-01-05", Mood: 9, Notes: " great "})
	if err != nil {
		t.Fatalf("update_reflection failed: %v", err)
	}
	if out.Mood != 9 || out.Notes != "great" {
		t.Errorf("unexpected output: %+v", out)
	}
	if len(out.CompletedHabits) != 1 {
		t.Errorf("completions should be untouched: %v", out.CompletedHabits)
	}

	for _, mood := range []int{0, 11} {
		if _, _, err := server.handleUpdateReflection(ctx, nil, updateReflectionInput{Mood: mood}); err == nil {
			t.Errorf("expected error for mood %d", mood)
		}
	}
}

func TestHandleGetDay(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()
	h := addHabit(t, server, "Run", "Health")
	addHabit(t, server, "Read", "Learning")

	_, empty, err := server.handleGetDay(ctx, nil, getDayInput{})
	if err != nil {
		t.Fatalf("get_day failed: %v", err)
	}
	if empty.Logged || empty.Mood != models.DefaultMood || empty.Notes != "" || empty.Total != 2 {
		t.Errorf("unexpected default day: %+v", empty)
	}

	server.handleToggleHabit(ctx, nil, toggleHabitInput{ID: h.ID})
	_, day, _ := server.handleGetDay(ctx, nil, getDayInput{Date: "2024-01-07"})
	if !day.Logged || day.Completed != 1 {
		t.Errorf("unexpected day after toggle: %+v", day)
	}
}

func TestHandleGetStats(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()
	h := addHabit(t, server, "Run", "Health")
	addHabit(t, server, "Read", "Learning")
	server.handleToggleHabit(ctx, nil, toggleHabitInput{ID: h.ID})

	_, week, err := server.handleGetStats(ctx, nil, getStatsInput{})
	if err != nil {
		t.Fatalf("get_stats failed: %v", err)
	}
	if week.Window != "week" || len(week.Completion) != 7 {
		t.Fatalf("unexpected week summary: %+v", week)
	}
	if last := week.Completion[6]; last.Percentage != 50 {
		t.Errorf("today's completion = %d%%, want 50%%", last.Percentage)
	}
	if len(week.Categories) != 2 {
		t.Errorf("Expected 2 categories, got %d", len(week.Categories))
	}

	_, month, err := server.handleGetStats(ctx, nil, getStatsInput{Range: "month"})
	if err != nil {
		t.Fatalf("get_stats month failed: %v", err)
	}
	if len(month.Mood) != 30 {
		t.Errorf("Expected 30 mood points, got %d", len(month.Mood))
	}

	if _, _, err := server.handleGetStats(ctx, nil, getStatsInput{Range: "year"}); err == nil {
		t.Error("expected error for unknown range")
	}
}

func readResource(t *testing.T, res *mcp.ReadResourceResult, err error, wantURI string) string {
	t.Helper()
	if err != nil {
		t.Fatalf("resource failed: %v", err)
	}
	if len(res.Contents) != 1 {
		t.Fatalf("Expected 1 content, got %d", len(res.Contents))
	}
	if res.Contents[0].URI != wantURI {
		t.Errorf("URI = %s, want %s", res.Contents[0].URI, wantURI)
	}
	if res.Contents[0].MIMEType != "application/json" {
		t.Errorf("MIMEType = %s", res.Contents[0].MIMEType)
	}
	return res.Contents[0].Text
}

func TestTodayResource(t *testing.T) {
	server := setupTestServer(t)
	addHabit(t, server, "Run", "Health")

	res, err := server.handleTodayResource(context.Background(), nil)
	text := readResource(t, res, err, todayURI)

	var day dayOutput
	if err := json.Unmarshal([]byte(text), &day); err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if day.Date != "2024-01-07" || len(day.Habits) != 1 {
		t.Errorf("unexpected day: %+v", day)
	}
}

func TestStatsResources(t *testing.T) {
	server := setupTestServer(t)
	addHabit(t, server, "Run", "Health")

	for uri, w := range map[string]analytics.Window{weekStatsURI: analytics.Week, monthStatsURI: analytics.Month} {
		res, err := server.statsResource(uri, w)(context.Background(), nil)
		text := readResource(t, res, err, uri)

		var summary analytics.Summary
		if err := json.Unmarshal([]byte(text), &summary); err != nil {
			t.Fatalf("Failed to parse: %v", err)
		}
		if len(summary.Completion) != int(w) {
			t.Errorf("%s: %d points, want %d", uri, len(summary.Completion), int(w))
		}
	}
}

func TestCategoriesResource(t *testing.T) {
	server := setupTestServer(t)
	addHabit(t, server, "X", "Health")
	addHabit(t, server, "Y", "Health")

	res, err := server.handleCategoriesResource(context.Background(), nil)
	text := readResource(t, res, err, categoriesURI)

	var parsed struct {
		Categories []analytics.CategoryStat `json:"categories"`
		Palette    map[string]string        `json:"palette"`
	}
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if len(parsed.Categories) != 1 || parsed.Categories[0].HabitCount != 2 {
		t.Errorf("unexpected categories: %+v", parsed.Categories)
	}
	if parsed.Palette["Health"] != "#FF6B6B" {
		t.Errorf("palette = %v", parsed.Palette)
	}
}
