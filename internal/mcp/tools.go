// ABOUTME: MCP tool implementations for habits.
// ABOUTME: Add, toggle, delete, and list habits; record reflections; read day and stats.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/harperreed/habits/internal/analytics"
	"github.com/harperreed/habits/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// add_habit
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_habit",
		Description: "Create a habit in one of the categories Health, Productivity, Learning, Mental, Social",
	}, s.handleAddHabit)

	// toggle_habit
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "toggle_habit",
		Description: "Mark a habit done for a day, or undo it if already done",
	}, s.handleToggleHabit)

	// delete_habit
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_habit",
		Description: "Delete a habit by ID or ID prefix and remove it from every daily log",
	}, s.handleDeleteHabit)

	// list_habits
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_habits",
		Description: "List habits with streaks and completion counts, optionally filtered by category",
	}, s.handleListHabits)

	// update_reflection
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_reflection",
		Description: "Record mood (1-10) and notes for a day",
	}, s.handleUpdateReflection)

	// get_day
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_day",
		Description: "Get every habit's completion state plus mood and notes for a day",
	}, s.handleGetDay)

	// get_stats
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_stats",
		Description: "Get daily completion rate, daily mood, and category breakdown for the last week or month",
	}, s.handleGetStats)
}

// Tool input/output types

type addHabitInput struct {
	Name     string `json:"name" jsonschema:"Name of the habit"`
	Category string `json:"category" jsonschema:"One of Health, Productivity, Learning, Mental, Social"`
}

type habitOutput struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Category         string `json:"category"`
	Color            string `json:"color"`
	Streak           int    `json:"streak"`
	TotalCompletions int    `json:"total_completions"`
}

type addHabitOutput struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Color    string `json:"color"`
	Message  string `json:"message"`
}

type toggleHabitInput struct {
	ID   string `json:"id" jsonschema:"Habit ID or prefix"`
	Date string `json:"date,omitempty" jsonschema:"Day as YYYY-MM-DD, defaults to today"`
	Mood int    `json:"mood,omitempty" jsonschema:"Mood (1-10) used if this creates the day's log"`
}

type toggleHabitOutput struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Date             string `json:"date"`
	Completed        bool   `json:"completed"`
	Streak           int    `json:"streak"`
	TotalCompletions int    `json:"total_completions"`
	Message          string `json:"message"`
}

type habitIDInput struct {
	ID string `json:"id" jsonschema:"Habit ID or prefix"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type listHabitsInput struct {
	Category string `json:"category,omitempty" jsonschema:"Filter by category"`
}

type listHabitsOutput struct {
	Habits []habitOutput `json:"habits"`
}

type updateReflectionInput struct {
	Date  string `json:"date,omitempty" jsonschema:"Day as YYYY-MM-DD, defaults to today"`
	Mood  int    `json:"mood" jsonschema:"Mood from 1 to 10"`
	Notes string `json:"notes,omitempty" jsonschema:"Free-form reflection notes"`
}

type logOutput struct {
	Date            string   `json:"date"`
	Mood            int      `json:"mood"`
	Notes           string   `json:"notes"`
	CompletedHabits []string `json:"completed_habits"`
}

type getDayInput struct {
	Date string `json:"date,omitempty" jsonschema:"Day as YYYY-MM-DD, defaults to today"`
}

type dayHabitOutput struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Completed bool   `json:"completed"`
	Streak    int    `json:"streak"`
}

type dayOutput struct {
	Date      string           `json:"date"`
	Mood      int              `json:"mood"`
	Notes     string           `json:"notes"`
	Logged    bool             `json:"logged"`
	Completed int              `json:"completed"`
	Total     int              `json:"total"`
	Habits    []dayHabitOutput `json:"habits"`
}

type getStatsInput struct {
	Range string `json:"range,omitempty" jsonschema:"week or month, defaults to week"`
}

// Tool handlers

func (s *Server) handleAddHabit(ctx context.Context, req *mcp.CallToolRequest, input addHabitInput) (*mcp.CallToolResult, addHabitOutput, error) {
	category, err := models.ParseCategory(input.Category)
	if err != nil {
		return nil, addHabitOutput{}, err
	}

	h, err := s.tracker.AddHabit(input.Name, category)
	if err != nil {
		return nil, addHabitOutput{}, err
	}

	return nil, addHabitOutput{
		ID:       h.ShortID(),
		Name:     h.Name,
		Category: string(h.Category),
		Color:    h.Color,
		Message:  fmt.Sprintf("Added habit %s in %s (ID: %s)", h.Name, h.Category, h.ShortID()),
	}, nil
}

func (s *Server) handleToggleHabit(ctx context.Context, req *mcp.CallToolRequest, input toggleHabitInput) (*mcp.CallToolResult, toggleHabitOutput, error) {
	date, err := s.resolveDate(input.Date)
	if err != nil {
		return nil, toggleHabitOutput{}, err
	}
	// Zero means the mood was not given.
	if input.Mood != 0 {
		if err := checkMood(input.Mood); err != nil {
			return nil, toggleHabitOutput{}, err
		}
	}

	h, err := s.tracker.ResolveHabit(input.ID)
	if err != nil {
		return nil, toggleHabitOutput{}, err
	}

	if input.Mood != 0 {
		s.tracker.SetDraftMood(input.Mood)
	}

	completed, ok := s.tracker.ToggleCompletion(h.ID, date)
	if !ok {
		return nil, toggleHabitOutput{}, fmt.Errorf("habit not found: %s", input.ID)
	}

	updated, _ := s.tracker.Habit(h.ID)
	state := "done"
	if !completed {
		state = "not done"
	}

	return nil, toggleHabitOutput{
		ID:               updated.ShortID(),
		Name:             updated.Name,
		Date:             date,
		Completed:        completed,
		Streak:           updated.Streak,
		TotalCompletions: updated.TotalCompletions,
		Message:          fmt.Sprintf("Marked %s %s on %s (streak %d)", updated.Name, state, date, updated.Streak),
	}, nil
}

func (s *Server) handleDeleteHabit(ctx context.Context, req *mcp.CallToolRequest, input habitIDInput) (*mcp.CallToolResult, simpleOutput, error) {
	h, err := s.tracker.ResolveHabit(input.ID)
	if err != nil {
		return nil, simpleOutput{}, err
	}

	s.tracker.DeleteHabit(h.ID)

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted habit: %s (%s)", h.Name, h.ShortID()),
	}, nil
}

func (s *Server) handleListHabits(ctx context.Context, req *mcp.CallToolRequest, input listHabitsInput) (*mcp.CallToolResult, listHabitsOutput, error) {
	var filter models.Category
	if input.Category != "" {
		c, err := models.ParseCategory(input.Category)
		if err != nil {
			return nil, listHabitsOutput{}, err
		}
		filter = c
	}

	out := listHabitsOutput{Habits: []habitOutput{}}
	for _, h := range s.tracker.Habits() {
		if filter != "" && h.Category != filter {
			continue
		}
		out.Habits = append(out.Habits, toHabitOutput(h))
	}
	return nil, out, nil
}

func (s *Server) handleUpdateReflection(ctx context.Context, req *mcp.CallToolRequest, input updateReflectionInput) (*mcp.CallToolResult, logOutput, error) {
	date, err := s.resolveDate(input.Date)
	if err != nil {
		return nil, logOutput{}, err
	}
	if err := checkMood(input.Mood); err != nil {
		return nil, logOutput{}, err
	}

	l := s.tracker.UpdateReflection(date, input.Mood, strings.TrimSpace(input.Notes))
	return nil, logOutput{
		Date:            l.Date,
		Mood:            l.Mood,
		Notes:           l.Notes,
		CompletedHabits: l.CompletedHabits,
	}, nil
}

func (s *Server) handleGetDay(ctx context.Context, req *mcp.CallToolRequest, input getDayInput) (*mcp.CallToolResult, dayOutput, error) {
	date, err := s.resolveDate(input.Date)
	if err != nil {
		return nil, dayOutput{}, err
	}
	return nil, s.dayOutput(date), nil
}

func (s *Server) handleGetStats(ctx context.Context, req *mcp.CallToolRequest, input getStatsInput) (*mcp.CallToolResult, analytics.Summary, error) {
	w := analytics.Week
	if input.Range != "" {
		parsed, err := analytics.ParseWindow(input.Range)
		if err != nil {
			return nil, analytics.Summary{}, err
		}
		w = parsed
	}
	return nil, *s.summary(w), nil
}

func (s *Server) resolveDate(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return models.FormatDate(s.now()), nil
	}
	return models.ParseDate(strings.TrimSpace(input))
}

func (s *Server) dayOutput(date string) dayOutput {
	day := s.tracker.DayView(date)
	out := dayOutput{
		Date:      day.Date,
		Mood:      day.Mood,
		Notes:     day.Notes,
		Logged:    day.Logged,
		Completed: day.CompletedCount(),
		Total:     len(day.Habits),
		Habits:    make([]dayHabitOutput, 0, len(day.Habits)),
	}
	for _, dh := range day.Habits {
		out.Habits = append(out.Habits, dayHabitOutput{
			ID:        dh.Habit.ShortID(),
			Name:      dh.Habit.Name,
			Category:  string(dh.Habit.Category),
			Completed: dh.Completed,
			Streak:    dh.Habit.Streak,
		})
	}
	return out
}

func (s *Server) summary(w analytics.Window) *analytics.Summary {
	return analytics.Summarize(s.tracker.Habits(), s.tracker.Logs(), w, s.now())
}

func toHabitOutput(h *models.Habit) habitOutput {
	return habitOutput{
		ID:               h.ShortID(),
		Name:             h.Name,
		Category:         string(h.Category),
		Color:            h.Color,
		Streak:           h.Streak,
		TotalCompletions: h.TotalCompletions,
	}
}

// checkMood rejects moods outside the 1-10 scale.
func checkMood(mood int) error {
	if mood < models.MinMood || mood > models.MaxMood {
		return &models.ValidationError{Field: "mood", Reason: fmt.Sprintf("%d is outside %d-%d", mood, models.MinMood, models.MaxMood)}
	}
	return nil
}
