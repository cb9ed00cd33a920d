// ABOUTME: Tests for Habit model and Category.
// ABOUTME: Validates palette mapping, constructor validation, and completion bookkeeping.
package models

import (
	"errors"
	"testing"
)

func TestCategoryColor(t *testing.T) {
	tests := []struct {
		category Category
		want     string
	}{
		{CategoryHealth, "#FF6B6B"},
		{CategoryProductivity, "#4ECDC4"},
		{CategoryLearning, "#FFD166"},
		{CategoryMental, "#6A0572"},
		{CategorySocial, "#AB83A1"},
		{Category("Unknown"), "#FF6B6B"},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			if got := tt.category.Color(); got != tt.want {
				t.Errorf("%s.Color() = %s, want %s", tt.category, got, tt.want)
			}
		})
	}
}

func TestParseCategory(t *testing.T) {
	got, err := ParseCategory("mental")
	if err != nil {
		t.Fatalf("ParseCategory failed: %v", err)
	}
	if got != CategoryMental {
		t.Errorf("ParseCategory(mental) = %s, want Mental", got)
	}

	_, err = ParseCategory("Finance")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "category" {
		t.Errorf("Field = %s, want category", verr.Field)
	}
}

func TestNewHabit(t *testing.T) {
	h, err := NewHabit("  Meditate ", CategoryMental)
	if err != nil {
		t.Fatalf("NewHabit failed: %v", err)
	}

	if h.ID == "" {
		t.Error("expected ID to be set")
	}
	if h.Name != "Meditate" {
		t.Errorf("Name = %q, want Meditate", h.Name)
	}
	if h.Streak != 0 || h.TotalCompletions != 0 || len(h.CompletionDates) != 0 {
		t.Errorf("expected zero stats, got %+v", h)
	}
	if h.Color != "#6A0572" {
		t.Errorf("Color = %s, want #6A0572", h.Color)
	}
}

func TestNewHabitRejectsBlankName(t *testing.T) {
	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := NewHabit(name, CategoryHealth)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("NewHabit(%q) error = %v, want ValidationError", name, err)
			continue
		}
		if verr.Field != "name" {
			t.Errorf("Field = %s, want name", verr.Field)
		}
	}
}

func TestNewHabitRejectsUnknownCategory(t *testing.T) {
	if _, err := NewHabit("Read", Category("Hobbies")); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestMarkCompletedAndIncomplete(t *testing.T) {
	h, _ := NewHabit("Run", CategoryHealth)

	if !h.MarkCompleted("2024-01-01") {
		t.Fatal("first MarkCompleted should record the date")
	}
	if h.MarkCompleted("2024-01-01") {
		t.Error("second MarkCompleted for same date should be a no-op")
	}
	h.MarkCompleted("2024-01-05")

	if h.Streak != 2 {
		t.Errorf("Streak = %d, want 2 (no adjacency check)", h.Streak)
	}
	if h.TotalCompletions != 2 || len(h.CompletionDates) != 2 {
		t.Errorf("TotalCompletions = %d, dates = %v", h.TotalCompletions, h.CompletionDates)
	}

	h.MarkIncomplete("2024-01-01")
	if h.Streak != 0 {
		t.Errorf("Streak = %d, want 0 after uncomplete", h.Streak)
	}
	if h.TotalCompletions != 1 || len(h.CompletionDates) != 1 {
		t.Errorf("TotalCompletions = %d, dates = %v", h.TotalCompletions, h.CompletionDates)
	}

	// Removing a date that was never recorded leaves the count alone.
	h.MarkIncomplete("2030-01-01")
	if h.TotalCompletions != 1 {
		t.Errorf("TotalCompletions = %d, want 1", h.TotalCompletions)
	}
}

func TestNormalize(t *testing.T) {
	h := &Habit{
		ID:               "h1",
		Name:             "Meditate",
		Category:         CategoryMental,
		Streak:           3,
		TotalCompletions: 15,
		CompletionDates:  []string{"2024-01-01", "2024-01-01", "2024-01-02"},
	}
	h.Normalize()

	if h.TotalCompletions != 2 {
		t.Errorf("TotalCompletions = %d, want 2", h.TotalCompletions)
	}
	if len(h.CompletionDates) != 2 {
		t.Errorf("CompletionDates = %v, want 2 unique", h.CompletionDates)
	}
	if h.Color != "#6A0572" {
		t.Errorf("Color = %q, want category color", h.Color)
	}
	if h.Streak != 3 {
		t.Errorf("Streak = %d, want untouched 3", h.Streak)
	}
}

func TestCloneIsDeep(t *testing.T) {
	h, _ := NewHabit("Read", CategoryLearning)
	h.MarkCompleted("2024-02-01")

	c := h.Clone()
	c.CompletionDates[0] = "changed"

	if h.CompletionDates[0] != "2024-02-01" {
		t.Error("Clone shares CompletionDates with original")
	}
}

func TestShortID(t *testing.T) {
	h := &Habit{ID: "abc"}
	if h.ShortID() != "abc" {
		t.Errorf("ShortID() = %s, want abc", h.ShortID())
	}
	h.ID = "abcdef0123456789"
	if h.ShortID() != "abcdef01" {
		t.Errorf("ShortID() = %s, want abcdef01", h.ShortID())
	}
}

func TestUniqueHabits(t *testing.T) {
	a := &Habit{ID: "h1", Name: "Run"}
	b := &Habit{ID: "h2", Name: "Read"}
	dup := &Habit{ID: "h1", Name: "Run again"}

	got := UniqueHabits([]*Habit{a, nil, b, dup})

	if len(got) != 2 {
		t.Fatalf("expected 2 habits, got %d", len(got))
	}
	if got[0].Name != "Run" || got[1].Name != "Read" {
		t.Errorf("got %s, %s; want first occurrence kept in order", got[0].Name, got[1].Name)
	}
}
