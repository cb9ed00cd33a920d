// ABOUTME: Habit model and Category enum for habit tracking.
// ABOUTME: Defines the fixed category list, color palette, and completion bookkeeping.
package models

import (
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Category groups habits for the breakdown view.
type Category string

const (
	CategoryHealth       Category = "Health"
	CategoryProductivity Category = "Productivity"
	CategoryLearning     Category = "Learning"
	CategoryMental       Category = "Mental"
	CategorySocial       Category = "Social"
)

// AllCategories lists categories in display order. A habit's color is derived
// from its category's position in this list.
var AllCategories = []Category{
	CategoryHealth,
	CategoryProductivity,
	CategoryLearning,
	CategoryMental,
	CategorySocial,
}

// Palette holds the habit display colors.
var Palette = []string{"#FF6B6B", "#4ECDC4", "#FFD166", "#6A0572", "#AB83A1"}

// ParseCategory matches a category name case-insensitively.
func ParseCategory(s string) (Category, error) {
	for _, c := range AllCategories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", &ValidationError{Field: "category", Reason: "unknown category " + s}
}

// IsValidCategory checks if a string is exactly a known category.
func IsValidCategory(s string) bool {
	return slices.Contains(AllCategories, Category(s))
}

// Color returns the palette color for the category, cycling through the
// palette. Unknown categories fall back to the first color.
func (c Category) Color() string {
	idx := slices.Index(AllCategories, c)
	if idx < 0 {
		idx = 0
	}
	return Palette[idx%len(Palette)]
}

// Habit is a tracked habit with rolling statistics.
type Habit struct {
	ID               string   `json:"id" yaml:"id"`
	Name             string   `json:"name" yaml:"name"`
	Category         Category `json:"category" yaml:"category"`
	Streak           int      `json:"streak" yaml:"streak"`
	TotalCompletions int      `json:"totalCompletions" yaml:"total_completions"`
	CompletionDates  []string `json:"completionDates" yaml:"completion_dates"`
	Color            string   `json:"color" yaml:"color"`
}

// NewHabit validates input and creates a Habit with zero stats.
func NewHabit(name string, category Category) (*Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if !IsValidCategory(string(category)) {
		return nil, &ValidationError{Field: "category", Reason: "unknown category " + string(category)}
	}
	return &Habit{
		ID:              uuid.New().String(),
		Name:            name,
		Category:        category,
		CompletionDates: []string{},
		Color:           category.Color(),
	}, nil
}

// ShortID returns the id prefix shown in listings.
func (h *Habit) ShortID() string {
	if len(h.ID) > 8 {
		return h.ID[:8]
	}
	return h.ID
}

// CompletedOn reports whether date is in CompletionDates.
func (h *Habit) CompletedOn(date string) bool {
	return slices.Contains(h.CompletionDates, date)
}

// MarkCompleted records a completion for date. Streak grows by one for every
// newly recorded date, without checking that it is adjacent to the previous
// completion. Returns false if the date was already recorded.
func (h *Habit) MarkCompleted(date string) bool {
	if h.CompletedOn(date) {
		return false
	}
	h.CompletionDates = append(h.CompletionDates, date)
	h.TotalCompletions++
	h.Streak++
	return true
}

// MarkIncomplete removes date from the completions and resets the streak.
func (h *Habit) MarkIncomplete(date string) {
	idx := slices.Index(h.CompletionDates, date)
	if idx >= 0 {
		h.CompletionDates = slices.Delete(h.CompletionDates, idx, idx+1)
		if h.TotalCompletions > 0 {
			h.TotalCompletions--
		}
	}
	h.Streak = 0
}

// Normalize collapses duplicate completion dates and makes TotalCompletions
// agree with them. Streak is clamped at zero.
func (h *Habit) Normalize() {
	if h.CompletionDates == nil {
		h.CompletionDates = []string{}
	}
	seen := make(map[string]bool, len(h.CompletionDates))
	dates := h.CompletionDates[:0]
	for _, d := range h.CompletionDates {
		if seen[d] {
			continue
		}
		seen[d] = true
		dates = append(dates, d)
	}
	h.CompletionDates = dates
	h.TotalCompletions = len(dates)
	if h.Streak < 0 {
		h.Streak = 0
	}
	if h.Color == "" {
		h.Color = h.Category.Color()
	}
}

// Clone returns a deep copy.
func (h *Habit) Clone() *Habit {
	c := *h
	c.CompletionDates = slices.Clone(h.CompletionDates)
	if c.CompletionDates == nil {
		c.CompletionDates = []string{}
	}
	return &c
}

// UniqueHabits drops nil entries and any habit reusing an earlier id.
func UniqueHabits(habits []*Habit) []*Habit {
	out := make([]*Habit, 0, len(habits))
	seen := make(map[string]bool, len(habits))
	for _, h := range habits {
		if h == nil || seen[h.ID] {
			continue
		}
		seen[h.ID] = true
		out = append(out, h)
	}
	return out
}
