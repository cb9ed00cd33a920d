// ABOUTME: DailyLog model for per-day completions, mood, and notes.
// ABOUTME: Also holds the ISO date helpers shared by tracker and analytics.
package models

import (
	"fmt"
	"slices"
	"time"
)

// DateLayout is the ISO date format used as the log key.
const DateLayout = "2006-01-02"

const (
	MinMood     = 1
	MaxMood     = 10
	DefaultMood = 5
)

// DailyLog records what happened on one date.
type DailyLog struct {
	Date            string   `json:"date" yaml:"date"`
	CompletedHabits []string `json:"completedHabits" yaml:"completed_habits"`
	Mood            int      `json:"mood" yaml:"mood"`
	Notes           string   `json:"notes" yaml:"notes"`
}

// NewDailyLog creates an empty log for date with the given mood.
func NewDailyLog(date string, mood int) *DailyLog {
	return &DailyLog{
		Date:            date,
		CompletedHabits: []string{},
		Mood:            ClampMood(mood),
	}
}

// DefaultLog is what an absent log displays as.
func DefaultLog(date string) *DailyLog {
	return NewDailyLog(date, DefaultMood)
}

// Has reports whether habitID is completed in this log.
func (l *DailyLog) Has(habitID string) bool {
	return slices.Contains(l.CompletedHabits, habitID)
}

// Toggle flips habitID's membership and returns the new state.
func (l *DailyLog) Toggle(habitID string) bool {
	if idx := slices.Index(l.CompletedHabits, habitID); idx >= 0 {
		l.CompletedHabits = slices.Delete(l.CompletedHabits, idx, idx+1)
		return false
	}
	l.CompletedHabits = append(l.CompletedHabits, habitID)
	return true
}

// Remove strips habitID from the completions.
func (l *DailyLog) Remove(habitID string) {
	l.CompletedHabits = slices.DeleteFunc(l.CompletedHabits, func(id string) bool {
		return id == habitID
	})
}

// Clone returns a deep copy.
func (l *DailyLog) Clone() *DailyLog {
	c := *l
	c.CompletedHabits = slices.Clone(l.CompletedHabits)
	if c.CompletedHabits == nil {
		c.CompletedHabits = []string{}
	}
	return &c
}

// ClampMood bounds mood to [MinMood, MaxMood].
func ClampMood(mood int) int {
	return min(max(mood, MinMood), MaxMood)
}

// FormatDate renders t as an ISO date in t's location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate validates an ISO date string.
func ParseDate(s string) (string, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", &ValidationError{Field: "date", Reason: fmt.Sprintf("%q is not YYYY-MM-DD", s)}
	}
	return FormatDate(t), nil
}

// MergeLogs returns one log per date, in first-seen order. Completions of
// logs sharing a date are unioned and the later entry's mood and notes win.
// Nil entries are dropped and the inputs are not modified.
func MergeLogs(logs []*DailyLog) []*DailyLog {
	out := make([]*DailyLog, 0, len(logs))
	byDate := make(map[string]*DailyLog, len(logs))
	for _, l := range logs {
		if l == nil {
			continue
		}
		merged, ok := byDate[l.Date]
		if !ok {
			merged = NewDailyLog(l.Date, l.Mood)
			byDate[l.Date] = merged
			out = append(out, merged)
		}
		for _, id := range l.CompletedHabits {
			if !merged.Has(id) {
				merged.CompletedHabits = append(merged.CompletedHabits, id)
			}
		}
		merged.Mood = ClampMood(l.Mood)
		merged.Notes = l.Notes
	}
	return out
}
