// ABOUTME: Day view combining a date's log with every habit's completion state.
// ABOUTME: Absent logs render with the default mood and empty notes.
package tracker

import "github.com/harperreed/habits/internal/models"

// DayHabit is one row of the day view.
type DayHabit struct {
	Habit     *models.Habit
	Completed bool
}

// Day is what the tracker shows for a single date.
type Day struct {
	Date   string
	Mood   int
	Notes  string
	Logged bool
	Habits []DayHabit
}

// CompletedCount returns how many habits are done on this day.
func (d *Day) CompletedCount() int {
	n := 0
	for _, h := range d.Habits {
		if h.Completed {
			n++
		}
	}
	return n
}

// DayView returns the state of every habit on date.
func (t *Tracker) DayView(date string) *Day {
	t.mu.Lock()
	defer t.mu.Unlock()

	log := t.findLog(date)
	logged := log != nil
	if !logged {
		log = models.DefaultLog(date)
	}

	day := &Day{
		Date:   date,
		Mood:   log.Mood,
		Notes:  log.Notes,
		Logged: logged,
		Habits: make([]DayHabit, 0, len(t.habits)),
	}
	for _, h := range t.habits {
		day.Habits = append(day.Habits, DayHabit{Habit: h.Clone(), Completed: log.Has(h.ID)})
	}
	return day
}
