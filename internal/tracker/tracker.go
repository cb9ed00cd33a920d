// ABOUTME: Tracker owns the habit and log collections and applies user actions.
// ABOUTME: Every mutation is mirrored to the persister and announced to subscribers.
package tracker

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/harperreed/habits/internal/models"
	"github.com/harperreed/habits/internal/storage"
)

var (
	// ErrNotFound is returned when no habit matches an id or prefix.
	ErrNotFound = errors.New("habit not found")
	// ErrAmbiguous is returned when a prefix matches more than one habit.
	ErrAmbiguous = errors.New("ambiguous habit prefix")
)

// Persister mirrors the collections somewhere durable.
// *storage.Adapter satisfies it.
type Persister interface {
	Save(habits []*models.Habit, logs []*models.DailyLog) error
	Clear() error
}

// Snapshot is a copy of both collections handed to subscribers.
type Snapshot struct {
	Habits []*models.Habit
	Logs   []*models.DailyLog

	version uint64
}

// Tracker is the single owner of application state.
type Tracker struct {
	mu          sync.Mutex
	habits      []*models.Habit
	logs        []*models.DailyLog
	draftMood   int
	persist     Persister
	subscribers map[int]func(Snapshot)
	nextSub     int
	version     uint64

	// saveMu serializes writes to persist so t.mu is never held across I/O.
	saveMu sync.Mutex
	saved  uint64
}

// New creates a Tracker over the given collections. persist may be nil.
func New(habits []*models.Habit, logs []*models.DailyLog, persist Persister) *Tracker {
	t := &Tracker{
		draftMood:   models.DefaultMood,
		persist:     persist,
		subscribers: make(map[int]func(Snapshot)),
	}
	t.habits = cloneHabits(habits)
	t.logs = cloneLogs(logs)
	return t
}

// Open loads state through the adapter and returns a Tracker that saves back
// through it.
func Open(adapter *storage.Adapter) (*Tracker, error) {
	habits, logs, err := adapter.Load()
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	return New(habits, logs, adapter), nil
}

// Subscribe registers fn to be called after every mutation. The returned
// function removes the subscription.
func (t *Tracker) Subscribe(fn func(Snapshot)) func() {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.nextSub
	t.nextSub++
	t.subscribers[id] = fn
	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		delete(t.subscribers, id)
	}
}

// SetDraftMood sets the mood used when a toggle has to create a log.
func (t *Tracker) SetDraftMood(mood int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.draftMood = models.ClampMood(mood)
}

// DraftMood returns the mood used for lazily created logs.
func (t *Tracker) DraftMood() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.draftMood
}

// ToggleCompletion flips habitID's completion on date. It returns the new
// completion state and whether the habit exists; an unknown habit changes
// nothing.
func (t *Tracker) ToggleCompletion(habitID, date string) (completed bool, ok bool) {
	t.mu.Lock()
	habit := t.findHabit(habitID)
	if habit == nil {
		t.mu.Unlock()
		return false, false
	}

	log := t.findLog(date)
	if log == nil {
		log = models.NewDailyLog(date, t.draftMood)
		t.logs = append(t.logs, log)
	}
	completed = log.Toggle(habitID)

	if completed {
		habit.MarkCompleted(date)
	} else {
		habit.MarkIncomplete(date)
	}

	snap := t.commit()
	t.mu.Unlock()
	t.save(snap, false)
	t.notify(snap)
	return completed, true
}

// AddHabit creates a habit. Blank names and unknown categories are rejected
// with a *models.ValidationError.
func (t *Tracker) AddHabit(name string, category models.Category) (*models.Habit, error) {
	habit, err := models.NewHabit(name, category)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	t.habits = append(t.habits, habit)
	snap := t.commit()
	t.mu.Unlock()
	t.save(snap, false)
	t.notify(snap)
	return habit.Clone(), nil
}

// DeleteHabit removes the habit and strips it from every log. It reports
// whether anything was removed; deleting an unknown id is a no-op.
func (t *Tracker) DeleteHabit(id string) bool {
	t.mu.Lock()
	idx := slices.IndexFunc(t.habits, func(h *models.Habit) bool { return h.ID == id })
	if idx < 0 {
		t.mu.Unlock()
		return false
	}
	t.habits = slices.Delete(t.habits, idx, idx+1)
	for _, l := range t.logs {
		l.Remove(id)
	}
	snap := t.commit()
	t.mu.Unlock()
	t.save(snap, false)
	t.notify(snap)
	return true
}

// UpdateReflection upserts mood and notes for date. Completions are untouched.
func (t *Tracker) UpdateReflection(date string, mood int, notes string) *models.DailyLog {
	t.mu.Lock()
	log := t.findLog(date)
	if log == nil {
		log = models.NewDailyLog(date, mood)
		t.logs = append(t.logs, log)
	}
	log.Mood = models.ClampMood(mood)
	log.Notes = notes
	out := log.Clone()
	snap := t.commit()
	t.mu.Unlock()
	t.save(snap, false)
	t.notify(snap)
	return out
}

// ResetAll clears both collections and the persisted copies. Empty lists are
// written back so the next load does not seed the example habits again.
func (t *Tracker) ResetAll() {
	t.mu.Lock()
	t.habits = []*models.Habit{}
	t.logs = []*models.DailyLog{}
	snap := t.commit()
	t.mu.Unlock()
	t.save(snap, true)
	t.notify(snap)
}

// Import replaces both collections, e.g. from a backup. Habits reusing an id
// are dropped and logs sharing a date are merged.
func (t *Tracker) Import(habits []*models.Habit, logs []*models.DailyLog) {
	t.mu.Lock()
	t.habits = cloneHabits(models.UniqueHabits(habits))
	t.logs = models.MergeLogs(logs)
	for _, h := range t.habits {
		h.Normalize()
	}
	snap := t.commit()
	t.mu.Unlock()
	t.save(snap, false)
	t.notify(snap)
}

// Habits returns a copy of all habits in creation order.
func (t *Tracker) Habits() []*models.Habit {
	t.mu.Lock()
	defer t.mu.Unlock()
	return cloneHabits(t.habits)
}

// Logs returns a copy of all logs.
func (t *Tracker) Logs() []*models.DailyLog {
	t.mu.Lock()
	defer t.mu.Unlock()
	return cloneLogs(t.logs)
}

// Habit returns a copy of the habit with the exact id.
func (t *Tracker) Habit(id string) (*models.Habit, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	h := t.findHabit(id)
	if h == nil {
		return nil, false
	}
	return h.Clone(), true
}

// Log returns a copy of the log for date, if one exists.
func (t *Tracker) Log(date string) (*models.DailyLog, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	l := t.findLog(date)
	if l == nil {
		return nil, false
	}
	return l.Clone(), true
}

// IsCompleted reports whether habitID is completed on date.
func (t *Tracker) IsCompleted(habitID, date string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	l := t.findLog(date)
	return l != nil && l.Has(habitID)
}

// ResolveHabit finds a habit by full id or unique id prefix.
func (t *Tracker) ResolveHabit(idOrPrefix string) (*models.Habit, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if idOrPrefix == "" {
		return nil, fmt.Errorf("%w: empty id", ErrNotFound)
	}
	if h := t.findHabit(idOrPrefix); h != nil {
		return h.Clone(), nil
	}

	var match *models.Habit
	for _, h := range t.habits {
		if strings.HasPrefix(h.ID, idOrPrefix) {
			if match != nil {
				return nil, fmt.Errorf("%w: %s", ErrAmbiguous, idOrPrefix)
			}
			match = h
		}
	}
	if match == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	return match.Clone(), nil
}

// commit versions and snapshots the state after a mutation. Caller holds t.mu.
func (t *Tracker) commit() Snapshot {
	t.version++
	return Snapshot{
		Habits:  cloneHabits(t.habits),
		Logs:    cloneLogs(t.logs),
		version: t.version,
	}
}

// save writes snap unless a newer snapshot has already been written. With
// clear set, the persisted copies are deleted first. Caller must not hold t.mu.
func (t *Tracker) save(snap Snapshot, clear bool) {
	if t.persist == nil {
		return
	}
	t.saveMu.Lock()
	defer t.saveMu.Unlock()
	if snap.version <= t.saved {
		return
	}
	// Best-effort: a failed save leaves memory authoritative.
	if clear {
		_ = t.persist.Clear()
	}
	_ = t.persist.Save(snap.Habits, snap.Logs)
	t.saved = snap.version
}

func (t *Tracker) notify(snap Snapshot) {
	t.mu.Lock()
	subs := make([]func(Snapshot), 0, len(t.subscribers))
	for _, fn := range t.subscribers {
		subs = append(subs, fn)
	}
	t.mu.Unlock()
	for _, fn := range subs {
		fn(snap)
	}
}

func (t *Tracker) findHabit(id string) *models.Habit {
	for _, h := range t.habits {
		if h.ID == id {
			return h
		}
	}
	return nil
}

func (t *Tracker) findLog(date string) *models.DailyLog {
	for _, l := range t.logs {
		if l.Date == date {
			return l
		}
	}
	return nil
}

func cloneHabits(habits []*models.Habit) []*models.Habit {
	out := make([]*models.Habit, 0, len(habits))
	for _, h := range habits {
		out = append(out, h.Clone())
	}
	return out
}

func cloneLogs(logs []*models.DailyLog) []*models.DailyLog {
	out := make([]*models.DailyLog, 0, len(logs))
	for _, l := range logs {
		out = append(out, l.Clone())
	}
	return out
}
