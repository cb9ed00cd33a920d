// ABOUTME: Persistence adapter mirroring habit and log collections into a BlobStore.
// ABOUTME: Seeds example habits on first load; saves are best-effort.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/harperreed/habits/internal/models"
)

// Adapter loads and saves the two collections. It never owns the data.
type Adapter struct {
	store  BlobStore
	logger *log.Logger
}

// NewAdapter wraps store. A nil logger discards output.
func NewAdapter(store BlobStore, logger *log.Logger) *Adapter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Adapter{store: store, logger: logger}
}

// Store returns the underlying BlobStore.
func (a *Adapter) Store() BlobStore {
	return a.store
}

// Load returns the saved habits and logs. A missing key yields an empty list.
// When no habits have ever been saved, two example habits are seeded and
// persisted so a fresh install has something to show.
func (a *Adapter) Load() ([]*models.Habit, []*models.DailyLog, error) {
	habits, err := loadList[models.Habit](a.store, HabitsKey)
	seed := errors.Is(err, ErrNotFound)
	if err != nil && !seed {
		return nil, nil, err
	}

	logs, err := loadList[models.DailyLog](a.store, LogsKey)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, nil, err
	}

	// One habit per id and one log per date.
	habits = models.UniqueHabits(habits)
	for _, h := range habits {
		h.Normalize()
	}
	logs = models.MergeLogs(logs)

	if seed {
		habits = SampleHabits()
		a.logger.Debug("seeding example habits", "count", len(habits))
		if err := a.saveKey(HabitsKey, habits); err != nil {
			a.logger.Debug("could not persist example habits", "err", err)
		}
	}

	if habits == nil {
		habits = []*models.Habit{}
	}
	if logs == nil {
		logs = []*models.DailyLog{}
	}
	return habits, logs, nil
}

// Save writes both collections. Failures are debug-logged and returned;
// callers may ignore them since in-memory state stays authoritative.
func (a *Adapter) Save(habits []*models.Habit, logs []*models.DailyLog) error {
	if habits == nil {
		habits = []*models.Habit{}
	}
	if logs == nil {
		logs = []*models.DailyLog{}
	}
	err := errors.Join(a.saveKey(HabitsKey, habits), a.saveKey(LogsKey, logs))
	if err != nil {
		a.logger.Debug("save failed", "err", err)
	}
	return err
}

// Clear deletes both persisted collections.
func (a *Adapter) Clear() error {
	err := errors.Join(a.store.Delete(HabitsKey), a.store.Delete(LogsKey))
	if err != nil {
		a.logger.Debug("clear failed", "err", err)
	}
	return err
}

func (a *Adapter) saveKey(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := a.store.Save(key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	a.logger.Debug("saved", "key", key, "bytes", len(data))
	return nil
}

func loadList[T any](store BlobStore, key string) ([]*T, error) {
	data, err := store.Load(key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	var items []*T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	// Skip null entries
	kept := items[:0]
	for _, it := range items {
		if it != nil {
			kept = append(kept, it)
		}
	}
	return kept, nil
}

// SampleHabits returns the habits seeded on first run.
func SampleHabits() []*models.Habit {
	meditate, _ := models.NewHabit("Meditate", models.CategoryMental)
	exercise, _ := models.NewHabit("Exercise", models.CategoryHealth)
	return []*models.Habit{meditate, exercise}
}
