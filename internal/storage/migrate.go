// ABOUTME: Data migration between habit storage backends.
// ABOUTME: Copies the habits and logs blobs from source to destination.

package storage

import (
	"errors"
	"fmt"

	"github.com/harperreed/habits/internal/models"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Habits int
	Logs   int
}

// MigrateData makes dst hold exactly src's two collections. A blob absent in
// src is deleted from dst so stale data there cannot survive a forced
// migration.
func MigrateData(src, dst BlobStore) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	habits, err := loadList[models.Habit](src, HabitsKey)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("read source habits: %w", err)
	}
	if err := syncBlob(src, dst, HabitsKey, err == nil); err != nil {
		return nil, err
	}
	summary.Habits = len(habits)

	logs, err := loadList[models.DailyLog](src, LogsKey)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("read source logs: %w", err)
	}
	if err := syncBlob(src, dst, LogsKey, err == nil); err != nil {
		return nil, err
	}
	summary.Logs = len(logs)

	return summary, nil
}

// CountItems returns how many habits and logs store holds.
func CountItems(store BlobStore) (*MigrateSummary, error) {
	summary := &MigrateSummary{}
	habits, err := loadList[models.Habit](store, HabitsKey)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	logs, err := loadList[models.DailyLog](store, LogsKey)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	summary.Habits = len(habits)
	summary.Logs = len(logs)
	return summary, nil
}

// HasData reports whether store holds either collection.
func HasData(store BlobStore) (bool, error) {
	for _, key := range []string{HabitsKey, LogsKey} {
		_, err := store.Load(key)
		if err == nil {
			return true, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return false, fmt.Errorf("check %s: %w", key, err)
		}
	}
	return false, nil
}

// syncBlob copies key from src to dst when present, otherwise deletes it from dst.
func syncBlob(src, dst BlobStore, key string, present bool) error {
	if !present {
		if err := dst.Delete(key); err != nil {
			return fmt.Errorf("delete destination %s: %w", key, err)
		}
		return nil
	}
	data, err := src.Load(key)
	if err != nil {
		return fmt.Errorf("load source %s: %w", key, err)
	}
	if err := dst.Save(key, data); err != nil {
		return fmt.Errorf("save destination %s: %w", key, err)
	}
	return nil
}
