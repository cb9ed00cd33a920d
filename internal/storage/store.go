// ABOUTME: BlobStore interface for habit state persistence.
// ABOUTME: Defines the key-value contract every storage backend implements.
package storage

import "errors"

// Keys under which the two collections are persisted.
const (
	HabitsKey = "habits"
	LogsKey   = "logs"
)

// ErrNotFound is returned by Load when a key has never been saved.
var ErrNotFound = errors.New("not found")

// BlobStore is a key-value store of opaque blobs.
// This interface allows swapping implementations (e.g., for testing).
type BlobStore interface {
	Load(key string) ([]byte, error)
	Save(key string, value []byte) error
	Delete(key string) error
	Close() error
}
