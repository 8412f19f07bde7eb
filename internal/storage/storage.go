// Package storage defines how a planning session is persisted.
package storage

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lumenrig/projplan/internal/registry"
)

// ErrNoSnapshot is returned by Load when nothing has been saved yet.
var ErrNoSnapshot = errors.New("no saved project")

// Backend is the interface all storage implementations must satisfy
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Save replaces the stored project with a stamped copy of s. On success
	// s takes the stored ID and save time; a failed Save leaves s unchanged.
	Save(s *Snapshot) error
	// Load returns the stored project, or ErrNoSnapshot.
	Load() (*Snapshot, error)
}

// BackupStore is implemented by backends that keep earlier saves.
type BackupStore interface {
	// Backups lists the stored backups, newest first.
	Backups() ([]string, error)
	// LoadBackup returns the backup called name, or ErrNoSnapshot.
	LoadBackup(name string) (*Snapshot, error)
}

// Snapshot is the complete state of a session: every projector with all its
// attributes, the collection list and the active collection index.
type Snapshot struct {
	ID               uuid.UUID            `json:"id"`
	SavedAt          time.Time            `json:"savedAt"`
	Projectors       []registry.Projector `json:"projectors"`
	Collections      []string             `json:"collections"`
	ActiveCollection int                  `json:"activeCollection"`
}

// Stamped returns a shallow copy of s with a fresh ID and save time. s itself
// is not modified.
func (s *Snapshot) Stamped(now time.Time) *Snapshot {
	c := *s
	c.ID = uuid.New()
	c.SavedAt = now.UTC()
	return &c
}

// Adopt copies the ID and save time of saved into s.
func (s *Snapshot) Adopt(saved *Snapshot) {
	s.ID = saved.ID
	s.SavedAt = saved.SavedAt
}
