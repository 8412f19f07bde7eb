// Package memory stores the project as a JSON file on disk, next to a
// rotating set of backups.
package memory

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/lumenrig/projplan/internal/config"
	"github.com/lumenrig/projplan/internal/storage"
)

const (
	projectBase = "project"
	backupDir   = "backups"
	stampLayout = "20060102_150405.000000"
)

// Backend stores the project in cfg.OutputDir. Every Save also writes a
// timestamped backup, of which the cfg.KeepBackups most recent are kept.
type Backend struct {
	cfg config.MemoryConfig
	now func() time.Time
	mu  sync.RWMutex
}

// New creates a new memory backend
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{
		cfg: cfg,
		now: time.Now,
	}
}

// Init creates the output directory.
func (b *Backend) Init() error {
	if err := os.MkdirAll(filepath.Join(b.cfg.OutputDir, backupDir), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// Close cleans up resources
func (b *Backend) Close() error {
	return nil
}

// ProjectPath returns the path of the current project file.
func (b *Backend) ProjectPath() string {
	return filepath.Join(b.cfg.OutputDir, b.fileName(projectBase))
}

func (b *Backend) fileName(base string) string {
	if b.cfg.CompressOutput {
		return base + ".json.gz"
	}
	return base + ".json"
}

// Save writes a stamped copy of s as the current project and as a new
// backup. s takes the new ID and save time once the project file is written.
func (b *Backend) Save(s *storage.Snapshot) error {
	if s == nil {
		return errors.New("save: nil snapshot")
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	stamped := s.Stamped(b.now())
	if err := writeSnapshot(b.ProjectPath(), stamped, b.cfg.CompressOutput); err != nil {
		return err
	}
	s.Adopt(stamped)

	if b.cfg.KeepBackups > 0 {
		name := b.fileName(projectBase + "_" + stamped.SavedAt.Format(stampLayout))
		if err := writeSnapshot(filepath.Join(b.backupPath(), name), stamped, b.cfg.CompressOutput); err != nil {
			return fmt.Errorf("project saved, backup failed: %w", err)
		}
		if err := b.pruneBackups(); err != nil {
			return fmt.Errorf("project saved, backup failed: %w", err)
		}
	}
	return nil
}

// Load reads the current project file.
func (b *Backend) Load() (*storage.Snapshot, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	s, err := readSnapshot(b.ProjectPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, storage.ErrNoSnapshot
	}
	return s, err
}

// Backups lists the backup file names, newest first.
func (b *Backend) Backups() ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.listBackups()
}

// LoadBackup reads the backup called name, as returned by Backups.
func (b *Backend) LoadBackup(name string) (*storage.Snapshot, error) {
	if name != filepath.Base(name) || !strings.HasPrefix(name, projectBase+"_") {
		return nil, fmt.Errorf("invalid backup name %q", name)
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	s, err := readSnapshot(filepath.Join(b.backupPath(), name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("backup %q: %w", name, storage.ErrNoSnapshot)
	}
	return s, err
}

func (b *Backend) backupPath() string {
	return filepath.Join(b.cfg.OutputDir, backupDir)
}

func (b *Backend) listBackups() ([]string, error) {
	entries, err := os.ReadDir(b.backupPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), projectBase+"_") {
			continue
		}
		names = append(names, e.Name())
	}
	// timestamps sort lexically
	slices.Sort(names)
	slices.Reverse(names)
	return names, nil
}

func (b *Backend) pruneBackups() error {
	names, err := b.listBackups()
	if err != nil {
		return err
	}
	if len(names) <= b.cfg.KeepBackups {
		return nil
	}
	for _, name := range names[b.cfg.KeepBackups:] {
		if err := os.Remove(filepath.Join(b.backupPath(), name)); err != nil {
			return fmt.Errorf("failed to remove old backup: %w", err)
		}
	}
	return nil
}
