// Package cache persists the local trip snapshot, one file per display
// unit. Writes are atomic (temp file + rename) so a crashed sync can never
// leave a truncated snapshot behind.
package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-eddington/internal/core/model"
	"github.com/penwyp/go-eddington/internal/util"
)

// SnapshotVersion is bumped whenever the on-disk schema changes. A version
// mismatch is treated as a missing snapshot, never migrated.
const SnapshotVersion = 1

// ErrNotFound is returned when no usable snapshot exists for a unit.
// Corrupt and absent files are deliberately indistinguishable: both
// trigger a full refetch.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is the persisted unit of trip data.
type Snapshot struct {
	Version   int          `json:"version"`
	FetchedAt time.Time    `json:"fetchedAt"`
	Trips     []model.Trip `json:"trips"`
}

// Store reads and writes per-unit snapshot files under a base directory.
type Store struct {
	baseDir string
}

func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

func (s *Store) path(unit model.Unit) string {
	return filepath.Join(s.baseDir, fmt.Sprintf("trips_%s.json", unit))
}

// Load reads the snapshot for a unit. Returns ErrNotFound when the file is
// absent, unreadable, corrupt, or carries an unknown schema version.
func (s *Store) Load(unit model.Unit) (*Snapshot, error) {
	data, err := os.ReadFile(s.path(unit))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		util.LogWarnf("Failed to read snapshot %s: %v", s.path(unit), err)
		return nil, ErrNotFound
	}

	var snap Snapshot
	if err := sonic.Unmarshal(data, &snap); err != nil {
		util.LogWarnf("Corrupt snapshot %s, treating as absent: %v", s.path(unit), err)
		return nil, ErrNotFound
	}
	if snap.Version != SnapshotVersion {
		util.LogWarnf("Snapshot %s has version %d (want %d), treating as absent",
			s.path(unit), snap.Version, SnapshotVersion)
		return nil, ErrNotFound
	}
	return &snap, nil
}

// Save atomically replaces the snapshot for a unit.
func (s *Store) Save(unit model.Unit, snap *Snapshot) error {
	snap.Version = SnapshotVersion

	data, err := sonic.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	// Write to a temp file in the same directory so the rename stays on
	// one filesystem.
	tmp, err := os.CreateTemp(s.baseDir, fmt.Sprintf(".trips_%s-*.tmp", unit))
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close snapshot: %w", err)
	}

	if err := os.Rename(tmpPath, s.path(unit)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

// Clear removes the snapshot for a unit. Missing files are not an error.
func (s *Store) Clear(unit model.Unit) error {
	if err := os.Remove(s.path(unit)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove snapshot: %w", err)
	}
	return nil
}

// Info reports whether a snapshot exists for a unit and when it was last
// synced, for the status command.
func (s *Store) Info(unit model.Unit) (exists bool, fetchedAt time.Time, trips int) {
	snap, err := s.Load(unit)
	if err != nil {
		return false, time.Time{}, 0
	}
	return true, snap.FetchedAt, len(snap.Trips)
}
