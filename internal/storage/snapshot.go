// Package storage persists the full repository state as a single snapshot,
// the durable-save collaborator behind the in-memory repository. The format
// is an implementation detail of this package; callers only see Snapshot.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	model "reversa-auctions/internal/models"
)

// Snapshot is the complete persisted state of the platform
type Snapshot struct {
	Auctions []model.Auction `json:"auctions"`
	Users    []model.User    `json:"users"`
	Banners  []model.Banner  `json:"banners"`
}

// Store loads and saves snapshots. Load returns (nil, nil) when no snapshot
// exists yet; callers fall back to the built-in default set.
type Store interface {
	Load() (*Snapshot, error)
	Save(snapshot Snapshot) error
}

// FileStore persists snapshots as a JSON file, written atomically via a
// temp file plus rename.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store backed by the given file path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the snapshot file, returning (nil, nil) when it does not exist
func (s *FileStore) Load() (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", s.path, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", s.path, err)
	}
	return &snap, nil
}

// Save writes the snapshot, replacing any previous one
func (s *FileStore) Save(snapshot Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("save snapshot %s: %w", s.path, err)
	}
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("save snapshot %s: %w", s.path, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("save snapshot %s: %w", s.path, err)
	}
	return nil
}
