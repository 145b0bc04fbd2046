// Package snapshot persists index snapshots to a single file on disk.
package snapshot

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/personaapply/personaapply/internal/core/domain"
	"github.com/personaapply/personaapply/internal/core/ports/driven"
)

// Ensure FileStore implements the interface.
var _ driven.SnapshotStore = (*FileStore)(nil)

// FileStore stores the index snapshot as a gob-encoded file. Saves write to
// a temporary file in the same directory and rename over the target, so a
// crash mid-save leaves the previous snapshot intact.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed snapshot store at the given path. The
// parent directory is created if missing.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("snapshot: path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("snapshot: create directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

// Save durably writes the snapshot, replacing any previous one.
func (s *FileStore) Save(snapshot *driven.IndexSnapshot) error {
	if snapshot == nil {
		return fmt.Errorf("snapshot: nil snapshot")
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".snapshot-*")
	if err != nil {
		return fmt.Errorf("snapshot: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := gob.NewEncoder(tmp).Encode(snapshot); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("snapshot: encode: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("snapshot: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("snapshot: close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("snapshot: replace snapshot: %w", err)
	}
	return nil
}

// Load reads the current snapshot. A missing file is domain.ErrNotFound; an
// undecodable or internally inconsistent one is domain.ErrCorruptSnapshot.
func (s *FileStore) Load() (*driven.IndexSnapshot, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("snapshot: open: %w", err)
	}
	defer f.Close()

	var snapshot driven.IndexSnapshot
	if err := gob.NewDecoder(f).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("snapshot: decode: %w: %v", domain.ErrCorruptSnapshot, err)
	}

	// The co-indexing invariant must hold on disk too.
	if len(snapshot.Vectors) != len(snapshot.Chunks) {
		return nil, fmt.Errorf("snapshot: %d vectors for %d chunks: %w",
			len(snapshot.Vectors), len(snapshot.Chunks), domain.ErrCorruptSnapshot)
	}

	return &snapshot, nil
}

// Path returns the snapshot file location.
func (s *FileStore) Path() string {
	return s.path
}
