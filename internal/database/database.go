// Package database persists the entry collection as a single
// human-readable JSON file.
//
// The collection is small and mutated infrequently by one user, so
// the whole file is rewritten atomically after every mutation instead
// of maintaining incremental state. Repositories in sub-packages hold
// the in-memory working set and call Save after each change.
package database

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"libtrack/internal/entities"
)

// Database reads and writes the persisted entry collection file.
type Database struct {
	path string
}

func NewDatabase(path string) *Database {
	return &Database{path: path}
}

// Path returns the collection file path.
func (d *Database) Path() string {
	return d.path
}

// Load reads the persisted collection. A missing file is an empty
// collection. An unparseable file is also returned as an empty
// collection together with an error, after the unreadable original is
// preserved under a timestamped backup name so the next Save cannot
// destroy it.
func (d *Database) Load() ([]entities.Entry, error) {
	raw, err := os.ReadFile(d.path)
	if errors.Is(err, os.ErrNotExist) {
		return []entities.Entry{}, nil
	}
	if err != nil {
		return []entities.Entry{}, fmt.Errorf("read collection %s: %w", d.path, err)
	}

	var collection []entities.Entry
	if err := json.Unmarshal(raw, &collection); err != nil {
		backup := d.path + ".corrupt-" + time.Now().Format("20060102-150405")
		if renameErr := os.Rename(d.path, backup); renameErr != nil {
			return []entities.Entry{}, fmt.Errorf("parse collection %s: %w", d.path, err)
		}
		return []entities.Entry{}, fmt.Errorf("parse collection %s (original preserved as %s): %w", d.path, backup, err)
	}
	return collection, nil
}

// Save persists the full collection, replacing the previous file.
// The write goes through a temp file in the same directory followed
// by a rename, so a crash mid-write never leaves a half-written
// collection behind.
func (d *Database) Save(collection []entities.Entry) error {
	if collection == nil {
		collection = []entities.Entry{}
	}

	data, err := json.MarshalIndent(collection, "", "    ")
	if err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}

	dir := filepath.Dir(d.path)
	tmp, err := os.CreateTemp(dir, ".collection-*")
	if err != nil {
		return fmt.Errorf("create temp collection file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write collection: %w", err)
	}
	// CreateTemp creates the file owner-only; the collection is a
	// regular data file and stays world-readable.
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("set collection file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write collection: %w", err)
	}

	if err := os.Rename(tmpPath, d.path); err != nil {
		return fmt.Errorf("replace collection file: %w", err)
	}
	return nil
}
