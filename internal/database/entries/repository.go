// Package entries holds the in-memory working set of progress entries
// and coordinates every mutation with the asset store and the
// persisted collection file.
//
// # Usage
//
//	db := database.NewDatabase("./data.json")
//	repo, err := entries.NewRepository(db, store)
//	entry, err := repo.Create(ctx, entries.CreateParams{...})
package entries

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"libtrack/internal/database"
	"libtrack/internal/entities"
)

var (
	// ErrNotFound indicates that no entry matches the folder id.
	ErrNotFound = errors.New("entry not found")

	// ErrInvalid indicates a rejected input; no state was changed.
	ErrInvalid = errors.New("invalid input")
)

// AssetStore materializes and removes the on-disk assets of entries.
type AssetStore interface {
	Materialize(ctx context.Context, source, fallbackImage string, taken func(string) bool) (folderID, filePath string, err error)
	Remove(folderID string) error
	Orphans(known func(string) bool) ([]string, error)
}

// Repository is the persisted collection of entries. All operations
// are serialized: one call runs to completion before the next starts,
// and every successful mutation is flushed to storage immediately.
type Repository struct {
	mu      sync.Mutex
	db      *database.Database
	assets  AssetStore
	entries []entities.Entry
}

// NewRepository loads the persisted collection. When the collection
// file is unreadable the repository still comes up with an empty
// working set and the load error is returned alongside it; callers
// decide how loudly to surface the recovery.
func NewRepository(db *database.Database, assets AssetStore) (*Repository, error) {
	collection, err := db.Load()
	return &Repository{
		db:      db,
		assets:  assets,
		entries: collection,
	}, err
}

// CreateParams carries the caller-supplied fields for a new entry.
type CreateParams struct {
	Name          string
	Amount        int
	AmountType    string
	TagTask       string
	Source        string // file or directory to track
	FallbackImage string // cover used when extraction yields nothing
}

func (p CreateParams) validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalid)
	}
	if p.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalid)
	}
	if p.Source == "" {
		return fmt.Errorf("%w: no source file or directory chosen", ErrInvalid)
	}
	return nil
}

// Create materializes the on-disk assets for a new entry, registers
// it and persists the collection. Nothing is persisted and no asset
// directory survives if any step fails.
func (r *Repository) Create(ctx context.Context, p CreateParams) (*entities.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := p.validate(); err != nil {
		return nil, err
	}

	folderID, filePath, err := r.assets.Materialize(ctx, p.Source, p.FallbackImage, r.hasFolderID)
	if err != nil {
		return nil, fmt.Errorf("materialize assets: %w", err)
	}

	entry := entities.Entry{
		Name:       p.Name,
		Amount:     p.Amount,
		AmountType: p.AmountType,
		AmountDone: 0,
		TagTask:    p.TagTask,
		FolderID:   folderID,
		FilePath:   filePath,
	}

	r.entries = append(r.entries, entry)
	if err := r.db.Save(r.entries); err != nil {
		r.entries = r.entries[:len(r.entries)-1]
		if rmErr := r.assets.Remove(folderID); rmErr != nil {
			log.Printf("WARNING: could not roll back assets for %s: %v", folderID, rmErr)
		}
		return nil, fmt.Errorf("persist collection: %w", err)
	}
	return &entry, nil
}

// Advance adds delta to an entry's progress. Delta must be positive
// and must not push progress past the target; otherwise the call is
// rejected with no state change.
func (r *Repository) Advance(folderID string, delta int) (*entities.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(folderID)
	if idx < 0 {
		return nil, ErrNotFound
	}
	if delta <= 0 {
		return nil, fmt.Errorf("%w: delta must be positive", ErrInvalid)
	}
	if remaining := r.entries[idx].Remaining(); delta > remaining {
		return nil, fmt.Errorf("%w: delta %d exceeds remaining %d", ErrInvalid, delta, remaining)
	}

	r.entries[idx].AmountDone += delta
	if err := r.db.Save(r.entries); err != nil {
		r.entries[idx].AmountDone -= delta
		return nil, fmt.Errorf("persist collection: %w", err)
	}
	entry := r.entries[idx]
	return &entry, nil
}

// Remove deletes the entry's record, persists the collection, and
// only then deletes its asset directory. A failed asset deletion
// after the record is gone leaves an orphaned directory, which is
// logged and tolerated; the reverse order could leave a record
// pointing at missing assets.
func (r *Repository) Remove(folderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(folderID)
	if idx < 0 {
		return ErrNotFound
	}

	removed := r.entries[idx]
	r.entries = append(r.entries[:idx], r.entries[idx+1:]...)
	if err := r.db.Save(r.entries); err != nil {
		r.entries = append(r.entries, entities.Entry{})
		copy(r.entries[idx+1:], r.entries[idx:])
		r.entries[idx] = removed
		return fmt.Errorf("persist collection: %w", err)
	}

	if err := r.assets.Remove(folderID); err != nil {
		log.Printf("WARNING: entry %s removed but its asset directory was left behind: %v", folderID, err)
	}
	return nil
}

// Get returns the entry with the given folder id.
func (r *Repository) Get(folderID string) (*entities.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(folderID)
	if idx < 0 {
		return nil, ErrNotFound
	}
	entry := r.entries[idx]
	return &entry, nil
}

// List returns a snapshot of the collection.
func (r *Repository) List() []entities.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := make([]entities.Entry, len(r.entries))
	copy(snapshot, r.entries)
	return snapshot
}

// Orphans returns the folder ids of asset directories that no entry
// references, without removing anything.
func (r *Repository) Orphans() ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.assets.Orphans(r.hasFolderID)
}

// Sweep deletes asset directories that no entry references and
// returns their folder ids. Orphans appear when a removal persists
// the collection but fails to delete the directory.
func (r *Repository) Sweep() ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orphans, err := r.assets.Orphans(r.hasFolderID)
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, folderID := range orphans {
		if err := r.assets.Remove(folderID); err != nil {
			log.Printf("WARNING: could not remove orphaned directory %s: %v", folderID, err)
			continue
		}
		removed = append(removed, folderID)
	}
	return removed, nil
}

// hasFolderID reports whether an entry claims the folder id. Callers
// must hold the mutex.
func (r *Repository) hasFolderID(folderID string) bool {
	return r.indexOf(folderID) >= 0
}

func (r *Repository) indexOf(folderID string) int {
	for i := range r.entries {
		if r.entries[i].FolderID == folderID {
			return i
		}
	}
	return -1
}
