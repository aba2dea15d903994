// Package cli implements the command-line operations on the entry
// collection: add, progress, remove, list and sweep.
package cli

import (
	"log"

	"libtrack/internal/assets"
	"libtrack/internal/config"
	"libtrack/internal/covers"
	"libtrack/internal/database"
	"libtrack/internal/database/entries"
)

// openRepository builds the full stack (converter, extractor, asset
// store, collection file) for a one-shot command invocation.
func openRepository(databasePath, entriesDir string, cfg *config.Config) (*entries.Repository, error) {
	converter := covers.EbookConvert{
		Command: cfg.Covers.ConvertCommand,
		Timeout: cfg.Covers.ConvertTimeout,
	}
	store, err := assets.NewStore(entriesDir, covers.NewExtractor(converter))
	if err != nil {
		return nil, err
	}

	db := database.NewDatabase(databasePath)
	repo, err := entries.NewRepository(db, store)
	if err != nil {
		log.Printf("WARNING: could not read the existing collection, starting empty: %v", err)
	}
	return repo, nil
}
