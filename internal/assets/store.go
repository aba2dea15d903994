// Package assets manages the per-entry asset directories: one
// directory per folder id, holding the cover image and, when the
// tracked source is a file, a copy of it.
package assets

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// CoverFilename is the fixed name of the cover image inside every
// entry directory.
const CoverFilename = "image.jpg"

const folderIDPrefix = "PRJ"

// ErrNoCover indicates that no cover could be resolved for a new
// entry: extraction yielded nothing and the caller supplied no
// fallback image.
var ErrNoCover = errors.New("no cover image available")

// CoverExtractor derives a cover image from a source document. A nil
// image with a nil error means the format is unsupported.
type CoverExtractor interface {
	Extract(ctx context.Context, path string) (image.Image, error)
}

// Store owns the root directory under which all entry asset
// directories live.
type Store struct {
	root      string
	extractor CoverExtractor
}

// NewStore creates a store rooted at the given directory, creating it
// if needed.
func NewStore(root string, extractor CoverExtractor) (*Store, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("create entries dir: %w", err)
	}
	return &Store{root: root, extractor: extractor}, nil
}

// Root returns the asset root directory.
func (s *Store) Root() string {
	return s.root
}

// EntryDir returns the asset directory for a folder id.
func (s *Store) EntryDir(folderID string) string {
	return filepath.Join(s.root, folderID)
}

// CoverPath returns the cover image path for a folder id.
func (s *Store) CoverPath(folderID string) string {
	return filepath.Join(s.EntryDir(folderID), CoverFilename)
}

// Materialize builds the on-disk assets for a new entry: it allocates
// a folder id not claimed by taken, creates the directory, resolves a
// cover image (extracted from the source when it is a file, otherwise
// the fallback image), and copies file sources into the directory.
//
// On success it returns the folder id and the absolute path the entry
// should track: the copy inside the asset directory for file sources,
// the original location for directory sources. On any failure the
// asset directory is removed; no partial state survives.
func (s *Store) Materialize(ctx context.Context, source, fallbackImage string, taken func(string) bool) (folderID, filePath string, err error) {
	info, err := os.Stat(source)
	if err != nil {
		return "", "", fmt.Errorf("source %s: %w", source, err)
	}

	folderID = s.allocateFolderID(taken)
	dir := s.EntryDir(folderID)
	if err = os.Mkdir(dir, 0755); err != nil {
		return "", "", fmt.Errorf("create entry dir: %w", err)
	}
	defer func() {
		if err != nil {
			if rmErr := os.RemoveAll(dir); rmErr != nil {
				log.Printf("WARNING: could not roll back entry dir %s: %v", dir, rmErr)
			}
		}
	}()

	if err = s.resolveCover(ctx, dir, source, fallbackImage, info.IsDir()); err != nil {
		return "", "", err
	}

	if info.IsDir() {
		if filePath, err = filepath.Abs(source); err != nil {
			return "", "", fmt.Errorf("resolve source path: %w", err)
		}
		return folderID, filePath, nil
	}

	copyPath := filepath.Join(dir, filepath.Base(source))
	if err = copyFile(source, copyPath); err != nil {
		return "", "", fmt.Errorf("copy source into entry dir: %w", err)
	}
	if filePath, err = filepath.Abs(copyPath); err != nil {
		return "", "", fmt.Errorf("resolve copy path: %w", err)
	}
	return folderID, filePath, nil
}

// Remove deletes the asset directory for a folder id.
func (s *Store) Remove(folderID string) error {
	if folderID == "" {
		return errors.New("empty folder id")
	}
	return os.RemoveAll(s.EntryDir(folderID))
}

// Orphans returns the folder ids of asset directories that known does
// not recognize. These are leftovers from removals that persisted the
// collection but failed to delete the directory.
func (s *Store) Orphans(known func(string) bool) ([]string, error) {
	dirEntries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("read entries dir: %w", err)
	}

	var orphans []string
	for _, de := range dirEntries {
		if de.IsDir() && !known(de.Name()) {
			orphans = append(orphans, de.Name())
		}
	}
	return orphans, nil
}

// allocateFolderID generates ids until one is free. The random part
// is large enough that the loop effectively never repeats, but the
// check keeps the uniqueness invariant unconditional.
func (s *Store) allocateFolderID(taken func(string) bool) string {
	for {
		id := folderIDPrefix + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
		if !taken(id) {
			return id
		}
	}
}

// resolveCover writes the entry's cover image. Extraction is only
// attempted for file sources; an extraction failure degrades to the
// fallback image. With no resolvable cover the creation is aborted.
func (s *Store) resolveCover(ctx context.Context, dir, source, fallbackImage string, sourceIsDir bool) error {
	coverPath := filepath.Join(dir, CoverFilename)

	if !sourceIsDir {
		img, err := s.extractor.Extract(ctx, source)
		if err != nil {
			log.Printf("WARNING: cover extraction failed for %s: %v", source, err)
		}
		if img != nil {
			return writeJPEG(coverPath, img)
		}
	}

	if fallbackImage == "" {
		return ErrNoCover
	}
	if err := copyFile(fallbackImage, coverPath); err != nil {
		return fmt.Errorf("copy fallback cover: %w", err)
	}
	return nil
}

func writeJPEG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create cover file: %w", err)
	}
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 90}); err != nil {
		f.Close()
		return fmt.Errorf("encode cover: %w", err)
	}
	return f.Close()
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
