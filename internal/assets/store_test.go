package assets

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExtractor returns a fixed image, nothing, or an error.
type fakeExtractor struct {
	img image.Image
	err error
}

func (f fakeExtractor) Extract(_ context.Context, _ string) (image.Image, error) {
	return f.img, f.err
}

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}
	return img
}

func setupStore(t *testing.T, extractor CoverExtractor) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "entries"), extractor)
	require.NoError(t, err)
	return store
}

func writeSourceFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("source bytes"), 0644))
	return path
}

func writeFallbackImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fallback.jpg")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, jpeg.Encode(f, testImage(), nil))
	require.NoError(t, f.Close())
	return path
}

func noneTaken(string) bool { return false }

func TestMaterialize_FileSourceWithExtractedCover(t *testing.T) {
	store := setupStore(t, fakeExtractor{img: testImage()})
	source := writeSourceFile(t, "book.pdf")

	id, filePath, err := store.Materialize(context.Background(), source, "", noneTaken)

	require.NoError(t, err)
	assert.NotEmpty(t, id)

	// The tracked path is the copy inside the asset directory,
	// keeping the original base name.
	assert.Equal(t, filepath.Join(store.EntryDir(id), "book.pdf"), filePath)
	copied, err := os.ReadFile(filePath)
	require.NoError(t, err)
	assert.Equal(t, []byte("source bytes"), copied)

	_, err = os.Stat(store.CoverPath(id))
	assert.NoError(t, err)
}

func TestMaterialize_FallbackCoverWhenExtractionFails(t *testing.T) {
	store := setupStore(t, fakeExtractor{err: errors.New("corrupt document")})
	source := writeSourceFile(t, "book.pdf")
	fallback := writeFallbackImage(t)

	id, _, err := store.Materialize(context.Background(), source, fallback, noneTaken)

	require.NoError(t, err)
	cover, err := os.ReadFile(store.CoverPath(id))
	require.NoError(t, err)
	original, err := os.ReadFile(fallback)
	require.NoError(t, err)
	assert.Equal(t, original, cover)
}

func TestMaterialize_NoCoverAbortsAndRollsBack(t *testing.T) {
	store := setupStore(t, fakeExtractor{err: errors.New("corrupt document")})
	source := writeSourceFile(t, "book.pdf")

	id, _, err := store.Materialize(context.Background(), source, "", noneTaken)

	assert.ErrorIs(t, err, ErrNoCover)
	assert.Empty(t, id)

	// No residual directory may survive the failed creation.
	dirEntries, readErr := os.ReadDir(store.Root())
	require.NoError(t, readErr)
	assert.Empty(t, dirEntries)
}

func TestMaterialize_DirectorySourceIsReferencedNotCopied(t *testing.T) {
	store := setupStore(t, fakeExtractor{img: testImage()})
	sourceDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "notes.md"), []byte("x"), 0644))
	fallback := writeFallbackImage(t)

	id, filePath, err := store.Materialize(context.Background(), sourceDir, fallback, noneTaken)

	require.NoError(t, err)
	absSource, err := filepath.Abs(sourceDir)
	require.NoError(t, err)
	assert.Equal(t, absSource, filePath)

	// Only the cover lives in the asset directory.
	dirEntries, err := os.ReadDir(store.EntryDir(id))
	require.NoError(t, err)
	require.Len(t, dirEntries, 1)
	assert.Equal(t, CoverFilename, dirEntries[0].Name())
}

func TestMaterialize_MissingSource(t *testing.T) {
	store := setupStore(t, fakeExtractor{})

	_, _, err := store.Materialize(context.Background(), filepath.Join(t.TempDir(), "absent.pdf"), "", noneTaken)

	assert.Error(t, err)
}

func TestMaterialize_SkipsTakenFolderIDs(t *testing.T) {
	store := setupStore(t, fakeExtractor{img: testImage()})
	source := writeSourceFile(t, "book.pdf")

	rejected := 0
	taken := func(string) bool {
		rejected++
		return rejected <= 3
	}

	id, _, err := store.Materialize(context.Background(), source, "", taken)

	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, 4, rejected)
}

func TestOrphans(t *testing.T) {
	store := setupStore(t, fakeExtractor{})
	require.NoError(t, os.Mkdir(store.EntryDir("PRJKNOWN"), 0755))
	require.NoError(t, os.Mkdir(store.EntryDir("PRJLOST"), 0755))

	orphans, err := store.Orphans(func(id string) bool { return id == "PRJKNOWN" })

	require.NoError(t, err)
	assert.Equal(t, []string{"PRJLOST"}, orphans)
}

func TestRemove(t *testing.T) {
	store := setupStore(t, fakeExtractor{img: testImage()})
	source := writeSourceFile(t, "book.pdf")

	id, _, err := store.Materialize(context.Background(), source, "", noneTaken)
	require.NoError(t, err)

	require.NoError(t, store.Remove(id))
	_, statErr := os.Stat(store.EntryDir(id))
	assert.True(t, os.IsNotExist(statErr))
}
