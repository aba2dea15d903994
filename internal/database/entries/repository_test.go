package entries

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libtrack/internal/database"
	"libtrack/internal/entities"
)

// stubAssets fakes the on-disk asset store: it tracks which
// directories exist without touching the filesystem.
type stubAssets struct {
	nextID          int
	dirs            map[string]bool
	failMaterialize bool
	failRemove      bool
}

func newStubAssets() *stubAssets {
	return &stubAssets{dirs: map[string]bool{}}
}

func (s *stubAssets) Materialize(_ context.Context, source, _ string, taken func(string) bool) (string, string, error) {
	if s.failMaterialize {
		return "", "", errors.New("no cover image available")
	}
	for {
		s.nextID++
		id := fmt.Sprintf("PRJ%04d", s.nextID)
		if taken(id) {
			continue
		}
		s.dirs[id] = true
		return id, "/assets/" + id + "/" + filepath.Base(source), nil
	}
}

func (s *stubAssets) Remove(folderID string) error {
	if s.failRemove {
		return errors.New("directory busy")
	}
	delete(s.dirs, folderID)
	return nil
}

func (s *stubAssets) Orphans(known func(string) bool) ([]string, error) {
	var orphans []string
	for id := range s.dirs {
		if !known(id) {
			orphans = append(orphans, id)
		}
	}
	return orphans, nil
}

func setupTestRepo(t *testing.T) (*Repository, *database.Database, *stubAssets) {
	t.Helper()
	db := database.NewDatabase(filepath.Join(t.TempDir(), "data.json"))
	assets := newStubAssets()
	repo, err := NewRepository(db, assets)
	require.NoError(t, err)
	return repo, db, assets
}

func createTestEntry(t *testing.T, repo *Repository, name string, amount int) *entities.Entry {
	t.Helper()
	entry, err := repo.Create(context.Background(), CreateParams{
		Name:       name,
		Amount:     amount,
		AmountType: "math",
		TagTask:    "skills",
		Source:     "/books/" + name + ".pdf",
	})
	require.NoError(t, err)
	return entry
}

func TestCreate_RegistersAndPersists(t *testing.T) {
	repo, db, _ := setupTestRepo(t)

	entry := createTestEntry(t, repo, "Calculus", 400)

	assert.NotEmpty(t, entry.FolderID)
	assert.Zero(t, entry.AmountDone)

	persisted, err := db.Load()
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, *entry, persisted[0])
}

func TestCreate_Validation(t *testing.T) {
	repo, db, _ := setupTestRepo(t)

	cases := []struct {
		name   string
		params CreateParams
	}{
		{"empty name", CreateParams{Amount: 10, Source: "/b.pdf"}},
		{"zero amount", CreateParams{Name: "B", Amount: 0, Source: "/b.pdf"}},
		{"negative amount", CreateParams{Name: "B", Amount: -5, Source: "/b.pdf"}},
		{"no source", CreateParams{Name: "B", Amount: 10}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := repo.Create(context.Background(), tc.params)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}

	// Rejected creations must not touch persisted state.
	persisted, err := db.Load()
	require.NoError(t, err)
	assert.Empty(t, persisted)
}

func TestCreate_AssetFailureLeavesNothingBehind(t *testing.T) {
	repo, db, assets := setupTestRepo(t)
	assets.failMaterialize = true

	_, err := repo.Create(context.Background(), CreateParams{
		Name: "Doomed", Amount: 5, Source: "/books/doomed.pdf",
	})

	assert.Error(t, err)
	assert.Empty(t, repo.List())
	persisted, loadErr := db.Load()
	require.NoError(t, loadErr)
	assert.Empty(t, persisted)
}

func TestCreate_FolderIDsStayUnique(t *testing.T) {
	repo, _, _ := setupTestRepo(t)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		entry := createTestEntry(t, repo, fmt.Sprintf("Book %02d", i), 10)
		assert.False(t, seen[entry.FolderID], "duplicate folder id %s", entry.FolderID)
		seen[entry.FolderID] = true
	}

	// Interleave removals; uniqueness must hold across the full
	// sequence of creates and removes.
	list := repo.List()
	require.NoError(t, repo.Remove(list[3].FolderID))
	require.NoError(t, repo.Remove(list[7].FolderID))
	for i := 0; i < 5; i++ {
		entry := createTestEntry(t, repo, fmt.Sprintf("Late %d", i), 10)
		for _, other := range repo.List() {
			if other.Name != entry.Name {
				assert.NotEqual(t, other.FolderID, entry.FolderID)
			}
		}
	}
}

func TestAdvance(t *testing.T) {
	repo, db, _ := setupTestRepo(t)
	entry := createTestEntry(t, repo, "Calculus", 100)

	updated, err := repo.Advance(entry.FolderID, 30)

	require.NoError(t, err)
	assert.Equal(t, 30, updated.AmountDone)

	persisted, err := db.Load()
	require.NoError(t, err)
	assert.Equal(t, 30, persisted[0].AmountDone)
}

func TestAdvance_RejectsOutOfBoundsDelta(t *testing.T) {
	repo, _, _ := setupTestRepo(t)
	entry := createTestEntry(t, repo, "Calculus", 100)
	_, err := repo.Advance(entry.FolderID, 90)
	require.NoError(t, err)

	for _, delta := range []int{0, -10, 11, 100} {
		_, err := repo.Advance(entry.FolderID, delta)
		assert.ErrorIs(t, err, ErrInvalid, "delta %d", delta)
	}

	// No state change from any rejected call.
	current, err := repo.Get(entry.FolderID)
	require.NoError(t, err)
	assert.Equal(t, 90, current.AmountDone)
	assert.LessOrEqual(t, current.AmountDone, current.Amount)
}

func TestAdvance_UpToTarget(t *testing.T) {
	repo, _, _ := setupTestRepo(t)
	entry := createTestEntry(t, repo, "Calculus", 100)

	_, err := repo.Advance(entry.FolderID, 100)

	require.NoError(t, err)
	current, err := repo.Get(entry.FolderID)
	require.NoError(t, err)
	assert.Equal(t, current.Amount, current.AmountDone)
}

func TestAdvance_UnknownFolderID(t *testing.T) {
	repo, _, _ := setupTestRepo(t)

	_, err := repo.Advance("PRJMISSING", 1)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemove_DeletesRecordAndAssets(t *testing.T) {
	repo, db, assets := setupTestRepo(t)
	entry := createTestEntry(t, repo, "Calculus", 100)

	require.NoError(t, repo.Remove(entry.FolderID))

	persisted, err := db.Load()
	require.NoError(t, err)
	assert.Empty(t, persisted)
	assert.False(t, assets.dirs[entry.FolderID])

	_, err = repo.Get(entry.FolderID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemove_AssetFailureLeavesOrphanNotError(t *testing.T) {
	repo, db, assets := setupTestRepo(t)
	entry := createTestEntry(t, repo, "Calculus", 100)
	assets.failRemove = true

	// The record is gone and persisted; the stranded directory is a
	// tolerated leak, not an error.
	require.NoError(t, repo.Remove(entry.FolderID))

	persisted, err := db.Load()
	require.NoError(t, err)
	assert.Empty(t, persisted)
	assert.True(t, assets.dirs[entry.FolderID])
}

func TestRemove_Unknown(t *testing.T) {
	repo, _, _ := setupTestRepo(t)

	assert.ErrorIs(t, repo.Remove("PRJMISSING"), ErrNotFound)
}

func TestSweep_RemovesOrphanedDirectories(t *testing.T) {
	repo, _, assets := setupTestRepo(t)
	entry := createTestEntry(t, repo, "Kept", 10)
	assets.dirs["PRJORPHAN"] = true

	removed, err := repo.Sweep()

	require.NoError(t, err)
	assert.Equal(t, []string{"PRJORPHAN"}, removed)
	assert.True(t, assets.dirs[entry.FolderID])
	assert.False(t, assets.dirs["PRJORPHAN"])
}

func TestPersistFailureRollsBackEveryMutation(t *testing.T) {
	dir := t.TempDir()
	dbDir := filepath.Join(dir, "db")
	require.NoError(t, os.Mkdir(dbDir, 0755))
	db := database.NewDatabase(filepath.Join(dbDir, "data.json"))
	assets := newStubAssets()
	repo, err := NewRepository(db, assets)
	require.NoError(t, err)

	entry := createTestEntry(t, repo, "Durable", 100)
	_, err = repo.Advance(entry.FolderID, 40)
	require.NoError(t, err)

	// Break persistence: Save can no longer write its temp file.
	require.NoError(t, os.RemoveAll(dbDir))

	// A failed create rolls back both the record and its assets.
	_, err = repo.Create(context.Background(), CreateParams{
		Name: "Doomed", Amount: 10, Source: "/books/doomed.pdf",
	})
	assert.Error(t, err)
	assert.Len(t, repo.List(), 1)
	assert.Len(t, assets.dirs, 1)

	// A failed advance reverts the in-memory progress.
	_, err = repo.Advance(entry.FolderID, 10)
	assert.Error(t, err)
	current, getErr := repo.Get(entry.FolderID)
	require.NoError(t, getErr)
	assert.Equal(t, 40, current.AmountDone)

	// A failed remove reinstates the record and keeps the assets.
	err = repo.Remove(entry.FolderID)
	assert.Error(t, err)
	current, getErr = repo.Get(entry.FolderID)
	require.NoError(t, getErr)
	assert.Equal(t, entry.FolderID, current.FolderID)
	assert.Equal(t, 40, current.AmountDone)
	assert.True(t, assets.dirs[entry.FolderID])
}

func TestNewRepository_CorruptCollectionStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	db := database.NewDatabase(filepath.Join(dir, "data.json"))
	require.NoError(t, writeCorrupt(db.Path()))

	repo, err := NewRepository(db, newStubAssets())

	assert.Error(t, err)
	require.NotNil(t, repo)
	assert.Empty(t, repo.List())

	// The repository stays usable after the recovery.
	created := createTestEntry(t, repo, "Fresh Start", 10)
	assert.NotEmpty(t, created.FolderID)
}

func writeCorrupt(path string) error {
	return os.WriteFile(path, []byte("{{{"), 0644)
}
