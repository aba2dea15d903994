package http

import (
	"os"

	"github.com/gin-gonic/gin"
)

// CoverLocator resolves the cover image path for a folder id.
type CoverLocator interface {
	CoverPath(folderID string) string
}

// CoversController serves entry cover images.
type CoversController struct {
	store  EntryStore
	covers CoverLocator
}

func NewCoversController(store EntryStore, covers CoverLocator) *CoversController {
	return &CoversController{store: store, covers: covers}
}

// GetCover serves the cover image of an entry.
// GET /api/entries/:id/cover
func (cc *CoversController) GetCover(c *gin.Context) {
	entry, err := cc.store.Get(c.Param("id"))
	if err != nil {
		respondRepositoryError(c, err, "get cover")
		return
	}

	coverPath := cc.covers.CoverPath(entry.FolderID)
	if _, err := os.Stat(coverPath); err != nil {
		respondNotFound(c, "cover")
		return
	}
	c.File(coverPath)
}
