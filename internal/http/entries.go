// Package http exposes the entry repository over a JSON API. The
// controllers are mechanical adapters: every invariant lives in the
// repository and the view packages.
package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"libtrack/internal/database/entries"
	"libtrack/internal/entities"
	"libtrack/internal/view"
)

// EntryStore defines the repository operations the controllers need.
type EntryStore interface {
	List() []entities.Entry
	Get(folderID string) (*entities.Entry, error)
	Create(ctx context.Context, p entries.CreateParams) (*entities.Entry, error)
	Advance(folderID string, delta int) (*entities.Entry, error)
	Remove(folderID string) error
}

// EntryResponse is an entry plus its derived completion percentage.
type EntryResponse struct {
	entities.Entry
	CompletionPercentage float64 `json:"completion_percentage"`
}

type EntriesController struct {
	store        EntryStore
	excludedTags []string
}

func NewEntriesController(store EntryStore, excludedTags []string) *EntriesController {
	return &EntriesController{store: store, excludedTags: excludedTags}
}

// ListEntries returns the visible entries in display order.
// GET /api/entries?tag=skills&type=math
func (ec *EntriesController) ListEntries(c *gin.Context) {
	f := view.NewFilter(ec.excludedTags)
	f.Tag = c.DefaultQuery("tag", view.All)
	f.AmountType = c.DefaultQuery("type", view.All)

	result := []EntryResponse{}
	for e := range view.Visible(ec.store.List(), f) {
		result = append(result, EntryResponse{Entry: e, CompletionPercentage: e.CompletionPercentage()})
	}
	c.JSON(http.StatusOK, result)
}

// GetEntry returns a single entry.
// GET /api/entries/:id
func (ec *EntriesController) GetEntry(c *gin.Context) {
	entry, err := ec.store.Get(c.Param("id"))
	if err != nil {
		respondRepositoryError(c, err, "get entry")
		return
	}
	c.JSON(http.StatusOK, EntryResponse{Entry: *entry, CompletionPercentage: entry.CompletionPercentage()})
}

// CreateEntry creates an entry from a local source path.
// POST /api/entries
func (ec *EntriesController) CreateEntry(c *gin.Context) {
	var req struct {
		Name          string `json:"name" binding:"required"`
		Amount        int    `json:"amount" binding:"required"`
		AmountType    string `json:"amount_type"`
		TagTask       string `json:"tag_task"`
		Source        string `json:"source" binding:"required"`
		FallbackImage string `json:"fallback_image"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name, amount and source are required")
		return
	}

	entry, err := ec.store.Create(c.Request.Context(), entries.CreateParams{
		Name:          req.Name,
		Amount:        req.Amount,
		AmountType:    req.AmountType,
		TagTask:       req.TagTask,
		Source:        req.Source,
		FallbackImage: req.FallbackImage,
	})
	if err != nil {
		respondRepositoryError(c, err, "create entry")
		return
	}
	c.JSON(http.StatusCreated, EntryResponse{Entry: *entry, CompletionPercentage: entry.CompletionPercentage()})
}

// AdvanceEntry records progress on an entry.
// POST /api/entries/:id/progress
func (ec *EntriesController) AdvanceEntry(c *gin.Context) {
	var req struct {
		Delta int `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "delta is required")
		return
	}

	entry, err := ec.store.Advance(c.Param("id"), req.Delta)
	if err != nil {
		respondRepositoryError(c, err, "advance entry")
		return
	}
	c.JSON(http.StatusOK, EntryResponse{Entry: *entry, CompletionPercentage: entry.CompletionPercentage()})
}

// DeleteEntry removes an entry and its assets.
// DELETE /api/entries/:id
func (ec *EntriesController) DeleteEntry(c *gin.Context) {
	if err := ec.store.Remove(c.Param("id")); err != nil {
		respondRepositoryError(c, err, "delete entry")
		return
	}
	c.Status(http.StatusNoContent)
}

// GetTags returns the distinct tags, "All" first.
// GET /api/tags
func (ec *EntriesController) GetTags(c *gin.Context) {
	c.JSON(http.StatusOK, view.Tags(ec.store.List()))
}

// GetTypes returns the distinct types, "All" first.
// GET /api/types
func (ec *EntriesController) GetTypes(c *gin.Context) {
	c.JSON(http.StatusOK, view.Types(ec.store.List()))
}
