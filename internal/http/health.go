package http

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

type HealthController struct {
	collectionPath string
	entriesDir     string
	version        string
}

func NewHealthController(collectionPath, entriesDir, version string) *HealthController {
	return &HealthController{
		collectionPath: collectionPath,
		entriesDir:     entriesDir,
		version:        version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	// The collection file may legitimately not exist yet; its parent
	// directory must be usable.
	if _, err := os.Stat(filepath.Dir(h.collectionPath)); err != nil {
		checks["collection"] = "error: " + err.Error()
		status = "unhealthy"
	} else {
		checks["collection"] = "ok"
	}

	if info, err := os.Stat(h.entriesDir); err != nil {
		checks["entries_dir"] = "error: " + err.Error()
		status = "unhealthy"
	} else if !info.IsDir() {
		checks["entries_dir"] = "error: not a directory"
		status = "unhealthy"
	} else {
		checks["entries_dir"] = "ok"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}
