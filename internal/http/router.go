package http

import (
	"github.com/gin-gonic/gin"
)

// RouterConfig carries the controller dependencies for NewRouter.
type RouterConfig struct {
	Entries *EntriesController
	Covers  *CoversController
	Health  *HealthController
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.GET("/health", cfg.Health.Status)

	api := router.Group("/api")
	{
		api.GET("/entries", cfg.Entries.ListEntries)
		api.POST("/entries", cfg.Entries.CreateEntry)
		api.GET("/entries/:id", cfg.Entries.GetEntry)
		api.POST("/entries/:id/progress", cfg.Entries.AdvanceEntry)
		api.DELETE("/entries/:id", cfg.Entries.DeleteEntry)
		api.GET("/entries/:id/cover", cfg.Covers.GetCover)

		api.GET("/tags", cfg.Entries.GetTags)
		api.GET("/types", cfg.Entries.GetTypes)
	}

	return router
}
