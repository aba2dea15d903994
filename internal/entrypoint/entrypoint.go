package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"libtrack/internal/assets"
	"libtrack/internal/config"
	"libtrack/internal/covers"
	"libtrack/internal/database"
	"libtrack/internal/database/entries"
	http_controllers "libtrack/internal/http"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until an interrupt or termination
// signal, then shuts it down gracefully.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run wires the whole application together and serves the API.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting Library Tracker v%s", version)

	converter := covers.EbookConvert{
		Command: cfg.Covers.ConvertCommand,
		Timeout: cfg.Covers.ConvertTimeout,
	}
	extractor := covers.NewExtractor(converter)

	store, err := assets.NewStore(cfg.Library.EntriesDir, extractor)
	if err != nil {
		log.Fatalf("Failed to initialize asset store: %v", err)
	}

	db := database.NewDatabase(cfg.Library.DatabasePath)
	repo, err := entries.NewRepository(db, store)
	if err != nil {
		log.Printf("WARNING: could not read the existing collection, starting empty: %v", err)
	}
	log.Printf("Loaded %d entries from %s", len(repo.List()), cfg.Library.DatabasePath)

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Entries: http_controllers.NewEntriesController(repo, cfg.View.ExcludedTags),
		Covers:  http_controllers.NewCoversController(repo, store),
		Health:  http_controllers.NewHealthController(cfg.Library.DatabasePath, cfg.Library.EntriesDir, version),
	})

	Serve(router, cfg, nil)
}
