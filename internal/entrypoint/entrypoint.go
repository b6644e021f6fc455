package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pagemark/bookpace/internal/catalog"
	"github.com/pagemark/bookpace/internal/config"
	"github.com/pagemark/bookpace/internal/covers"
	"github.com/pagemark/bookpace/internal/exporters"
	http_controllers "github.com/pagemark/bookpace/internal/http"
	"github.com/pagemark/bookpace/internal/kvstore"
	"github.com/pagemark/bookpace/internal/scheduler"
	"github.com/pagemark/bookpace/internal/store"
	"github.com/pagemark/bookpace/internal/tasks"
	"github.com/pagemark/bookpace/internal/timer"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM. SIGKILL cannot be caught, so it is
	// not registered.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop the task queue)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Bookpace v%s", version)

	// Initialize the blob store and load the library into memory
	blobs, err := kvstore.NewStore(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := blobs.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	library := store.New(blobs)

	// Create the catalog client for Google Books lookups
	catalogClient := catalog.NewClient(cfg.Catalog.APIKey)
	if cfg.Catalog.APIKey == "" {
		log.Printf("No catalog API key set; Google Books lookups run with default quota. Set 'CATALOG_API_KEY' to raise it.")
	}

	// Create cover cache for locally caching book covers
	coverCacheDir := cfg.Covers.Dir
	if coverCacheDir == "" {
		coverCacheDir = filepath.Join(filepath.Dir(cfg.Database.Path), "covers")
	}
	coverCache, err := covers.NewCache(coverCacheDir)
	if err != nil {
		log.Printf("WARNING: Failed to initialize cover cache: %v", err)
	} else {
		log.Printf("Cover cache initialized at %s", coverCacheDir)
	}

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled && coverCache != nil {
		taskCfg := tasks.Config{
			Workers:           cfg.Tasks.Workers,
			MaxRetries:        cfg.Tasks.MaxRetries,
			RetryDelay:        cfg.Tasks.RetryDelay,
			TaskTimeout:       cfg.Tasks.TaskTimeout,
			ReleaseAfter:      cfg.Tasks.ReleaseAfter,
			CleanupInterval:   cfg.Tasks.CleanupInterval,
			RetentionDuration: cfg.Tasks.RetentionDuration,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewPrefetchCoverQueue(coverCache),
		)

		// Start task workers in background
		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	}

	// Start the backup scheduler if enabled
	var backupScheduler *scheduler.BackupScheduler
	if cfg.Backup.Enabled {
		exporter := exporters.NewJSONBackupExporter(library, cfg.Backup.Dir)
		backupScheduler = scheduler.NewBackupScheduler(exporter, cfg.Backup.Schedule)
		if err := backupScheduler.Start(); err != nil {
			log.Fatalf("Failed to start backup scheduler: %v", err)
		}
	}

	// Build router configuration with all dependencies
	routerCfg := http_controllers.RouterConfig{
		Store:         library,
		Database:      blobs,
		CatalogClient: catalogClient,
		CoverCache:    coverCache,
		Tracker:       timer.NewTracker(),
		TaskClient:    taskClient,
		Version:       version,
	}

	router := http_controllers.NewRouter(routerCfg)

	// Shutdown callback for graceful cleanup
	onShutdown := func(ctx context.Context) {
		if backupScheduler != nil {
			backupScheduler.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}

// RunBackup performs a one-shot library backup and prints the written path.
func RunBackup(cfg *config.Config) error {
	blobs, err := kvstore.NewStore(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer blobs.Close()

	library := store.New(blobs)
	exporter := exporters.NewJSONBackupExporter(library, cfg.Backup.Dir)

	path, err := exporter.Export()
	if err != nil {
		return err
	}

	fmt.Printf("Backup written to %s\n", path)
	return nil
}
