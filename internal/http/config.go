package http

import (
	"github.com/pagemark/bookpace/internal/catalog"
	"github.com/pagemark/bookpace/internal/covers"
	"github.com/pagemark/bookpace/internal/store"
	"github.com/pagemark/bookpace/internal/tasks"
	"github.com/pagemark/bookpace/internal/timer"
)

// RouterConfig contains all dependencies and configuration needed to create
// the HTTP router. This replaces a long parameter list in NewRouter for
// better maintainability.
type RouterConfig struct {
	// Core dependencies
	Store    *store.Store
	Database DatabasePinger

	// Catalog lookup (optional; nil disables the catalog endpoints)
	CatalogClient *catalog.Client

	// Cover caching (optional)
	CoverCache *covers.Cache

	// Reading timer
	Tracker *timer.Tracker

	// Task queue client (optional)
	TaskClient *tasks.Client

	// Application info
	Version string
}
