package http

import (
	"github.com/mrlokans/shelfcheck/internal/reconcile"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Reconciler *reconcile.Service
	Session    *reconcile.Session // Scan session shared by the /api/session endpoints
	Cache      MetadataCache      // Nil when fetched books are not cached

	// Upload limits
	MaxFileSize int64

	// Application info
	Version      string
	MetadataName string // Name of the configured metadata provider, for health checks
}

// MetadataCache is the on-disk cache of fetched books.
type MetadataCache interface {
	Invalidate(code string) error
	CacheDir() string
}
