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

	"github.com/mrlokans/shelfcheck/internal/config"
	http_controllers "github.com/mrlokans/shelfcheck/internal/http"
	"github.com/mrlokans/shelfcheck/internal/metadata"
	"github.com/mrlokans/shelfcheck/internal/reconcile"
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
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for SIGINT or SIGTERM, then give running requests the shutdown
	// timeout to complete.
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

// NewRouter wires the reconciliation service and the configured metadata
// provider into the HTTP router.
func NewRouter(cfg *config.Config, version string) *gin.Engine {
	provider := cfg.MetadataProvider()
	reconciler := reconcile.NewService(provider, cfg.ReconcileOptions())

	log.Printf("Metadata provider: %s (concurrency %d, rate interval %v)",
		provider.Name(), cfg.Metadata.Concurrency, cfg.Metadata.RateInterval)
	log.Printf("Matching: min fragment length %d, delimiters %q, sort locale %s",
		cfg.Matching.MinFragmentLength, cfg.Matching.FragmentDelimiters, cfg.SortLanguage())

	routerConfig := http_controllers.RouterConfig{
		Reconciler:   reconciler,
		Session:      reconciler.NewSession(context.Background()),
		MaxFileSize:  cfg.Upload.MaxFileSize,
		Version:      version,
		MetadataName: provider.Name(),
	}
	if cache, ok := provider.(*metadata.CachingProvider); ok {
		log.Printf("Metadata cache: %s", cache.CacheDir())
		routerConfig.Cache = cache
	}

	return http_controllers.NewRouter(routerConfig)
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting ShelfCheck v%s", version)

	router := NewRouter(cfg, version)
	Serve(router, cfg, nil)
}
