package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	cacheDir := ""
	if cfg.Cache != nil {
		cacheDir = cfg.Cache.CacheDir()
	}
	health := NewHealthController(cfg.MetadataName, cacheDir, cfg.Version)
	libraryController := NewLibraryController(cfg.Reconciler, cfg.MaxFileSize)
	matchController := NewMatchController(cfg.Reconciler)
	reconcileController := NewReconcileController(cfg.Reconciler, cfg.MaxFileSize)
	isbnController := NewISBNController(cfg.Cache)
	sessionController := NewSessionController(cfg.Session, cfg.MaxFileSize)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api")
	{
		api.POST("/library/parse", libraryController.Parse)
		api.POST("/match", matchController.Match)
		api.POST("/reconcile", reconcileController.Reconcile)
		api.GET("/isbn/:code/validate", isbnController.Validate)
		api.DELETE("/isbn/:code/cache", isbnController.InvalidateCache)

		session := api.Group("/session")
		session.GET("", sessionController.State)
		session.POST("/codes", sessionController.AddCodes)
		session.POST("/reconcile", sessionController.Reconcile)
		session.DELETE("", sessionController.Reset)
	}

	return router
}
