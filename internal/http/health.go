package http

import (
	"net/http"
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
	metadataProvider string
	metadataCache    string
	version          string
}

func NewHealthController(metadataProvider, metadataCache, version string) *HealthController {
	return &HealthController{
		metadataProvider: metadataProvider,
		metadataCache:    metadataCache,
		version:          version,
	}
}

// Status reports the service as healthy. Metadata providers are remote and
// only reported, their availability is checked per request.
func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)

	if h.metadataProvider != "" {
		checks["metadata"] = h.metadataProvider
	} else {
		checks["metadata"] = "not configured"
	}
	if h.metadataCache != "" {
		checks["metadata_cache"] = h.metadataCache
	} else {
		checks["metadata_cache"] = "disabled"
	}

	health := HealthResponse{
		Status:  "healthy",
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	c.IndentedJSON(http.StatusOK, health)
}
