package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/shelfcheck/internal/isbn"
)

type ISBNController struct {
	cache MetadataCache
}

func NewISBNController(cache MetadataCache) *ISBNController {
	return &ISBNController{cache: cache}
}

type ISBNValidation struct {
	Code    string `json:"code"`
	Cleaned string `json:"cleaned"`
	Valid   bool   `json:"valid"`
}

// Validate checks the checksum of a scanned code.
func (i *ISBNController) Validate(c *gin.Context) {
	code := c.Param("code")
	c.JSON(http.StatusOK, ISBNValidation{
		Code:    code,
		Cleaned: isbn.Clean(code),
		Valid:   isbn.IsValid(code),
	})
}

// InvalidateCache drops the cached metadata of a code, so that the next scan
// fetches it again.
func (i *ISBNController) InvalidateCache(c *gin.Context) {
	if i.cache == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Metadata cache is not configured", Code: "cache_disabled"})
		return
	}

	code := c.Param("code")
	if !isbn.IsValid(code) {
		respondBadRequestWithCode(c, "Invalid ISBN code", "invalid_isbn", code)
		return
	}

	if err := i.cache.Invalidate(code); err != nil {
		respondInternalError(c, err, "invalidate cache")
		return
	}

	c.Status(http.StatusNoContent)
}
