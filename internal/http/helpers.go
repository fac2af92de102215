package http

import (
	"fmt"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/shelfcheck/internal/library"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context (validation errors, etc.)
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondBadRequestWithCode sends a 400 Bad Request response with a
// machine-readable code and optional details.
func respondBadRequestWithCode(c *gin.Context, message, code string, details any) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: code, Details: details})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// --- Uploads ---

// uploadedFiles opens every file of a multipart field. The returned close
// function must be called once the readers are consumed.
func uploadedFiles(c *gin.Context, field string, maxFileSize int64) ([]library.NamedReader, func(), error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, func() {}, fmt.Errorf("invalid multipart form: %w", err)
	}

	headers := form.File[field]
	opened := make([]multipart.File, 0, len(headers))
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	files := make([]library.NamedReader, 0, len(headers))
	for _, h := range headers {
		if maxFileSize > 0 && h.Size > maxFileSize {
			closeAll()
			return nil, func() {}, fmt.Errorf("file %s exceeds the %d bytes limit", h.Filename, maxFileSize)
		}
		f, err := h.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, fmt.Errorf("open %s: %w", h.Filename, err)
		}
		opened = append(opened, f)
		files = append(files, library.NamedReader{Name: h.Filename, Reader: f})
	}
	return files, closeAll, nil
}
