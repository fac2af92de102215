package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/shelfcheck/internal/entities"
	"github.com/mrlokans/shelfcheck/internal/library"
	"github.com/mrlokans/shelfcheck/internal/reconcile"
)

type LibraryController struct {
	reconciler  *reconcile.Service
	maxFileSize int64
}

func NewLibraryController(reconciler *reconcile.Service, maxFileSize int64) *LibraryController {
	return &LibraryController{
		reconciler:  reconciler,
		maxFileSize: maxFileSize,
	}
}

type ParsedFile struct {
	Name   string                 `json:"name"`
	Layout library.Layout         `json:"layout,omitempty"`
	Books  []entities.LibraryBook `json:"books"`
	Error  string                 `json:"error,omitempty"`
}

type ParseResponse struct {
	Files []ParsedFile           `json:"files"`
	Books []entities.LibraryBook `json:"books"`
}

// Parse reads the uploaded library exports. Every file is parsed on its
// own: a rejected file is reported with its error next to the others.
func (l *LibraryController) Parse(c *gin.Context) {
	files, closeFiles, err := uploadedFiles(c, "files", l.maxFileSize)
	defer closeFiles()
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	if len(files) == 0 {
		respondBadRequest(c, "No library file provided")
		return
	}

	results := l.reconciler.ParseFiles(c.Request.Context(), files)

	response := ParseResponse{
		Files: make([]ParsedFile, 0, len(results)),
		Books: l.reconciler.Merge(results),
	}
	for _, r := range results {
		parsed := ParsedFile{Name: r.Name, Layout: r.Layout, Books: r.Books}
		if r.Failed() {
			parsed.Error = r.Err.Error()
		}
		response.Files = append(response.Files, parsed)
	}

	c.JSON(http.StatusOK, response)
}
