package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/shelfcheck/internal/reconcile"
)

type ReconcileController struct {
	reconciler  *reconcile.Service
	maxFileSize int64
}

func NewReconcileController(reconciler *reconcile.Service, maxFileSize int64) *ReconcileController {
	return &ReconcileController{
		reconciler:  reconciler,
		maxFileSize: maxFileSize,
	}
}

// Reconcile parses the uploaded "files", fetches the scanned "codes" and
// returns the match report. Codes may be sent as repeated fields or as a
// single field separated by commas, spaces or new lines.
func (r *ReconcileController) Reconcile(c *gin.Context) {
	files, closeFiles, err := uploadedFiles(c, "files", r.maxFileSize)
	defer closeFiles()
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	codes := splitCodes(c.PostFormArray("codes"))
	if len(files) == 0 && len(codes) == 0 {
		respondBadRequest(c, "No library file or ISBN code provided")
		return
	}

	report, err := r.reconciler.Run(c.Request.Context(), files, codes)
	if err != nil {
		if errors.Is(err, reconcile.ErrNoLibraryBooks) {
			respondBadRequestWithCode(c, "No library file could be parsed", "no_library_books", err.Error())
			return
		}
		respondInternalError(c, err, "reconcile")
		return
	}

	c.JSON(http.StatusOK, report)
}

func splitCodes(values []string) []string {
	var codes []string
	for _, v := range values {
		codes = append(codes, strings.FieldsFunc(v, func(r rune) bool {
			return r == ',' || r == ';' || r == ' ' || r == '\n' || r == '\r' || r == '\t'
		})...)
	}
	return codes
}
