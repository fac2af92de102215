package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/shelfcheck/internal/reconcile"
)

type SessionController struct {
	session     *reconcile.Session
	maxFileSize int64
}

func NewSessionController(session *reconcile.Session, maxFileSize int64) *SessionController {
	return &SessionController{
		session:     session,
		maxFileSize: maxFileSize,
	}
}

// AddCodesRequest carries scanned codes. Each entry may hold several codes
// separated by commas, spaces or new lines.
type AddCodesRequest struct {
	Codes []string `json:"codes" binding:"required"`
}

type AddCodesResponse struct {
	IgnoredCodes []reconcile.IgnoredCode `json:"ignored_codes"`
	State        reconcile.SessionState  `json:"state"`
}

func (s *SessionController) State(c *gin.Context) {
	c.JSON(http.StatusOK, s.session.State())
}

// AddCodes scans codes into the session. Their metadata is fetched in the
// background, GET /api/session tells when fetching is over.
func (s *SessionController) AddCodes(c *gin.Context) {
	var req AddCodesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	ignored := s.session.Add(splitCodes(req.Codes))
	if ignored == nil {
		ignored = []reconcile.IgnoredCode{}
	}
	c.JSON(http.StatusOK, AddCodesResponse{IgnoredCodes: ignored, State: s.session.State()})
}

// Reconcile matches the uploaded "files" with the books scanned so far.
func (s *SessionController) Reconcile(c *gin.Context) {
	files, closeFiles, err := uploadedFiles(c, "files", s.maxFileSize)
	defer closeFiles()
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	report, err := s.session.Reconcile(c.Request.Context(), files)
	if err != nil {
		if errors.Is(err, reconcile.ErrNoLibraryBooks) {
			respondBadRequestWithCode(c, "No library file could be parsed", "no_library_books", err.Error())
			return
		}
		respondInternalError(c, err, "session reconcile")
		return
	}

	c.JSON(http.StatusOK, report)
}

func (s *SessionController) Reset(c *gin.Context) {
	s.session.Reset()
	c.Status(http.StatusNoContent)
}
