package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/shelfcheck/internal/entities"
	"github.com/mrlokans/shelfcheck/internal/reconcile"
)

type MatchController struct {
	reconciler *reconcile.Service
}

func NewMatchController(reconciler *reconcile.Service) *MatchController {
	return &MatchController{reconciler: reconciler}
}

// MatchRequest carries two already known lists.
type MatchRequest struct {
	LibraryBooks []entities.LibraryBook `json:"library_books"`
	IsbnBooks    []entities.IsbnBook    `json:"isbn_books"`
}

func (m *MatchController) Match(c *gin.Context) {
	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	for i := range req.LibraryBooks {
		if req.LibraryBooks[i].Authors == nil {
			req.LibraryBooks[i].Authors = []string{}
		}
	}
	for i := range req.IsbnBooks {
		if req.IsbnBooks[i].Authors == nil {
			req.IsbnBooks[i].Authors = []string{}
		}
	}

	c.JSON(http.StatusOK, m.reconciler.Match(req.LibraryBooks, req.IsbnBooks))
}
