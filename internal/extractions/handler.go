package extractions

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"medhub-backend/internal/shared/server/middleware"
	"medhub-backend/internal/shared/server/respond"
)

// Handler serves extraction results over HTTP.
type Handler struct {
	Repo Repo
}

// NewHandler constructs a Handler.
func NewHandler(repo Repo) *Handler {
	return &Handler{Repo: repo}
}

// RegisterRoutes attaches extraction routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/documents/:id/data", h.getByDocument)
}

// getByDocument returns 404 both for unknown documents and for documents
// that have not completed processing yet.
func (h *Handler) getByDocument(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	data, err := h.Repo.GetByDocument(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "no extracted data for document", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch extracted data", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, data)
}
