package symptoms

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"medhub-backend/internal/shared/server/middleware"
	"medhub-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches symptom routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/symptoms", h.create)
	rg.GET("/symptoms", h.list)
	rg.GET("/symptoms/:id", h.get)
	rg.DELETE("/symptoms/:id", h.remove)
}

type createSymptomRequest struct {
	Name     string     `json:"name"`
	Severity int        `json:"severity"`
	Note     string     `json:"note"`
	OnsetAt  *time.Time `json:"onsetAt"`
}

func (h *Handler) create(c *gin.Context) {
	var req createSymptomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	userID := middleware.UserIDFromContext(c)
	symptom, err := h.Svc.Log(c.Request.Context(), userID, NewSymptom{
		Name:     req.Name,
		Severity: req.Severity,
		Note:     req.Note,
		OnsetAt:  req.OnsetAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid symptom fields", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to log symptom", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, symptom)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	symptom, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "symptom not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load symptom", nil)
		}
		return
	}

	respond.OK(c, symptom)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	limit, offset := pagination(c, 50, 200)

	result, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list symptoms", nil)
		return
	}

	if result == nil {
		result = []Symptom{}
	}
	respond.OK(c, result)
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	if err := h.Svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "symptom not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete symptom", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func pagination(c *gin.Context, def, max int) (int, int) {
	limit := def
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}
	if limit > max {
		limit = max
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
