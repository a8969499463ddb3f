package readings

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

// RegisterRoutes attaches reading routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/readings", h.create)
	rg.GET("/readings", h.list)
	rg.GET("/readings/:id", h.get)
	rg.DELETE("/readings/:id", h.remove)
}

type createReadingRequest struct {
	Type       string     `json:"type"`
	Value      *float64   `json:"value"`
	Unit       string     `json:"unit"`
	Systolic   *int       `json:"systolic"`
	Diastolic  *int       `json:"diastolic"`
	Note       string     `json:"note"`
	RecordedAt *time.Time `json:"recordedAt"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	userID := middleware.UserIDFromContext(c)
	reading, err := h.Svc.Record(c.Request.Context(), userID, NewReading{
		Type:       req.Type,
		Value:      req.Value,
		Unit:       req.Unit,
		Systolic:   req.Systolic,
		Diastolic:  req.Diastolic,
		Note:       req.Note,
		RecordedAt: req.RecordedAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid reading fields", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to record reading", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, reading)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	reading, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "reading not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load reading", nil)
		}
		return
	}

	respond.OK(c, reading)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	limit, offset := pagination(c, 50, 200)

	result, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list readings", nil)
		return
	}

	if result == nil {
		result = []Reading{}
	}
	respond.OK(c, result)
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	if err := h.Svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "reading not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete reading", nil)
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
