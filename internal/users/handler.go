package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"medhub-backend/internal/shared/server/middleware"
	"medhub-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.me)
	rg.PUT("/me", h.updateMe)
}

func (h *Handler) me(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	user, err := h.Svc.GetOrCreate(c.Request.Context(),
		userID,
		middleware.UserEmailFromContext(c),
		middleware.UserNameFromContext(c),
	)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load profile", nil)
		return
	}
	respond.OK(c, user)
}

func (h *Handler) updateMe(c *gin.Context) {
	var update ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid profile payload", nil)
		return
	}

	userID := middleware.UserIDFromContext(c)
	user, err := h.Svc.UpdateProfile(c.Request.Context(), userID, middleware.UserEmailFromContext(c), update)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid profile fields", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update profile", nil)
		return
	}
	respond.OK(c, user)
}
