package recommendations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"decision-backend/internal/decisions"
	"decision-backend/internal/shared/server/middleware"
	"decision-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the recommendations service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches recommendation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/decisions/:id/recommendations", h.generate)
	rg.GET("/decisions/:id/recommendations", h.list)
	rg.GET("/decisions/:id/recommendations/latest", h.latest)
	rg.GET("/recommendations/:id", h.get)
}

func (h *Handler) generate(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	decisionID := c.Param("id")

	rec, err := h.Svc.Generate(c.Request.Context(), decisionID, userID)
	if err != nil {
		switch {
		case errors.Is(err, decisions.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "decision not found", nil)
		case errors.Is(err, decisions.ErrValidation), errors.Is(err, ErrNotScoreable):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrStorage):
			respond.Error(c, http.StatusInternalServerError, "storage_error", "failed to store recommendation", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate recommendation", nil)
		}
		return
	}

	c.Set("decisionId", decisionID)
	c.Set("recommendationId", rec.ID)
	respond.JSON(c, http.StatusCreated, rec)
}

func (h *Handler) list(c *gin.Context) {
	decisionID := c.Param("id")

	limit := 20
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}

	list, err := h.Svc.List(c.Request.Context(), decisionID, limit)
	if err != nil {
		switch {
		case errors.Is(err, decisions.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "decision not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list recommendations", nil)
		}
		return
	}
	respond.OK(c, list)
}

func (h *Handler) latest(c *gin.Context) {
	decisionID := c.Param("id")

	rec, err := h.Svc.Latest(c.Request.Context(), decisionID)
	if err != nil {
		switch {
		case errors.Is(err, decisions.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "decision not found", nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "no recommendation for this decision yet", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch recommendation", nil)
		}
		return
	}
	respond.OK(c, rec)
}

func (h *Handler) get(c *gin.Context) {
	rec, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "recommendation not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch recommendation", nil)
		}
		return
	}
	respond.OK(c, rec)
}
