package settings

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"decision-backend/internal/shared/server/middleware"
	"decision-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the settings service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches settings routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/settings/recommendation", h.getProfile)
	rg.PUT("/settings/recommendation", h.putProfile)
}

func (h *Handler) getProfile(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	profile, err := h.Svc.Get(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch settings", nil)
		return
	}
	respond.OK(c, profile)
}

type putProfileRequest struct {
	SupportWeight    float64 `json:"supportWeight"`
	CriteriaWeight   float64 `json:"criteriaWeight"`
	SentimentWeight  float64 `json:"sentimentWeight"`
	HistoricalWeight float64 `json:"historicalWeight"`
}

func (h *Handler) putProfile(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req putProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	// Each weight must sit in [0,1]; the sum is deliberately unchecked.
	for _, w := range []float64{req.SupportWeight, req.CriteriaWeight, req.SentimentWeight, req.HistoricalWeight} {
		if w < 0 || w > 1 {
			respond.Error(c, http.StatusBadRequest, "validation_error", "weights must be between 0 and 1", nil)
			return
		}
	}

	profile := Profile{
		UserID:           userID,
		SupportWeight:    req.SupportWeight,
		CriteriaWeight:   req.CriteriaWeight,
		SentimentWeight:  req.SentimentWeight,
		HistoricalWeight: req.HistoricalWeight,
	}
	if err := h.Svc.Put(c.Request.Context(), profile); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save settings", nil)
		return
	}
	respond.OK(c, profile)
}
