package decisions

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"decision-backend/internal/shared/server/middleware"
	"decision-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the decisions service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches decision routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/decisions", h.createDecision)
	rg.GET("/decisions", h.listDecisions)
	rg.GET("/decisions/:id", h.getDecision)
	rg.PATCH("/decisions/:id/status", h.updateStatus)
	rg.DELETE("/decisions/:id", h.deleteDecision)
	rg.POST("/decisions/:id/inputs", h.submitInput)
	rg.GET("/decisions/:id/inputs", h.listInputs)
}

type createDecisionRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Deadline    *time.Time `json:"deadline"`
	Options     []string   `json:"options"`
	Criteria    []struct {
		Text   string `json:"text"`
		Weight int    `json:"weight"`
	} `json:"criteria"`
}

func (h *Handler) createDecision(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req createDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	payload := NewDecision{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		Options:     req.Options,
	}
	for _, crit := range req.Criteria {
		payload.Criteria = append(payload.Criteria, NewCriterion{Text: crit.Text, Weight: crit.Weight})
	}

	decision, err := h.Svc.Create(c.Request.Context(), userID, payload)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create decision", nil)
		return
	}

	c.Set("decisionId", decision.ID)
	respond.JSON(c, http.StatusCreated, decision)
}

func (h *Handler) getDecision(c *gin.Context) {
	decision, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "decision not found", nil)
		case errors.Is(err, ErrValidation):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch decision", nil)
		}
		return
	}
	respond.OK(c, decision)
}

func (h *Handler) listDecisions(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}

	list, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list decisions", nil)
		return
	}
	respond.OK(c, list)
}

func (h *Handler) updateStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	if err := h.Svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "decision not found", nil)
		case errors.Is(err, ErrValidation):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update status", nil)
		}
		return
	}
	respond.OK(c, gin.H{"id": c.Param("id"), "status": req.Status})
}

func (h *Handler) deleteDecision(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "decision not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete decision", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}

type submitInputRequest struct {
	SelectedOptionID string         `json:"selectedOptionId"`
	Comment          string         `json:"comment"`
	Ratings          map[string]int `json:"ratings"`
	Abstained        bool           `json:"abstained"`
}

func (h *Handler) submitInput(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	decisionID := c.Param("id")

	var req submitInputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	input, err := h.Svc.SubmitInput(c.Request.Context(), decisionID, userID, InputSubmission{
		SelectedOptionID: req.SelectedOptionID,
		Comment:          req.Comment,
		Ratings:          req.Ratings,
		Abstained:        req.Abstained,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "decision not found", nil)
		case errors.Is(err, ErrOptionNotFound):
			respond.Error(c, http.StatusBadRequest, "validation_error", "selected option does not belong to this decision", nil)
		case errors.Is(err, ErrValidation):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to submit input", nil)
		}
		return
	}

	c.Set("decisionId", decisionID)
	respond.JSON(c, http.StatusCreated, input)
}

func (h *Handler) listInputs(c *gin.Context) {
	inputs, err := h.Svc.ListInputs(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "decision not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list inputs", nil)
		}
		return
	}
	respond.OK(c, inputs)
}
