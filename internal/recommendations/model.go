package recommendations

import (
	"time"

	"decision-backend/internal/recommendations/engine"
)

// Recommendation is one scoring run's outcome for a decision. Rows are
// append-only; regenerating adds a new row rather than replacing the old one.
type Recommendation struct {
	ID                    string               `json:"id"`
	DecisionID            string               `json:"decisionId"`
	RecommendedOptionID   string               `json:"recommendedOptionId"`
	RecommendedOptionText string               `json:"recommendedOptionText"`
	ConfidenceScore       float64              `json:"confidenceScore"`
	Explanation           string               `json:"explanation"`
	Details               []engine.OptionScore `json:"details"`
	CreatedAt             time.Time            `json:"createdAt"`
}
