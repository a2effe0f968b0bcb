package settings

import (
	"time"

	"decision-backend/internal/recommendations/engine"
)

// Profile holds a user's four blending weights. It is a pass-through
// configuration: the engine uses the values as given and never checks
// that they sum to 1.
type Profile struct {
	UserID           string    `json:"-"`
	SupportWeight    float64   `json:"supportWeight"`
	CriteriaWeight   float64   `json:"criteriaWeight"`
	SentimentWeight  float64   `json:"sentimentWeight"`
	HistoricalWeight float64   `json:"historicalWeight"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Weights converts the profile into engine blending coefficients.
func (p Profile) Weights() engine.Weights {
	return engine.Weights{
		Support:    p.SupportWeight,
		Criteria:   p.CriteriaWeight,
		Sentiment:  p.SentimentWeight,
		Historical: p.HistoricalWeight,
	}
}
