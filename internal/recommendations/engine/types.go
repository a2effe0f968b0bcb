package engine

// Option is a candidate choice belonging to a decision.
type Option struct {
	ID   string
	Text string
}

// Criterion is a judging axis with a weight between 1 and 10.
type Criterion struct {
	ID     string
	Text   string
	Weight int
}

// Input is one participant's submission for a decision.
// SelectedOptionID is empty iff the participant abstained.
type Input struct {
	UserID           string
	SelectedOptionID string
	Abstained        bool
	Comment          string
	Ratings          map[string]int
}

// Weights are the four blending coefficients for the composite score.
// They are used exactly as given; the engine never renormalizes them.
type Weights struct {
	Support    float64
	Criteria   float64
	Sentiment  float64
	Historical float64
}

// OptionScore holds the per-factor and final scores for one option.
type OptionScore struct {
	OptionID   string  `json:"option_id"`
	OptionText string  `json:"option_text"`
	Support    float64 `json:"support"`
	Criteria   float64 `json:"criteria"`
	Sentiment  float64 `json:"sentiment"`
	Historical float64 `json:"historical"`
	Final      float64 `json:"final"`
}
