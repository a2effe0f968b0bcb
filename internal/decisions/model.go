package decisions

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Decision is one deliberation instance. It owns its options and criteria;
// deleting the decision deletes both.
type Decision struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Status      string      `json:"status"`
	Deadline    *time.Time  `json:"deadline,omitempty"`
	CreatedBy   string      `json:"createdBy"`
	CreatedAt   time.Time   `json:"createdAt"`
	Options     []Option    `json:"options,omitempty"`
	Criteria    []Criterion `json:"criteria,omitempty"`
}

// Option is a candidate choice belonging to exactly one decision.
type Option struct {
	ID         string    `json:"id"`
	DecisionID string    `json:"decisionId"`
	Text       string    `json:"text"`
	Position   int       `json:"position"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Criterion is a judging axis with weight in [1,10], defaulting to 1.
type Criterion struct {
	ID         string    `json:"id"`
	DecisionID string    `json:"decisionId"`
	Text       string    `json:"text"`
	Weight     int       `json:"weight"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Input is one participant's submission for a decision. There is exactly one
// per (user, decision); resubmission replaces the prior one.
// SelectedOptionID is empty iff Abstained is true.
type Input struct {
	ID               string         `json:"id"`
	DecisionID       string         `json:"decisionId"`
	UserID           string         `json:"userId"`
	SelectedOptionID string         `json:"selectedOptionId,omitempty"`
	Comment          string         `json:"comment,omitempty"`
	Ratings          map[string]int `json:"ratings,omitempty"`
	Abstained        bool           `json:"abstained"`
	CreatedAt        time.Time      `json:"createdAt"`
}
