package recommendations

import "context"

// Repo defines persistence operations for recommendations.
// Create is insert-only; history is never rewritten.
type Repo interface {
	Create(ctx context.Context, rec Recommendation) error
	GetByID(ctx context.Context, id string) (Recommendation, error)
	ListByDecision(ctx context.Context, decisionID string, limit int) ([]Recommendation, error)
	GetLatestByDecision(ctx context.Context, decisionID string) (Recommendation, error)
}
