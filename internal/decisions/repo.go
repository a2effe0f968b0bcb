package decisions

import "context"

// Repo defines persistence operations for decisions and their inputs.
type Repo interface {
	Create(ctx context.Context, decision Decision) error
	GetByID(ctx context.Context, decisionID string) (Decision, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Decision, error)
	UpdateStatus(ctx context.Context, decisionID, status string) error
	Delete(ctx context.Context, decisionID string) error

	UpsertInput(ctx context.Context, input Input) error
	ListInputs(ctx context.Context, decisionID string) ([]Input, error)
}
