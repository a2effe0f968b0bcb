package recommendations

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory Repo for local development and tests.
type MemoryRepo struct {
	mu         sync.RWMutex
	byID       map[string]Recommendation
	byDecision map[string][]string
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:       make(map[string]Recommendation),
		byDecision: make(map[string][]string),
	}
}

// Create appends a recommendation to the store.
func (r *MemoryRepo) Create(ctx context.Context, rec Recommendation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[rec.ID] = rec
	r.byDecision[rec.DecisionID] = append(r.byDecision[rec.DecisionID], rec.ID)
	return nil
}

// GetByID fetches one recommendation.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return Recommendation{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.byID[id]
	if !ok {
		return Recommendation{}, ErrNotFound
	}
	return rec, nil
}

// ListByDecision returns recommendations for a decision, newest first.
func (r *MemoryRepo) ListByDecision(ctx context.Context, decisionID string, limit int) ([]Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byDecision[decisionID]
	out := make([]Recommendation, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		out = append(out, r.byID[ids[i]])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// GetLatestByDecision returns the most recent recommendation for a decision.
func (r *MemoryRepo) GetLatestByDecision(ctx context.Context, decisionID string) (Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return Recommendation{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byDecision[decisionID]
	if len(ids) == 0 {
		return Recommendation{}, ErrNotFound
	}
	return r.byID[ids[len(ids)-1]], nil
}

var _ Repo = (*MemoryRepo)(nil)
