package decisions

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores decisions in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu       sync.RWMutex
	byID     map[string]Decision
	inputs   map[string]map[string]Input // decisionID -> userID -> input
	inputSeq map[string][]string         // decisionID -> userIDs in first-submission order
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:     make(map[string]Decision),
		inputs:   make(map[string]map[string]Input),
		inputSeq: make(map[string][]string),
	}
}

// Create stores the decision with its options and criteria.
func (r *MemoryRepo) Create(ctx context.Context, decision Decision) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[decision.ID] = decision
	return nil
}

// GetByID returns a decision by its ID, including options and criteria.
func (r *MemoryRepo) GetByID(ctx context.Context, decisionID string) (Decision, error) {
	if err := ctx.Err(); err != nil {
		return Decision{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	decision, ok := r.byID[decisionID]
	if !ok {
		return Decision{}, ErrNotFound
	}
	return decision, nil
}

// ListByUser returns decisions created by a user, newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Decision, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	var out []Decision
	for _, d := range r.byID {
		if d.CreatedBy == userID {
			out = append(out, d)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if offset >= len(out) {
		return []Decision{}, nil
	}
	end := len(out)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return out[offset:end], nil
}

// UpdateStatus sets the status of an existing decision.
func (r *MemoryRepo) UpdateStatus(ctx context.Context, decisionID, status string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	decision, ok := r.byID[decisionID]
	if !ok {
		return ErrNotFound
	}
	decision.Status = status
	r.byID[decisionID] = decision
	return nil
}

// Delete removes a decision along with its inputs.
func (r *MemoryRepo) Delete(ctx context.Context, decisionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[decisionID]; !ok {
		return ErrNotFound
	}
	delete(r.byID, decisionID)
	delete(r.inputs, decisionID)
	delete(r.inputSeq, decisionID)
	return nil
}

// UpsertInput stores or replaces the input for (decision, user).
func (r *MemoryRepo) UpsertInput(ctx context.Context, input Input) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[input.DecisionID]; !ok {
		return ErrNotFound
	}
	byUser, ok := r.inputs[input.DecisionID]
	if !ok {
		byUser = make(map[string]Input)
		r.inputs[input.DecisionID] = byUser
	}
	if _, exists := byUser[input.UserID]; !exists {
		r.inputSeq[input.DecisionID] = append(r.inputSeq[input.DecisionID], input.UserID)
	}
	byUser[input.UserID] = input
	return nil
}

// ListInputs returns all inputs for a decision in first-submission order.
func (r *MemoryRepo) ListInputs(ctx context.Context, decisionID string) ([]Input, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	byUser := r.inputs[decisionID]
	out := make([]Input, 0, len(byUser))
	for _, userID := range r.inputSeq[decisionID] {
		if in, ok := byUser[userID]; ok {
			out = append(out, in)
		}
	}
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
