package decisions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service contains business logic for decisions and input collection.
type Service struct {
	Repo Repo
}

// NewDecision is the payload for creating a decision.
type NewDecision struct {
	Title       string
	Description string
	Deadline    *time.Time
	Options     []string
	Criteria    []NewCriterion
}

// NewCriterion is one judging axis in a create request.
type NewCriterion struct {
	Text   string
	Weight int
}

// InputSubmission is one participant's vote, comment and ratings.
type InputSubmission struct {
	SelectedOptionID string
	Comment          string
	Ratings          map[string]int
	Abstained        bool
}

// Create validates and stores a decision with its options and criteria.
// A decision needs at least two options to be scoreable.
func (s *Service) Create(ctx context.Context, userID string, req NewDecision) (Decision, error) {
	if userID == "" {
		return Decision{}, fmt.Errorf("%w: userID is required", ErrValidation)
	}
	if strings.TrimSpace(req.Title) == "" {
		return Decision{}, fmt.Errorf("%w: title is required", ErrValidation)
	}

	var optionTexts []string
	for _, text := range req.Options {
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			optionTexts = append(optionTexts, trimmed)
		}
	}
	if len(optionTexts) < 2 {
		return Decision{}, fmt.Errorf("%w: at least two options are required", ErrValidation)
	}

	now := time.Now().UTC()
	decision := Decision{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Status:      StatusPending,
		Deadline:    req.Deadline,
		CreatedBy:   userID,
		CreatedAt:   now,
	}

	for i, text := range optionTexts {
		decision.Options = append(decision.Options, Option{
			ID:         uuid.NewString(),
			DecisionID: decision.ID,
			Text:       text,
			Position:   i,
			CreatedAt:  now,
		})
	}

	for _, crit := range req.Criteria {
		text := strings.TrimSpace(crit.Text)
		if text == "" {
			continue
		}
		weight := crit.Weight
		if weight == 0 {
			weight = 1
		}
		if weight < 1 || weight > 10 {
			return Decision{}, fmt.Errorf("%w: criterion weight must be between 1 and 10", ErrValidation)
		}
		decision.Criteria = append(decision.Criteria, Criterion{
			ID:         uuid.NewString(),
			DecisionID: decision.ID,
			Text:       text,
			Weight:     weight,
			CreatedAt:  now,
		})
	}

	if err := s.Repo.Create(ctx, decision); err != nil {
		return Decision{}, err
	}
	return decision, nil
}

// Get returns a decision with its options and criteria.
func (s *Service) Get(ctx context.Context, decisionID string) (Decision, error) {
	if decisionID == "" {
		return Decision{}, fmt.Errorf("%w: decisionID is required", ErrValidation)
	}
	return s.Repo.GetByID(ctx, decisionID)
}

// List returns decisions created by a user, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Decision, error) {
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// UpdateStatus moves a decision between pending/approved/rejected.
func (s *Service) UpdateStatus(ctx context.Context, decisionID, status string) error {
	switch status {
	case StatusPending, StatusApproved, StatusRejected:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	return s.Repo.UpdateStatus(ctx, decisionID, status)
}

// Delete removes a decision and everything it owns.
func (s *Service) Delete(ctx context.Context, decisionID string) error {
	if decisionID == "" {
		return fmt.Errorf("%w: decisionID is required", ErrValidation)
	}
	return s.Repo.Delete(ctx, decisionID)
}

// SubmitInput validates and upserts one participant's submission.
// selected_option_id must be empty exactly when abstained is true.
func (s *Service) SubmitInput(ctx context.Context, decisionID, userID string, req InputSubmission) (Input, error) {
	if decisionID == "" || userID == "" {
		return Input{}, fmt.Errorf("%w: decisionID and userID are required", ErrValidation)
	}
	if req.Abstained && req.SelectedOptionID != "" {
		return Input{}, fmt.Errorf("%w: abstained input cannot select an option", ErrValidation)
	}
	if !req.Abstained && req.SelectedOptionID == "" {
		return Input{}, fmt.Errorf("%w: selectedOptionId is required unless abstaining", ErrValidation)
	}

	decision, err := s.Repo.GetByID(ctx, decisionID)
	if err != nil {
		return Input{}, err
	}

	if req.SelectedOptionID != "" {
		found := false
		for _, opt := range decision.Options {
			if opt.ID == req.SelectedOptionID {
				found = true
				break
			}
		}
		if !found {
			return Input{}, ErrOptionNotFound
		}
	}

	criteriaIDs := make(map[string]struct{}, len(decision.Criteria))
	for _, crit := range decision.Criteria {
		criteriaIDs[crit.ID] = struct{}{}
	}
	for critID, rating := range req.Ratings {
		if _, ok := criteriaIDs[critID]; !ok {
			return Input{}, fmt.Errorf("%w: rating references unknown criterion %q", ErrValidation, critID)
		}
		if rating < 1 || rating > 5 {
			return Input{}, fmt.Errorf("%w: ratings must be between 1 and 5", ErrValidation)
		}
	}

	input := Input{
		ID:               uuid.NewString(),
		DecisionID:       decisionID,
		UserID:           userID,
		SelectedOptionID: req.SelectedOptionID,
		Comment:          req.Comment,
		Ratings:          req.Ratings,
		Abstained:        req.Abstained,
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.Repo.UpsertInput(ctx, input); err != nil {
		return Input{}, err
	}
	return input, nil
}

// ListInputs returns every submission for a decision.
func (s *Service) ListInputs(ctx context.Context, decisionID string) ([]Input, error) {
	if decisionID == "" {
		return nil, fmt.Errorf("%w: decisionID is required", ErrValidation)
	}
	if _, err := s.Repo.GetByID(ctx, decisionID); err != nil {
		return nil, err
	}
	return s.Repo.ListInputs(ctx, decisionID)
}
