package recommendations

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"decision-backend/internal/decisions"
	"decision-backend/internal/queue"
	"decision-backend/internal/recommendations/engine"
	"decision-backend/internal/settings"
	"decision-backend/internal/shared/metrics"
	"decision-backend/internal/shared/telemetry"
)

// Service orchestrates recommendation generation: it loads the decision and
// its inputs, resolves the caller's weight profile, runs the scoring engine,
// persists the outcome and queues a best-effort notification.
type Service struct {
	Repo      Repo
	Decisions *decisions.Service
	Settings  *settings.Service
	Queue     queue.Client
}

// NewService constructs a Service. Queue may be nil when notifications are
// not configured.
func NewService(repo Repo, decisionSvc *decisions.Service, settingsSvc *settings.Service, q queue.Client) *Service {
	return &Service{
		Repo:      repo,
		Decisions: decisionSvc,
		Settings:  settingsSvc,
		Queue:     q,
	}
}

// Generate runs a full scoring pass for a decision on behalf of a user.
// Zero inputs is not an error; scoring proceeds on defaults and the result
// records that nothing was voted for.
func (s *Service) Generate(ctx context.Context, decisionID, userID string) (Recommendation, error) {
	started := time.Now()

	decision, err := s.Decisions.Get(ctx, decisionID)
	if err != nil {
		metrics.IncRecommendationsFailed()
		return Recommendation{}, err
	}
	if len(decision.Options) < 2 {
		metrics.IncRecommendationsFailed()
		return Recommendation{}, fmt.Errorf("%w: decision has fewer than two options", ErrNotScoreable)
	}

	inputs, err := s.Decisions.ListInputs(ctx, decisionID)
	if err != nil {
		metrics.IncRecommendationsFailed()
		return Recommendation{}, err
	}

	profile, err := s.Settings.Get(ctx, userID)
	if err != nil {
		metrics.IncRecommendationsFailed()
		return Recommendation{}, err
	}

	scores := engine.ScoreOptions(
		engineOptions(decision.Options),
		engineCriteria(decision.Criteria),
		engineInputs(inputs),
		profile.Weights(),
	)
	best, ok := engine.Select(scores)
	if !ok {
		metrics.IncRecommendationsFailed()
		return Recommendation{}, fmt.Errorf("%w: no options to score", ErrNotScoreable)
	}

	rec := Recommendation{
		ID:                    uuid.NewString(),
		DecisionID:            decisionID,
		RecommendedOptionID:   best.OptionID,
		RecommendedOptionText: best.OptionText,
		ConfidenceScore:       best.Final,
		Explanation:           engine.Explanation(best.Final),
		Details:               scores,
		CreatedAt:             time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, rec); err != nil {
		metrics.IncRecommendationsFailed()
		return Recommendation{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	metrics.IncRecommendationsGenerated()
	metrics.ObserveScoringDurationMs(float64(time.Since(started)) / float64(time.Millisecond))

	s.notify(ctx, rec)
	return rec, nil
}

// notify queues a notification event for a persisted recommendation.
// Failures are logged and counted but never surfaced to the caller.
func (s *Service) notify(ctx context.Context, rec Recommendation) {
	if s.Queue == nil {
		return
	}
	msg := queue.Message{
		DecisionID:            rec.DecisionID,
		RecommendationID:      rec.ID,
		RecommendedOptionText: rec.RecommendedOptionText,
		ConfidenceScore:       rec.ConfidenceScore,
		Explanation:           rec.Explanation,
		EnqueuedAt:            time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.Queue.Send(ctx, msg); err != nil {
		metrics.IncNotificationsFailed()
		telemetry.Error("failed to queue recommendation notification", map[string]any{
			"decisionId":       rec.DecisionID,
			"recommendationId": rec.ID,
			"err":              err.Error(),
		})
		return
	}
	metrics.IncNotificationsQueued()
}

// Get returns one recommendation by id.
func (s *Service) Get(ctx context.Context, id string) (Recommendation, error) {
	return s.Repo.GetByID(ctx, id)
}

// List returns the recommendation history for a decision, newest first.
func (s *Service) List(ctx context.Context, decisionID string, limit int) ([]Recommendation, error) {
	if _, err := s.Decisions.Get(ctx, decisionID); err != nil {
		return nil, err
	}
	return s.Repo.ListByDecision(ctx, decisionID, limit)
}

// Latest returns the most recent recommendation for a decision.
func (s *Service) Latest(ctx context.Context, decisionID string) (Recommendation, error) {
	if _, err := s.Decisions.Get(ctx, decisionID); err != nil {
		return Recommendation{}, err
	}
	return s.Repo.GetLatestByDecision(ctx, decisionID)
}

func engineOptions(opts []decisions.Option) []engine.Option {
	out := make([]engine.Option, 0, len(opts))
	for _, o := range opts {
		out = append(out, engine.Option{ID: o.ID, Text: o.Text})
	}
	return out
}

func engineCriteria(crits []decisions.Criterion) []engine.Criterion {
	out := make([]engine.Criterion, 0, len(crits))
	for _, c := range crits {
		out = append(out, engine.Criterion{ID: c.ID, Text: c.Text, Weight: c.Weight})
	}
	return out
}

func engineInputs(inputs []decisions.Input) []engine.Input {
	out := make([]engine.Input, 0, len(inputs))
	for _, in := range inputs {
		out = append(out, engine.Input{
			UserID:           in.UserID,
			SelectedOptionID: in.SelectedOptionID,
			Abstained:        in.Abstained,
			Comment:          in.Comment,
			Ratings:          in.Ratings,
		})
	}
	return out
}
