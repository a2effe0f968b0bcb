package recommendations

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"decision-backend/internal/decisions"
	"decision-backend/internal/queue"
	"decision-backend/internal/settings"
)

type queueStub struct {
	mu       sync.Mutex
	messages []queue.Message
	err      error
}

func (q *queueStub) Send(_ context.Context, msg queue.Message) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.messages = append(q.messages, msg)
	return nil
}

func (q *queueStub) sent() []queue.Message {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]queue.Message(nil), q.messages...)
}

func setupService(t *testing.T, q queue.Client) (*Service, *decisions.Service) {
	t.Helper()
	decisionSvc := &decisions.Service{Repo: decisions.NewMemoryRepo()}
	settingsSvc := settings.NewService()
	svc := NewService(NewMemoryRepo(), decisionSvc, settingsSvc, q)
	return svc, decisionSvc
}

func seedDecision(t *testing.T, svc *decisions.Service, options []string) decisions.Decision {
	t.Helper()
	decision, err := svc.Create(context.Background(), "user-1", decisions.NewDecision{
		Title:   "Team offsite location",
		Options: options,
	})
	if err != nil {
		t.Fatalf("create decision: %v", err)
	}
	return decision
}

func TestGeneratePersistsAndNotifies(t *testing.T) {
	qs := &queueStub{}
	svc, decisionSvc := setupService(t, qs)
	decision := seedDecision(t, decisionSvc, []string{"Lisbon", "Prague"})

	ctx := context.Background()
	voters := []string{"u1", "u2", "u3"}
	for _, voter := range voters {
		_, err := decisionSvc.SubmitInput(ctx, decision.ID, voter, decisions.InputSubmission{
			SelectedOptionID: decision.Options[0].ID,
		})
		if err != nil {
			t.Fatalf("submit input: %v", err)
		}
	}
	_, err := decisionSvc.SubmitInput(ctx, decision.ID, "u4", decisions.InputSubmission{
		SelectedOptionID: decision.Options[1].ID,
	})
	if err != nil {
		t.Fatalf("submit input: %v", err)
	}

	rec, err := svc.Generate(ctx, decision.ID, "user-1")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if rec.RecommendedOptionID != decision.Options[0].ID {
		t.Fatalf("expected option %q recommended, got %q", decision.Options[0].ID, rec.RecommendedOptionID)
	}
	if rec.RecommendedOptionText != "Lisbon" {
		t.Fatalf("expected option text Lisbon, got %q", rec.RecommendedOptionText)
	}
	if len(rec.Details) != 2 {
		t.Fatalf("expected 2 option scores, got %d", len(rec.Details))
	}
	if rec.Explanation == "" {
		t.Fatal("expected non-empty explanation")
	}

	stored, err := svc.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get persisted recommendation: %v", err)
	}
	if stored.ConfidenceScore != rec.ConfidenceScore {
		t.Fatalf("stored confidence %v != returned %v", stored.ConfidenceScore, rec.ConfidenceScore)
	}

	sent := qs.sent()
	if len(sent) != 1 {
		t.Fatalf("expected 1 queued notification, got %d", len(sent))
	}
	if sent[0].DecisionID != decision.ID || sent[0].RecommendationID != rec.ID {
		t.Fatalf("notification references wrong ids: %+v", sent[0])
	}
	if sent[0].RecommendedOptionText != "Lisbon" {
		t.Fatalf("notification option text %q", sent[0].RecommendedOptionText)
	}
}

func TestGenerateNotifyFailureIsSuppressed(t *testing.T) {
	qs := &queueStub{err: errors.New("queue unavailable")}
	svc, decisionSvc := setupService(t, qs)
	decision := seedDecision(t, decisionSvc, []string{"Build", "Buy"})

	rec, err := svc.Generate(context.Background(), decision.ID, "user-1")
	if err != nil {
		t.Fatalf("Generate should succeed despite queue failure: %v", err)
	}
	if _, err := svc.Get(context.Background(), rec.ID); err != nil {
		t.Fatalf("recommendation should be persisted: %v", err)
	}
}

func TestGenerateWithoutQueue(t *testing.T) {
	svc, decisionSvc := setupService(t, nil)
	decision := seedDecision(t, decisionSvc, []string{"Build", "Buy"})

	if _, err := svc.Generate(context.Background(), decision.ID, "user-1"); err != nil {
		t.Fatalf("Generate with nil queue: %v", err)
	}
}

func TestGenerateZeroInputs(t *testing.T) {
	svc, decisionSvc := setupService(t, &queueStub{})
	decision := seedDecision(t, decisionSvc, []string{"Build", "Buy"})

	rec, err := svc.Generate(context.Background(), decision.ID, "user-1")
	if err != nil {
		t.Fatalf("Generate with zero inputs: %v", err)
	}

	// Default weights {0.5, 0.3, 0.1, 0.1}: support 0, criteria 0,
	// sentiment 0.5, historical 0.5 gives a final of exactly 0.1.
	if math.Abs(rec.ConfidenceScore-0.1) > 1e-9 {
		t.Fatalf("expected confidence 0.1, got %v", rec.ConfidenceScore)
	}
	if rec.RecommendedOptionID != decision.Options[0].ID {
		t.Fatalf("expected first option to win the tie, got %q", rec.RecommendedOptionID)
	}
}

func TestGenerateUsesCallerWeightProfile(t *testing.T) {
	decisionSvc := &decisions.Service{Repo: decisions.NewMemoryRepo()}
	settingsSvc := settings.NewService()
	svc := NewService(NewMemoryRepo(), decisionSvc, settingsSvc, nil)
	decision := seedDecision(t, decisionSvc, []string{"Build", "Buy"})

	ctx := context.Background()
	err := settingsSvc.Put(ctx, settings.Profile{
		UserID:           "user-1",
		SupportWeight:    0,
		CriteriaWeight:   0,
		SentimentWeight:  0,
		HistoricalWeight: 1,
	})
	if err != nil {
		t.Fatalf("put profile: %v", err)
	}

	rec, err := svc.Generate(ctx, decision.ID, "user-1")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// Only the historical placeholder contributes, so the final is 0.5.
	if math.Abs(rec.ConfidenceScore-0.5) > 1e-9 {
		t.Fatalf("expected confidence 0.5 under historical-only profile, got %v", rec.ConfidenceScore)
	}
}

func TestGenerateDecisionNotFound(t *testing.T) {
	svc, _ := setupService(t, &queueStub{})

	_, err := svc.Generate(context.Background(), "missing", "user-1")
	if !errors.Is(err, decisions.ErrNotFound) {
		t.Fatalf("expected decisions.ErrNotFound, got %v", err)
	}
}

func TestListAndLatestReturnHistory(t *testing.T) {
	svc, decisionSvc := setupService(t, &queueStub{})
	decision := seedDecision(t, decisionSvc, []string{"Build", "Buy"})

	ctx := context.Background()
	first, err := svc.Generate(ctx, decision.ID, "user-1")
	if err != nil {
		t.Fatalf("first Generate: %v", err)
	}
	second, err := svc.Generate(ctx, decision.ID, "user-1")
	if err != nil {
		t.Fatalf("second Generate: %v", err)
	}
	if first.ID == second.ID {
		t.Fatal("regeneration should append a new row, not reuse the old id")
	}

	list, err := svc.List(ctx, decision.ID, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(list))
	}
	if list[0].ID != second.ID {
		t.Fatalf("expected newest first, got %q", list[0].ID)
	}

	latest, err := svc.Latest(ctx, decision.ID)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest.ID != second.ID {
		t.Fatalf("expected latest %q, got %q", second.ID, latest.ID)
	}
}

func TestLatestWithoutHistory(t *testing.T) {
	svc, decisionSvc := setupService(t, &queueStub{})
	decision := seedDecision(t, decisionSvc, []string{"Build", "Buy"})

	_, err := svc.Latest(context.Background(), decision.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
