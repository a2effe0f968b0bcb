package recommendations

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"decision-backend/internal/recommendations/engine"
)

// PGRepo is a Postgres-backed Repo.
type PGRepo struct {
	DB *sql.DB
}

// NewPGRepo constructs a PGRepo.
func NewPGRepo(db *sql.DB) *PGRepo {
	return &PGRepo{DB: db}
}

// Create inserts a recommendation row with its per-option details as JSONB.
func (r *PGRepo) Create(ctx context.Context, rec Recommendation) error {
	details, err := json.Marshal(rec.Details)
	if err != nil {
		return fmt.Errorf("marshal recommendation details: %w", err)
	}

	const query = `
INSERT INTO recommendations (id, decision_id, recommended_option_id, recommended_option_text, confidence_score, explanation, details, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.DB.ExecContext(ctx, query,
		rec.ID,
		rec.DecisionID,
		rec.RecommendedOptionID,
		rec.RecommendedOptionText,
		rec.ConfidenceScore,
		rec.Explanation,
		details,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert recommendation: %w", err)
	}
	return nil
}

// GetByID fetches one recommendation.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Recommendation, error) {
	const query = `
SELECT id, decision_id, recommended_option_id, recommended_option_text, confidence_score, explanation, details, created_at
FROM recommendations
WHERE id = $1
LIMIT 1`
	rec, err := scanRecommendation(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Recommendation{}, ErrNotFound
		}
		return Recommendation{}, err
	}
	return rec, nil
}

// ListByDecision returns recommendations for a decision, newest first.
func (r *PGRepo) ListByDecision(ctx context.Context, decisionID string, limit int) ([]Recommendation, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	const query = `
SELECT id, decision_id, recommended_option_id, recommended_option_text, confidence_score, explanation, details, created_at
FROM recommendations
WHERE decision_id = $1
ORDER BY created_at DESC
LIMIT $2`
	rows, err := r.DB.QueryContext(ctx, query, decisionID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recommendations: %w", err)
	}
	defer rows.Close()

	var out []Recommendation
	for rows.Next() {
		rec, err := scanRecommendation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// GetLatestByDecision returns the most recent recommendation for a decision.
func (r *PGRepo) GetLatestByDecision(ctx context.Context, decisionID string) (Recommendation, error) {
	const query = `
SELECT id, decision_id, recommended_option_id, recommended_option_text, confidence_score, explanation, details, created_at
FROM recommendations
WHERE decision_id = $1
ORDER BY created_at DESC
LIMIT 1`
	rec, err := scanRecommendation(r.DB.QueryRowContext(ctx, query, decisionID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Recommendation{}, ErrNotFound
		}
		return Recommendation{}, err
	}
	return rec, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecommendation(row rowScanner) (Recommendation, error) {
	var rec Recommendation
	var details []byte
	err := row.Scan(
		&rec.ID,
		&rec.DecisionID,
		&rec.RecommendedOptionID,
		&rec.RecommendedOptionText,
		&rec.ConfidenceScore,
		&rec.Explanation,
		&details,
		&rec.CreatedAt,
	)
	if err != nil {
		return Recommendation{}, err
	}
	if len(details) > 0 {
		var scores []engine.OptionScore
		if err := json.Unmarshal(details, &scores); err != nil {
			return Recommendation{}, fmt.Errorf("unmarshal recommendation details: %w", err)
		}
		rec.Details = scores
	}
	return rec, nil
}

var _ Repo = (*PGRepo)(nil)
