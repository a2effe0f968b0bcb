package settings

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGStore persists weight profiles in Postgres.
type PGStore struct {
	DB *sql.DB
}

// NewPGStore constructs a PGStore.
func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{DB: db}
}

// Get fetches the stored profile for a user, reporting whether one exists.
func (s *PGStore) Get(ctx context.Context, userID string) (Profile, bool, error) {
	const query = `
SELECT user_id, support_weight, criteria_weight, sentiment_weight, historical_weight, updated_at
FROM recommendation_settings
WHERE user_id = $1
LIMIT 1`
	var p Profile
	err := s.DB.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID,
		&p.SupportWeight,
		&p.CriteriaWeight,
		&p.SentimentWeight,
		&p.HistoricalWeight,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, false, nil
		}
		return Profile{}, false, err
	}
	return p, true, nil
}

// Put upserts the profile for a user.
func (s *PGStore) Put(ctx context.Context, profile Profile) error {
	const query = `
INSERT INTO recommendation_settings (user_id, support_weight, criteria_weight, sentiment_weight, historical_weight, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (user_id) DO UPDATE
SET support_weight = EXCLUDED.support_weight,
    criteria_weight = EXCLUDED.criteria_weight,
    sentiment_weight = EXCLUDED.sentiment_weight,
    historical_weight = EXCLUDED.historical_weight,
    updated_at = EXCLUDED.updated_at`
	_, err := s.DB.ExecContext(ctx, query,
		profile.UserID,
		profile.SupportWeight,
		profile.CriteriaWeight,
		profile.SentimentWeight,
		profile.HistoricalWeight,
		time.Now().UTC(),
	)
	return err
}
