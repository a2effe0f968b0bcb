package decisions

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a decision with its options and criteria in one transaction.
func (r *PGRepo) Create(ctx context.Context, decision Decision) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const decisionQuery = `
INSERT INTO decisions (id, title, description, status, deadline, created_by, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	var deadline sql.NullTime
	if decision.Deadline != nil {
		deadline = sql.NullTime{Time: *decision.Deadline, Valid: true}
	}
	if _, err := tx.ExecContext(ctx, decisionQuery,
		decision.ID,
		decision.Title,
		decision.Description,
		decision.Status,
		deadline,
		decision.CreatedBy,
		decision.CreatedAt,
	); err != nil {
		return err
	}

	const optionQuery = `
INSERT INTO decision_options (id, decision_id, option_text, position, created_at)
VALUES ($1, $2, $3, $4, $5)`
	for _, opt := range decision.Options {
		if _, err := tx.ExecContext(ctx, optionQuery, opt.ID, decision.ID, opt.Text, opt.Position, opt.CreatedAt); err != nil {
			return err
		}
	}

	const criterionQuery = `
INSERT INTO decision_criteria (id, decision_id, criterion_text, weight, created_at)
VALUES ($1, $2, $3, $4, $5)`
	for _, crit := range decision.Criteria {
		if _, err := tx.ExecContext(ctx, criterionQuery, crit.ID, decision.ID, crit.Text, crit.Weight, crit.CreatedAt); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetByID fetches a decision with its options (in list order) and criteria.
func (r *PGRepo) GetByID(ctx context.Context, decisionID string) (Decision, error) {
	const query = `
SELECT id, title, description, status, deadline, created_by, created_at
FROM decisions
WHERE id = $1
LIMIT 1`
	var d Decision
	var deadline sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, decisionID).Scan(
		&d.ID,
		&d.Title,
		&d.Description,
		&d.Status,
		&deadline,
		&d.CreatedBy,
		&d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Decision{}, ErrNotFound
		}
		return Decision{}, err
	}
	if deadline.Valid {
		d.Deadline = &deadline.Time
	}

	if d.Options, err = r.listOptions(ctx, decisionID); err != nil {
		return Decision{}, err
	}
	if d.Criteria, err = r.listCriteria(ctx, decisionID); err != nil {
		return Decision{}, err
	}
	return d, nil
}

func (r *PGRepo) listOptions(ctx context.Context, decisionID string) ([]Option, error) {
	const query = `
SELECT id, decision_id, option_text, position, created_at
FROM decision_options
WHERE decision_id = $1
ORDER BY position ASC, created_at ASC`
	rows, err := r.DB.QueryContext(ctx, query, decisionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Option
	for rows.Next() {
		var opt Option
		if err := rows.Scan(&opt.ID, &opt.DecisionID, &opt.Text, &opt.Position, &opt.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, opt)
	}
	return out, rows.Err()
}

func (r *PGRepo) listCriteria(ctx context.Context, decisionID string) ([]Criterion, error) {
	const query = `
SELECT id, decision_id, criterion_text, weight, created_at
FROM decision_criteria
WHERE decision_id = $1
ORDER BY created_at ASC`
	rows, err := r.DB.QueryContext(ctx, query, decisionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Criterion
	for rows.Next() {
		var crit Criterion
		if err := rows.Scan(&crit.ID, &crit.DecisionID, &crit.Text, &crit.Weight, &crit.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, crit)
	}
	return out, rows.Err()
}

// ListByUser lists decisions created by a user, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Decision, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, title, description, status, deadline, created_by, created_at
FROM decisions
WHERE created_by = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Decision
	for rows.Next() {
		var d Decision
		var deadline sql.NullTime
		if err := rows.Scan(&d.ID, &d.Title, &d.Description, &d.Status, &deadline, &d.CreatedBy, &d.CreatedAt); err != nil {
			return nil, err
		}
		if deadline.Valid {
			d.Deadline = &deadline.Time
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// UpdateStatus sets the status of a decision.
func (r *PGRepo) UpdateStatus(ctx context.Context, decisionID, status string) error {
	const query = `UPDATE decisions SET status = $1 WHERE id = $2`
	res, err := r.DB.ExecContext(ctx, query, status, decisionID)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a decision; options, criteria and inputs cascade.
func (r *PGRepo) Delete(ctx context.Context, decisionID string) error {
	const query = `DELETE FROM decisions WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, decisionID)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpsertInput stores or replaces the input for (decision, user).
func (r *PGRepo) UpsertInput(ctx context.Context, input Input) error {
	const query = `
INSERT INTO decision_inputs (id, decision_id, user_id, selected_option_id, comment, ratings, abstained, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (decision_id, user_id) DO UPDATE
SET selected_option_id = EXCLUDED.selected_option_id,
    comment = EXCLUDED.comment,
    ratings = EXCLUDED.ratings,
    abstained = EXCLUDED.abstained`

	var selected sql.NullString
	if input.SelectedOptionID != "" {
		selected = sql.NullString{String: input.SelectedOptionID, Valid: true}
	}
	ratings := input.Ratings
	if ratings == nil {
		ratings = map[string]int{}
	}
	ratingsJSON, err := json.Marshal(ratings)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(ctx, query,
		input.ID,
		input.DecisionID,
		input.UserID,
		selected,
		input.Comment,
		ratingsJSON,
		input.Abstained,
		input.CreatedAt,
	)
	return err
}

// ListInputs returns all inputs for a decision in submission order.
func (r *PGRepo) ListInputs(ctx context.Context, decisionID string) ([]Input, error) {
	const query = `
SELECT id, decision_id, user_id, selected_option_id, comment, ratings, abstained, created_at
FROM decision_inputs
WHERE decision_id = $1
ORDER BY created_at ASC`

	rows, err := r.DB.QueryContext(ctx, query, decisionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Input
	for rows.Next() {
		var in Input
		var selected sql.NullString
		var ratingsJSON []byte
		if err := rows.Scan(&in.ID, &in.DecisionID, &in.UserID, &selected, &in.Comment, &ratingsJSON, &in.Abstained, &in.CreatedAt); err != nil {
			return nil, err
		}
		if selected.Valid {
			in.SelectedOptionID = selected.String
		}
		if len(ratingsJSON) > 0 {
			if err := json.Unmarshal(ratingsJSON, &in.Ratings); err != nil {
				return nil, err
			}
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
