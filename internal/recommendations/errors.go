package recommendations

import "errors"

var (
	// ErrNotFound means no recommendation exists for the requested key.
	ErrNotFound = errors.New("recommendation not found")
	// ErrNotScoreable means the decision cannot produce a recommendation.
	ErrNotScoreable = errors.New("decision is not scoreable")
	// ErrStorage wraps persistence failures so handlers can map them.
	ErrStorage = errors.New("recommendation storage failed")
)
