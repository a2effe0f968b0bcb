package decisions

import "errors"

var (
	ErrNotFound       = errors.New("decision not found")
	ErrOptionNotFound = errors.New("option not found")
	ErrValidation     = errors.New("validation failed")
)
