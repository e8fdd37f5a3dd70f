// internal/domain/errors.go
package domain

import "errors"

// Engine error taxonomy. Callers must treat these as absence of a result,
// never as a zero forecast.
var (
	// ErrInsufficientHistory means a series has fewer observations than a
	// method or evaluator requires.
	ErrInsufficientHistory = errors.New("insufficient consumption history")

	// ErrNoCommonPeriods means the available method horizons do not overlap.
	ErrNoCommonPeriods = errors.New("forecast methods share no common periods")

	// ErrInvalidDemand means annualized demand is non-positive, so EOQ is undefined.
	ErrInvalidDemand = errors.New("annual demand must be positive")

	// ErrItemNotFound is returned by collaborators for unknown item ids.
	ErrItemNotFound = errors.New("item not found")
)
