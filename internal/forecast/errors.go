package forecast

import "errors"

var (
	// ErrDegenerateInput means a regression input had zero variance in the
	// independent variable.
	ErrDegenerateInput = errors.New("regression input has zero variance")

	// ErrInsufficientData means the series is too short for the requested
	// model.
	ErrInsufficientData = errors.New("insufficient historical data")

	// ErrComputation covers generic numeric edge cases such as division by
	// zero while computing returns.
	ErrComputation = errors.New("numeric computation failed")
)
