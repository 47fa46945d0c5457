package leads

import "errors"

var (
	// ErrLeadNotFound is returned when a lead is not found
	ErrLeadNotFound = errors.New("lead not found")

	// ErrMissingID is returned when an operation requires a lead ID
	ErrMissingID = errors.New("lead id is required")
)
