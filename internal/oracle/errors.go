package oracle

import "errors"

var (
	// ErrUnavailable means the oracle backend could not be reached, timed
	// out, rejected the request, or is not configured. Moderation treats
	// this as an unsafe verdict.
	ErrUnavailable = errors.New("oracle unavailable")

	// ErrMalformed means the backend answered but the reply could not be
	// parsed into the expected verdict structure.
	ErrMalformed = errors.New("oracle returned malformed response")
)
