package domain

import "errors"

var (
	// ErrOracleUnavailable wraps transport-level oracle failures that
	// survived the retry policy. Surfaced as a turn-level failure.
	ErrOracleUnavailable = errors.New("classification oracle unavailable")
	// ErrEmptyQuery is returned for a blank turn input.
	ErrEmptyQuery = errors.New("empty query")
)
