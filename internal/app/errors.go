package service

import "errors"

// Sentinel kinds for service errors.
var (
	// ErrInvalidLimit flags a leaderboard query size outside [1, max].
	ErrInvalidLimit = errors.New("invalid leaderboard limit")
)
