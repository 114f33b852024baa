package repository

import "errors"

// Sentinel kinds for store errors. Validation kinds reject malformed input;
// ErrUnknownTeam flags a reference to a team missing from the roster.
var (
	ErrEmptyTeamName   = errors.New("team name must not be empty")
	ErrInvalidTeamSize = errors.New("team size must be positive")
	ErrDuplicateTeam   = errors.New("team name already registered")
	ErrScoreOutOfRange = errors.New("score outside allowed range")
	ErrUnknownTeam     = errors.New("unknown team")
)
