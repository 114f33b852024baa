// Package repository defines the entry and evaluation store interfaces
// and their in-memory implementations.
package repository

import (
	"context"

	"github.com/pesumela/mela/internal/domain/model"
)

// EntryStore holds registered teams in insertion order.
type EntryStore interface {
	// Register validates and appends a team. Returns the stored team with
	// its registration timestamp set, or ErrEmptyTeamName,
	// ErrInvalidTeamSize, or ErrDuplicateTeam. Failed calls append nothing.
	Register(ctx context.Context, team model.Team) (model.Team, error)

	// List returns all registered teams in insertion order.
	List(ctx context.Context) []model.Team

	// Has reports whether a team with the given name is registered.
	Has(ctx context.Context, name string) bool

	// Count returns the number of registered teams.
	Count(ctx context.Context) int
}

// Roster is the narrow view of EntryStore the evaluation store consults
// before accepting a submission.
type Roster interface {
	Has(ctx context.Context, name string) bool
}

// EvaluationStore holds raw per-judge scoring records in insertion order.
// Records are append-only: no dedup, no update, no delete.
type EvaluationStore interface {
	// Append validates and stores an evaluation. Returns the stored record
	// with its receipt id and timestamp set, or ErrScoreOutOfRange /
	// ErrUnknownTeam. Failed calls append nothing.
	Append(ctx context.Context, e model.Evaluation) (model.Evaluation, error)

	// List returns all evaluations in insertion order.
	List(ctx context.Context) []model.Evaluation

	// Count returns the number of stored evaluations.
	Count(ctx context.Context) int
}
