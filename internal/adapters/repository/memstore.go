package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pesumela/mela/internal/domain/model"
	"github.com/pesumela/mela/internal/domain/scoring"
	"github.com/pesumela/mela/pkg/metrics"
)

// MemEntryStore is an in-memory EntryStore. Handlers run on concurrent HTTP
// requests, so both the ordered slice and the name index are mutex-guarded.
type MemEntryStore struct {
	mu    sync.RWMutex
	teams []model.Team
	names map[string]struct{}
	now   func() time.Time
}

// EntryOption applies a configuration option to the MemEntryStore.
type EntryOption func(*MemEntryStore)

// WithEntryClock overrides the registration timestamp source.
func WithEntryClock(now func() time.Time) EntryOption {
	return func(s *MemEntryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemEntryStore creates an empty in-memory entry store.
func NewMemEntryStore(opts ...EntryOption) *MemEntryStore {
	s := &MemEntryStore{
		names: make(map[string]struct{}),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register validates and appends a team. Team names are unique: a second
// registration under the same name fails with ErrDuplicateTeam instead of
// silently merging its future evaluations with the first team's.
func (s *MemEntryStore) Register(_ context.Context, team model.Team) (model.Team, error) {
	if strings.TrimSpace(team.Name) == "" {
		return model.Team{}, ErrEmptyTeamName
	}
	if team.Size < 1 {
		return model.Team{}, fmt.Errorf("%w: got %d", ErrInvalidTeamSize, team.Size)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.names[team.Name]; exists {
		return model.Team{}, fmt.Errorf("%w: %q", ErrDuplicateTeam, team.Name)
	}
	team.RegisteredAt = s.now()
	s.teams = append(s.teams, team)
	s.names[team.Name] = struct{}{}
	metrics.UpdateTotalTeams(len(s.teams))
	return team, nil
}

// List returns a copy of the registered teams in insertion order.
func (s *MemEntryStore) List(_ context.Context) []model.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Team, len(s.teams))
	copy(out, s.teams)
	return out
}

// Has reports whether name is registered. Lookup is an exact string match.
func (s *MemEntryStore) Has(_ context.Context, name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.names[name]
	return ok
}

// Count returns the number of registered teams.
func (s *MemEntryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.teams)
}

// MemEvaluationStore is an in-memory EvaluationStore. Every submission is
// re-validated here even though the presentation layer constrains inputs.
type MemEvaluationStore struct {
	mu     sync.RWMutex
	evals  []model.Evaluation
	roster Roster
	now    func() time.Time
	newID  func() string
}

// EvalOption applies a configuration option to the MemEvaluationStore.
type EvalOption func(*MemEvaluationStore)

// WithEvalClock overrides the submission timestamp source.
func WithEvalClock(now func() time.Time) EvalOption {
	return func(s *MemEvaluationStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithReceiptIDs overrides the receipt id generator.
func WithReceiptIDs(newID func() string) EvalOption {
	return func(s *MemEvaluationStore) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// NewMemEvaluationStore creates an empty in-memory evaluation store that
// consults roster before accepting a submission.
func NewMemEvaluationStore(roster Roster, opts ...EvalOption) *MemEvaluationStore {
	s := &MemEvaluationStore{
		roster: roster,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append validates and stores an evaluation, returning the stored record
// with its receipt id and timestamp filled in.
func (s *MemEvaluationStore) Append(ctx context.Context, e model.Evaluation) (model.Evaluation, error) {
	if err := validateScores(e); err != nil {
		return model.Evaluation{}, err
	}
	if !s.roster.Has(ctx, e.TeamName) {
		return model.Evaluation{}, fmt.Errorf("%w: %q", ErrUnknownTeam, e.TeamName)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.newID()
	e.SubmittedAt = s.now()
	s.evals = append(s.evals, e)
	metrics.UpdateTotalEvaluations(len(s.evals))
	return e, nil
}

// List returns a copy of the evaluations in insertion order.
func (s *MemEvaluationStore) List(_ context.Context) []model.Evaluation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Evaluation, len(s.evals))
	copy(out, s.evals)
	return out
}

// Count returns the number of stored evaluations.
func (s *MemEvaluationStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.evals)
}

// validateScores checks every criterion against the allowed score bounds.
func validateScores(e model.Evaluation) error {
	for _, score := range []struct {
		name  string
		value int
	}{
		{"novelty", e.Novelty},
		{"scalability", e.Scalability},
		{"social_impact", e.SocialImpact},
		{"feasibility", e.Feasibility},
	} {
		if score.value < scoring.MinScore || score.value > scoring.MaxScore {
			return fmt.Errorf("%w: %s=%d", ErrScoreOutOfRange, score.name, score.value)
		}
	}
	return nil
}
