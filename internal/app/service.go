// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	repository "github.com/pesumela/mela/internal/adapters/repository"
	"github.com/pesumela/mela/internal/adapters/report"
	"github.com/pesumela/mela/internal/domain/model"
	"github.com/pesumela/mela/internal/domain/scoring"
	"github.com/pesumela/mela/pkg/logger"
	"github.com/pesumela/mela/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultMaxTeamSize         = 20
	defaultMaxLeaderboardLimit = 100
)

// Service owns the session state of one competition: the entry store, the
// evaluation store, the aggregator and the report renderer. It implements
// the dependencies of the HTTP API.
type Service struct {
	mu sync.RWMutex

	// Core components
	entries  repository.EntryStore
	evals    repository.EvaluationStore
	agg      *scoring.Aggregator
	renderer *report.Renderer

	// Configuration
	maxTeamSize         int
	maxLeaderboardLimit int
	reportTitle         string

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMaxTeamSize caps the member count accepted at registration.
func WithMaxTeamSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxTeamSize = n
		}
	}
}

// WithMaxLeaderboardLimit caps the leaderboard query size.
func WithMaxLeaderboardLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxLeaderboardLimit = n
		}
	}
}

// WithReportTitle overrides the exported document's title line.
func WithReportTitle(title string) Option {
	return func(s *Service) {
		if title != "" {
			s.reportTitle = title
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		maxTeamSize:         defaultMaxTeamSize,
		maxLeaderboardLimit: defaultMaxLeaderboardLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the stores, aggregator and renderer. The stores live
// for one competition session; nothing is persisted across restarts.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting judging service...")

	s.entries = repository.NewMemEntryStore()
	s.evals = repository.NewMemEvaluationStore(s.entries)
	s.agg = scoring.NewAggregator()
	var rendererOpts []report.Option
	if s.reportTitle != "" {
		rendererOpts = append(rendererOpts, report.WithTitle(s.reportTitle))
	}
	s.renderer = report.NewRenderer(s.agg, rendererOpts...)

	s.started = true
	s.logger.Info(ctx, "judging service started",
		logger.Int("maxTeamSize", s.maxTeamSize),
		logger.Int("maxLeaderboardLimit", s.maxLeaderboardLimit),
	)
	return nil
}

// Stop discards the session state.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.logger.Info(context.Background(), "judging service stopped")
	s.started = false
}

// rejectionReason maps a store sentinel to the reason label on the
// rejection counter.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, repository.ErrScoreOutOfRange):
		return "score_out_of_range"
	case errors.Is(err, repository.ErrUnknownTeam):
		return "unknown_team"
	case errors.Is(err, repository.ErrDuplicateTeam):
		return "duplicate_team"
	case errors.Is(err, repository.ErrEmptyTeamName):
		return "empty_team_name"
	case errors.Is(err, repository.ErrInvalidTeamSize):
		return "invalid_team_size"
	default:
		return "other"
	}
}

// RegisterTeam validates and stores a competition entry.
func (s *Service) RegisterTeam(ctx context.Context, team model.Team) (model.Team, error) {
	if team.Size > s.maxTeamSize {
		err := fmt.Errorf("%w: %d above maximum %d", repository.ErrInvalidTeamSize, team.Size, s.maxTeamSize)
		metrics.RecordEvaluationRejected(rejectionReason(err))
		return model.Team{}, err
	}
	stored, err := s.entries.Register(ctx, team)
	if err != nil {
		metrics.RecordEvaluationRejected(rejectionReason(err))
		return model.Team{}, err
	}
	metrics.RecordTeamRegistered()
	s.logger.Info(ctx, "team registered",
		logger.String("team", stored.Name),
		logger.Int("size", stored.Size),
	)
	return stored, nil
}

// ListTeams returns registered teams in insertion order.
func (s *Service) ListTeams(ctx context.Context) []model.Team {
	return s.entries.List(ctx)
}

// SubmitEvaluation validates and stores one judge's scoring of a team.
func (s *Service) SubmitEvaluation(ctx context.Context, e model.Evaluation) (model.Evaluation, error) {
	stored, err := s.evals.Append(ctx, e)
	if err != nil {
		metrics.RecordEvaluationRejected(rejectionReason(err))
		return model.Evaluation{}, err
	}
	metrics.RecordEvaluationSubmitted()
	s.logger.Info(ctx, "evaluation submitted",
		logger.String("team", stored.TeamName),
		logger.String("receipt", stored.ID),
	)
	return stored, nil
}

// ListEvaluations returns stored evaluations in insertion order.
func (s *Service) ListEvaluations(ctx context.Context) []model.Evaluation {
	return s.evals.List(ctx)
}

// Summarize recomputes per-team summaries from the current evaluations.
// Order follows first appearance among the stored records.
func (s *Service) Summarize(ctx context.Context) []model.TeamSummary {
	start := time.Now()
	summaries := s.agg.Summarize(s.evals.List(ctx))
	metrics.RecordSummarizeDuration(float64(time.Since(start).Milliseconds()))
	return summaries
}

// TeamResult returns the summary for a single team, or
// repository.ErrUnknownTeam when the team has no evaluations yet.
func (s *Service) TeamResult(ctx context.Context, name string) (model.TeamSummary, error) {
	for _, summary := range s.Summarize(ctx) {
		if summary.TeamName == name {
			return summary, nil
		}
	}
	return model.TeamSummary{}, fmt.Errorf("%w: %q", repository.ErrUnknownTeam, name)
}

// Leaderboard returns up to n summaries ordered by total score descending.
// Ties keep their first-appearance order.
func (s *Service) Leaderboard(ctx context.Context, n int) ([]model.TeamSummary, error) {
	if n < 1 || n > s.maxLeaderboardLimit {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, n)
	}
	summaries := s.Summarize(ctx)
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].TotalScore > summaries[j].TotalScore
	})
	if n < len(summaries) {
		summaries = summaries[:n]
	}
	return summaries, nil
}

// ExportWorkbook renders the raw evaluations and the current summaries into
// an xlsx workbook.
func (s *Service) ExportWorkbook(ctx context.Context) ([]byte, error) {
	start := time.Now()
	evals := s.evals.List(ctx)
	buf, err := s.renderer.Workbook(ctx, evals, s.agg.Summarize(evals))
	if err != nil {
		return nil, err
	}
	metrics.RecordExport("workbook")
	metrics.RecordExportDuration("workbook", float64(time.Since(start).Milliseconds()))
	return buf, nil
}

// ExportDocument renders the current summaries into a paginated PDF.
func (s *Service) ExportDocument(ctx context.Context) ([]byte, error) {
	start := time.Now()
	buf, err := s.renderer.Document(ctx, s.Summarize(ctx))
	if err != nil {
		return nil, err
	}
	metrics.RecordExport("document")
	metrics.RecordExportDuration("document", float64(time.Since(start).Milliseconds()))
	return buf, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":             s.started,
		"maxTeamSize":         s.maxTeamSize,
		"maxLeaderboardLimit": s.maxLeaderboardLimit,
	}

	if s.started {
		teams := s.entries.Count(ctx)
		evals := s.evals.Count(ctx)
		stats["totalTeams"] = teams
		stats["totalEvaluations"] = evals

		metrics.UpdateTotalTeams(teams)
		metrics.UpdateTotalEvaluations(evals)
	}
	return stats
}
