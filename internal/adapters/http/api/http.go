// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	repository "github.com/pesumela/mela/internal/adapters/repository"
	"github.com/pesumela/mela/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Mutation entry points into the core.
	RegisterTeam(ctx context.Context, team model.Team) (model.Team, error)
	SubmitEvaluation(ctx context.Context, e model.Evaluation) (model.Evaluation, error)

	// Read operations expose stored data and derived results.
	ListTeams(ctx context.Context) []model.Team
	ListEvaluations(ctx context.Context) []model.Evaluation
	Summarize(ctx context.Context) []model.TeamSummary
	TeamResult(ctx context.Context, name string) (model.TeamSummary, error)
	Leaderboard(ctx context.Context, n int) ([]model.TeamSummary, error)

	// Export operations return in-memory download buffers.
	ExportWorkbook(ctx context.Context) ([]byte, error)
	ExportDocument(ctx context.Context) ([]byte, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	teamsHandler       *TeamsHandler
	evaluationsHandler *EvaluationsHandler
	resultsHandler     *ResultsHandler
	leaderboardHandler *LeaderboardHandler
	exportHandler      *ExportHandler
	dashboardHandler   *dashboardHandler
}

// NewServer creates a new API server with all handlers. maxLimit caps the
// leaderboard query size.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		teamsHandler:       NewTeamsHandler(deps),
		evaluationsHandler: NewEvaluationsHandler(deps),
		resultsHandler:     NewResultsHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps, maxLimit),
		exportHandler:      NewExportHandler(deps),
		dashboardHandler:   newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/teams", MetricsMiddleware(s.teamsHandler.HandleTeams, "teams"))
	mux.HandleFunc("/evaluations", MetricsMiddleware(s.evaluationsHandler.HandleEvaluations, "evaluations"))
	mux.HandleFunc("/results", MetricsMiddleware(s.resultsHandler.HandleGetResults, "results"))
	mux.HandleFunc("/results/", MetricsMiddleware(s.resultsHandler.HandleGetTeamResult, "team_result"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/export/workbook", MetricsMiddleware(s.exportHandler.HandleExportWorkbook, "export_workbook"))
	mux.HandleFunc("/export/document", MetricsMiddleware(s.exportHandler.HandleExportDocument, "export_document"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound translates upstream unknown-team errors to 404.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrUnknownTeam)
}

// isValidation reports whether err is one of the store validation kinds.
func isValidation(err error) bool {
	return errors.Is(err, repository.ErrEmptyTeamName) ||
		errors.Is(err, repository.ErrInvalidTeamSize) ||
		errors.Is(err, repository.ErrDuplicateTeam) ||
		errors.Is(err, repository.ErrScoreOutOfRange)
}
