// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/pesumela/mela/internal/domain/model"
)

// ResultsDependencies defines the interface for aggregated result queries.
type ResultsDependencies interface {
	Summarize(ctx context.Context) []model.TeamSummary
	TeamResult(ctx context.Context, name string) (model.TeamSummary, error)
}

// ResultsHandler handles aggregated result requests.
type ResultsHandler struct {
	deps ResultsDependencies
}

// NewResultsHandler creates a new results handler.
func NewResultsHandler(deps ResultsDependencies) *ResultsHandler {
	return &ResultsHandler{deps: deps}
}

// HandleGetResults handles GET /results requests. Summaries come back in
// first-appearance order; an empty array means no evaluations yet.
func (h *ResultsHandler) HandleGetResults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	summaries := h.deps.Summarize(r.Context())
	if summaries == nil {
		summaries = []model.TeamSummary{}
	}
	writeJSON(w, http.StatusOK, summaries)
}

// HandleGetTeamResult handles GET /results/{team} requests.
func (h *ResultsHandler) HandleGetTeamResult(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_team_result"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/results/")
	if name == "" || strings.Contains(name, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	summary, err := h.deps.TeamResult(r.Context(), name)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
