// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pesumela/mela/internal/domain/model"
)

// EvaluationDependencies defines the interface for score submission.
type EvaluationDependencies interface {
	SubmitEvaluation(ctx context.Context, e model.Evaluation) (model.Evaluation, error)
	ListEvaluations(ctx context.Context) []model.Evaluation
}

// EvaluationsHandler handles judge score submission and listing.
type EvaluationsHandler struct {
	deps EvaluationDependencies
}

// NewEvaluationsHandler creates a new evaluations handler.
func NewEvaluationsHandler(deps EvaluationDependencies) *EvaluationsHandler {
	return &EvaluationsHandler{deps: deps}
}

// evaluationRequest mirrors the OpenAPI schema for POST /evaluations.
type evaluationRequest struct {
	TeamName     string `json:"team_name"`
	Novelty      int    `json:"novelty"`
	Scalability  int    `json:"scalability"`
	SocialImpact int    `json:"social_impact"`
	Feasibility  int    `json:"feasibility"`
}

func (e evaluationRequest) validate() error {
	if strings.TrimSpace(e.TeamName) == "" {
		return errors.New("missing team_name")
	}
	return nil
}

// evaluationResponse is the stored record echoed back as a receipt.
type evaluationResponse struct {
	ID           string `json:"id"`
	TeamName     string `json:"team_name"`
	Novelty      int    `json:"novelty"`
	Scalability  int    `json:"scalability"`
	SocialImpact int    `json:"social_impact"`
	Feasibility  int    `json:"feasibility"`
	SubmittedAt  string `json:"submitted_at"`
}

func toEvaluationResponse(e model.Evaluation) evaluationResponse {
	return evaluationResponse{
		ID:           e.ID,
		TeamName:     e.TeamName,
		Novelty:      e.Novelty,
		Scalability:  e.Scalability,
		SocialImpact: e.SocialImpact,
		Feasibility:  e.Feasibility,
		SubmittedAt:  e.SubmittedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// HandleEvaluations handles POST /evaluations and GET /evaluations requests.
func (h *EvaluationsHandler) HandleEvaluations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleSubmit(w, r)
	case http.MethodGet:
		h.handleList(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *EvaluationsHandler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	const op = "api.submit_evaluation"
	var req evaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", WrapKind(op, ErrBadRequest, err))
		return
	}

	stored, err := h.deps.SubmitEvaluation(r.Context(), model.Evaluation{
		TeamName:     req.TeamName,
		Novelty:      req.Novelty,
		Scalability:  req.Scalability,
		SocialImpact: req.SocialImpact,
		Feasibility:  req.Feasibility,
	})
	if err != nil {
		switch {
		case isNotFound(err):
			writeError(w, http.StatusNotFound, "unknown_team", Wrap(op, err))
		case isValidation(err):
			writeError(w, http.StatusBadRequest, "validation_error", Wrap(op, err))
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		}
		return
	}
	writeJSON(w, http.StatusCreated, toEvaluationResponse(stored))
}

func (h *EvaluationsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	evals := h.deps.ListEvaluations(r.Context())
	out := make([]evaluationResponse, len(evals))
	for i, e := range evals {
		out[i] = toEvaluationResponse(e)
	}
	writeJSON(w, http.StatusOK, out)
}
