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

// TeamDependencies defines the interface for team registration.
type TeamDependencies interface {
	RegisterTeam(ctx context.Context, team model.Team) (model.Team, error)
	ListTeams(ctx context.Context) []model.Team
}

// TeamsHandler handles team registration and listing.
type TeamsHandler struct {
	deps TeamDependencies
}

// NewTeamsHandler creates a new teams handler.
func NewTeamsHandler(deps TeamDependencies) *TeamsHandler {
	return &TeamsHandler{deps: deps}
}

// teamRequest mirrors the OpenAPI schema for POST /teams. The description
// is optional: a team may type one, attach a recorded audio pitch, or skip
// it entirely. The recording itself stays with the client and only the
// sentinel is stored.
type teamRequest struct {
	Name        string `json:"name"`
	Size        int    `json:"size"`
	Description string `json:"description"`
	AudioPitch  bool   `json:"audio_pitch"`
}

func (t teamRequest) validate() error {
	switch {
	case strings.TrimSpace(t.Name) == "":
		return errors.New("missing name")
	case t.Size < 1:
		return errors.New("size must be positive")
	}
	return nil
}

// teamResponse is the stored team echoed back to the caller.
type teamResponse struct {
	Name         string `json:"name"`
	Size         int    `json:"size"`
	Description  string `json:"description"`
	RegisteredAt string `json:"registered_at"`
}

func toTeamResponse(t model.Team) teamResponse {
	return teamResponse{
		Name:         t.Name,
		Size:         t.Size,
		Description:  t.Description,
		RegisteredAt: t.RegisteredAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// HandleTeams handles POST /teams and GET /teams requests.
func (h *TeamsHandler) HandleTeams(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleRegister(w, r)
	case http.MethodGet:
		h.handleList(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *TeamsHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	const op = "api.register_team"
	var req teamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", WrapKind(op, ErrBadRequest, err))
		return
	}

	description := req.Description
	if req.AudioPitch {
		description = model.AudioDescription
	}
	team, err := h.deps.RegisterTeam(r.Context(), model.Team{
		Name:        req.Name,
		Size:        req.Size,
		Description: description,
	})
	if err != nil {
		if isValidation(err) {
			writeError(w, http.StatusBadRequest, "validation_error", Wrap(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, toTeamResponse(team))
}

func (h *TeamsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	teams := h.deps.ListTeams(r.Context())
	out := make([]teamResponse, len(teams))
	for i, t := range teams {
		out[i] = toTeamResponse(t)
	}
	writeJSON(w, http.StatusOK, out)
}
