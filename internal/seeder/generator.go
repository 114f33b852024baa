package seeder

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"

	"github.com/pesumela/mela/internal/domain/scoring"
)

// Demo team name stems. A uuid suffix keeps repeated runs against the same
// instance from colliding with the uniqueness check.
var teamStems = []string{
	"Quantum Pioneers",
	"Neural Nomads",
	"Circuit Breakers",
	"Data Dynamos",
	"Cloud Crafters",
	"Edge Runners",
	"Logic Looms",
	"Signal Smiths",
	"Vector Voyagers",
	"Kernel Knights",
}

// Team is one generated registration payload.
type Team struct {
	Name        string `json:"name"`
	Size        int    `json:"size"`
	Description string `json:"description"`
	AudioPitch  bool   `json:"audio_pitch,omitempty"`
}

// Evaluation is one generated submission payload.
type Evaluation struct {
	TeamName     string `json:"team_name"`
	Novelty      int    `json:"novelty"`
	Scalability  int    `json:"scalability"`
	SocialImpact int    `json:"social_impact"`
	Feasibility  int    `json:"feasibility"`
}

// randomInt returns a uniform int in [min, max] using crypto/rand.
func randomInt(min, max int) int {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(max-min+1)))
	return min + int(n.Int64())
}

// generateTeams builds cfg.TeamCount demo registrations. Every fourth team
// attaches an audio pitch instead of a text description.
func generateTeams(cfg *Config) []Team {
	suffix := uuid.NewString()[:8]
	teams := make([]Team, 0, cfg.TeamCount)
	for i := 0; i < cfg.TeamCount; i++ {
		stem := teamStems[i%len(teamStems)]
		team := Team{
			Name: fmt.Sprintf("%s %s-%d", stem, suffix, i+1),
			Size: randomInt(1, 6),
		}
		if i%4 == 3 {
			team.AudioPitch = true
		} else {
			team.Description = fmt.Sprintf("Capstone project by %s", stem)
		}
		teams = append(teams, team)
	}
	return teams
}

// generateEvaluations builds cfg.JudgesPerTeam random submissions per team,
// with every score inside the allowed bounds.
func generateEvaluations(cfg *Config, teams []Team) []Evaluation {
	evals := make([]Evaluation, 0, len(teams)*cfg.JudgesPerTeam)
	for _, team := range teams {
		for j := 0; j < cfg.JudgesPerTeam; j++ {
			evals = append(evals, Evaluation{
				TeamName:     team.Name,
				Novelty:      randomInt(scoring.MinScore, scoring.MaxScore),
				Scalability:  randomInt(scoring.MinScore, scoring.MaxScore),
				SocialImpact: randomInt(scoring.MinScore, scoring.MaxScore),
				Feasibility:  randomInt(scoring.MinScore, scoring.MaxScore),
			})
		}
	}
	return evals
}
