// Package model contains domain models passed between layers.
package model

import "time"

// AudioDescription is stored in place of free text when a team attaches a
// recorded pitch instead of typing a project description. The recording
// itself is kept by the presentation layer and never interpreted here.
const AudioDescription = "[audio pitch attached]"

// Team represents a registered competition entry.
type Team struct {
	Name         string    // unique team identifier, non-empty
	Size         int       // number of members, positive
	Description  string    // free text or AudioDescription
	RegisteredAt time.Time // set by the entry store on registration
}

// Evaluation represents a single judge's scoring of one team.
// All four criterion scores are integers in [1,5].
type Evaluation struct {
	ID           string // receipt id assigned by the evaluation store
	TeamName     string // must reference a registered team
	Novelty      int
	Scalability  int
	SocialImpact int
	Feasibility  int
	SubmittedAt  time.Time
}

// TeamSummary holds the per-team arithmetic means across all evaluations
// submitted for that team. It is derived on demand and never stored.
type TeamSummary struct {
	TeamName     string  `json:"team_name"`
	Novelty      float64 `json:"novelty"`
	Scalability  float64 `json:"scalability"`
	SocialImpact float64 `json:"social_impact"`
	Feasibility  float64 `json:"feasibility"`
	TotalScore   float64 `json:"total_score"`
}
