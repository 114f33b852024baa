// Package seeder registers demo teams and submits randomized judge
// evaluations against a running instance, then verifies the aggregated
// results it reads back.
package seeder

import "time"

// Default seeding configuration constants.
const (
	DefaultBaseURL       = "http://localhost:9080"
	DefaultTeamCount     = 8
	DefaultJudgesPerTeam = 3
	DefaultTimeout       = 30 * time.Second
)

// totalTolerance bounds the accepted drift between the service's reported
// total and the locally recomputed weighted mean.
const totalTolerance = 1e-6

// Config controls one seeding run.
type Config struct {
	// BaseURL is the root of the running service, e.g. "http://localhost:9080".
	BaseURL string

	// TeamCount is the number of demo teams to register.
	TeamCount int

	// JudgesPerTeam is the number of evaluations submitted per team.
	JudgesPerTeam int

	// Timeout bounds each HTTP request.
	Timeout time.Duration

	// Verbose enables debug logging of every submission.
	Verbose bool
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		BaseURL:       DefaultBaseURL,
		TeamCount:     DefaultTeamCount,
		JudgesPerTeam: DefaultJudgesPerTeam,
		Timeout:       DefaultTimeout,
	}
}
