package seeder

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/pesumela/mela/internal/domain/model"
	"github.com/pesumela/mela/internal/domain/scoring"
	"github.com/pesumela/mela/pkg/logger"
)

// summary mirrors the TeamSummary JSON shape returned by /results.
type summary struct {
	TeamName     string  `json:"team_name"`
	Novelty      float64 `json:"novelty"`
	Scalability  float64 `json:"scalability"`
	SocialImpact float64 `json:"social_impact"`
	Feasibility  float64 `json:"feasibility"`
	TotalScore   float64 `json:"total_score"`
}

// Run executes a complete seeding pass: health check, registrations,
// submissions, then verification of the aggregated results.
func Run(ctx context.Context, cfg *Config) error {
	start := time.Now()
	log := logger.Get()

	log.Info(ctx, "starting seeding run",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("teams", cfg.TeamCount),
		logger.Int("judgesPerTeam", cfg.JudgesPerTeam),
	)

	c := newClient(cfg.BaseURL, cfg.Timeout)
	if err := c.healthy(ctx); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	teams := generateTeams(cfg)
	for _, team := range teams {
		if err := c.postJSON(ctx, "/teams", team, nil); err != nil {
			return fmt.Errorf("register %q: %w", team.Name, err)
		}
		if cfg.Verbose {
			log.Debug(ctx, "team registered", logger.String("team", team.Name))
		}
	}

	evals := generateEvaluations(cfg, teams)
	for _, e := range evals {
		if err := c.postJSON(ctx, "/evaluations", e, nil); err != nil {
			return fmt.Errorf("submit evaluation for %q: %w", e.TeamName, err)
		}
		if cfg.Verbose {
			log.Debug(ctx, "evaluation submitted", logger.String("team", e.TeamName))
		}
	}

	if err := verifyResults(ctx, c, teams, evals); err != nil {
		return fmt.Errorf("result verification failed: %w", err)
	}

	log.Info(ctx, "seeding run completed",
		logger.Int("teams", len(teams)),
		logger.Int("evaluations", len(evals)),
		logger.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// verifyResults reads /results back and cross-checks each seeded team's
// total against a locally recomputed weighted mean.
func verifyResults(ctx context.Context, c *client, teams []Team, evals []Evaluation) error {
	var summaries []summary
	if err := c.getJSON(ctx, "/results", &summaries); err != nil {
		return err
	}

	byTeam := make(map[string]summary, len(summaries))
	for _, s := range summaries {
		byTeam[s.TeamName] = s
	}

	for _, team := range teams {
		got, ok := byTeam[team.Name]
		if !ok {
			return fmt.Errorf("team %q missing from results", team.Name)
		}
		want := expectedTotal(team.Name, evals)
		if math.Abs(got.TotalScore-want) > totalTolerance {
			return fmt.Errorf("team %q: total %.6f, expected %.6f", team.Name, got.TotalScore, want)
		}
	}

	logger.Get().Info(ctx, "results verified", logger.Int("teams", len(teams)))
	return nil
}

// expectedTotal recomputes the mean weighted total for one team from the
// submitted payloads, using the same aggregator the service runs.
func expectedTotal(teamName string, evals []Evaluation) float64 {
	agg := scoring.NewAggregator()
	var sum float64
	var count int
	for _, e := range evals {
		if e.TeamName != teamName {
			continue
		}
		sum += agg.WeightedTotal(model.Evaluation{
			Novelty:      e.Novelty,
			Scalability:  e.Scalability,
			SocialImpact: e.SocialImpact,
			Feasibility:  e.Feasibility,
		})
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
