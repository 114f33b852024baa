// Command seed-entries fills a running instance with demo teams and
// randomized judge evaluations, then verifies the aggregated results.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/pesumela/mela/internal/seeder"
	"github.com/pesumela/mela/pkg/logger"
)

func main() {
	cfg := seeder.NewConfig()

	flag.StringVar(&cfg.BaseURL, "url", seeder.DefaultBaseURL, "base URL of the service")
	flag.IntVar(&cfg.TeamCount, "teams", seeder.DefaultTeamCount, "number of demo teams to register")
	flag.IntVar(&cfg.JudgesPerTeam, "judges", seeder.DefaultJudgesPerTeam, "evaluations submitted per team")
	flag.DurationVar(&cfg.Timeout, "timeout", seeder.DefaultTimeout, "HTTP request timeout")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "log every registration and submission")
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if cfg.Verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := seeder.Run(ctx, cfg); err != nil {
		logger.Get().Error(ctx, "seeding run failed", logger.Error(err))
		os.Exit(1)
	}
}
