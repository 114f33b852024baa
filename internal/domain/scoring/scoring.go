// Package scoring computes weighted composite scores and per-team summaries.
package scoring

import (
	"math"

	"github.com/pesumela/mela/internal/domain/model"
)

// Score bounds for every criterion.
const (
	MinScore = 1
	MaxScore = 5
)

// weightSumEpsilon bounds the accepted drift of a weight vector from 1.0.
const weightSumEpsilon = 1e-9

// Weights is the linear combination applied to the four criteria of a
// single evaluation. A valid vector sums to 1.0, which keeps the composite
// total inside [MinScore, MaxScore].
type Weights struct {
	Novelty      float64
	Scalability  float64
	SocialImpact float64
	Feasibility  float64
}

// DefaultWeights returns the fixed competition weight vector.
func DefaultWeights() Weights {
	return Weights{
		Novelty:      0.30,
		Scalability:  0.25,
		SocialImpact: 0.25,
		Feasibility:  0.20,
	}
}

// sum returns the total mass of the weight vector.
func (w Weights) sum() float64 {
	return w.Novelty + w.Scalability + w.SocialImpact + w.Feasibility
}

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithWeights overrides the default weight vector. Vectors that do not sum
// to 1.0 are ignored so a misconfigured caller cannot push composite totals
// outside the score bounds.
func WithWeights(w Weights) Option {
	return func(a *Aggregator) {
		if math.Abs(w.sum()-1.0) < weightSumEpsilon {
			a.weights = w
		}
	}
}

// Aggregator turns raw evaluations into weighted totals and per-team
// summaries. It is stateless apart from its weight vector and safe for
// concurrent use.
type Aggregator struct {
	weights Weights
}

// NewAggregator creates an Aggregator with the default weight vector.
func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{weights: DefaultWeights()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Weights returns the weight vector in use.
func (a *Aggregator) Weights() Weights { return a.weights }

// WeightedTotal computes the composite score of a single evaluation.
// Pure function of the record; no rounding is applied here, formatting is a
// rendering concern.
func (a *Aggregator) WeightedTotal(e model.Evaluation) float64 {
	return a.weights.Novelty*float64(e.Novelty) +
		a.weights.Scalability*float64(e.Scalability) +
		a.weights.SocialImpact*float64(e.SocialImpact) +
		a.weights.Feasibility*float64(e.Feasibility)
}

// accumulator collects running sums for one team.
type accumulator struct {
	novelty      int
	scalability  int
	socialImpact int
	feasibility  int
	total        float64
	count        int
}

// Summarize groups evaluations by exact team-name match and emits one
// summary per distinct team, ordered by first appearance among the input.
// Means are recomputed on every call; nothing is cached because new
// evaluations can arrive at any time. An empty input yields an empty slice.
func (a *Aggregator) Summarize(evals []model.Evaluation) []model.TeamSummary {
	order := make([]string, 0, len(evals))
	groups := make(map[string]*accumulator, len(evals))

	for _, e := range evals {
		acc, ok := groups[e.TeamName]
		if !ok {
			acc = &accumulator{}
			groups[e.TeamName] = acc
			order = append(order, e.TeamName)
		}
		acc.novelty += e.Novelty
		acc.scalability += e.Scalability
		acc.socialImpact += e.SocialImpact
		acc.feasibility += e.Feasibility
		acc.total += a.WeightedTotal(e)
		acc.count++
	}

	summaries := make([]model.TeamSummary, 0, len(order))
	for _, name := range order {
		acc := groups[name]
		n := float64(acc.count)
		summaries = append(summaries, model.TeamSummary{
			TeamName:     name,
			Novelty:      float64(acc.novelty) / n,
			Scalability:  float64(acc.scalability) / n,
			SocialImpact: float64(acc.socialImpact) / n,
			Feasibility:  float64(acc.feasibility) / n,
			TotalScore:   acc.total / n,
		})
	}
	return summaries
}
