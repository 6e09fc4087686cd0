package scoring

import (
	"fmt"
	"math"

	"github.com/wonny/creditlens/internal/contracts"
	"github.com/wonny/creditlens/pkg/logger"
)

// Engine turns ratio bundles (and optional bureau reports) into composite scores
// ⭐ SSOT: score arithmetic lives here only; tables come from Config
type Engine struct {
	config *Config
	logger *logger.Logger
}

// NewEngine creates a scoring engine. A nil cfg selects DefaultConfig.
func NewEngine(cfg *Config, log *logger.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid scoring config: %w", err)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{config: cfg, logger: log.Component("scoring")}, nil
}

// Config returns the tables in use
func (e *Engine) Config() *Config {
	return e.config
}

// Score computes the ratio-only composite score.
// Each bucket is capped at its max; the total is rounded to the nearest integer.
func (e *Engine) Score(rr *contracts.RobustRatios) contracts.CompositeScore {
	breakdown := make([]contracts.BucketScore, 0, len(e.config.Buckets))
	total := 0.0

	for _, b := range e.config.Buckets {
		points := 0.0
		for _, r := range b.Rules {
			points += r.Apply(rr)
		}
		points = math.Min(points, b.Max)
		total += points

		breakdown = append(breakdown, contracts.BucketScore{
			Name:   b.Name,
			Points: points,
			Max:    b.Max,
		})
	}

	score := clampScore(int(math.Round(total)))
	category, recommendation := e.Categorize(score)

	result := contracts.CompositeScore{
		Score:          score,
		Category:       category,
		Recommendation: recommendation,
		Provisional:    rr == nil || !rr.DataQuality.IsValid,
		Breakdown:      breakdown,
		Unreliable:     rr.Unreliable(),
	}

	e.logger.WithFields(map[string]interface{}{
		"score":       result.Score,
		"category":    result.Category,
		"provisional": result.Provisional,
		"unreliable":  len(result.Unreliable),
	}).Debug("Composite score computed")

	return result
}

// Categorize maps a score to its category band. Bands are inclusive at MinScore.
func (e *Engine) Categorize(score int) (contracts.Category, string) {
	for _, band := range e.config.Categories {
		if score >= band.MinScore {
			return band.Category, band.Recommendation
		}
	}
	last := e.config.Categories[len(e.config.Categories)-1]
	return last.Category, last.Recommendation
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
