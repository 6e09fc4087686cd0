package scoring

import (
	"github.com/shopspring/decimal"

	"github.com/wonny/creditlens/internal/contracts"
)

// Suggest derives default loan terms from the ratios and the composite score.
// The amount scales the base by a factor that grows with each qualifying ratio tier.
func (e *Engine) Suggest(rr *contracts.RobustRatios, score int) contracts.LoanSuggestion {
	cfg := e.config.Suggestion

	factor := decimal.NewFromInt(1)
	for _, adj := range cfg.Adjustments {
		factor = factor.Add(decimal.NewFromFloat(adj.Apply(rr)))
	}

	amount := decimal.NewFromFloat(cfg.BaseAmount).Mul(factor).Round(0)

	return contracts.LoanSuggestion{
		Amount:           amount.InexactFloat64(),
		Rate:             e.SuggestRate(score),
		TermYears:        cfg.TermYears,
		AdjustmentFactor: factor.InexactFloat64(),
	}
}

// SuggestRate maps a composite score to an annual interest rate (%)
func (e *Engine) SuggestRate(score int) float64 {
	rates := e.config.Suggestion.Rates
	for _, band := range rates {
		if score >= band.MinScore {
			return band.Rate
		}
	}
	return rates[len(rates)-1].Rate
}
