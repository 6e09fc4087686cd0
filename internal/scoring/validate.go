package scoring

import (
	"fmt"
	"math"

	"github.com/wonny/creditlens/internal/contracts"
)

// ValidationError reports an unusable scoring configuration
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

const weightTolerance = 1e-6

// Validate checks every structural constraint of the scoring tables
func Validate(cfg *Config) error {
	if cfg == nil {
		return ValidationError{"config", "required"}
	}

	// === Buckets ===
	if len(cfg.Buckets) == 0 {
		return ValidationError{"buckets", "required"}
	}
	total := 0.0
	for i, b := range cfg.Buckets {
		field := fmt.Sprintf("buckets[%d]", i)
		if b.Name == "" {
			return ValidationError{field + ".name", "required"}
		}
		if b.Max <= 0 {
			return ValidationError{field + ".max", "must be > 0"}
		}

		ruleMax := 0.0
		for j, r := range b.Rules {
			rf := fmt.Sprintf("%s.rules[%d]", field, j)
			if err := validateRule(r, rf); err != nil {
				return err
			}
			ruleMax += r.Max()
		}
		if ruleMax > b.Max+weightTolerance {
			return ValidationError{field, fmt.Sprintf("rules can award %.2f, above bucket max %.2f", ruleMax, b.Max)}
		}
		total += b.Max
	}
	if math.Abs(total-100) > weightTolerance {
		return ValidationError{"buckets", fmt.Sprintf("bucket maxima must sum to 100, got %.2f", total)}
	}

	// === Categories ===
	if err := validateCategories(cfg.Categories); err != nil {
		return err
	}

	// === Bureau ===
	cs := cfg.Bureau.CreditScore
	if cs.Max <= cs.Min {
		return ValidationError{"bureau.credit_score", "max must be > min"}
	}
	bureauMax := cs.Points
	for name, l := range map[string]Ladder{
		"bureau.payment_performance": cfg.Bureau.PaymentPerformance,
		"bureau.utilization":         cfg.Bureau.Utilization,
		"bureau.negative_info":       cfg.Bureau.NegativeInfo,
		"bureau.inquiries":           cfg.Bureau.Inquiries,
	} {
		if err := validateLadder(l, name); err != nil {
			return err
		}
		bureauMax += l.Max()
	}
	if math.Abs(bureauMax-100) > weightTolerance {
		return ValidationError{"bureau", fmt.Sprintf("factor maxima must sum to 100, got %.2f", bureauMax)}
	}

	// === Blend ===
	w := cfg.Blend
	if w.RatioWeight < 0 || w.BureauWeight < 0 {
		return ValidationError{"blend", "weights must be >= 0"}
	}
	if math.Abs(w.RatioWeight+w.BureauWeight-1.0) > weightTolerance {
		return ValidationError{"blend", fmt.Sprintf("weights must sum to 1.0, got %.4f", w.RatioWeight+w.BureauWeight)}
	}

	// === Suggestion ===
	s := cfg.Suggestion
	if s.BaseAmount <= 0 {
		return ValidationError{"suggestion.base_amount", "must be > 0"}
	}
	if s.TermYears <= 0 {
		return ValidationError{"suggestion.term_years", "must be > 0"}
	}
	for i, r := range s.Adjustments {
		if err := validateRule(r, fmt.Sprintf("suggestion.adjustments[%d]", i)); err != nil {
			return err
		}
	}
	if len(s.Rates) == 0 {
		return ValidationError{"suggestion.rates", "required"}
	}
	for i, band := range s.Rates {
		if band.Rate < 0 {
			return ValidationError{fmt.Sprintf("suggestion.rates[%d].rate", i), "must be >= 0"}
		}
		if i > 0 && band.MinScore >= s.Rates[i-1].MinScore {
			return ValidationError{"suggestion.rates", "min_score must be strictly descending"}
		}
	}
	if s.Rates[len(s.Rates)-1].MinScore != 0 {
		return ValidationError{"suggestion.rates", "last band must start at 0"}
	}

	return nil
}

func validateRule(r Rule, field string) error {
	if !contracts.IsKnownRatio(r.Ratio) {
		return ValidationError{field + ".ratio", fmt.Sprintf("unknown ratio %q", r.Ratio)}
	}
	return validateLadder(r.Ladder, field)
}

// validateLadder enforces monotonic tiers: better thresholds never award fewer points
func validateLadder(l Ladder, field string) error {
	if l.Direction != "" && l.Direction != HigherIsBetter && l.Direction != LowerIsBetter {
		return ValidationError{field + ".direction", "must be higher or lower"}
	}
	if len(l.Tiers) == 0 {
		return ValidationError{field + ".tiers", "required"}
	}

	lower := l.Direction == LowerIsBetter
	for i := 1; i < len(l.Tiers); i++ {
		prev, cur := l.Tiers[i-1], l.Tiers[i]
		if lower && cur.Threshold <= prev.Threshold {
			return ValidationError{field + ".tiers", "thresholds must be strictly ascending"}
		}
		if !lower && cur.Threshold >= prev.Threshold {
			return ValidationError{field + ".tiers", "thresholds must be strictly descending"}
		}
		if cur.Points > prev.Points {
			return ValidationError{field + ".tiers", "points must not increase for weaker tiers"}
		}
	}
	if l.Floor > l.Tiers[len(l.Tiers)-1].Points {
		return ValidationError{field + ".floor", "must not exceed the weakest tier"}
	}
	return nil
}

func validateCategories(bands []CategoryBand) error {
	if len(bands) == 0 {
		return ValidationError{"categories", "required"}
	}
	for i, band := range bands {
		if band.Category == "" {
			return ValidationError{fmt.Sprintf("categories[%d].category", i), "required"}
		}
		if i > 0 && band.MinScore >= bands[i-1].MinScore {
			return ValidationError{"categories", "min_score must be strictly descending"}
		}
	}
	if bands[len(bands)-1].MinScore != 0 {
		return ValidationError{"categories", "last band must start at 0"}
	}
	return nil
}
