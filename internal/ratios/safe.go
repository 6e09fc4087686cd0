package ratios

import (
	"fmt"
	"math"
	"strings"

	"github.com/wonny/creditlens/internal/contracts"
)

// Plausibility bounds beyond which a ratio is kept but flagged unreliable
const (
	maxPercentage = 1000.0
	maxMultiple   = 100.0
)

// SafeCalculate divides numerator by denominator without ever producing NaN or Inf.
// Every anomaly downgrades the result to unreliable with a warning; it never fails.
func SafeCalculate(numerator, denominator float64, isPercentage bool, name string) contracts.SafeRatioResult {
	if !isFinite(numerator) || !isFinite(denominator) {
		return contracts.SafeRatioResult{
			Warning: fmt.Sprintf("Invalid data for %s calculation", name),
		}
	}

	if denominator == 0 {
		return contracts.SafeRatioResult{
			Warning: fmt.Sprintf("Cannot calculate %s - denominator is zero", name),
		}
	}

	if numerator < 0 && strings.Contains(name, "Margin") {
		return contracts.SafeRatioResult{
			Warning: fmt.Sprintf("Negative value detected for %s", name),
		}
	}

	value := numerator / denominator
	if isPercentage {
		value *= 100
	}
	if !isFinite(value) {
		return contracts.SafeRatioResult{
			Warning: fmt.Sprintf("Invalid data for %s calculation", name),
		}
	}

	if isPercentage && math.Abs(value) > maxPercentage {
		return contracts.SafeRatioResult{
			Value:   value,
			Warning: fmt.Sprintf("Unusually high value for %s: %.2f%%", name, value),
		}
	}
	if !isPercentage && math.Abs(value) > maxMultiple {
		return contracts.SafeRatioResult{
			Value:   value,
			Warning: fmt.Sprintf("Unusually high ratio for %s: %.2f", name, value),
		}
	}

	return contracts.SafeRatioResult{Value: value, IsReliable: true}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
