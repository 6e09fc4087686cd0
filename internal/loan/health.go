package loan

import (
	"math"

	"github.com/wonny/creditlens/internal/contracts"
)

const (
	stressFactor    = 0.7 // 20% revenue shock
	seasonAmplitude = 0.15
	timeBonusMax    = 10.0
)

// HealthInputs are the ratios the repayment-health projection depends on
type HealthInputs struct {
	CurrentRatio     float64 `json:"currentRatio"`
	NetProfitMargin  float64 `json:"netProfitMargin"`
	InterestCoverage float64 `json:"interestCoverage"`
	DebtToEquity     float64 `json:"debtToEquity"`
}

// InputsFrom reads the health inputs from a ratio bundle; unreliable ratios read as 0
func InputsFrom(rr *contracts.RobustRatios) HealthInputs {
	return HealthInputs{
		CurrentRatio:     rr.Get(contracts.RatioCurrent).Usable(),
		NetProfitMargin:  rr.Get(contracts.RatioNetProfitMargin).Usable(),
		InterestCoverage: rr.Get(contracts.RatioInterestCoverage).Usable(),
		DebtToEquity:     rr.Get(contracts.RatioDebtToEquity).Usable(),
	}
}

// base is the month-independent part of the health score (0 ~ 90)
func (h HealthInputs) base() float64 {
	return clamp((h.CurrentRatio-0.5)*25, 0, 40) +
		clamp(h.NetProfitMargin*2, 0, 30) +
		clamp((h.InterestCoverage-1)*10, 0, 20) +
		clamp(10-h.DebtToEquity*3, 0, 10)
}

// HealthScore scores month m given the principal still outstanding after its payment
func HealthScore(h HealthInputs, month int, remaining, principal float64) int {
	bonus := 0.0
	if principal > 0 {
		bonus = timeBonusMax * (1 - remaining/principal)
	}
	season := 1 + seasonAmplitude*math.Sin(2*math.Pi*float64(month)/12)

	score := (h.base() + clamp(bonus, 0, timeBonusMax)) * season
	return int(clamp(math.Round(score), 0, 100))
}

// StressScore applies the revenue shock to a health score
func StressScore(health int) int {
	return int(math.Round(float64(health) * stressFactor))
}

// Classify maps a health score to a risk level
func Classify(health float64) contracts.RiskLevel {
	switch {
	case health >= 70:
		return contracts.RiskLow
	case health >= 50:
		return contracts.RiskModerate
	default:
		return contracts.RiskHigh
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
