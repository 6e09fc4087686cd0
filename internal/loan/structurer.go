package loan

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/wonny/creditlens/internal/contracts"
	"github.com/wonny/creditlens/pkg/logger"
)

// Structurer builds amortization schedules with repayment-health projections
// ⭐ SSOT: pure calculator; re-derive on every parameter change instead of patching a schedule
type Structurer struct {
	logger *logger.Logger
}

// NewStructurer creates a loan structurer
func NewStructurer(log *logger.Logger) *Structurer {
	if log == nil {
		log = logger.Nop()
	}
	return &Structurer{logger: log.Component("loan")}
}

// Project computes the full schedule for params against the borrower's ratios
func (s *Structurer) Project(params contracts.LoanParameters, rr *contracts.RobustRatios) (*contracts.LoanStructure, error) {
	return s.ProjectInputs(params, InputsFrom(rr))
}

// ProjectInputs is Project with the health inputs given explicitly
func (s *Structurer) ProjectInputs(params contracts.LoanParameters, h HealthInputs) (*contracts.LoanStructure, error) {
	emi, err := EMI(params)
	if err != nil {
		return nil, err
	}

	n := params.Months()
	r := MonthlyRate(params.InterestRate)
	remaining := params.LoanAmount

	schedule := make([]contracts.MonthlyProjection, 0, n)
	healthSum := 0
	minStress := 100

	for month := 1; month <= n; month++ {
		interest := remaining * r
		principal := emi - interest
		remaining = math.Max(0, remaining-principal)

		health := HealthScore(h, month, remaining, params.LoanAmount)
		stress := StressScore(health)

		schedule = append(schedule, contracts.MonthlyProjection{
			Month:              month,
			RemainingPrincipal: roundCents(remaining),
			EMI:                emi,
			Interest:           roundCents(interest),
			Principal:          roundCents(principal),
			HealthScore:        health,
			RiskLevel:          Classify(float64(health)),
			StressTestScore:    stress,
		})

		healthSum += health
		if stress < minStress {
			minStress = stress
		}
	}

	totalPayment := decimal.NewFromFloat(emi).Mul(decimal.NewFromInt(int64(n)))
	totalInterest := totalPayment.Sub(decimal.NewFromFloat(params.LoanAmount))
	average := decimal.NewFromInt(int64(healthSum)).Div(decimal.NewFromInt(int64(n))).Round(1).InexactFloat64()

	result := &contracts.LoanStructure{
		Parameters:     params,
		EMI:            emi,
		TotalPayment:   totalPayment.Round(2).InexactFloat64(),
		TotalInterest:  totalInterest.Round(2).InexactFloat64(),
		Schedule:       schedule,
		AverageHealth:  average,
		MinStressScore: minStress,
		OverallRisk:    Classify(average),
	}

	s.logger.WithFields(map[string]interface{}{
		"amount":         params.LoanAmount,
		"rate":           params.InterestRate,
		"months":         n,
		"emi":            emi,
		"average_health": average,
		"overall_risk":   result.OverallRisk,
	}).Debug("Loan structure projected")

	return result, nil
}
