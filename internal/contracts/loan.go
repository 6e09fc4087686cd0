package contracts

import (
	"fmt"
	"math"
)

// MaxRepaymentTermYears bounds the schedule length
const MaxRepaymentTermYears = 50

// LoanParameters are the user-adjustable loan terms
type LoanParameters struct {
	LoanAmount         float64 `json:"loanAmount"`
	InterestRate       float64 `json:"interestRate"` // annual %
	RepaymentTermYears int     `json:"repaymentTermYears"`
}

// Validate rejects terms no amortization can be computed for
func (p LoanParameters) Validate() error {
	switch {
	case math.IsNaN(p.LoanAmount) || math.IsInf(p.LoanAmount, 0) || p.LoanAmount <= 0:
		return fmt.Errorf("%w: loan amount must be > 0", ErrInvalidLoanParameters)
	case math.IsNaN(p.InterestRate) || math.IsInf(p.InterestRate, 0) || p.InterestRate < 0:
		return fmt.Errorf("%w: interest rate must be >= 0", ErrInvalidLoanParameters)
	case p.RepaymentTermYears <= 0:
		return fmt.Errorf("%w: repayment term must be > 0 years", ErrInvalidLoanParameters)
	case p.RepaymentTermYears > MaxRepaymentTermYears:
		return fmt.Errorf("%w: repayment term must be <= %d years", ErrInvalidLoanParameters, MaxRepaymentTermYears)
	}
	return nil
}

// Months returns the number of monthly installments
func (p LoanParameters) Months() int {
	return p.RepaymentTermYears * 12
}

// LoanSuggestion seeds LoanParameters from the score
type LoanSuggestion struct {
	Amount           float64 `json:"amount"`
	Rate             float64 `json:"rate"`
	TermYears        int     `json:"termYears"`
	AdjustmentFactor float64 `json:"adjustmentFactor"`
}

// Parameters converts the suggestion into loan parameters
func (s LoanSuggestion) Parameters() LoanParameters {
	return LoanParameters{
		LoanAmount:         s.Amount,
		InterestRate:       s.Rate,
		RepaymentTermYears: s.TermYears,
	}
}

// RiskLevel classifies a monthly health score
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
)

// MonthlyProjection is one row of the repayment-health projection
type MonthlyProjection struct {
	Month              int       `json:"month"`
	RemainingPrincipal float64   `json:"remainingPrincipal"`
	EMI                float64   `json:"emi"`
	Interest           float64   `json:"interest"`
	Principal          float64   `json:"principal"`
	HealthScore        int       `json:"healthScore"` // 0 ~ 100
	RiskLevel          RiskLevel `json:"riskLevel"`
	StressTestScore    int       `json:"stressTestScore"`
}

// LoanStructure is the full amortization + health projection for one set of parameters
type LoanStructure struct {
	Parameters     LoanParameters      `json:"parameters"`
	EMI            float64             `json:"emi"`
	TotalPayment   float64             `json:"totalPayment"`
	TotalInterest  float64             `json:"totalInterest"`
	Schedule       []MonthlyProjection `json:"schedule"`
	AverageHealth  float64             `json:"averageHealth"`
	MinStressScore int                 `json:"minStressScore"`
	OverallRisk    RiskLevel           `json:"overallRisk"`
}
