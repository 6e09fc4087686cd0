// Package loan computes amortized installments and month-by-month repayment health.
package loan

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/wonny/creditlens/internal/contracts"
)

// =============================================================================
// EMI (Pure)
// =============================================================================

// MonthlyRate converts an annual percentage rate to a monthly fraction
func MonthlyRate(annualPct float64) float64 {
	return annualPct / 100 / 12
}

// EMI returns the equated monthly installment rounded to the nearest currency unit.
// A zero rate degenerates to straight-line repayment P/n.
func EMI(p contracts.LoanParameters) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	emi := rawEMI(p.LoanAmount, MonthlyRate(p.InterestRate), p.Months())
	if math.IsNaN(emi) || math.IsInf(emi, 0) {
		return 0, fmt.Errorf("%w: installment overflows at %g%% interest", contracts.ErrInvalidLoanParameters, p.InterestRate)
	}
	return roundUnit(emi), nil
}

// rawEMI is P·r·(1+r)^n / ((1+r)^n − 1), evaluated as P·r / (1 − (1+r)^−n).
// Log1p/Expm1 keep tiny rates from collapsing 1+r to 1 and huge rates from overflowing the power.
func rawEMI(principal, r float64, n int) float64 {
	discount := -math.Expm1(-float64(n) * math.Log1p(r))
	if r == 0 || discount == 0 {
		return principal / float64(n)
	}
	return principal * r / discount
}

func roundUnit(v float64) float64 {
	return decimal.NewFromFloat(v).Round(0).InexactFloat64()
}

func roundCents(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
