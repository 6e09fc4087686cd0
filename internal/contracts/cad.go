package contracts

import (
	"fmt"
	"math"
)

// CADLoanFacts describes a Cash-Against-Documents facility request
type CADLoanFacts struct {
	RequestedAmount     float64 `json:"requestedAmount"`
	LoanTenorMonths     int     `json:"loanTenor"`
	CollateralValue     float64 `json:"collateralValue"`
	DocumentsCoverage   float64 `json:"documentsCoverage"` // %
	TradingHistoryYears float64 `json:"tradingHistory"`
}

// Validate rejects facts that cannot describe a facility.
// A zero collateral value is allowed and scored in the weakest structure tier.
func (f CADLoanFacts) Validate() error {
	for name, v := range map[string]float64{
		"requestedAmount":   f.RequestedAmount,
		"collateralValue":   f.CollateralValue,
		"documentsCoverage": f.DocumentsCoverage,
		"tradingHistory":    f.TradingHistoryYears,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not a finite number", ErrInvalidCADFacts, name)
		}
	}

	switch {
	case f.RequestedAmount <= 0:
		return fmt.Errorf("%w: requested amount must be > 0", ErrInvalidCADFacts)
	case f.LoanTenorMonths <= 0:
		return fmt.Errorf("%w: tenor must be > 0 months", ErrInvalidCADFacts)
	case f.DocumentsCoverage < 0 || f.DocumentsCoverage > 100:
		return fmt.Errorf("%w: documents coverage must be within [0, 100]", ErrInvalidCADFacts)
	case f.TradingHistoryYears < 0:
		return fmt.Errorf("%w: trading history must be >= 0", ErrInvalidCADFacts)
	case f.CollateralValue < 0:
		return fmt.Errorf("%w: collateral value must be >= 0", ErrInvalidCADFacts)
	}
	return nil
}

// CADRatios are the financial inputs of the CAD assessment
type CADRatios struct {
	CurrentRatio        float64 `json:"currentRatio"`
	DebtServiceCoverage float64 `json:"debtServiceCoverage"`
	ProfitMargin        float64 `json:"profitMargin"` // %
}

// CADBreakdown holds the four bucket scores
type CADBreakdown struct {
	FinancialStrength float64 `json:"financialStrength"` // ≤ 40
	LoanStructure     float64 `json:"loanStructure"`     // ≤ 25
	TradingHistory    float64 `json:"tradingHistory"`    // ≤ 20
	DocumentCoverage  float64 `json:"documentCoverage"`  // ≤ 15
}

// Total sums the buckets
func (b CADBreakdown) Total() float64 {
	return b.FinancialStrength + b.LoanStructure + b.TradingHistory + b.DocumentCoverage
}

// CADResult is the loan decision for a CAD facility
type CADResult struct {
	Score            int          `json:"score"`
	Category         Category     `json:"category"`
	Decision         string       `json:"decision"`
	Breakdown        CADBreakdown `json:"breakdown"`
	LoanToCollateral float64      `json:"loanToCollateral"` // %, 0 when collateral is absent
	Ratios           CADRatios    `json:"ratios"`
	Warnings         []string     `json:"warnings,omitempty"`
}
