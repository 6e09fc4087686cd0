package cad

import (
	"math"

	"github.com/wonny/creditlens/internal/contracts"
	"github.com/wonny/creditlens/pkg/logger"
)

// Assessor scores CAD facilities
type Assessor struct {
	tables *Tables
	logger *logger.Logger
}

// NewAssessor creates an assessor. A nil tables selects DefaultTables.
func NewAssessor(tables *Tables, log *logger.Logger) *Assessor {
	if tables == nil {
		tables = DefaultTables()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Assessor{tables: tables, logger: log.Component("cad")}
}

// Assess scores facts against the borrower's CAD ratios
func (a *Assessor) Assess(facts contracts.CADLoanFacts, ratios contracts.CADRatios) (*contracts.CADResult, error) {
	if err := facts.Validate(); err != nil {
		return nil, err
	}

	t := a.tables
	result := &contracts.CADResult{Ratios: ratios}

	// Financial strength (≤ 40)
	result.Breakdown.FinancialStrength = t.CurrentRatio.Points(ratios.CurrentRatio) +
		t.DebtServiceCoverage.Points(ratios.DebtServiceCoverage) +
		t.ProfitMargin.Points(ratios.ProfitMargin)

	// Loan structure (≤ 25)
	ltcPoints := t.LoanToCollateral.Floor
	if facts.CollateralValue > 0 {
		// multiply first so 70% of a round collateral stays exact
		result.LoanToCollateral = facts.RequestedAmount * 100 / facts.CollateralValue
		ltcPoints = t.LoanToCollateral.Points(result.LoanToCollateral)
	} else {
		result.Warnings = append(result.Warnings, "No collateral value provided; loan-to-collateral scored in the lowest tier")
	}
	result.Breakdown.LoanStructure = ltcPoints + t.Tenor.Points(float64(facts.LoanTenorMonths))

	result.Breakdown.TradingHistory = t.TradingHistory.Points(facts.TradingHistoryYears)
	result.Breakdown.DocumentCoverage = t.DocumentCoverage.Points(facts.DocumentsCoverage)

	result.Score = int(math.Round(result.Breakdown.Total()))
	result.Category, result.Decision = a.Decide(result.Score)

	a.logger.WithFields(map[string]interface{}{
		"score":              result.Score,
		"category":           result.Category,
		"loan_to_collateral": result.LoanToCollateral,
	}).Debug("CAD facility assessed")

	return result, nil
}

// Decide maps a CAD score to its category and lending decision
func (a *Assessor) Decide(score int) (contracts.Category, string) {
	for _, d := range a.tables.Decisions {
		if score >= d.MinScore {
			return d.Category, d.Text
		}
	}
	last := a.tables.Decisions[len(a.tables.Decisions)-1]
	return last.Category, last.Text
}
