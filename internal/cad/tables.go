// Package cad scores Cash-Against-Documents facilities on their structure and the borrower's financials.
package cad

import (
	"github.com/wonny/creditlens/internal/contracts"
	"github.com/wonny/creditlens/internal/scoring"
)

// Tables holds every CAD tier
// ⭐ SSOT: CAD thresholds live here, independent of the eligibility score tables
type Tables struct {
	CurrentRatio        scoring.Ladder `yaml:"current_ratio" json:"current_ratio"`
	DebtServiceCoverage scoring.Ladder `yaml:"debt_service_coverage" json:"debt_service_coverage"`
	ProfitMargin        scoring.Ladder `yaml:"profit_margin" json:"profit_margin"`
	LoanToCollateral    scoring.Ladder `yaml:"loan_to_collateral" json:"loan_to_collateral"`
	Tenor               scoring.Ladder `yaml:"tenor" json:"tenor"`
	TradingHistory      scoring.Ladder `yaml:"trading_history" json:"trading_history"`
	DocumentCoverage    scoring.Ladder `yaml:"document_coverage" json:"document_coverage"`
	Decisions           []Decision     `yaml:"decisions" json:"decisions"`
}

// Decision maps scores >= MinScore to a category and lending decision
type Decision struct {
	MinScore int                `yaml:"min_score" json:"min_score"`
	Category contracts.Category `yaml:"category" json:"category"`
	Text     string             `yaml:"text" json:"text"`
}

// DefaultTables returns the standard CAD tiers
func DefaultTables() *Tables {
	return &Tables{
		CurrentRatio:        scoring.Higher(3, 1.5, 10, 1.2, 7),
		DebtServiceCoverage: scoring.Higher(5, 2.0, 15, 1.5, 10),
		ProfitMargin:        scoring.Higher(5, 8, 15, 5, 10),
		LoanToCollateral:    scoring.Lower(5, 70, 15, 85, 10),
		Tenor:               scoring.Lower(3, 6, 10, 12, 7),
		TradingHistory:      scoring.Higher(8, 5, 20, 3, 15),
		DocumentCoverage:    scoring.Higher(6, 90, 15, 80, 12),
		Decisions: []Decision{
			{MinScore: 85, Category: contracts.CategoryExcellent, Text: "Approve - standard terms"},
			{MinScore: 70, Category: contracts.CategoryGood, Text: "Approve with enhanced monitoring"},
			{MinScore: 55, Category: contracts.CategoryFair, Text: "Conditional approval - additional documentation required"},
			{MinScore: 0, Category: contracts.CategoryPoor, Text: "Decline or require additional security"},
		},
	}
}
