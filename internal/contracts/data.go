package contracts

import (
	"fmt"
	"sort"
)

// StatementName identifies one of the three financial statements
type StatementName string

const (
	StatementBalanceSheet StatementName = "Balance Sheet"
	StatementIncome       StatementName = "Income Statement"
	StatementCashFlow     StatementName = "Cash Flow Statement"
)

// Statements lists the supported statements in lookup order
var Statements = []StatementName{
	StatementBalanceSheet,
	StatementIncome,
	StatementCashFlow,
}

// IsSupported reports whether s is one of the three known statements
func (s StatementName) IsSupported() bool {
	for _, known := range Statements {
		if s == known {
			return true
		}
	}
	return false
}

// Field names looked up by the validator and the ratio engine
const (
	FieldTotalAssets        = "Total Assets"
	FieldCurrentAssets      = "Current Assets"
	FieldTotalLiabilities   = "Total Liabilities"
	FieldCurrentLiabilities = "Current Liabilities"
	FieldShareholdersEquity = "Shareholder's Equity"
	FieldInventory          = "Inventory"
	FieldCash               = "Cash and Cash Equivalents"
	FieldCurrentPortionLTD  = "Current Portion of Long-Term Debt"
	FieldTotalRevenue       = "Total Revenue"
	FieldNetProfit          = "Net Profit"
	FieldGrossProfit        = "Gross Profit"
	FieldEBIT               = "EBIT"
	FieldEBITDA             = "EBITDA"
	FieldInterestExpense    = "Interest Expense"
	FieldCostOfGoodsSold    = "Cost of Goods Sold"
)

// homeStatement maps each catalogued field to the statement it is reported on
var homeStatement = map[string]StatementName{
	FieldTotalAssets:        StatementBalanceSheet,
	FieldCurrentAssets:      StatementBalanceSheet,
	FieldTotalLiabilities:   StatementBalanceSheet,
	FieldCurrentLiabilities: StatementBalanceSheet,
	FieldShareholdersEquity: StatementBalanceSheet,
	FieldInventory:          StatementBalanceSheet,
	FieldCash:               StatementBalanceSheet,
	FieldCurrentPortionLTD:  StatementBalanceSheet,
	FieldTotalRevenue:       StatementIncome,
	FieldNetProfit:          StatementIncome,
	FieldGrossProfit:        StatementIncome,
	FieldEBIT:               StatementIncome,
	FieldEBITDA:             StatementIncome,
	FieldInterestExpense:    StatementIncome,
	FieldCostOfGoodsSold:    StatementIncome,
}

// FinancialFact is a single reported figure. Facts are never mutated after ingestion;
// corrections live in ValidationResult.Corrections.
type FinancialFact struct {
	FieldName       string  `json:"field_name" yaml:"field_name"`
	Value           float64 `json:"value" yaml:"value"`
	Currency        string  `json:"currency" yaml:"currency"`
	Year            int     `json:"year" yaml:"year"`
	ConfidenceScore float64 `json:"confidence_score" yaml:"confidence_score"` // 0.0 ~ 1.0
}

// Dataset groups facts by statement, each in ingestion order
type Dataset map[StatementName][]FinancialFact

// Lookup returns the first fact matching (statement, field, year)
func (d Dataset) Lookup(statement StatementName, field string, year int) (FinancialFact, bool) {
	for _, f := range d[statement] {
		if f.FieldName == field && f.Year == year {
			return f, true
		}
	}
	return FinancialFact{}, false
}

// Find looks a field up in its home statement first, then in the remaining
// statements in Statements order.
func (d Dataset) Find(field string, year int) (FinancialFact, bool) {
	home, known := homeStatement[field]
	if known {
		if f, ok := d.Lookup(home, field, year); ok {
			return f, true
		}
	}
	for _, s := range Statements {
		if known && s == home {
			continue
		}
		if f, ok := d.Lookup(s, field, year); ok {
			return f, true
		}
	}
	return FinancialFact{}, false
}

// Value returns the field's value for the year; missing facts resolve to 0
func (d Dataset) Value(field string, year int) float64 {
	f, ok := d.Find(field, year)
	if !ok {
		return 0
	}
	return f.Value
}

// FactCount returns the total number of facts across all statements
func (d Dataset) FactCount() int {
	n := 0
	for _, facts := range d {
		n += len(facts)
	}
	return n
}

// Years returns the distinct fiscal years present, ascending
func (d Dataset) Years() []int {
	seen := make(map[int]struct{})
	for _, facts := range d {
		for _, f := range facts {
			seen[f.Year] = struct{}{}
		}
	}

	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// CheckShape rejects structurally unusable datasets.
// Data-quality problems are NOT reported here; see the validation package.
func (d Dataset) CheckShape() error {
	if d == nil {
		return ErrNilDataset
	}
	for name := range d {
		if !name.IsSupported() {
			return fmt.Errorf("%w: %q", ErrUnsupportedStatement, name)
		}
	}
	if d.FactCount() == 0 {
		return ErrEmptyDataset
	}
	return nil
}

// CheckYear validates a requested fiscal year
func CheckYear(year int) error {
	if year <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidYear, year)
	}
	return nil
}
