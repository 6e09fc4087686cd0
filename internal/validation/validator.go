package validation

import (
	"fmt"
	"math"

	"github.com/wonny/creditlens/internal/contracts"
	"github.com/wonny/creditlens/pkg/logger"
)

// Thresholds used by the consistency checks
const (
	balanceTolerance = 0.05 // |A − (L + E)| allowed as a share of total assets
	maxDebtToEquity  = 10.0
)

// KeyFigures are the seven balance/income figures the checks run on
type KeyFigures struct {
	TotalAssets        float64 `json:"totalAssets"`
	CurrentAssets      float64 `json:"currentAssets"`
	TotalLiabilities   float64 `json:"totalLiabilities"`
	CurrentLiabilities float64 `json:"currentLiabilities"`
	Equity             float64 `json:"equity"`
	Revenue            float64 `json:"revenue"`
	NetProfit          float64 `json:"netProfit"`
}

// ExtractKeyFigures pulls the key figures for year; missing facts resolve to 0
func ExtractKeyFigures(ds contracts.Dataset, year int) KeyFigures {
	return KeyFigures{
		TotalAssets:        ds.Value(contracts.FieldTotalAssets, year),
		CurrentAssets:      ds.Value(contracts.FieldCurrentAssets, year),
		TotalLiabilities:   ds.Value(contracts.FieldTotalLiabilities, year),
		CurrentLiabilities: ds.Value(contracts.FieldCurrentLiabilities, year),
		Equity:             ds.Value(contracts.FieldShareholdersEquity, year),
		Revenue:            ds.Value(contracts.FieldTotalRevenue, year),
		NetProfit:          ds.Value(contracts.FieldNetProfit, year),
	}
}

// Validator checks a year-slice of facts for internal consistency
// ⭐ SSOT: data quality rules live here only
type Validator struct {
	logger *logger.Logger
}

// NewValidator creates a new Validator
func NewValidator(log *logger.Logger) *Validator {
	if log == nil {
		log = logger.Nop()
	}
	return &Validator{logger: log.Component("validator")}
}

// Validate inspects the facts for year. It is pure: the dataset is never modified,
// proposed corrections are returned in the result.
func (v *Validator) Validate(ds contracts.Dataset, year int) contracts.ValidationResult {
	return v.ValidateFigures(ExtractKeyFigures(ds, year), year)
}

// ValidateFigures runs the checks on already extracted figures
func (v *Validator) ValidateFigures(k KeyFigures, year int) contracts.ValidationResult {
	result := contracts.ValidationResult{
		Issues:      []contracts.DataQualityIssue{},
		Corrections: make(map[string]float64),
	}

	// 1. Balance sheet identity: A = L + E
	balanceError := math.Abs(k.TotalAssets - (k.TotalLiabilities + k.Equity))
	if balanceError > k.TotalAssets*balanceTolerance {
		result.Issues = append(result.Issues, contracts.DataQualityIssue{
			Type:  contracts.IssueBalanceSheetViolation,
			Field: contracts.FieldShareholdersEquity,
			Description: fmt.Sprintf(
				"Balance sheet does not balance: Assets (%.2f) ≠ Liabilities (%.2f) + Equity (%.2f), difference %.2f",
				k.TotalAssets, k.TotalLiabilities, k.Equity, balanceError,
			),
			Severity:     contracts.SeverityHigh,
			SuggestedFix: "Recalculate equity as Total Assets - Total Liabilities",
		})

		if corrected := k.TotalAssets - k.TotalLiabilities; corrected > 0 {
			result.Corrections[contracts.FieldShareholdersEquity] = corrected
		}
	}

	// 2. Sign constraints
	for _, f := range []struct {
		field string
		value float64
	}{
		{contracts.FieldTotalAssets, k.TotalAssets},
		{contracts.FieldCurrentAssets, k.CurrentAssets},
		{contracts.FieldTotalRevenue, k.Revenue},
	} {
		if f.value < 0 {
			result.Issues = append(result.Issues, contracts.DataQualityIssue{
				Type:         contracts.IssueNegativeValue,
				Field:        f.field,
				Description:  fmt.Sprintf("%s cannot be negative (%.2f)", f.field, f.value),
				Severity:     contracts.SeverityHigh,
				SuggestedFix: "Verify the sign of the extracted figure",
			})
		}
	}

	// 3. Completeness
	if k.TotalAssets == 0 {
		result.Issues = append(result.Issues, missingIssue(contracts.FieldTotalAssets))
	}
	if k.Revenue == 0 {
		result.Issues = append(result.Issues, missingIssue(contracts.FieldTotalRevenue))
	}

	// 4. Leverage plausibility
	if k.TotalLiabilities > 0 && k.Equity > 0 {
		if de := k.TotalLiabilities / k.Equity; de > maxDebtToEquity {
			result.Issues = append(result.Issues, contracts.DataQualityIssue{
				Type:         contracts.IssueUnrealisticRatio,
				Field:        "Debt to Equity",
				Description:  fmt.Sprintf("Debt-to-equity of %.2f is unusually high", de),
				Severity:     contracts.SeverityMedium,
				SuggestedFix: "Confirm liabilities and equity were extracted from the same period",
			})
		}
	}

	// 5. Current assets cannot exceed total assets
	if k.CurrentAssets > k.TotalAssets {
		result.Issues = append(result.Issues, contracts.DataQualityIssue{
			Type:  contracts.IssueBalanceSheetViolation,
			Field: contracts.FieldCurrentAssets,
			Description: fmt.Sprintf(
				"Current assets (%.2f) exceed total assets (%.2f)", k.CurrentAssets, k.TotalAssets,
			),
			Severity:     contracts.SeverityHigh,
			SuggestedFix: "Check whether current and total assets were swapped",
		})
	}

	result.IsValid = result.CountBySeverity(contracts.SeverityHigh) == 0

	if len(result.Issues) > 0 {
		v.logger.WithFields(map[string]interface{}{
			"year":        year,
			"issues":      len(result.Issues),
			"high":        result.CountBySeverity(contracts.SeverityHigh),
			"corrections": len(result.Corrections),
		}).Debug("Data quality issues detected")
	}

	return result
}

func missingIssue(field string) contracts.DataQualityIssue {
	return contracts.DataQualityIssue{
		Type:         contracts.IssueMissingData,
		Field:        field,
		Description:  fmt.Sprintf("%s is missing or zero", field),
		Severity:     contracts.SeverityHigh,
		SuggestedFix: fmt.Sprintf("Provide %s for the year", field),
	}
}
