package contracts

// IssueType classifies a data quality issue
type IssueType string

const (
	IssueBalanceSheetViolation IssueType = "balance_sheet_violation"
	IssueNegativeValue         IssueType = "negative_value"
	IssueMissingData           IssueType = "missing_data"
	IssueUnrealisticRatio      IssueType = "unrealistic_ratio"
)

// Severity of a data quality issue. Any high severity issue invalidates the year.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// DataQualityIssue is one detected inconsistency in the source facts
type DataQualityIssue struct {
	Type         IssueType `json:"type"`
	Field        string    `json:"field"`
	Description  string    `json:"description"`
	Severity     Severity  `json:"severity"`
	SuggestedFix string    `json:"suggestedFix,omitempty"`
}

// ValidationResult is computed fresh for every (dataset, year) query
type ValidationResult struct {
	IsValid     bool               `json:"isValid"`
	Issues      []DataQualityIssue `json:"issues"`
	Corrections map[string]float64 `json:"corrections"` // field name → corrected value
}

// Correction returns the proposed corrected value for field, if any
func (v ValidationResult) Correction(field string) (float64, bool) {
	value, ok := v.Corrections[field]
	return value, ok
}

// CountBySeverity returns how many issues carry the given severity
func (v ValidationResult) CountBySeverity(s Severity) int {
	n := 0
	for _, issue := range v.Issues {
		if issue.Severity == s {
			n++
		}
	}
	return n
}

// HasIssue reports whether an issue of type t was raised for field
func (v ValidationResult) HasIssue(t IssueType, field string) bool {
	for _, issue := range v.Issues {
		if issue.Type == t && issue.Field == field {
			return true
		}
	}
	return false
}
