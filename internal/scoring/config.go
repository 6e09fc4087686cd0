package scoring

import (
	"github.com/wonny/creditlens/internal/contracts"
)

// Config is the complete, auditable scoring configuration
// ⭐ SSOT: every tier, weight and threshold of the scoring engine lives here
type Config struct {
	Version    string           `yaml:"version" json:"version"`
	Buckets    []Bucket         `yaml:"buckets" json:"buckets"`
	Categories []CategoryBand   `yaml:"categories" json:"categories"`
	Bureau     BureauConfig     `yaml:"bureau" json:"bureau"`
	Blend      BlendWeights     `yaml:"blend" json:"blend"`
	Suggestion SuggestionConfig `yaml:"suggestion" json:"suggestion"`
}

// Bucket groups ratio rules under a point cap
type Bucket struct {
	Name  string  `yaml:"name" json:"name"`
	Max   float64 `yaml:"max" json:"max"`
	Rules []Rule  `yaml:"rules" json:"rules"`
}

// Rule scores one ratio with a ladder.
// PositiveOnly rules award nothing for values <= 0.
type Rule struct {
	Ratio        contracts.RatioName `yaml:"ratio" json:"ratio"`
	PositiveOnly bool                `yaml:"positive_only,omitempty" json:"positive_only,omitempty"`
	Ladder       `yaml:",inline" json:"ladder"`
}

// Apply returns the rule's points for the bundle; unreliable ratios score 0
func (r Rule) Apply(rr *contracts.RobustRatios) float64 {
	result := rr.Get(r.Ratio)
	if !result.IsReliable {
		return 0
	}
	if r.PositiveOnly && result.Value <= 0 {
		return 0
	}
	return r.Points(result.Value)
}

// CategoryBand maps scores >= MinScore to a category
type CategoryBand struct {
	MinScore       int                `yaml:"min_score" json:"min_score"`
	Category       contracts.Category `yaml:"category" json:"category"`
	Recommendation string             `yaml:"recommendation" json:"recommendation"`
}

// BureauConfig scores an AECB report on 0–100
type BureauConfig struct {
	CreditScore        CreditScoreScale `yaml:"credit_score" json:"credit_score"`
	PaymentPerformance Ladder           `yaml:"payment_performance" json:"payment_performance"` // on-time %
	Utilization        Ladder           `yaml:"utilization" json:"utilization"`                 // overall %
	NegativeInfo       Ladder           `yaml:"negative_info" json:"negative_info"`             // adverse record count
	Inquiries          Ladder           `yaml:"inquiries" json:"inquiries"`                     // last 6 months
}

// CreditScoreScale linearly maps a bureau credit score onto [0, Points]
type CreditScoreScale struct {
	Min    float64 `yaml:"min" json:"min"`
	Max    float64 `yaml:"max" json:"max"`
	Points float64 `yaml:"points" json:"points"`
}

// BlendWeights weights the ratio score against the bureau score
type BlendWeights struct {
	RatioWeight  float64 `yaml:"ratio_weight" json:"ratio_weight"`
	BureauWeight float64 `yaml:"bureau_weight" json:"bureau_weight"`
}

// SuggestionConfig drives the loan amount/rate suggestion
type SuggestionConfig struct {
	BaseAmount  float64    `yaml:"base_amount" json:"base_amount"`
	TermYears   int        `yaml:"term_years" json:"term_years"`
	Adjustments []Rule     `yaml:"adjustments" json:"adjustments"` // ladder points are factor increments
	Rates       []RateBand `yaml:"rates" json:"rates"`
}

// RateBand maps scores >= MinScore to an annual rate (%)
type RateBand struct {
	MinScore int     `yaml:"min_score" json:"min_score"`
	Rate     float64 `yaml:"rate" json:"rate"`
}

// DefaultConfig returns the built-in scoring tables
func DefaultConfig() *Config {
	return &Config{
		Version: "default-v1",
		Buckets: []Bucket{
			{
				Name: "liquidity",
				Max:  25,
				Rules: []Rule{
					{Ratio: contracts.RatioCurrent, Ladder: Higher(0, 2.0, 10, 1.5, 7, 1.0, 4)},
					{Ratio: contracts.RatioQuick, Ladder: Higher(0, 1.0, 8, 0.8, 5, 0.5, 2)},
					{Ratio: contracts.RatioCash, Ladder: Higher(0, 0.5, 7, 0.2, 4, 0.1, 2)},
				},
			},
			{
				Name: "leverage",
				Max:  20,
				Rules: []Rule{
					{Ratio: contracts.RatioDebtToEquity, PositiveOnly: true, Ladder: Lower(0, 1.0, 10, 2.0, 7, 3.0, 3)},
					{Ratio: contracts.RatioCapitalAdequacy, Ladder: Higher(0, 50, 10, 30, 6, 20, 3)},
				},
			},
			{
				Name: "profitability",
				Max:  25,
				Rules: []Rule{
					{Ratio: contracts.RatioNetProfitMargin, Ladder: Higher(0, 10, 8, 5, 5, 2, 2)},
					{Ratio: contracts.RatioReturnOnAssets, Ladder: Higher(0, 15, 8, 10, 5, 5, 2)},
					{Ratio: contracts.RatioOperatingMargin, Ladder: Higher(0, 15, 9, 8, 6, 5, 3)},
				},
			},
			{
				Name: "efficiency",
				Max:  20,
				Rules: []Rule{
					{Ratio: contracts.RatioInterestCoverage, Ladder: Higher(0, 5.0, 8, 2.5, 5, 1.5, 2)},
					{Ratio: contracts.RatioAssetTurnover, Ladder: Higher(0, 1.5, 6, 1.0, 4, 0.5, 2)},
					{Ratio: contracts.RatioInventoryTurnover, Ladder: Higher(0, 6.0, 6, 4.0, 4, 2.0, 2)},
				},
			},
			{
				Name: "market",
				Max:  10,
				Rules: []Rule{
					{Ratio: contracts.RatioGrossProfitMargin, Ladder: Higher(0, 30, 5, 20, 3, 15, 1)},
					{Ratio: contracts.RatioReturnOnEquity, Ladder: Higher(0, 20, 5, 15, 3, 10, 1)},
				},
			},
		},
		Categories: []CategoryBand{
			{
				MinScore:       85,
				Category:       contracts.CategoryExcellent,
				Recommendation: "Strong financial position. Eligible for favourable terms with standard documentation.",
			},
			{
				MinScore:       70,
				Category:       contracts.CategoryGood,
				Recommendation: "Sound financial position. Eligible for financing with standard monitoring.",
			},
			{
				MinScore:       55,
				Category:       contracts.CategoryFair,
				Recommendation: "Moderate financial position. Financing possible with additional collateral or guarantees.",
			},
			{
				MinScore:       0,
				Category:       contracts.CategoryPoor,
				Recommendation: "Weak financial position. Financing not recommended without significant credit enhancement.",
			},
		},
		Bureau: BureauConfig{
			CreditScore:        CreditScoreScale{Min: 300, Max: 900, Points: 40},
			PaymentPerformance: Higher(0, 95, 25, 90, 20, 80, 12, 70, 6),
			Utilization:        Lower(0, 30, 15, 50, 10, 75, 5),
			NegativeInfo:       Lower(0, 0, 10, 1, 5),
			Inquiries:          Lower(0, 2, 10, 5, 5),
		},
		Blend: BlendWeights{RatioWeight: 0.6, BureauWeight: 0.4},
		Suggestion: SuggestionConfig{
			BaseAmount: 120_000,
			TermYears:  3,
			Adjustments: []Rule{
				{Ratio: contracts.RatioNetProfitMargin, Ladder: Higher(0, 10, 0.3, 5, 0.1)},
				{Ratio: contracts.RatioCurrent, Ladder: Higher(0, 2.0, 0.2, 1.5, 0.1)},
				{Ratio: contracts.RatioDebtToEquity, PositiveOnly: true, Ladder: Lower(0, 1.0, 0.2, 2.0, 0.1)},
				{Ratio: contracts.RatioReturnOnAssets, Ladder: Higher(0, 15, 0.2, 10, 0.1)},
			},
			Rates: []RateBand{
				{MinScore: 85, Rate: 8},
				{MinScore: 70, Rate: 10},
				{MinScore: 55, Rate: 12},
				{MinScore: 0, Rate: 15},
			},
		},
	}
}
