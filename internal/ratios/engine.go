package ratios

import (
	"fmt"

	"github.com/wonny/creditlens/internal/contracts"
	"github.com/wonny/creditlens/internal/validation"
	"github.com/wonny/creditlens/pkg/logger"
)

// Figures are the raw inputs of the ratio set, after equity correction
type Figures struct {
	validation.KeyFigures
	GrossProfit       float64 `json:"grossProfit"`
	EBIT              float64 `json:"ebit"`
	EBITDA            float64 `json:"ebitda"`
	InterestExpense   float64 `json:"interestExpense"`
	COGS              float64 `json:"cogs"`
	Inventory         float64 `json:"inventory"`
	Cash              float64 `json:"cash"`
	CurrentPortionLTD float64 `json:"currentPortionLtd"`
}

// ratioSpec defines one ratio of the fixed set
type ratioSpec struct {
	name         contracts.RatioName
	isPercentage bool
	numerator    func(Figures) float64
	denominator  func(Figures) float64
}

// ratioSet is the fixed set of 15 ratios.
// cashRatio uses the reported cash field; it is never approximated from current assets.
var ratioSet = []ratioSpec{
	{contracts.RatioCurrent, false,
		func(f Figures) float64 { return f.CurrentAssets },
		func(f Figures) float64 { return f.CurrentLiabilities }},
	{contracts.RatioQuick, false,
		func(f Figures) float64 { return f.CurrentAssets - f.Inventory },
		func(f Figures) float64 { return f.CurrentLiabilities }},
	{contracts.RatioCash, false,
		func(f Figures) float64 { return f.Cash },
		func(f Figures) float64 { return f.CurrentLiabilities }},
	{contracts.RatioDebtToEquity, false,
		func(f Figures) float64 { return f.TotalLiabilities },
		func(f Figures) float64 { return f.Equity }},
	{contracts.RatioDebt, true,
		func(f Figures) float64 { return f.TotalLiabilities },
		func(f Figures) float64 { return f.TotalAssets }},
	{contracts.RatioCapitalAdequacy, true,
		func(f Figures) float64 { return f.Equity },
		func(f Figures) float64 { return f.TotalAssets }},
	{contracts.RatioGrossProfitMargin, true,
		func(f Figures) float64 { return f.GrossProfit },
		func(f Figures) float64 { return f.Revenue }},
	{contracts.RatioNetProfitMargin, true,
		func(f Figures) float64 { return f.NetProfit },
		func(f Figures) float64 { return f.Revenue }},
	{contracts.RatioOperatingMargin, true,
		func(f Figures) float64 { return f.EBIT },
		func(f Figures) float64 { return f.Revenue }},
	{contracts.RatioEBITDAMargin, true,
		func(f Figures) float64 { return f.EBITDA },
		func(f Figures) float64 { return f.Revenue }},
	{contracts.RatioReturnOnAssets, true,
		func(f Figures) float64 { return f.NetProfit },
		func(f Figures) float64 { return f.TotalAssets }},
	{contracts.RatioReturnOnEquity, true,
		func(f Figures) float64 { return f.NetProfit },
		func(f Figures) float64 { return f.Equity }},
	{contracts.RatioAssetTurnover, false,
		func(f Figures) float64 { return f.Revenue },
		func(f Figures) float64 { return f.TotalAssets }},
	{contracts.RatioInventoryTurnover, false,
		func(f Figures) float64 { return f.COGS },
		func(f Figures) float64 { return f.Inventory }},
	{contracts.RatioInterestCoverage, false,
		func(f Figures) float64 { return f.EBIT },
		func(f Figures) float64 { return f.InterestExpense }},
}

// Engine computes the ratio set per year
// ⭐ SSOT: ratio math lives here only
type Engine struct {
	validator *validation.Validator
	logger    *logger.Logger
}

// NewEngine creates a new ratio engine
func NewEngine(validator *validation.Validator, log *logger.Logger) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	if validator == nil {
		validator = validation.NewValidator(log)
	}
	return &Engine{
		validator: validator,
		logger:    log.Component("ratios"),
	}
}

// Figures validates the year and returns the corrected inputs with the validation used.
// Shareholder's equity is the only figure ever auto-corrected.
func (e *Engine) Figures(ds contracts.Dataset, year int) (Figures, contracts.ValidationResult, error) {
	if err := ds.CheckShape(); err != nil {
		return Figures{}, contracts.ValidationResult{}, fmt.Errorf("ratio inputs: %w", err)
	}
	if err := contracts.CheckYear(year); err != nil {
		return Figures{}, contracts.ValidationResult{}, fmt.Errorf("ratio inputs: %w", err)
	}

	key := validation.ExtractKeyFigures(ds, year)
	quality := e.validator.ValidateFigures(key, year)

	if corrected, ok := quality.Correction(contracts.FieldShareholdersEquity); ok {
		e.logger.WithFields(map[string]interface{}{
			"year":      year,
			"reported":  key.Equity,
			"corrected": corrected,
		}).Debug("Using corrected equity")
		key.Equity = corrected
	}

	return Figures{
		KeyFigures:        key,
		GrossProfit:       ds.Value(contracts.FieldGrossProfit, year),
		EBIT:              ds.Value(contracts.FieldEBIT, year),
		EBITDA:            ds.Value(contracts.FieldEBITDA, year),
		InterestExpense:   ds.Value(contracts.FieldInterestExpense, year),
		COGS:              ds.Value(contracts.FieldCostOfGoodsSold, year),
		Inventory:         ds.Value(contracts.FieldInventory, year),
		Cash:              ds.Value(contracts.FieldCash, year),
		CurrentPortionLTD: ds.Value(contracts.FieldCurrentPortionLTD, year),
	}, quality, nil
}

// Calculate computes all 15 ratios for year. Validation is recomputed on every call.
func (e *Engine) Calculate(ds contracts.Dataset, year int) (*contracts.RobustRatios, error) {
	figures, quality, err := e.Figures(ds, year)
	if err != nil {
		return nil, err
	}

	result := FromFigures(figures)
	result.Year = year
	result.DataQuality = quality

	if unreliable := result.Unreliable(); len(unreliable) > 0 {
		e.logger.WithFields(map[string]interface{}{
			"year":       year,
			"unreliable": unreliable,
		}).Debug("Ratios flagged unreliable")
	}

	return result, nil
}

// FromFigures computes the ratio set from explicit figures (no validation step)
func FromFigures(f Figures) *contracts.RobustRatios {
	result := &contracts.RobustRatios{
		Ratios: make(map[contracts.RatioName]contracts.SafeRatioResult, len(ratioSet)),
	}
	for _, spec := range ratioSet {
		result.Ratios[spec.name] = SafeCalculate(
			spec.numerator(f),
			spec.denominator(f),
			spec.isPercentage,
			string(spec.name),
		)
	}
	return result
}
