package ratios

import (
	"github.com/wonny/creditlens/internal/contracts"
)

// CADRatios derives the CAD assessment inputs for year from the corrected figures.
// Unreliable results enter as 0 and the warnings are returned alongside.
func (e *Engine) CADRatios(ds contracts.Dataset, year int) (contracts.CADRatios, []string, error) {
	f, _, err := e.Figures(ds, year)
	if err != nil {
		return contracts.CADRatios{}, nil, err
	}

	current := SafeCalculate(f.CurrentAssets, f.CurrentLiabilities, false, "currentRatio")
	dscr := SafeCalculate(f.EBITDA, f.InterestExpense+f.CurrentPortionLTD, false, "debtServiceCoverage")
	margin := SafeCalculate(f.NetProfit, f.Revenue, true, "profitMargin")

	var warnings []string
	for _, r := range []contracts.SafeRatioResult{current, dscr, margin} {
		if r.Warning != "" {
			warnings = append(warnings, r.Warning)
		}
	}

	return contracts.CADRatios{
		CurrentRatio:        current.Usable(),
		DebtServiceCoverage: dscr.Usable(),
		ProfitMargin:        margin.Usable(),
	}, warnings, nil
}
