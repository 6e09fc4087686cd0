package contracts

// RatioName is the stable identifier of a computed ratio
type RatioName string

const (
	RatioCurrent           RatioName = "currentRatio"
	RatioQuick             RatioName = "quickRatio"
	RatioCash              RatioName = "cashRatio"
	RatioDebtToEquity      RatioName = "debtToEquity"
	RatioDebt              RatioName = "debtRatio"
	RatioCapitalAdequacy   RatioName = "capitalAdequacy"
	RatioGrossProfitMargin RatioName = "grossProfitMargin"
	RatioNetProfitMargin   RatioName = "netProfitMargin"
	RatioOperatingMargin   RatioName = "operatingMargin"
	RatioEBITDAMargin      RatioName = "ebitdaMargin"
	RatioReturnOnAssets    RatioName = "returnOnAssets"
	RatioReturnOnEquity    RatioName = "returnOnEquity"
	RatioAssetTurnover     RatioName = "assetTurnover"
	RatioInventoryTurnover RatioName = "inventoryTurnover"
	RatioInterestCoverage  RatioName = "interestCoverage"
)

// AllRatios is the fixed ratio set in presentation order
var AllRatios = []RatioName{
	RatioCurrent,
	RatioQuick,
	RatioCash,
	RatioDebtToEquity,
	RatioDebt,
	RatioCapitalAdequacy,
	RatioGrossProfitMargin,
	RatioNetProfitMargin,
	RatioOperatingMargin,
	RatioEBITDAMargin,
	RatioReturnOnAssets,
	RatioReturnOnEquity,
	RatioAssetTurnover,
	RatioInventoryTurnover,
	RatioInterestCoverage,
}

// IsKnownRatio reports whether name is part of the fixed ratio set
func IsKnownRatio(name RatioName) bool {
	for _, r := range AllRatios {
		if r == name {
			return true
		}
	}
	return false
}

// SafeRatioResult is the atomic output of every ratio computation
type SafeRatioResult struct {
	Value      float64 `json:"value"`
	IsReliable bool    `json:"isReliable"`
	Warning    string  `json:"warning,omitempty"`
}

// Usable returns the value when reliable and 0 otherwise.
// ⭐ Scoring must go through this: unreliable ratios contribute nothing.
func (r SafeRatioResult) Usable() float64 {
	if !r.IsReliable {
		return 0
	}
	return r.Value
}

// RobustRatios bundles the 15 ratios of one (dataset, year) with the validation used to compute them
type RobustRatios struct {
	Year        int                           `json:"year"`
	Ratios      map[RatioName]SafeRatioResult `json:"ratios"`
	DataQuality ValidationResult              `json:"dataQuality"`
}

// Get returns the named ratio; a missing ratio reads as unreliable zero
func (r *RobustRatios) Get(name RatioName) SafeRatioResult {
	if r == nil {
		return SafeRatioResult{}
	}
	return r.Ratios[name]
}

// Unreliable returns the names of ratios flagged unreliable, in AllRatios order
func (r *RobustRatios) Unreliable() []RatioName {
	var names []RatioName
	for _, name := range AllRatios {
		if !r.Get(name).IsReliable {
			names = append(names, name)
		}
	}
	return names
}

// Warnings returns every ratio warning keyed by ratio name
func (r *RobustRatios) Warnings() map[RatioName]string {
	warnings := make(map[RatioName]string)
	for _, name := range AllRatios {
		if w := r.Get(name).Warning; w != "" {
			warnings[name] = w
		}
	}
	return warnings
}
