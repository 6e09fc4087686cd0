package ratios

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/creditlens/internal/contracts"
	"github.com/wonny/creditlens/internal/testutil"
	"github.com/wonny/creditlens/internal/validation"
	"github.com/wonny/creditlens/pkg/logger"
)

func newEngine() *Engine {
	log := logger.Nop()
	return NewEngine(validation.NewValidator(log), log)
}

func TestEngine_Calculate_StrongYear(t *testing.T) {
	e := newEngine()

	rr, err := e.Calculate(testutil.CompanyDataset(), 2023)
	require.NoError(t, err)

	assert.Equal(t, 2023, rr.Year)
	assert.True(t, rr.DataQuality.IsValid)
	assert.Len(t, rr.Ratios, len(contracts.AllRatios))
	assert.Empty(t, rr.Unreliable())

	want := map[contracts.RatioName]float64{
		contracts.RatioCurrent:           400.0 / 150.0,
		contracts.RatioQuick:             320.0 / 150.0,
		contracts.RatioCash:              0.6,
		contracts.RatioDebtToEquity:      1.0,
		contracts.RatioDebt:              50,
		contracts.RatioCapitalAdequacy:   50,
		contracts.RatioGrossProfitMargin: 35,
		contracts.RatioNetProfitMargin:   11.25,
		contracts.RatioOperatingMargin:   16.25,
		contracts.RatioEBITDAMargin:      18.75,
		contracts.RatioReturnOnAssets:    18,
		contracts.RatioReturnOnEquity:    36,
		contracts.RatioAssetTurnover:     1.6,
		contracts.RatioInventoryTurnover: 13,
		contracts.RatioInterestCoverage:  6.5,
	}
	for name, value := range want {
		assert.InDelta(t, value, rr.Get(name).Value, 1e-9, string(name))
	}
}

func TestEngine_Calculate_UsesCorrectedEquity(t *testing.T) {
	e := newEngine()

	rr, err := e.Calculate(testutil.CompanyDataset(), 2021)
	require.NoError(t, err)

	assert.False(t, rr.DataQuality.IsValid)
	corrected, ok := rr.DataQuality.Correction(contracts.FieldShareholdersEquity)
	require.True(t, ok)
	assert.Equal(t, 300_000.0, corrected)

	// 500k liabilities / 300k corrected equity, not the reported 200k
	assert.InDelta(t, 500.0/300.0, rr.Get(contracts.RatioDebtToEquity).Value, 1e-9)
	assert.InDelta(t, 15.0, rr.Get(contracts.RatioReturnOnEquity).Value, 1e-9)
	assert.InDelta(t, 37.5, rr.Get(contracts.RatioCapitalAdequacy).Value, 1e-9)
}

func TestEngine_Calculate_MissingFiguresDegrade(t *testing.T) {
	e := newEngine()
	ds := contracts.Dataset{
		contracts.StatementBalanceSheet: {
			testutil.Fact(contracts.FieldTotalAssets, 100, 2023),
			testutil.Fact(contracts.FieldTotalLiabilities, 80, 2023),
			testutil.Fact(contracts.FieldShareholdersEquity, 20, 2023),
		},
		contracts.StatementIncome: {
			testutil.Fact(contracts.FieldNetProfit, -4, 2023),
		},
	}

	rr, err := e.Calculate(ds, 2023)
	require.NoError(t, err)

	assert.False(t, rr.DataQuality.IsValid, "revenue missing")
	assert.False(t, rr.Get(contracts.RatioCurrent).IsReliable)
	assert.Equal(t, "Cannot calculate currentRatio - denominator is zero", rr.Get(contracts.RatioCurrent).Warning)
	assert.False(t, rr.Get(contracts.RatioNetProfitMargin).IsReliable)
	assert.True(t, rr.Get(contracts.RatioReturnOnAssets).IsReliable)
	assert.InDelta(t, -4.0, rr.Get(contracts.RatioReturnOnAssets).Value, 1e-9)
	assert.Contains(t, rr.Unreliable(), contracts.RatioInterestCoverage)
}

func TestEngine_Calculate_StructuralErrors(t *testing.T) {
	e := newEngine()

	_, err := e.Calculate(nil, 2023)
	assert.ErrorIs(t, err, contracts.ErrNilDataset)

	_, err = e.Calculate(testutil.CompanyDataset(), 0)
	assert.ErrorIs(t, err, contracts.ErrInvalidYear)

	_, err = e.Calculate(contracts.Dataset{"Statement of Changes": {testutil.Fact("x", 1, 2023)}}, 2023)
	assert.ErrorIs(t, err, contracts.ErrUnsupportedStatement)
}

func TestEngine_Calculate_IsDeterministic(t *testing.T) {
	e := newEngine()
	ds := testutil.CompanyDataset()

	first, err := e.Calculate(ds, 2022)
	require.NoError(t, err)
	second, err := e.Calculate(ds, 2022)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEngine_CADRatios(t *testing.T) {
	e := newEngine()

	cr, warnings, err := e.CADRatios(testutil.CompanyDataset(), 2023)
	require.NoError(t, err)

	assert.Empty(t, warnings)
	assert.InDelta(t, 400.0/150.0, cr.CurrentRatio, 1e-9)
	assert.InDelta(t, 300.0/90.0, cr.DebtServiceCoverage, 1e-9)
	assert.InDelta(t, 11.25, cr.ProfitMargin, 1e-9)
}

func TestEngine_CADRatios_UnreliableEntersAsZero(t *testing.T) {
	e := newEngine()
	loss := testutil.Strong2023
	loss.NetProfit = -10_000
	loss.InterestExpense = 0
	loss.CurrentPortionLTD = 0

	cr, warnings, err := e.CADRatios(testutil.Dataset(loss), 2023)
	require.NoError(t, err)

	assert.Zero(t, cr.ProfitMargin)
	assert.Zero(t, cr.DebtServiceCoverage)
	assert.Len(t, warnings, 2)
}
