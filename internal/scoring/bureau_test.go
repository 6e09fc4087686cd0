package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/creditlens/internal/contracts"
	"github.com/wonny/creditlens/internal/testutil"
)

func TestEngine_BureauScore_Clean(t *testing.T) {
	e := newEngine(t)

	result := e.BureauScore(testutil.CleanBureau())

	assert.Equal(t, 92, result.Score)
	require.Len(t, result.Factors, 5)
	assert.InDelta(t, 32.0, result.Factors[0].Points, 1e-9)
	assert.Equal(t, 25.0, result.Factors[1].Points)
	assert.Equal(t, 15.0, result.Factors[2].Points)
	assert.Equal(t, 10.0, result.Factors[3].Points)
	assert.Equal(t, 10.0, result.Factors[4].Points)
}

func TestEngine_BureauScore_Adverse(t *testing.T) {
	e := newEngine(t)

	report := testutil.CleanBureau()
	report.CreditScore = 250 // below scale
	report.PaymentPerformance.OnTimePct = 65
	report.Utilization.OverallPct = 90
	report.NegativeInfo = contracts.NegativeInfo{BouncedCheques: 2, Lawsuits: 1}
	report.InquiriesLast6M = 8

	assert.Equal(t, 0, e.BureauScore(report).Score)

	report.CreditScore = 950 // above scale
	report.NegativeInfo = contracts.NegativeInfo{Defaults: 1}
	assert.Equal(t, 45, e.BureauScore(report).Score)
}

func TestBlend(t *testing.T) {
	w := BlendWeights{RatioWeight: 0.6, BureauWeight: 0.4}

	tests := []struct {
		ratio, bureau, want int
	}{
		{100, 92, 97},
		{54, 92, 69},
		{0, 0, 0},
		{100, 100, 100},
		{55, 56, 55},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Blend(tt.ratio, tt.bureau, w), "ratio=%d bureau=%d", tt.ratio, tt.bureau)
	}
}

func TestEngine_Blended(t *testing.T) {
	e := newEngine(t)
	ratio := e.Score(fixtureRatios(t, 2022))

	t.Run("without report", func(t *testing.T) {
		result := e.Blended(ratio, nil)

		assert.Equal(t, 54, result.Score)
		assert.Equal(t, 54, result.RatioScore)
		assert.False(t, result.BureauApplied)
		assert.Nil(t, result.Bureau)
		assert.Equal(t, 1.0, result.RatioWeight)
		assert.Equal(t, contracts.CategoryPoor, result.Category)
	})

	t.Run("with report", func(t *testing.T) {
		result := e.Blended(ratio, testutil.CleanBureau())

		assert.Equal(t, 69, result.Score)
		assert.Equal(t, 54, result.RatioScore)
		assert.True(t, result.BureauApplied)
		require.NotNil(t, result.Bureau)
		assert.Equal(t, 92, result.Bureau.Score)
		assert.Equal(t, contracts.CategoryFair, result.Category)
		assert.Equal(t, 0.6, result.RatioWeight)
		assert.Equal(t, 0.4, result.BureauWeight)
	})
}
