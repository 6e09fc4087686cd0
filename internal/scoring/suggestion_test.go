package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/creditlens/internal/contracts"
)

func TestEngine_Suggest(t *testing.T) {
	e := newEngine(t)

	tests := []struct {
		name       string
		year       int
		score      int
		wantAmount float64
		wantFactor float64
		wantRate   float64
	}{
		{"strong year", 2023, 100, 228_000, 1.9, 8},
		{"weak year", 2022, 54, 144_000, 1.2, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Suggest(fixtureRatios(t, tt.year), tt.score)

			assert.Equal(t, tt.wantAmount, got.Amount)
			assert.InDelta(t, tt.wantFactor, got.AdjustmentFactor, 1e-9)
			assert.Equal(t, tt.wantRate, got.Rate)
			assert.Equal(t, 3, got.TermYears)
		})
	}
}

func TestEngine_Suggest_NoQualifyingRatios(t *testing.T) {
	e := newEngine(t)

	got := e.Suggest(bundle(nil), 40)

	assert.Equal(t, 120_000.0, got.Amount)
	assert.Equal(t, 15.0, got.Rate)
	assert.NoError(t, got.Parameters().Validate())
}

func TestEngine_Suggest_IgnoresUnreliable(t *testing.T) {
	e := newEngine(t)
	rr := bundle(map[contracts.RatioName]float64{contracts.RatioNetProfitMargin: 12})
	rr.Ratios[contracts.RatioNetProfitMargin] = contracts.SafeRatioResult{Value: 12, Warning: "Invalid data for netProfitMargin calculation"}

	assert.Equal(t, 120_000.0, e.Suggest(rr, 60).Amount)
}

func TestEngine_SuggestRate(t *testing.T) {
	e := newEngine(t)

	assert.Equal(t, 8.0, e.SuggestRate(85))
	assert.Equal(t, 10.0, e.SuggestRate(84))
	assert.Equal(t, 10.0, e.SuggestRate(70))
	assert.Equal(t, 12.0, e.SuggestRate(69))
	assert.Equal(t, 12.0, e.SuggestRate(55))
	assert.Equal(t, 15.0, e.SuggestRate(54))
}
