package loan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/creditlens/internal/contracts"
)

func TestEMI(t *testing.T) {
	tests := []struct {
		name   string
		params contracts.LoanParameters
		want   float64
	}{
		{"suggested default", contracts.LoanParameters{LoanAmount: 120_000, InterestRate: 10, RepaymentTermYears: 3}, 3872},
		{"strong suggestion", contracts.LoanParameters{LoanAmount: 228_000, InterestRate: 8, RepaymentTermYears: 3}, 7145},
		{"one year", contracts.LoanParameters{LoanAmount: 100_000, InterestRate: 12, RepaymentTermYears: 1}, 8885},
		{"zero rate is linear", contracts.LoanParameters{LoanAmount: 120_000, InterestRate: 0, RepaymentTermYears: 3}, 3333},
		{"vanishing rate is linear", contracts.LoanParameters{LoanAmount: 120_000, InterestRate: 1e-15, RepaymentTermYears: 30}, 333},
		{"huge rate is interest only", contracts.LoanParameters{LoanAmount: 120_000, InterestRate: 100_000, RepaymentTermYears: 30}, 10_000_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EMI(tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEMI_InvalidParameters(t *testing.T) {
	invalid := []contracts.LoanParameters{
		{LoanAmount: 0, InterestRate: 10, RepaymentTermYears: 3},
		{LoanAmount: 1000, InterestRate: -0.5, RepaymentTermYears: 3},
		{LoanAmount: 1000, InterestRate: 10, RepaymentTermYears: 0},
		{LoanAmount: 1000, InterestRate: 10, RepaymentTermYears: contracts.MaxRepaymentTermYears + 1},
		{LoanAmount: 1000, InterestRate: 10, RepaymentTermYears: 100_000_000},
		{LoanAmount: 120_000, InterestRate: 1e308, RepaymentTermYears: 3},
	}

	for _, p := range invalid {
		_, err := EMI(p)
		assert.ErrorIs(t, err, contracts.ErrInvalidLoanParameters)
	}
}

func TestEMI_PrincipalRoundTrip(t *testing.T) {
	p := contracts.LoanParameters{LoanAmount: 120_000, InterestRate: 10, RepaymentTermYears: 3}
	emi, err := EMI(p)
	require.NoError(t, err)

	r := MonthlyRate(p.InterestRate)
	remaining := p.LoanAmount
	repaid := 0.0
	for month := 0; month < p.Months(); month++ {
		principal := emi - remaining*r
		repaid += principal
		remaining -= principal
	}

	assert.InDelta(t, p.LoanAmount, repaid, float64(p.Months()))
}

func TestMonthlyRate(t *testing.T) {
	assert.InDelta(t, 0.1/12, MonthlyRate(10), 1e-12)
	assert.Equal(t, 0.0, MonthlyRate(0))
}
