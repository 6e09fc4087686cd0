// Package testutil holds shared fixtures for package tests.
package testutil

import (
	"github.com/wonny/creditlens/internal/contracts"
)

// Fact builds a fact with AED currency and high confidence
func Fact(field string, value float64, year int) contracts.FinancialFact {
	return contracts.FinancialFact{
		FieldName:       field,
		Value:           value,
		Currency:        "AED",
		Year:            year,
		ConfidenceScore: 0.95,
	}
}

// YearFigures is one fiscal year of the fixture company
type YearFigures struct {
	Year               int
	TotalAssets        float64
	CurrentAssets      float64
	TotalLiabilities   float64
	CurrentLiabilities float64
	Equity             float64
	Inventory          float64
	Cash               float64
	CurrentPortionLTD  float64
	Revenue            float64
	NetProfit          float64
	GrossProfit        float64
	EBIT               float64
	EBITDA             float64
	InterestExpense    float64
	COGS               float64
	OperatingCashFlow  float64
}

// Strong2023 scores 100 on the default tables
var Strong2023 = YearFigures{
	Year:               2023,
	TotalAssets:        1_000_000,
	CurrentAssets:      400_000,
	TotalLiabilities:   500_000,
	CurrentLiabilities: 150_000,
	Equity:             500_000,
	Inventory:          80_000,
	Cash:               90_000,
	CurrentPortionLTD:  50_000,
	Revenue:            1_600_000,
	NetProfit:          180_000,
	GrossProfit:        560_000,
	EBIT:               260_000,
	EBITDA:             300_000,
	InterestExpense:    40_000,
	COGS:               1_040_000,
	OperatingCashFlow:  210_000,
}

// Weak2022 scores 54 (Poor) on the default tables
var Weak2022 = YearFigures{
	Year:               2022,
	TotalAssets:        900_000,
	CurrentAssets:      300_000,
	TotalLiabilities:   550_000,
	CurrentLiabilities: 200_000,
	Equity:             350_000,
	Inventory:          100_000,
	Cash:               30_000,
	CurrentPortionLTD:  60_000,
	Revenue:            1_000_000,
	NetProfit:          40_000,
	GrossProfit:        220_000,
	EBIT:               90_000,
	EBITDA:             120_000,
	InterestExpense:    45_000,
	COGS:               780_000,
	OperatingCashFlow:  70_000,
}

// Unbalanced2021 reports equity 100k short of the balance sheet identity
var Unbalanced2021 = YearFigures{
	Year:               2021,
	TotalAssets:        800_000,
	CurrentAssets:      250_000,
	TotalLiabilities:   500_000,
	CurrentLiabilities: 180_000,
	Equity:             200_000,
	Inventory:          70_000,
	Cash:               40_000,
	CurrentPortionLTD:  40_000,
	Revenue:            900_000,
	NetProfit:          45_000,
	GrossProfit:        200_000,
	EBIT:               80_000,
	EBITDA:             100_000,
	InterestExpense:    30_000,
	COGS:               700_000,
	OperatingCashFlow:  60_000,
}

// Append adds the year's facts to ds
func (y YearFigures) Append(ds contracts.Dataset) contracts.Dataset {
	bs := contracts.StatementBalanceSheet
	is := contracts.StatementIncome
	cf := contracts.StatementCashFlow

	ds[bs] = append(ds[bs],
		Fact(contracts.FieldTotalAssets, y.TotalAssets, y.Year),
		Fact(contracts.FieldCurrentAssets, y.CurrentAssets, y.Year),
		Fact(contracts.FieldTotalLiabilities, y.TotalLiabilities, y.Year),
		Fact(contracts.FieldCurrentLiabilities, y.CurrentLiabilities, y.Year),
		Fact(contracts.FieldShareholdersEquity, y.Equity, y.Year),
		Fact(contracts.FieldInventory, y.Inventory, y.Year),
		Fact(contracts.FieldCash, y.Cash, y.Year),
		Fact(contracts.FieldCurrentPortionLTD, y.CurrentPortionLTD, y.Year),
	)
	ds[is] = append(ds[is],
		Fact(contracts.FieldTotalRevenue, y.Revenue, y.Year),
		Fact(contracts.FieldNetProfit, y.NetProfit, y.Year),
		Fact(contracts.FieldGrossProfit, y.GrossProfit, y.Year),
		Fact(contracts.FieldEBIT, y.EBIT, y.Year),
		Fact(contracts.FieldEBITDA, y.EBITDA, y.Year),
		Fact(contracts.FieldInterestExpense, y.InterestExpense, y.Year),
		Fact(contracts.FieldCostOfGoodsSold, y.COGS, y.Year),
	)
	ds[cf] = append(ds[cf],
		Fact("Operating Cash Flow", y.OperatingCashFlow, y.Year),
	)
	return ds
}

// Dataset builds a dataset holding the given years
func Dataset(years ...YearFigures) contracts.Dataset {
	ds := contracts.Dataset{}
	for _, y := range years {
		y.Append(ds)
	}
	return ds
}

// CompanyDataset is the three-year fixture company
func CompanyDataset() contracts.Dataset {
	return Dataset(Unbalanced2021, Weak2022, Strong2023)
}

// CleanBureau is a bureau report with no adverse information
func CleanBureau() *contracts.AECBReport {
	return &contracts.AECBReport{
		Company: contracts.CompanyProfile{
			Name:            "Gulf Trading LLC",
			TradeLicense:    "DED-123456",
			EstablishedYear: 2012,
		},
		CreditScore: 780,
		RiskGrade:   "A2",
		PaymentPerformance: contracts.PaymentPerformance{
			OnTimePct: 97,
			Late30Pct: 3,
		},
		Utilization: contracts.Utilization{OverallPct: 28, RevolvingPct: 35},
		Facilities: []contracts.Facility{
			{Type: "Working Capital", Lender: "Emirates NBD", Limit: 500_000, Outstanding: 140_000, Status: "active"},
		},
		InquiriesLast6M: 1,
		Guarantors:      contracts.Guarantors{Count: 1, Personal: 1},
	}
}
