package contracts

// AECBReport is the credit-bureau report consumed by the bureau sub-score
type AECBReport struct {
	Company            CompanyProfile     `json:"company" yaml:"company"`
	CreditScore        int                `json:"creditScore" yaml:"credit_score"` // 300 ~ 900
	RiskGrade          string             `json:"riskGrade" yaml:"risk_grade"`
	PaymentPerformance PaymentPerformance `json:"paymentPerformance" yaml:"payment_performance"`
	Utilization        Utilization        `json:"utilization" yaml:"utilization"`
	Facilities         []Facility         `json:"facilities" yaml:"facilities"`
	Inquiries          []Inquiry          `json:"inquiries" yaml:"inquiries"`
	InquiriesLast6M    int                `json:"inquiriesLast6Months" yaml:"inquiries_last_6_months"`
	NegativeInfo       NegativeInfo       `json:"negativeInfo" yaml:"negative_info"`
	Guarantors         Guarantors         `json:"guarantors" yaml:"guarantors"`
}

// CompanyProfile identifies the reported company
type CompanyProfile struct {
	Name            string `json:"name" yaml:"name"`
	TradeLicense    string `json:"tradeLicense" yaml:"trade_license"`
	EstablishedYear int    `json:"establishedYear" yaml:"established_year"`
}

// PaymentPerformance holds the share of installments by delinquency bucket (%)
type PaymentPerformance struct {
	OnTimePct     float64 `json:"onTimePct" yaml:"on_time_pct"`
	Late30Pct     float64 `json:"late30Pct" yaml:"late_30_pct"`
	Late60Pct     float64 `json:"late60Pct" yaml:"late_60_pct"`
	Late90PlusPct float64 `json:"late90PlusPct" yaml:"late_90_plus_pct"`
}

// Utilization holds credit utilization ratios (%)
type Utilization struct {
	OverallPct   float64 `json:"overallPct" yaml:"overall_pct"`
	RevolvingPct float64 `json:"revolvingPct" yaml:"revolving_pct"`
}

// Facility is one reported credit line
type Facility struct {
	Type        string  `json:"type" yaml:"type"`
	Lender      string  `json:"lender" yaml:"lender"`
	Limit       float64 `json:"limit" yaml:"limit"`
	Outstanding float64 `json:"outstanding" yaml:"outstanding"`
	Status      string  `json:"status" yaml:"status"`
}

// Inquiry is one credit inquiry made against the company
type Inquiry struct {
	Date    string `json:"date" yaml:"date"` // YYYY-MM-DD
	Lender  string `json:"lender" yaml:"lender"`
	Purpose string `json:"purpose" yaml:"purpose"`
}

// NegativeInfo counts adverse records
type NegativeInfo struct {
	BouncedCheques int `json:"bouncedCheques" yaml:"bounced_cheques"`
	Lawsuits       int `json:"lawsuits" yaml:"lawsuits"`
	WriteOffs      int `json:"writeOffs" yaml:"write_offs"`
	Defaults       int `json:"defaults" yaml:"defaults"`
}

// Total returns the number of adverse records of any kind
func (n NegativeInfo) Total() int {
	return n.BouncedCheques + n.Lawsuits + n.WriteOffs + n.Defaults
}

// Guarantors counts guarantees backing the company's facilities
type Guarantors struct {
	Count     int `json:"count" yaml:"count"`
	Personal  int `json:"personal" yaml:"personal"`
	Corporate int `json:"corporate" yaml:"corporate"`
}

// TotalOutstanding sums outstanding balances across facilities
func (r *AECBReport) TotalOutstanding() float64 {
	total := 0.0
	for _, f := range r.Facilities {
		total += f.Outstanding
	}
	return total
}
