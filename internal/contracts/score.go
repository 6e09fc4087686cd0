package contracts

// Category is the categorical reading of a 0–100 score
type Category string

const (
	CategoryExcellent Category = "Excellent"
	CategoryGood      Category = "Good"
	CategoryFair      Category = "Fair"
	CategoryPoor      Category = "Poor"
)

// BucketScore is the contribution of one scoring bucket
type BucketScore struct {
	Name   string  `json:"name"`
	Points float64 `json:"points"`
	Max    float64 `json:"max"`
}

// CompositeScore is derived from the current ratios every time they change; never stored
type CompositeScore struct {
	Score          int           `json:"score"` // 0 ~ 100
	Category       Category      `json:"category"`
	Recommendation string        `json:"recommendation"`
	Provisional    bool          `json:"provisional"` // data quality failed for the year
	Breakdown      []BucketScore `json:"breakdown,omitempty"`
	Unreliable     []RatioName   `json:"unreliableRatios,omitempty"`
}

// ScoreFactor is one input of the bureau sub-score
type ScoreFactor struct {
	Name   string  `json:"name"`
	Input  float64 `json:"input"`
	Points float64 `json:"points"`
	Max    float64 `json:"max"`
}

// BureauScore is the 0–100 reading of an AECB report
type BureauScore struct {
	Score   int           `json:"score"`
	Factors []ScoreFactor `json:"factors"`
}

// BlendedScore combines the ratio score with the bureau score
type BlendedScore struct {
	CompositeScore
	RatioScore    int          `json:"ratioScore"`
	Bureau        *BureauScore `json:"bureau,omitempty"`
	BureauApplied bool         `json:"bureauApplied"`
	RatioWeight   float64      `json:"ratioWeight"`
	BureauWeight  float64      `json:"bureauWeight"`
}
