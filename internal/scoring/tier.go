package scoring

// Direction tells a ladder which way is better
type Direction string

const (
	HigherIsBetter Direction = "higher"
	LowerIsBetter  Direction = "lower"
)

// Tier awards Points once a value reaches Threshold
type Tier struct {
	Threshold float64 `yaml:"threshold" json:"threshold"`
	Points    float64 `yaml:"points" json:"points"`
}

// Ladder is an ordered tier table. The first tier the value satisfies wins;
// values satisfying none score Floor.
//   - higher: tiers by descending threshold, value >= threshold
//   - lower:  tiers by ascending threshold, value <= threshold
type Ladder struct {
	Direction Direction `yaml:"direction,omitempty" json:"direction,omitempty"` // default higher
	Tiers     []Tier    `yaml:"tiers" json:"tiers"`
	Floor     float64   `yaml:"floor,omitempty" json:"floor,omitempty"`
}

// Points returns the points awarded to v
func (l Ladder) Points(v float64) float64 {
	lower := l.Direction == LowerIsBetter
	for _, t := range l.Tiers {
		if lower && v <= t.Threshold {
			return t.Points
		}
		if !lower && v >= t.Threshold {
			return t.Points
		}
	}
	return l.Floor
}

// Max returns the most points the ladder can award
func (l Ladder) Max() float64 {
	max := l.Floor
	for _, t := range l.Tiers {
		if t.Points > max {
			max = t.Points
		}
	}
	return max
}

// Higher builds a higher-is-better ladder from (threshold, points) pairs
func Higher(floor float64, pairs ...float64) Ladder {
	return Ladder{Direction: HigherIsBetter, Tiers: tiers(pairs), Floor: floor}
}

// Lower builds a lower-is-better ladder from (threshold, points) pairs
func Lower(floor float64, pairs ...float64) Ladder {
	return Ladder{Direction: LowerIsBetter, Tiers: tiers(pairs), Floor: floor}
}

func tiers(pairs []float64) []Tier {
	out := make([]Tier, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Tier{Threshold: pairs[i], Points: pairs[i+1]})
	}
	return out
}
