package scoring

import (
	"math"

	"github.com/wonny/creditlens/internal/contracts"
)

// BureauScore reads an AECB report on a 0–100 scale
func (e *Engine) BureauScore(report *contracts.AECBReport) contracts.BureauScore {
	cfg := e.config.Bureau
	cs := cfg.CreditScore

	creditPoints := (float64(report.CreditScore) - cs.Min) / (cs.Max - cs.Min) * cs.Points
	creditPoints = math.Max(0, math.Min(cs.Points, creditPoints))

	factors := []contracts.ScoreFactor{
		{
			Name:   "credit_score",
			Input:  float64(report.CreditScore),
			Points: creditPoints,
			Max:    cs.Points,
		},
		ladderFactor("payment_performance", report.PaymentPerformance.OnTimePct, cfg.PaymentPerformance),
		ladderFactor("utilization", report.Utilization.OverallPct, cfg.Utilization),
		ladderFactor("negative_info", float64(report.NegativeInfo.Total()), cfg.NegativeInfo),
		ladderFactor("inquiries", float64(report.InquiriesLast6M), cfg.Inquiries),
	}

	total := 0.0
	for _, f := range factors {
		total += f.Points
	}

	return contracts.BureauScore{
		Score:   clampScore(int(math.Round(total))),
		Factors: factors,
	}
}

func ladderFactor(name string, input float64, l Ladder) contracts.ScoreFactor {
	return contracts.ScoreFactor{
		Name:   name,
		Input:  input,
		Points: l.Points(input),
		Max:    l.Max(),
	}
}

// Blend weights the ratio score against the bureau score and rounds to the nearest integer
func Blend(ratioScore, bureauScore int, w BlendWeights) int {
	blended := float64(ratioScore)*w.RatioWeight + float64(bureauScore)*w.BureauWeight
	return clampScore(int(math.Round(blended)))
}

// Blended combines a ratio composite with an optional bureau report.
// Without a report the ratio score passes through unchanged.
func (e *Engine) Blended(ratio contracts.CompositeScore, report *contracts.AECBReport) contracts.BlendedScore {
	result := contracts.BlendedScore{
		CompositeScore: ratio,
		RatioScore:     ratio.Score,
		RatioWeight:    1,
	}
	if report == nil {
		return result
	}

	bureau := e.BureauScore(report)
	w := e.config.Blend

	result.Score = Blend(ratio.Score, bureau.Score, w)
	result.Category, result.Recommendation = e.Categorize(result.Score)
	result.Bureau = &bureau
	result.BureauApplied = true
	result.RatioWeight = w.RatioWeight
	result.BureauWeight = w.BureauWeight

	e.logger.WithFields(map[string]interface{}{
		"ratio_score":  ratio.Score,
		"bureau_score": bureau.Score,
		"blended":      result.Score,
	}).Debug("Bureau blend applied")

	return result
}
