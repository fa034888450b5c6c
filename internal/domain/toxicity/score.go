// Package toxicity implements the scoring arithmetic: overall and hormonal
// health scores, risk classification, and the advisory text attached to a
// score.  Everything here is pure and deterministic.
package toxicity

import (
	"math"

	"github.com/sakhi-health/toxiscan/pkg/types/toxicity"
)

// ConfidenceThreshold is the resolution confidence below which a flagged
// chemical gets a low-confidence warning.
const ConfidenceThreshold = 0.85

// pcosMultipliers are the hormonal-health penalty multipliers per EDC type.
// BPA correlates most strongly with PCOS aggravation; unknown types carry
// no extra penalty.
var pcosMultipliers = map[toxicity.EDCType]float64{
	toxicity.EDCTypeBPA:            1.5,
	toxicity.EDCTypePhthalate:      1.4,
	toxicity.EDCTypeOrganochlorine: 1.3,
	toxicity.EDCTypePFAS:           1.3,
	toxicity.EDCTypeHeavyMetal:     1.2,
	toxicity.EDCTypeParaben:        1.1,
	toxicity.EDCTypeUnknown:        1.0,
}

// PCOSMultiplier returns the hormonal penalty multiplier for an EDC type.
func PCOSMultiplier(t toxicity.EDCType) float64 {
	if m, ok := pcosMultipliers[t]; ok {
		return m
	}
	return 1.0
}

// OverallScore computes the overall toxicity score in [0,100], higher is
// safer.  Each flagged chemical contributes its risk score weighted by its
// resolution confidence; the averaged risk is inflated by up to 50% as the
// proportion of flagged ingredients grows, then subtracted from a perfect
// score.  Rounded to one decimal.
func OverallScore(flagged []*toxicity.HazardRecord, totalIngredients int) float64 {
	return penalizedScore(flagged, totalIngredients, func(r *toxicity.HazardRecord) float64 {
		return r.RiskScore * r.Confidence
	})
}

// HormonalHealthScore computes the PCOS-specific score in [0,100], higher
// is safer.  Same shape as OverallScore, but each chemical's weighted risk
// is further multiplied by the highest PCOS multiplier among its EDC
// types, so it never exceeds the overall score.
func HormonalHealthScore(flagged []*toxicity.HazardRecord, totalIngredients int) float64 {
	return penalizedScore(flagged, totalIngredients, func(r *toxicity.HazardRecord) float64 {
		multiplier := 1.0
		for _, t := range r.EDCTypes {
			if m := PCOSMultiplier(t); m > multiplier {
				multiplier = m
			}
		}
		return r.RiskScore * r.Confidence * multiplier
	})
}

func penalizedScore(flagged []*toxicity.HazardRecord, totalIngredients int, weightedRisk func(*toxicity.HazardRecord) float64) float64 {
	if len(flagged) == 0 {
		return 100.0
	}

	totalRisk := 0.0
	for _, r := range flagged {
		totalRisk += weightedRisk(r)
	}
	avgRisk := totalRisk / float64(len(flagged))

	if totalIngredients < 1 {
		totalIngredients = 1
	}
	proportion := float64(len(flagged)) / float64(totalIngredients)
	penalty := avgRisk * (1.0 + proportion*0.5)

	return round1(math.Max(0.0, 100.0-penalty))
}

// ClassifyRiskLevel buckets an overall score into a risk level.  Scores of
// 70 and above are low risk, 50 and above medium, 30 and above high, and
// anything below 30 critical.
func ClassifyRiskLevel(overallScore float64) toxicity.RiskLevel {
	switch {
	case overallScore >= 70:
		return toxicity.RiskLow
	case overallScore >= 50:
		return toxicity.RiskMedium
	case overallScore >= 30:
		return toxicity.RiskHigh
	default:
		return toxicity.RiskCritical
	}
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
