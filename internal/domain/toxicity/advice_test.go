package toxicity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakhi-health/toxiscan/pkg/types/toxicity"
)

func TestRecommendations_NoFlagged(t *testing.T) {
	recs := Recommendations(nil, toxicity.RiskLow, "cosmetic")
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0], "No EDCs detected")
}

func TestRecommendations_RiskLevelMessageFirst(t *testing.T) {
	flagged := []*toxicity.HazardRecord{flaggedBPA(1.0)}

	recs := Recommendations(flagged, toxicity.RiskCritical, "")
	require.NotEmpty(t, recs)
	assert.True(t, strings.HasPrefix(recs[0], "CRITICAL:"))

	recs = Recommendations(flagged, toxicity.RiskLow, "")
	assert.True(t, strings.HasPrefix(recs[0], "LOW RISK:"))
}

func TestRecommendations_PerEDCType(t *testing.T) {
	flagged := []*toxicity.HazardRecord{
		flaggedBPA(1.0),
		flaggedParaben(1.0),
	}
	recs := Recommendations(flagged, toxicity.RiskCritical, "")

	joined := strings.Join(recs, "\n")
	assert.Contains(t, joined, "BPA detected")
	assert.Contains(t, joined, "Parabens detected")
	assert.NotContains(t, joined, "Phthalates detected")
}

func TestRecommendations_CategoryTips(t *testing.T) {
	flagged := []*toxicity.HazardRecord{flaggedParaben(1.0)}

	for _, category := range []string{"cosmetic", "Personal_Care"} {
		recs := Recommendations(flagged, toxicity.RiskMedium, category)
		assert.Contains(t, strings.Join(recs, "\n"), "For cosmetics:", category)
	}

	recs := Recommendations(flagged, toxicity.RiskMedium, "food")
	assert.Contains(t, strings.Join(recs, "\n"), "For food:")

	recs = Recommendations(flagged, toxicity.RiskMedium, "toy")
	joined := strings.Join(recs, "\n")
	assert.NotContains(t, joined, "For cosmetics:")
	assert.NotContains(t, joined, "For food:")
}

func TestRecommendations_Deterministic(t *testing.T) {
	bpa := flaggedBPA(1.0)
	bpa.EDCTypes = []toxicity.EDCType{
		toxicity.EDCTypePFAS, toxicity.EDCTypeBPA, toxicity.EDCTypeHeavyMetal,
	}
	first := Recommendations([]*toxicity.HazardRecord{bpa}, toxicity.RiskCritical, "food")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Recommendations([]*toxicity.HazardRecord{bpa}, toxicity.RiskCritical, "food"))
	}
}

func TestUserWarnings(t *testing.T) {
	base := UserWarnings(false)
	require.Len(t, base, 3)
	assert.Contains(t, base[0], "NOT DIAGNOSTIC")
	assert.Contains(t, base[1], "LABEL LIMITATIONS")
	assert.Contains(t, base[2], "SCIENTIFIC UNCERTAINTY")

	withFlagged := UserWarnings(true)
	require.Len(t, withFlagged, 4)
	assert.Contains(t, withFlagged[3], "consult healthcare professionals")
}

func TestLowConfidenceNote(t *testing.T) {
	assert.Equal(t, "kumkum (confidence: 70%)", LowConfidenceNote("kumkum", 0.7))
	assert.Equal(t, "water (confidence: 100%)", LowConfidenceNote("water", 1.0))
}

func TestConfidenceWarnings(t *testing.T) {
	assert.Nil(t, ConfidenceWarnings(nil))

	warnings := ConfidenceWarnings([]string{"kumkum (confidence: 70%)", "surma (confidence: 70%)"})
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "kumkum (confidence: 70%), surma (confidence: 70%)")
	assert.Contains(t, warnings[0], "Results may be less accurate")
}
