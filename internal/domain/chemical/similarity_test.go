package chemical

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity_ExactAfterNormalization(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("water", "water"))
	// Both sides are normalized, so spacing variants are exact matches.
	assert.Equal(t, 1.0, Similarity("Methyl Paraben", "methylparaben"))
	assert.Equal(t, 1.0, Similarity("Bisphenol A", "BPA"))
}

func TestSimilarity_Substring(t *testing.T) {
	assert.Equal(t, 0.95, Similarity("paraben", "methylparaben"))
	assert.Equal(t, 0.95, Similarity("glycerine", "glycerin"))
}

func TestSimilarity_SequenceRatioWithPrefixBonus(t *testing.T) {
	// glycerin vs glycerol share the glycer stem: ratio 0.75 plus the
	// prefix bonus lands at the fuzzy-match threshold.
	got := Similarity("glycerin", "glycerol")
	assert.InDelta(t, 0.85, got, 1e-9)
}

func TestSimilarity_Unrelated(t *testing.T) {
	assert.Less(t, Similarity("water", "benzene"), 0.5)
	assert.Less(t, Similarity("toluene", "methylparaben"), 0.5)
}

func TestSimilarity_Empty(t *testing.T) {
	assert.Equal(t, 0.0, Similarity("", "water"))
	assert.Equal(t, 0.0, Similarity("water", ""))
	assert.Equal(t, 0.0, Similarity("", ""))
}

func TestSimilarity_Bounds(t *testing.T) {
	pairs := [][2]string{
		{"methylparaben", "ethylparaben"},
		{"propylparaben", "butylparaben"},
		{"dehp", "dbp"},
		{"lead", "mercury"},
	}
	for _, p := range pairs {
		got := Similarity(p[0], p[1])
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 1.0)
	}
}

func TestSequenceRatio(t *testing.T) {
	// Matching block bcd over total length 8.
	assert.InDelta(t, 0.75, sequenceRatio("abcd", "bcde"), 1e-9)
	assert.Equal(t, 1.0, sequenceRatio("same", "same"))
	assert.Equal(t, 0.0, sequenceRatio("ab", "cd"))
}
