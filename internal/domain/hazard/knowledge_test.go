package hazard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakhi-health/toxiscan/pkg/types/toxicity"
)

func TestBuiltinKnowledgeBase_ByCAS(t *testing.T) {
	kb := NewBuiltinKnowledgeBase()
	ctx := context.Background()

	rec, ok, err := kb.ByCAS(ctx, "80-05-7")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Bisphenol A (BPA)", rec.Name)
	assert.Equal(t, []toxicity.EDCType{toxicity.EDCTypeBPA}, rec.EDCTypes)
	assert.Equal(t, 85.0, rec.RiskScore)
	require.NotNil(t, rec.Regulatory.FSSAIApproved)
	assert.False(t, *rec.Regulatory.FSSAIApproved)
	assert.Equal(t, []string{SourceCurated}, rec.Sources)
	assert.NoError(t, rec.Validate())
}

func TestBuiltinKnowledgeBase_Miss(t *testing.T) {
	kb := NewBuiltinKnowledgeBase()

	// Water is resolvable but is not an EDC.
	rec, ok, err := kb.ByCAS(context.Background(), "7732-18-5")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, rec)
}

func TestBuiltinKnowledgeBase_AllEntriesValid(t *testing.T) {
	kb := NewBuiltinKnowledgeBase()

	for cas := range curatedTable {
		rec, ok, err := kb.ByCAS(context.Background(), cas)
		require.NoError(t, err)
		require.True(t, ok, cas)
		assert.NoError(t, rec.Validate(), cas)
		assert.Equal(t, cas, rec.CASNumber)
	}
}

func TestBuiltinKnowledgeBase_RecordsAreCopies(t *testing.T) {
	kb := NewBuiltinKnowledgeBase()
	ctx := context.Background()

	first, _, err := kb.ByCAS(ctx, "99-76-3")
	require.NoError(t, err)
	first.EDCTypes[0] = toxicity.EDCTypeUnknown
	first.HealthEffects[0] = "tampered"

	second, _, err := kb.ByCAS(ctx, "99-76-3")
	require.NoError(t, err)
	assert.Equal(t, toxicity.EDCTypeParaben, second.EDCTypes[0])
	assert.Equal(t, "Endocrine disruption", second.HealthEffects[0])
}
