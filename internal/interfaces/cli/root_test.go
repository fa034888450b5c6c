package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakhi-health/toxiscan/pkg/types/toxicity"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestScoreCommand_Text(t *testing.T) {
	out, err := runCommand(t, "score", "water", "bpa")
	require.NoError(t, err)

	assert.Contains(t, out, "Overall score:")
	assert.Contains(t, out, "Flagged chemicals:")
	assert.Contains(t, out, "Bisphenol A (BPA)")
}

func TestScoreCommand_JSON(t *testing.T) {
	out, err := runCommand(t, "score", "-o", "json", "water", "glycerin")
	require.NoError(t, err)

	var score toxicity.Score
	require.NoError(t, json.Unmarshal([]byte(out), &score))
	assert.InDelta(t, 100.0, score.OverallScore, 1e-9)
	assert.Empty(t, score.FlaggedChemicals)
}

func TestScoreCommand_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ingredients.txt")
	require.NoError(t, os.WriteFile(path, []byte("# label\nwater\n\nmethyl paraben\n"), 0o644))

	out, err := runCommand(t, "score", "--file", path, "-o", "json")
	require.NoError(t, err)

	var score toxicity.Score
	require.NoError(t, json.Unmarshal([]byte(out), &score))
	require.Len(t, score.FlaggedChemicals, 1)
	assert.Equal(t, "99-76-3", score.FlaggedChemicals[0].CASNumber)
}

func TestScoreCommand_NoIngredients(t *testing.T) {
	_, err := runCommand(t, "score")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no ingredients")
}

func TestResolveCommand(t *testing.T) {
	out, err := runCommand(t, "resolve", "glycerine")
	require.NoError(t, err)

	assert.Contains(t, out, "56-81-5")
	assert.Contains(t, out, "curated_registry")
}

func TestResolveCommand_Unknown(t *testing.T) {
	_, err := runCommand(t, "resolve", "completely unknown substance xq")
	require.Error(t, err)
}

func TestRootCommand_Version(t *testing.T) {
	out, err := runCommand(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "dev")
}
