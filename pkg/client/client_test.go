package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakhi-health/toxiscan/pkg/errors"
	"github.com/sakhi-health/toxiscan/pkg/types/toxicity"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL, WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return srv, c
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient("")
	require.Error(t, err)
}

func TestScoreProduct(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/toxicity/score", r.URL.Path)

		var req ScoreRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Ingredients, 2)

		_ = json.NewEncoder(w).Encode(toxicity.Score{
			OverallScore:        72.5,
			HormonalHealthScore: 64.0,
			RiskLevel:           toxicity.RiskLow,
		})
	})

	score, err := c.ScoreProduct(context.Background(), ScoreRequest{
		Ingredients: []toxicity.Ingredient{{Name: "water"}, {Name: "bpa"}},
	})
	require.NoError(t, err)
	assert.InDelta(t, 72.5, score.OverallScore, 1e-9)
	assert.Equal(t, toxicity.RiskLow, score.RiskLevel)
}

func TestResolveChemical(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/chemicals/resolve", r.URL.Path)
		_ = json.NewEncoder(w).Encode(Resolution{
			Identity:   &Identity{CASNumber: "80-05-7"},
			Source:     "curated_registry",
			Confidence: 0.7,
		})
	})

	res, err := c.ResolveChemical(context.Background(), "bpa")
	require.NoError(t, err)
	require.NotNil(t, res.Identity)
	assert.Equal(t, "80-05-7", res.Identity.CASNumber)
}

func TestResolveChemical_NotFound(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(errorResponse{
			Code:    "CHEM_003",
			Message: "chemical could not be resolved",
			Detail:  "mystery goo",
		})
	})

	_, err := c.ResolveChemical(context.Background(), "mystery goo")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeChemicalNotResolved))
}

func TestHazard(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/chemicals/80-05-7/hazard", r.URL.Path)
		_ = json.NewEncoder(w).Encode(toxicity.HazardRecord{
			Name:          "Bisphenol A (BPA)",
			CASNumber:     "80-05-7",
			EDCTypes:      []toxicity.EDCType{toxicity.EDCTypeBPA},
			RiskScore:     85,
			HealthEffects: []string{"Hormone disruption"},
			Confidence:    1.0,
		})
	})

	rec, err := c.Hazard(context.Background(), "80-05-7")
	require.NoError(t, err)
	assert.Equal(t, "Bisphenol A (BPA)", rec.Name)
}

func TestDo_UnexpectedErrorBody(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	})

	_, err := c.Hazard(context.Background(), "80-05-7")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 502")
}
