package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakhi-health/toxiscan/internal/application/knowledge"
	"github.com/sakhi-health/toxiscan/internal/application/resolver"
	"github.com/sakhi-health/toxiscan/internal/application/scoring"
	"github.com/sakhi-health/toxiscan/internal/domain/chemical"
	"github.com/sakhi-health/toxiscan/internal/domain/hazard"
	"github.com/sakhi-health/toxiscan/internal/interfaces/http/handlers"
	"github.com/sakhi-health/toxiscan/internal/interfaces/http/middleware"
	"github.com/sakhi-health/toxiscan/pkg/types/toxicity"
)

func newTestRouter(t *testing.T, checkers ...handlers.HealthChecker) *gin.Engine {
	t.Helper()

	res := resolver.New(chemical.NewBuiltinRegistry(), nil)
	kn := knowledge.NewClient(res, hazard.NewBuiltinKnowledgeBase(), nil)
	scorer := scoring.NewScorer(kn, nil)

	return NewRouter(RouterConfig{
		ToxicityHandler: handlers.NewToxicityHandler(scorer, nil),
		ChemicalHandler: handlers.NewChemicalHandler(res, kn, nil),
		HealthHandler:   handlers.NewHealthHandler("test", checkers...),
		Mode:            gin.TestMode,
	})
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestScoreEndpoint(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/v1/toxicity/score", scoring.Request{
		Ingredients: []toxicity.Ingredient{
			{Name: "bpa"},
			{Name: "water"},
		},
		ProductCategory: "cosmetic",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var score toxicity.Score
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &score))
	require.Len(t, score.FlaggedChemicals, 1)
	assert.Equal(t, "80-05-7", score.FlaggedChemicals[0].CASNumber)
	assert.Less(t, score.OverallScore, 100.0)
	assert.NotEmpty(t, score.Recommendations)
	assert.Len(t, score.UserWarnings, 4)
}

func TestScoreEndpoint_EmptyIngredients(t *testing.T) {
	r := newTestRouter(t)

	// An empty list is a scoreable product with nothing to flag.
	rec := doJSON(t, r, http.MethodPost, "/api/v1/toxicity/score", scoring.Request{})
	require.Equal(t, http.StatusOK, rec.Code)

	var score toxicity.Score
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &score))
	assert.Equal(t, 100.0, score.OverallScore)
	assert.Equal(t, toxicity.RiskLow, score.RiskLevel)
	assert.Empty(t, score.FlaggedChemicals)
	assert.Len(t, score.UserWarnings, 3)
}

func TestScoreEndpoint_MalformedBody(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/toxicity/score", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResolveEndpoint(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/v1/chemicals/resolve", handlers.ResolveRequest{Name: "Methyl Paraben"})
	require.Equal(t, http.StatusOK, rec.Code)

	var res resolver.Resolution
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotNil(t, res.Identity)
	assert.Equal(t, "99-76-3", res.Identity.CASNumber)
	assert.Equal(t, resolver.ConfidenceRegistry, res.Confidence)
}

func TestResolveEndpoint_NotFound(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/v1/chemicals/resolve", handlers.ResolveRequest{Name: "completely unknown substance xq"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "CHEM_003", resp.Code)
}

func TestHazardEndpoint(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/api/v1/chemicals/80-05-7/hazard", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var hr toxicity.HazardRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hr))
	assert.Equal(t, "Bisphenol A (BPA)", hr.Name)
	assert.InDelta(t, 85.0, hr.RiskScore, 1e-9)
}

func TestHazardEndpoint_InvalidCAS(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/api/v1/chemicals/not-a-cas/hazard", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHazardEndpoint_UnknownChemical(t *testing.T) {
	r := newTestRouter(t)

	// Valid CAS format but not in the curated table.
	rec := doJSON(t, r, http.MethodGet, "/api/v1/chemicals/7732-18-5/hazard", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type fakeChecker struct {
	name string
	err  error
}

func (f fakeChecker) Name() string                { return f.name }
func (f fakeChecker) Check(context.Context) error { return f.err }

func TestHealthEndpoints(t *testing.T) {
	r := newTestRouter(t, fakeChecker{name: "redis"})

	rec := doJSON(t, r, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alive")

	rec = doJSON(t, r, http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyz_UnhealthyComponent(t *testing.T) {
	r := newTestRouter(t, fakeChecker{name: "postgres", err: fmt.Errorf("connection refused")})

	rec := doJSON(t, r, http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_ready")
}

func TestRequestIDEcho(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(middleware.RequestIDHeader, "fixed-id")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "fixed-id", rec.Header().Get(middleware.RequestIDHeader))

	// A request without an inbound ID gets a generated one.
	rec = doJSON(t, r, http.MethodGet, "/healthz", nil)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}
