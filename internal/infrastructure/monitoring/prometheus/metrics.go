package prometheus

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sakhi-health/toxiscan/pkg/types/toxicity"
)

// AppMetrics holds every metric the engine emits.
type AppMetrics struct {
	// HTTP layer
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPActiveRequests  *prometheus.GaugeVec

	// Resolution pipeline
	ResolutionTierTotal *prometheus.CounterVec

	// Scoring
	ProductsScoredTotal *prometheus.CounterVec
	ScoringDuration     *prometheus.HistogramVec
	FlaggedPerProduct   *prometheus.HistogramVec

	// Infrastructure
	CacheHitsTotal    *prometheus.CounterVec
	CacheMissesTotal  *prometheus.CounterVec
	HealthCheckStatus *prometheus.GaugeVec
	ErrorsTotal       *prometheus.CounterVec
}

var scoringDurationBuckets = []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}

// NewAppMetrics registers the application metrics on the collector.
func NewAppMetrics(c *Collector) *AppMetrics {
	return &AppMetrics{
		HTTPRequestsTotal:   c.Counter("http_requests_total", "Total HTTP requests", "method", "path", "status_code"),
		HTTPRequestDuration: c.Histogram("http_request_duration_seconds", "HTTP request duration", nil, "method", "path"),
		HTTPActiveRequests:  c.Gauge("http_active_requests", "In-flight HTTP requests", "method"),

		ResolutionTierTotal: c.Counter("resolution_tier_total", "Resolution attempts per tier and outcome", "tier", "outcome"),

		ProductsScoredTotal: c.Counter("products_scored_total", "Products scored, by risk level", "risk_level"),
		ScoringDuration:     c.Histogram("scoring_duration_seconds", "Full product scoring duration", scoringDurationBuckets),
		FlaggedPerProduct:   c.Histogram("flagged_chemicals_per_product", "Flagged EDC count per scored product", []float64{0, 1, 2, 3, 5, 10, 20}),

		CacheHitsTotal:    c.Counter("cache_hits_total", "Cache hits", "cache"),
		CacheMissesTotal:  c.Counter("cache_misses_total", "Cache misses", "cache"),
		HealthCheckStatus: c.Gauge("health_check_status", "Health check status (1=up, 0=down)", "component"),
		ErrorsTotal:       c.Counter("errors_total", "Total errors", "component", "error_type"),
	}
}

// RecordHTTPRequest records one completed HTTP request.
func (m *AppMetrics) RecordHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordCacheAccess records a cache hit or miss.
func (m *AppMetrics) RecordCacheAccess(cache string, hit bool) {
	if hit {
		m.CacheHitsTotal.WithLabelValues(cache).Inc()
		return
	}
	m.CacheMissesTotal.WithLabelValues(cache).Inc()
}

// SetHealthStatus publishes a component health probe result.
func (m *AppMetrics) SetHealthStatus(component string, up bool) {
	v := 0.0
	if up {
		v = 1.0
	}
	m.HealthCheckStatus.WithLabelValues(component).Set(v)
}

// ResolutionTier implements the resolution pipeline's observer contract.
func (m *AppMetrics) ResolutionTier(tier, outcome string) {
	m.ResolutionTierTotal.WithLabelValues(tier, outcome).Inc()
	if tier == "cache" {
		m.RecordCacheAccess("resolution", outcome == "hit")
	}
}

// ProductScored implements the scorer's observer contract.
func (m *AppMetrics) ProductScored(riskLevel toxicity.RiskLevel, flagged int, duration time.Duration) {
	m.ProductsScoredTotal.WithLabelValues(riskLevel.String()).Inc()
	m.ScoringDuration.WithLabelValues().Observe(duration.Seconds())
	m.FlaggedPerProduct.WithLabelValues().Observe(float64(flagged))
}
