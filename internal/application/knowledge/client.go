// Package knowledge joins entity resolution to the EDC hazard table: it
// turns a label ingredient into a hazard record, or into nothing when the
// ingredient is either unresolvable or not a known EDC.
package knowledge

import (
	"context"
	"time"

	"github.com/sakhi-health/toxiscan/internal/application/resolver"
	"github.com/sakhi-health/toxiscan/internal/domain/chemical"
	"github.com/sakhi-health/toxiscan/internal/domain/hazard"
	"github.com/sakhi-health/toxiscan/internal/infrastructure/monitoring/logging"
	"github.com/sakhi-health/toxiscan/pkg/types/toxicity"
)

// Default TTL for cached hazard records.
const DefaultCacheTTL = 7 * 24 * time.Hour

// hazardCacheKey derives the hazard-record cache key for a CAS number.
func hazardCacheKey(casNumber string) string {
	return "chem:info:" + casNumber
}

// EntityResolver is the resolution pipeline as the client sees it.
type EntityResolver interface {
	Resolve(ctx context.Context, name string) (*resolver.Resolution, error)
}

// Client answers "is this ingredient a known EDC, and how bad is it".
type Client struct {
	resolver EntityResolver
	kb       hazard.KnowledgeBase
	cache    resolver.Cache
	logger   logging.Logger
	cacheTTL time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithCache enables hazard-record caching keyed by CAS number.
func WithCache(c resolver.Cache) Option {
	return func(cl *Client) { cl.cache = c }
}

// WithCacheTTL overrides the cached hazard-record TTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(cl *Client) { cl.cacheTTL = ttl }
}

// NewClient builds a Client over a resolution pipeline and a hazard
// knowledge base.
func NewClient(res EntityResolver, kb hazard.KnowledgeBase, logger logging.Logger, opts ...Option) *Client {
	c := &Client{
		resolver: res,
		kb:       kb,
		logger:   logger,
		cacheTTL: DefaultCacheTTL,
	}
	if c.logger == nil {
		c.logger = logging.NewNopLogger()
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HazardFor returns the hazard record for one ingredient, or (nil, nil)
// when the ingredient either cannot be resolved or is not a known EDC.
// The record's Confidence is the resolution confidence; an ingredient
// arriving with its own valid CAS number skips resolution entirely and
// carries full confidence.
func (c *Client) HazardFor(ctx context.Context, ing toxicity.Ingredient) (*toxicity.HazardRecord, error) {
	casNumber := ""
	confidence := 1.0

	if chemical.IsCASNumber(ing.CASNumber) {
		casNumber = ing.CASNumber
	} else {
		res, err := c.resolver.Resolve(ctx, ing.Name)
		if err != nil {
			return nil, err
		}
		if res == nil || !res.Identity.HasCAS() {
			return nil, nil
		}
		casNumber = res.Identity.CASNumber
		confidence = res.Confidence
	}

	rec, err := c.lookupHazard(ctx, casNumber)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	rec.Confidence = confidence
	return rec, nil
}

func (c *Client) lookupHazard(ctx context.Context, casNumber string) (*toxicity.HazardRecord, error) {
	if c.cache != nil {
		var cached toxicity.HazardRecord
		found, err := c.cache.Get(ctx, hazardCacheKey(casNumber), &cached)
		if err != nil {
			c.logger.Warn("hazard cache read failed", logging.String("cas", casNumber), logging.Err(err))
		} else if found {
			return &cached, nil
		}
	}

	rec, ok, err := c.kb.ByCAS(ctx, casNumber)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, hazardCacheKey(casNumber), rec, c.cacheTTL); err != nil {
			c.logger.Warn("hazard cache write failed", logging.String("cas", casNumber), logging.Err(err))
		}
	}
	return rec, nil
}
