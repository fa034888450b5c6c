// Package resolver implements the tiered chemical entity resolution
// pipeline: cache, external lookup services in priority order, then the
// curated registry with exact and fuzzy matching.  Tiers short-circuit on
// the first hit; a tier failure is logged and skipped, never fatal.
package resolver

import (
	"context"
	"time"

	"github.com/sakhi-health/toxiscan/internal/domain/chemical"
	"github.com/sakhi-health/toxiscan/internal/infrastructure/monitoring/logging"
)

// Tier confidence levels.  Cached entries were resolved before, so they
// carry full confidence; the curated registry is authoritative but matches
// on names alone, so it ranks below the structure-aware services.
const (
	ConfidenceCache    = 1.0
	ConfidenceRegistry = 0.7
)

// Default TTL for cached resolutions.
const DefaultCacheTTL = 7 * 24 * time.Hour

// Cache is the subset of cache behavior the pipeline needs.  Get reports
// whether the key was present and decodes into dest on a hit.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Source is one external lookup tier.  Resolve returns (nil, nil) on a
// clean miss; errors mean the service itself failed.
type Source interface {
	Name() string
	Confidence() float64
	Resolve(ctx context.Context, name string) (*chemical.Identity, error)
}

// Observer receives per-tier outcomes for metrics.  Outcome is one of
// "hit", "miss" or "error".
type Observer interface {
	ResolutionTier(tier, outcome string)
}

type nopObserver struct{}

func (nopObserver) ResolutionTier(string, string) {}

// Resolution is the outcome of a successful pipeline run.
type Resolution struct {
	Identity *chemical.Identity `json:"identity"`
	// Source names the tier that produced the identity ("cache",
	// "pubchem", "comptox", "curated_registry").
	Source     string  `json:"source"`
	Confidence float64 `json:"confidence"`
	// MatchedName is set when the registry fuzzy matcher resolved the
	// name through a similar known entry.
	MatchedName string `json:"matched_name,omitempty"`
}

// Resolver runs the tiered pipeline.  The zero value is not usable; build
// one with New.
type Resolver struct {
	cache    Cache
	sources  []Source
	registry chemical.Registry
	observer Observer
	logger   logging.Logger
	cacheTTL time.Duration
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithCache enables resolution caching.
func WithCache(c Cache) Option {
	return func(r *Resolver) { r.cache = c }
}

// WithSources sets the external lookup tiers, tried in the given order.
func WithSources(sources ...Source) Option {
	return func(r *Resolver) { r.sources = sources }
}

// WithObserver installs a metrics observer.
func WithObserver(o Observer) Option {
	return func(r *Resolver) { r.observer = o }
}

// WithCacheTTL overrides the cached-resolution TTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(r *Resolver) { r.cacheTTL = ttl }
}

// New builds a Resolver over the given curated registry.  With no options
// the pipeline is registry-only and uncached.
func New(registry chemical.Registry, logger logging.Logger, opts ...Option) *Resolver {
	r := &Resolver{
		registry: registry,
		observer: nopObserver{},
		logger:   logger,
		cacheTTL: DefaultCacheTTL,
	}
	if r.logger == nil {
		r.logger = logging.NewNopLogger()
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve runs the pipeline for one ingredient name.  It returns
// (nil, nil) when every tier misses: an unresolvable name is an expected
// outcome, not an error, and that includes names that normalize to
// nothing.  A tier failure is logged and the remaining tiers run, so the
// pipeline never surfaces an error for arbitrary string input.
func (r *Resolver) Resolve(ctx context.Context, name string) (*Resolution, error) {
	normalized := chemical.NormalizeName(name)
	if normalized == "" {
		r.logger.Debug("name empty after normalization", logging.String("name", name))
		return nil, nil
	}

	if res, ok := r.fromCache(ctx, name); ok {
		return res, nil
	}

	for _, src := range r.sources {
		identity, err := src.Resolve(ctx, normalized)
		if err != nil {
			// A down service must not block the remaining tiers.
			r.observer.ResolutionTier(src.Name(), "error")
			r.logger.Warn("lookup source failed",
				logging.String("source", src.Name()),
				logging.String("name", normalized),
				logging.Err(err),
			)
			continue
		}
		if identity == nil {
			r.observer.ResolutionTier(src.Name(), "miss")
			continue
		}
		r.observer.ResolutionTier(src.Name(), "hit")
		res := &Resolution{Identity: identity, Source: src.Name(), Confidence: src.Confidence()}
		r.toCache(ctx, name, res)
		return res, nil
	}

	if res := r.fromRegistry(ctx, normalized); res != nil {
		r.toCache(ctx, name, res)
		return res, nil
	}

	r.logger.Debug("name unresolved by all tiers", logging.String("name", normalized))
	return nil, nil
}

func (r *Resolver) fromCache(ctx context.Context, name string) (*Resolution, bool) {
	if r.cache == nil {
		return nil, false
	}
	var cached Resolution
	found, err := r.cache.Get(ctx, chemical.CacheKey(name), &cached)
	if err != nil {
		r.observer.ResolutionTier("cache", "error")
		r.logger.Warn("resolution cache read failed", logging.String("name", name), logging.Err(err))
		return nil, false
	}
	if !found || cached.Identity == nil {
		r.observer.ResolutionTier("cache", "miss")
		return nil, false
	}
	r.observer.ResolutionTier("cache", "hit")
	cached.Source = "cache"
	cached.Confidence = ConfidenceCache
	return &cached, true
}

func (r *Resolver) toCache(ctx context.Context, name string, res *Resolution) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Set(ctx, chemical.CacheKey(name), res, r.cacheTTL); err != nil {
		r.logger.Warn("resolution cache write failed", logging.String("name", name), logging.Err(err))
	}
}

// fromRegistry tries exact then fuzzy registry matching.  A registry
// failure is treated like any other tier failure: logged and reported to
// the observer, with nil standing in for no match.
func (r *Resolver) fromRegistry(ctx context.Context, normalized string) *Resolution {
	cas, ok, err := r.registry.Lookup(ctx, normalized)
	if err != nil {
		r.observer.ResolutionTier("curated_registry", "error")
		r.logger.Warn("registry lookup failed", logging.String("name", normalized), logging.Err(err))
		return nil
	}
	if ok {
		r.observer.ResolutionTier("curated_registry", "hit")
		return &Resolution{
			Identity:   &chemical.Identity{CASNumber: cas},
			Source:     "curated_registry",
			Confidence: ConfidenceRegistry,
		}
	}

	matched, cas, score, err := chemical.FuzzyLookup(ctx, r.registry, normalized)
	if err != nil {
		r.observer.ResolutionTier("curated_registry", "error")
		r.logger.Warn("registry fuzzy scan failed", logging.String("name", normalized), logging.Err(err))
		return nil
	}
	if matched == "" {
		r.observer.ResolutionTier("curated_registry", "miss")
		return nil
	}

	r.observer.ResolutionTier("curated_registry", "hit")
	r.logger.Debug("fuzzy registry match",
		logging.String("name", normalized),
		logging.String("matched", matched),
		logging.Float64("similarity", score),
	)
	return &Resolution{
		Identity:    &chemical.Identity{CASNumber: cas, CommonNames: []string{matched}},
		Source:      "curated_registry",
		Confidence:  ConfidenceRegistry,
		MatchedName: matched,
	}
}
