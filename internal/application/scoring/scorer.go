// Package scoring orchestrates a full product assessment: hazard lookup
// for every ingredient with bounded concurrency, score aggregation, and
// the advisory text attached to the result.
package scoring

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	domaintox "github.com/sakhi-health/toxiscan/internal/domain/toxicity"
	"github.com/sakhi-health/toxiscan/internal/infrastructure/monitoring/logging"
	"github.com/sakhi-health/toxiscan/pkg/types/toxicity"
)

// DefaultConcurrency bounds parallel hazard lookups per request.
const DefaultConcurrency = 8

// alternativesLimit caps how many alternative products are requested.
const alternativesLimit = 5

// HazardLookup answers per-ingredient hazard queries; (nil, nil) means the
// ingredient is unresolvable or not a known EDC.
type HazardLookup interface {
	HazardFor(ctx context.Context, ing toxicity.Ingredient) (*toxicity.HazardRecord, error)
}

// AlternativesFinder is the external alternative-product recommender.
type AlternativesFinder interface {
	FindAlternatives(ctx context.Context, query AlternativesQuery) ([]map[string]interface{}, error)
}

// AlternativesQuery carries everything the recommender ranks on.
type AlternativesQuery struct {
	ProductCategory string
	CurrentScore    float64
	FlaggedEDCTypes []toxicity.EDCType
	Region          string
	PricePreference string
	Limit           int
}

// Request is one product to assess.
type Request struct {
	Ingredients         []toxicity.Ingredient `json:"ingredients"`
	ProductCategory     string                `json:"product_category,omitempty"`
	IncludeAlternatives bool                  `json:"include_alternatives,omitempty"`
	Region              string                `json:"region,omitempty"`
	PricePreference     string                `json:"price_preference,omitempty"`
}

// Observer receives scoring telemetry.
type Observer interface {
	ProductScored(riskLevel toxicity.RiskLevel, flagged int, duration time.Duration)
}

type nopObserver struct{}

func (nopObserver) ProductScored(toxicity.RiskLevel, int, time.Duration) {}

// Scorer runs assessments.  Build one with NewScorer.
type Scorer struct {
	lookup       HazardLookup
	alternatives AlternativesFinder
	observer     Observer
	logger       logging.Logger
	concurrency  int
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithAlternatives installs the alternative-product recommender.
func WithAlternatives(f AlternativesFinder) Option {
	return func(s *Scorer) { s.alternatives = f }
}

// WithObserver installs a metrics observer.
func WithObserver(o Observer) Option {
	return func(s *Scorer) { s.observer = o }
}

// WithConcurrency overrides the per-request lookup parallelism.
func WithConcurrency(n int) Option {
	return func(s *Scorer) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// NewScorer builds a Scorer over a hazard lookup.
func NewScorer(lookup HazardLookup, logger logging.Logger, opts ...Option) *Scorer {
	s := &Scorer{
		lookup:      lookup,
		observer:    nopObserver{},
		logger:      logger,
		concurrency: DefaultConcurrency,
	}
	if s.logger == nil {
		s.logger = logging.NewNopLogger()
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScoreProduct assesses one product.  Ingredient lookups run concurrently
// but the result is deterministic: flagged chemicals and warnings follow
// the input ingredient order.  An empty ingredient list is a valid product
// with nothing to flag and scores a perfect 100.
func (s *Scorer) ScoreProduct(ctx context.Context, req Request) (*toxicity.Score, error) {
	start := time.Now()

	records := make([]*toxicity.HazardRecord, len(req.Ingredients))
	unresolved := make([]bool, len(req.Ingredients))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, ing := range req.Ingredients {
		i, ing := i, ing
		g.Go(func() error {
			rec, err := s.lookup.HazardFor(gctx, ing)
			if err != nil {
				// Treat a failed lookup like an unresolvable name so one
				// flaky ingredient cannot sink the whole assessment.
				s.logger.Warn("hazard lookup failed",
					logging.String("ingredient", ing.Name),
					logging.Err(err),
				)
				unresolved[i] = true
				return nil
			}
			if rec == nil {
				unresolved[i] = true
			}
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var flagged []*toxicity.HazardRecord
	var lowConfidence []string
	var unresolvedNames []string
	for i, rec := range records {
		if rec == nil {
			if unresolved[i] {
				unresolvedNames = append(unresolvedNames, req.Ingredients[i].Name)
			}
			continue
		}
		flagged = append(flagged, rec)
		if rec.Confidence < domaintox.ConfidenceThreshold {
			lowConfidence = append(lowConfidence, domaintox.LowConfidenceNote(req.Ingredients[i].Name, rec.Confidence))
		}
		s.logger.Info("flagged EDC",
			logging.String("chemical", rec.Name),
			logging.Float64("risk_score", rec.RiskScore),
			logging.Float64("confidence", rec.Confidence),
		)
	}

	overall := domaintox.OverallScore(flagged, len(req.Ingredients))
	hormonal := domaintox.HormonalHealthScore(flagged, len(req.Ingredients))
	riskLevel := domaintox.ClassifyRiskLevel(overall)

	score := &toxicity.Score{
		OverallScore:          overall,
		HormonalHealthScore:   hormonal,
		RiskLevel:             riskLevel,
		FlaggedChemicals:      flagged,
		Recommendations:       domaintox.Recommendations(flagged, riskLevel, req.ProductCategory),
		ConfidenceWarnings:    domaintox.ConfidenceWarnings(lowConfidence),
		UserWarnings:          domaintox.UserWarnings(len(flagged) > 0),
		UnresolvedIngredients: unresolvedNames,
	}

	if req.IncludeAlternatives && s.alternatives != nil && req.ProductCategory != "" {
		score.Alternatives = s.findAlternatives(ctx, req, hormonal, flagged)
	}

	s.observer.ProductScored(riskLevel, len(flagged), time.Since(start))
	s.logger.Info("scoring complete",
		logging.Float64("overall_score", overall),
		logging.Float64("hormonal_health_score", hormonal),
		logging.String("risk_level", riskLevel.String()),
		logging.Int("flagged", len(flagged)),
		logging.Int("ingredients", len(req.Ingredients)),
	)
	return score, nil
}

// findAlternatives asks the recommender for safer products.  Failures
// degrade to no suggestions; the score itself is already complete.
func (s *Scorer) findAlternatives(ctx context.Context, req Request, hormonalScore float64, flagged []*toxicity.HazardRecord) []map[string]interface{} {
	seen := make(map[toxicity.EDCType]bool)
	var edcTypes []toxicity.EDCType
	for _, rec := range flagged {
		for _, t := range rec.EDCTypes {
			if !seen[t] {
				seen[t] = true
				edcTypes = append(edcTypes, t)
			}
		}
	}

	alts, err := s.alternatives.FindAlternatives(ctx, AlternativesQuery{
		ProductCategory: req.ProductCategory,
		CurrentScore:    hormonalScore,
		FlaggedEDCTypes: edcTypes,
		Region:          req.Region,
		PricePreference: req.PricePreference,
		Limit:           alternativesLimit,
	})
	if err != nil {
		s.logger.Error("alternative lookup failed",
			logging.String("category", req.ProductCategory),
			logging.Err(err),
		)
		return nil
	}
	return alts
}
