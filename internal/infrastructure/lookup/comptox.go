package lookup

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/sakhi-health/toxiscan/internal/domain/chemical"
	"github.com/sakhi-health/toxiscan/internal/infrastructure/monitoring/logging"
	"github.com/sakhi-health/toxiscan/pkg/errors"
)

const (
	comptoxDefaultBaseURL = "https://api-ccte.epa.gov"
	comptoxConfidence     = 0.85
)

// CompTox resolves ingredient names through the EPA CompTox chemical
// search API.  The API requires a key; a source built without one reports
// every lookup as a miss rather than failing the tier.
type CompTox struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  logging.Logger
}

// CompToxOption configures a CompTox source.
type CompToxOption func(*CompTox)

// WithCompToxBaseURL points the source at a different endpoint.
func WithCompToxBaseURL(u string) CompToxOption {
	return func(c *CompTox) { c.baseURL = u }
}

// WithCompToxHTTPClient replaces the HTTP client.
func WithCompToxHTTPClient(hc *http.Client) CompToxOption {
	return func(c *CompTox) { c.client = hc }
}

// NewCompTox builds a CompTox lookup source with the given API key.
func NewCompTox(apiKey string, logger logging.Logger, opts ...CompToxOption) *CompTox {
	c := &CompTox{
		baseURL: comptoxDefaultBaseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: defaultHTTPTimeout},
		logger:  logger,
	}
	if c.logger == nil {
		c.logger = logging.NewNopLogger()
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name implements the resolution source interface.
func (c *CompTox) Name() string { return "comptox" }

// Confidence implements the resolution source interface.
func (c *CompTox) Confidence() float64 { return comptoxConfidence }

type comptoxResult struct {
	CASRN         string `json:"casrn"`
	DTXSID        string `json:"dtxsid"`
	PreferredName string `json:"preferredName"`
	SMILES        string `json:"smiles"`
}

// Resolve searches for an exact name match and returns the first result
// carrying a well-formed CAS number.
func (c *CompTox) Resolve(ctx context.Context, name string) (*chemical.Identity, error) {
	if c.apiKey == "" {
		c.logger.Debug("comptox api key not configured, skipping tier")
		return nil, nil
	}

	searchURL := c.baseURL + "/chemical/search/equal/" + url.PathEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "build comptox request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDataSourceUnavailable, "comptox request failed")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, errors.New(errors.ErrCodeDataSourceAuthFailed, "comptox rejected the api key")
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, errors.New(errors.ErrCodeDataSourceRateLimited, "comptox throttled the request")
	default:
		return nil, errors.Newf(errors.ErrCodeDataSourceUnavailable, "comptox returned status %d", resp.StatusCode)
	}

	var results []comptoxResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDataSourceParseError, "decode comptox response")
	}

	for _, r := range results {
		if !chemical.IsCASNumber(r.CASRN) {
			continue
		}
		names := []string{name}
		if r.PreferredName != "" {
			names = append(names, r.PreferredName)
		}
		return &chemical.Identity{
			CASNumber:   r.CASRN,
			SMILES:      r.SMILES,
			CommonNames: names,
		}, nil
	}
	return nil, nil
}
