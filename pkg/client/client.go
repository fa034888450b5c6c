// Package client provides a Go client for the toxiscan HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sakhi-health/toxiscan/pkg/errors"
	"github.com/sakhi-health/toxiscan/pkg/types/toxicity"
)

const defaultTimeout = 30 * time.Second

// Client talks to a toxiscan API server.
type Client struct {
	baseURL string
	hc      *http.Client
}

// Option customises the Client.
type Option func(*Client)

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.hc.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// NewClient builds a Client for the server at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("client: base URL is required")
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ScoreRequest is the body for the scoring endpoint.
type ScoreRequest struct {
	Ingredients         []toxicity.Ingredient `json:"ingredients"`
	ProductCategory     string                `json:"product_category,omitempty"`
	IncludeAlternatives bool                  `json:"include_alternatives,omitempty"`
	Region              string                `json:"region,omitempty"`
	PricePreference     string                `json:"price_preference,omitempty"`
}

// Identity is a resolved chemical identity.
type Identity struct {
	CASNumber   string   `json:"cas_number"`
	SMILES      string   `json:"smiles,omitempty"`
	InChIKey    string   `json:"inchi_key,omitempty"`
	CommonNames []string `json:"common_names,omitempty"`
}

// Resolution is the result of resolving an ingredient name.
type Resolution struct {
	Identity    *Identity `json:"identity"`
	Source      string    `json:"source"`
	Confidence  float64   `json:"confidence"`
	MatchedName string    `json:"matched_name,omitempty"`
}

// ScoreProduct scores an ingredient list.
func (c *Client) ScoreProduct(ctx context.Context, req ScoreRequest) (*toxicity.Score, error) {
	var score toxicity.Score
	if err := c.post(ctx, "/api/v1/toxicity/score", req, &score); err != nil {
		return nil, err
	}
	return &score, nil
}

// ResolveChemical resolves a single ingredient name.  An unknown name
// returns an ErrCodeChemicalNotResolved error.
func (c *Client) ResolveChemical(ctx context.Context, name string) (*Resolution, error) {
	var res Resolution
	body := map[string]string{"name": name}
	if err := c.post(ctx, "/api/v1/chemicals/resolve", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Hazard fetches the hazard record for a CAS registry number.
func (c *Client) Hazard(ctx context.Context, casNumber string) (*toxicity.HazardRecord, error) {
	var rec toxicity.HazardRecord
	path := "/api/v1/chemicals/" + url.PathEscape(casNumber) + "/hazard"
	if err := c.get(ctx, path, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *Client) post(ctx context.Context, path string, body, dest interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "encode request body")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, dest)
}

func (c *Client) get(ctx context.Context, path string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "build request")
	}
	return c.do(req, dest)
}

// errorResponse mirrors the server's error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func (c *Client) do(req *http.Request, dest interface{}) error {
	resp, err := c.hc.Do(req)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeServiceUnavailable, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var er errorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&er); decodeErr == nil && er.Code != "" {
			appErr := errors.New(errors.ErrorCode(er.Code), er.Message)
			if er.Detail != "" {
				appErr = appErr.WithDetail(er.Detail)
			}
			return appErr
		}
		return errors.Newf(errors.ErrCodeInternal, "unexpected status %d", resp.StatusCode)
	}

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "decode response body")
	}
	return nil
}
