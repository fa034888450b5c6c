// Package lookup implements the external chemical lookup services used as
// resolution tiers: the PubChem PUG REST API and the EPA CompTox chemical
// search API.
package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sakhi-health/toxiscan/internal/domain/chemical"
	"github.com/sakhi-health/toxiscan/internal/infrastructure/monitoring/logging"
	"github.com/sakhi-health/toxiscan/pkg/errors"
)

const (
	pubchemDefaultBaseURL = "https://pubchem.ncbi.nlm.nih.gov/rest/pug"
	pubchemConfidence     = 0.9
	defaultHTTPTimeout    = 30 * time.Second
)

// PubChem resolves ingredient names through the PUG REST API: a name
// lookup for compound properties, then a synonym fetch on the compound id
// to pick out the CAS registry number.
type PubChem struct {
	baseURL string
	client  *http.Client
	logger  logging.Logger
}

// PubChemOption configures a PubChem source.
type PubChemOption func(*PubChem)

// WithPubChemBaseURL points the source at a different endpoint.
func WithPubChemBaseURL(u string) PubChemOption {
	return func(p *PubChem) { p.baseURL = u }
}

// WithPubChemHTTPClient replaces the HTTP client.
func WithPubChemHTTPClient(c *http.Client) PubChemOption {
	return func(p *PubChem) { p.client = c }
}

// NewPubChem builds a PubChem lookup source.
func NewPubChem(logger logging.Logger, opts ...PubChemOption) *PubChem {
	p := &PubChem{
		baseURL: pubchemDefaultBaseURL,
		client:  &http.Client{Timeout: defaultHTTPTimeout},
		logger:  logger,
	}
	if p.logger == nil {
		p.logger = logging.NewNopLogger()
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name implements the resolution source interface.
func (p *PubChem) Name() string { return "pubchem" }

// Confidence implements the resolution source interface.
func (p *PubChem) Confidence() float64 { return pubchemConfidence }

type pubchemPropertyResponse struct {
	PropertyTable struct {
		Properties []struct {
			CID              int64  `json:"CID"`
			IUPACName        string `json:"IUPACName"`
			MolecularFormula string `json:"MolecularFormula"`
			InChIKey         string `json:"InChIKey"`
		} `json:"Properties"`
	} `json:"PropertyTable"`
}

type pubchemSynonymsResponse struct {
	InformationList struct {
		Information []struct {
			CID     int64    `json:"CID"`
			Synonym []string `json:"Synonym"`
		} `json:"Information"`
	} `json:"InformationList"`
}

// Resolve looks up a normalized ingredient name.  Unknown names are a
// clean miss, and so is a known compound with no CAS number among its
// synonyms, so the later tiers still get a chance at it.
func (p *PubChem) Resolve(ctx context.Context, name string) (*chemical.Identity, error) {
	propURL := fmt.Sprintf("%s/compound/name/%s/property/IUPACName,MolecularFormula,InChIKey/JSON",
		p.baseURL, url.PathEscape(name))

	var props pubchemPropertyResponse
	found, err := p.getJSON(ctx, propURL, &props)
	if err != nil {
		return nil, err
	}
	if !found || len(props.PropertyTable.Properties) == 0 {
		return nil, nil
	}
	prop := props.PropertyTable.Properties[0]

	synURL := fmt.Sprintf("%s/compound/cid/%d/synonyms/JSON", p.baseURL, prop.CID)
	var syns pubchemSynonymsResponse
	found, err = p.getJSON(ctx, synURL, &syns)
	if err != nil {
		return nil, err
	}

	casNumber := ""
	if found && len(syns.InformationList.Information) > 0 {
		casNumber = chemical.FindCAS(syns.InformationList.Information[0].Synonym)
	}
	if casNumber == "" {
		p.logger.Debug("compound has no CAS synonym",
			logging.String("name", name),
			logging.Int("cid", int(prop.CID)),
		)
		return nil, nil
	}

	return &chemical.Identity{
		CASNumber:   casNumber,
		InChIKey:    prop.InChIKey,
		CommonNames: []string{name, prop.IUPACName},
	}, nil
}

// getJSON fetches and decodes one endpoint.  A 404 means the compound is
// unknown and reports found=false without an error.
func (p *PubChem) getJSON(ctx context.Context, rawURL string, dest interface{}) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return false, errors.Wrap(err, errors.ErrCodeInternal, "build pubchem request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return false, errors.Wrap(err, errors.ErrCodeDataSourceUnavailable, "pubchem request failed")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode == http.StatusServiceUnavailable || resp.StatusCode == http.StatusTooManyRequests:
		return false, errors.New(errors.ErrCodeDataSourceRateLimited, "pubchem throttled the request")
	default:
		return false, errors.Newf(errors.ErrCodeDataSourceUnavailable, "pubchem returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return false, errors.Wrap(err, errors.ErrCodeDataSourceParseError, "decode pubchem response")
	}
	return true, nil
}
