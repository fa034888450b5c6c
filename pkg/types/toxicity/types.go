// Package toxicity defines the public data types exchanged with the toxicity
// scoring engine: ingredient records as structured from a product label,
// hazard records for flagged endocrine-disrupting chemicals (EDCs), and the
// final per-product score.
package toxicity

import (
	"strings"

	"github.com/sakhi-health/toxiscan/pkg/errors"
)

// EDCType classifies an endocrine-disrupting chemical family.
type EDCType string

const (
	EDCTypeBPA            EDCType = "bpa"
	EDCTypePhthalate      EDCType = "phthalate"
	EDCTypeParaben        EDCType = "paraben"
	EDCTypeOrganochlorine EDCType = "organochlorine"
	EDCTypeHeavyMetal     EDCType = "heavy_metal"
	EDCTypePFAS           EDCType = "pfas"
	EDCTypeUnknown        EDCType = "unknown"
)

// IsValid reports whether the EDC type is one of the closed set of values.
func (t EDCType) IsValid() bool {
	switch t {
	case EDCTypeBPA, EDCTypePhthalate, EDCTypeParaben, EDCTypeOrganochlorine,
		EDCTypeHeavyMetal, EDCTypePFAS, EDCTypeUnknown:
		return true
	default:
		return false
	}
}

// String returns the wire representation of the EDC type.
func (t EDCType) String() string {
	return string(t)
}

// ParseEDCType validates a string supplied at the library boundary (query
// parameters, config) and converts it to an EDCType.  Unknown strings are a
// caller error, not a silent fallback to EDCTypeUnknown.
func ParseEDCType(s string) (EDCType, error) {
	t := EDCType(strings.ToLower(strings.TrimSpace(s)))
	if t.IsValid() {
		return t, nil
	}
	return "", errors.New(errors.ErrCodeEDCTypeInvalid, "unknown EDC type: "+s)
}

// RiskLevel classifies the overall score into a coarse risk bucket.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// String returns the wire representation of the risk level.
func (r RiskLevel) String() string {
	return string(r)
}

// Ingredient is one line item from a structured product label.  Instances are
// produced by the upstream label-extraction collaborator; this engine treats
// them as read-only and never persists them.
type Ingredient struct {
	Name           string   `json:"name"`
	AlternateNames []string `json:"alternate_names,omitempty"`
	// Concentration is free text as printed on the label ("5%"); labels in
	// the field rarely carry it.
	Concentration string `json:"concentration,omitempty"`
	CASNumber     string `json:"cas_number,omitempty"`
}

// RegulatoryStatus carries per-authority regulatory facts for a chemical.
type RegulatoryStatus struct {
	// FSSAIApproved is nil when the national scheme has no stated position.
	FSSAIApproved *bool  `json:"fssai_approved,omitempty"`
	FSSAILimit    string `json:"fssai_limit,omitempty"`
	EPAStatus     string `json:"epa_status,omitempty"`
	EUStatus      string `json:"eu_status,omitempty"`
}

// HazardRecord is the resolved, sourced toxicology profile for one chemical
// identity flagged as an EDC.
type HazardRecord struct {
	Name      string    `json:"name"`
	CASNumber string    `json:"cas_number"`
	EDCTypes  []EDCType `json:"edc_types"`
	// RiskScore is 0-100; higher means more hazardous.
	RiskScore     float64          `json:"risk_score"`
	HealthEffects []string         `json:"health_effects"`
	Regulatory    RegulatoryStatus `json:"regulatory_status"`
	// Sources lists the data-source identifiers this record was built from;
	// never empty for a well-formed record.
	Sources []string `json:"sources"`
	// Confidence is the name-resolution confidence (0-1) copied from the
	// entity resolution step, not a property of the toxicology data itself.
	Confidence float64 `json:"confidence"`
}

// Validate checks the record invariants: risk score and confidence ranges,
// non-empty EDC types and sources.
func (r *HazardRecord) Validate() error {
	if r.RiskScore < 0 || r.RiskScore > 100 {
		return errors.New(errors.ErrCodeHazardRecordInvalid, "risk score out of range [0,100]")
	}
	if r.Confidence < 0 || r.Confidence > 1 {
		return errors.New(errors.ErrCodeHazardRecordInvalid, "confidence out of range [0,1]")
	}
	if len(r.EDCTypes) == 0 {
		return errors.New(errors.ErrCodeHazardRecordInvalid, "record has no EDC types")
	}
	for _, t := range r.EDCTypes {
		if !t.IsValid() {
			return errors.New(errors.ErrCodeEDCTypeInvalid, "unknown EDC type: "+string(t))
		}
	}
	if len(r.Sources) == 0 {
		return errors.New(errors.ErrCodeHazardRecordInvalid, "record has no sources")
	}
	return nil
}

// Score is the final per-product toxicity assessment.  Scores are 0-100 with
// higher meaning safer; HormonalHealthScore is never above OverallScore.
type Score struct {
	OverallScore        float64         `json:"overall_score"`
	HormonalHealthScore float64         `json:"hormonal_health_score"`
	RiskLevel           RiskLevel       `json:"risk_level"`
	FlaggedChemicals    []*HazardRecord `json:"flagged_chemicals"`
	Recommendations     []string        `json:"recommendations"`
	ConfidenceWarnings  []string        `json:"confidence_warnings"`
	UserWarnings        []string        `json:"user_warnings"`
	// UnresolvedIngredients lists ingredient names that no resolution tier
	// could identify.  They contribute nothing to the score, so callers can
	// use this to distinguish "checked, safe" from "could not check".
	UnresolvedIngredients []string `json:"unresolved_ingredients,omitempty"`
	// Alternatives is an opaque, already-ranked list supplied verbatim by the
	// external alternative-product recommender when one is configured.
	Alternatives []map[string]interface{} `json:"alternatives,omitempty"`
}
