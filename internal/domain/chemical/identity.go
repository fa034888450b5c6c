// Package chemical implements the chemical-identity side of the engine:
// name normalization tuned for label nomenclature, the Bio-SIM fuzzy
// similarity function, CAS registry number handling, and the curated
// name-to-CAS registry used as the last resolution tier.
package chemical

import (
	"crypto/md5"
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/sakhi-health/toxiscan/pkg/errors"
)

// casPattern is the canonical CAS registry number format: 2-7 digits, 2
// digits, 1 check digit, hyphen-separated.
var casPattern = regexp.MustCompile(`^\d{2,7}-\d{2}-\d$`)

// Identity is the canonical resolution result for an ingredient name.
type Identity struct {
	CASNumber   string   `json:"cas_number,omitempty"`
	SMILES      string   `json:"smiles,omitempty"`
	InChIKey    string   `json:"inchi_key,omitempty"`
	CommonNames []string `json:"common_names,omitempty"`
}

// HasCAS reports whether the identity carries a CAS number.
func (i *Identity) HasCAS() bool {
	return i != nil && i.CASNumber != ""
}

// IsCASNumber reports whether s matches the canonical CAS format.
func IsCASNumber(s string) bool {
	return casPattern.MatchString(s)
}

// ValidateCAS returns a validation error unless s is a well-formed CAS number.
func ValidateCAS(s string) error {
	if !IsCASNumber(s) {
		return errors.New(errors.ErrCodeChemicalInvalidCAS, "invalid CAS registry number").WithDetail(s)
	}
	return nil
}

// FindCAS returns the first well-formed CAS number in candidates, or "" if
// none match.  Synonym lists from external lookup services mix trade names,
// IUPAC names and registry numbers; this picks out the registry number.
func FindCAS(candidates []string) string {
	for _, c := range candidates {
		if IsCASNumber(c) {
			return c
		}
	}
	return ""
}

// CacheKey derives the identity-cache key for an ingredient name.  Keyed on
// the lowercased raw name, not the normalized form, so repeated scans of the
// same label text hit the cache without re-running normalization.
func CacheKey(name string) string {
	sum := md5.Sum([]byte(strings.ToLower(name)))
	return "chem:entity:" + hex.EncodeToString(sum[:])
}
