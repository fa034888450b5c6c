package chemical

import (
	"regexp"
	"strings"
)

var (
	// noiseTokens matches chemical-nomenclature noise as whole words: colour
	// index prefixes (CI), US colorant certifications (FD&C, D&C) and EU
	// E-number codes.
	noiseTokens = regexp.MustCompile(`\b(ci|fd&c|d&c|e\d+)\b`)

	// disallowedChars strips everything except letters, digits, whitespace,
	// hyphens and parentheses.  Hyphens and parentheses are structurally
	// significant in chemical names (di(2-ethylhexyl) phthalate).
	disallowedChars = regexp.MustCompile(`[^a-z0-9\s\-\(\)]`)
)

// regionalNames maps regional and traditional ingredient names, plus common
// spelled-out forms, to the standard chemical name used by the curated
// tables.  Label transcriptions from the field use these heavily.
var regionalNames = map[string]string{
	// Parabens
	"methyl paraben": "methylparaben",
	"ethyl paraben":  "ethylparaben",
	"propyl paraben": "propylparaben",
	"butyl paraben":  "butylparaben",

	// Phthalates
	"diethyl phthalate":          "dep",
	"dibutyl phthalate":          "dbp",
	"di(2-ethylhexyl) phthalate": "dehp",
	"diisononyl phthalate":       "dinp",
	"diisodecyl phthalate":       "didp",

	// Bisphenols
	"bisphenol a": "bpa",
	"bisphenol s": "bps",
	"bisphenol f": "bpf",

	// Traditional cosmetic names
	"kumkum":  "vermillion",
	"sindoor": "vermillion",
	"kajal":   "kohl",
	"surma":   "kohl",
}

// NormalizeName canonicalizes an ingredient name for matching and caching:
// lowercase and trim, strip nomenclature noise tokens, drop characters
// outside the chemical-name alphabet, collapse whitespace, and finally map
// regional/traditional names to their standard chemical name.
//
// NormalizeName is a pure function; it is applied before every lookup tier
// and before any cache access.
func NormalizeName(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = noiseTokens.ReplaceAllString(normalized, "")
	normalized = disallowedChars.ReplaceAllString(normalized, "")
	normalized = strings.Join(strings.Fields(normalized), " ")

	if mapped, ok := regionalNames[normalized]; ok {
		return mapped
	}
	return normalized
}
