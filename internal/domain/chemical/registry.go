package chemical

import (
	"context"
	"sort"
)

// FuzzyMatchThreshold is the minimum Bio-SIM score for a registry fuzzy
// match to count as a resolution.
const FuzzyMatchThreshold = 0.85

// Registry maps normalized ingredient names to CAS registry numbers.  The
// builtin curated table backs it by default; a database-backed
// implementation can replace it without touching the resolution pipeline.
type Registry interface {
	// Lookup returns the CAS number for an exact normalized-name match.
	Lookup(ctx context.Context, name string) (string, bool, error)

	// Entries returns every known name to CAS pair, for fuzzy scanning.
	Entries(ctx context.Context) (map[string]string, error)
}

// builtinEntries is the curated offline name-to-CAS table.  It covers the
// common cosmetic and food-contact chemicals seen on labels in the field,
// including every chemical in the curated EDC hazard table, so resolution
// still works with all network lookups down.
var builtinEntries = map[string]string{
	"water":            "7732-18-5",
	"glycerin":         "56-81-5",
	"glycerol":         "56-81-5",
	"propylene glycol": "57-55-6",
	"methylparaben":    "99-76-3",
	"ethylparaben":     "120-47-8",
	"propylparaben":    "94-13-3",
	"butylparaben":     "94-26-8",
	"bpa":              "80-05-7",
	"bisphenol a":      "80-05-7",
	"dehp":             "117-81-7",
	"dbp":              "84-74-2",
	"dep":              "84-66-2",
	"lead":             "7439-92-1",
	"mercury":          "7439-97-6",
	"cadmium":          "7440-43-9",
	"arsenic":          "7440-38-2",
	"triclosan":        "3380-34-5",
	"triclocarban":     "101-20-2",
	"formaldehyde":     "50-00-0",
	"toluene":          "108-88-3",
	"benzene":          "71-43-2",
}

// builtinRegistry serves lookups from the compiled-in curated table.
type builtinRegistry struct{}

// NewBuiltinRegistry returns the compiled-in curated registry.
func NewBuiltinRegistry() Registry {
	return builtinRegistry{}
}

func (builtinRegistry) Lookup(_ context.Context, name string) (string, bool, error) {
	cas, ok := builtinEntries[NormalizeName(name)]
	return cas, ok, nil
}

func (builtinRegistry) Entries(_ context.Context) (map[string]string, error) {
	entries := make(map[string]string, len(builtinEntries))
	for name, cas := range builtinEntries {
		entries[name] = cas
	}
	return entries, nil
}

// FuzzyLookup scans the registry for the entry most similar to name and
// returns it when the Bio-SIM score clears FuzzyMatchThreshold.  Linear in
// registry size, which is fine for curated tables of this scale.  Ties on
// similarity go to the lexicographically smallest entry name so repeated
// scans of a map-backed registry always agree.
func FuzzyLookup(ctx context.Context, reg Registry, name string) (matched, cas string, score float64, err error) {
	entries, err := reg.Entries(ctx)
	if err != nil {
		return "", "", 0, err
	}
	names := make([]string, 0, len(entries))
	for entry := range entries {
		names = append(names, entry)
	}
	sort.Strings(names)
	for _, entry := range names {
		if s := Similarity(name, entry); s > score {
			matched, cas, score = entry, entries[entry], s
		}
	}
	if score < FuzzyMatchThreshold {
		return "", "", 0, nil
	}
	return matched, cas, score, nil
}
