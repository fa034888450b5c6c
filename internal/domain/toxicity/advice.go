package toxicity

import (
	"fmt"
	"strings"

	"github.com/sakhi-health/toxiscan/pkg/types/toxicity"
)

var riskLevelAdvice = map[toxicity.RiskLevel]string{
	toxicity.RiskCritical: "CRITICAL: This product contains high-risk EDCs. " +
		"We strongly recommend avoiding this product, especially if you have PCOS or are planning pregnancy.",
	toxicity.RiskHigh: "HIGH RISK: This product contains concerning levels of EDCs. " +
		"Consider switching to safer alternatives.",
	toxicity.RiskMedium: "MODERATE RISK: This product contains some EDCs. " +
		"Limit use and consider alternatives when possible.",
	toxicity.RiskLow: "LOW RISK: This product contains minimal EDCs. " +
		"Generally safe for use, but monitor cumulative exposure.",
}

var edcTypeAdvice = map[toxicity.EDCType]string{
	toxicity.EDCTypeBPA: "BPA detected: Strong PCOS risk factor. " +
		"Look for 'BPA-free' alternatives. Avoid heating products containing BPA.",
	toxicity.EDCTypePhthalate: "Phthalates detected: Linked to hormone disruption and postpartum depression risk. " +
		"Choose 'phthalate-free' products, especially during pregnancy.",
	toxicity.EDCTypeParaben: "Parabens detected: Mild endocrine effects. " +
		"Consider 'paraben-free' alternatives if you have hormonal sensitivities.",
	toxicity.EDCTypeHeavyMetal: "Heavy metals detected: Serious health risk. " +
		"Avoid this product immediately. Check for lead, mercury, or cadmium.",
	toxicity.EDCTypeOrganochlorine: "Organochlorines detected: Endocrine disruptors. " +
		"Avoid products with triclosan or similar antibacterial agents.",
	toxicity.EDCTypePFAS: "PFAS detected: 'Forever chemicals' that accumulate in the body. " +
		"Avoid products with PFAS, especially in food packaging and cosmetics.",
}

// edcAdviceOrder fixes the emission order so recommendations are stable
// across runs regardless of map iteration.
var edcAdviceOrder = []toxicity.EDCType{
	toxicity.EDCTypeBPA,
	toxicity.EDCTypePhthalate,
	toxicity.EDCTypeParaben,
	toxicity.EDCTypeHeavyMetal,
	toxicity.EDCTypeOrganochlorine,
	toxicity.EDCTypePFAS,
}

// Recommendations builds the advisory text for a scored product: one
// risk-level message, one message per EDC family found, and a
// category-specific tip when the product category is known.
func Recommendations(flagged []*toxicity.HazardRecord, riskLevel toxicity.RiskLevel, productCategory string) []string {
	if len(flagged) == 0 {
		return []string{"No EDCs detected. This product appears safe based on available data."}
	}

	recs := make([]string, 0, 4)
	if msg, ok := riskLevelAdvice[riskLevel]; ok {
		recs = append(recs, msg)
	}

	found := make(map[toxicity.EDCType]bool)
	for _, chem := range flagged {
		for _, t := range chem.EDCTypes {
			found[t] = true
		}
	}
	for _, t := range edcAdviceOrder {
		if found[t] {
			recs = append(recs, edcTypeAdvice[t])
		}
	}

	switch strings.ToLower(productCategory) {
	case "cosmetic", "personal_care":
		recs = append(recs, "For cosmetics: Look for products certified by EWG Skin Deep or similar databases.")
	case "food":
		recs = append(recs, "For food: Choose organic when possible and avoid plastic packaging that may leach EDCs.")
	}

	return recs
}

// UserWarnings returns the fixed disclaimers attached to every score.
// Label-based assessment cannot see concentrations or packaging
// leachates, so the limits have to travel with the result.
func UserWarnings(anyFlagged bool) []string {
	warnings := []string{
		"AWARENESS TOOL, NOT DIAGNOSTIC: This analysis is for educational purposes only " +
			"and should not be used as medical advice or clinical diagnosis.",
		"LABEL LIMITATIONS: Product labels typically do not list EDC concentrations or " +
			"chemicals that may leach from packaging materials. Actual exposure may differ from this assessment.",
		"SCIENTIFIC UNCERTAINTY: While EDC-health links are well-established in research, " +
			"individual risk varies based on exposure duration, frequency, and personal health factors.",
	}
	if anyFlagged {
		warnings = append(warnings,
			"RECOMMENDATION: Use this tool to build awareness and make informed choices, "+
				"but consult healthcare professionals for personalized medical advice.")
	}
	return warnings
}

// LowConfidenceNote formats the per-ingredient marker used in confidence
// warnings, with the confidence as a whole percentage.
func LowConfidenceNote(ingredientName string, confidence float64) string {
	return fmt.Sprintf("%s (confidence: %.0f%%)", ingredientName, confidence*100)
}

// ConfidenceWarnings aggregates low-confidence notes into the warning list
// attached to a score.  Empty input yields no warnings.
func ConfidenceWarnings(notes []string) []string {
	if len(notes) == 0 {
		return nil
	}
	return []string{
		"Low confidence ingredient matching detected for: " + strings.Join(notes, ", ") +
			". Results may be less accurate.",
	}
}
