package chemical

import "strings"

// similarityPrefixLen is how many leading characters must agree for the
// prefix bonus; chemical families share long prefixes (methyl-, ethyl-).
const similarityPrefixLen = 5

// similarityPrefixBonus is added to the sequence ratio when the prefixes
// agree, capped so the result stays within [0,1].
const similarityPrefixBonus = 0.1

// Similarity computes the Bio-SIM score between two ingredient names in
// [0,1].  Both names are normalized first, so callers may pass raw label
// text.  Exact matches score 1.0 and substring containment scores 0.95;
// everything else falls through to a character-sequence ratio with a small
// bonus for matching prefixes.
func Similarity(a, b string) float64 {
	s1 := NormalizeName(a)
	s2 := NormalizeName(b)

	if s1 == "" || s2 == "" {
		return 0
	}
	if s1 == s2 {
		return 1.0
	}
	if strings.Contains(s1, s2) || strings.Contains(s2, s1) {
		return 0.95
	}

	score := sequenceRatio(s1, s2)

	n := similarityPrefixLen
	if len(s1) < n {
		n = len(s1)
	}
	if len(s2) < n {
		n = len(s2)
	}
	if n > 0 && s1[:n] == s2[:n] {
		score += similarityPrefixBonus
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// sequenceRatio is the Ratcliff-Obershelp similarity of two strings:
// twice the number of matching characters (found by recursively locating
// the longest common substring and matching the pieces on either side)
// over the total length of both strings.
func sequenceRatio(s1, s2 string) float64 {
	total := len(s1) + len(s2)
	if total == 0 {
		return 0
	}
	return 2.0 * float64(matchingChars(s1, s2)) / float64(total)
}

func matchingChars(s1, s2 string) int {
	if len(s1) == 0 || len(s2) == 0 {
		return 0
	}
	i, j, n := longestCommonSubstring(s1, s2)
	if n == 0 {
		return 0
	}
	return n +
		matchingChars(s1[:i], s2[:j]) +
		matchingChars(s1[i+n:], s2[j+n:])
}

// longestCommonSubstring returns the start offsets and length of the longest
// substring common to s1 and s2, preferring the earliest occurrence in s1.
func longestCommonSubstring(s1, s2 string) (int, int, int) {
	bestI, bestJ, bestN := 0, 0, 0
	// lengths[j] holds the common-suffix length ending at s1[i-1], s2[j-1]
	// from the previous row of the dynamic program.
	lengths := make([]int, len(s2)+1)
	for i := 1; i <= len(s1); i++ {
		prev := 0
		for j := 1; j <= len(s2); j++ {
			cur := lengths[j]
			if s1[i-1] == s2[j-1] {
				lengths[j] = prev + 1
				if lengths[j] > bestN {
					bestN = lengths[j]
					bestI = i - bestN
					bestJ = j - bestN
				}
			} else {
				lengths[j] = 0
			}
			prev = cur
		}
	}
	return bestI, bestJ, bestN
}
