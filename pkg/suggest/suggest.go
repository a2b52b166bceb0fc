// Package suggest scores typo-tolerant name matches for fuzzy command
// lookup.
package suggest

import "strings"

// DefaultThreshold is the minimum similarity for a name to count as a
// plausible correction.
const DefaultThreshold = 0.5

// Similarity scores how closely input matches candidate, in [0, 1].
// Case-insensitive substring containment in either direction is a perfect
// match; anything else scores 1 minus the edit distance normalized by the
// longer length.
func Similarity(input, candidate string) float64 {
	if input == "" || candidate == "" {
		return 0
	}
	a := strings.ToLower(input)
	b := strings.ToLower(candidate)
	if strings.Contains(b, a) || strings.Contains(a, b) {
		return 1.0
	}
	longer := max(len(a), len(b))
	return 1.0 - float64(Distance(a, b))/float64(longer)
}

// Distance computes the Levenshtein edit distance between a and b using the
// two-row formulation.
func Distance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
