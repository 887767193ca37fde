package matching

import (
	"math"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/korpsdata/streamlink/core"
)

// cSubstringFloor is the minimum sequence ratio granted when one slug fully
// contains the other, so "elegy" vs "elegy-for-strings" still ranks highly.
const cSubstringFloor = 0.9

// SimilarityScore computes a bounded, symmetric match strength between two
// slugs. It is the maximum of a character-level sequence ratio and a
// token-overlap ratio; equal slugs score 1.0 and an empty slug scores 0.0.
func SimilarityScore(a, b string) float64 {
	if a == "" || b == "" {
		return 0.0
	}
	if a == b {
		return 1.0
	}

	ratio := sequenceRatio(a, b)
	if strings.Contains(a, b) || strings.Contains(b, a) {
		ratio = math.Max(ratio, cSubstringFloor)
	}

	return math.Max(ratio, tokenOverlapRatio(a, b))
}

// sequenceRatio converts an absolute Levenshtein distance into a similarity
// ratio from 0.0 to 1.0.
func sequenceRatio(a, b string) float64 {
	distance := fuzzy.LevenshteinDistance(a, b)
	maxLen := math.Max(float64(len(a)), float64(len(b)))
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/maxLen
}

// tokenOverlapRatio measures shared separator-delimited tokens relative to
// the larger token set.
func tokenOverlapRatio(a, b string) float64 {
	tokensA := core.ToSet(strings.Split(a, "-"))
	tokensB := core.ToSet(strings.Split(b, "-"))
	if tokensA.IsEmpty() || tokensB.IsEmpty() {
		return 0.0
	}

	shared := 0
	for token := range tokensA {
		if tokensB.Contains(token) {
			shared++
		}
	}
	return float64(shared) / math.Max(float64(len(tokensA)), float64(len(tokensB)))
}
