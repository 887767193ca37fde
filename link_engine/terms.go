package link_engine

import (
	"fmt"
	"strings"

	"github.com/korpsdata/streamlink/core"
	"github.com/korpsdata/streamlink/matching"
)

// contestPrefix returns the championship name used in official album titles
// for a dataset.
func contestPrefix(bandType core.BandType) string {
	if bandType == core.BandTypeBrass {
		return "NM Brass"
	}
	return "NM Janitsjar"
}

// divisionLabels returns the album-title spellings of a division, most
// specific first: the dataset spelling, then the recognized synonyms.
func divisionLabels(division string) []string {
	trimmed := strings.TrimSpace(division)
	if trimmed == "" {
		return nil
	}
	if strings.Contains(strings.ToLower(trimmed), "elite") {
		return []string{"Elitedivisjon", "Elite"}
	}
	labels := []string{trimmed}
	for _, token := range matching.DivisionTokens(trimmed) {
		if !strings.EqualFold(token, trimmed) {
			labels = append(labels, token)
		}
	}
	return labels
}

// searchTerms builds the ordered set of album search terms for one
// (band_type, year, division): combinations of the contest prefix, the year,
// and each division spelling, with and without a live suffix. The list is an
// explicit fallback chain consumed most-specific-first; the collector stops
// searching once it has gathered enough unique candidate albums.
func searchTerms(bandType core.BandType, year int, division string) []string {
	prefix := contestPrefix(bandType)
	seen := core.NewSet[string]()
	var terms []string

	add := func(term string) {
		if term == "" || seen.Contains(term) {
			return
		}
		seen.Add(term)
		terms = append(terms, term)
	}

	for _, label := range divisionLabels(division) {
		add(fmt.Sprintf("%s %d %s", prefix, year, label))
		add(fmt.Sprintf("%s %d %s (Live)", prefix, year, label))
		add(fmt.Sprintf("%s %d - %s", prefix, year, label))
	}
	add(fmt.Sprintf("%s %d", prefix, year))
	add(fmt.Sprintf("%s %d (Live)", prefix, year))

	return terms
}
