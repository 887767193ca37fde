package matching

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/korpsdata/streamlink/core"
)

// Relevance weights. Year and division are the only reliable discriminators
// in noisy free-text album titles, so they dominate every secondary signal:
// a same-year wrong-division album must never outrank a correct one. These
// values are empirically tuned; rebalancing them is a policy change.
const (
	cWeightReleaseYear   = 200.0
	cWeightDivisionToken = 150.0
	cWeightYearToken     = 100.0
	cWeightContestToken  = 20.0
	cWeightLiveToken     = 5.0
	cWeightFullAlbum     = 2.0
	cPenaltySingle       = -10.0

	// RelevanceFloor is the minimum relevance an album needs before its
	// track list is worth fetching.
	RelevanceFloor = 10.0
)

var contestTokens = []string{"nm janitsjar", "nm brass", "norgesmesterskap"}

// AlbumRelevance ranks a candidate album by how likely it is to hold the
// recordings for the given competition year and division. The score is
// unbounded; correct candidates dominate incorrect ones by roughly an order
// of magnitude.
func AlbumRelevance(album core.Album, year int, division string) float64 {
	name := strings.ToLower(album.Name)
	score := 0.0

	if ReleaseYear(album) == year {
		score += cWeightReleaseYear
	}
	if strings.Contains(name, strconv.Itoa(year)) {
		score += cWeightYearToken
	}
	for _, token := range DivisionTokens(division) {
		if strings.Contains(name, token) {
			score += cWeightDivisionToken
			break
		}
	}
	for _, token := range contestTokens {
		if strings.Contains(name, token) {
			score += cWeightContestToken
			break
		}
	}
	if strings.Contains(name, "live") {
		score += cWeightLiveToken
	}
	switch strings.ToLower(album.AlbumType) {
	case "single":
		score += cPenaltySingle
	case "album":
		score += cWeightFullAlbum
	}

	return score
}

// DivisionTokens returns the recognized lowercase album-title tokens for a
// division: "Elitedivisjon"/"Elite" for the elite division, and the
// "N. divisjon"/"N. div"/"Ndiv" spelling variants for numbered divisions.
func DivisionTokens(division string) []string {
	lowered := strings.ToLower(strings.TrimSpace(division))
	if lowered == "" {
		return nil
	}
	if strings.Contains(lowered, "elite") {
		return []string{"elitedivisjon", "elite"}
	}
	if n, ok := divisionNumber(lowered); ok {
		return []string{
			fmt.Sprintf("%d. divisjon", n),
			fmt.Sprintf("%d. div", n),
			fmt.Sprintf("%ddiv", n),
		}
	}
	return []string{lowered}
}

// AlbumMatchesYear reports whether the album belongs to the target year,
// either by parsed release year or by a literal year token in the title.
// This backs the hard year gate that prevents cross-year bleed.
func AlbumMatchesYear(album core.Album, year int) bool {
	if ReleaseYear(album) == year {
		return true
	}
	return strings.Contains(album.Name, strconv.Itoa(year))
}

// ReleaseYear parses the leading four-digit year out of a provider release
// date such as "2023-04-01", "2023-04-01T07:00:00Z", or "2023". It returns 0
// when no year can be read.
func ReleaseYear(album core.Album) int {
	date := strings.TrimSpace(album.ReleaseDate)
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

// divisionNumber extracts the leading ordinal from division names like
// "1. divisjon" or "3. div".
func divisionNumber(division string) (int, bool) {
	digits := ""
	for _, ch := range division {
		if ch < '0' || ch > '9' {
			break
		}
		digits += string(ch)
	}
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}
