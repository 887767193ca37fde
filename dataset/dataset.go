// Package dataset loads the competition performance dataset produced by the
// band-positions exporter.
package dataset

import (
	"encoding/json"
	"os"
	"sort"
	"strings"

	"github.com/korpsdata/streamlink/core"
)

type rawDataset struct {
	Bands []rawBand `json:"bands"`
}

type rawBand struct {
	Name    string     `json:"name"`
	Entries []rawEntry `json:"entries"`
}

type rawEntry struct {
	Year     int             `json:"year"`
	Division string          `json:"division"`
	Pieces   json.RawMessage `json:"pieces"`
}

// LoadPerformances reads the band-positions document and flattens it into
// performance records, one per performed piece, keeping only entries with
// year >= minYear. A missing or unreadable dataset is a hard error: the run
// aborts before any output is written.
func LoadPerformances(path string, minYear int) ([]core.Performance, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, core.WrappedError(err, "failed to read positions dataset %s", path)
	}

	var dataset rawDataset
	if err := json.Unmarshal(bytes, &dataset); err != nil {
		return nil, core.WrappedError(err, "failed to parse positions dataset %s", path)
	}

	var performances []core.Performance
	for _, band := range dataset.Bands {
		for _, entry := range band.Entries {
			if entry.Year < minYear {
				continue
			}
			for _, rawPiece := range decodePieces(entry.Pieces) {
				piece := strings.TrimSpace(rawPiece)
				if piece == "" {
					continue
				}
				performances = append(performances, core.Performance{
					Year:     entry.Year,
					Division: entry.Division,
					Band:     band.Name,
					Piece:    piece,
				})
			}
		}
	}
	return performances, nil
}

// decodePieces accepts either a list of titles or a bare string, which some
// historical entries use for a single piece.
func decodePieces(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var pieces []string
	if err := json.Unmarshal(raw, &pieces); err == nil {
		return pieces
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return []string{single}
	}
	return nil
}

// Years returns the distinct performance years in ascending order.
func Years(performances []core.Performance) []int {
	seen := core.NewSet[int]()
	for _, p := range performances {
		seen.Add(p.Year)
	}
	years := seen.ToArray()
	sort.Ints(years)
	return years
}

// FilterYear keeps only the performances for one year.
func FilterYear(performances []core.Performance, year int) []core.Performance {
	var filtered []core.Performance
	for _, p := range performances {
		if p.Year == year {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
