// Package overrides implements the manual correction layer: a human-curated
// table keyed by normalized performance identity that can fix or supplement
// automatic streaming matches.
package overrides

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/korpsdata/streamlink/core"
	"github.com/korpsdata/streamlink/matching"
)

// Fields is the sparse patch an override applies on top of an automatic
// match. Only the non-nil fields overwrite computed values; overrides always
// win over automatically computed fields for the same key.
type Fields struct {
	RecordingTitle     *string
	Album              *string
	Spotify            *string
	AppleMusic         *string
	PieceSlugs         []string // alternate piece slugs tried during matching
	Notes              *string
	AllowAlbumMismatch bool
}

// Entry is one loaded override. The original year/division/band/piece
// strings are retained so entries that never meet an automatic match can
// still be emitted as output records.
type Entry struct {
	Year     int
	Division string
	Band     string
	Piece    string

	key      string
	Fields   Fields
	consumed bool
}

// Record builds the output record for an override that had no corresponding
// automatic match.
func (e *Entry) Record() core.LinkRecord {
	r := core.LinkRecord{
		Year:        e.Year,
		Division:    e.Division,
		Band:        e.Band,
		ResultPiece: e.Piece,
	}
	ApplyFields(&r, &e.Fields)
	return r
}

// ApplyFields patches an output record with the override's populated fields.
// An album naming a different year is subject to the same year gate as
// collected albums; only allow_album_mismatch lifts it.
func ApplyFields(r *core.LinkRecord, f *Fields) {
	if f.RecordingTitle != nil {
		r.RecordingTitle = f.RecordingTitle
	}
	if f.Album != nil {
		if f.AllowAlbumMismatch || albumMatchesYear(*f.Album, r.Year) {
			r.Album = f.Album
		} else {
			core.Warningf("override album %q fails the year gate for %d, keeping computed album", *f.Album, r.Year)
		}
	}
	if f.Spotify != nil {
		r.Spotify = f.Spotify
	}
	if f.AppleMusic != nil {
		r.AppleMusic = f.AppleMusic
	}
	if f.Notes != nil {
		r.Notes = *f.Notes
	}
}

// rawEntry is the on-disk entry shape. Key components may be given as the
// original strings or as precomputed slugs.
type rawEntry struct {
	Year               int      `json:"year"`
	Division           string   `json:"division"`
	Band               string   `json:"band"`
	Piece              string   `json:"piece"`
	DivisionSlug       string   `json:"division_slug"`
	BandSlug           string   `json:"band_slug"`
	PieceSlug          string   `json:"piece_slug"`
	BandType           string   `json:"band_type"`
	Recording          *string  `json:"recording_title"`
	Album              *string  `json:"album"`
	Spotify            *string  `json:"spotify"`
	AppleMusic         *string  `json:"apple_music"`
	PieceSlugs         []string `json:"piece_slugs"`
	Notes              *string  `json:"notes"`
	AllowAlbumMismatch bool     `json:"allow_album_mismatch"`
}

// Resolver is the loaded override table for one run, scoped to one band
// type. Each key is consumed at most once per run.
type Resolver struct {
	entries []*Entry
	byKey   map[string]*Entry
}

// Load reads the override document at path, keeping only entries matching
// bandType (entries without a band_type filter apply to every dataset). The
// document is either a bare array or an object with an "overrides" array. A
// missing or malformed document yields an empty table with a warning;
// entries missing a key component are skipped with a warning, never fatal.
func Load(path string, bandType core.BandType) *Resolver {
	r := &Resolver{byKey: make(map[string]*Entry)}
	if path == "" {
		return r
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			core.Warningf("failed to read overrides %s: %v", path, err)
		}
		return r
	}

	var raws []rawEntry
	if err := json.Unmarshal(bytes, &raws); err != nil {
		var doc struct {
			Overrides []rawEntry `json:"overrides"`
		}
		if err := json.Unmarshal(bytes, &doc); err != nil {
			core.Warningf("failed to parse overrides %s, ignoring: %v", path, err)
			return r
		}
		raws = doc.Overrides
	}

	for i, raw := range raws {
		if raw.BandType != "" && core.BandType(raw.BandType) != bandType {
			continue
		}
		entry, err := buildEntry(raw)
		if err != nil {
			core.Warningf("skipping override entry %d in %s: %v", i, path, err)
			continue
		}
		if _, exists := r.byKey[entry.key]; exists {
			core.Warningf("duplicate override key %s in %s, keeping first", entry.key, path)
			continue
		}
		r.entries = append(r.entries, entry)
		r.byKey[entry.key] = entry
	}
	return r
}

func buildEntry(raw rawEntry) (*Entry, error) {
	if raw.Year == 0 {
		return nil, core.NewError("missing year")
	}
	divisionSlug := slugOr(raw.DivisionSlug, raw.Division)
	bandSlug := slugOr(raw.BandSlug, raw.Band)
	pieceSlug := slugOr(raw.PieceSlug, raw.Piece)
	if divisionSlug == "" || bandSlug == "" || pieceSlug == "" {
		return nil, core.NewError("missing division, band, or piece")
	}

	return &Entry{
		Year:     raw.Year,
		Division: raw.Division,
		Band:     raw.Band,
		Piece:    raw.Piece,
		key:      overrideKey(raw.Year, divisionSlug, bandSlug, pieceSlug),
		Fields: Fields{
			RecordingTitle:     raw.Recording,
			Album:              raw.Album,
			Spotify:            raw.Spotify,
			AppleMusic:         raw.AppleMusic,
			PieceSlugs:         raw.PieceSlugs,
			Notes:              raw.Notes,
			AllowAlbumMismatch: raw.AllowAlbumMismatch,
		},
	}, nil
}

// Lookup returns the override fields for a performance and marks the entry
// consumed. A key already consumed this run yields nothing.
func (r *Resolver) Lookup(p core.Performance) (*Fields, bool) {
	key := overrideKey(
		p.Year,
		matching.Slugify(p.Division),
		matching.Slugify(p.Band),
		matching.Slugify(p.Piece),
	)
	entry, ok := r.byKey[key]
	if !ok || entry.consumed {
		return nil, false
	}
	entry.consumed = true
	return &entry.Fields, true
}

// Remaining returns the unconsumed entries for a year that carry at least
// one provider URL, in load order. These are emitted as output records so a
// human-entered link for a performance that automatic search never found is
// not lost. An entry whose album fails the year gate is held back unless it
// sets allow_album_mismatch.
func (r *Resolver) Remaining(year int) []*Entry {
	var remaining []*Entry
	for _, entry := range r.entries {
		if entry.consumed || entry.Year != year {
			continue
		}
		if entry.Fields.Spotify == nil && entry.Fields.AppleMusic == nil {
			continue
		}
		if f := entry.Fields; f.Album != nil && !f.AllowAlbumMismatch && !albumMatchesYear(*f.Album, year) {
			core.Warningf("skipping override for %s (%d): album %q fails the year gate", entry.Band, year, *f.Album)
			continue
		}
		remaining = append(remaining, entry)
	}
	return remaining
}

// albumMatchesYear applies the collected-album year gate to an
// override-supplied album title.
func albumMatchesYear(album string, year int) bool {
	return matching.AlbumMatchesYear(core.Album{Name: album}, year)
}

func overrideKey(year int, divisionSlug, bandSlug, pieceSlug string) string {
	return fmt.Sprintf("%d|%s|%s|%s", year, divisionSlug, bandSlug, pieceSlug)
}

// slugOr prefers a precomputed slug over normalizing the original string.
func slugOr(precomputed, original string) string {
	if precomputed != "" {
		return precomputed
	}
	return matching.Slugify(original)
}
