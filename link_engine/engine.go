// Package link_engine orchestrates streaming-link discovery: it collects
// candidate tracks per provider, selects the best match for each
// performance, folds in manual overrides, and assembles deterministic
// per-year output.
package link_engine

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/korpsdata/streamlink/cache"
	"github.com/korpsdata/streamlink/core"
	"github.com/korpsdata/streamlink/matching"
	"github.com/korpsdata/streamlink/overrides"
)

type Engine struct {
	clients    []core.StreamingClient
	overrides  *overrides.Resolver
	collectors map[core.Platform]*Collector
}

func NewEngine(
	clients []core.StreamingClient,
	cacheStore *cache.Store,
	resolver *overrides.Resolver,
	bandType core.BandType,
) *Engine {
	collectors := make(map[core.Platform]*Collector, len(clients))
	for _, client := range clients {
		collectors[client.Platform()] = NewCollector(client, cacheStore, bandType)
	}
	return &Engine{
		clients:    clients,
		overrides:  resolver,
		collectors: collectors,
	}
}

// Run matches every performance of the target year against each configured
// provider, applies overrides, appends leftover override-only entries, and
// returns the records sorted by (year, division, band, piece). A performance
// with no accepted match on either provider and no override is excluded;
// that is expected steady-state behavior, not an error.
func (e *Engine) Run(
	ctx context.Context,
	performances []core.Performance, /*const*/
	year int,
) []core.LinkRecord {
	records := []core.LinkRecord{}

	for _, performance := range performances {
		if performance.Year != year {
			continue
		}
		record, ok := e.matchPerformance(ctx, performance)
		if ok {
			records = append(records, record)
		}
	}

	// Overrides that never met an automatic match still carry human-entered
	// links worth emitting.
	for _, entry := range e.overrides.Remaining(year) {
		records = append(records, entry.Record())
	}

	SortRecords(records)
	return records
}

func (e *Engine) matchPerformance(
	ctx context.Context,
	performance core.Performance, /*const*/
) (core.LinkRecord, bool) {
	fields, hasOverride := e.overrides.Lookup(performance)

	pieceSlugs := []string{matching.Slugify(performance.Piece)}
	allowMismatch := false
	if hasOverride {
		pieceSlugs = append(pieceSlugs, fields.PieceSlugs...)
		allowMismatch = fields.AllowAlbumMismatch
	}
	bandSlug := matching.Slugify(performance.Band)

	match := core.StreamingMatch{Performance: performance}
	for _, client := range e.clients {
		collector := e.collectors[client.Platform()]
		tracks := collector.Tracks(ctx, performance.Year, performance.Division, allowMismatch)
		best := matching.BestTrack(pieceSlugs, bandSlug, tracks)
		if best == nil {
			continue
		}
		switch client.Platform() {
		case core.PlatformSpotify:
			match.Spotify = best
		case core.PlatformAppleMusic:
			match.AppleMusic = best
		}
	}

	record := match.ToRecord()
	if hasOverride {
		overrides.ApplyFields(&record, fields)
	}
	return record, record.HasLink()
}

// ResolveTargetYear narrows the dataset's years through the CLI filters down
// to exactly one target year. Matching a single year per run keeps the cache
// and output consistent; resolving to several years is reported and no
// matching happens.
func ResolveTargetYear(available []int, years []int, startYear, endYear int) (int, error) {
	requested := core.ToSet(years)
	var selected []int
	for _, year := range available {
		if !requested.IsEmpty() && !requested.Contains(year) {
			continue
		}
		if startYear != 0 && year < startYear {
			continue
		}
		if endYear != 0 && year > endYear {
			continue
		}
		selected = append(selected, year)
	}

	switch len(selected) {
	case 0:
		return 0, core.NewError("no performances match the year filters")
	case 1:
		return selected[0], nil
	default:
		return 0, core.NewError(
			"year filters resolve to %s; a run processes exactly one year, narrow the selection",
			formatYears(selected),
		)
	}
}

func formatYears(years []int) string {
	sort.Ints(years)
	parts := make([]string, len(years))
	for i, year := range years {
		parts[i] = fmt.Sprintf("%d", year)
	}
	return strings.Join(parts, ", ")
}
