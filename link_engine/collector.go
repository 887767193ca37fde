package link_engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/korpsdata/streamlink/cache"
	"github.com/korpsdata/streamlink/core"
	"github.com/korpsdata/streamlink/matching"
)

// cAlbumCap bounds provider search calls: term variants stop being tried
// once this many unique candidate albums have been gathered.
const cAlbumCap = 15

// Collector turns ranked candidate albums into flat, deduplicated track
// candidate lists, memoized per (year, division) for the lifetime of a run.
// Albums failing the year gate are kept aside and their tracks fetched only
// when a performance-level override lifts the gate.
type Collector struct {
	client   core.StreamingClient
	cache    *cache.Store
	bandType core.BandType
	memo     map[string]*divisionCandidates
}

type scoredAlbum struct {
	album     core.Album
	relevance float64
}

type divisionCandidates struct {
	matched           []core.Track
	mismatchedAlbums  []scoredAlbum
	mismatched        []core.Track
	mismatchedFetched bool
	seenTrackIDs      core.Set[string]
}

func NewCollector(client core.StreamingClient, cacheStore *cache.Store, bandType core.BandType) *Collector {
	return &Collector{
		client:   client,
		cache:    cacheStore,
		bandType: bandType,
		memo:     make(map[string]*divisionCandidates),
	}
}

// Tracks returns the candidate tracks for a (year, division). The hard year
// gate excludes albums not attributable to the target year; passing
// includeMismatched true (granted by an allow_album_mismatch override for
// one specific performance) additionally returns tracks from gated-out
// albums.
func (c *Collector) Tracks(
	ctx context.Context,
	year int,
	division string,
	includeMismatched bool,
) []core.Track {
	key := fmt.Sprintf("%d|%s", year, division)
	candidates, ok := c.memo[key]
	if !ok {
		candidates = c.collect(ctx, year, division)
		c.memo[key] = candidates
	}

	if !includeMismatched {
		return candidates.matched
	}
	if !candidates.mismatchedFetched {
		for _, scored := range candidates.mismatchedAlbums {
			candidates.mismatched = append(
				candidates.mismatched,
				c.albumTracks(ctx, scored.album, candidates.seenTrackIDs)...,
			)
		}
		candidates.mismatchedFetched = true
	}
	tracks := make([]core.Track, 0, len(candidates.matched)+len(candidates.mismatched))
	tracks = append(tracks, candidates.matched...)
	tracks = append(tracks, candidates.mismatched...)
	return tracks
}

func (c *Collector) collect(ctx context.Context, year int, division string) *divisionCandidates {
	candidates := &divisionCandidates{seenTrackIDs: core.NewSet[string]()}

	albums := c.gatherAlbums(ctx, year, division)
	scored := make([]scoredAlbum, 0, len(albums))
	for _, album := range albums {
		scored = append(scored, scoredAlbum{
			album:     album,
			relevance: matching.AlbumRelevance(album, year, division),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].relevance > scored[j].relevance
	})

	for _, s := range scored {
		if s.relevance < matching.RelevanceFloor {
			continue
		}
		if !matching.AlbumMatchesYear(s.album, year) {
			candidates.mismatchedAlbums = append(candidates.mismatchedAlbums, s)
			continue
		}
		candidates.matched = append(
			candidates.matched,
			c.albumTracks(ctx, s.album, candidates.seenTrackIDs)...,
		)
	}
	return candidates
}

// gatherAlbums walks the search-term fallback chain, collecting distinct
// candidate albums until the cap is reached. A failed search contributes
// nothing and the chain continues.
func (c *Collector) gatherAlbums(ctx context.Context, year int, division string) []core.Album {
	seen := core.NewSet[string]()
	var albums []core.Album

	for _, term := range searchTerms(c.bandType, year, division) {
		if len(albums) >= cAlbumCap {
			break
		}
		results, err := c.client.SearchAlbums(ctx, term)
		if err != nil {
			core.Warningf("%s album search failed for %q: %v", c.client.Platform(), term, err)
			continue
		}
		for _, album := range results {
			if album.ID == "" || seen.Contains(album.ID) {
				continue
			}
			seen.Add(album.ID)
			albums = append(albums, album)
			if len(albums) >= cAlbumCap {
				break
			}
		}
	}
	return albums
}

// albumTracks fetches one album's track listing, cache first, and converts
// it into deduplicated track candidates.
func (c *Collector) albumTracks(
	ctx context.Context,
	album core.Album,
	seenTrackIDs core.Set[string],
) []core.Track {
	platform := c.client.Platform()
	raw, cached := c.cache.Lookup(platform, album.ID)
	if !cached {
		var err error
		raw, err = c.client.ListAlbumTracks(ctx, album.ID)
		if err != nil {
			core.Warningf("%s track listing failed for album %s (%s): %v", platform, album.ID, album.Name, err)
			return nil
		}
		c.cache.Put(platform, album.ID, raw)
	}

	var tracks []core.Track
	for _, item := range raw {
		if item.Title == "" || item.URL == "" {
			continue
		}
		if item.ID != "" {
			if seenTrackIDs.Contains(item.ID) {
				continue
			}
			seenTrackIDs.Add(item.ID)
		}
		tracks = append(tracks, core.Track{
			Platform:     platform,
			Title:        item.Title,
			SlugVariants: slugVariants(item.Title),
			URL:          item.URL,
			Album:        album.Name,
			AlbumID:      album.ID,
			Artist:       item.Artist,
		})
	}
	return tracks
}

// slugVariants builds the ordered normalized forms of a track title: with
// parenthetical removal first, then without when it differs.
func slugVariants(title string) []string {
	stripped := matching.Slugify(title)
	full := matching.SlugifyKeepParens(title)
	variants := []string{stripped}
	if full != stripped {
		variants = append(variants, full)
	}
	return variants
}
