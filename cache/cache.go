// Package cache persists album track listings between runs so repeated
// matching does not refetch provider catalogs. The store is loaded once at
// start, mutated in memory, and written back atomically at the end of a run
// if and only if anything changed.
package cache

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/korpsdata/streamlink/core"
)

// Entry holds the cached track listing for one album.
type Entry struct {
	Tracks    []core.ProviderTrack `json:"tracks"`
	FetchedAt time.Time            `json:"fetched_at"`
}

// providerDocument is the per-provider section of the on-disk document.
type providerDocument struct {
	AlbumTracks map[string]Entry `json:"album_tracks"`
}

// Store is the streaming cache. Execution is single-threaded, so access
// needs no locking; persistence uses atomic replace so a cache file shared
// across runs never sees a partial write (last writer wins).
type Store struct {
	path      string
	providers map[core.Platform]*providerDocument
	dirty     bool
}

// Open loads the cache document at path. A missing, empty, or malformed
// document yields an empty cache with a warning, never an error. An empty
// path disables persistence.
func Open(path string) *Store {
	s := &Store{
		path:      path,
		providers: make(map[core.Platform]*providerDocument),
	}
	if path == "" {
		return s
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			core.Warningf("failed to read streaming cache %s: %v", path, err)
		}
		return s
	}
	if len(bytes) == 0 {
		return s
	}
	if err := json.Unmarshal(bytes, &s.providers); err != nil {
		core.Warningf("failed to parse streaming cache %s, starting empty: %v", path, err)
		s.providers = make(map[core.Platform]*providerDocument)
	}
	for platform, doc := range s.providers {
		if doc == nil {
			doc = &providerDocument{}
			s.providers[platform] = doc
		}
		if doc.AlbumTracks == nil {
			doc.AlbumTracks = make(map[string]Entry)
		}
	}
	return s
}

// Lookup returns the cached track listing for an album, if present.
func (s *Store) Lookup(platform core.Platform, albumID string) ([]core.ProviderTrack, bool) {
	doc, ok := s.providers[platform]
	if !ok {
		return nil, false
	}
	entry, ok := doc.AlbumTracks[albumID]
	if !ok {
		return nil, false
	}
	return entry.Tracks, true
}

// Put stores a freshly fetched track listing and marks the cache dirty.
func (s *Store) Put(platform core.Platform, albumID string, tracks []core.ProviderTrack) {
	if albumID == "" {
		return
	}
	doc, ok := s.providers[platform]
	if !ok {
		doc = &providerDocument{AlbumTracks: make(map[string]Entry)}
		s.providers[platform] = doc
	}
	doc.AlbumTracks[albumID] = Entry{
		Tracks:    tracks,
		FetchedAt: time.Now().UTC(),
	}
	s.dirty = true
}

// Dirty reports whether the cache changed since it was loaded.
func (s *Store) Dirty() bool {
	return s.dirty
}

// Save persists the cache via atomic replace. It is a no-op when nothing
// changed or persistence is disabled.
func (s *Store) Save() error {
	if !s.dirty || s.path == "" {
		return nil
	}
	bytes, err := json.MarshalIndent(s.providers, "", "  ")
	if err != nil {
		return core.WrappedError(err, "failed to marshal streaming cache")
	}
	if err := core.WriteFileAtomic(s.path, bytes); err != nil {
		return core.WrappedError(err, "failed to persist streaming cache")
	}
	s.dirty = false
	return nil
}

// AlbumCounts returns the number of cached albums per provider.
func (s *Store) AlbumCounts() map[core.Platform]int {
	counts := make(map[core.Platform]int, len(s.providers))
	for platform, doc := range s.providers {
		counts[platform] = len(doc.AlbumTracks)
	}
	return counts
}

// Path returns the backing file path, empty when persistence is disabled.
func (s *Store) Path() string {
	return s.path
}
