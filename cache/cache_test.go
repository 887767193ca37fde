package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/korpsdata/streamlink/core"
)

func sampleTracks() []core.ProviderTrack {
	return []core.ProviderTrack{
		{
			ID:     "t1",
			Title:  "Elegy for a Young American",
			URL:    "https://open.spotify.com/track/t1",
			Artist: "Test Band",
		},
	}
}

func TestPutLookupRoundTrip(t *testing.T) {
	s := Open("")

	_, ok := s.Lookup(core.PlatformSpotify, "alb1")
	assert.False(t, ok)

	s.Put(core.PlatformSpotify, "alb1", sampleTracks())
	tracks, ok := s.Lookup(core.PlatformSpotify, "alb1")
	require.True(t, ok)
	require.Len(t, tracks, 1)
	assert.Equal(t, "t1", tracks[0].ID)

	// Another provider's namespace stays independent.
	_, ok = s.Lookup(core.PlatformAppleMusic, "alb1")
	assert.False(t, ok)
}

func TestSavePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	s := Open(path)
	s.Put(core.PlatformSpotify, "alb1", sampleTracks())
	s.Put(core.PlatformAppleMusic, "123456", []core.ProviderTrack{{ID: "999", Title: "Valdres March", URL: "u"}})
	require.NoError(t, s.Save())

	reopened := Open(path)
	tracks, ok := reopened.Lookup(core.PlatformSpotify, "alb1")
	require.True(t, ok)
	assert.Equal(t, "Elegy for a Young American", tracks[0].Title)
	_, ok = reopened.Lookup(core.PlatformAppleMusic, "123456")
	assert.True(t, ok)
	assert.False(t, reopened.Dirty())
}

func TestSaveNoopWhenClean(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	s := Open(path)
	require.NoError(t, s.Save())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "clean cache must not touch disk")
}

func TestDirtyFlagLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	s := Open(path)
	assert.False(t, s.Dirty())
	s.Put(core.PlatformSpotify, "alb1", sampleTracks())
	assert.True(t, s.Dirty())
	require.NoError(t, s.Save())
	assert.False(t, s.Dirty())
}

func TestOpenToleratesMissingAndMalformed(t *testing.T) {
	dir := t.TempDir()

	missing := Open(filepath.Join(dir, "missing.json"))
	_, ok := missing.Lookup(core.PlatformSpotify, "alb1")
	assert.False(t, ok)

	malformed := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(malformed, []byte("{broken"), 0o644))
	s := Open(malformed)
	_, ok = s.Lookup(core.PlatformSpotify, "alb1")
	assert.False(t, ok)

	// Run continues with the empty cache and can save over the bad file.
	s.Put(core.PlatformSpotify, "alb1", sampleTracks())
	require.NoError(t, s.Save())
	_, ok = Open(malformed).Lookup(core.PlatformSpotify, "alb1")
	assert.True(t, ok)

	// A null provider section parses but carries no document.
	partial := filepath.Join(dir, "partial.json")
	require.NoError(t, os.WriteFile(partial, []byte(`{"spotify": null, "apple_music": {"album_tracks": {}}}`), 0o644))
	s = Open(partial)
	_, ok = s.Lookup(core.PlatformSpotify, "alb1")
	assert.False(t, ok)
	s.Put(core.PlatformSpotify, "alb1", sampleTracks())
	require.NoError(t, s.Save())
	_, ok = Open(partial).Lookup(core.PlatformSpotify, "alb1")
	assert.True(t, ok)
}

func TestOpenToleratesEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	s := Open(path)
	assert.False(t, s.Dirty())
	assert.Empty(t, s.AlbumCounts())
}

func TestPutIgnoresEmptyAlbumID(t *testing.T) {
	s := Open("")
	s.Put(core.PlatformSpotify, "", sampleTracks())
	assert.False(t, s.Dirty())
	assert.Empty(t, s.AlbumCounts())
}

func TestAlbumCounts(t *testing.T) {
	s := Open("")
	s.Put(core.PlatformSpotify, "alb1", sampleTracks())
	s.Put(core.PlatformSpotify, "alb2", nil)
	s.Put(core.PlatformAppleMusic, "123", nil)

	counts := s.AlbumCounts()
	assert.Equal(t, 2, counts[core.PlatformSpotify])
	assert.Equal(t, 1, counts[core.PlatformAppleMusic])
}
