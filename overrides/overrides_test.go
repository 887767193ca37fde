package overrides

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/korpsdata/streamlink/core"
)

func writeOverrides(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "overrides.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadBareArray(t *testing.T) {
	path := writeOverrides(t, `[
		{
			"year": 2023,
			"division": "Elite",
			"band": "Test Band",
			"piece": "Elegy for a Young American",
			"spotify": "https://open.spotify.com/track/abc"
		}
	]`)
	r := Load(path, core.BandTypeWind)

	fields, ok := r.Lookup(core.Performance{
		Year:     2023,
		Division: "Elite",
		Band:     "Test Band",
		Piece:    "Elegy for a Young American",
	})
	require.True(t, ok)
	require.NotNil(t, fields.Spotify)
	assert.Equal(t, "https://open.spotify.com/track/abc", *fields.Spotify)
}

func TestLoadWrappedObject(t *testing.T) {
	path := writeOverrides(t, `{"overrides": [
		{"year": 2022, "division": "1. divisjon", "band": "Band A", "piece": "Piece X", "notes": "manual"}
	]}`)
	r := Load(path, core.BandTypeWind)

	fields, ok := r.Lookup(core.Performance{Year: 2022, Division: "1. divisjon", Band: "Band A", Piece: "Piece X"})
	require.True(t, ok)
	require.NotNil(t, fields.Notes)
	assert.Equal(t, "manual", *fields.Notes)
}

func TestLookupMatchesOnSlugs(t *testing.T) {
	path := writeOverrides(t, `[
		{"year": 2023, "division": "Elite", "band": "Stavanger Brass Band", "piece": "Fraternité", "album": "NM Brass 2023"}
	]`)
	r := Load(path, core.BandTypeBrass)

	// Original-string key components are slugified, so lookups built from
	// differently cased or accented forms still hit.
	fields, ok := r.Lookup(core.Performance{Year: 2023, Division: "ELITE", Band: "Stavanger Brass Band", Piece: "Fraternite"})
	require.True(t, ok)
	require.NotNil(t, fields.Album)
}

func TestLookupConsumeOnce(t *testing.T) {
	path := writeOverrides(t, `[
		{"year": 2023, "division": "Elite", "band": "Band A", "piece": "Piece X", "spotify": "u"}
	]`)
	r := Load(path, core.BandTypeWind)
	p := core.Performance{Year: 2023, Division: "Elite", Band: "Band A", Piece: "Piece X"}

	_, ok := r.Lookup(p)
	require.True(t, ok)
	_, ok = r.Lookup(p)
	assert.False(t, ok)
}

func TestBandTypeFilter(t *testing.T) {
	path := writeOverrides(t, `[
		{"year": 2023, "division": "Elite", "band": "Band A", "piece": "Piece X", "band_type": "brass", "spotify": "u"},
		{"year": 2023, "division": "Elite", "band": "Band B", "piece": "Piece Y", "spotify": "u"}
	]`)
	r := Load(path, core.BandTypeWind)

	_, ok := r.Lookup(core.Performance{Year: 2023, Division: "Elite", Band: "Band A", Piece: "Piece X"})
	assert.False(t, ok, "brass-scoped entry must not apply to a wind run")
	_, ok = r.Lookup(core.Performance{Year: 2023, Division: "Elite", Band: "Band B", Piece: "Piece Y"})
	assert.True(t, ok, "entry without band_type applies to every dataset")
}

func TestSkipsEntriesMissingKeyComponents(t *testing.T) {
	path := writeOverrides(t, `[
		{"year": 2023, "division": "Elite", "band": "Band A"},
		{"division": "Elite", "band": "Band B", "piece": "Piece Y"},
		{"year": 2023, "division": "Elite", "band": "Band C", "piece": "Piece Z", "spotify": "u"}
	]`)
	r := Load(path, core.BandTypeWind)

	_, ok := r.Lookup(core.Performance{Year: 2023, Division: "Elite", Band: "Band C", Piece: "Piece Z"})
	assert.True(t, ok, "valid entry survives invalid siblings")
	assert.Empty(t, r.Remaining(2023))
}

func TestDuplicateKeepsFirst(t *testing.T) {
	path := writeOverrides(t, `[
		{"year": 2023, "division": "Elite", "band": "Band A", "piece": "Piece X", "spotify": "first"},
		{"year": 2023, "division": "Elite", "band": "Band A", "piece": "Piece X", "spotify": "second"}
	]`)
	r := Load(path, core.BandTypeWind)

	fields, ok := r.Lookup(core.Performance{Year: 2023, Division: "Elite", Band: "Band A", Piece: "Piece X"})
	require.True(t, ok)
	assert.Equal(t, "first", *fields.Spotify)
}

func TestMissingFileYieldsEmptyTable(t *testing.T) {
	r := Load(filepath.Join(t.TempDir(), "nope.json"), core.BandTypeWind)
	_, ok := r.Lookup(core.Performance{Year: 2023, Division: "Elite", Band: "Band A", Piece: "Piece X"})
	assert.False(t, ok)
}

func TestMalformedFileYieldsEmptyTable(t *testing.T) {
	path := writeOverrides(t, `{not json`)
	r := Load(path, core.BandTypeWind)
	assert.Empty(t, r.Remaining(2023))
}

func TestRemainingFiltersConsumedYearAndLinkless(t *testing.T) {
	path := writeOverrides(t, `[
		{"year": 2023, "division": "Elite", "band": "Consumed", "piece": "Piece A", "spotify": "u1"},
		{"year": 2023, "division": "Elite", "band": "Leftover", "piece": "Piece B", "apple_music": "u2"},
		{"year": 2023, "division": "Elite", "band": "No Links", "piece": "Piece C", "notes": "slug fix only"},
		{"year": 2022, "division": "Elite", "band": "Other Year", "piece": "Piece D", "spotify": "u3"}
	]`)
	r := Load(path, core.BandTypeWind)

	_, ok := r.Lookup(core.Performance{Year: 2023, Division: "Elite", Band: "Consumed", Piece: "Piece A"})
	require.True(t, ok)

	remaining := r.Remaining(2023)
	require.Len(t, remaining, 1)
	assert.Equal(t, "Leftover", remaining[0].Band)

	record := remaining[0].Record()
	assert.Equal(t, 2023, record.Year)
	assert.Equal(t, "Piece B", record.ResultPiece)
	require.NotNil(t, record.AppleMusic)
	assert.Equal(t, "u2", *record.AppleMusic)
	assert.Nil(t, record.Spotify)
}

func TestRemainingAlbumYearGate(t *testing.T) {
	path := writeOverrides(t, `[
		{"year": 2023, "division": "Elite", "band": "Gated", "piece": "Piece A", "spotify": "u1", "album": "NM Janitsjar 2022 Elitedivisjon"},
		{"year": 2023, "division": "Elite", "band": "Bypassed", "piece": "Piece B", "spotify": "u2", "album": "NM Janitsjar 2022 Elitedivisjon", "allow_album_mismatch": true},
		{"year": 2023, "division": "Elite", "band": "Current", "piece": "Piece C", "spotify": "u3", "album": "NM Janitsjar 2023 Elitedivisjon"}
	]`)
	r := Load(path, core.BandTypeWind)

	remaining := r.Remaining(2023)
	require.Len(t, remaining, 2)
	assert.Equal(t, "Bypassed", remaining[0].Band)
	assert.Equal(t, "Current", remaining[1].Band)
}

func TestApplyFieldsAlbumYearGate(t *testing.T) {
	record := core.LinkRecord{
		Year:  2023,
		Album: core.StringPtr("NM Janitsjar 2023 Elitedivisjon (Live)"),
	}

	ApplyFields(&record, &Fields{Album: core.StringPtr("NM Janitsjar 2022 Elitedivisjon")})
	require.NotNil(t, record.Album)
	assert.Equal(t, "NM Janitsjar 2023 Elitedivisjon (Live)", *record.Album, "mismatched album must not replace the computed one")

	ApplyFields(&record, &Fields{
		Album:              core.StringPtr("NM Janitsjar 2022 Elitedivisjon"),
		AllowAlbumMismatch: true,
	})
	assert.Equal(t, "NM Janitsjar 2022 Elitedivisjon", *record.Album)

	ApplyFields(&record, &Fields{Album: core.StringPtr("NM Janitsjar 2023")})
	assert.Equal(t, "NM Janitsjar 2023", *record.Album)
}

func TestApplyFieldsPatchesOnlyPopulated(t *testing.T) {
	record := core.LinkRecord{
		Year:        2023,
		Division:    "Elite",
		Band:        "Band A",
		ResultPiece: "Piece X",
		Spotify:     core.StringPtr("computed"),
	}
	ApplyFields(&record, &Fields{
		AppleMusic: core.StringPtr("manual"),
		Notes:      core.StringPtr("checked by hand"),
	})

	require.NotNil(t, record.Spotify)
	assert.Equal(t, "computed", *record.Spotify)
	require.NotNil(t, record.AppleMusic)
	assert.Equal(t, "manual", *record.AppleMusic)
	assert.Equal(t, "checked by hand", record.Notes)

	ApplyFields(&record, &Fields{Spotify: core.StringPtr("override")})
	assert.Equal(t, "override", *record.Spotify)
}
