package link_engine

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/korpsdata/streamlink/core"
)

func record(year int, division, band, piece string) core.LinkRecord {
	return core.LinkRecord{
		Year:        year,
		Division:    division,
		Band:        band,
		ResultPiece: piece,
		Spotify:     core.StringPtr("https://open.spotify.com/track/x"),
	}
}

func TestSortRecords(t *testing.T) {
	records := []core.LinkRecord{
		record(2023, "Elite", "Band B", "Piece"),
		record(2022, "Elite", "Band Z", "Piece"),
		record(2023, "1. divisjon", "Band C", "Piece"),
		record(2023, "Elite", "Band A", "Piece B"),
		record(2023, "Elite", "Band A", "Piece A"),
	}
	SortRecords(records)

	assert.Equal(t, 2022, records[0].Year)
	assert.Equal(t, "1. divisjon", records[1].Division)
	assert.Equal(t, "Piece A", records[2].ResultPiece)
	assert.Equal(t, "Piece B", records[3].ResultPiece)
	assert.Equal(t, "Band B", records[4].Band)
}

func TestYearFileName(t *testing.T) {
	assert.Equal(t, "wind_2023.json", YearFileName(core.BandTypeWind, 2023))
	assert.Equal(t, "brass_2019.json", YearFileName(core.BandTypeBrass, 2019))
}

func TestWriteYearDocument(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteYearDocument(dir, core.YearDocument{
		BandType: core.BandTypeWind,
		Year:     2023,
		Entries: []core.LinkRecord{
			record(2023, "Elite", "Band B", "Piece"),
			record(2023, "Elite", "Band A", "Piece"),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "wind_2023.json"), path)

	bytes, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, byte('\n'), bytes[len(bytes)-1])

	var doc core.YearDocument
	require.NoError(t, json.Unmarshal(bytes, &doc))
	assert.Equal(t, core.BandTypeWind, doc.BandType)
	require.Len(t, doc.Entries, 2)
	assert.Equal(t, "Band A", doc.Entries[0].Band, "entries are sorted before writing")
}

func TestWriteYearDocumentEmptyEntries(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteYearDocument(dir, core.YearDocument{
		BandType: core.BandTypeBrass,
		Year:     2022,
	})
	require.NoError(t, err)

	bytes, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(bytes), `"entries": []`, "no entries marshals as an empty array, not null")
}

func TestCombine(t *testing.T) {
	dir := t.TempDir()
	for _, doc := range []core.YearDocument{
		{BandType: core.BandTypeWind, Year: 2023, Entries: []core.LinkRecord{record(2023, "Elite", "Band A", "Piece")}},
		{BandType: core.BandTypeWind, Year: 2022, Entries: []core.LinkRecord{record(2022, "Elite", "Band B", "Piece")}},
		{BandType: core.BandTypeBrass, Year: 2023, Entries: []core.LinkRecord{record(2023, "Elite", "Band C", "Piece")}},
	} {
		_, err := WriteYearDocument(dir, doc)
		require.NoError(t, err)
	}
	// Unrelated files in the output directory are skipped, not fatal.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stray.json"), []byte(`{"other": true}`), 0o644))

	aggregatePath := filepath.Join(dir, "streaming_links.json")
	aggregate, err := Combine(dir, aggregatePath)
	require.NoError(t, err)

	require.Len(t, aggregate[core.BandTypeWind], 2)
	assert.Equal(t, 2022, aggregate[core.BandTypeWind][0].Year, "years interleave in sorted order")
	assert.Equal(t, 2023, aggregate[core.BandTypeWind][1].Year)
	require.Len(t, aggregate[core.BandTypeBrass], 1)
	assert.Equal(t, "Band C", aggregate[core.BandTypeBrass][0].Band)

	bytes, err := os.ReadFile(aggregatePath)
	require.NoError(t, err)
	var decoded core.AggregateDocument
	require.NoError(t, json.Unmarshal(bytes, &decoded))
	assert.Equal(t, aggregate, decoded)
}

func TestCombineEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	aggregatePath := filepath.Join(dir, "streaming_links.json")

	aggregate, err := Combine(dir, aggregatePath)
	require.NoError(t, err)
	assert.Empty(t, aggregate[core.BandTypeWind])
	assert.Empty(t, aggregate[core.BandTypeBrass])

	bytes, err := os.ReadFile(aggregatePath)
	require.NoError(t, err)
	assert.Contains(t, string(bytes), `"brass": []`)
	assert.Contains(t, string(bytes), `"wind": []`)
}

func TestCombineMissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	_, err := Combine(missing, filepath.Join(missing, "agg.json"))
	assert.Error(t, err)
}

func TestCombineDeterministic(t *testing.T) {
	dir := t.TempDir()
	_, err := WriteYearDocument(dir, core.YearDocument{
		BandType: core.BandTypeWind,
		Year:     2023,
		Entries:  []core.LinkRecord{record(2023, "Elite", "Band A", "Piece")},
	})
	require.NoError(t, err)

	aggregatePath := filepath.Join(dir, "streaming_links.json")
	_, err = Combine(dir, aggregatePath)
	require.NoError(t, err)
	first, err := os.ReadFile(aggregatePath)
	require.NoError(t, err)

	_, err = Combine(dir, aggregatePath)
	require.NoError(t, err)
	second, err := os.ReadFile(aggregatePath)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
