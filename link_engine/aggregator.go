package link_engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/korpsdata/streamlink/core"
)

// SortRecords orders records by (year, division, band, piece), the
// deterministic, diff-friendly output order.
func SortRecords(records []core.LinkRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Division != b.Division {
			return a.Division < b.Division
		}
		if a.Band != b.Band {
			return a.Band < b.Band
		}
		return a.ResultPiece < b.ResultPiece
	})
}

// YearFileName is the per-year output file name for a dataset.
func YearFileName(bandType core.BandType, year int) string {
	return fmt.Sprintf("%s_%d.json", bandType, year)
}

// WriteYearDocument persists one (band_type, year) document atomically and
// returns its path. Records are sorted before writing so re-running with
// unchanged inputs produces byte-identical output.
func WriteYearDocument(dir string, doc core.YearDocument) (string, error) {
	SortRecords(doc.Entries)
	if doc.Entries == nil {
		doc.Entries = []core.LinkRecord{}
	}
	bytes, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", core.WrappedError(err, "failed to marshal year document")
	}
	bytes = append(bytes, '\n')

	path := filepath.Join(dir, YearFileName(doc.BandType, doc.Year))
	if err := core.WriteFileAtomic(path, bytes); err != nil {
		return "", err
	}
	return path, nil
}

// Combine recomputes the aggregate document from every per-year file
// currently present in dir and writes it to aggregatePath. It never patches
// incrementally, so a stale aggregate can always be regenerated by running
// combine alone.
func Combine(dir, aggregatePath string) (core.AggregateDocument, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, core.WrappedError(err, "failed to read streaming output directory %s", dir)
	}

	aggregate := core.AggregateDocument{
		core.BandTypeWind:  []core.LinkRecord{},
		core.BandTypeBrass: []core.LinkRecord{},
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		bytes, err := os.ReadFile(path)
		if err != nil {
			core.Warningf("failed to read %s, skipping: %v", path, err)
			continue
		}
		var doc core.YearDocument
		if err := json.Unmarshal(bytes, &doc); err != nil || doc.BandType == "" {
			core.Warningf("skipping %s: not a streaming year document", path)
			continue
		}
		aggregate[doc.BandType] = append(aggregate[doc.BandType], doc.Entries...)
	}

	for bandType := range aggregate {
		SortRecords(aggregate[bandType])
	}

	bytes, err := json.MarshalIndent(aggregate, "", "  ")
	if err != nil {
		return nil, core.WrappedError(err, "failed to marshal aggregate document")
	}
	bytes = append(bytes, '\n')
	if err := core.WriteFileAtomic(aggregatePath, bytes); err != nil {
		return nil, err
	}
	return aggregate, nil
}
