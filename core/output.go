package core

// LinkRecord is the flat serialized form of a streaming match. The
// recording title and album come from the representative track (Spotify when
// present, otherwise Apple Music); both provider URLs are carried
// independently. Nullable fields marshal as JSON null when absent.
type LinkRecord struct {
	Year           int     `json:"year"`
	Division       string  `json:"division"`
	Band           string  `json:"band"`
	ResultPiece    string  `json:"result_piece"`
	RecordingTitle *string `json:"recording_title"`
	Album          *string `json:"album"`
	Spotify        *string `json:"spotify"`
	AppleMusic     *string `json:"apple_music"`
	Notes          string  `json:"notes,omitempty"`
}

// YearDocument is the per-(band_type, year) output file.
type YearDocument struct {
	BandType BandType     `json:"band_type"`
	Year     int          `json:"year"`
	Entries  []LinkRecord `json:"entries"`
}

// AggregateDocument is the combined output file, partitioned by band type.
// encoding/json marshals map keys in sorted order, which keeps the aggregate
// byte-deterministic.
type AggregateDocument map[BandType][]LinkRecord

// ToRecord flattens a streaming match into its output record.
func (m *StreamingMatch) ToRecord() LinkRecord {
	r := LinkRecord{
		Year:        m.Performance.Year,
		Division:    m.Performance.Division,
		Band:        m.Performance.Band,
		ResultPiece: m.Performance.Piece,
	}
	representative := m.Spotify
	if representative == nil {
		representative = m.AppleMusic
	}
	if representative != nil {
		r.RecordingTitle = StringPtr(representative.Title)
		r.Album = StringPtr(representative.Album)
	}
	if m.Spotify != nil {
		r.Spotify = StringPtr(m.Spotify.URL)
	}
	if m.AppleMusic != nil {
		r.AppleMusic = StringPtr(m.AppleMusic.URL)
	}
	return r
}

// HasLink reports whether at least one provider URL is present.
func (r LinkRecord) HasLink() bool {
	return r.Spotify != nil || r.AppleMusic != nil
}

func StringPtr(s string) *string {
	return &s
}
