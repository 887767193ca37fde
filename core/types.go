package core

import (
	"context"
)

// Platform identifies one of the supported streaming catalogs.
type Platform string

const (
	PlatformSpotify    Platform = "spotify"
	PlatformAppleMusic Platform = "apple_music"
)

// BandType identifies which competition dataset is being processed.
type BandType string

const (
	BandTypeWind  BandType = "wind"
	BandTypeBrass BandType = "brass"
)

// Performance is one (year, division, band, piece) occurrence from the
// competition dataset. Read-only throughout the matching pipeline.
type Performance struct {
	Year     int
	Division string
	Band     string
	Piece    string
}

// Album is a provider-agnostic candidate album returned by an album search.
type Album struct {
	ID          string
	Name        string
	ReleaseDate string // raw provider value, e.g. "2023-04-01" or "2023"
	AlbumType   string // "album" or "single"
}

// ProviderTrack is the raw track record a provider returns for an album.
// This is also the form persisted in the streaming cache.
type ProviderTrack struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	URL    string `json:"url"`
	Artist string `json:"artist,omitempty"`
}

// Track is a candidate recording for a performance. SlugVariants holds the
// normalized title with and without parenthetical removal (deduplicated, so
// one or two entries). MatchScore is zero until a matcher has compared the
// track against a performance.
type Track struct {
	Platform     Platform
	Title        string
	SlugVariants []string
	URL          string
	Album        string
	AlbumID      string
	Artist       string
	MatchScore   float64
}

// StreamingMatch pairs a performance with the accepted track per provider.
// Either side may be nil when no track cleared the acceptance threshold.
type StreamingMatch struct {
	Performance Performance
	Spotify     *Track
	AppleMusic  *Track
}

// StreamingClient is the boundary to one streaming catalog. Implementations
// handle authentication, pagination, and HTTP; the matching engine only ever
// calls these two operations and treats an empty result as "no data".
type StreamingClient interface {
	Platform() Platform
	SearchAlbums(ctx context.Context, term string) ([]Album, error)
	ListAlbumTracks(ctx context.Context, albumID string) ([]ProviderTrack, error)
}
