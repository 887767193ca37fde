package datasources

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/korpsdata/streamlink/core"
)

const (
	cAppleSearchURL   = "https://itunes.apple.com/search"
	cAppleLookupURL   = "https://itunes.apple.com/lookup"
	cAppleSearchLimit = 5
	cAppleHTTPTimeout = 15 * time.Second
)

// AppleAlbum represents an iTunes album (collection) result.
type AppleAlbum struct {
	WrapperType    string `json:"wrapperType"`
	CollectionType string `json:"collectionType"`
	CollectionID   int64  `json:"collectionId"`
	CollectionName string `json:"collectionName"`
	ArtistName     string `json:"artistName"`
	ReleaseDate    string `json:"releaseDate"`
}

// AppleTrack represents an iTunes song result.
type AppleTrack struct {
	WrapperType  string `json:"wrapperType"`
	TrackID      int64  `json:"trackId"`
	TrackName    string `json:"trackName"`
	TrackViewURL string `json:"trackViewUrl"`
	ArtistName   string `json:"artistName"`
}

// appleSearchResponse wraps both search and lookup payloads; the two
// endpoints share a results envelope.
type appleSearchResponse struct {
	ResultCount int               `json:"resultCount"`
	Results     []json.RawMessage `json:"results"`
}

// NewAppleMusicClient creates an Apple Music catalog client backed by the
// public iTunes Search API, which requires no authentication.
func NewAppleMusicClient(cfg *core.AppleMusicConfig) core.StreamingClient {
	return &appleMusicClientImpl{
		cfg:    cfg,
		client: &http.Client{Timeout: cAppleHTTPTimeout},
	}
}

type appleMusicClientImpl struct {
	cfg    *core.AppleMusicConfig
	client *http.Client
}

var _ core.StreamingClient = (*appleMusicClientImpl)(nil)

func (a *appleMusicClientImpl) Platform() core.Platform {
	return core.PlatformAppleMusic
}

func (a *appleMusicClientImpl) SearchAlbums(ctx context.Context, term string) ([]core.Album, error) {
	params := url.Values{}
	params.Set("term", term)
	params.Set("entity", "album")
	params.Set("limit", strconv.Itoa(cAppleSearchLimit))
	params.Set("country", a.cfg.Country)

	results, err := a.get(ctx, cAppleSearchURL, params)
	if err != nil {
		return nil, core.WrappedError(err, "failed to search apple music albums for %q", term)
	}

	var albums []core.Album
	for _, raw := range results {
		var album AppleAlbum
		if err := json.Unmarshal(raw, &album); err != nil {
			continue
		}
		if album.CollectionID == 0 {
			continue
		}
		albums = append(albums, core.Album{
			ID:          strconv.FormatInt(album.CollectionID, 10),
			Name:        album.CollectionName,
			ReleaseDate: album.ReleaseDate,
			AlbumType:   appleAlbumType(album),
		})
	}
	return albums, nil
}

func (a *appleMusicClientImpl) ListAlbumTracks(ctx context.Context, albumID string) ([]core.ProviderTrack, error) {
	params := url.Values{}
	params.Set("id", albumID)
	params.Set("entity", "song")
	params.Set("country", a.cfg.Country)

	results, err := a.get(ctx, cAppleLookupURL, params)
	if err != nil {
		return nil, core.WrappedError(err, "failed to look up apple music album %s", albumID)
	}

	var tracks []core.ProviderTrack
	for _, raw := range results {
		var track AppleTrack
		if err := json.Unmarshal(raw, &track); err != nil {
			continue
		}
		if track.WrapperType != "track" || track.TrackName == "" || track.TrackViewURL == "" {
			continue
		}
		tracks = append(tracks, core.ProviderTrack{
			ID:     strconv.FormatInt(track.TrackID, 10),
			Title:  track.TrackName,
			URL:    track.TrackViewURL,
			Artist: track.ArtistName,
		})
	}
	return tracks, nil
}

func (a *appleMusicClientImpl) get(ctx context.Context, baseURL string, params url.Values) ([]json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, core.WrappedError(err, "failed to build iTunes request")
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if isPermanentlyEmpty(resp.StatusCode) {
			return nil, nil
		}
		return nil, &StatusError{
			Platform:   core.PlatformAppleMusic,
			Code:       resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}

	var payload appleSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, core.WrappedError(err, "failed to decode iTunes response")
	}
	return payload.Results, nil
}

// appleAlbumType maps iTunes collection metadata to the provider-agnostic
// album type. Singles surface as collections named "... - Single".
func appleAlbumType(album AppleAlbum) string {
	if strings.HasSuffix(album.CollectionName, "- Single") {
		return "single"
	}
	if album.CollectionType != "" {
		return strings.ToLower(album.CollectionType)
	}
	return "album"
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
