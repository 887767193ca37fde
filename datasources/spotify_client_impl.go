package datasources

import (
	"context"
	"net/http"
	"strings"

	spotify "github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/korpsdata/streamlink/core"
)

const (
	cSpotifySearchLimit = 5
	cSpotifyPageLimit   = 50
)

// NewSpotifyClient creates a Spotify catalog client using the app-level
// client-credentials flow; no user authorization is involved.
func NewSpotifyClient(cfg *core.SpotifyConfig) core.StreamingClient {
	return &spotifyClientImpl{cfg: cfg}
}

type spotifyClientImpl struct {
	cfg    *core.SpotifyConfig
	client *spotify.Client
}

var _ core.StreamingClient = (*spotifyClientImpl)(nil)

func (s *spotifyClientImpl) Platform() core.Platform {
	return core.PlatformSpotify
}

func (s *spotifyClientImpl) SearchAlbums(ctx context.Context, term string) ([]core.Album, error) {
	client := s.getClient(ctx)
	opts := []spotify.RequestOption{spotify.Limit(cSpotifySearchLimit)}
	if s.cfg.Market != "" {
		opts = append(opts, spotify.Market(s.cfg.Market))
	}
	result, err := client.Search(ctx, term, spotify.SearchTypeAlbum, opts...)
	if err != nil {
		if status, ok := spotifyStatus(err); ok && isPermanentlyEmpty(status) {
			return nil, nil
		}
		return nil, s.convertError(err, "failed to search spotify albums for %q", term)
	}
	if result.Albums == nil {
		return nil, nil
	}

	albums := make([]core.Album, 0, len(result.Albums.Albums))
	for _, album := range result.Albums.Albums {
		albums = append(albums, core.Album{
			ID:          album.ID.String(),
			Name:        album.Name,
			ReleaseDate: album.ReleaseDate,
			AlbumType:   album.AlbumType,
		})
	}
	return albums, nil
}

func (s *spotifyClientImpl) ListAlbumTracks(ctx context.Context, albumID string) ([]core.ProviderTrack, error) {
	client := s.getClient(ctx)
	var tracks []core.ProviderTrack
	for offset := 0; ; offset += cSpotifyPageLimit {
		page, err := client.GetAlbumTracks(
			ctx,
			spotify.ID(albumID),
			spotify.Limit(cSpotifyPageLimit),
			spotify.Offset(offset),
		)
		if err != nil {
			if status, ok := spotifyStatus(err); ok && isPermanentlyEmpty(status) {
				return tracks, nil
			}
			return nil, s.convertError(err, "failed to list spotify tracks for album %s", albumID)
		}
		for _, item := range page.Tracks {
			url := item.ExternalURLs["spotify"]
			if item.Name == "" || url == "" {
				continue
			}
			tracks = append(tracks, core.ProviderTrack{
				ID:     item.ID.String(),
				Title:  item.Name,
				URL:    url,
				Artist: joinArtists(item.Artists),
			})
		}
		if len(page.Tracks) < cSpotifyPageLimit {
			break
		}
	}
	return tracks, nil
}

// getClient lazily builds the authenticated client; the token source
// refreshes the app token as needed.
func (s *spotifyClientImpl) getClient(ctx context.Context) *spotify.Client {
	if s.client != nil {
		return s.client
	}
	conf := &clientcredentials.Config{
		ClientID:     s.cfg.ClientID,
		ClientSecret: s.cfg.ClientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}
	s.client = spotify.New(conf.Client(ctx))
	return s.client
}

// convertError maps the Spotify library error to the pipeline's error
// contract: forbidden/not-found become an empty-result sentinel handled by
// callers as no data, everything else surfaces with its status attached.
func (s *spotifyClientImpl) convertError(err error, format string, args ...any) error {
	if spotifyErr, ok := err.(spotify.Error); ok {
		if spotifyErr.Status == http.StatusTooManyRequests {
			core.Printf("Spotify API rate limit hit, with message: %s", spotifyErr.Message)
		}
		return core.WrappedError(
			&StatusError{Platform: core.PlatformSpotify, Code: spotifyErr.Status},
			format,
			args...,
		)
	}
	return core.WrappedError(err, format, args...)
}

func spotifyStatus(err error) (int, bool) {
	if spotifyErr, ok := err.(spotify.Error); ok {
		return spotifyErr.Status, true
	}
	return 0, false
}

func joinArtists(artists []spotify.SimpleArtist) string {
	names := make([]string, 0, len(artists))
	for _, artist := range artists {
		if artist.Name != "" {
			names = append(names, artist.Name)
		}
	}
	return strings.Join(names, ", ")
}
