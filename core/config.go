package core

import (
	"encoding/json"
	"os"
	"strings"
)

const (
	cDefaultSpotifyMarket = "NO"
	cDefaultAppleCountry  = "us"
)

// SpotifyConfig carries the client-credentials pair for the Spotify Web API.
type SpotifyConfig struct {
	ClientID     string
	ClientSecret string
	Market       string
}

// AppleMusicConfig carries the iTunes Search API storefront.
type AppleMusicConfig struct {
	Country string
}

// Config is the resolved provider configuration for a run. A nil provider
// config means that provider is skipped for the run; the other provider still
// proceeds.
type Config struct {
	Spotify    *SpotifyConfig
	AppleMusic *AppleMusicConfig
}

// ConfigOptions are the raw knobs from the command line.
type ConfigOptions struct {
	CredentialsPath     string
	SpotifyClientID     string
	SpotifyClientSecret string
	SpotifyMarket       string
	AppleCountry        string
	SkipSpotify         bool
	SkipApple           bool
}

// LoadConfig resolves provider configuration. Spotify credentials come from
// flags first, then the SPOTIFY_CLIENT_ID / SPOTIFY_CLIENT_SECRET environment
// variables, then the local credentials JSON file. Missing Spotify
// credentials disable that provider with a warning rather than failing the
// run.
func LoadConfig(opts ConfigOptions) *Config {
	cfg := &Config{}

	if !opts.SkipSpotify {
		clientID := firstNonEmpty(opts.SpotifyClientID, getEnv("SPOTIFY_CLIENT_ID", ""))
		clientSecret := firstNonEmpty(opts.SpotifyClientSecret, getEnv("SPOTIFY_CLIENT_SECRET", ""))
		if clientID == "" || clientSecret == "" {
			fileID, fileSecret := loadCredentialsFile(opts.CredentialsPath)
			clientID = firstNonEmpty(clientID, fileID)
			clientSecret = firstNonEmpty(clientSecret, fileSecret)
			if fileID != "" && fileSecret != "" {
				Printf("Loaded Spotify credentials from %s", opts.CredentialsPath)
			}
		}
		if clientID == "" || clientSecret == "" {
			Warningf("Spotify credentials missing, skipping Spotify lookups")
		} else {
			cfg.Spotify = &SpotifyConfig{
				ClientID:     clientID,
				ClientSecret: clientSecret,
				Market:       firstNonEmpty(opts.SpotifyMarket, cDefaultSpotifyMarket),
			}
		}
	}

	if !opts.SkipApple {
		cfg.AppleMusic = &AppleMusicConfig{
			Country: firstNonEmpty(opts.AppleCountry, getEnv("APPLE_COUNTRY", ""), cDefaultAppleCountry),
		}
	}

	return cfg
}

// loadCredentialsFile reads the optional local credentials document. A
// missing file is not an error; it simply yields nothing.
func loadCredentialsFile(path string) (clientID, clientSecret string) {
	if path == "" {
		return "", ""
	}
	bytes, err := os.ReadFile(path)
	if err != nil {
		return "", ""
	}
	var doc struct {
		SpotifyClientID     string `json:"spotify_client_id"`
		SpotifyClientSecret string `json:"spotify_client_secret"`
	}
	if err := json.Unmarshal(bytes, &doc); err != nil {
		Warningf("failed to parse credentials file %s: %v", path, err)
		return "", ""
	}
	return strings.TrimSpace(doc.SpotifyClientID), strings.TrimSpace(doc.SpotifyClientSecret)
}

// getEnv retrieves an environment variable or returns a fallback value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		v = strings.TrimSpace(v)
		if v != "" {
			return v
		}
	}
	return ""
}
