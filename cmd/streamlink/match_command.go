package main

import (
	"github.com/spf13/cobra"

	"github.com/korpsdata/streamlink/cache"
	"github.com/korpsdata/streamlink/core"
	"github.com/korpsdata/streamlink/dataset"
	"github.com/korpsdata/streamlink/datasources"
	"github.com/korpsdata/streamlink/link_engine"
	"github.com/korpsdata/streamlink/overrides"
)

type matchOptions struct {
	positionsPath   string
	outputDir       string
	aggregatePath   string
	credentialsPath string
	overridesPath   string
	cachePath       string
	bandType        string
	minYear         int
	years           []int
	startYear       int
	endYear         int
	spotifyClientID string
	spotifySecret   string
	spotifyMarket   string
	appleCountry    string
	skipSpotify     bool
	skipApple       bool
}

func newMatchCommand() *cobra.Command {
	opts := &matchOptions{}
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match one year's performances against streaming catalogs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMatch(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.positionsPath, "positions", "data/band_positions.json", "path to the band positions dataset")
	flags.StringVar(&opts.outputDir, "output-dir", "data/streaming", "directory for per-year streaming documents")
	flags.StringVar(&opts.aggregatePath, "aggregate", "data/piece_streaming_links.json", "combined streaming links document")
	flags.StringVar(&opts.credentialsPath, "credentials", "config/streaming_credentials.json", "local credentials JSON (ignored if missing)")
	flags.StringVar(&opts.overridesPath, "overrides", "config/streaming_overrides.json", "manual override document")
	flags.StringVar(&opts.cachePath, "cache", "config/streaming_cache.json", "streaming metadata cache")
	flags.StringVar(&opts.bandType, "band-type", "wind", "dataset to process: wind or brass")
	flags.IntVar(&opts.minYear, "min-year", 2017, "first year to include")
	flags.IntSliceVar(&opts.years, "years", nil, "restrict to specific years")
	flags.IntVar(&opts.startYear, "start-year", 0, "optional starting year filter")
	flags.IntVar(&opts.endYear, "end-year", 0, "optional ending year filter")
	flags.StringVar(&opts.spotifyClientID, "spotify-client-id", "", "Spotify client id (defaults to SPOTIFY_CLIENT_ID)")
	flags.StringVar(&opts.spotifySecret, "spotify-client-secret", "", "Spotify client secret (defaults to SPOTIFY_CLIENT_SECRET)")
	flags.StringVar(&opts.spotifyMarket, "spotify-market", "NO", "Spotify market for album search")
	flags.StringVar(&opts.appleCountry, "apple-country", "", "Apple Music storefront country code (defaults to APPLE_COUNTRY or us)")
	flags.BoolVar(&opts.skipSpotify, "skip-spotify", false, "skip Spotify lookups")
	flags.BoolVar(&opts.skipApple, "skip-apple", false, "skip Apple Music lookups")

	return cmd
}

func runMatch(cmd *cobra.Command, opts *matchOptions) error {
	bandType := core.BandType(opts.bandType)
	if bandType != core.BandTypeWind && bandType != core.BandTypeBrass {
		return core.NewError("unknown band type %q, expected wind or brass", opts.bandType)
	}

	performances, err := dataset.LoadPerformances(opts.positionsPath, opts.minYear)
	if err != nil {
		return err
	}

	year, err := link_engine.ResolveTargetYear(
		dataset.Years(performances),
		opts.years,
		opts.startYear,
		opts.endYear,
	)
	if err != nil {
		// Fail-safe guard: report and perform no matching.
		core.Warningf("%v", err)
		return nil
	}

	cfg := core.LoadConfig(core.ConfigOptions{
		CredentialsPath:     opts.credentialsPath,
		SpotifyClientID:     opts.spotifyClientID,
		SpotifyClientSecret: opts.spotifySecret,
		SpotifyMarket:       opts.spotifyMarket,
		AppleCountry:        opts.appleCountry,
		SkipSpotify:         opts.skipSpotify,
		SkipApple:           opts.skipApple,
	})

	var clients []core.StreamingClient
	if cfg.Spotify != nil {
		clients = append(clients, datasources.NewRetryingClient(datasources.NewSpotifyClient(cfg.Spotify)))
	}
	if cfg.AppleMusic != nil {
		clients = append(clients, datasources.NewRetryingClient(datasources.NewAppleMusicClient(cfg.AppleMusic)))
	}
	if len(clients) == 0 {
		core.Warningf("no streaming providers configured; only override-supplied links can be emitted")
	}

	cacheStore := cache.Open(opts.cachePath)
	resolver := overrides.Load(opts.overridesPath, bandType)

	engine := link_engine.NewEngine(clients, cacheStore, resolver, bandType)
	records := engine.Run(cmd.Context(), performances, year)

	path, err := link_engine.WriteYearDocument(opts.outputDir, core.YearDocument{
		BandType: bandType,
		Year:     year,
		Entries:  records,
	})
	if err != nil {
		return err
	}
	core.Printf("Wrote %d streaming entries for %d to %s", len(records), year, path)

	if err := cacheStore.Save(); err != nil {
		return err
	}

	if _, err := link_engine.Combine(opts.outputDir, opts.aggregatePath); err != nil {
		return err
	}
	core.Printf("Regenerated aggregate at %s", opts.aggregatePath)
	return nil
}
