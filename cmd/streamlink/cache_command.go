package main

import (
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/korpsdata/streamlink/cache"
	"github.com/korpsdata/streamlink/core"
)

func newCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the streaming metadata cache",
	}
	cmd.AddCommand(newCacheStatsCommand())
	return cmd
}

func newCacheStatsCommand() *cobra.Command {
	var cachePath string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show cached album counts per provider",
		RunE: func(_ *cobra.Command, _ []string) error {
			store := cache.Open(cachePath)
			counts := store.AlbumCounts()

			platforms := make([]string, 0, len(counts))
			for platform := range counts {
				platforms = append(platforms, string(platform))
			}
			sort.Strings(platforms)

			if len(platforms) == 0 {
				core.Printf("Cache %s is empty", cachePath)
				return nil
			}
			for _, platform := range platforms {
				core.Printf("%s: %d cached albums", platform, counts[core.Platform(platform)])
			}
			if info, err := os.Stat(cachePath); err == nil {
				core.Printf("Cache file: %s (%d bytes)", cachePath, info.Size())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cachePath, "cache", "config/streaming_cache.json", "streaming metadata cache")
	return cmd
}
