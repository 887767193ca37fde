package main

import (
	"github.com/spf13/cobra"

	"github.com/korpsdata/streamlink/core"
	"github.com/korpsdata/streamlink/link_engine"
)

func newCombineCommand() *cobra.Command {
	var outputDir, aggregatePath string

	cmd := &cobra.Command{
		Use:   "combine",
		Short: "Recompute the aggregate document from the per-year files",
		RunE: func(_ *cobra.Command, _ []string) error {
			aggregate, err := link_engine.Combine(outputDir, aggregatePath)
			if err != nil {
				return err
			}
			total := 0
			for _, records := range aggregate {
				total += len(records)
			}
			core.Printf("Combined %d streaming entries into %s", total, aggregatePath)
			return nil
		},
	}

	cmd.Flags().StringVar(&outputDir, "output-dir", "data/streaming", "directory holding per-year streaming documents")
	cmd.Flags().StringVar(&aggregatePath, "aggregate", "data/piece_streaming_links.json", "combined streaming links document")
	return cmd
}
