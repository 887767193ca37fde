package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "streamlink",
		Short:         "Discover streaming links for NM band championship performances",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(
		newMatchCommand(),
		newCombineCommand(),
		newCacheCommand(),
	)
	return cmd
}
