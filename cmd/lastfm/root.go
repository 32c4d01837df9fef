package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var flags globalFlags

	ctx := newCommandContext(&flags)

	rootCmd := &cobra.Command{
		Use:           "lastfm",
		Short:         "Query the Last.fm API with a local response cache",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", os.Getenv("LASTFM_CONFIG_PATH"), "Configuration file path")
	rootCmd.PersistentFlags().BoolVar(&flags.noCache, "no-cache", false, "Fetch from the network without reading or updating the cache")
	rootCmd.PersistentFlags().BoolVar(&flags.json, "json", false, "Print JSON even when stdout is a terminal")

	rootCmd.AddCommand(newArtistCommand(ctx))
	rootCmd.AddCommand(newArtistSearchCommand(ctx))
	rootCmd.AddCommand(newAlbumCommand(ctx))
	rootCmd.AddCommand(newAlbumSearchCommand(ctx))
	rootCmd.AddCommand(newAlbumTagsCommand(ctx))
	rootCmd.AddCommand(newCacheCommand(ctx))

	return rootCmd
}
