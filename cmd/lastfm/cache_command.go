package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sydlexius/lastfm-client/cache"
	"github.com/sydlexius/lastfm-client/internal/config"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the response cache",
	}
	cmd.AddCommand(newCachePurgeCommand(ctx))
	return cmd
}

func newCachePurgeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Delete expired entries from the SQLite cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cfg.Cache.Backend != config.BackendSQLite {
				return fmt.Errorf("purge is only supported for the %s backend, configured backend is %s",
					config.BackendSQLite, cfg.Cache.Backend)
			}

			store, err := cache.OpenSQLiteStore(cmd.Context(), cfg.Cache.Path)
			if err != nil {
				return fmt.Errorf("opening cache: %w", err)
			}
			defer store.Close() //nolint:errcheck

			n, err := store.Purge(cmd.Context())
			if err != nil {
				return fmt.Errorf("purging cache: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s expired entries\n", formatCount(n))
			return nil
		},
	}
}
