package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/namesearch/internal/config"
	"github.com/rshade/namesearch/internal/engine/cache"
)

func newCacheCmd(state *rootState) *cobra.Command {
	cmd := &cobra.Command{Use: "cache", Short: "Corpus cache management commands"}
	cmd.AddCommand(newCacheStatusCmd(state), newCacheClearCmd(state))
	return cmd
}

func newCacheStatusCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the corpus cache directory and entry count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, store, err := configuredStore(state)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !store.IsEnabled() {
				fmt.Fprintln(out, "Corpus cache is disabled")
				return nil
			}

			n, err := store.Count()
			if err != nil {
				return fmt.Errorf("counting cache entries: %w", err)
			}
			fmt.Fprintf(out, "Directory: %s\n", store.Directory())
			fmt.Fprintf(out, "Entries:   %d\n", n)
			fmt.Fprintf(out, "TTL:       %s\n",
				cache.FormatDuration(time.Duration(cfg.Cache.TTLSeconds)*time.Second))
			return nil
		},
	}
}

func newCacheClearCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached corpus",
		Example: `  # Force the next scan to download the corpus again
  namesearch cache clear`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, store, err := configuredStore(state)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !store.IsEnabled() {
				fmt.Fprintln(out, "Corpus cache is disabled, nothing to clear")
				return nil
			}

			n, err := store.Count()
			if err != nil {
				return fmt.Errorf("counting cache entries: %w", err)
			}
			if err = store.Clear(); err != nil {
				return fmt.Errorf("clearing cache: %w", err)
			}
			fmt.Fprintf(out, "Removed %d cached corpora from %s\n", n, store.Directory())
			return nil
		},
	}
}

// configuredStore opens the cache described by the loaded configuration.
func configuredStore(state *rootState) (*config.Config, *cache.FileStore, error) {
	cfg, err := state.config()
	if err != nil {
		return nil, nil, err
	}
	store, err := cache.NewFileStore(cfg.Cache.Directory, cfg.Cache.Enabled, cfg.Cache.TTLSeconds)
	if err != nil {
		return nil, nil, fmt.Errorf("opening cache: %w", err)
	}
	return cfg, store, nil
}
