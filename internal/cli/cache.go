package cli

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bstviz/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cacheStatsCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store := c.newCache(ctx, false)
			defer store.Close()

			if reason, off := disabledReason(store); off {
				printInfo("Caching is disabled (%s)", reason)
				return nil
			}
			clearer, ok := store.(cache.Clearer)
			if !ok {
				printInfo("The %s backend cannot be cleared", c.Config.Cache.Backend)
				return nil
			}

			before := statsOf(ctx, store)
			count, err := clearer.Clear(ctx)
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			if before != "" {
				printSuccess("Cleared %d cached entries (%s)", count, before)
			} else {
				printSuccess("Cleared %d cached entries", count)
			}
			if fc, ok := store.(*cache.FileCache); ok {
				printDetail("Directory: %s", fc.Dir())
			}
			return nil
		},
	}
}

// cacheStatsCommand creates the "cache stats" subcommand.
func (c *CLI) cacheStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the number and size of cached artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store := c.newCache(ctx, false)
			defer store.Close()

			if reason, off := disabledReason(store); off {
				printInfo("Caching is disabled (%s)", reason)
				return nil
			}
			sizer, ok := store.(cache.Sizer)
			if !ok {
				printInfo("Cache size is not available for the %s backend", c.Config.Cache.Backend)
				return nil
			}
			st, err := sizer.Stats(ctx)
			if err != nil {
				return fmt.Errorf("cache stats: %w", err)
			}
			printKeyValue("Backend", c.Config.Cache.Backend)
			printKeyValue("Entries", humanize.Comma(int64(st.Entries)))
			printKeyValue("Size", humanize.Bytes(uint64(st.Bytes)))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := c.Config.Cache.Dir
			if dir == "" {
				d, err := cacheDir()
				if err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
				dir = d
			}
			fmt.Println(dir)
			return nil
		},
	}
}

// disabledReason reports whether store is a NullCache and why.
func disabledReason(store cache.Cache) (string, bool) {
	nc, ok := store.(*cache.NullCache)
	if !ok {
		return "", false
	}
	return nc.Reason, true
}

// statsOf describes the size of store, or "" when it cannot tell.
func statsOf(ctx context.Context, store cache.Cache) string {
	sizer, ok := store.(cache.Sizer)
	if !ok {
		return ""
	}
	st, err := sizer.Stats(ctx)
	if err != nil {
		return ""
	}
	return humanize.Bytes(uint64(st.Bytes))
}
