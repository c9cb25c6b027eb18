package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-tracker/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and maintain the metadata cache",
}

var cacheGetCmd = &cobra.Command{
	Use:   "get <url>",
	Short: "Print the cached record for a URL",
	Long: `Get prints the record stored for exactly this URL, as fetched from the
source and before any overrides were applied.`,
	Args: cobra.ExactArgs(1),
	RunE: runCacheGet,
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Remove expired cache entries",
	RunE:  runCachePurge,
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the number of live cache entries",
	RunE:  runCacheStats,
}

func init() {
	cacheGetCmd.Flags().String("format", "json", "output format: json or yaml")

	cacheCmd.AddCommand(cacheGetCmd, cachePurgeCmd, cacheStatsCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheGet(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if err := checkFormat(format); err != nil {
		return err
	}

	store, err := cache.Open(cfg.Cache)
	if err != nil {
		return fmt.Errorf("opening cache: %w", err)
	}
	defer store.Close()

	md, err := cache.NewMetadataCache(store).Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if md == nil {
		return fmt.Errorf("no cached record for %s", args[0])
	}
	return writeRecord(os.Stdout, *md, format)
}

func runCachePurge(cmd *cobra.Command, args []string) error {
	store, err := cache.Open(cfg.Cache)
	if err != nil {
		return fmt.Errorf("opening cache: %w", err)
	}
	defer store.Close()

	n, err := store.PurgeExpired(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("Purged %d expired entries\n", n)
	return nil
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	store, err := cache.Open(cfg.Cache)
	if err != nil {
		return fmt.Errorf("opening cache: %w", err)
	}
	defer store.Close()

	n, err := store.Len(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("backend: %s\nentries: %d\nttl:     %s\n", cfg.Cache.Backend, n, cfg.Cache.TTL)
	return nil
}
