// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paper-tracker CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	applog "github.com/pdiddy/paper-tracker/internal/log"
	"github.com/pdiddy/paper-tracker/internal/secrets"
	"github.com/pdiddy/paper-tracker/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// Populated by PersistentPreRunE.
var (
	cfg    types.Config
	logger *logrus.Logger
)

// rootCmd is the base command for the paper-tracker CLI.
var rootCmd = &cobra.Command{
	Use:   "paper-tracker",
	Short: "Resolve and cache paper metadata",
	Long: `paper-tracker turns a paper URL into a normalized metadata record.

arXiv links are resolved through the arXiv API; any other URL is fetched and
its HTML meta tags are scraped. Results are cached per URL so repeated
lookups do not touch the network.`,
	SilenceUsage: true,
}

func init() {
	// Assigned here rather than in the literal to break the
	// rootCmd -> loadConfig -> rootCmd initialization cycle.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return loadConfig()
	}

	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./paper-tracker.yaml or ~/.config/paper-tracker/paper-tracker.yaml)")
	flags.String("cache-backend", "", "cache store: memory, sqlite, or bolt")
	flags.String("cache-path", "", "cache database file")
	flags.Duration("cache-ttl", 0, "how long resolved records stay cached")
	flags.String("log-env", "", `"prod" for JSON logs`)
	flags.String("log-level", "", "log level override (debug, info, warn, error)")
	flags.String("secrets-dir", ".secrets/", "directory of secret files")

	for key, flag := range map[string]string{
		"cache.backend": "cache-backend",
		"cache.path":    "cache-path",
		"cache.ttl":     "cache-ttl",
		"log.env":       "log-env",
		"log.level":     "log-level",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paper-tracker")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "paper-tracker"))
		}
	}

	setDefaults(types.DefaultConfig())

	viper.SetEnvPrefix("PAPER_TRACKER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so that environment variables
// reach Unmarshal even when no config file mentions them.
func setDefaults(d types.Config) {
	viper.SetDefault("resolver.timeout", d.Resolver.Timeout)
	viper.SetDefault("resolver.user_agent", d.Resolver.UserAgent)
	viper.SetDefault("resolver.generic_timeout", d.Resolver.GenericTimeout)
	viper.SetDefault("resolver.arxiv_timeout", d.Resolver.ArxivTimeout)
	viper.SetDefault("resolver.arxiv_min_interval", d.Resolver.ArxivMinInterval)
	viper.SetDefault("cache.backend", string(d.Cache.Backend))
	viper.SetDefault("cache.path", d.Cache.Path)
	viper.SetDefault("cache.ttl", d.Cache.TTL)
	viper.SetDefault("cache.purge_schedule", d.Cache.PurgeSchedule)
	viper.SetDefault("server.addr", d.Server.Addr)
	viper.SetDefault("server.app_name", d.Server.AppName)
	viper.SetDefault("log.env", d.Log.Env)
	viper.SetDefault("log.level", d.Log.Level)
}

// loadConfig unmarshals viper state into cfg, builds the logger, and
// loads secrets.
func loadConfig() error {
	var c types.Config
	if err := viper.Unmarshal(&c); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	c.ApplyDefaults()

	l, err := applog.New(c.Log, os.Stderr)
	if err != nil {
		return err
	}

	dir, _ := rootCmd.PersistentFlags().GetString("secrets-dir")
	s, err := secrets.Load(dir, l)
	if err != nil {
		return err
	}
	c.Resolver.UserAgent = secrets.UserAgent(c.Resolver.UserAgent, s)

	cfg, logger = c, l
	logger.WithField("secrets", len(s)).Debug("configuration loaded")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
