// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pubwatch/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "pubwatch/0.1"
	defaultStorePath = "pubwatch.db"
	defaultCachePath = "pubwatch-cache.json"
)

// sourceConfig resolves the remote source settings from config file,
// environment, and secrets.
func sourceConfig() types.SourceConfig {
	cfg := types.SourceConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("source.timeout"),
			UserAgent: viper.GetString("source.user_agent"),
		},
		APIKey:     secretDefault("scopus-api-key", viper.GetString("source.api_key")),
		InstToken:  secretDefault("scopus-inst-token", viper.GetString("source.inst_token")),
		RateLimit:  viper.GetFloat64("source.rate_limit"),
		PageSize:   viper.GetInt("source.page_size"),
		MaxRetries: viper.GetInt("source.max_retries"),
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	return cfg
}

// storeConfig resolves the store path, preferring an explicit flag.
func storeConfig(cmd *cobra.Command) types.StoreConfig {
	path, _ := cmd.Flags().GetString("store")
	if path == "" {
		path = viper.GetString("store.path")
	}
	if path == "" {
		path = defaultStorePath
	}
	return types.StoreConfig{Path: path}
}

// ingestConfig resolves the batch-job parameters: flags win over the
// config file, which wins over defaults.
func ingestConfig(cmd *cobra.Command) types.IngestConfig {
	cfg := types.IngestConfig{
		DateLimit:          viper.GetString("ingest.date_limit"),
		Count:              -1,
		AuthorLimit:        100,
		CollaborationLimit: 50,
		CachePath:          viper.GetString("ingest.cache_path"),
		Topics:             viper.GetStringSlice("ingest.topics"),
	}
	if viper.IsSet("ingest.count") {
		cfg.Count = viper.GetInt("ingest.count")
	}
	if viper.IsSet("ingest.author_limit") {
		cfg.AuthorLimit = viper.GetInt("ingest.author_limit")
	}
	if viper.IsSet("ingest.collaboration_limit") {
		cfg.CollaborationLimit = viper.GetInt("ingest.collaboration_limit")
	}

	if cmd.Flags().Changed("date-limit") {
		cfg.DateLimit, _ = cmd.Flags().GetString("date-limit")
	}
	if cmd.Flags().Changed("count") {
		cfg.Count, _ = cmd.Flags().GetInt("count")
	}
	if cmd.Flags().Changed("author-limit") {
		cfg.AuthorLimit, _ = cmd.Flags().GetInt("author-limit")
	}
	if cmd.Flags().Changed("collaboration-limit") {
		cfg.CollaborationLimit, _ = cmd.Flags().GetInt("collaboration-limit")
	}
	if cmd.Flags().Changed("cache") {
		cfg.CachePath, _ = cmd.Flags().GetString("cache")
	}
	if cfg.CachePath == "" {
		cfg.CachePath = defaultCachePath
	}
	return cfg
}
