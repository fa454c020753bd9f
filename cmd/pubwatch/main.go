// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pubwatch CLI: observing a
// curated list of researchers, importing their publications from a remote
// bibliographic API, and deriving collaboration analytics.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pubwatch/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback if non-empty, else the named secret.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the pubwatch CLI.
var rootCmd = &cobra.Command{
	Use:   "pubwatch",
	Short: "Watch researchers and import their publications",
	Long: `pubwatch observes a curated list of authors, queries a remote
bibliographic API for their publications, and imports new records into a
local SQLite store, filtered by staleness, affiliation policy, and
collaboration size. A persistent meta-cache keeps already-rejected records
from costing a network call on later runs.

Each operation is a subcommand: ingest runs the import pipeline, authors
manages the observed-author list, metrics derives the collaboration graph,
and purge empties the imported corpus.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pubwatch.yaml or ~/.config/pubwatch/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pubwatch")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pubwatch"))
		}
	}

	viper.SetEnvPrefix("PUBWATCH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
