// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubwatch/internal/directory"
	"github.com/pdiddy/pubwatch/internal/ingest"
	"github.com/pdiddy/pubwatch/internal/metacache"
	"github.com/pdiddy/pubwatch/internal/scopus"
	"github.com/pdiddy/pubwatch/internal/store"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch and import new publications for the observed authors",
	Long: `Ingest reconciles the remote source against the local store, fetches
records not yet imported, and accepts or rejects each one by staleness,
affiliation policy, and collaboration size. Rejected records stay in the
meta-cache so later runs skip them without a network call.

Per-record failures are logged and skipped; the run only aborts when the
store, the author directory, or the cache cannot be loaded at all.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().String("date-limit", "", "reject publications on or before this date (YYYY-MM-DD)")
	ingestCmd.Flags().Int("count", -1, "stop after this many accepted publications (negative = unbounded)")
	ingestCmd.Flags().Int("author-limit", 100, "maximum author terms kept per publication")
	ingestCmd.Flags().Int("collaboration-limit", 50, "author count above which a record is a collaboration")
	ingestCmd.Flags().String("store", "", "SQLite database file (default pubwatch.db)")
	ingestCmd.Flags().String("cache", "", "meta-cache file (default pubwatch-cache.json)")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg := ingestConfig(cmd)

	s, err := store.NewStore(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()

	authors, err := s.Authors(ctx)
	if err != nil {
		return err
	}
	if len(authors) == 0 {
		return fmt.Errorf("no observed authors in the store; run 'pubwatch authors import' first")
	}

	dir, err := directory.New(authors)
	if err != nil {
		return fmt.Errorf("loading author directory: %w", err)
	}

	cache, err := metacache.Load(cfg.CachePath)
	if err != nil {
		return err
	}

	client := scopus.NewClient(sourceConfig())

	pipeline := ingest.New(client, s, dir, cache, cfg, os.Stdout)
	_, err = pipeline.Run(ctx)
	return err
}
