// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubwatch/internal/store"
)

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete all imported publications",
	Long: `Purge empties the publication table so the next ingest run starts
from a clean store. Observed authors and the meta-cache are untouched;
records rejected in earlier runs stay rejected.`,
	RunE: runPurge,
}

func init() {
	purgeCmd.Flags().String("store", "", "SQLite database file (default pubwatch.db)")
	purgeCmd.Flags().Bool("yes", false, "confirm deletion")
	rootCmd.AddCommand(purgeCmd)
}

func runPurge(cmd *cobra.Command, args []string) error {
	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		return fmt.Errorf("purge deletes every imported publication; re-run with --yes to confirm")
	}

	s, err := store.NewStore(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.DeleteAllPublications(context.Background()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "purged all publications")
	return nil
}
