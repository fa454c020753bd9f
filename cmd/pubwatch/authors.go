// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubwatch/internal/store"
	"github.com/pdiddy/pubwatch/pkg/types"
)

var authorsCmd = &cobra.Command{
	Use:   "authors",
	Short: "Manage the observed author list",
}

var authorsImportCmd = &cobra.Command{
	Use:   "import <authors.yaml>",
	Short: "Import or update observed authors from a YAML file",
	Long: `Import reads a YAML list of authors and upserts each one into the
store, keyed by last and first name. Re-importing the same file is a
no-op; importing an edited file updates remote IDs, categories, and
affiliation policies in place.`,
	Args: cobra.ExactArgs(1),
	RunE: runAuthorsImport,
}

var authorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the observed authors",
	RunE:  runAuthorsList,
}

func init() {
	authorsCmd.PersistentFlags().String("store", "", "SQLite database file (default pubwatch.db)")
	authorsCmd.AddCommand(authorsImportCmd)
	authorsCmd.AddCommand(authorsListCmd)
	rootCmd.AddCommand(authorsCmd)
}

func runAuthorsImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading author file: %w", err)
	}

	var authors []types.Author
	if err := yaml.Unmarshal(data, &authors); err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}
	if len(authors) == 0 {
		return fmt.Errorf("%s contains no authors", args[0])
	}

	s, err := store.NewStore(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.ImportAuthors(context.Background(), authors); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d authors\n", len(authors))
	return nil
}

func runAuthorsList(cmd *cobra.Command, args []string) error {
	s, err := store.NewStore(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	authors, err := s.Authors(context.Background())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, a := range authors {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			a.CanonicalName(),
			strings.Join(a.RemoteIDs, ","),
			strings.Join(a.Categories, ","))
	}
	return nil
}
