// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubwatch/internal/metrics"
	"github.com/pdiddy/pubwatch/internal/store"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Derive the collaboration graph from imported publications",
	Long: `Metrics counts publications and pairwise co-authorships over the
observed authors and emits a renderable graph: one node per author, sized
by publication count, linked by shared publications. Draft records and
collaborations are excluded from the counts.`,
	RunE: runMetrics,
}

func init() {
	metricsCmd.Flags().String("store", "", "SQLite database file (default pubwatch.db)")
	metricsCmd.Flags().String("format", "json", "output format: json or yaml")
	metricsCmd.Flags().String("out", "", "output file (default stdout)")
	rootCmd.AddCommand(metricsCmd)
}

func runMetrics(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != "json" && format != "yaml" {
		return fmt.Errorf("unknown format %q: want json or yaml", format)
	}

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
	pubs, err := s.Publications(ctx, false, false)
	if err != nil {
		return err
	}

	counts := metrics.Counts(authors, pubs)
	coop := metrics.CooperationCounts(authors, pubs)
	colors := metrics.CategoryColors(authors)
	graph := metrics.BuildGraph(authors, counts, coop, colors)

	var out io.Writer = cmd.OutOrStdout()
	if path, _ := cmd.Flags().GetString("out"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		defer f.Close()
		out = f
	}

	switch format {
	case "yaml":
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return enc.Encode(graph)
	default:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(graph)
	}
}
