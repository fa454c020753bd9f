// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"sort"

	"github.com/pdiddy/pubwatch/pkg/types"
)

// RemoteIDs queries the source for every publication ID attributed to the
// observed authors, across all of each author's remote profiles, merged and
// deduplicated. A failed query for one profile is logged to w and skipped;
// reconciliation continues with the remaining profiles.
func RemoteIDs(ctx context.Context, src Source, authors []types.Author, w io.Writer) []string {
	seen := make(map[string]bool)
	for _, a := range authors {
		for _, remoteID := range a.RemoteIDs {
			ids, err := src.AuthorWorkIDs(ctx, remoteID)
			if err != nil {
				fmt.Fprintf(w, "warning: listing works for %s (%s): %v\n",
					a.CanonicalName(), remoteID, err)
				continue
			}
			for _, id := range ids {
				seen[id] = true
			}
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// PendingIDs returns the remote IDs in all that are not yet stored, in
// random order. The shuffle keeps one systematically broken remote record
// from blocking the same prefix of the queue on every run, so the order is
// deliberately not reproducible.
func PendingIDs(all, stored []string) []string {
	storedSet := make(map[string]bool, len(stored))
	for _, id := range stored {
		storedSet[id] = true
	}

	var pending []string
	seen := make(map[string]bool)
	for _, id := range all {
		if storedSet[id] || seen[id] {
			continue
		}
		seen[id] = true
		pending = append(pending, id)
	}

	rand.Shuffle(len(pending), func(i, j int) {
		pending[i], pending[j] = pending[j], pending[i]
	})
	return pending
}
