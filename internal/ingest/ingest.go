// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest drives the publication ingestion pipeline: reconciling
// remote IDs against the record store, fetching and adapting remote
// records, enriching them with directory and cache context, and deciding
// per record whether to import it.
package ingest

import (
	"context"

	"github.com/pdiddy/pubwatch/internal/scopus"
	"github.com/pdiddy/pubwatch/pkg/types"
)

// Source is the remote publication source as the pipeline consumes it.
// *scopus.Client implements it; tests substitute fakes.
type Source interface {
	// AuthorWorkIDs lists the remote publication IDs attributed to one
	// remote author profile.
	AuthorWorkIDs(ctx context.Context, authorID string) ([]string, error)

	// FetchWork retrieves one full publication record.
	FetchWork(ctx context.Context, id string) (*scopus.Work, error)
}

// RecordStore is the slice of the record store the pipeline needs.
type RecordStore interface {
	// PublicationIDs returns the remote IDs of every stored publication.
	PublicationIDs(ctx context.Context) ([]string, error)

	// UpsertPublication durably stores one accepted publication.
	UpsertPublication(ctx context.Context, p *types.Publication) (string, error)
}
