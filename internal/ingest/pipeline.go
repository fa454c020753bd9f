// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/pubwatch/internal/directory"
	"github.com/pdiddy/pubwatch/internal/metacache"
	"github.com/pdiddy/pubwatch/pkg/types"
)

// RunSummary holds the per-item outcome counters of one ingestion run.
type RunSummary struct {
	// Accepted publications were upserted into the record store.
	Accepted int

	// Rejected publications were filtered by policy: excluded, stale, or
	// affiliation-denied. Their cache entries persist.
	Rejected int

	// Skipped items failed transiently (fetch, adapt, store write) and
	// will be reconsidered on a later run.
	Skipped int
}

// Total returns the number of candidate IDs processed.
func (s RunSummary) Total() int {
	return s.Accepted + s.Rejected + s.Skipped
}

// Pipeline is the ingestion state machine. One Run reconciles remote IDs
// against the store, then walks the pending queue one blocking fetch at a
// time: consult cache → maybe skip → fetch → adapt → enrich → cache write →
// accept or reject → upsert. Runs are single-threaded by design, to keep
// the remote API happy and the progress log sequential.
type Pipeline struct {
	src     Source
	store   RecordStore
	dir     *directory.Directory
	cache   *metacache.Cache
	builder *ArgsBuilder
	cfg     types.IngestConfig
	w       io.Writer

	// OnAccept, when set, is called with the stored remote ID of each
	// accepted publication.
	OnAccept func(remoteID string)
}

// New assembles a pipeline over already-constructed collaborators. All
// fatal conditions (store unreachable, directory collision, corrupt cache)
// surface while constructing those collaborators, before New is reached;
// everything past this point is per-item fault tolerant.
func New(src Source, store RecordStore, dir *directory.Directory, cache *metacache.Cache, cfg types.IngestConfig, w io.Writer) *Pipeline {
	return &Pipeline{
		src:     src,
		store:   store,
		dir:     dir,
		cache:   cache,
		builder: NewArgsBuilder(dir, cache, cfg),
		cfg:     cfg,
		w:       w,
	}
}

// Run executes one ingestion pass and persists the meta-cache exactly once
// after the loop ends, whether the queue drained, the accept limit was
// reached, or the context was cancelled. Per-item failures are logged and
// skipped; Run only returns an error for cache persistence or context
// cancellation.
func (p *Pipeline) Run(ctx context.Context) (RunSummary, error) {
	var summary RunSummary

	all := RemoteIDs(ctx, p.src, p.dir.Authors(), p.w)
	stored, err := p.store.PublicationIDs(ctx)
	if err != nil {
		return summary, fmt.Errorf("listing stored publications: %w", err)
	}
	pending := PendingIDs(all, stored)
	fmt.Fprintf(p.w, "%d remote, %d stored, %d pending\n", len(all), len(stored), len(pending))

	var runErr error
loop:
	for _, id := range pending {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
			break loop
		default:
		}

		// A non-negative accept limit is an exact stop; negative drains
		// the whole queue.
		if p.cfg.Count >= 0 && summary.Accepted >= p.cfg.Count {
			break
		}

		switch p.process(ctx, id) {
		case outcomeAccepted:
			summary.Accepted++
		case outcomeRejected:
			summary.Rejected++
		case outcomeSkipped:
			summary.Skipped++
		}
	}

	if err := p.cache.Persist(); err != nil {
		return summary, fmt.Errorf("persisting cache: %w", err)
	}

	fmt.Fprintf(p.w, "\nRun summary: %d accepted, %d rejected, %d skipped (total: %d)\n",
		summary.Accepted, summary.Rejected, summary.Skipped, summary.Total())
	return summary, runErr
}

type outcome int

const (
	outcomeAccepted outcome = iota
	outcomeRejected
	outcomeSkipped
)

// process runs one candidate remote ID through the filter stages in strict
// short-circuit order. The first two stages decide from the cache alone,
// with no network call.
func (p *Pipeline) process(ctx context.Context, id string) outcome {
	if p.cache.KeyExists(id, metacache.MetaExclude) {
		fmt.Fprintf(p.w, "rejected %s: excluded by reviewer\n", id)
		return outcomeRejected
	}

	if p.cache.Contains(id) {
		cached, err := p.cache.Published(id)
		if err == nil && onOrBefore(cached, p.cfg.DateLimit) {
			fmt.Fprintf(p.w, "rejected %s: stale (cached %s)\n", id, cached)
			return outcomeRejected
		}
	}

	work, err := p.src.FetchWork(ctx, id)
	if err != nil {
		fmt.Fprintf(p.w, "skipped %s: fetch failed: %v\n", id, err)
		return outcomeSkipped
	}

	pub, err := Adapt(work)
	if err != nil {
		fmt.Fprintf(p.w, "skipped %s: %v\n", id, err)
		return outcomeSkipped
	}

	// The cache learns the real title and date whether or not the record
	// is accepted; that is what makes future runs cheap for rejects.
	p.cache.Write(id, pub.Title, pub.Published)

	if onOrBefore(pub.Published, p.cfg.DateLimit) {
		fmt.Fprintf(p.w, "rejected %s: stale (%s)\n", id, pub.Published)
		return outcomeRejected
	}

	p.builder.Enrich(pub)
	p.cache.WriteMeta(id, metacache.MetaCollaboration, string(pub.Collaboration))

	// Unknown affiliations reject: import only what an allow-list vouches for.
	if verdict := p.dir.CheckAffiliations(pub.AuthorAffiliations); verdict != directory.Allow {
		fmt.Fprintf(p.w, "rejected %s: affiliation %s\n", id, verdict)
		return outcomeRejected
	}

	storedID, err := p.store.UpsertPublication(ctx, pub)
	if err != nil {
		fmt.Fprintf(p.w, "skipped %s: store write failed: %v\n", id, err)
		return outcomeSkipped
	}

	fmt.Fprintf(p.w, "accepted %s: %s\n", storedID, pub.Title)
	if p.OnAccept != nil {
		p.OnAccept(storedID)
	}
	return outcomeAccepted
}

// onOrBefore reports whether date falls on or before floor. Both are ISO
// dates; an empty or unparseable value never triggers a rejection.
func onOrBefore(date, floor string) bool {
	if date == "" || floor == "" {
		return false
	}
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false
	}
	f, err := time.Parse("2006-01-02", floor)
	if err != nil {
		return false
	}
	return !d.After(f)
}
