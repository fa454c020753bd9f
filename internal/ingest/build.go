// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"github.com/pdiddy/pubwatch/internal/directory"
	"github.com/pdiddy/pubwatch/internal/metacache"
	"github.com/pdiddy/pubwatch/pkg/types"
)

// ArgsBuilder fills in the store-dependent derived fields of a normalized
// publication: affiliations restricted to observed authors, categories,
// topics, and the collaboration classification. These cannot be computed
// until the directory and the meta-cache have been consulted.
type ArgsBuilder struct {
	dir   *directory.Directory
	cache *metacache.Cache
	cfg   types.IngestConfig
}

// NewArgsBuilder creates a builder over the loaded directory and cache.
func NewArgsBuilder(dir *directory.Directory, cache *metacache.Cache, cfg types.IngestConfig) *ArgsBuilder {
	return &ArgsBuilder{dir: dir, cache: cache, cfg: cfg}
}

// Enrich mutates p in place:
//
//   - AuthorAffiliations is narrowed to the observed authors appearing in
//     the publication; authors with no resolvable affiliation are dropped,
//     not zero-filled.
//   - Categories is the union of the observed authors' category tags.
//   - Topics restricts Categories to the configured topic vocabulary.
//   - Collaboration reuses a cached classification unconditionally when one
//     exists, so a reviewer's override of a guess sticks across runs even
//     if the thresholds would now decide differently. Without one it is
//     guessed from the author count.
//   - The author list is truncated to the configured author limit;
//     AuthorCount keeps the full source count.
//   - Status is set to draft for review.
func (b *ArgsBuilder) Enrich(p *types.Publication) {
	observed := make(map[string]string)
	for id, affiliation := range p.AuthorAffiliations {
		if _, ok := b.dir.Lookup(id); ok {
			observed[id] = affiliation
		}
	}
	if len(observed) > 0 {
		p.AuthorAffiliations = observed
	} else {
		p.AuthorAffiliations = nil
	}

	p.Categories = b.dir.CategoriesFor(p.AuthorIDs())
	p.Topics = intersect(b.cfg.Topics, p.Categories)
	p.Collaboration = b.classify(p)

	if b.cfg.AuthorLimit > 0 && len(p.Authors) > b.cfg.AuthorLimit {
		p.Authors = p.Authors[:b.cfg.AuthorLimit]
	}
	p.Status = types.StatusDraft
}

// classify returns the cached collaboration value when the cache carries
// one for this publication, else the threshold guess.
func (b *ArgsBuilder) classify(p *types.Publication) types.Collaboration {
	if b.cache.KeyExists(p.RemoteID, metacache.MetaCollaboration) {
		cached, err := b.cache.ReadMeta(p.RemoteID, metacache.MetaCollaboration)
		if err == nil && cached != "" {
			return types.Collaboration(cached)
		}
	}
	if p.AuthorCount > b.cfg.CollaborationLimit {
		return types.CollaborationAny
	}
	return types.CollaborationNone
}

// intersect returns the members of vocabulary present in values, keeping
// vocabulary order.
func intersect(vocabulary, values []string) []string {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	var out []string
	for _, v := range vocabulary {
		if set[v] {
			out = append(out, v)
		}
	}
	return out
}
