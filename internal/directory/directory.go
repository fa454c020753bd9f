// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package directory indexes the observed authors and answers category and
// affiliation-policy questions about their remote IDs.
package directory

import (
	"fmt"
	"sort"

	"github.com/pdiddy/pubwatch/pkg/types"
)

// Verdict is the outcome of an affiliation policy check.
type Verdict string

const (
	// Allow means the affiliation is on an observed author's allow-list.
	Allow Verdict = "allow"

	// Deny means the affiliation is on an observed author's deny-list.
	Deny Verdict = "deny"

	// Unknown means the affiliation appears on neither list.
	Unknown Verdict = "unknown"
)

// Directory holds the observed authors and a flat remote-ID lookup built
// by fanning each author out over all of their remote profiles.
type Directory struct {
	authors []types.Author
	byID    map[string]types.Author
}

// New builds a Directory from the loaded author list. A remote ID claimed
// by two different authors is a data error: the directory refuses to load
// rather than silently picking one of them.
func New(authors []types.Author) (*Directory, error) {
	byID := make(map[string]types.Author)
	for _, a := range authors {
		for _, id := range a.RemoteIDs {
			if prev, ok := byID[id]; ok && prev.CanonicalName() != a.CanonicalName() {
				return nil, fmt.Errorf("remote author ID %s claimed by both %q and %q",
					id, prev.CanonicalName(), a.CanonicalName())
			}
			byID[id] = a
		}
	}
	return &Directory{authors: authors, byID: byID}, nil
}

// Authors returns the observed authors in load order.
func (d *Directory) Authors() []types.Author {
	return d.authors
}

// Lookup returns the author owning the given remote ID.
func (d *Directory) Lookup(remoteID string) (types.Author, bool) {
	a, ok := d.byID[remoteID]
	return a, ok
}

// RemoteIDs returns every indexed remote author ID.
func (d *Directory) RemoteIDs() []string {
	ids := make([]string, 0, len(d.byID))
	for id := range d.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// CategoriesFor returns the union of category tags over every remote ID in
// the input that the directory knows about. Unknown IDs contribute nothing.
// The result is sorted for stable output.
func (d *Directory) CategoriesFor(remoteIDs []string) []string {
	seen := make(map[string]bool)
	for _, id := range remoteIDs {
		a, ok := d.byID[id]
		if !ok {
			continue
		}
		for _, c := range a.Categories {
			seen[c] = true
		}
	}
	cats := make([]string, 0, len(seen))
	for c := range seen {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}

// CheckAffiliation resolves one author/affiliation pair against that
// author's lists. Deny wins over allow for a single author.
func (d *Directory) CheckAffiliation(remoteID, affiliationID string) Verdict {
	a, ok := d.byID[remoteID]
	if !ok {
		return Unknown
	}
	for _, denied := range a.DeniedAffiliations {
		if denied == affiliationID {
			return Deny
		}
	}
	for _, allowed := range a.AllowedAffiliations {
		if allowed == affiliationID {
			return Allow
		}
	}
	return Unknown
}

// CheckAffiliations aggregates per-author verdicts for a publication's
// affiliation map. One Allow anywhere makes the whole publication Allow:
// whitelisting any observed author overrides another author's deny. With
// no allow, one Deny makes it Deny; otherwise Unknown.
func (d *Directory) CheckAffiliations(affiliations map[string]string) Verdict {
	verdict := Unknown
	for remoteID, affiliationID := range affiliations {
		switch d.CheckAffiliation(remoteID, affiliationID) {
		case Allow:
			return Allow
		case Deny:
			verdict = Deny
		}
	}
	return verdict
}
