// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Collaboration classifies a publication's author-list size.
type Collaboration string

const (
	// CollaborationNone marks a normally sized author list.
	CollaborationNone Collaboration = "none"

	// CollaborationAny marks a large multi-institution author list
	// (above the configured collaboration limit).
	CollaborationAny Collaboration = "any"
)

// PublicationStatus is the review state of a stored publication.
type PublicationStatus string

const (
	// StatusDraft marks a freshly imported publication pending review.
	StatusDraft PublicationStatus = "draft"

	// StatusPublished marks a reviewed, visible publication.
	StatusPublished PublicationStatus = "published"
)

// AuthorTerm is one entry of a publication's author list: the display name
// as returned by the remote source paired with the remote author ID. Kept
// as an ordered list, not a map, because source order is meaningful and
// preserved exactly.
type AuthorTerm struct {
	Name     string `json:"name" yaml:"name"`
	RemoteID string `json:"remote_id" yaml:"remote_id"`
}

// Publication is the normalized form of a remote bibliographic record.
// The identity and descriptive fields come straight from the adapter; the
// derived fields (affiliations, categories, topics, collaboration) are
// filled in by the args builder before the record is stored.
type Publication struct {
	// RemoteID is the remote source's publication identifier.
	RemoteID string `json:"remote_id" yaml:"remote_id"`

	// DOI may be empty; not every record carries one.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	Title    string `json:"title" yaml:"title"`
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// Published is the cover date as an ISO date string (YYYY-MM-DD).
	Published string `json:"published" yaml:"published"`

	Journal string `json:"journal,omitempty" yaml:"journal,omitempty"`
	Volume  string `json:"volume,omitempty" yaml:"volume,omitempty"`
	ISSN    string `json:"issn,omitempty" yaml:"issn,omitempty"`
	EID     string `json:"eid,omitempty" yaml:"eid,omitempty"`

	// Tags are the author keywords attached to the record.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// Authors preserves the remote source's author list order.
	Authors []AuthorTerm `json:"authors" yaml:"authors"`

	// AuthorCount is the size of the full author list as reported by the
	// source, which can exceed len(Authors) for very large collaborations.
	AuthorCount int `json:"author_count" yaml:"author_count"`

	// Collaboration is the size classification; see the args builder for
	// the sticky-override rule.
	Collaboration Collaboration `json:"collaboration,omitempty" yaml:"collaboration,omitempty"`

	// AuthorAffiliations maps observed-author remote IDs to the affiliation
	// ID they published under for this record. Authors with no resolvable
	// affiliation are absent, not zero-filled.
	AuthorAffiliations map[string]string `json:"author_affiliations,omitempty" yaml:"author_affiliations,omitempty"`

	// Categories is the union of the observed authors' category tags.
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`

	// Topics restricts Categories to the configured topic vocabulary.
	Topics []string `json:"topics,omitempty" yaml:"topics,omitempty"`

	// Status is the review state in the record store.
	Status PublicationStatus `json:"status,omitempty" yaml:"status,omitempty"`
}

// AuthorIDs returns the remote author IDs of the author list, skipping
// entries the source returned without an ID.
func (p *Publication) AuthorIDs() []string {
	ids := make([]string, 0, len(p.Authors))
	for _, t := range p.Authors {
		if t.RemoteID != "" {
			ids = append(ids, t.RemoteID)
		}
	}
	return ids
}

// AuthorNames returns the display names of the author list in source order.
func (p *Publication) AuthorNames() []string {
	names := make([]string, 0, len(p.Authors))
	for _, t := range p.Authors {
		names = append(names, t.Name)
	}
	return names
}
