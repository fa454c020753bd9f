// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"fmt"

	"github.com/pdiddy/pubwatch/internal/scopus"
	"github.com/pdiddy/pubwatch/pkg/types"
)

// AdaptError reports a remote record missing a field the pipeline cannot
// proceed without. The pipeline logs it and skips the record.
type AdaptError struct {
	ID      string
	Missing string
}

func (e *AdaptError) Error() string {
	return fmt.Sprintf("adapting %s: missing %s", e.ID, e.Missing)
}

// Adapt maps a raw remote record to the normalized publication form. It is
// a pure transformation: no I/O, no derived fields (those are the args
// builder's job). The author list keeps the source's iteration order, and
// AuthorAffiliations starts as the raw per-author map; the builder later
// narrows it to observed authors.
func Adapt(work *scopus.Work) (*types.Publication, error) {
	switch {
	case work.ID == "":
		return nil, &AdaptError{ID: work.EID, Missing: "remote ID"}
	case work.Title == "":
		return nil, &AdaptError{ID: work.ID, Missing: "title"}
	case work.CoverDate == "":
		return nil, &AdaptError{ID: work.ID, Missing: "cover date"}
	}

	p := &types.Publication{
		RemoteID:    work.ID,
		DOI:         work.DOI,
		Title:       work.Title,
		Abstract:    work.Abstract,
		Published:   work.CoverDate,
		Journal:     work.Journal,
		Volume:      work.Volume,
		ISSN:        work.ISSN,
		EID:         work.EID,
		Tags:        work.Keywords,
		AuthorCount: len(work.Authors),
	}

	for _, a := range work.Authors {
		p.Authors = append(p.Authors, types.AuthorTerm{
			Name:     a.IndexedName,
			RemoteID: a.ID,
		})
		if a.ID != "" && a.AffiliationID != "" {
			if p.AuthorAffiliations == nil {
				p.AuthorAffiliations = make(map[string]string)
			}
			p.AuthorAffiliations[a.ID] = a.AffiliationID
		}
	}
	return p, nil
}
