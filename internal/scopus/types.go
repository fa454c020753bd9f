// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scopus

import (
	"encoding/json"
	"strings"
)

// Work is one full publication record with every field the ingestion core
// needs exposed as a plain accessor, including the EID and author keywords
// the search surface does not return.
type Work struct {
	// ID is the bare remote publication ID (prefix stripped).
	ID string

	EID      string
	DOI      string
	Title    string
	Abstract string

	// CoverDate is the publication date as reported, YYYY-MM-DD.
	CoverDate string

	Journal string
	Volume  string
	ISSN    string

	// Keywords are the author-supplied keywords.
	Keywords []string

	// Authors preserves the source's author list order exactly.
	Authors []WorkAuthor
}

// WorkAuthor is one author term of a work.
type WorkAuthor struct {
	// ID is the remote author profile ID; may be empty.
	ID string

	// IndexedName is the source's short display name ("Smith J.").
	IndexedName string

	// AffiliationID is the affiliation the author published under for this
	// work; empty when the source resolved none.
	AffiliationID string
}

// idPrefix precedes publication IDs in search responses.
const idPrefix = "SCOPUS_ID:"

// stripIDPrefix removes the identifier namespace from a search result ID.
func stripIDPrefix(id string) string {
	return strings.TrimPrefix(id, idPrefix)
}

// --- remote API JSON structures ---

type searchResponse struct {
	Results searchResults `json:"search-results"`
}

type searchResults struct {
	TotalResults string        `json:"opensearch:totalResults"`
	Entries      []searchEntry `json:"entry"`
}

type searchEntry struct {
	Identifier string `json:"dc:identifier"`

	// Error is set instead of an identifier when the result set is empty.
	Error string `json:"error,omitempty"`
}

type abstractResponse struct {
	Response abstractRetrieval `json:"abstracts-retrieval-response"`
}

type abstractRetrieval struct {
	Coredata coredata      `json:"coredata"`
	Authors  authorsGroup  `json:"authors"`
	Keywords *authKeywords `json:"authkeywords"`
}

type coredata struct {
	Identifier      string `json:"dc:identifier"`
	EID             string `json:"eid"`
	DOI             string `json:"prism:doi"`
	Title           string `json:"dc:title"`
	Description     string `json:"dc:description"`
	CoverDate       string `json:"prism:coverDate"`
	PublicationName string `json:"prism:publicationName"`
	Volume          string `json:"prism:volume"`
	ISSN            string `json:"prism:issn"`
}

type authorsGroup struct {
	Author []rawAuthor `json:"author"`
}

type rawAuthor struct {
	AUID        string          `json:"@auid"`
	IndexedName string          `json:"ce:indexed-name"`
	Affiliation affiliationRefs `json:"affiliation"`
}

type affiliationRef struct {
	ID string `json:"@id"`
}

// affiliationRefs tolerates the remote API's habit of returning a single
// object where a list is documented. One affiliation arrives as an object,
// several as an array; both decode to a slice.
type affiliationRefs []affiliationRef

func (a *affiliationRefs) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var list []affiliationRef
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*a = list
		return nil
	}
	var one affiliationRef
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*a = affiliationRefs{one}
	return nil
}

type authKeywords struct {
	Keyword keywordList `json:"author-keyword"`
}

type textValue struct {
	Value string `json:"$"`
}

// keywordList tolerates single-object vs array, like affiliationRefs.
type keywordList []textValue

func (k *keywordList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var list []textValue
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*k = list
		return nil
	}
	var one textValue
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*k = keywordList{one}
	return nil
}

// toWork converts a decoded abstract response into the exported Work form.
func (r *abstractRetrieval) toWork() *Work {
	w := &Work{
		ID:        stripIDPrefix(r.Coredata.Identifier),
		EID:       r.Coredata.EID,
		DOI:       r.Coredata.DOI,
		Title:     r.Coredata.Title,
		Abstract:  r.Coredata.Description,
		CoverDate: r.Coredata.CoverDate,
		Journal:   r.Coredata.PublicationName,
		Volume:    r.Coredata.Volume,
		ISSN:      r.Coredata.ISSN,
	}
	if r.Keywords != nil {
		for _, kw := range r.Keywords.Keyword {
			if kw.Value != "" {
				w.Keywords = append(w.Keywords, kw.Value)
			}
		}
	}
	for _, a := range r.Authors.Author {
		wa := WorkAuthor{ID: a.AUID, IndexedName: a.IndexedName}
		if len(a.Affiliation) > 0 {
			wa.AffiliationID = a.Affiliation[0].ID
		}
		w.Authors = append(w.Authors, wa)
	}
	return w
}
