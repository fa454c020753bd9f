// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"errors"
	"reflect"
	"testing"

	"github.com/pdiddy/pubwatch/internal/scopus"
	"github.com/pdiddy/pubwatch/pkg/types"
)

func sampleWork() *scopus.Work {
	return &scopus.Work{
		ID:        "P1",
		EID:       "2-s2.0-P1",
		DOI:       "10.1000/p1",
		Title:     "A Study of Things",
		Abstract:  "We study things.",
		CoverDate: "2024-03-01",
		Journal:   "Journal of Things",
		Volume:    "42",
		ISSN:      "1234-5678",
		Keywords:  []string{"things", "studies"},
		Authors: []scopus.WorkAuthor{
			{ID: "A1", IndexedName: "Smith J.", AffiliationID: "INST-1"},
			{ID: "A2", IndexedName: "Doe J.", AffiliationID: "INST-2"},
			{IndexedName: "Anon X."},
		},
	}
}

func TestAdaptMapsAllFields(t *testing.T) {
	p, err := Adapt(sampleWork())
	if err != nil {
		t.Fatal(err)
	}

	if p.RemoteID != "P1" || p.DOI != "10.1000/p1" || p.EID != "2-s2.0-P1" {
		t.Errorf("identifiers = %q / %q / %q", p.RemoteID, p.DOI, p.EID)
	}
	if p.Title != "A Study of Things" || p.Published != "2024-03-01" {
		t.Errorf("title/date = %q / %q", p.Title, p.Published)
	}
	if p.Journal != "Journal of Things" || p.Volume != "42" || p.ISSN != "1234-5678" {
		t.Errorf("journal fields = %q / %q / %q", p.Journal, p.Volume, p.ISSN)
	}
	if !reflect.DeepEqual(p.Tags, []string{"things", "studies"}) {
		t.Errorf("Tags = %v", p.Tags)
	}
	if p.AuthorCount != 3 {
		t.Errorf("AuthorCount = %d, want 3", p.AuthorCount)
	}

	// Source iteration order is preserved exactly, unnamed IDs included.
	wantAuthors := []types.AuthorTerm{
		{Name: "Smith J.", RemoteID: "A1"},
		{Name: "Doe J.", RemoteID: "A2"},
		{Name: "Anon X."},
	}
	if !reflect.DeepEqual(p.Authors, wantAuthors) {
		t.Errorf("Authors = %+v, want %+v", p.Authors, wantAuthors)
	}

	wantAffiliations := map[string]string{"A1": "INST-1", "A2": "INST-2"}
	if !reflect.DeepEqual(p.AuthorAffiliations, wantAffiliations) {
		t.Errorf("AuthorAffiliations = %v, want %v", p.AuthorAffiliations, wantAffiliations)
	}
}

func TestAdaptMissingCoreFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*scopus.Work)
		missing string
	}{
		{"no remote ID", func(w *scopus.Work) { w.ID = "" }, "remote ID"},
		{"no title", func(w *scopus.Work) { w.Title = "" }, "title"},
		{"no cover date", func(w *scopus.Work) { w.CoverDate = "" }, "cover date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := sampleWork()
			tt.mutate(w)
			_, err := Adapt(w)

			var adaptErr *AdaptError
			if !errors.As(err, &adaptErr) {
				t.Fatalf("Adapt() error = %v, want *AdaptError", err)
			}
			if adaptErr.Missing != tt.missing {
				t.Errorf("Missing = %q, want %q", adaptErr.Missing, tt.missing)
			}
		})
	}
}
