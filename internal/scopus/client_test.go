// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scopus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/pdiddy/pubwatch/pkg/types"
)

func testConfig() types.SourceConfig {
	return types.SourceConfig{
		HTTPConfig: types.HTTPConfig{UserAgent: "pubwatch-test/0"},
		APIKey:     "test-key",
		RateLimit:  1000,
		PageSize:   2,
	}
}

const sampleAbstractJSON = `{
  "abstracts-retrieval-response": {
    "coredata": {
      "dc:identifier": "SCOPUS_ID:85001",
      "eid": "2-s2.0-85001",
      "prism:doi": "10.1000/xyz123",
      "dc:title": "A Study of Things",
      "dc:description": "We study things.",
      "prism:coverDate": "2024-03-01",
      "prism:publicationName": "Journal of Things",
      "prism:volume": "42",
      "prism:issn": "1234-5678"
    },
    "authors": {
      "author": [
        {"@auid": "A1", "ce:indexed-name": "Smith J.",
         "affiliation": {"@id": "INST-1"}},
        {"@auid": "A2", "ce:indexed-name": "Doe J.",
         "affiliation": [{"@id": "INST-2"}, {"@id": "INST-3"}]},
        {"ce:indexed-name": "Anon X."}
      ]
    },
    "authkeywords": {
      "author-keyword": [{"$": "things"}, {"$": "studies"}]
    }
  }
}`

func TestAuthorWorkIDsPaginates(t *testing.T) {
	var starts []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != searchPath {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("X-ELS-APIKey"); got != "test-key" {
			t.Errorf("X-ELS-APIKey = %q", got)
		}
		if got := r.URL.Query().Get("query"); got != "AU-ID(A1)" {
			t.Errorf("query = %q", got)
		}

		start := r.URL.Query().Get("start")
		starts = append(starts, start)

		var entries []map[string]string
		switch start {
		case "0":
			entries = []map[string]string{
				{"dc:identifier": "SCOPUS_ID:P1"},
				{"dc:identifier": "SCOPUS_ID:P2"},
			}
		case "2":
			entries = []map[string]string{
				{"dc:identifier": "SCOPUS_ID:P3"},
			}
		}
		resp := map[string]any{
			"search-results": map[string]any{
				"opensearch:totalResults": "3",
				"entry":                   entries,
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer ts.Close()

	c := NewClient(testConfig(), WithBaseURL(ts.URL), WithHTTPClient(ts.Client()))
	ids, err := c.AuthorWorkIDs(context.Background(), "A1")
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"P1", "P2", "P3"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("AuthorWorkIDs() = %v, want %v", ids, want)
	}
	if !reflect.DeepEqual(starts, []string{"0", "2"}) {
		t.Errorf("pagination starts = %v, want [0 2]", starts)
	}
}

func TestAuthorWorkIDsEmptyResultSet(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"search-results": {"opensearch:totalResults": "0",
			"entry": [{"error": "Result set was empty"}]}}`)
	}))
	defer ts.Close()

	c := NewClient(testConfig(), WithBaseURL(ts.URL), WithHTTPClient(ts.Client()))
	ids, err := c.AuthorWorkIDs(context.Background(), "A1")
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 0 {
		t.Errorf("AuthorWorkIDs() = %v, want empty", ids)
	}
}

func TestAuthorWorkIDsTransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	c := NewClient(testConfig(), WithBaseURL(ts.URL), WithHTTPClient(ts.Client()))
	if _, err := c.AuthorWorkIDs(context.Background(), "A1"); err == nil {
		t.Fatal("AuthorWorkIDs() did not surface HTTP 401")
	}
}

func TestFetchWork(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != abstractPath+"85001" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("view"); got != "FULL" {
			t.Errorf("view = %q", got)
		}
		fmt.Fprint(w, sampleAbstractJSON)
	}))
	defer ts.Close()

	c := NewClient(testConfig(), WithBaseURL(ts.URL), WithHTTPClient(ts.Client()))
	work, err := c.FetchWork(context.Background(), "85001")
	if err != nil {
		t.Fatal(err)
	}

	if work.ID != "85001" {
		t.Errorf("ID = %q", work.ID)
	}
	if work.EID != "2-s2.0-85001" || work.DOI != "10.1000/xyz123" {
		t.Errorf("identifiers = %q / %q", work.EID, work.DOI)
	}
	if work.Title != "A Study of Things" || work.CoverDate != "2024-03-01" {
		t.Errorf("coredata = %q / %q", work.Title, work.CoverDate)
	}
	if work.Journal != "Journal of Things" || work.Volume != "42" || work.ISSN != "1234-5678" {
		t.Errorf("journal fields = %q / %q / %q", work.Journal, work.Volume, work.ISSN)
	}
	if !reflect.DeepEqual(work.Keywords, []string{"things", "studies"}) {
		t.Errorf("Keywords = %v", work.Keywords)
	}

	wantAuthors := []WorkAuthor{
		{ID: "A1", IndexedName: "Smith J.", AffiliationID: "INST-1"},
		{ID: "A2", IndexedName: "Doe J.", AffiliationID: "INST-2"},
		{IndexedName: "Anon X."},
	}
	if !reflect.DeepEqual(work.Authors, wantAuthors) {
		t.Errorf("Authors = %+v, want %+v", work.Authors, wantAuthors)
	}
}

func TestFetchWorkNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	c := NewClient(testConfig(), WithBaseURL(ts.URL), WithHTTPClient(ts.Client()))
	if _, err := c.FetchWork(context.Background(), "nope"); err == nil {
		t.Fatal("FetchWork() did not surface HTTP 404")
	}
}

func TestAffiliationRefsSingleObject(t *testing.T) {
	var a rawAuthor
	raw := `{"@auid": "A1", "ce:indexed-name": "Smith J.", "affiliation": {"@id": "X"}}`
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		t.Fatal(err)
	}
	if len(a.Affiliation) != 1 || a.Affiliation[0].ID != "X" {
		t.Errorf("Affiliation = %+v", a.Affiliation)
	}
}

func TestKeywordListSingleObject(t *testing.T) {
	var kws authKeywords
	if err := json.Unmarshal([]byte(`{"author-keyword": {"$": "solo"}}`), &kws); err != nil {
		t.Fatal(err)
	}
	if len(kws.Keyword) != 1 || kws.Keyword[0].Value != "solo" {
		t.Errorf("Keyword = %+v", kws.Keyword)
	}
}
