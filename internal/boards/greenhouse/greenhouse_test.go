package greenhouse

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spigell/job-finder/internal/boards"
	"github.com/spigell/job-finder/internal/criteria"
)

const boardBody = `{"jobs":[
  {"id": 101, "title": "Registered Nurse", "location": {"name": "Amsterdam, Netherlands"},
   "absolute_url": "https://boards.greenhouse.io/techco/jobs/101",
   "content": "&lt;p&gt;English speaking environment.&lt;/p&gt;&lt;p&gt;No Dutch required.&lt;/p&gt;"},
  {"id": 102, "title": "Data Engineer", "location": {"name": "Remote"}, "absolute_url": "", "content": ""}
]}`

func TestDecode(t *testing.T) {
	postings, err := family{}.Decode(boards.Company{Slug: "techco", Name: "TechCo"}, []byte(boardBody))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(postings) != 2 {
		t.Fatalf("expected 2 postings, got %d", len(postings))
	}

	first := postings[0]
	if first.ID != "gh_techco_101" {
		t.Fatalf("unexpected id %q", first.ID)
	}
	if first.Company != "TechCo" || first.Location != "Amsterdam, Netherlands" || first.Source != "Greenhouse" {
		t.Fatalf("unexpected posting %+v", first)
	}
	if first.Description != "English speaking environment. No Dutch required." {
		t.Fatalf("unexpected description %q", first.Description)
	}
	if postings[1].Description != "" || postings[1].URL != "" {
		t.Fatalf("expected empty strings for missing fields, got %+v", postings[1])
	}
}

func TestDecodeRejectsInvalidJSON(t *testing.T) {
	if _, err := (family{}).Decode(boards.Company{Slug: "x"}, []byte("<html>")); err == nil {
		t.Fatalf("expected error for invalid body")
	}
}

func TestEndpoint(t *testing.T) {
	got := family{}.Endpoint(apiURL, boards.Company{Slug: "gitlab"})
	if got != "https://boards-api.greenhouse.io/v1/boards/gitlab/jobs?content=true" {
		t.Fatalf("unexpected endpoint %q", got)
	}
}

func TestAggregatorSkipsFailingBoard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/broken/jobs":
			w.WriteHeader(http.StatusInternalServerError)
		case "/techco/jobs":
			if r.URL.Query().Get("content") != "true" {
				t.Errorf("expected content=true, got %q", r.URL.RawQuery)
			}
			fmt.Fprint(w, boardBody)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	source := New(boards.BoardConfig{
		BaseURL:   srv.URL,
		Companies: []boards.Company{{Slug: "broken"}, {Slug: "techco", Name: "TechCo"}},
		Pause:     -1,
	}, nil, nil)

	agg := boards.NewAggregator(nil, source)
	postings, reports := agg.FetchAll(context.Background(), criteria.FilterSet{})

	if postings.Len() != 2 {
		t.Fatalf("expected 2 postings from the second board, got %d", postings.Len())
	}
	for _, p := range postings.Items {
		if p.Company != "TechCo" {
			t.Fatalf("unexpected posting from %q", p.Company)
		}
	}

	if len(reports) != 1 || reports[0].Err != nil || reports[0].Postings != 2 {
		t.Fatalf("unexpected reports %+v", reports)
	}
}

func TestNewUsesDefaultCompanies(t *testing.T) {
	source := New(boards.BoardConfig{}, nil, nil)

	companies := source.Companies()
	if len(companies) != len(DefaultCompanies) {
		t.Fatalf("expected %d default companies, got %d", len(DefaultCompanies), len(companies))
	}
	if companies[0].Slug != "airbnb" || companies[0].Name != "Airbnb" {
		t.Fatalf("unexpected first company %+v", companies[0])
	}
	if source.Name() != "Greenhouse" {
		t.Fatalf("unexpected name %q", source.Name())
	}
}
