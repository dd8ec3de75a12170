package googlejobs

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/spigell/job-finder/internal/criteria"
)

func TestFetchWithoutKeyMakesNoRequest(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	source := New(Config{APIKey: "  ", BaseURL: srv.URL}, nil, nil)
	if source.Enabled() {
		t.Fatalf("expected source to be disabled without key")
	}

	postings, err := source.Fetch(context.Background(), criteria.FilterSet{Role: "Nurse"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if postings.Len() != 0 {
		t.Fatalf("expected no postings, got %d", postings.Len())
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Fatalf("expected no requests, got %d", calls)
	}
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("engine") != "google_jobs" || q.Get("api_key") != "secret" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		if q.Get("q") != "Nurse in Utrecht" || q.Get("location") != "Utrecht" || q.Get("hl") != "en" {
			t.Errorf("unexpected search %q", r.URL.RawQuery)
		}

		fmt.Fprint(w, `{"jobs_results":[
		  {"job_id": "j1", "title": "Nurse", "company_name": "UMC", "location": "Utrecht",
		   "description": "Care", "share_url": "https://g.co/j1",
		   "related_links": [{"link": "https://umc.nl/j1"}]},
		  {"job_id": "j2", "title": "Nurse", "company_name": "Diakonessenhuis", "location": "Utrecht",
		   "related_links": [{"link": ""}, {"link": "https://dh.nl/j2"}]}
		]}`)
	}))
	defer srv.Close()

	source := New(Config{APIKey: "secret", BaseURL: srv.URL}, nil, nil)
	postings, err := source.Fetch(context.Background(), criteria.FilterSet{Role: "Nurse", Location: "Utrecht"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if postings.Len() != 2 {
		t.Fatalf("expected 2 postings, got %d", postings.Len())
	}
	if p := postings.Items[0]; p.ID != "google_j1" || p.URL != "https://g.co/j1" || p.Source != "Google Jobs" {
		t.Fatalf("unexpected posting %+v", p)
	}
	if p := postings.Items[1]; p.URL != "https://dh.nl/j2" || p.Description != "" {
		t.Fatalf("expected related link fallback, got %+v", p)
	}
}

func TestFetchFailsOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	source := New(Config{APIKey: "secret", BaseURL: srv.URL}, nil, nil)
	if _, err := source.Fetch(context.Background(), criteria.FilterSet{}); err == nil {
		t.Fatalf("expected error for 401 response")
	}
}

func TestQueryDefaults(t *testing.T) {
	source := New(Config{APIKey: "k"}, nil, nil)

	q := source.query(criteria.FilterSet{})
	if q.Get("q") != "jobs" {
		t.Fatalf("expected default search, got %q", q.Get("q"))
	}
	if q.Has("location") {
		t.Fatalf("expected no location parameter")
	}
}
