package priorart

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newScholarTest(t *testing.T, handler http.HandlerFunc) *ScholarSearcher {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	s, err := NewScholarSearcher(ScholarConfig{
		APIKey:     "test-key",
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
	})
	if err != nil {
		t.Fatalf("NewScholarSearcher: %v", err)
	}
	return s
}

func TestScholarRequiresAPIKey(t *testing.T) {
	if _, err := NewScholarSearcher(ScholarConfig{}); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestScholarParsesResults(t *testing.T) {
	var gotQuery, gotEngine string
	s := newScholarTest(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotEngine = r.URL.Query().Get("engine")
		w.Write([]byte(`{"organic_results":[
			{"title":"Paper A","snippet":"about A","link":"https://x/a"},
			{"title":"Paper B","snippet":"about B","link":"https://x/b"},
			{"title":"","snippet":"missing title","link":"https://x/c"}
		]}`))
	})

	res, err := s.Search(context.Background(), "quantum processors")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if gotEngine != "google_scholar" {
		t.Fatalf("engine = %q", gotEngine)
	}
	if gotQuery != "quantum processors" {
		t.Fatalf("q = %q", gotQuery)
	}
	if len(res.Results) != 2 {
		t.Fatalf("expected 2 findings (untitled dropped), got %d", len(res.Results))
	}
	if res.Summary == NoPriorArtSummary {
		t.Fatal("non-empty results should not carry the no-prior-art summary")
	}
}

func TestScholarEmptyResults(t *testing.T) {
	s := newScholarTest(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"organic_results":[]}`))
	})
	res, err := s.Search(context.Background(), "basket weaving robotics")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res.Results) != 0 || res.Summary != NoPriorArtSummary {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestScholarAuthFailure(t *testing.T) {
	s := newScholarTest(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	if _, err := s.Search(context.Background(), "anything"); err == nil {
		t.Fatal("expected error on 401")
	}
}

func TestScholarAPIErrorField(t *testing.T) {
	s := newScholarTest(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"error":"You are out of searches."}`))
	})
	if _, err := s.Search(context.Background(), "anything"); err == nil {
		t.Fatal("expected error when the API reports one")
	}
}

func TestScholarRejectsEmptyQuery(t *testing.T) {
	s := newScholarTest(t, func(w http.ResponseWriter, _ *http.Request) {
		t.Error("no request should be made for an empty query")
	})
	if _, err := s.Search(context.Background(), "   "); err == nil {
		t.Fatal("expected error for empty query")
	}
}

func TestScholarCapsFindings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"organic_results":[
			{"title":"1","link":"https://x/1"},{"title":"2","link":"https://x/2"},
			{"title":"3","link":"https://x/3"},{"title":"4","link":"https://x/4"}
		]}`))
	}))
	t.Cleanup(srv.Close)
	s, err := NewScholarSearcher(ScholarConfig{APIKey: "k", BaseURL: srv.URL, MaxFindings: 2, HTTPClient: srv.Client()})
	if err != nil {
		t.Fatalf("NewScholarSearcher: %v", err)
	}
	res, err := s.Search(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res.Results) != 2 {
		t.Fatalf("expected cap of 2 findings, got %d", len(res.Results))
	}
}
