package priorart

import (
	"context"
	"testing"
)

func TestFixtureQuantumQuery(t *testing.T) {
	res, err := NewFixtureSearcher().Search(context.Background(), "quantum computing processor qubit")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res.Results) != 2 {
		t.Fatalf("expected 2 findings, got %d", len(res.Results))
	}
	if res.Results[0].Title != "A 12-Qubit Superconducting Quantum Processor" {
		t.Fatalf("unexpected first finding %q", res.Results[0].Title)
	}
	if res.Summary == "" || res.Summary == NoPriorArtSummary {
		t.Fatalf("expected a competitive-field summary, got %q", res.Summary)
	}
}

func TestFixtureDiagnosticImagingQuery(t *testing.T) {
	res, err := NewFixtureSearcher().Search(context.Background(), "ai diagnostic imaging rural healthcare")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res.Results) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(res.Results))
	}
	if res.Results[0].Title != "Deep Learning for Diagnostic Imaging: A Review" {
		t.Fatalf("unexpected finding %q", res.Results[0].Title)
	}
}

func TestFixtureUnknownQuery(t *testing.T) {
	res, err := NewFixtureSearcher().Search(context.Background(), "basket weaving robotics")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res.Results) != 0 {
		t.Fatalf("expected no findings, got %d", len(res.Results))
	}
	if res.Results == nil {
		t.Fatal("results must be an empty slice, not nil")
	}
	if res.Summary != NoPriorArtSummary {
		t.Fatalf("summary = %q, want %q", res.Summary, NoPriorArtSummary)
	}
}

func TestFixtureMatchIsCaseInsensitive(t *testing.T) {
	res, err := NewFixtureSearcher().Search(context.Background(), "QUANTUM processors")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res.Results) != 2 {
		t.Fatalf("expected 2 findings for uppercased query, got %d", len(res.Results))
	}
}
