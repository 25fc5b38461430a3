// Package priorart provides the prior-art lookup capability used by the
// review generator to assess the originality of a proposal. The capability is
// an interface so callers can select between a canned fixture (tests, demos)
// and a real scholarly-search backend at configuration time.
package priorart

import "context"

// Finding is a single prior-art search hit.
type Finding struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

// Result is the outcome of one lookup. An empty Results slice is a valid,
// meaningful outcome — absence of prior art is itself a finding — so callers
// must not treat it as a failure.
type Result struct {
	Results []Finding `json:"results"`
	Summary string    `json:"summary"`
}

// Searcher performs a prior-art lookup for a query string.
type Searcher interface {
	Search(ctx context.Context, query string) (Result, error)
}

// NoPriorArtSummary is the summary returned when a lookup finds nothing.
const NoPriorArtSummary = "No significant prior art was found. The idea appears to be novel."
