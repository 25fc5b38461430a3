package priorart

import (
	"context"
	"strings"
)

// FixtureSearcher serves canned prior-art outcomes keyed by substring match.
// It stands in for a real scholarly-search backend in tests and demo
// deployments and never performs network IO.
type FixtureSearcher struct{}

func NewFixtureSearcher() *FixtureSearcher {
	return &FixtureSearcher{}
}

func (f *FixtureSearcher) Search(_ context.Context, query string) (Result, error) {
	q := strings.ToLower(query)
	if strings.Contains(q, "quantum") {
		return Result{
			Summary: "Several papers on similar quantum processor architectures were found, suggesting the area is competitive but this proposal has some unique aspects.",
			Results: []Finding{
				{
					Title:   "A 12-Qubit Superconducting Quantum Processor",
					Snippet: "We demonstrate a superconducting quantum processor with a 12-qubit architecture, showing...",
					Link:    "https://scholar.google.com/scholar?q=12+qubit+superconducting+quantum+processor",
				},
				{
					Title:   "Scalable Quantum Computing with Superconducting Qubits",
					Snippet: "This paper discusses the challenges and approaches for scaling superconducting quantum processors beyond 10 qubits...",
					Link:    "https://scholar.google.com/scholar?q=scalable+superconducting+qubits",
				},
			},
		}, nil
	}
	if strings.Contains(q, "diagnostic imaging") {
		return Result{
			Summary: "The application of AI to diagnostic imaging is a well-researched field, but the focus on rural healthcare provides a novel application context.",
			Results: []Finding{
				{
					Title:   "Deep Learning for Diagnostic Imaging: A Review",
					Snippet: "Reviews the state-of-the-art in deep learning models for medical image analysis...",
					Link:    "https://scholar.google.com/scholar?q=deep+learning+diagnostic+imaging",
				},
			},
		}, nil
	}
	return Result{Summary: NoPriorArtSummary, Results: []Finding{}}, nil
}

var _ Searcher = (*FixtureSearcher)(nil)
