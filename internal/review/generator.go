package review

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/joelkehle/proposal-desk/internal/priorart"
)

// lookupUnavailableSummary replaces the prior-art summary when the search
// backend errors out. Absence of findings must not fail the review, so the
// generator degrades and lets the model assess originality without search
// support.
const lookupUnavailableSummary = "Prior-art search was unavailable for this review; originality was assessed from the proposal text alone."

// Generator runs the proposal review pipeline: derive a prior-art query,
// consult the lookup, run one zero-temperature inference, then validate and
// normalize the draft into a Review.
type Generator struct {
	caller   LLMCaller
	searcher priorart.Searcher
}

func NewGenerator(caller LLMCaller, searcher priorart.Searcher) *Generator {
	return &Generator{caller: caller, searcher: searcher}
}

func (g *Generator) Review(ctx context.Context, proposal string) (Outcome, error) {
	proposal = strings.TrimSpace(proposal)
	if proposal == "" {
		return Outcome{}, &ValidationError{Field: "proposal", Reason: "is required"}
	}

	query := deriveQuery(proposal)
	art, err := g.searcher.Search(ctx, query)
	if err != nil {
		if ctx.Err() != nil {
			return Outcome{}, &InferenceError{Op: "prior-art lookup", Err: ctx.Err()}
		}
		log.Printf("review prior-art lookup failed query=%q err=%v", query, err)
		art = priorart.Result{Summary: lookupUnavailableSummary, Results: []priorart.Finding{}}
	}

	raw, err := g.caller.GenerateJSON(ctx, buildReviewPrompt(proposal, query, art))
	if err != nil {
		op := "call"
		if isTimeout(err) {
			op = "timeout"
		}
		return Outcome{}, &InferenceError{Op: op, Err: err}
	}

	raw = stripCodeFences(raw)
	if raw == "" {
		return Outcome{}, &SchemaViolation{Reason: "empty model response"}
	}

	var r Review
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return Outcome{}, &SchemaViolation{Reason: "response is not valid JSON", Err: err}
	}
	if err := validateAndNormalize(&r); err != nil {
		return Outcome{}, &SchemaViolation{Reason: "draft failed validation", Err: err}
	}

	return Outcome{Review: r, Query: query, PriorArt: art}, nil
}
