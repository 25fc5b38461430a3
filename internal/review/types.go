package review

import "github.com/joelkehle/proposal-desk/internal/priorart"

// MinScore and MaxScore bound the overall proposal score. No length cap is
// enforced on the proposal itself; an overlong proposal is the provider's to
// reject, surfaced as an inference failure.
const (
	MinScore = 0
	MaxScore = 100
)

// Verdict is the final outcome label for a proposal. It is derived solely
// from the overall score (see Classify); the model's own draft verdict is
// accepted for schema purposes and then overridden.
type Verdict string

const (
	VerdictRejected             Verdict = "Rejected"
	VerdictInterviewRequired    Verdict = "Interview Required"
	VerdictAcceptedInterviewRec Verdict = "Accepted, Interview Recommended"
	VerdictAccepted             Verdict = "Accepted"
	VerdictRejectedInterviewRec Verdict = "Rejected, Interview Recommended"
)

// AllVerdicts is the closed enumeration a model draft must fall within.
var AllVerdicts = []Verdict{
	VerdictRejected,
	VerdictInterviewRequired,
	VerdictAcceptedInterviewRec,
	VerdictAccepted,
	VerdictRejectedInterviewRec,
}

// Review is the structured assessment of a proposal. Field names and JSON
// tags are the wire format downstream renderers depend on; originalityOfIdea
// carries the literal "N/10 (<band>) - <justification>" format and
// thingsToClarify is a numbered list serialized as a single string.
type Review struct {
	ProjectSummary        string  `json:"projectSummary"`
	AlignmentWithGoals    string  `json:"alignmentWithGoals"`
	TeamExperience        string  `json:"teamExperience"`
	MilestoneFeasibility  string  `json:"milestoneFeasibility"`
	OriginalityOfIdea     string  `json:"originalityOfIdea"`
	BudgetJustification   string  `json:"budgetJustification"`
	EthicalConsiderations string  `json:"ethicalConsiderations"`
	ThingsToClarify       string  `json:"thingsToClarify"`
	FinalReviewComment    string  `json:"finalReviewComment"`
	OverallScore          int     `json:"overallScore"`
	Verdict               Verdict `json:"verdict"`
}

// Request is one review invocation.
type Request struct {
	Proposal string `json:"proposal"`
}

// Outcome bundles the normalized review with the prior-art lookup that
// informed it, for callers that render or audit the search findings.
type Outcome struct {
	Review   Review          `json:"review"`
	Query    string          `json:"query"`
	PriorArt priorart.Result `json:"priorArt"`
}
