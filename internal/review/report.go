package review

import (
	"fmt"
	"strings"
)

// BuildMarkdown renders a review as a markdown section for transcript
// export and PDF rendering.
func BuildMarkdown(r Review) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Review — %s (%d/100)\n\n", r.Verdict, r.OverallScore)

	appendCriterion(&b, "Project Summary", r.ProjectSummary)
	appendCriterion(&b, "Alignment with Goals", r.AlignmentWithGoals)
	appendCriterion(&b, "Team Experience", r.TeamExperience)
	appendCriterion(&b, "Milestone Feasibility", r.MilestoneFeasibility)
	appendCriterion(&b, "Originality of Idea", r.OriginalityOfIdea)
	appendCriterion(&b, "Budget Justification", r.BudgetJustification)
	appendCriterion(&b, "Ethical Considerations", r.EthicalConsiderations)

	heading := "Things to Clarify"
	if r.Verdict == VerdictAccepted {
		heading = "Things to Look Out For"
	}
	fmt.Fprintf(&b, "### %s\n\n", heading)
	items, err := ParseNumberedList(r.ThingsToClarify)
	if err != nil {
		// Validated reviews always parse; raw seeds may not.
		b.WriteString(r.ThingsToClarify + "\n\n")
	} else {
		for i, item := range items {
			fmt.Fprintf(&b, "%d. %s\n", i+1, item)
		}
		b.WriteString("\n")
	}

	appendCriterion(&b, "Final Comment", r.FinalReviewComment)
	fmt.Fprintf(&b, "**Verdict: %s** (score %d)\n", r.Verdict, r.OverallScore)
	return b.String()
}

func appendCriterion(b *strings.Builder, title, body string) {
	fmt.Fprintf(b, "### %s\n\n%s\n\n", title, body)
}
