package review

import (
	"fmt"
	"strings"

	"github.com/joelkehle/proposal-desk/internal/priorart"
)

const systemPrompt = "You are an expert grant reviewer for a decentralized research funding program. Respond with strict JSON only."

const programContext = `**About the funding program:**
Deep Funding is a decentralized grants program within the SingularityNET ecosystem, aimed at accelerating the development of beneficial Artificial General Intelligence (AGI) through community-driven innovation. It empowers individuals and teams across the globe to propose, review, and vote on AI and blockchain projects that align with the values and goals of SingularityNET. Proposals are funded in AGIX tokens, and voting weight is determined by a combination of token holdings and engagement in the community. Deep Funding uses mechanisms like quadratic voting and Community Engagement Scores (CES) to ensure fairness and prevent dominance by large stakeholders, encouraging participation from genuinely active contributors.

Beyond just funding, Deep Funding fosters a vibrant ecosystem of builders, reviewers, educators, and coordinators who collaboratively manage each funding round through structured processes. Proposal evaluation, milestone auditing, and governance experiments are handled by community-led circles, such as the Review Circle and Operations Circle. Its overarching mission is to decentralize decision-making and build the foundation for AGI through open, inclusive, and merit-based participation.`

const rubricContext = `Review the project proposal based on these criteria:

- **Project Summary**: Create a concise summary of what the proposers are trying to do.
- **Alignment with Deep Funding goals**: Does the project contribute to the SingularityNET ecosystem and the development of beneficial AGI? Does it align with the decentralized, community-driven values of Deep Funding?
- **Team experience**: Does the team have the necessary skills and experience in AI, blockchain, or their proposed domain?
- **Milestone feasibility**: Are the proposed milestones realistic and well-defined?
- **Originality of Idea**: Assess the originality of the proposal using the prior-art search findings supplied below. Provide a numeric score from 0-10, its interpretation, and a brief justification.
    - **Formatting Requirement:** The output for this section MUST be a single string starting with the score, followed by the interpretation from the Scoring Guide in parentheses, then " - " and the justification. Example: "8/10 (Fairly Original) - The proposal presents a new approach with little prior documentation found in the search."
    - **Scoring Guide:**
        - 0-2 (Not Original): Clear duplication or slight modification of existing, well-known work.
        - 3-5 (Somewhat Original): Similar ideas exist, but this proposal shows minor innovation or new context.
        - 6-8 (Fairly Original): The proposal presents a new approach or application with little prior documentation.
        - 9-10 (Highly Original): No significant prior art found; concept appears to be novel and innovative.
- **Budget justification**: Is the budget (requested in AGIX) reasonable and well-justified for the work proposed?
- **Ethical considerations**: Does the proposal address potential ethical implications of the project? Be lenient and constructive in this area.
- **Things to Clarify / Things to look out for**: What specific questions should be asked during an interview to get more clarity? If the final verdict is 'Accepted', this field MUST instead be a list of "Things to look out for when reviewing". This entire section must be a single string formatted as a numbered list (e.g., "1. First question\n2. Second question"). Do NOT output a JSON array.

**Verdict and Scoring Guidelines:**
Your verdict MUST be determined by the overallScore, following these strict rules:
- Rejected: score less than 50.
- Interview Required: score between 50 and 59 (inclusive).
- Accepted, Interview Recommended: score between 60 and 75 (inclusive).
- Accepted: score 76 or greater.`

const reviewSchemaPrompt = `Required JSON schema:
{
  "projectSummary": "string",
  "alignmentWithGoals": "string",
  "teamExperience": "string",
  "milestoneFeasibility": "string",
  "originalityOfIdea": "string, format: \"N/10 (<band>) - <justification>\"",
  "budgetJustification": "string",
  "ethicalConsiderations": "string",
  "thingsToClarify": "string, numbered list in a single string",
  "finalReviewComment": "string",
  "overallScore": "integer (0-100)",
  "verdict": "Accepted | Rejected | Interview Required | Accepted, Interview Recommended | Rejected, Interview Recommended"
}`

func buildReviewPrompt(proposal, query string, art priorart.Result) string {
	var b strings.Builder
	b.WriteString("Analyze the following project proposal based on the criteria below.\n\n")
	b.WriteString(programContext)
	b.WriteString("\n\n")
	b.WriteString(rubricContext)
	b.WriteString("\n\n")
	b.WriteString(buildPriorArtSection(query, art))
	b.WriteString("\n\n")
	b.WriteString(reviewSchemaPrompt)
	b.WriteString("\n\nProposal:\n")
	b.WriteString(proposal)
	b.WriteString("\n\nThe analysis should be detailed and constructive.")
	return b.String()
}

func buildPriorArtSection(query string, art priorart.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Prior-art search findings** (query: %q):\n\n", query)
	fmt.Fprintf(&b, "Summary: %s\n", art.Summary)
	if len(art.Results) == 0 {
		b.WriteString("No search results were returned.\n")
		return b.String()
	}
	for i, r := range art.Results {
		fmt.Fprintf(&b, "%d. %s — %s (%s)\n", i+1, r.Title, r.Snippet, r.Link)
	}
	b.WriteString("Ground the originality score in these findings.\n")
	return b.String()
}
