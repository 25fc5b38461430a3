package chatstore

import (
	"fmt"

	"github.com/joelkehle/proposal-desk/internal/review"
)

// SeedUserID owns the example conversations created on first run.
const SeedUserID = "1"

type seedConversation struct {
	id       string
	title    string
	proposal string
	rev      review.Review
}

var seedConversations = []seedConversation{
	{
		id:       "chat-1",
		title:    "Quantum Computing Proposal",
		proposal: "Here is my proposal for a quantum computing project aiming to build a 12-qubit processor. The team is composed of PhDs from leading universities and we require a budget of $5M for equipment and salaries over 3 years. We believe this aligns with your goal of funding high-risk, high-reward research.",
		rev: review.Review{
			ProjectSummary:        "The project aims to build a 12-qubit quantum processor with a team of PhDs, seeking $5M over 3 years for high-risk, high-reward research.",
			AlignmentWithGoals:    "The proposal aligns well with our goals in advancing fundamental research. The high-risk, high-reward nature of quantum computing is exactly what we look for.",
			TeamExperience:        "The team consists of renowned experts in quantum physics, which is a strong plus. Their publication history demonstrates significant contributions to the field.",
			MilestoneFeasibility:  "The milestones seem ambitious but achievable given the team's expertise. A more detailed GANTT chart would be beneficial.",
			OriginalityOfIdea:     "7/10 (Fairly Original) - While quantum computing is not a new field, the proposal to build a 12-qubit processor with a novel architecture is highly innovative.",
			BudgetJustification:   "The budget is well-detailed but lacks specific vendor quotes for the high-cost equipment. More justification is needed for the requested $5M.",
			EthicalConsiderations: "Ethical considerations are briefly mentioned but need a more in-depth section regarding data security and potential misuse of the technology.",
			ThingsToClarify:       "1. Can you provide specific vendor quotes for the major equipment purchases?\n2. Could you elaborate on the GANTT chart for the first year?\n3. What are the specific roles of each team member?",
			FinalReviewComment:    "A promising proposal that needs some refinement in the budget justification and ethical considerations sections. The team's strength is a major asset.",
			OverallScore:          72,
		},
	},
	{
		id:       "chat-2",
		title:    "AI in Healthcare Initiative",
		proposal: "This proposal outlines a plan to use AI for diagnostic imaging in rural healthcare settings. Our team includes radiologists and AI experts. The budget is primarily for data acquisition and model training infrastructure.",
		rev: review.Review{
			ProjectSummary:        "The proposal plans to use AI for diagnostic imaging in rural areas, with a budget focused on data and infrastructure, and a team of radiologists and AI specialists.",
			AlignmentWithGoals:    "Excellent alignment with our goal of societal impact through technology. Improving healthcare access is a key priority for our fund.",
			TeamExperience:        "The team has a good mix of medical and AI professionals. The inclusion of practicing radiologists is a significant strength.",
			MilestoneFeasibility:  "Milestones are realistic and well-defined, with clear KPIs for each phase of the project.",
			OriginalityOfIdea:     "6/10 (Fairly Original) - The application of AI in diagnostic imaging is well-established, but the focus on rural healthcare settings presents a unique and impactful angle.",
			BudgetJustification:   "The budget is reasonable and the breakdown for data and infrastructure costs is well justified.",
			EthicalConsiderations: "A very strong section on patient data privacy, consent, and mitigating algorithmic bias. This shows a deep understanding of the challenges.",
			ThingsToClarify:       "1. Ensure that the data anonymization process is audited by a third party.\n2. Monitor the model for any signs of performance drift over time.",
			FinalReviewComment:    "A very strong and well-thought-out proposal. It addresses a critical need with a solid plan and expert team. Highly recommended for funding.",
			OverallScore:          92,
		},
	},
}

// seedExamples populates an empty store with two example exchanges so a
// fresh deployment has something to show. Verdicts are derived from the
// scores like everywhere else.
func seedExamples(api API) error {
	for i := range seedConversations {
		sc := seedConversations[i]
		sc.rev.Verdict = review.Classify(sc.rev.OverallScore)

		if _, err := api.CreateConversation(CreateConversationInput{
			ConversationID: sc.id,
			Title:          sc.title,
			UserID:         SeedUserID,
		}); err != nil {
			return err
		}

		userMsg := fmt.Sprintf("msg-%d", i*2+1)
		if err := appendSeedMessage(api, sc.id, userMsg, RoleUser, Content{Text: sc.proposal}); err != nil {
			return err
		}
		rev := sc.rev
		assistantMsg := fmt.Sprintf("msg-%d", i*2+2)
		if err := appendSeedMessage(api, sc.id, assistantMsg, RoleAssistant, Content{Review: &rev}); err != nil {
			return err
		}
	}
	return nil
}

func appendSeedMessage(api API, conversationID, messageID string, role Role, content Content) error {
	if _, err := api.StageMessage(StageMessageInput{
		ConversationID: conversationID,
		MessageID:      messageID,
		Role:           role,
		Content:        content,
	}); err != nil {
		return err
	}
	return api.ConfirmMessage(conversationID, messageID)
}
