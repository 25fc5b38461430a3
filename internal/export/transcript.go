// Package export renders conversation transcripts to markdown and PDF.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/joelkehle/proposal-desk/internal/chatstore"
	"github.com/joelkehle/proposal-desk/internal/review"
)

// BuildTranscript renders a conversation and its ordered messages as a
// markdown document.
func BuildTranscript(conv chatstore.Conversation, msgs []chatstore.Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", conv.Title)
	fmt.Fprintf(&b, "- Conversation: %s\n", conv.ConversationID)
	fmt.Fprintf(&b, "- Created: %s\n", conv.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "- Messages: %d\n\n", len(msgs))

	for _, m := range msgs {
		switch {
		case m.Role == chatstore.RoleUser:
			fmt.Fprintf(&b, "## Proposal (%s)\n\n%s\n\n", m.CreatedAt.Format(time.RFC3339), m.Content.Text)
		case m.Content.Review != nil:
			b.WriteString(review.BuildMarkdown(*m.Content.Review))
			b.WriteString("\n")
		default:
			fmt.Fprintf(&b, "## Assistant\n\n%s\n\n", m.Content.Text)
		}
	}
	return b.String()
}
