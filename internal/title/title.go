// Package title generates short display titles for review conversations.
// Title generation is cosmetic: it may fail, and callers are expected to
// substitute Fallback rather than surface the error to the user.
package title

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Fallback is the static title callers use when generation fails.
const Fallback = "Proposal Review"

const systemPrompt = "You name chat conversations about project proposals. Respond with the title only, no quotes, no punctuation around it."

type LLMCaller interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type AnthropicCaller struct {
	messages AnthropicMessager
}

type AnthropicMessager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

func NewAnthropicCallerFromEnv() (*AnthropicCaller, error) {
	apiKey := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	if apiKey == "" {
		return nil, errors.New("ANTHROPIC_API_KEY not configured")
	}
	c := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicCaller{messages: &c.Messages}, nil
}

func NewAnthropicCaller(messages AnthropicMessager) *AnthropicCaller {
	return &AnthropicCaller{messages: messages}
}

func (a *AnthropicCaller) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := a.messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.ModelClaudeSonnet4_20250514,
		MaxTokens:   64,
		System:      []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(prompt))},
		Temperature: anthropic.Float(0.3),
	})
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, b := range resp.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	return sb.String(), nil
}

type Generator struct {
	caller LLMCaller
}

func NewGenerator(caller LLMCaller) *Generator {
	return &Generator{caller: caller}
}

// Title produces a display title under ~6 words for a proposal. verdict is
// optional; a rejection verdict permits a wry tone. Errors propagate so the
// caller can apply Fallback.
func (g *Generator) Title(ctx context.Context, proposal, verdict string) (string, error) {
	proposal = strings.TrimSpace(proposal)
	if proposal == "" {
		return "", errors.New("empty proposal")
	}
	raw, err := g.caller.Generate(ctx, buildPrompt(proposal, verdict))
	if err != nil {
		return "", err
	}
	t := sanitize(raw)
	if t == "" {
		return "", errors.New("empty title from model")
	}
	return t, nil
}

func buildPrompt(proposal, verdict string) string {
	var b strings.Builder
	b.WriteString("Generate a clever, short, and meaningful title for the following project proposal.\n\n")
	b.WriteString("Follow these rules:\n")
	b.WriteString("- The title should be under 6 words.\n")
	b.WriteString("- If the proposal has a clear title, use or adapt it.\n")
	b.WriteString("- Otherwise, extract a key phrase, project name, use case, or theme.\n")
	b.WriteString("- The title should feel smart and memorable (e.g., \"Memory-Augmented Machines,\" not \"Proposal Review\").\n")
	if verdict != "" {
		fmt.Fprintf(&b, "- The verdict is '%s'. If the verdict is 'Rejected', you can optionally make the title a bit cheeky (e.g., \"Nope for Now: PrivacyBot\").\n", verdict)
	}
	b.WriteString("\nProposal:\n")
	b.WriteString(proposal)
	return b.String()
}

func sanitize(raw string) string {
	t := strings.TrimSpace(raw)
	t = strings.Trim(t, "\"'`")
	// Take only the first line in case the model elaborates.
	if idx := strings.IndexByte(t, '\n'); idx >= 0 {
		t = strings.TrimSpace(t[:idx])
	}
	return t
}
