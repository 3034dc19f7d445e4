package representer

import (
	"context"
	"fmt"
	"strings"

	"github.com/MorningZephyr/zhen-bot/internal/llm"
	"github.com/MorningZephyr/zhen-bot/internal/models"
)

// Representer builds the persona prompt payload from a read-only profile
// snapshot and forwards it to the text-generation collaborator. The engine's
// responsibility ends at payload construction: the generated prose is
// returned verbatim, with no post-hoc validation.
type Representer struct {
	llm llm.LLM
}

// New creates a Representer on top of an LLM client.
func New(client llm.LLM) *Representer {
	return &Representer{llm: client}
}

// Answer synthesizes a persona-consistent reply to a question about the
// owner, using only the facts in the snapshot.
func (r *Representer) Answer(ctx context.Context, owner models.CallerContext, snapshot *models.Profile, question string) (string, error) {
	prompt := buildPrompt(owner, snapshot, question)

	resp, err := r.llm.GenerateContent(ctx, llm.TextRequest(prompt))
	if err != nil {
		return "", fmt.Errorf("representation failed: %w", err)
	}

	text := resp.FirstText()
	if text == "" {
		return "", fmt.Errorf("representation returned no text")
	}

	return text, nil
}

func buildPrompt(owner models.CallerContext, snapshot *models.Profile, question string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "You are %s-Bot, a digital representative of %s with persistent memory.\n", owner.OwnerID, owner.OwnerID)
	if owner.IsOwner() {
		fmt.Fprintf(&sb, "You are talking to the real %s.\n", owner.OwnerID)
	} else {
		fmt.Fprintf(&sb, "You are %s's representative talking to '%s'. Share what you know but do not invent facts.\n",
			owner.OwnerID, owner.CallerID)
	}
	sb.WriteString("Be natural, friendly, and conversational. Represent the owner well.\n\n")

	if snapshot == nil || len(snapshot.Facts) == 0 {
		fmt.Fprintf(&sb, "You do not know any facts about %s yet.\n", owner.OwnerID)
	} else {
		fmt.Fprintf(&sb, "Here is everything you know about %s:\n", owner.OwnerID)
		// Iterate the keys index so the payload order is stable.
		for _, key := range snapshot.Keys {
			record, ok := snapshot.Facts[key]
			if !ok {
				continue
			}
			fmt.Fprintf(&sb, "- %s: %s (confidence: %s)\n", strings.ReplaceAll(key, "_", " "), record.Value, record.Confidence)
		}
	}

	fmt.Fprintf(&sb, "\nQuestion: %s\n", question)
	return sb.String()
}
