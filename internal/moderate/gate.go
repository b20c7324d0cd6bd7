// Package moderate screens pipeline input and output. Input screening
// combines deterministic pattern matching (PII, harmful phrasing) with
// a semantic classifier call; output screening vets the generated
// explanation before it leaves the pipeline.
package moderate

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"veracity/internal/llm"
	"veracity/internal/model"
)

// NeutralRefusal replaces an explanation that fails output screening.
// The computed status is preserved; only the text is substituted.
const NeutralRefusal = "The claim was researched, but the generated explanation did not pass safety review and cannot be displayed."

const (
	inputBlockReason = "This request contains restricted or unsafe content and cannot be processed."
	piiBlockReason   = "This request contains private or sensitive information and cannot be processed."
)

// Deterministic PII patterns: national ID numbers, payment card
// numbers, email addresses.
var piiPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
	regexp.MustCompile(`\b(?:\d[ -]?){15}\d\b`),
	regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
}

// Obvious harmful-content phrasing caught without a classifier call
var harmfulPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(kill|murder|harm|attack)\s+(someone|people|person)`),
	regexp.MustCompile(`\b(how to|guide to)\s+(make|create|build)\s+(a\s+)?(bomb|weapon|explosive)`),
	regexp.MustCompile(`\b(steal|hack into|break into)\b`),
}

// Gate is the dual moderation checkpoint
type Gate struct {
	client llm.Client
}

// NewGate creates a moderation gate backed by the given classifier
func NewGate(client llm.Client) *Gate {
	return &Gate{client: client}
}

// ScreenInput checks claim text before any research happens. A BLOCK
// terminates the pipeline with status Rejected and zero provider
// calls.
func (g *Gate) ScreenInput(ctx context.Context, text string) model.ModerationDecision {
	lower := strings.ToLower(text)

	for _, pattern := range piiPatterns {
		if pattern.MatchString(text) {
			return model.ModerationDecision{
				Outcome:  model.ModerationBlock,
				Category: model.CategoryPII,
				Reason:   piiBlockReason,
			}
		}
	}

	for _, pattern := range harmfulPatterns {
		if pattern.MatchString(lower) {
			return model.ModerationDecision{
				Outcome:  model.ModerationBlock,
				Category: model.CategoryHarmful,
				Reason:   inputBlockReason,
			}
		}
	}

	// Semantic pass for content the patterns miss. A classifier
	// failure lets the request proceed on pattern screening alone.
	result, err := g.client.Complete(ctx, llm.CompletionRequest{
		Prompt:      buildInputPrompt(text),
		Temperature: 0,
	})
	if err != nil {
		return model.ModerationDecision{Outcome: model.ModerationPass}
	}

	if strings.HasPrefix(strings.TrimSpace(result), "UNSAFE") {
		return model.ModerationDecision{
			Outcome:  model.ModerationBlock,
			Category: model.CategoryHarmful,
			Reason:   inputBlockReason,
		}
	}

	return model.ModerationDecision{Outcome: model.ModerationPass}
}

// ScreenOutput vets a generated explanation. On BLOCK the caller
// substitutes NeutralRefusal while keeping the computed status.
func (g *Gate) ScreenOutput(ctx context.Context, explanation string) model.ModerationDecision {
	if len(strings.TrimSpace(explanation)) < 10 {
		return model.ModerationDecision{
			Outcome:  model.ModerationBlock,
			Category: model.CategoryUnsafeOutput,
			Reason:   "explanation too short to be a safe result",
		}
	}

	result, err := g.client.Complete(ctx, llm.CompletionRequest{
		Prompt:      buildOutputPrompt(explanation),
		Temperature: 0,
	})
	if err != nil {
		return model.ModerationDecision{Outcome: model.ModerationPass}
	}

	if strings.HasPrefix(strings.TrimSpace(result), "UNSAFE") {
		return model.ModerationDecision{
			Outcome:  model.ModerationBlock,
			Category: model.CategoryUnsafeOutput,
			Reason:   "generated explanation failed safety review",
		}
	}

	return model.ModerationDecision{Outcome: model.ModerationPass}
}

func buildInputPrompt(text string) string {
	return fmt.Sprintf(`You are a content moderator. Analyze the following claim and determine if it contains:
- Harmful, violent, or illegal content
- Private personal information (PII)
- Instructions for dangerous activities

Claim: "%s"

Respond with ONLY "SAFE" or "UNSAFE: [brief reason]"`, text)
}

func buildOutputPrompt(explanation string) string {
	return fmt.Sprintf(`You are reviewing the output of a fact-checking system before it is shown to a user. Determine if the text below contains unsafe, harmful, or fabricated content (for example, invented citations or hallucinated specifics presented as fact).

Text: "%s"

Respond with ONLY "SAFE" or "UNSAFE: [brief reason]"`, explanation)
}
