// Package verdict merges weighted research into a final status and
// explanation. High-weight findings are authoritative; low-weight
// findings corroborate but never overturn them. With no evidence at
// all the status floor is Unverified — citations are never fabricated.
package verdict

import (
	"context"
	"fmt"
	"strings"

	"veracity/internal/llm"
	"veracity/internal/model"
)

const synthesisAttempts = 3

const noEvidenceExplanation = "No verifiable sources were available to research this claim. Both research providers were unreachable, so the claim cannot be confirmed or refuted."

// Synthesizer produces a Verdict from a research bundle
type Synthesizer struct {
	client llm.Client
}

// New creates a synthesizer backed by the given completion client
func New(client llm.Client) *Synthesizer {
	return &Synthesizer{client: client}
}

// Synthesize evaluates the claim against the bundle. It never returns
// an error: a failed synthesis degrades to Unverified with an
// explanation noting the failure, and the status set it emits is
// closed over {True, False, Unverified}.
func (s *Synthesizer) Synthesize(ctx context.Context, claimText string, claim model.StructuredClaim, bundle model.ResearchBundle) model.Verdict {
	sources := MergeSources(bundle)

	if !bundle.Primary.Available && !bundle.Supplementary.Available {
		return model.Verdict{
			Status:      model.StatusUnverified,
			Explanation: noEvidenceExplanation,
			Sources:     []string{},
			Structured:  claim,
		}
	}

	var response string
	err := llm.WithRetry(ctx, synthesisAttempts, func() error {
		var callErr error
		response, callErr = s.client.Complete(ctx, llm.CompletionRequest{
			Prompt:      buildVerdictPrompt(claimText, claim, bundle),
			Temperature: 0.2,
		})
		return callErr
	})
	if err != nil {
		return model.Verdict{
			Status:      model.StatusUnverified,
			Explanation: fmt.Sprintf("Unable to generate a verdict from the research results (%v). The claim remains unverified.", err),
			Sources:     sources,
			Structured:  claim,
		}
	}

	status, explanation := parseVerdict(response)
	return model.Verdict{
		Status:      status,
		Explanation: explanation,
		Sources:     sources,
		Structured:  claim,
	}
}

// MergeSources deduplicates bundle sources with high-weight sources
// ordered before low-weight ones.
func MergeSources(bundle model.ResearchBundle) []string {
	merged := []string{}
	seen := make(map[string]bool)

	for _, group := range [][]string{bundle.Primary.Sources, bundle.Supplementary.Sources} {
		for _, src := range group {
			src = strings.TrimSpace(src)
			if src == "" || seen[src] {
				continue
			}
			seen[src] = true
			merged = append(merged, src)
		}
	}
	return merged
}

// parseVerdict reads the STATUS/EXPLANATION response format. Anything
// unrecognizable defaults to Unverified.
func parseVerdict(response string) (model.Status, string) {
	status := model.StatusUnverified
	explanation := "Unable to verify this claim based on available information."

	lines := strings.Split(response, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)

		if strings.HasPrefix(line, "STATUS:") {
			status = statusFrom(strings.TrimSpace(strings.TrimPrefix(line, "STATUS:")))
			continue
		}
		if strings.HasPrefix(line, "EXPLANATION:") {
			parts := []string{strings.TrimSpace(strings.TrimPrefix(line, "EXPLANATION:"))}
			for j := i + 1; j < len(lines); j++ {
				next := strings.TrimSpace(lines[j])
				if next == "" || strings.HasPrefix(next, "STATUS:") {
					break
				}
				parts = append(parts, next)
			}
			if joined := strings.TrimSpace(strings.Join(parts, " ")); joined != "" {
				explanation = joined
			}
		}
	}

	return status, explanation
}

func statusFrom(raw string) model.Status {
	lowered := strings.ToLower(raw)
	switch {
	case strings.Contains(lowered, "unverified"):
		return model.StatusUnverified
	case strings.Contains(lowered, "false"):
		return model.StatusFalse
	case strings.Contains(lowered, "true"):
		return model.StatusTrue
	default:
		return model.StatusUnverified
	}
}

func buildVerdictPrompt(claimText string, claim model.StructuredClaim, bundle model.ResearchBundle) string {
	entities := "N/A"
	if len(claim.Entities) > 0 {
		entities = strings.Join(claim.Entities, ", ")
	}
	timePeriod := claim.TimePeriod
	if timePeriod == "" || timePeriod == "unknown" {
		timePeriod = "Not specified"
	}
	claimContext := claim.Context
	if claimContext == "" {
		claimContext = "None provided"
	}

	primary := bundle.Primary
	summary := primary.Summary
	if !primary.Available || summary == "" {
		summary = "No research data available"
	}
	findings := bulleted(primary.Findings, "No specific findings")
	sources := bulleted(primary.Sources, "No sources available")

	return fmt.Sprintf(`You are a professional fact-checker. Based on the research data below, evaluate the truthfulness of this claim.

ORIGINAL INPUT: "%s"

STRUCTURED CLAIM ANALYSIS:
- Main Claim: %s
- Key Entities: %s
- Time Period: %s
- Context: %s

===============================================================================
PRIMARY RESEARCH (deep search) - EVIDENCE WEIGHT: HIGH
===============================================================================
RESEARCH SUMMARY:
%s

KEY FINDINGS:
%s

CREDIBLE SOURCES:
%s

===============================================================================
SUPPLEMENTARY CONTEXT (discovered external sources) - EVIDENCE WEIGHT: LOW
===============================================================================
%s

===============================================================================
EVIDENCE WEIGHTING RULES:
===============================================================================
1. The primary deep research is your PRIMARY evidence source. Give it the highest weight.
2. Supplementary sources may REINFORCE or SUPPLEMENT primary findings, but must NEVER overturn them.
3. IGNORE the supplementary context completely if it provides no credible external links.
4. NEVER use engagement or popularity as evidence of truth.

Determine the verdict based on these STRICT criteria:

TRUE - ONLY use when credible sources explicitly CONFIRM the claim with direct evidence.

FALSE - ONLY use when credible sources explicitly CONTRADICT the claim: there must be POSITIVE EVIDENCE that the opposite is true. NEVER mark FALSE just because no coverage exists.

UNVERIFIED - Use when no credible sources cover the topic, sources discuss related topics without confirming or denying the specific claim, or only partial information is available. "No reports found" means UNVERIFIED, never FALSE.

Provide:
1. STATUS: One of [True, False, Unverified]
2. EXPLANATION: A brief (2-3 sentences), factual explanation based on the research

Format your response EXACTLY as:
STATUS: [status]
EXPLANATION: [explanation]`,
		claimText, claim.Claim, entities, timePeriod, claimContext,
		summary, findings, sources, supplementaryContext(bundle))
}

// supplementaryContext renders the low-weight slot for the prompt
func supplementaryContext(bundle model.ResearchBundle) string {
	if !bundle.Supplementary.Available {
		return "Supplementary discovery was unavailable for this claim."
	}

	analysis := bundle.Discovery
	if analysis == nil || !analysis.HasRelevantPosts {
		return "No relevant discussion with external sources was found."
	}

	var b strings.Builder
	b.WriteString(analysis.AnalysisNote)
	if analysis.DiscussionSummary != "" {
		b.WriteString("\n\nDiscussion Context: ")
		b.WriteString(analysis.DiscussionSummary)
	}

	if len(analysis.ExternalSources) == 0 {
		b.WriteString("\n\nExternal Sources Found: None")
		return b.String()
	}

	b.WriteString("\n\nExternal Sources Found:")
	for _, src := range analysis.ExternalSources {
		label := src.Title
		if label == "" {
			label = src.URL
			if len(label) > 80 {
				label = label[:80] + "..."
			}
		}
		fmt.Fprintf(&b, "\n- [%s] %s: %s", strings.ToUpper(string(src.Tier)), src.Domain, label)
	}
	return b.String()
}

func bulleted(items []string, empty string) string {
	if len(items) == 0 {
		return empty
	}
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- ")
		b.WriteString(item)
	}
	return b.String()
}
