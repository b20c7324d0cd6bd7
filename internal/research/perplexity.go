package research

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"veracity/internal/model"
)

const perplexityBaseURL = "https://api.perplexity.ai"

// Perplexity is the primary deep-research provider. The Perplexity
// API is OpenAI-chat-compatible, so the client is the standard one
// pointed at a different base URL.
type Perplexity struct {
	client *openai.Client
	model  string
}

// NewPerplexity creates the provider. baseURL and model default to the
// hosted Perplexity endpoint and its online research model.
func NewPerplexity(apiKey, baseURL, researchModel string) (*Perplexity, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("perplexity API key is required")
	}
	if baseURL == "" {
		baseURL = perplexityBaseURL
	}
	if researchModel == "" {
		researchModel = "sonar-pro"
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL

	return &Perplexity{
		client: openai.NewClientWithConfig(cfg),
		model:  researchModel,
	}, nil
}

// Research queries the provider's credible-source corpus and parses
// its sectioned response into a summary, findings, and source URLs.
func (p *Perplexity) Research(ctx context.Context, query string, claim model.StructuredClaim) (model.ResearchResult, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a professional fact-checking assistant with access to real-time information. Only cite credible sources.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildResearchPrompt(query, claim),
			},
		},
		Temperature: 0.2,
		MaxTokens:   2000,
	})
	if err != nil {
		return model.ResearchResult{}, fmt.Errorf("deep research: %w", err)
	}
	if len(resp.Choices) == 0 {
		return model.ResearchResult{}, fmt.Errorf("deep research: empty response")
	}

	return parseResearch(resp.Choices[0].Message.Content), nil
}

func buildResearchPrompt(query string, claim model.StructuredClaim) string {
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

	return fmt.Sprintf(`You are a professional fact-checker. Research the following claim using only credible sources (Reuters, BBC, AP News, official government portals, scientific journals).

Claim: %s

Additional Details:
- Key Entities: %s
- Time Period: %s
- Context: %s

Search Query: %s

Provide:
1. A summary of verified information from credible sources
2. Key findings (3-5 bullet points)
3. List of credible sources used (with URLs when available)

Format your response as:
SUMMARY: [brief summary]
FINDINGS:
- [finding 1]
- [finding 2]
- [finding 3]
SOURCES:
- [source 1]
- [source 2]`, claim.Claim, entities, timePeriod, claimContext, query)
}

// parseResearch walks the sectioned SUMMARY/FINDINGS/SOURCES format.
// Anything unparseable degrades to an empty field rather than an
// error; the caller decides availability.
func parseResearch(text string) model.ResearchResult {
	var summary strings.Builder
	findings := []string{}
	sources := []string{}

	section := ""
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, "SUMMARY:"):
			section = "summary"
			summary.WriteString(strings.TrimSpace(strings.TrimPrefix(line, "SUMMARY:")))
		case strings.HasPrefix(line, "FINDINGS:"):
			section = "findings"
		case strings.HasPrefix(line, "SOURCES:"):
			section = "sources"
		case strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•"):
			content := strings.TrimSpace(strings.TrimLeft(line, "-•"))
			if content == "" {
				continue
			}
			switch section {
			case "findings":
				findings = append(findings, content)
			case "sources":
				sources = append(sources, content)
			}
		default:
			if section == "summary" && line != "" {
				summary.WriteString(" ")
				summary.WriteString(line)
			}
		}
	}

	return model.ResearchResult{
		Summary:  strings.TrimSpace(summary.String()),
		Findings: findings,
		Sources:  sources,
	}
}
