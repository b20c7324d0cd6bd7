// Package normalize turns raw claim text into a structured claim
// record: a declarative statement plus entities, time period, and
// context. Structuring is delegated to a completion service and parsed
// defensively; the pipeline never fails because structuring was
// imperfect.
package normalize

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"veracity/internal/llm"
	"veracity/internal/model"
)

const structureAttempts = 3

// jsonObject grabs the outermost JSON object from a response that may
// carry extra prose around it.
var jsonObject = regexp.MustCompile(`(?s)\{.*\}`)

// Normalizer converts free-form claim text into a StructuredClaim
type Normalizer struct {
	client llm.Client
}

// New creates a normalizer backed by the given completion client
func New(client llm.Client) *Normalizer {
	return &Normalizer{client: client}
}

// Normalize structures raw claim text. It never returns a nil-shaped
// result: on any structuring failure the documented fallback record is
// used instead.
func (n *Normalizer) Normalize(ctx context.Context, rawText, optionalContext string) model.StructuredClaim {
	var response string
	err := llm.WithRetry(ctx, structureAttempts, func() error {
		var callErr error
		response, callErr = n.client.Complete(ctx, llm.CompletionRequest{
			Prompt:      buildStructuringPrompt(rawText),
			Temperature: 0.1,
		})
		return callErr
	})
	if err != nil {
		return Fallback(rawText, optionalContext)
	}

	structured, ok := parseStructured(response, rawText)
	if !ok {
		return Fallback(rawText, optionalContext)
	}

	if optionalContext != "" {
		if structured.Context == "" {
			structured.Context = optionalContext
		} else {
			structured.Context = structured.Context + " " + optionalContext
		}
	}
	return structured
}

// Fallback is the deterministic record used when structuring fails
func Fallback(rawText, optionalContext string) model.StructuredClaim {
	return model.StructuredClaim{
		Claim:         strings.TrimSpace(rawText),
		Entities:      []string{},
		TimePeriod:    "unknown",
		Context:       optionalContext,
		OriginalInput: rawText,
	}
}

// parseStructured attempts a structured decode of free-form completion
// output. Missing fields get defaults; a failed decode reports !ok so
// the caller falls back.
func parseStructured(response, rawText string) (model.StructuredClaim, bool) {
	match := jsonObject.FindString(response)
	if match == "" {
		return model.StructuredClaim{}, false
	}

	var decoded struct {
		Claim      string   `json:"claim"`
		Context    string   `json:"context"`
		Entities   []string `json:"entities"`
		TimePeriod string   `json:"time_period"`
	}
	if err := json.Unmarshal([]byte(match), &decoded); err != nil {
		return model.StructuredClaim{}, false
	}

	structured := model.StructuredClaim{
		Claim:         strings.TrimSpace(decoded.Claim),
		Entities:      decoded.Entities,
		TimePeriod:    strings.TrimSpace(decoded.TimePeriod),
		Context:       strings.TrimSpace(decoded.Context),
		OriginalInput: rawText,
	}
	if structured.Claim == "" {
		structured.Claim = strings.TrimSpace(rawText)
	}
	if structured.Entities == nil {
		structured.Entities = []string{}
	}
	if structured.TimePeriod == "" {
		structured.TimePeriod = "unknown"
	}
	return structured, true
}

func buildStructuringPrompt(rawText string) string {
	return fmt.Sprintf(`Convert unstructured or vague user input into a clean, structured record for fact-checking.

### Schema
{
  "claim": "<the main factual statement, extracted or reformulated>",
  "context": "<any background info, source, or related details>",
  "entities": ["<names, organizations, or locations involved>"],
  "time_period": "<specific year or time frame if mentioned>"
}

### Rules
1. Always output valid JSON with no extra text or explanation.
2. The claim field must be a clear declarative factual statement, even if the input was a question.
3. If information is missing (date, entities), leave the field as an empty string or empty list.
4. Never add opinions or assumptions; only reorganize the information.

### Example
User input:
"did elon talk about tesla launching robotaxi next year?"

Output:
{
  "claim": "Elon Musk said Tesla will launch a robotaxi next year.",
  "context": "",
  "entities": ["Elon Musk", "Tesla"],
  "time_period": "next year"
}

Now convert this user input:
"%s"`, rawText)
}
