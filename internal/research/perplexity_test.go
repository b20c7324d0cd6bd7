package research

import (
	"testing"
)

func TestParseResearch_FullResponse(t *testing.T) {
	response := `SUMMARY: The claim is confirmed by multiple wire services.
Additional context spans a second line.
FINDINGS:
- The event occurred in March 2024
- Official records corroborate the figure
• A bulleted variant is also accepted
SOURCES:
- https://reuters.com/article/1
- https://apnews.com/article/2`

	result := parseResearch(response)

	want := "The claim is confirmed by multiple wire services. Additional context spans a second line."
	if result.Summary != want {
		t.Errorf("unexpected summary: %q", result.Summary)
	}
	if len(result.Findings) != 3 {
		t.Fatalf("expected 3 findings, got %v", result.Findings)
	}
	if result.Findings[2] != "A bulleted variant is also accepted" {
		t.Errorf("unexpected finding: %q", result.Findings[2])
	}
	if len(result.Sources) != 2 {
		t.Fatalf("expected 2 sources, got %v", result.Sources)
	}
	if result.Sources[0] != "https://reuters.com/article/1" {
		t.Errorf("unexpected source: %q", result.Sources[0])
	}
}

func TestParseResearch_Unstructured(t *testing.T) {
	result := parseResearch("I could not find anything relevant about this topic.")

	if result.Summary != "" {
		t.Errorf("expected empty summary, got %q", result.Summary)
	}
	if result.Findings == nil || result.Sources == nil {
		t.Error("findings and sources must be empty, not nil")
	}
	if len(result.Findings) != 0 || len(result.Sources) != 0 {
		t.Errorf("expected no findings or sources, got %v / %v", result.Findings, result.Sources)
	}
}

func TestNewPerplexity_RequiresKey(t *testing.T) {
	if _, err := NewPerplexity("", "", ""); err == nil {
		t.Error("expected error for missing API key")
	}

	p, err := NewPerplexity("key", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.model != "sonar-pro" {
		t.Errorf("expected default model sonar-pro, got %s", p.model)
	}
}
