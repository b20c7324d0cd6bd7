package model

import "time"

// EvidenceWeight ranks a research slot's findings during synthesis
type EvidenceWeight string

const (
	WeightHigh EvidenceWeight = "high" // primary deep-research provider
	WeightLow  EvidenceWeight = "low"  // supplementary discovery provider
)

// ResearchResult is one provider's contribution to a research bundle.
// Available=false models a provider failure or timeout without
// discarding the slot.
type ResearchResult struct {
	Summary   string         `json:"summary"`
	Findings  []string       `json:"findings"`
	Sources   []string       `json:"sources"`
	Weight    EvidenceWeight `json:"weight"`
	Available bool           `json:"available"`
}

// ResearchBundle is the joined output of the parallel research phase.
// Either slot may be unavailable; the orchestrator always returns a
// bundle.
type ResearchBundle struct {
	Primary       ResearchResult     `json:"primary"`
	Supplementary ResearchResult     `json:"supplementary"`
	Discovery     *DiscoveryAnalysis `json:"discovery,omitempty"`
}

// CredibilityTier classifies a discovered external source link
type CredibilityTier string

const (
	TierPrimary   CredibilityTier = "primary"   // official, government, academic
	TierSecondary CredibilityTier = "secondary" // established press, fact-checkers
	TierUnknown   CredibilityTier = "unknown"
)

// ExternalSource is an outbound link extracted from social discussion
// of a claim. Engagement signals are deliberately absent: they carry
// no evidentiary weight.
type ExternalSource struct {
	URL         string          `json:"url"`
	Domain      string          `json:"domain"`
	Title       string          `json:"title,omitempty"`
	Description string          `json:"description,omitempty"`
	Tier        CredibilityTier `json:"credibility_tier"`
}

// DiscoveryAnalysis is the supplementary provider's structured payload:
// what was discussed and which external sources the discussion linked.
type DiscoveryAnalysis struct {
	HasRelevantPosts  bool             `json:"has_relevant_posts"`
	PostsAnalyzed     int              `json:"posts_analyzed"`
	ExternalSources   []ExternalSource `json:"external_sources"`
	DiscussionSummary string           `json:"discussion_summary,omitempty"`
	AnalysisNote      string           `json:"analysis_note,omitempty"`
	SearchQueryUsed   string           `json:"search_query_used,omitempty"`
}

// CacheEntry is the content-addressed record of a completed run.
// Written whole, at most once per key under normal operation, and
// read-only afterwards. A rejection marker carries only the moderation
// category, never the offending content.
type CacheEntry struct {
	Key              string          `json:"key"`
	Structured       StructuredClaim `json:"structured_claim"`
	Research         ResearchBundle  `json:"research_bundle"`
	Verdict          Verdict         `json:"verdict"`
	CreatedAt        time.Time       `json:"created_at"`
	RejectedCategory string          `json:"rejected_category,omitempty"`
}
