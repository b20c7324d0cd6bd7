package model

// CheckResponse is the response surface the pipeline hands to the
// outer API/CLI layer for one completed (or rejected) run.
type CheckResponse struct {
	ClaimText   string   `json:"claim_text"`
	Status      Status   `json:"status"`
	Explanation string   `json:"explanation"`
	Sources     []string `json:"sources"`

	ResearchSummary string           `json:"research_summary,omitempty"`
	Findings        []string         `json:"findings,omitempty"`
	Structured      *StructuredClaim `json:"structured_claim,omitempty"`

	// Supplementary discovery payload, when that slot produced one
	Discovery *DiscoveryAnalysis `json:"discovery,omitempty"`

	// Media input metadata
	MediaType     string `json:"media_type,omitempty"`
	MediaFilename string `json:"media_filename,omitempty"`
	ExtractedText string `json:"extracted_text,omitempty"`

	// URL input metadata
	URL            string `json:"url,omitempty"`
	ArticleTitle   string `json:"article_title,omitempty"`
	ArticleSource  string `json:"article_source,omitempty"`
	ArticlePreview string `json:"article_preview,omitempty"`

	Cached    bool   `json:"cached"`
	CacheNote string `json:"cache_note,omitempty"`

	// Non-fatal degradations recorded as metadata, e.g.
	// "supplementary research unavailable"
	Notes []string `json:"notes,omitempty"`
}
