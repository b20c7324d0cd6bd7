package model

// Status is the closed verdict status set. Rejected is set only by the
// moderation gate, never by the synthesizer.
type Status string

const (
	StatusTrue       Status = "True"
	StatusFalse      Status = "False"
	StatusUnverified Status = "Unverified"
	StatusRejected   Status = "Rejected"
)

// Verdict is the synthesized outcome of a research bundle. Sources are
// deduplicated with high-weight sources ordered before low-weight ones.
type Verdict struct {
	Status      Status          `json:"status"`
	Explanation string          `json:"explanation"`
	Sources     []string        `json:"sources"`
	Structured  StructuredClaim `json:"structured_claim"`
}
