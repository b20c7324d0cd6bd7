package model

// ModerationOutcome is a gate's pass/block decision
type ModerationOutcome string

const (
	ModerationPass  ModerationOutcome = "PASS"
	ModerationBlock ModerationOutcome = "BLOCK"
)

// Moderation block categories
const (
	CategoryPII          = "pii"
	CategoryHarmful      = "harmful"
	CategoryUnsafeOutput = "unsafe_output"
)

// ModerationDecision records one screening pass. Produced twice per
// request (input stage, output stage); never persisted beyond the
// request except as a content-free rejection marker.
type ModerationDecision struct {
	Outcome  ModerationOutcome `json:"outcome"`
	Category string            `json:"category,omitempty"`
	Reason   string            `json:"reason,omitempty"`
}

// Blocked reports whether the decision terminates or redacts the run
func (d ModerationDecision) Blocked() bool {
	return d.Outcome == ModerationBlock
}
