package moderate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"veracity/internal/llm"
	"veracity/internal/model"
)

// fakeClassifier implements llm.Client
type fakeClassifier struct {
	response string
	err      error
	calls    int
}

func (c *fakeClassifier) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	c.calls++
	return c.response, c.err
}

func TestScreenInput_PIIPatternsBlockWithoutClassifier(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"ssn", "John Smith's SSN is 123-45-6789, is that real?"},
		{"credit card", "is 4111 1111 1111 1111 a valid card number"},
		{"email", "did jane.doe@example.com really send that message"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			classifier := &fakeClassifier{response: "SAFE"}
			gate := NewGate(classifier)

			dec := gate.ScreenInput(context.Background(), tc.text)
			if !dec.Blocked() {
				t.Fatal("expected block")
			}
			if dec.Category != model.CategoryPII {
				t.Errorf("expected category pii, got %q", dec.Category)
			}
			// Pattern blocks must not spend a classifier call
			if classifier.calls != 0 {
				t.Errorf("expected 0 classifier calls, got %d", classifier.calls)
			}
		})
	}
}

func TestScreenInput_HarmfulPatternsBlock(t *testing.T) {
	classifier := &fakeClassifier{response: "SAFE"}
	gate := NewGate(classifier)

	dec := gate.ScreenInput(context.Background(), "Here is a guide to make a bomb at home")
	if !dec.Blocked() {
		t.Fatal("expected block")
	}
	if dec.Category != model.CategoryHarmful {
		t.Errorf("expected category harmful, got %q", dec.Category)
	}
	if classifier.calls != 0 {
		t.Errorf("expected 0 classifier calls, got %d", classifier.calls)
	}
}

func TestScreenInput_ClassifierBlock(t *testing.T) {
	classifier := &fakeClassifier{response: "UNSAFE: promotes violence"}
	gate := NewGate(classifier)

	dec := gate.ScreenInput(context.Background(), "an innocuous looking but unsafe claim")
	if !dec.Blocked() {
		t.Fatal("expected classifier block")
	}
	if dec.Category != model.CategoryHarmful {
		t.Errorf("expected category harmful, got %q", dec.Category)
	}
	if classifier.calls != 1 {
		t.Errorf("expected 1 classifier call, got %d", classifier.calls)
	}
}

func TestScreenInput_SafeClaimPasses(t *testing.T) {
	classifier := &fakeClassifier{response: "SAFE"}
	gate := NewGate(classifier)

	dec := gate.ScreenInput(context.Background(), "The Eiffel Tower is 330 meters tall")
	if dec.Blocked() {
		t.Errorf("expected pass, got block: %+v", dec)
	}
}

func TestScreenInput_ClassifierErrorPasses(t *testing.T) {
	classifier := &fakeClassifier{err: errors.New("service unavailable")}
	gate := NewGate(classifier)

	// Pattern screening already ran clean; a classifier outage must not
	// reject the request.
	dec := gate.ScreenInput(context.Background(), "The Eiffel Tower is 330 meters tall")
	if dec.Blocked() {
		t.Errorf("expected pass on classifier error, got block: %+v", dec)
	}
}

func TestScreenOutput_ShortExplanationBlocks(t *testing.T) {
	classifier := &fakeClassifier{response: "SAFE"}
	gate := NewGate(classifier)

	dec := gate.ScreenOutput(context.Background(), "  ok  ")
	if !dec.Blocked() {
		t.Fatal("expected block for degenerate explanation")
	}
	if dec.Category != model.CategoryUnsafeOutput {
		t.Errorf("expected category unsafe_output, got %q", dec.Category)
	}
	if classifier.calls != 0 {
		t.Errorf("expected 0 classifier calls, got %d", classifier.calls)
	}
}

func TestScreenOutput_ClassifierBlock(t *testing.T) {
	classifier := &fakeClassifier{response: "UNSAFE: fabricated citation"}
	gate := NewGate(classifier)

	dec := gate.ScreenOutput(context.Background(), "According to a study that does not exist, the claim is true.")
	if !dec.Blocked() {
		t.Fatal("expected block")
	}
	if dec.Category != model.CategoryUnsafeOutput {
		t.Errorf("expected category unsafe_output, got %q", dec.Category)
	}
}

func TestScreenOutput_SafeExplanationPasses(t *testing.T) {
	classifier := &fakeClassifier{response: "SAFE"}
	gate := NewGate(classifier)

	dec := gate.ScreenOutput(context.Background(), "Multiple credible sources confirm the stated height.")
	if dec.Blocked() {
		t.Errorf("expected pass, got block: %+v", dec)
	}
}

func TestNeutralRefusal_IsDisplayable(t *testing.T) {
	// The substitute text must itself survive the length screen
	if len(strings.TrimSpace(NeutralRefusal)) < 10 {
		t.Error("neutral refusal must be a displayable explanation")
	}
}
