package llm

import (
	"context"
	"strings"
	"time"

	"veracity/internal/model"
)

// Client is the completion surface shared by claim structuring, the
// moderation classifier, and verdict synthesis. Implementations must
// be safe for concurrent use.
type Client interface {
	// Complete sends a prompt and returns the raw text response
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CompletionRequest contains the input for a completion call
type CompletionRequest struct {
	// System is an optional system message
	System string

	// Prompt is the user message
	Prompt string

	// Model overrides the configured model when set
	Model string

	// MaxTokens limits the response length (0 = configured default)
	MaxTokens int

	// Temperature controls sampling (factual callers use low values)
	Temperature float32
}

// Config holds completion service configuration
type Config struct {
	// APIKey authenticates against the service
	APIKey string

	// Model is the default model name
	Model string

	// BaseURL points at a custom OpenAI-compatible endpoint
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens default for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Model:     "gpt-4o-mini",
		Timeout:   30,
		MaxTokens: 2000,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		APIKey:    mc.APIKey,
		Model:     mc.Model,
		BaseURL:   mc.BaseURL,
		Timeout:   mc.Timeout,
		MaxTokens: mc.MaxTokens,
	}
}

// IsOverloaded reports whether an error looks like a transient
// capacity problem worth retrying.
func IsOverloaded(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"503", "429", "unavailable", "overload", "rate limit"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// WithRetry runs fn up to attempts times, backing off exponentially
// (1s, 2s, 4s, ...) on overload-shaped errors. Non-overload errors
// and context cancellation stop the retries immediately.
func WithRetry(ctx context.Context, attempts int, fn func() error) error {
	if attempts <= 0 {
		attempts = 1
	}

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if !IsOverloaded(err) || attempt == attempts-1 {
			return err
		}

		wait := time.Duration(1<<attempt) * time.Second
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return err
}
