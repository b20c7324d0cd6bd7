package llm

import (
	"context"
	"errors"
	"testing"
)

func TestIsOverloaded(t *testing.T) {
	overloaded := []error{
		errors.New("status 503 service unavailable"),
		errors.New("429 too many requests"),
		errors.New("model is overloaded"),
		errors.New("Rate limit exceeded"),
	}
	for _, err := range overloaded {
		if !IsOverloaded(err) {
			t.Errorf("expected %v to read as overload", err)
		}
	}

	notOverloaded := []error{
		nil,
		errors.New("invalid API key"),
		errors.New("connection refused"),
	}
	for _, err := range notOverloaded {
		if IsOverloaded(err) {
			t.Errorf("expected %v to not read as overload", err)
		}
	}
}

func TestWithRetry_SucceedsFirstTry(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), 3, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestWithRetry_NonOverloadStopsImmediately(t *testing.T) {
	boom := errors.New("invalid request")
	calls := 0
	err := WithRetry(context.Background(), 3, func() error {
		calls++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("expected original error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call for non-overload error, got %d", calls)
	}
}

func TestWithRetry_RetriesOverload(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), 3, func() error {
		calls++
		if calls < 2 {
			return errors.New("503 overloaded")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
}

func TestWithRetry_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithRetry(ctx, 3, func() error {
		return errors.New("503 overloaded")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
