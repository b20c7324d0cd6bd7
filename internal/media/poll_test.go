package media

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPoll_ImmediateFirstCheck(t *testing.T) {
	calls := 0
	err := Poll(context.Background(), 1*time.Hour, 1*time.Hour, func(ctx context.Context) (bool, error) {
		calls++
		return true, nil
	})
	if err != nil {
		t.Fatalf("poll failed: %v", err)
	}
	// Done on the first check without waiting for an interval tick
	if calls != 1 {
		t.Errorf("expected 1 check, got %d", calls)
	}
}

func TestPoll_CompletesAfterSeveralChecks(t *testing.T) {
	calls := 0
	err := Poll(context.Background(), 1*time.Millisecond, 1*time.Second, func(ctx context.Context) (bool, error) {
		calls++
		return calls >= 4, nil
	})
	if err != nil {
		t.Fatalf("poll failed: %v", err)
	}
	if calls != 4 {
		t.Errorf("expected 4 checks, got %d", calls)
	}
}

func TestPoll_DeadlineElapses(t *testing.T) {
	err := Poll(context.Background(), 1*time.Millisecond, 15*time.Millisecond, func(ctx context.Context) (bool, error) {
		return false, nil
	})
	if !errors.Is(err, ErrDeadline) {
		t.Errorf("expected ErrDeadline, got %v", err)
	}
}

func TestPoll_CheckErrorStopsPolling(t *testing.T) {
	boom := errors.New("status check failed")
	calls := 0
	err := Poll(context.Background(), 1*time.Millisecond, 1*time.Second, func(ctx context.Context) (bool, error) {
		calls++
		if calls == 2 {
			return false, boom
		}
		return false, nil
	})
	if !errors.Is(err, boom) {
		t.Errorf("expected check error, got %v", err)
	}
	if calls != 2 {
		t.Errorf("expected polling to stop at the error, got %d calls", calls)
	}
}

func TestPoll_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Poll(ctx, 1*time.Hour, 1*time.Hour, func(ctx context.Context) (bool, error) {
		return false, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
