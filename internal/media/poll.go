package media

import (
	"context"
	"errors"
	"time"
)

// ErrDeadline reports that a poll loop's absolute deadline elapsed
// before the condition was met.
var ErrDeadline = errors.New("deadline elapsed")

// Poll re-runs check on a fixed interval until it reports done, the
// absolute deadline elapses, or ctx is cancelled. It is a timed wait,
// not a busy spin: between checks the goroutine blocks on the ticker.
// The deadline is measured from the first call and never resets.
func Poll(ctx context.Context, interval, deadline time.Duration, check func(context.Context) (bool, error)) error {
	done, err := check(ctx)
	if err != nil {
		return err
	}
	if done {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	timer := time.NewTimer(deadline)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return ErrDeadline
		case <-ticker.C:
			done, err := check(ctx)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		}
	}
}
