package checkout

import (
	"context"
	"math"
	"time"
)

// RetryPolicy bounds how often an operation is repeated. A Multiplier of 1
// keeps the delay fixed; larger values back off exponentially.
type RetryPolicy struct {
	Attempts   int
	Delay      time.Duration
	Multiplier float64

	// Sleep waits between attempts; nil uses a timer bound to ctx
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultRetryPolicy is three attempts one second apart
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: 3, Delay: time.Second, Multiplier: 1}
}

// Do calls op until it reports done or the attempts run out. It returns the
// number of attempts made and ctx.Err() if the wait was cancelled.
func (p RetryPolicy) Do(ctx context.Context, op func(ctx context.Context, attempt int) bool) (int, error) {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return attempt - 1, err
		}
		if op(ctx, attempt) {
			return attempt, nil
		}
		if attempt == attempts {
			return attempt, nil
		}
		if err := p.sleep(ctx, p.delay(attempt)); err != nil {
			return attempt, err
		}
	}
	return attempts, nil
}

// delay returns the wait after the given attempt
func (p RetryPolicy) delay(attempt int) time.Duration {
	if p.Delay <= 0 {
		return 0
	}
	m := p.Multiplier
	if m < 1 {
		m = 1
	}
	return time.Duration(float64(p.Delay) * math.Pow(m, float64(attempt-1)))
}

func (p RetryPolicy) sleep(ctx context.Context, d time.Duration) error {
	if p.Sleep != nil {
		return p.Sleep(ctx, d)
	}
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
