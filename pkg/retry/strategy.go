package retry

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

// Strategy determines whether an action should be retried. Strategies may
// delay before returning.
type Strategy func(ctx context.Context, attempts uint, err error) bool

// Limit returns a strategy that limits the total number of attempts.
// maxAttempts should be >= 1, since the action is evaluated first.
func Limit(maxAttempts uint) Strategy {
	return func(_ context.Context, attempts uint, _ error) bool {
		return attempts < maxAttempts
	}
}

// RetriableErrors returns a strategy that only retries the given errors, or
// errors wrapping them.
func RetriableErrors(retriableErrors ...error) Strategy {
	return func(_ context.Context, _ uint, err error) bool {
		for _, e := range retriableErrors {
			if errors.Is(err, e) {
				return true
			}
		}
		return false
	}
}

// NonRetriableErrors returns a strategy that never retries the given errors.
func NonRetriableErrors(nonRetriableErrors ...error) Strategy {
	return func(_ context.Context, _ uint, err error) bool {
		for _, e := range nonRetriableErrors {
			if errors.Is(err, e) {
				return false
			}
		}
		return true
	}
}

// Backoff returns a strategy that sleeps before the next attempt. The delay is
// capped at maxBackoff. It declines a retry if ctx is done while sleeping.
func Backoff(delay Delay, maxBackoff time.Duration) Strategy {
	return BackoffWithJitter(delay, maxBackoff, 0)
}

// BackoffWithJitter is Backoff with the capped delay randomly moved by up to
// jitter (a fraction) in either direction. A capped delay of 100ms with a
// jitter of 0.1 sleeps between 90ms and 110ms.
func BackoffWithJitter(delay Delay, maxBackoff time.Duration, jitter float64) Strategy {
	return func(ctx context.Context, attempts uint, _ error) bool {
		capped := time.Duration(math.Min(float64(maxBackoff), float64(delay(attempts))))
		if jitter > 0 {
			capped = time.Duration(float64(capped) * (1 + (rand.Float64()*jitter*2 - jitter)))
		}
		return sleeperImpl.Sleep(ctx, capped)
	}
}

// Delay provides the time to wait before the next attempt. attempts starts
// at 1.
type Delay func(attempts uint) time.Duration

// Constant always waits interval.
func Constant(interval time.Duration) Delay {
	return func(uint) time.Duration {
		return interval
	}
}

// BinaryExponential waits baseDelay * 2^(attempts - 1).
func BinaryExponential(baseDelay time.Duration) Delay {
	return func(attempts uint) time.Duration {
		if delay := baseDelay * time.Duration(math.Pow(2, float64(attempts-1))); delay >= 0 {
			return delay
		}
		return math.MaxInt64
	}
}

type sleeper interface {
	Sleep(ctx context.Context, d time.Duration) bool
}

type realSleeper struct{}

func (realSleeper) Sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

var sleeperImpl sleeper = realSleeper{}
