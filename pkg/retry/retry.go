// Package retry runs actions against flaky remote collaborators, such as an
// RPC node serving account snapshots. Validation itself is never retried.
package retry

import (
	"context"
)

// Action is a function to be performed in a retriable manner.
type Action func() error

// Retrier retries the provided action.
type Retrier interface {
	Retry(ctx context.Context, action Action) (uint, error)
}

type retrier struct {
	strategies []Strategy
}

// NewRetrier returns a Retrier that retries actions based off of the provided
// strategies. Without strategies the retrier retries until the action
// succeeds or ctx is done.
func NewRetrier(strategies ...Strategy) Retrier {
	return &retrier{
		strategies: strategies,
	}
}

func (r *retrier) Retry(ctx context.Context, action Action) (uint, error) {
	return Retry(ctx, action, r.strategies...)
}

// Retry executes action until it succeeds, one of the strategies declines a
// further attempt, or ctx is done. It returns the number of attempts made.
//
// Strategies run in the provided order, so strategies that delay should be
// specified last.
func Retry(ctx context.Context, action Action, strategies ...Strategy) (uint, error) {
	for i := uint(1); ; i++ {
		err := action()
		if err == nil {
			return i, nil
		}

		for _, s := range strategies {
			if !s(ctx, i, err) {
				return i, err
			}
		}

		if ctx.Err() != nil {
			return i, err
		}
	}
}
