package readiness

import (
	"context"
	"errors"
)

// ErrExhausted is returned by Retry when the gate never opened.
var ErrExhausted = errors.New("retry budget exhausted")

// Action is one attempt at opening a readiness gate.
type Action func(ctx context.Context) error

// Check reports whether the gate is open.
type Check func(ctx context.Context) (bool, error)

// Retry checks isReady and, while it is false, runs action and checks again,
// at most maxAttempts times. It returns the number of actions taken. When the
// gate is already open no action is taken. onAttempt, if set, is called after
// every action with the 1-based attempt number.
func Retry(ctx context.Context, maxAttempts int, action Action, isReady Check, onAttempt func(attempt int)) (int, error) {
	ready, err := isReady(ctx)
	if err != nil {
		return 0, err
	}
	if ready {
		return 0, nil
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return attempt - 1, err
		}

		if err := action(ctx); err != nil {
			return attempt, err
		}
		if onAttempt != nil {
			onAttempt(attempt)
		}

		ready, err := isReady(ctx)
		if err != nil {
			return attempt, err
		}
		if ready {
			return attempt, nil
		}
	}

	return maxAttempts, ErrExhausted
}
