package readiness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"profile_scraper/domain/entities"
	"profile_scraper/domain/interfaces"
)

// DefaultInterval is the polling period used when none is given.
const DefaultInterval = 250 * time.Millisecond

// Until polls pred until it returns true, the timeout elapses or ctx is done.
// A timeout yields an error wrapping entities.ErrWaitTimeout; cancellation of
// ctx yields ctx.Err().
func Until(ctx context.Context, timeout, interval time.Duration, pred Check) error {
	if interval <= 0 {
		interval = DefaultInterval
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		ok, err := pred(ctx)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			return fmt.Errorf("%w after %s", entities.ErrWaitTimeout, timeout)
		case <-ticker.C:
		}
	}
}

// Visible is open once an element matching selector is displayed.
func Visible(browser interfaces.Browser, selector entities.Selector) Check {
	return func(ctx context.Context) (bool, error) {
		el, err := browser.FindElement(ctx, selector)
		if errors.Is(err, entities.ErrElementNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return el.IsVisible(ctx)
	}
}

// Interactable is open once an element matching selector is displayed and
// enabled.
func Interactable(browser interfaces.Browser, selector entities.Selector) Check {
	return func(ctx context.Context) (bool, error) {
		el, err := browser.FindElement(ctx, selector)
		if errors.Is(err, entities.ErrElementNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		visible, err := el.IsVisible(ctx)
		if err != nil || !visible {
			return false, err
		}
		return el.IsEnabled(ctx)
	}
}

// WithTimeout turns a polling wait into a single Check that reports false,
// rather than failing, when the timeout passes.
func WithTimeout(timeout, interval time.Duration, pred Check) Check {
	return func(ctx context.Context) (bool, error) {
		err := Until(ctx, timeout, interval, pred)
		if errors.Is(err, entities.ErrWaitTimeout) {
			return false, nil
		}
		return err == nil, err
	}
}
