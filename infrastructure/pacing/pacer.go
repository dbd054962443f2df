package pacing

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"profile_scraper/domain/interfaces"
)

// Pacer combines a hard navigation rate cap with randomized settle pauses.
type Pacer struct {
	limiter *rate.Limiter
	mu      sync.Mutex
	rng     *rand.Rand
	sleep   func(ctx context.Context, d time.Duration) error
}

// Option configures a Pacer.
type Option func(*Pacer)

// WithSeed makes pause lengths reproducible.
func WithSeed(seed uint64) Option {
	return func(p *Pacer) {
		p.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

// WithSleep replaces the blocking sleep, mainly for tests.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(p *Pacer) {
		p.sleep = sleep
	}
}

// New returns a Pacer allowing navigationsPerMinute navigations per minute
// with no burst. Zero or negative disables the cap.
func New(navigationsPerMinute int, opts ...Option) *Pacer {
	p := &Pacer{
		rng:   rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		sleep: sleepContext,
	}
	if navigationsPerMinute > 0 {
		p.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(navigationsPerMinute)), 1)
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Wait blocks until the rate cap allows another navigation.
func (p *Pacer) Wait(ctx context.Context) error {
	if p.limiter == nil {
		return ctx.Err()
	}
	return p.limiter.Wait(ctx)
}

// Pause sleeps for Between(min, max).
func (p *Pacer) Pause(ctx context.Context, min, max time.Duration) error {
	return p.sleep(ctx, p.Between(min, max))
}

// Between picks a duration uniformly from [min, max]. A reversed range is
// treated as its mirror and an empty one returns min.
func (p *Pacer) Between(min, max time.Duration) time.Duration {
	if max < min {
		min, max = max, min
	}
	if max == min {
		return min
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return min + time.Duration(p.rng.Int64N(int64(max-min)+1))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

var _ interfaces.Pacer = (*Pacer)(nil)
