package pacing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBetweenStaysInRange(t *testing.T) {
	p := New(0, WithSeed(42))
	for i := 0; i < 1000; i++ {
		d := p.Between(time.Second, 5*time.Second)
		require.GreaterOrEqual(t, d, time.Second)
		require.LessOrEqual(t, d, 5*time.Second)
	}
}

func TestBetweenEdges(t *testing.T) {
	p := New(0, WithSeed(42))
	require.Equal(t, 3*time.Second, p.Between(3*time.Second, 3*time.Second))

	d := p.Between(5*time.Second, time.Second)
	require.GreaterOrEqual(t, d, time.Second)
	require.LessOrEqual(t, d, 5*time.Second)
}

func TestSeededPausesRepeat(t *testing.T) {
	a, b := New(0, WithSeed(9)), New(0, WithSeed(9))
	for i := 0; i < 10; i++ {
		require.Equal(t, a.Between(0, time.Minute), b.Between(0, time.Minute))
	}
}

func TestPauseUsesSleep(t *testing.T) {
	var slept []time.Duration
	p := New(0, WithSeed(1), WithSleep(func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}))
	require.NoError(t, p.Pause(context.Background(), 2*time.Second, 2*time.Second))
	require.Equal(t, []time.Duration{2 * time.Second}, slept)
}

func TestPauseCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := New(0)
	require.ErrorIs(t, p.Pause(ctx, time.Hour, time.Hour), context.Canceled)
}

func TestWaitRateCap(t *testing.T) {
	p := New(60000)
	ctx := context.Background()
	require.NoError(t, p.Wait(ctx))

	start := time.Now()
	require.NoError(t, p.Wait(ctx))
	require.GreaterOrEqual(t, time.Since(start), 500*time.Microsecond)
}

func TestWaitUncappedHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, New(0).Wait(ctx), context.Canceled)
}
