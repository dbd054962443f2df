package interfaces

import (
	"context"
	"time"
)

// Pacer spaces out requests to the remote site.
type Pacer interface {
	// Wait blocks until another navigation is allowed
	Wait(ctx context.Context) error

	// Pause sleeps for a random duration in [min, max]
	Pause(ctx context.Context, min, max time.Duration) error
}
