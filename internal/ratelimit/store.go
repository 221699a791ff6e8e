package ratelimit

import (
	"context"
	"time"
)

// Result is the state of one fixed window after an increment.
type Result struct {
	Count   int64
	ResetAt time.Time
}

// Store counts hits per key. The first hit in a window starts it; the count
// resets once ResetAt has passed.
type Store interface {
	Increment(ctx context.Context, key string, window time.Duration) (Result, error)
}
