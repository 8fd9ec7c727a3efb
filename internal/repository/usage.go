package repository

import (
	"context"
	"time"
)

// Usage defines the Progression Store contract for per-day quota counters
type Usage interface {
	// IncrementUsage atomically increments the (user, date, category) counter and
	// returns the new value. The counter is monotonic within a day.
	IncrementUsage(ctx context.Context, userID string, category string, day time.Time) (int, error)

	// GetUsage returns the current count without incrementing
	GetUsage(ctx context.Context, userID string, category string, day time.Time) (int, error)
}
