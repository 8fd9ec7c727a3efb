package repository

import (
	"context"
	"time"
)

// Streak defines the Progression Store contract for streak loss and recovery
type Streak interface {
	// CaptureStreakLoss captures (count, timestamp) and zeroes the live streak if
	// the user has missed a day and no capture exists yet. Idempotent: returns
	// false without effect when there is nothing to capture.
	CaptureStreakLoss(ctx context.Context, userID string, now time.Time) (bool, error)

	// RestoreStreak restores the captured streak, sets last_quest_date to today,
	// clears the capture and consumes one streak-protection activation, all in one
	// transaction. Fails with domain.ErrNoLostStreak, domain.ErrWindowExpired or
	// domain.ErrNoInsurance. A second restore from one capture is impossible.
	RestoreStreak(ctx context.Context, userID string, now time.Time) (int, error)

	// ListUsersWithMissedStreaks returns user IDs whose streak chain broke before
	// today and has not been captured yet (for the daily sweep).
	ListUsersWithMissedStreaks(ctx context.Context, today time.Time, limit int) ([]string, error)
}
