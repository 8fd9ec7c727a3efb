package domain

import "time"

// StreakState is the streak portion of a user profile.
// Invariant: StreakLostAt and LastStreakCount are both set or both nil.
type StreakState struct {
	CurrentStreak   int        `json:"current_streak"`
	LastQuestDate   *time.Time `json:"last_quest_date,omitempty"`
	StreakLostAt    *time.Time `json:"streak_lost_at,omitempty"`
	LastStreakCount *int       `json:"last_streak_count,omitempty"`
}

// HasLossCapture reports whether a recoverable loss has been captured
func (s StreakState) HasLossCapture() bool {
	return s.StreakLostAt != nil && s.LastStreakCount != nil
}

// NextStreak computes the streak value after completing a quest on completionDate.
// Same-day completion keeps the current streak (replay idempotency); the day
// immediately after the previous quest date continues it; anything else starts over.
func NextStreak(current int, lastQuestDate *time.Time, completionDate time.Time) int {
	if lastQuestDate == nil {
		return 1
	}
	last := DateOnly(*lastQuestDate)
	completion := DateOnly(completionDate)

	switch {
	case completion.Equal(last):
		if current < 1 {
			return 1
		}
		return current
	case completion.Equal(last.AddDate(0, 0, 1)):
		return current + 1
	default:
		return 1
	}
}

// MissedDay reports whether a day has been missed as of today: the last completed
// quest is older than yesterday, so the streak chain is already broken.
func MissedDay(lastQuestDate *time.Time, today time.Time) bool {
	if lastQuestDate == nil {
		return false
	}
	return DateOnly(today).Sub(DateOnly(*lastQuestDate)) > 24*time.Hour
}

// WithinRecoveryWindow reports whether now is inside the bounded recovery window
func WithinRecoveryWindow(lostAt time.Time, now time.Time) bool {
	return !now.After(lostAt.Add(StreakRecoveryWindow))
}

// DateOnly truncates a timestamp to midnight UTC of its calendar date
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
