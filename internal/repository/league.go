package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/HabitQuest_Go/internal/domain"
)

// League defines the Progression Store contract for weekly league processing.
// Every write is an idempotent upsert so a failed run can be retried in full.
type League interface {
	// GetUnprocessedEndedWeek returns the most recently ended week whose processed
	// flag is false, or nil when there is nothing to do.
	GetUnprocessedEndedWeek(ctx context.Context, now time.Time) (*domain.LeagueWeek, error)

	// EnsureWeek upserts the week row starting at weekStart
	EnsureWeek(ctx context.Context, weekStart time.Time) (*domain.LeagueWeek, error)

	// GetTierParticipations returns a tier's rows for the week ordered by XP
	// descending, ties broken by creation time then user ID (stable across retries).
	GetTierParticipations(ctx context.Context, weekID uuid.UUID, tier string) ([]domain.LeagueParticipation, error)

	// GetWeekStandings returns all rows for a week ordered tier then rank/XP
	GetWeekStandings(ctx context.Context, weekID uuid.UUID) ([]domain.LeagueParticipation, error)

	// WriteRank stamps a participation's rank and promotion/demotion flags
	WriteRank(ctx context.Context, participationID uuid.UUID, rank int, promoted, demoted bool) error

	// SetUserTier moves a user to a new tier
	SetUserTier(ctx context.Context, userID string, tier string) error

	// GrantBadge grants a badge once; replays return false (deduped by the store)
	GrantBadge(ctx context.Context, userID string, badgeKey string) (bool, error)

	// FinalizeWeek zeroes the week's participation XP and sets the processed flag
	// in one transaction; it must be the final write of a run. The XP reset is the
	// only destructive write of processing, so coupling it to the flag keeps the
	// ranking input intact for retries: either both land or neither does.
	// Returns false when the week was already processed (benign double-start).
	FinalizeWeek(ctx context.Context, weekID uuid.UUID) (bool, error)

	// GetParticipation returns the user's row for a week, creating it in the
	// user's current tier when absent.
	GetParticipation(ctx context.Context, userID string, weekStart time.Time) (*domain.LeagueParticipation, error)
}
