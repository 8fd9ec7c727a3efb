package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/HabitQuest_Go/internal/domain"
)

// StreakRepository implements repository.Streak using PostgreSQL
type StreakRepository struct {
	db *pgxpool.Pool
}

func NewStreakRepository(db *pgxpool.Pool) *StreakRepository {
	return &StreakRepository{db: db}
}

// CaptureStreakLoss records (count, timestamp) and zeroes the live streak.
// The WHERE clause makes it a no-op when the streak is intact or already
// captured, so lazy capture and the sweep worker can both call it safely.
func (r *StreakRepository) CaptureStreakLoss(ctx context.Context, userID string, now time.Time) (bool, error) {
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return false, err
	}

	// A streak is broken once a full calendar day passed without a completion
	cutoff := domain.DateOnly(now).AddDate(0, 0, -1)
	tag, err := r.db.Exec(ctx, sqlCaptureStreakLoss, userUUID, now, cutoff)
	if err != nil {
		return false, fmt.Errorf("failed to capture streak loss: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// RestoreStreak consumes one streak-protection activation and restores the
// captured streak in a single transaction. A successful restore clears the
// capture, so a second call finds nothing to restore.
func (r *StreakRepository) RestoreStreak(ctx context.Context, userID string, now time.Time) (int, error) {
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return 0, err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer SafeRollback(ctx, tx)

	if err := lockUserEntity(ctx, tx, userID, lockEntityStreak); err != nil {
		return 0, err
	}

	var totalXP int64
	var level, streak int
	var lastQuestDate, lostAt *time.Time
	var lastCount *int
	err = tx.QueryRow(ctx, sqlSelectUserForUpdate, userUUID).Scan(&totalXP, &level, &streak, &lastQuestDate, &lostAt, &lastCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to lock user row: %w", err)
	}

	if lostAt == nil || lastCount == nil {
		return 0, domain.ErrNoLostStreak
	}
	if !domain.WithinRecoveryWindow(*lostAt, now) {
		return 0, domain.ErrWindowExpired
	}

	var activationID string
	err = tx.QueryRow(ctx, sqlSelectInsuranceForUpdate, userUUID, domain.PowerUpStreakWard, now).Scan(&activationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNoInsurance
		}
		return 0, fmt.Errorf("failed to lock insurance activation: %w", err)
	}

	tag, err := tx.Exec(ctx, sqlConsumeActivation, activationID, now)
	if err != nil {
		return 0, fmt.Errorf("failed to consume insurance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return 0, domain.ErrNoInsurance
	}

	restored := *lastCount
	if _, err := tx.Exec(ctx, sqlRestoreStreak, userUUID, restored, domain.DateOnly(now)); err != nil {
		return 0, fmt.Errorf("failed to restore streak: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return restored, nil
}

// ListUsersWithMissedStreaks returns users whose chain broke but has no capture yet
func (r *StreakRepository) ListUsersWithMissedStreaks(ctx context.Context, today time.Time, limit int) ([]string, error) {
	cutoff := domain.DateOnly(today).AddDate(0, 0, -1)
	rows, err := r.db.Query(ctx, sqlSelectMissedStreakUsers, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list missed streaks: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
