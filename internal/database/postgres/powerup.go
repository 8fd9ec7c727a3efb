package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/HabitQuest_Go/internal/domain"
	"github.com/osse101/HabitQuest_Go/internal/repository"
)

// PowerUpRepository implements repository.PowerUp using PostgreSQL
type PowerUpRepository struct {
	db *pgxpool.Pool
}

func NewPowerUpRepository(db *pgxpool.Pool) *PowerUpRepository {
	return &PowerUpRepository{db: db}
}

// ActivatePowerUp activates a power-up under a per-(user, kind) advisory lock.
// The latest activation decides the outcome: still running means idempotent
// replay, elapsed-but-cooling means domain.ErrCooldownActive, otherwise a new
// activation row is written.
func (r *PowerUpRepository) ActivatePowerUp(ctx context.Context, userID string, kind domain.PowerUpKind, now time.Time) (*repository.ActivateOutcome, error) {
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer SafeRollback(ctx, tx)

	if err := lockUserEntity(ctx, tx, userID, lockEntityPowerUp+kind.Key); err != nil {
		return nil, err
	}

	latest, err := scanActivation(tx.QueryRow(ctx, sqlSelectLatestActivation, userUUID, kind.Key))
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to get latest activation: %w", err)
	}

	if latest != nil {
		if latest.IsActive(now) {
			if err := tx.Commit(ctx); err != nil {
				return nil, fmt.Errorf("failed to commit transaction: %w", err)
			}
			return &repository.ActivateOutcome{Activation: *latest, Applied: false}, nil
		}
		if now.Before(latest.CooldownUntil) {
			return nil, domain.ErrCooldownActive{
				PowerUpKey:  kind.Key,
				AvailableAt: latest.CooldownUntil,
			}
		}
	}

	activation := domain.PowerUpActivation{
		UserID:        userID,
		PowerUpKey:    kind.Key,
		ActivatedAt:   now,
		ExpiresAt:     now.Add(kind.Duration),
		CooldownUntil: kind.CooldownDeadline(now),
	}
	err = tx.QueryRow(ctx, sqlInsertActivation,
		userUUID, kind.Key, activation.ActivatedAt, activation.ExpiresAt, activation.CooldownUntil,
	).Scan(&activation.ActivationID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert activation: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &repository.ActivateOutcome{Activation: activation, Applied: true}, nil
}

// GetActiveActivations returns the user's unconsumed, unexpired activations
func (r *PowerUpRepository) GetActiveActivations(ctx context.Context, userID string, now time.Time) ([]domain.PowerUpActivation, error) {
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sqlSelectActiveActivations, userUUID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to get active activations: %w", err)
	}
	defer rows.Close()

	var activations []domain.PowerUpActivation
	for rows.Next() {
		a, err := scanActivation(rows)
		if err != nil {
			return nil, err
		}
		activations = append(activations, *a)
	}
	return activations, rows.Err()
}

func scanActivation(row pgx.Row) (*domain.PowerUpActivation, error) {
	var a domain.PowerUpActivation
	err := row.Scan(&a.ActivationID, &a.UserID, &a.PowerUpKey, &a.ActivatedAt, &a.ExpiresAt, &a.CooldownUntil, &a.ConsumedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
