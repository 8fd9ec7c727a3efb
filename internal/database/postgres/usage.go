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

// UsageRepository implements repository.Usage using PostgreSQL
type UsageRepository struct {
	db *pgxpool.Pool
}

func NewUsageRepository(db *pgxpool.Pool) *UsageRepository {
	return &UsageRepository{db: db}
}

// IncrementUsage bumps the (user, day, category) counter atomically via upsert
func (r *UsageRepository) IncrementUsage(ctx context.Context, userID string, category string, day time.Time) (int, error) {
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return 0, err
	}

	var count int
	err = r.db.QueryRow(ctx, sqlIncrementUsage, userUUID, domain.DateOnly(day), category).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to increment usage: %w", err)
	}
	return count, nil
}

// GetUsage reads the counter without incrementing; absent rows count as zero
func (r *UsageRepository) GetUsage(ctx context.Context, userID string, category string, day time.Time) (int, error) {
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return 0, err
	}

	var count int
	err = r.db.QueryRow(ctx, sqlSelectUsage, userUUID, domain.DateOnly(day), category).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get usage: %w", err)
	}
	return count, nil
}
