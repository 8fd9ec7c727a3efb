package postgres

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/osse101/HabitQuest_Go/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}

// parseUserUUID parses a user ID string to uuid.UUID with consistent error message.
// Use this instead of repeating uuid.Parse + error wrapping throughout the codebase.
func parseUserUUID(userID string) (uuid.UUID, error) {
	u, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user id: %w", err)
	}
	return u, nil
}

// lockUserEntity acquires a transaction-scoped advisory lock serializing all
// operations on the same (user, entity) pair. Advisory locks work even when no
// row exists yet, unlike SELECT FOR UPDATE.
func lockUserEntity(ctx context.Context, tx pgx.Tx, userID, entity string) error {
	if _, err := tx.Exec(ctx, sqlAdvisoryLock, hashUserEntity(userID, entity)); err != nil {
		return fmt.Errorf("failed to acquire advisory lock: %w", err)
	}
	return nil
}

// hashUserEntity creates a consistent int64 hash from userID + entity for advisory locking
func hashUserEntity(userID, entity string) int64 {
	h := sha256.Sum256([]byte(userID + ":" + entity))
	// Mask MSB to keep the key a positive int64
	return int64(binary.BigEndian.Uint64(h[:8]) & 0x7FFFFFFFFFFFFFFF)
}
