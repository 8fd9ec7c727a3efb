package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/HabitQuest_Go/internal/domain"
)

// UserRepository implements repository.User using PostgreSQL
type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// UpsertUser creates the user if absent and fills in generated fields
func (r *UserRepository) UpsertUser(ctx context.Context, user *domain.User) error {
	tier := user.LeagueTier
	if tier == "" {
		tier = domain.TierBronze
	}

	var id interface{}
	if user.UserID != "" {
		parsed, err := parseUserUUID(user.UserID)
		if err != nil {
			return err
		}
		id = parsed
	}

	row := r.db.QueryRow(ctx, sqlUpsertUser, id, user.Username, user.Archetype, tier)
	updated, err := scanUser(row)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	*user = *updated
	return nil
}

// GetUserByID fetches a user profile by ID
func (r *UserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	user, err := scanUser(r.db.QueryRow(ctx, sqlSelectUserByID, userUUID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUserByUsername fetches a user profile by username
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, sqlSelectUserByUsername, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

// UpdateArchetype sets or clears the user's declared archetype
func (r *UserRepository) UpdateArchetype(ctx context.Context, userID string, archetype *string) error {
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sqlUpdateArchetype, userUUID, archetype)
	if err != nil {
		return fmt.Errorf("failed to update archetype: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.UserID, &u.Username, &u.Archetype, &u.TotalXP, &u.Level, &u.LeagueTier,
		&u.Streak.CurrentStreak, &u.Streak.LastQuestDate, &u.Streak.StreakLostAt,
		&u.Streak.LastStreakCount, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
