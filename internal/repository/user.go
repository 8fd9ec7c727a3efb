package repository

import (
	"context"

	"github.com/osse101/HabitQuest_Go/internal/domain"
)

// User defines the interface for user profile persistence
type User interface {
	UpsertUser(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateArchetype(ctx context.Context, userID string, archetype *string) error
}
