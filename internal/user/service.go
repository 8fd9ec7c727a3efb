package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/osse101/HabitQuest_Go/internal/domain"
	"github.com/osse101/HabitQuest_Go/internal/logger"
	"github.com/osse101/HabitQuest_Go/internal/repository"
)

// Archetypes users can declare to bias quest selection
var validArchetypes = map[string]bool{
	"warrior": true,
	"scholar": true,
	"sage":    true,
}

// Service manages user profiles
type Service interface {
	// Register creates the user if absent (keyed on username) and returns the
	// stored profile. Registration is an upsert, so retries are safe.
	Register(ctx context.Context, username string, archetype *string) (*domain.User, error)

	// GetByID returns a user profile
	GetByID(ctx context.Context, userID string) (*domain.User, error)

	// SetArchetype updates the user's declared archetype (nil clears it)
	SetArchetype(ctx context.Context, userID string, archetype *string) error
}

type service struct {
	repo repository.User
}

func NewService(repo repository.User) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, username string, archetype *string) (*domain.User, error) {
	log := logger.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username required", domain.ErrInvalidInput)
	}
	if err := validateArchetype(archetype); err != nil {
		return nil, err
	}

	user := &domain.User{Username: username, Archetype: archetype}
	if err := s.repo.UpsertUser(ctx, user); err != nil {
		return nil, err
	}

	log.Info("User registered", "user_id", user.UserID, "username", username)
	return user, nil
}

func (s *service) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.GetUserByID(ctx, userID)
}

func (s *service) SetArchetype(ctx context.Context, userID string, archetype *string) error {
	if err := validateArchetype(archetype); err != nil {
		return err
	}
	return s.repo.UpdateArchetype(ctx, userID, archetype)
}

func validateArchetype(archetype *string) error {
	if archetype == nil {
		return nil
	}
	if !validArchetypes[strings.ToLower(*archetype)] {
		return fmt.Errorf("%w: unknown archetype %q", domain.ErrInvalidInput, *archetype)
	}
	return nil
}
