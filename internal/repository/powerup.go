package repository

import (
	"context"
	"time"

	"github.com/osse101/HabitQuest_Go/internal/domain"
)

// ActivateOutcome is the result of a power-up activation.
// Applied is false when an unexpired activation already existed.
type ActivateOutcome struct {
	Activation domain.PowerUpActivation
	Applied    bool
}

// PowerUp defines the Progression Store contract for power-up activations
type PowerUp interface {
	// ActivatePowerUp serializes per (user, kind): an unexpired activation is
	// returned as-is with Applied=false; an elapsed activation still inside its
	// cooldown window yields domain.ErrCooldownActive; otherwise a new activation
	// is created with the given duration and cooldown.
	ActivatePowerUp(ctx context.Context, userID string, kind domain.PowerUpKind, now time.Time) (*ActivateOutcome, error)

	// GetActiveActivations returns unconsumed, unexpired activations for the user
	GetActiveActivations(ctx context.Context, userID string, now time.Time) ([]domain.PowerUpActivation, error)
}
