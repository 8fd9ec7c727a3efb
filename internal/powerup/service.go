package powerup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/HabitQuest_Go/internal/audit"
	"github.com/osse101/HabitQuest_Go/internal/domain"
	"github.com/osse101/HabitQuest_Go/internal/logger"
	"github.com/osse101/HabitQuest_Go/internal/metrics"
	"github.com/osse101/HabitQuest_Go/internal/repository"
)

// Service handles power-up activation against the fixed whitelist
type Service interface {
	// Activate activates the named power-up for the user. An unexpired same-kind
	// activation is returned as-is (Applied=false); an elapsed one still cooling
	// down yields domain.ErrCooldownActive; unknown keys yield
	// domain.ErrInvalidPowerUp before touching storage.
	Activate(ctx context.Context, userID string, powerUpKey string) (*repository.ActivateOutcome, error)

	// GetActive returns the user's currently running activations
	GetActive(ctx context.Context, userID string) ([]domain.PowerUpActivation, error)
}

type service struct {
	repo     repository.PowerUp
	auditSvc audit.Service
}

func NewService(repo repository.PowerUp, auditSvc audit.Service) Service {
	return &service{repo: repo, auditSvc: auditSvc}
}

func (s *service) Activate(ctx context.Context, userID string, powerUpKey string) (*repository.ActivateOutcome, error) {
	log := logger.FromContext(ctx)

	kind, ok := domain.LookupPowerUp(powerUpKey)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidPowerUp, powerUpKey)
	}

	outcome, err := s.repo.ActivatePowerUp(ctx, userID, kind, time.Now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrCooldownActive{}) {
			metrics.CooldownRejections.WithLabelValues(kind.Key).Inc()
		}
		return nil, err
	}

	if outcome.Applied {
		metrics.PowerUpsActivated.WithLabelValues(kind.Key).Inc()
		s.auditSvc.Record(ctx, audit.EventPowerUpUsed, userID, map[string]interface{}{
			"powerup_key": kind.Key,
			"expires_at":  outcome.Activation.ExpiresAt,
		})
		log.Info("Power-up activated", "user_id", userID, "powerup_key", kind.Key,
			"expires_at", outcome.Activation.ExpiresAt)
	}
	return outcome, nil
}

func (s *service) GetActive(ctx context.Context, userID string) ([]domain.PowerUpActivation, error) {
	return s.repo.GetActiveActivations(ctx, userID, time.Now().UTC())
}
