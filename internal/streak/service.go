package streak

import (
	"context"
	"time"

	"github.com/osse101/HabitQuest_Go/internal/audit"
	"github.com/osse101/HabitQuest_Go/internal/domain"
	"github.com/osse101/HabitQuest_Go/internal/logger"
	"github.com/osse101/HabitQuest_Go/internal/metrics"
	"github.com/osse101/HabitQuest_Go/internal/repository"
)

// SweepBatchSize caps how many broken streaks one sweep pass captures
const SweepBatchSize = 500

// Profile is the progression snapshot served to clients
type Profile struct {
	User           domain.User                `json:"user"`
	ActivePowerUps []domain.PowerUpActivation `json:"active_powerups"`
	WeeklyXP       int                        `json:"weekly_xp"`
	LeagueTier     string                     `json:"league_tier"`
}

// Service tracks streak continuity: loss capture and bounded recovery
type Service interface {
	// CaptureLossIfMissed lazily captures a broken streak. Safe to call on every
	// profile read; no-op when the streak is intact or already captured.
	CaptureLossIfMissed(ctx context.Context, userID string) (bool, error)

	// Restore brings back the captured streak, consuming one streak_ward.
	// Fails with domain.ErrNoLostStreak, domain.ErrWindowExpired or
	// domain.ErrNoInsurance.
	Restore(ctx context.Context, userID string) (int, error)

	// GetProfile returns the user's progression snapshot, triggering lazy loss
	// capture first so the response reflects a broken chain immediately.
	GetProfile(ctx context.Context, userID string) (*Profile, error)

	// SweepMissedStreaks captures losses for users who never triggered the lazy
	// path. Returns how many were captured.
	SweepMissedStreaks(ctx context.Context) (int, error)
}

type service struct {
	userRepo    repository.User
	streakRepo  repository.Streak
	powerUpRepo repository.PowerUp
	leagueRepo  repository.League
	auditSvc    audit.Service
}

func NewService(
	userRepo repository.User,
	streakRepo repository.Streak,
	powerUpRepo repository.PowerUp,
	leagueRepo repository.League,
	auditSvc audit.Service,
) Service {
	return &service{
		userRepo:    userRepo,
		streakRepo:  streakRepo,
		powerUpRepo: powerUpRepo,
		leagueRepo:  leagueRepo,
		auditSvc:    auditSvc,
	}
}

func (s *service) CaptureLossIfMissed(ctx context.Context, userID string) (bool, error) {
	log := logger.FromContext(ctx)

	captured, err := s.streakRepo.CaptureStreakLoss(ctx, userID, time.Now().UTC())
	if err != nil {
		return false, err
	}
	if captured {
		metrics.StreaksLost.Inc()
		s.auditSvc.Record(ctx, audit.EventStreakLost, userID, map[string]interface{}{})
		log.Info("Streak loss captured", "user_id", userID)
	}
	return captured, nil
}

func (s *service) Restore(ctx context.Context, userID string) (int, error) {
	log := logger.FromContext(ctx)

	restored, err := s.streakRepo.RestoreStreak(ctx, userID, time.Now().UTC())
	if err != nil {
		return 0, err
	}

	metrics.StreaksRestored.Inc()
	s.auditSvc.Record(ctx, audit.EventStreakRestored, userID, map[string]interface{}{
		"restored_streak": restored,
	})
	log.Info("Streak restored", "user_id", userID, "restored_streak", restored)
	return restored, nil
}

func (s *service) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	log := logger.FromContext(ctx)
	now := time.Now().UTC()

	if _, err := s.CaptureLossIfMissed(ctx, userID); err != nil {
		// Capture failure shouldn't block the read; the sweep will catch it
		log.Warn("Lazy streak capture failed", "user_id", userID, "error", err)
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	activations, err := s.powerUpRepo.GetActiveActivations(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	participation, err := s.leagueRepo.GetParticipation(ctx, userID, domain.WeekStartFor(now))
	if err != nil {
		return nil, err
	}

	return &Profile{
		User:           *user,
		ActivePowerUps: activations,
		WeeklyXP:       participation.XPEarned,
		LeagueTier:     user.LeagueTier,
	}, nil
}

// SweepMissedStreaks runs the daily batch capture for users whose broken chains
// were never observed by a profile read
func (s *service) SweepMissedStreaks(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)
	now := time.Now().UTC()

	userIDs, err := s.streakRepo.ListUsersWithMissedStreaks(ctx, now, SweepBatchSize)
	if err != nil {
		return 0, err
	}

	captured := 0
	for _, userID := range userIDs {
		ok, err := s.streakRepo.CaptureStreakLoss(ctx, userID, now)
		if err != nil {
			log.Error("Sweep capture failed", "user_id", userID, "error", err)
			continue
		}
		if ok {
			captured++
			metrics.StreaksLost.Inc()
			s.auditSvc.Record(ctx, audit.EventStreakLost, userID, map[string]interface{}{
				"source": "sweep",
			})
		}
	}

	if captured > 0 {
		log.Info("Streak sweep completed", "captured", captured)
	}
	return captured, nil
}
