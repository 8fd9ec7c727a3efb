package audit

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/HabitQuest_Go/internal/logger"
	"github.com/osse101/HabitQuest_Go/internal/repository"
)

// Event type constants for the audit trail
const (
	EventQuestAssigned   = "quest.assigned"
	EventQuestAccepted   = "quest.accepted"
	EventQuestCompleted  = "quest.completed"
	EventPowerUpUsed     = "powerup.activated"
	EventStreakLost      = "streak.lost"
	EventStreakRestored  = "streak.restored"
	EventLeagueProcessed = "league.week_processed"
	EventOracleConsulted = "oracle.consulted"
)

const writeTimeout = 5 * time.Second

// Service records progression events as a best-effort side channel.
// Writes happen asynchronously; failures are logged and never propagate
// to the operation being audited.
type Service interface {
	Record(ctx context.Context, eventType string, userID string, payload map[string]interface{})
	GetEventsByUser(ctx context.Context, userID string, limit int) ([]repository.AuditEntry, error)
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
	Shutdown(ctx context.Context) error
}

type service struct {
	repo repository.Audit
	wg   sync.WaitGroup
}

func NewService(repo repository.Audit) Service {
	return &service{repo: repo}
}

// Record writes the event in the background. The caller's context is only used
// for its logger; the write gets its own deadline so it survives request teardown.
func (s *service) Record(ctx context.Context, eventType string, userID string, payload map[string]interface{}) {
	log := logger.FromContext(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		writeCtx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()

		uid := userID
		if err := s.repo.LogEvent(writeCtx, eventType, &uid, payload); err != nil {
			log.Warn("Failed to write audit event", "type", eventType, "user_id", userID, "error", err)
		}
	}()
}

func (s *service) GetEventsByUser(ctx context.Context, userID string, limit int) ([]repository.AuditEntry, error) {
	return s.repo.GetEventsByUser(ctx, userID, limit)
}

func (s *service) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	return s.repo.CleanupOldEvents(ctx, retentionDays)
}

// Shutdown waits for in-flight audit writes to drain
func (s *service) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
