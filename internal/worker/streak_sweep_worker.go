package worker

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/HabitQuest_Go/internal/audit"
	"github.com/osse101/HabitQuest_Go/internal/logger"
	"github.com/osse101/HabitQuest_Go/internal/streak"
)

// AuditRetentionDays is how long audit records are kept before the sweep prunes them
const AuditRetentionDays = 90

// StreakSweepWorker runs daily at 00:05 UTC: it captures streak losses for
// users who never hit the lazy capture path, and prunes old audit records.
// The five-minute offset keeps it clear of the Monday league trigger.
type StreakSweepWorker struct {
	streakService streak.Service
	auditService  audit.Service
	timer         *time.Timer
	shutdown      chan struct{}
	wg            sync.WaitGroup
	mu            sync.Mutex
}

func NewStreakSweepWorker(streakService streak.Service, auditService audit.Service) *StreakSweepWorker {
	return &StreakSweepWorker{
		streakService: streakService,
		auditService:  auditService,
		shutdown:      make(chan struct{}),
	}
}

func (w *StreakSweepWorker) Start() {
	w.scheduleNext()
}

func (w *StreakSweepWorker) scheduleNext() {
	duration := timeUntilNextSweep()

	w.mu.Lock()
	w.timer = time.AfterFunc(duration, func() {
		select {
		case <-w.shutdown:
			return
		default:
		}

		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			w.sweep()
			w.scheduleNext()
		}()
	})
	w.mu.Unlock()

	logger.FromContext(context.Background()).Info(LogMsgStreakSweepScheduled,
		"next_run", time.Now().UTC().Add(duration).Format(time.RFC3339))
}

func (w *StreakSweepWorker) sweep() {
	ctx := context.Background()
	log := logger.FromContext(ctx)

	captured, err := w.streakService.SweepMissedStreaks(ctx)
	if err != nil {
		log.Error(LogMsgStreakSweepFailed, "error", err)
	} else {
		log.Info(LogMsgStreakSweepCompleted, "captured", captured)
	}

	deleted, err := w.auditService.CleanupOldEvents(ctx, AuditRetentionDays)
	if err != nil {
		log.Error("Audit cleanup failed", "error", err)
	} else if deleted > 0 {
		log.Info("Audit cleanup completed", "deleted", deleted)
	}
}

// timeUntilNextSweep returns the duration until the next 00:05 UTC
func timeUntilNextSweep() time.Duration {
	now := time.Now().UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 5, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}

func (w *StreakSweepWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
