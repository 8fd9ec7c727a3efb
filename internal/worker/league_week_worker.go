package worker

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/HabitQuest_Go/internal/league"
	"github.com/osse101/HabitQuest_Go/internal/logger"
)

// LeagueWeekWorker triggers league week processing every Monday 00:00 UTC.
// Processing itself is idempotent, so a missed or doubled trigger is harmless.
type LeagueWeekWorker struct {
	leagueService league.Service
	timer         *time.Timer
	shutdown      chan struct{}
	wg            sync.WaitGroup
	mu            sync.Mutex
}

func NewLeagueWeekWorker(leagueService league.Service) *LeagueWeekWorker {
	return &LeagueWeekWorker{
		leagueService: leagueService,
		shutdown:      make(chan struct{}),
	}
}

func (w *LeagueWeekWorker) Start() {
	// Catch up on any week that ended while the process was down
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.process()
	}()

	w.scheduleNext()
}

func (w *LeagueWeekWorker) scheduleNext() {
	duration := timeUntilNextMonday()

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
			w.process()
			w.scheduleNext()
		}()
	})
	w.mu.Unlock()

	logger.FromContext(context.Background()).Info(LogMsgLeagueWeekScheduled,
		"next_run", time.Now().UTC().Add(duration).Format(time.RFC3339))
}

func (w *LeagueWeekWorker) process() {
	ctx := context.Background()
	log := logger.FromContext(ctx)

	report, err := w.leagueService.ProcessLastWeek(ctx)
	if err != nil {
		log.Error(LogMsgLeagueWeekFailed, "error", err)
		return
	}
	if report == nil {
		return
	}
	log.Info(LogMsgLeagueWeekCompleted,
		"promotions", report.Promotions, "demotions", report.Demotions, "badges", report.Badges)
}

// timeUntilNextMonday returns the duration until the next Monday 00:00 UTC
func timeUntilNextMonday() time.Duration {
	now := time.Now().UTC()

	daysUntilMonday := (8 - int(now.Weekday())) % 7
	if daysUntilMonday == 0 {
		daysUntilMonday = 7
	}

	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, daysUntilMonday)
	return next.Sub(now)
}

func (w *LeagueWeekWorker) Shutdown(ctx context.Context) error {
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
