package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/HabitQuest_Go/internal/audit"
	"github.com/osse101/HabitQuest_Go/internal/server"
	"github.com/osse101/HabitQuest_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server            *server.Server
	LeagueWeekWorker  *worker.LeagueWeekWorker
	StreakSweepWorker *worker.StreakSweepWorker
	AuditService      audit.Service
}

// GracefulShutdown performs graceful shutdown of all application components.
// It shuts down in order:
// 1. HTTP server (stop accepting new requests)
// 2. Background workers (cancel pending timers, wait for in-flight runs)
// 3. Audit service (drain buffered event writes)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if components.LeagueWeekWorker != nil {
		if err := components.LeagueWeekWorker.Shutdown(ctx); err != nil {
			slog.Error("League week worker shutdown failed", "error", err)
		}
	}

	if components.StreakSweepWorker != nil {
		if err := components.StreakSweepWorker.Shutdown(ctx); err != nil {
			slog.Error("Streak sweep worker shutdown failed", "error", err)
		}
	}

	if components.AuditService != nil {
		if err := components.AuditService.Shutdown(ctx); err != nil {
			slog.Error("Audit service shutdown failed", "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
