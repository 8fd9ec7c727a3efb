package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/HabitQuest_Go/internal/bootstrap"
	"github.com/osse101/HabitQuest_Go/internal/config"
	"github.com/osse101/HabitQuest_Go/internal/database"
	"github.com/osse101/HabitQuest_Go/internal/server"
	"github.com/osse101/HabitQuest_Go/internal/worker"
)

// shutdownTimeout bounds how long graceful shutdown may take
const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		return err
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	for _, warning := range warnings {
		slog.Warn("Configuration warning", "detail", warning)
	}

	connString := cfg.GetDBConnString()

	if err := database.Migrate(connString); err != nil {
		return err
	}

	dbPool, err := database.NewPool(connString, cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	repos := bootstrap.InitializeRepositories(dbPool)
	services := bootstrap.InitializeServices(repos)

	leagueWorker := worker.NewLeagueWeekWorker(services.League)
	leagueWorker.Start()

	sweepWorker := worker.NewStreakSweepWorker(services.Streak, services.Audit)
	sweepWorker.Start()

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, services.ServerServices())

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case sig := <-stop:
		slog.Info("Received shutdown signal", "signal", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server:            srv,
		LeagueWeekWorker:  leagueWorker,
		StreakSweepWorker: sweepWorker,
		AuditService:      services.Audit,
	})

	return nil
}
