package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/HabitQuest_Go/internal/database/postgres"
	"github.com/osse101/HabitQuest_Go/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	User    repository.User
	Quest   repository.Quest
	PowerUp repository.PowerUp
	Streak  repository.Streak
	League  repository.League
	Usage   repository.Usage
	Audit   repository.Audit
}

// InitializeRepositories creates all repository implementations.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:    postgres.NewUserRepository(dbPool),
		Quest:   postgres.NewQuestRepository(dbPool),
		PowerUp: postgres.NewPowerUpRepository(dbPool),
		Streak:  postgres.NewStreakRepository(dbPool),
		League:  postgres.NewLeagueRepository(dbPool),
		Usage:   postgres.NewUsageRepository(dbPool),
		Audit:   postgres.NewAuditRepository(dbPool),
	}
}
