package bootstrap

import (
	"github.com/osse101/HabitQuest_Go/internal/audit"
	"github.com/osse101/HabitQuest_Go/internal/league"
	"github.com/osse101/HabitQuest_Go/internal/oracle"
	"github.com/osse101/HabitQuest_Go/internal/powerup"
	"github.com/osse101/HabitQuest_Go/internal/quest"
	"github.com/osse101/HabitQuest_Go/internal/ratelimit"
	"github.com/osse101/HabitQuest_Go/internal/server"
	"github.com/osse101/HabitQuest_Go/internal/streak"
	"github.com/osse101/HabitQuest_Go/internal/user"
)

// Services holds all application services.
type Services struct {
	Audit     audit.Service
	User      user.Service
	Quest     quest.Service
	PowerUp   powerup.Service
	Streak    streak.Service
	League    league.Service
	RateLimit ratelimit.Service
	Oracle    oracle.Service
}

// InitializeServices wires all services from the repository layer.
// The audit service is constructed first because most services publish
// audit events through it.
func InitializeServices(repos *Repositories) *Services {
	auditSvc := audit.NewService(repos.Audit)
	rateLimitSvc := ratelimit.NewService(repos.Usage)

	return &Services{
		Audit:     auditSvc,
		User:      user.NewService(repos.User),
		Quest:     quest.NewService(repos.Quest, repos.User, auditSvc),
		PowerUp:   powerup.NewService(repos.PowerUp, auditSvc),
		Streak:    streak.NewService(repos.User, repos.Streak, repos.PowerUp, repos.League, auditSvc),
		League:    league.NewService(repos.League, auditSvc),
		RateLimit: rateLimitSvc,
		Oracle:    oracle.NewService(rateLimitSvc, auditSvc),
	}
}

// ServerServices adapts the service bundle to what the HTTP layer consumes.
func (s *Services) ServerServices() server.Services {
	return server.Services{
		User:    s.User,
		Quest:   s.Quest,
		PowerUp: s.PowerUp,
		Streak:  s.Streak,
		League:  s.League,
		Oracle:  s.Oracle,
	}
}
