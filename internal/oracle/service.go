package oracle

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/osse101/HabitQuest_Go/internal/audit"
	"github.com/osse101/HabitQuest_Go/internal/domain"
	"github.com/osse101/HabitQuest_Go/internal/logger"
	"github.com/osse101/HabitQuest_Go/internal/ratelimit"
)

// Consultation is the oracle's response to one prompt
type Consultation struct {
	Guidance    string `json:"guidance"`
	UsedToday   int    `json:"used_today"`
	QuotaPerDay int    `json:"quota_per_day"`
}

// Service serves the quota-metered oracle consult action. The guidance text is
// generated locally; what matters here is that every consult consumes exactly
// one unit of the daily AI-action quota before any work happens.
type Service interface {
	// Consult answers a prompt, counting it against the user's daily oracle
	// quota. Exhausted quota yields domain.ErrRateLimited with the reset time.
	Consult(ctx context.Context, userID string, date time.Time, prompt string) (*Consultation, error)
}

type service struct {
	limiter  ratelimit.Service
	auditSvc audit.Service
}

func NewService(limiter ratelimit.Service, auditSvc audit.Service) Service {
	return &service{limiter: limiter, auditSvc: auditSvc}
}

func (s *service) Consult(ctx context.Context, userID string, date time.Time, prompt string) (*Consultation, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("%w: empty prompt", domain.ErrInvalidInput)
	}

	count, err := s.limiter.IncrementAndCheck(ctx, userID, domain.UsageCategoryOracle, date)
	if err != nil {
		return nil, err
	}

	guidance := guidanceFor(prompt)
	s.auditSvc.Record(ctx, audit.EventOracleConsulted, userID, map[string]interface{}{
		"date":       domain.DateOnly(date).Format(time.DateOnly),
		"used_today": count,
	})
	log.Info("Oracle consulted", "user_id", userID, "used_today", count)

	return &Consultation{
		Guidance:    guidance,
		UsedToday:   count,
		QuotaPerDay: domain.QuotaFor(domain.UsageCategoryOracle),
	}, nil
}

// guidanceFor deterministically picks a reflection prompt for the given input.
// Stands in for the model-backed generator; the caller-facing contract (one
// quota unit per consult) is identical.
func guidanceFor(prompt string) string {
	templates := []string{
		"Name the smallest version of this habit you could still do on your worst day.",
		"What made today's attempt easier or harder than yesterday's?",
		"Pick one cue in your environment to anchor this habit to tomorrow.",
		"If your streak broke tomorrow, what would most likely cause it?",
		"Describe how you'll know this habit has become automatic.",
	}
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(prompt))))
	return templates[int(h.Sum32())%len(templates)]
}
