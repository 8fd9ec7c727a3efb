package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/HabitQuest_Go/internal/domain"
	"github.com/osse101/HabitQuest_Go/internal/logger"
	"github.com/osse101/HabitQuest_Go/internal/metrics"
	"github.com/osse101/HabitQuest_Go/internal/repository"
)

// Service enforces per-user per-day quotas on metered action categories
type Service interface {
	// IncrementAndCheck atomically consumes one unit of the category's quota for
	// the given calendar date. Exceeding the quota returns domain.ErrRateLimited
	// with the next midnight as the reset time. Fail-closed: a storage error
	// denies the action.
	IncrementAndCheck(ctx context.Context, userID string, category string, date time.Time) (int, error)

	// Remaining returns how many units of the category's quota are left today
	Remaining(ctx context.Context, userID string, category string, date time.Time) (int, error)
}

type service struct {
	repo repository.Usage
}

func NewService(repo repository.Usage) Service {
	return &service{repo: repo}
}

func (s *service) IncrementAndCheck(ctx context.Context, userID string, category string, date time.Time) (int, error) {
	log := logger.FromContext(ctx)
	quota := domain.QuotaFor(category)

	count, err := s.repo.IncrementUsage(ctx, userID, category, date)
	if err != nil {
		// Deny rather than let a storage failure bypass the quota
		log.Error("Usage counter unavailable, denying action", "category", category, "error", err)
		return 0, fmt.Errorf("rate limit check failed: %w", domain.ErrInternal)
	}

	if count > quota {
		metrics.RateLimitRejections.WithLabelValues(category).Inc()
		return count, domain.ErrRateLimited{
			Category:    category,
			Count:       count,
			Quota:       quota,
			AvailableAt: domain.DateOnly(date).AddDate(0, 0, 1),
		}
	}
	return count, nil
}

func (s *service) Remaining(ctx context.Context, userID string, category string, date time.Time) (int, error) {
	count, err := s.repo.GetUsage(ctx, userID, category, date)
	if err != nil {
		return 0, fmt.Errorf("failed to read usage: %w", err)
	}
	remaining := domain.QuotaFor(category) - count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}
