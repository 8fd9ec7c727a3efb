package league

import (
	"context"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/HabitQuest_Go/internal/audit"
	"github.com/osse101/HabitQuest_Go/internal/domain"
	"github.com/osse101/HabitQuest_Go/internal/logger"
	"github.com/osse101/HabitQuest_Go/internal/metrics"
	"github.com/osse101/HabitQuest_Go/internal/repository"
)

// Service processes weekly league seasons: ranking, promotion, demotion, badges
type Service interface {
	// ProcessLastWeek finds the most recent ended, unprocessed week and applies
	// promotions, demotions, badge grants and the weekly XP reset. Intermediate
	// writes are idempotent upserts and the destructive XP reset commits together
	// with the processed flag as the final write, so a failed run is safely
	// retried in full. Returns nil report when nothing is pending.
	ProcessLastWeek(ctx context.Context) (*domain.WeekReport, error)

	// GetStandings returns all participation rows for the week containing weekStart
	GetStandings(ctx context.Context, weekStart time.Time) ([]domain.LeagueParticipation, error)
}

type service struct {
	repo     repository.League
	auditSvc audit.Service
	titler   cases.Caser
}

func NewService(repo repository.League, auditSvc audit.Service) Service {
	return &service{
		repo:     repo,
		auditSvc: auditSvc,
		titler:   cases.Title(language.English),
	}
}

func (s *service) GetStandings(ctx context.Context, weekStart time.Time) ([]domain.LeagueParticipation, error) {
	week, err := s.repo.EnsureWeek(ctx, domain.WeekStartFor(weekStart))
	if err != nil {
		return nil, err
	}
	return s.repo.GetWeekStandings(ctx, week.WeekID)
}

func (s *service) ProcessLastWeek(ctx context.Context) (*domain.WeekReport, error) {
	log := logger.FromContext(ctx)
	now := time.Now().UTC()

	week, err := s.repo.GetUnprocessedEndedWeek(ctx, now)
	if err != nil {
		return nil, err
	}
	if week == nil {
		log.Debug("No ended league week pending processing")
		return nil, nil
	}

	report := &domain.WeekReport{WeekID: week.WeekID, WeekStart: week.StartsAt}

	for _, tier := range domain.TierOrder {
		if err := s.processTier(ctx, week, tier, report); err != nil {
			return nil, err
		}
	}

	// Final write: the XP reset and the processed flag land together, so a run
	// that dies before this point leaves the ranking input intact for the retry
	applied, err := s.repo.FinalizeWeek(ctx, week.WeekID)
	if err != nil {
		return nil, err
	}
	if !applied {
		// A concurrent run finished first; its writes are identical to ours
		log.Warn("League week was processed concurrently", "week_id", week.WeekID)
		return nil, domain.ErrWeekProcessed
	}

	metrics.LeagueWeeksProcessed.Inc()
	log.Info("League week processed", "week_id", week.WeekID,
		"promotions", report.Promotions, "demotions", report.Demotions, "badges", report.Badges)
	return report, nil
}

// processTier ranks one tier's participants by weekly XP and applies moves.
// Ordering ties are broken by participation creation time then user ID, so a
// retried run produces identical ranks.
func (s *service) processTier(ctx context.Context, week *domain.LeagueWeek, tier string, report *domain.WeekReport) error {
	participations, err := s.repo.GetTierParticipations(ctx, week.WeekID, tier)
	if err != nil {
		return err
	}

	count := len(participations)
	for i, p := range participations {
		rank := i + 1
		promoted := rank <= domain.LeaguePromotionCount && domain.NextTier(tier) != tier
		demoted := !promoted && rank > count-domain.LeagueDemotionCount && domain.PreviousTier(tier) != tier

		if err := s.repo.WriteRank(ctx, p.ParticipationID, rank, promoted, demoted); err != nil {
			return err
		}

		if rank <= domain.LeaguePromotionCount {
			granted, err := s.repo.GrantBadge(ctx, p.UserID, domain.TierBadgeKey(tier))
			if err != nil {
				return err
			}
			if granted {
				report.Badges++
				s.auditSvc.Record(ctx, audit.EventLeagueProcessed, p.UserID, map[string]interface{}{
					"badge":      domain.TierBadgeKey(tier),
					"badge_name": s.titler.String(tier) + " League Top 10",
					"week_id":    week.WeekID.String(),
					"rank":       rank,
				})
			}
		}

		switch {
		case promoted:
			if err := s.repo.SetUserTier(ctx, p.UserID, domain.NextTier(tier)); err != nil {
				return err
			}
			report.Promotions++
			metrics.LeaguePromotions.WithLabelValues(tier).Inc()
		case demoted:
			if err := s.repo.SetUserTier(ctx, p.UserID, domain.PreviousTier(tier)); err != nil {
				return err
			}
			report.Demotions++
			metrics.LeagueDemotions.WithLabelValues(tier).Inc()
		}
	}
	return nil
}
