package quest

import (
	"context"
	"errors"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/HabitQuest_Go/internal/audit"
	"github.com/osse101/HabitQuest_Go/internal/domain"
	"github.com/osse101/HabitQuest_Go/internal/logger"
	"github.com/osse101/HabitQuest_Go/internal/metrics"
	"github.com/osse101/HabitQuest_Go/internal/repository"
)

// Service manages the daily quest lifecycle: assignment, accept and complete
type Service interface {
	// GetOrAssignDaily returns the user's assignment for the date, creating one
	// if none exists. Concurrent first-requests converge on a single assignment.
	GetOrAssignDaily(ctx context.Context, userID string, date time.Time) (*domain.QuestAssignment, error)

	// Accept advances the assignment pending -> active. Replays succeed with
	// Applied=false and the original accepted_at.
	Accept(ctx context.Context, userID string, logID uuid.UUID) (*repository.AcceptOutcome, error)

	// Complete finishes the assignment, awarding XP exactly once. Replays return
	// the stored XP with Applied=false.
	Complete(ctx context.Context, userID string, logID uuid.UUID, reflection *string) (*repository.CompleteOutcome, error)

	// GetActiveQuests returns the active catalog (cached)
	GetActiveQuests(ctx context.Context) ([]domain.Quest, error)
}

type service struct {
	repo     repository.Quest
	userRepo repository.User
	auditSvc audit.Service
	cache    *catalogCache
}

func NewService(repo repository.Quest, userRepo repository.User, auditSvc audit.Service) Service {
	return &service{
		repo:     repo,
		userRepo: userRepo,
		auditSvc: auditSvc,
		cache:    newCatalogCache(),
	}
}

// GetActiveQuests returns active catalog quests, served from cache when fresh
func (s *service) GetActiveQuests(ctx context.Context) ([]domain.Quest, error) {
	if quests, ok := s.cache.Get(); ok {
		return quests, nil
	}

	quests, err := s.repo.GetActiveQuests(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(quests)
	return quests, nil
}

// GetOrAssignDaily returns the existing assignment for (user, date) or creates
// one via quest selection. The insert is an upsert keyed on (user, date), so a
// concurrent duplicate request reads back whichever row won.
func (s *service) GetOrAssignDaily(ctx context.Context, userID string, date time.Time) (*domain.QuestAssignment, error) {
	log := logger.FromContext(ctx)
	day := domain.DateOnly(date)

	existing, err := s.repo.GetAssignmentForDate(ctx, userID, day)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrAssignmentNotFound) {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	quest, err := s.selectQuest(ctx, user, day)
	if err != nil {
		return nil, err
	}

	assignment, err := s.repo.UpsertAssignment(ctx, userID, quest.QuestID, day)
	if err != nil {
		return nil, err
	}

	metrics.QuestsAssigned.WithLabelValues(assignment.Difficulty).Inc()
	s.auditSvc.Record(ctx, audit.EventQuestAssigned, userID, map[string]interface{}{
		"log_id":    assignment.LogID.String(),
		"quest_id":  assignment.QuestID,
		"quest_key": assignment.QuestKey,
		"date":      day.Format(time.DateOnly),
	})
	log.Info("Daily quest assigned", "user_id", userID, "quest_key", assignment.QuestKey, "date", day.Format(time.DateOnly))

	return assignment, nil
}

// selectQuest picks a quest the user hasn't seen recently, preferring quests
// matching the user's archetype (untagged quests always qualify). Fallback
// chain: 30-day window -> 60-day window -> most recent assigned quest -> any
// active quest.
func (s *service) selectQuest(ctx context.Context, user *domain.User, day time.Time) (*domain.Quest, error) {
	active, err := s.GetActiveQuests(ctx)
	if err != nil {
		return nil, err
	}
	if len(active) == 0 {
		return nil, domain.ErrQuestNotFound
	}

	for _, windowDays := range []int{domain.QuestExclusionWindowDays, domain.QuestExclusionWindowWideDays} {
		recentIDs, err := s.repo.GetRecentQuestIDs(ctx, user.UserID, day.AddDate(0, 0, -windowDays))
		if err != nil {
			return nil, err
		}
		pool := filterPool(active, user.Archetype, recentIDs)
		if len(pool) > 0 {
			return pickDeterministic(pool, user.UserID, day), nil
		}
	}

	// Every candidate was assigned recently; repeat the most recent one
	recentID, err := s.repo.GetMostRecentAssignedQuestID(ctx, user.UserID)
	if err == nil {
		if quest, qerr := s.repo.GetQuestByID(ctx, recentID); qerr == nil && quest.Active {
			return quest, nil
		}
	} else if !errors.Is(err, domain.ErrQuestNotFound) {
		return nil, err
	}

	return pickDeterministic(active, user.UserID, day), nil
}

// filterPool keeps active quests outside the exclusion set whose archetype tag
// matches the user (untagged quests match everyone)
func filterPool(active []domain.Quest, archetype *string, excludeIDs []int) []domain.Quest {
	excluded := make(map[int]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}

	var pool []domain.Quest
	for _, q := range active {
		if _, ok := excluded[q.QuestID]; ok {
			continue
		}
		if q.Archetype != nil && (archetype == nil || *q.Archetype != *archetype) {
			continue
		}
		pool = append(pool, q)
	}
	return pool
}

// pickDeterministic picks from the pool with a (user, date)-seeded RNG so
// retried requests select the same quest before the upsert settles the race
func pickDeterministic(pool []domain.Quest, userID string, day time.Time) *domain.Quest {
	h := fnv.New64a()
	h.Write([]byte(userID))
	h.Write([]byte(day.Format(time.DateOnly)))
	rng := rand.New(rand.NewSource(int64(h.Sum64() & 0x7FFFFFFFFFFFFFFF))) //nolint:gosec
	return &pool[rng.Intn(len(pool))]
}

// Accept advances pending -> active
func (s *service) Accept(ctx context.Context, userID string, logID uuid.UUID) (*repository.AcceptOutcome, error) {
	log := logger.FromContext(ctx)

	outcome, err := s.repo.AcceptAssignment(ctx, userID, logID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if outcome.Applied {
		metrics.QuestsAccepted.Inc()
		s.auditSvc.Record(ctx, audit.EventQuestAccepted, userID, map[string]interface{}{
			"log_id": logID.String(),
		})
		log.Info("Quest accepted", "user_id", userID, "log_id", logID)
	}
	return outcome, nil
}

// Complete finishes the assignment and awards XP. The XP formula runs inside
// the store transaction against streak state and the active power-up
// multiplier, so the stored value is final; replays read it back.
func (s *service) Complete(ctx context.Context, userID string, logID uuid.UUID, reflection *string) (*repository.CompleteOutcome, error) {
	log := logger.FromContext(ctx)

	outcome, err := s.repo.CompleteAssignment(ctx, userID, logID, time.Now().UTC(), reflection,
		func(quest domain.Quest, streakAfter int, multiplier float64) int {
			return domain.ComputeQuestXP(quest.Difficulty, streakAfter, multiplier)
		})
	if err != nil {
		return nil, err
	}

	if outcome.Applied {
		metrics.QuestsCompleted.WithLabelValues(outcome.Assignment.Difficulty).Inc()
		metrics.XPAwarded.Add(float64(outcome.XPAwarded))
		s.auditSvc.Record(ctx, audit.EventQuestCompleted, userID, map[string]interface{}{
			"log_id":     logID.String(),
			"quest_key":  outcome.Assignment.QuestKey,
			"xp_awarded": outcome.XPAwarded,
			"streak":     outcome.Streak,
			"level":      outcome.Level,
		})
		log.Info("Quest completed", "user_id", userID, "log_id", logID,
			"xp_awarded", outcome.XPAwarded, "streak", outcome.Streak)
	}
	return outcome, nil
}
