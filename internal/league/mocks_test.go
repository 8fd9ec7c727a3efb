package league

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/HabitQuest_Go/internal/domain"
	"github.com/osse101/HabitQuest_Go/internal/repository"
)

// MockRepository implements repository.League for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetUnprocessedEndedWeek(ctx context.Context, now time.Time) (*domain.LeagueWeek, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeagueWeek), args.Error(1)
}

func (m *MockRepository) EnsureWeek(ctx context.Context, weekStart time.Time) (*domain.LeagueWeek, error) {
	args := m.Called(ctx, weekStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeagueWeek), args.Error(1)
}

func (m *MockRepository) GetTierParticipations(ctx context.Context, weekID uuid.UUID, tier string) ([]domain.LeagueParticipation, error) {
	args := m.Called(ctx, weekID, tier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeagueParticipation), args.Error(1)
}

func (m *MockRepository) GetWeekStandings(ctx context.Context, weekID uuid.UUID) ([]domain.LeagueParticipation, error) {
	args := m.Called(ctx, weekID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeagueParticipation), args.Error(1)
}

func (m *MockRepository) WriteRank(ctx context.Context, participationID uuid.UUID, rank int, promoted, demoted bool) error {
	args := m.Called(ctx, participationID, rank, promoted, demoted)
	return args.Error(0)
}

func (m *MockRepository) SetUserTier(ctx context.Context, userID string, tier string) error {
	args := m.Called(ctx, userID, tier)
	return args.Error(0)
}

func (m *MockRepository) GrantBadge(ctx context.Context, userID string, badgeKey string) (bool, error) {
	args := m.Called(ctx, userID, badgeKey)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) FinalizeWeek(ctx context.Context, weekID uuid.UUID) (bool, error) {
	args := m.Called(ctx, weekID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) GetParticipation(ctx context.Context, userID string, weekStart time.Time) (*domain.LeagueParticipation, error) {
	args := m.Called(ctx, userID, weekStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeagueParticipation), args.Error(1)
}

// stubAudit is a synchronous in-memory audit.Service
type stubAudit struct {
	mu     sync.Mutex
	events []string
}

func (s *stubAudit) Record(_ context.Context, eventType string, _ string, _ map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, eventType)
}

func (s *stubAudit) GetEventsByUser(context.Context, string, int) ([]repository.AuditEntry, error) {
	return nil, nil
}

func (s *stubAudit) CleanupOldEvents(context.Context, int) (int64, error) { return 0, nil }

func (s *stubAudit) Shutdown(context.Context) error { return nil }
