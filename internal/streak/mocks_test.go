package streak

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/HabitQuest_Go/internal/domain"
	"github.com/osse101/HabitQuest_Go/internal/repository"
)

// MockUserRepository implements repository.User for testing
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) UpsertUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateArchetype(ctx context.Context, userID string, archetype *string) error {
	args := m.Called(ctx, userID, archetype)
	return args.Error(0)
}

// MockStreakRepository implements repository.Streak for testing
type MockStreakRepository struct {
	mock.Mock
}

func (m *MockStreakRepository) CaptureStreakLoss(ctx context.Context, userID string, now time.Time) (bool, error) {
	args := m.Called(ctx, userID, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockStreakRepository) RestoreStreak(ctx context.Context, userID string, now time.Time) (int, error) {
	args := m.Called(ctx, userID, now)
	return args.Int(0), args.Error(1)
}

func (m *MockStreakRepository) ListUsersWithMissedStreaks(ctx context.Context, today time.Time, limit int) ([]string, error) {
	args := m.Called(ctx, today, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockPowerUpRepository implements repository.PowerUp for testing
type MockPowerUpRepository struct {
	mock.Mock
}

func (m *MockPowerUpRepository) ActivatePowerUp(ctx context.Context, userID string, kind domain.PowerUpKind, now time.Time) (*repository.ActivateOutcome, error) {
	args := m.Called(ctx, userID, kind, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ActivateOutcome), args.Error(1)
}

func (m *MockPowerUpRepository) GetActiveActivations(ctx context.Context, userID string, now time.Time) ([]domain.PowerUpActivation, error) {
	args := m.Called(ctx, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PowerUpActivation), args.Error(1)
}

// MockLeagueRepository implements repository.League for testing
type MockLeagueRepository struct {
	mock.Mock
}

func (m *MockLeagueRepository) GetUnprocessedEndedWeek(ctx context.Context, now time.Time) (*domain.LeagueWeek, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeagueWeek), args.Error(1)
}

func (m *MockLeagueRepository) EnsureWeek(ctx context.Context, weekStart time.Time) (*domain.LeagueWeek, error) {
	args := m.Called(ctx, weekStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeagueWeek), args.Error(1)
}

func (m *MockLeagueRepository) GetTierParticipations(ctx context.Context, weekID uuid.UUID, tier string) ([]domain.LeagueParticipation, error) {
	args := m.Called(ctx, weekID, tier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeagueParticipation), args.Error(1)
}

func (m *MockLeagueRepository) GetWeekStandings(ctx context.Context, weekID uuid.UUID) ([]domain.LeagueParticipation, error) {
	args := m.Called(ctx, weekID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeagueParticipation), args.Error(1)
}

func (m *MockLeagueRepository) WriteRank(ctx context.Context, participationID uuid.UUID, rank int, promoted, demoted bool) error {
	args := m.Called(ctx, participationID, rank, promoted, demoted)
	return args.Error(0)
}

func (m *MockLeagueRepository) SetUserTier(ctx context.Context, userID string, tier string) error {
	args := m.Called(ctx, userID, tier)
	return args.Error(0)
}

func (m *MockLeagueRepository) GrantBadge(ctx context.Context, userID string, badgeKey string) (bool, error) {
	args := m.Called(ctx, userID, badgeKey)
	return args.Bool(0), args.Error(1)
}

func (m *MockLeagueRepository) FinalizeWeek(ctx context.Context, weekID uuid.UUID) (bool, error) {
	args := m.Called(ctx, weekID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLeagueRepository) GetParticipation(ctx context.Context, userID string, weekStart time.Time) (*domain.LeagueParticipation, error) {
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
