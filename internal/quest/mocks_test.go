package quest

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/HabitQuest_Go/internal/domain"
	"github.com/osse101/HabitQuest_Go/internal/repository"
)

// MockRepository implements repository.Quest for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetActiveQuests(ctx context.Context) ([]domain.Quest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Quest), args.Error(1)
}

func (m *MockRepository) GetQuestByID(ctx context.Context, questID int) (*domain.Quest, error) {
	args := m.Called(ctx, questID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quest), args.Error(1)
}

func (m *MockRepository) GetRecentQuestIDs(ctx context.Context, userID string, since time.Time) ([]int, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockRepository) GetMostRecentAssignedQuestID(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) GetAssignment(ctx context.Context, logID uuid.UUID) (*domain.QuestAssignment, error) {
	args := m.Called(ctx, logID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuestAssignment), args.Error(1)
}

func (m *MockRepository) GetAssignmentForDate(ctx context.Context, userID string, date time.Time) (*domain.QuestAssignment, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuestAssignment), args.Error(1)
}

func (m *MockRepository) UpsertAssignment(ctx context.Context, userID string, questID int, date time.Time) (*domain.QuestAssignment, error) {
	args := m.Called(ctx, userID, questID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuestAssignment), args.Error(1)
}

func (m *MockRepository) AcceptAssignment(ctx context.Context, userID string, logID uuid.UUID, acceptedAt time.Time) (*repository.AcceptOutcome, error) {
	args := m.Called(ctx, userID, logID, acceptedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.AcceptOutcome), args.Error(1)
}

func (m *MockRepository) CompleteAssignment(ctx context.Context, userID string, logID uuid.UUID, completedAt time.Time, reflection *string, calc repository.XPCalculator) (*repository.CompleteOutcome, error) {
	args := m.Called(ctx, userID, logID, completedAt, reflection, calc)
	if fn, ok := args.Get(0).(func(context.Context, string, uuid.UUID, time.Time, *string, repository.XPCalculator) *repository.CompleteOutcome); ok {
		return fn(ctx, userID, logID, completedAt, reflection, calc), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.CompleteOutcome), args.Error(1)
}

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

func (s *stubAudit) recorded() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.events...)
}
