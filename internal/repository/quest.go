package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/HabitQuest_Go/internal/domain"
)

// AcceptOutcome is the result of an accept operation.
// Applied is false when the call was an idempotent replay.
type AcceptOutcome struct {
	Assignment domain.QuestAssignment
	Applied    bool
}

// CompleteOutcome is the result of a complete operation.
// Applied is false on replay; XPAwarded and Streak then carry the values
// stamped by the first completion.
type CompleteOutcome struct {
	Assignment domain.QuestAssignment
	XPAwarded  int
	Streak     int
	Level      int
	Applied    bool
}

// XPCalculator computes XP for a first completion from state read inside the
// store's transaction. Pure; must not touch storage.
type XPCalculator func(quest domain.Quest, streakAfter int, multiplier float64) int

// Quest defines the Progression Store contract for quest catalog and assignments.
// Implementations serialize concurrent calls per (user, entity) and make every
// state-advancing operation a replay-safe upsert.
type Quest interface {
	// Catalog
	GetActiveQuests(ctx context.Context) ([]domain.Quest, error)
	GetQuestByID(ctx context.Context, questID int) (*domain.Quest, error)

	// Selection support
	GetRecentQuestIDs(ctx context.Context, userID string, since time.Time) ([]int, error)
	GetMostRecentAssignedQuestID(ctx context.Context, userID string) (int, error)

	// Assignments
	GetAssignment(ctx context.Context, logID uuid.UUID) (*domain.QuestAssignment, error)
	GetAssignmentForDate(ctx context.Context, userID string, date time.Time) (*domain.QuestAssignment, error)

	// UpsertAssignment creates the pending assignment for (user, date); concurrent
	// first-callers converge on one winner. Returns the winning row.
	UpsertAssignment(ctx context.Context, userID string, questID int, date time.Time) (*domain.QuestAssignment, error)

	// AcceptAssignment advances pending -> active, stamping acceptedAt.
	// Replays return Applied=false without state change.
	AcceptAssignment(ctx context.Context, userID string, logID uuid.UUID, acceptedAt time.Time) (*AcceptOutcome, error)

	// CompleteAssignment atomically completes the assignment: under the
	// per-(user, log) lock it reads streak state and the active XP multiplier,
	// invokes calc exactly once, stamps the log, advances the streak, adds the XP
	// to the current league week and to the profile total. Replays return the
	// previously stored outcome with Applied=false.
	CompleteAssignment(ctx context.Context, userID string, logID uuid.UUID, completedAt time.Time, reflection *string, calc XPCalculator) (*CompleteOutcome, error)
}
