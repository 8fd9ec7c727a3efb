package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/HabitQuest_Go/internal/domain"
	"github.com/osse101/HabitQuest_Go/internal/repository"
)

// QuestRepository implements repository.Quest using PostgreSQL
type QuestRepository struct {
	db *pgxpool.Pool
}

func NewQuestRepository(db *pgxpool.Pool) *QuestRepository {
	return &QuestRepository{db: db}
}

// GetActiveQuests returns all active catalog quests
func (r *QuestRepository) GetActiveQuests(ctx context.Context) ([]domain.Quest, error) {
	rows, err := r.db.Query(ctx, sqlSelectActiveQuests)
	if err != nil {
		return nil, fmt.Errorf("failed to get active quests: %w", err)
	}
	defer rows.Close()

	var quests []domain.Quest
	for rows.Next() {
		q, err := scanQuest(rows)
		if err != nil {
			return nil, err
		}
		quests = append(quests, *q)
	}
	return quests, rows.Err()
}

// GetQuestByID returns one catalog quest
func (r *QuestRepository) GetQuestByID(ctx context.Context, questID int) (*domain.Quest, error) {
	q, err := scanQuest(r.db.QueryRow(ctx, sqlSelectQuestByID, questID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrQuestNotFound
		}
		return nil, fmt.Errorf("failed to get quest: %w", err)
	}
	return q, nil
}

// GetRecentQuestIDs returns quest IDs assigned to the user since the given date
func (r *QuestRepository) GetRecentQuestIDs(ctx context.Context, userID string, since time.Time) ([]int, error) {
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sqlSelectRecentQuestIDs, userUUID, domain.DateOnly(since))
	if err != nil {
		return nil, fmt.Errorf("failed to get recent quest ids: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetMostRecentAssignedQuestID returns the user's latest assigned quest ID
func (r *QuestRepository) GetMostRecentAssignedQuestID(ctx context.Context, userID string) (int, error) {
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return 0, err
	}

	var id int
	err = r.db.QueryRow(ctx, sqlSelectMostRecentQuestID, userUUID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrQuestNotFound
		}
		return 0, fmt.Errorf("failed to get most recent quest: %w", err)
	}
	return id, nil
}

// GetAssignment fetches an assignment by log ID
func (r *QuestRepository) GetAssignment(ctx context.Context, logID uuid.UUID) (*domain.QuestAssignment, error) {
	a, err := scanAssignment(r.db.QueryRow(ctx, sqlSelectAssignment, logID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	return a, nil
}

// GetAssignmentForDate fetches the user's assignment for a calendar date
func (r *QuestRepository) GetAssignmentForDate(ctx context.Context, userID string, date time.Time) (*domain.QuestAssignment, error) {
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	a, err := scanAssignment(r.db.QueryRow(ctx, sqlSelectAssignmentForDate, userUUID, domain.DateOnly(date)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to get assignment for date: %w", err)
	}
	return a, nil
}

// UpsertAssignment creates the pending assignment for (user, date).
// ON CONFLICT DO NOTHING lets concurrent first-requests converge on one winner;
// the winning row is then read back regardless of who inserted it.
func (r *QuestRepository) UpsertAssignment(ctx context.Context, userID string, questID int, date time.Time) (*domain.QuestAssignment, error) {
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	day := domain.DateOnly(date)
	if _, err := r.db.Exec(ctx, sqlInsertAssignment, userUUID, questID, day); err != nil {
		return nil, fmt.Errorf("failed to upsert assignment: %w", err)
	}

	return r.GetAssignmentForDate(ctx, userID, day)
}

// AcceptAssignment advances pending -> active. Replays return Applied=false.
func (r *QuestRepository) AcceptAssignment(ctx context.Context, userID string, logID uuid.UUID, acceptedAt time.Time) (*repository.AcceptOutcome, error) {
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	tag, err := r.db.Exec(ctx, sqlAcceptAssignment, logID, userUUID, acceptedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to accept assignment: %w", err)
	}

	assignment, err := r.GetAssignment(ctx, logID)
	if err != nil {
		return nil, err
	}
	if assignment.UserID != userID {
		return nil, domain.ErrAssignmentNotFound
	}

	return &repository.AcceptOutcome{
		Assignment: *assignment,
		Applied:    tag.RowsAffected() > 0,
	}, nil
}

// CompleteAssignment completes the assignment atomically under a per-(user, log)
// advisory lock: the XP calculator runs exactly once against streak state and the
// active multiplier read inside the transaction, and the resulting XP is stamped
// on the log, the user profile and the current league week together. Replays
// return the stored outcome with Applied=false.
func (r *QuestRepository) CompleteAssignment(ctx context.Context, userID string, logID uuid.UUID, completedAt time.Time, reflection *string, calc repository.XPCalculator) (*repository.CompleteOutcome, error) {
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer SafeRollback(ctx, tx)

	if err := lockUserEntity(ctx, tx, userID, lockEntityQuestLog+logID.String()); err != nil {
		return nil, err
	}

	assignment, err := scanAssignment(tx.QueryRow(ctx, sqlSelectAssignment, logID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	if assignment.UserID != userID {
		return nil, domain.ErrAssignmentNotFound
	}

	// Replay: return the values stamped by the first completion
	if assignment.Status == domain.QuestStatusCompleted {
		var streak, level int
		var totalXP int64
		var lastQuestDate, lostAt *time.Time
		var lastCount *int
		if err := tx.QueryRow(ctx, sqlSelectUserForUpdate, userUUID).Scan(&totalXP, &level, &streak, &lastQuestDate, &lostAt, &lastCount); err != nil {
			return nil, fmt.Errorf("failed to get user state: %w", err)
		}
		if err := tx.Commit(ctx); err != nil {
			return nil, fmt.Errorf("failed to commit transaction: %w", err)
		}
		xp := 0
		if assignment.XPAwarded != nil {
			xp = *assignment.XPAwarded
		}
		return &repository.CompleteOutcome{
			Assignment: *assignment,
			XPAwarded:  xp,
			Streak:     streak,
			Level:      level,
			Applied:    false,
		}, nil
	}

	quest, err := scanQuest(tx.QueryRow(ctx, sqlSelectQuestByID, assignment.QuestID))
	if err != nil {
		return nil, fmt.Errorf("failed to get quest: %w", err)
	}

	var totalXP int64
	var level, streak int
	var lastQuestDate, lostAt *time.Time
	var lastCount *int
	if err := tx.QueryRow(ctx, sqlSelectUserForUpdate, userUUID).Scan(&totalXP, &level, &streak, &lastQuestDate, &lostAt, &lastCount); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to lock user row: %w", err)
	}

	multiplier, err := activeMultiplier(ctx, tx, userUUID, completedAt)
	if err != nil {
		return nil, err
	}

	streakAfter := domain.NextStreak(streak, lastQuestDate, assignment.AssignedDate)
	xp := calc(*quest, streakAfter, multiplier)

	tag, err := tx.Exec(ctx, sqlCompleteAssignment, logID, userUUID, completedAt, xp, reflection)
	if err != nil {
		return nil, fmt.Errorf("failed to complete assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Lost a race despite the lock; treat as replay
		return nil, fmt.Errorf("completion raced: %w", domain.ErrInternal)
	}

	newTotal := totalXP + int64(xp)
	newLevel := domain.LevelForXP(newTotal)
	if _, err := tx.Exec(ctx, sqlApplyCompletionToUser, userUUID, streakAfter, domain.DateOnly(assignment.AssignedDate), newTotal, newLevel); err != nil {
		return nil, fmt.Errorf("failed to apply completion to user: %w", err)
	}

	if err := addWeeklyXP(ctx, tx, userUUID, completedAt, xp); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	now := completedAt
	assignment.Status = domain.QuestStatusCompleted
	assignment.CompletedAt = &now
	assignment.XPAwarded = &xp
	assignment.ReflectionText = reflection

	return &repository.CompleteOutcome{
		Assignment: *assignment,
		XPAwarded:  xp,
		Streak:     streakAfter,
		Level:      newLevel,
		Applied:    true,
	}, nil
}

// activeMultiplier returns the strongest XP multiplier among the user's
// unconsumed, unexpired activations (1.0 when none apply)
func activeMultiplier(ctx context.Context, tx pgx.Tx, userUUID uuid.UUID, at time.Time) (float64, error) {
	rows, err := tx.Query(ctx, sqlSelectActiveActivations, userUUID, at)
	if err != nil {
		return 0, fmt.Errorf("failed to get active power-ups: %w", err)
	}
	defer rows.Close()

	multiplier := 1.0
	for rows.Next() {
		a, err := scanActivation(rows)
		if err != nil {
			return 0, err
		}
		if kind, ok := domain.LookupPowerUp(a.PowerUpKey); ok && kind.XPMultiplier > multiplier {
			multiplier = kind.XPMultiplier
		}
	}
	return multiplier, rows.Err()
}

// addWeeklyXP upserts the user's participation row for the week containing the
// completion and adds the XP to it
func addWeeklyXP(ctx context.Context, tx pgx.Tx, userUUID uuid.UUID, completedAt time.Time, xp int) error {
	weekStart := domain.WeekStartFor(completedAt)
	weekEnd := weekStart.Add(domain.LeagueWeekDuration)

	var weekID uuid.UUID
	var startsAt, endsAt time.Time
	var processed bool
	if err := tx.QueryRow(ctx, sqlUpsertWeek, weekStart, weekEnd).Scan(&weekID, &startsAt, &endsAt, &processed); err != nil {
		return fmt.Errorf("failed to ensure league week: %w", err)
	}

	var tier string
	if err := tx.QueryRow(ctx, sqlSelectUserTier, userUUID).Scan(&tier); err != nil {
		return fmt.Errorf("failed to get user tier: %w", err)
	}

	if _, err := tx.Exec(ctx, sqlUpsertParticipation, userUUID, weekID, tier, xp); err != nil {
		return fmt.Errorf("failed to add weekly xp: %w", err)
	}
	return nil
}

func scanQuest(row pgx.Row) (*domain.Quest, error) {
	var q domain.Quest
	err := row.Scan(&q.QuestID, &q.QuestKey, &q.Title, &q.Description, &q.Difficulty, &q.Archetype, &q.Active, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func scanAssignment(row pgx.Row) (*domain.QuestAssignment, error) {
	var a domain.QuestAssignment
	err := row.Scan(
		&a.LogID, &a.UserID, &a.QuestID, &a.AssignedDate, &a.Status,
		&a.AcceptedAt, &a.CompletedAt, &a.XPAwarded, &a.ReflectionText, &a.CreatedAt,
		&a.QuestKey, &a.Title, &a.Difficulty,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
