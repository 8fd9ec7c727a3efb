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
)

// LeagueRepository implements repository.League using PostgreSQL
type LeagueRepository struct {
	db *pgxpool.Pool
}

func NewLeagueRepository(db *pgxpool.Pool) *LeagueRepository {
	return &LeagueRepository{db: db}
}

// GetUnprocessedEndedWeek returns the latest ended week not yet processed
func (r *LeagueRepository) GetUnprocessedEndedWeek(ctx context.Context, now time.Time) (*domain.LeagueWeek, error) {
	w, err := scanWeek(r.db.QueryRow(ctx, sqlSelectUnprocessedEndedWeek, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get unprocessed week: %w", err)
	}
	return w, nil
}

// EnsureWeek upserts the week row starting at weekStart
func (r *LeagueRepository) EnsureWeek(ctx context.Context, weekStart time.Time) (*domain.LeagueWeek, error) {
	start := domain.DateOnly(weekStart)
	w, err := scanWeek(r.db.QueryRow(ctx, sqlUpsertWeek, start, start.Add(domain.LeagueWeekDuration)))
	if err != nil {
		return nil, fmt.Errorf("failed to ensure league week: %w", err)
	}
	return w, nil
}

// GetTierParticipations returns one tier's rows ordered by XP desc with stable tie-breaks
func (r *LeagueRepository) GetTierParticipations(ctx context.Context, weekID uuid.UUID, tier string) ([]domain.LeagueParticipation, error) {
	rows, err := r.db.Query(ctx, sqlSelectTierParticipations, weekID, tier)
	if err != nil {
		return nil, fmt.Errorf("failed to get tier participations: %w", err)
	}
	defer rows.Close()
	return collectParticipations(rows)
}

// GetWeekStandings returns all rows for a week
func (r *LeagueRepository) GetWeekStandings(ctx context.Context, weekID uuid.UUID) ([]domain.LeagueParticipation, error) {
	rows, err := r.db.Query(ctx, sqlSelectWeekStandings, weekID)
	if err != nil {
		return nil, fmt.Errorf("failed to get week standings: %w", err)
	}
	defer rows.Close()
	return collectParticipations(rows)
}

// WriteRank stamps rank and promotion/demotion flags on a participation row
func (r *LeagueRepository) WriteRank(ctx context.Context, participationID uuid.UUID, rank int, promoted, demoted bool) error {
	if _, err := r.db.Exec(ctx, sqlWriteRank, participationID, rank, promoted, demoted); err != nil {
		return fmt.Errorf("failed to write rank: %w", err)
	}
	return nil
}

// SetUserTier moves a user to a new tier
func (r *LeagueRepository) SetUserTier(ctx context.Context, userID string, tier string) error {
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, sqlSetUserTier, userUUID, tier)
	if err != nil {
		return fmt.Errorf("failed to set user tier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// GrantBadge grants a badge; ON CONFLICT DO NOTHING dedupes retries
func (r *LeagueRepository) GrantBadge(ctx context.Context, userID string, badgeKey string) (bool, error) {
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return false, err
	}
	tag, err := r.db.Exec(ctx, sqlGrantBadge, userUUID, badgeKey)
	if err != nil {
		return false, fmt.Errorf("failed to grant badge: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// FinalizeWeek flips the processed flag and zeroes the week's XP in a single
// transaction. The flag update is conditional on processed = FALSE, so a lost
// race rolls back and leaves the XP untouched for the winning run.
func (r *LeagueRepository) FinalizeWeek(ctx context.Context, weekID uuid.UUID) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer SafeRollback(ctx, tx)

	tag, err := tx.Exec(ctx, sqlMarkWeekProcessed, weekID)
	if err != nil {
		return false, fmt.Errorf("failed to mark week processed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	if _, err := tx.Exec(ctx, sqlResetWeekXP, weekID); err != nil {
		return false, fmt.Errorf("failed to reset week xp: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return true, nil
}

// GetParticipation returns the user's row for the week containing weekStart,
// creating it in the user's current tier when absent
func (r *LeagueRepository) GetParticipation(ctx context.Context, userID string, weekStart time.Time) (*domain.LeagueParticipation, error) {
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	week, err := r.EnsureWeek(ctx, weekStart)
	if err != nil {
		return nil, err
	}

	p, err := scanParticipation(r.db.QueryRow(ctx, sqlSelectParticipation, userUUID, week.WeekID))
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to get participation: %w", err)
	}

	var tier string
	if err := r.db.QueryRow(ctx, sqlSelectUserTier, userUUID).Scan(&tier); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user tier: %w", err)
	}
	if _, err := r.db.Exec(ctx, sqlUpsertParticipation, userUUID, week.WeekID, tier, 0); err != nil {
		return nil, fmt.Errorf("failed to create participation: %w", err)
	}

	p, err = scanParticipation(r.db.QueryRow(ctx, sqlSelectParticipation, userUUID, week.WeekID))
	if err != nil {
		return nil, fmt.Errorf("failed to get participation: %w", err)
	}
	return p, nil
}

func scanWeek(row pgx.Row) (*domain.LeagueWeek, error) {
	var w domain.LeagueWeek
	if err := row.Scan(&w.WeekID, &w.StartsAt, &w.EndsAt, &w.Processed); err != nil {
		return nil, err
	}
	return &w, nil
}

func scanParticipation(row pgx.Row) (*domain.LeagueParticipation, error) {
	var p domain.LeagueParticipation
	err := row.Scan(&p.ParticipationID, &p.UserID, &p.WeekID, &p.Tier, &p.XPEarned, &p.Rank, &p.Promoted, &p.Demoted, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectParticipations(rows pgx.Rows) ([]domain.LeagueParticipation, error) {
	var out []domain.LeagueParticipation
	for rows.Next() {
		p, err := scanParticipation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}
