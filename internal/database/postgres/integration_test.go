package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/osse101/HabitQuest_Go/internal/database"
	"github.com/osse101/HabitQuest_Go/internal/domain"
)

// questXP is the production XP formula in repository.XPCalculator shape
func questXP(quest domain.Quest, streakAfter int, multiplier float64) int {
	return domain.ComputeQuestXP(quest.Difficulty, streakAfter, multiplier)
}

// setupTestDB starts a disposable Postgres container, runs the embedded
// migrations against it and returns a connected pool.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	var container *pgcontainer.PostgresContainer
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Skipf("Skipping integration test due to panic (likely Docker issue): %v", r)
			}
		}()
		container, err = pgcontainer.Run(ctx,
			"postgres:15-alpine",
			pgcontainer.WithDatabase("testdb"),
			pgcontainer.WithUsername("testuser"),
			pgcontainer.WithPassword("testpass"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second)),
		)
	}()
	require.NoError(t, err, "failed to start postgres container")
	require.NotNil(t, container)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, database.Migrate(connStr))

	pool, err := database.NewPool(connStr, 5, 5*time.Minute, 30*time.Minute)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

func createUser(t *testing.T, repo *UserRepository, username string) *domain.User {
	t.Helper()
	user := &domain.User{Username: username}
	require.NoError(t, repo.UpsertUser(context.Background(), user))
	require.NotEmpty(t, user.UserID)
	return user
}

func TestRepositories_Integration(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	userRepo := NewUserRepository(pool)
	questRepo := NewQuestRepository(pool)
	powerUpRepo := NewPowerUpRepository(pool)
	streakRepo := NewStreakRepository(pool)
	leagueRepo := NewLeagueRepository(pool)
	usageRepo := NewUsageRepository(pool)
	auditRepo := NewAuditRepository(pool)

	t.Run("user upsert and lookup", func(t *testing.T) {
		user := createUser(t, userRepo, "ada")
		assert.Equal(t, domain.TierBronze, user.LeagueTier)
		assert.Equal(t, 1, user.Level)

		// Upsert on an existing username returns the same row
		again := &domain.User{Username: "ada"}
		require.NoError(t, userRepo.UpsertUser(ctx, again))
		assert.Equal(t, user.UserID, again.UserID)

		got, err := userRepo.GetUserByID(ctx, user.UserID)
		require.NoError(t, err)
		assert.Equal(t, "ada", got.Username)

		_, err = userRepo.GetUserByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("archetype update", func(t *testing.T) {
		user := createUser(t, userRepo, "grace")

		archetype := "scholar"
		require.NoError(t, userRepo.UpdateArchetype(ctx, user.UserID, &archetype))

		got, err := userRepo.GetUserByID(ctx, user.UserID)
		require.NoError(t, err)
		require.NotNil(t, got.Archetype)
		assert.Equal(t, "scholar", *got.Archetype)

		require.NoError(t, userRepo.UpdateArchetype(ctx, user.UserID, nil))
		got, err = userRepo.GetUserByID(ctx, user.UserID)
		require.NoError(t, err)
		assert.Nil(t, got.Archetype)
	})

	t.Run("quest lifecycle awards XP exactly once", func(t *testing.T) {
		user := createUser(t, userRepo, "quester")
		day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

		quests, err := questRepo.GetActiveQuests(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, quests, "migrations seed the quest catalog")
		quest := quests[0]

		assignment, err := questRepo.UpsertAssignment(ctx, user.UserID, quest.QuestID, day)
		require.NoError(t, err)
		assert.Equal(t, domain.QuestStatusPending, assignment.Status)

		// Concurrent first-requests converge on the same row
		replayed, err := questRepo.UpsertAssignment(ctx, user.UserID, quest.QuestID, day)
		require.NoError(t, err)
		assert.Equal(t, assignment.LogID, replayed.LogID)

		accepted, err := questRepo.AcceptAssignment(ctx, user.UserID, assignment.LogID, day.Add(8*time.Hour))
		require.NoError(t, err)
		assert.True(t, accepted.Applied)
		assert.Equal(t, domain.QuestStatusActive, accepted.Assignment.Status)

		acceptedAgain, err := questRepo.AcceptAssignment(ctx, user.UserID, assignment.LogID, day.Add(9*time.Hour))
		require.NoError(t, err)
		assert.False(t, acceptedAgain.Applied)
		assert.Equal(t, accepted.Assignment.AcceptedAt, acceptedAgain.Assignment.AcceptedAt)

		outcome, err := questRepo.CompleteAssignment(ctx, user.UserID, assignment.LogID, day.Add(20*time.Hour), nil, questXP)
		require.NoError(t, err)
		assert.True(t, outcome.Applied)
		assert.Equal(t, 1, outcome.Streak, "first completion starts the chain")
		wantXP := domain.ComputeQuestXP(quest.Difficulty, 1, 1.0)
		assert.Equal(t, wantXP, outcome.XPAwarded)

		got, err := userRepo.GetUserByID(ctx, user.UserID)
		require.NoError(t, err)
		assert.Equal(t, int64(wantXP), got.TotalXP)
		assert.Equal(t, 1, got.Streak.CurrentStreak)

		// Replay returns the stored outcome without awarding again
		replay, err := questRepo.CompleteAssignment(ctx, user.UserID, assignment.LogID, day.Add(21*time.Hour), nil, questXP)
		require.NoError(t, err)
		assert.False(t, replay.Applied)
		assert.Equal(t, wantXP, replay.XPAwarded)

		got, err = userRepo.GetUserByID(ctx, user.UserID)
		require.NoError(t, err)
		assert.Equal(t, int64(wantXP), got.TotalXP, "replay must not double-award")
	})

	t.Run("completion rejects another user's log", func(t *testing.T) {
		owner := createUser(t, userRepo, "owner")
		thief := createUser(t, userRepo, "thief")
		day := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)

		quests, err := questRepo.GetActiveQuests(ctx)
		require.NoError(t, err)
		assignment, err := questRepo.UpsertAssignment(ctx, owner.UserID, quests[0].QuestID, day)
		require.NoError(t, err)

		_, err = questRepo.CompleteAssignment(ctx, thief.UserID, assignment.LogID, day.Add(time.Hour), nil, questXP)
		assert.ErrorIs(t, err, domain.ErrAssignmentNotFound)
	})

	t.Run("power-up activation phases", func(t *testing.T) {
		user := createUser(t, userRepo, "buffer")
		kind := domain.PowerUpWhitelist[domain.PowerUpBloodOath]
		t0 := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

		first, err := powerUpRepo.ActivatePowerUp(ctx, user.UserID, kind, t0)
		require.NoError(t, err)
		assert.True(t, first.Applied)
		assert.True(t, t0.Add(kind.Duration).Equal(first.Activation.ExpiresAt))

		// Still running: idempotent replay
		replay, err := powerUpRepo.ActivatePowerUp(ctx, user.UserID, kind, t0.Add(30*time.Minute))
		require.NoError(t, err)
		assert.False(t, replay.Applied)
		assert.Equal(t, first.Activation.ActivationID, replay.Activation.ActivationID)

		// Elapsed but cooling down; the cooldown runs from expiry
		_, err = powerUpRepo.ActivatePowerUp(ctx, user.UserID, kind, t0.Add(2*time.Hour))
		var cooldownErr domain.ErrCooldownActive
		require.ErrorAs(t, err, &cooldownErr)
		assert.True(t, t0.Add(kind.Duration+kind.Cooldown).Equal(cooldownErr.AvailableAt))

		// Still cooling past activation+cooldown: the clock starts at expiry
		_, err = powerUpRepo.ActivatePowerUp(ctx, user.UserID, kind, t0.Add(24*time.Hour+30*time.Minute))
		require.ErrorAs(t, err, &cooldownErr)

		// Cooldown elapsed: fresh activation
		fresh, err := powerUpRepo.ActivatePowerUp(ctx, user.UserID, kind, t0.Add(26*time.Hour))
		require.NoError(t, err)
		assert.True(t, fresh.Applied)
		assert.NotEqual(t, first.Activation.ActivationID, fresh.Activation.ActivationID)
	})

	t.Run("streak capture and insured restore", func(t *testing.T) {
		user := createUser(t, userRepo, "chained")
		day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

		quests, err := questRepo.GetActiveQuests(ctx)
		require.NoError(t, err)
		assignment, err := questRepo.UpsertAssignment(ctx, user.UserID, quests[0].QuestID, day)
		require.NoError(t, err)
		_, err = questRepo.CompleteAssignment(ctx, user.UserID, assignment.LogID, day.Add(12*time.Hour), nil, questXP)
		require.NoError(t, err)

		ward := domain.PowerUpWhitelist[domain.PowerUpStreakWard]
		_, err = powerUpRepo.ActivatePowerUp(ctx, user.UserID, ward, day.Add(13*time.Hour))
		require.NoError(t, err)

		// Intact chain: nothing to capture
		captured, err := streakRepo.CaptureStreakLoss(ctx, user.UserID, day.Add(20*time.Hour))
		require.NoError(t, err)
		assert.False(t, captured)

		// Two missed days later the loss is captured, once
		lostAt := day.AddDate(0, 0, 3).Add(6 * time.Hour)
		captured, err = streakRepo.CaptureStreakLoss(ctx, user.UserID, lostAt)
		require.NoError(t, err)
		assert.True(t, captured)

		captured, err = streakRepo.CaptureStreakLoss(ctx, user.UserID, lostAt.Add(time.Hour))
		require.NoError(t, err)
		assert.False(t, captured, "already captured")

		got, err := userRepo.GetUserByID(ctx, user.UserID)
		require.NoError(t, err)
		assert.Zero(t, got.Streak.CurrentStreak)
		require.NotNil(t, got.Streak.LastStreakCount)
		assert.Equal(t, 1, *got.Streak.LastStreakCount)

		restored, err := streakRepo.RestoreStreak(ctx, user.UserID, lostAt.Add(2*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 1, restored)

		got, err = userRepo.GetUserByID(ctx, user.UserID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.Streak.CurrentStreak)
		assert.Nil(t, got.Streak.StreakLostAt, "restore clears the capture")

		// The ward was consumed and the capture cleared
		_, err = streakRepo.RestoreStreak(ctx, user.UserID, lostAt.Add(3*time.Hour))
		assert.ErrorIs(t, err, domain.ErrNoLostStreak)
	})

	t.Run("restore fails outside the recovery window", func(t *testing.T) {
		user := createUser(t, userRepo, "too_late")
		day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

		quests, err := questRepo.GetActiveQuests(ctx)
		require.NoError(t, err)
		assignment, err := questRepo.UpsertAssignment(ctx, user.UserID, quests[0].QuestID, day)
		require.NoError(t, err)
		_, err = questRepo.CompleteAssignment(ctx, user.UserID, assignment.LogID, day.Add(12*time.Hour), nil, questXP)
		require.NoError(t, err)

		lostAt := day.AddDate(0, 0, 3)
		captured, err := streakRepo.CaptureStreakLoss(ctx, user.UserID, lostAt)
		require.NoError(t, err)
		require.True(t, captured)

		_, err = streakRepo.RestoreStreak(ctx, user.UserID, lostAt.Add(25*time.Hour))
		assert.ErrorIs(t, err, domain.ErrWindowExpired)
	})

	t.Run("league week bookkeeping", func(t *testing.T) {
		user := createUser(t, userRepo, "ranked")
		monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

		week, err := leagueRepo.EnsureWeek(ctx, monday)
		require.NoError(t, err)
		again, err := leagueRepo.EnsureWeek(ctx, monday)
		require.NoError(t, err)
		assert.Equal(t, week.WeekID, again.WeekID, "EnsureWeek is an upsert")

		granted, err := leagueRepo.GrantBadge(ctx, user.UserID, domain.TierBadgeKey(domain.TierBronze))
		require.NoError(t, err)
		assert.True(t, granted)

		granted, err = leagueRepo.GrantBadge(ctx, user.UserID, domain.TierBadgeKey(domain.TierBronze))
		require.NoError(t, err)
		assert.False(t, granted, "retry grants are deduplicated")

		participation, err := leagueRepo.GetParticipation(ctx, user.UserID, monday)
		require.NoError(t, err)
		assert.Equal(t, week.WeekID, participation.WeekID)

		processed, err := leagueRepo.FinalizeWeek(ctx, week.WeekID)
		require.NoError(t, err)
		assert.True(t, processed)

		standings, err := leagueRepo.GetWeekStandings(ctx, week.WeekID)
		require.NoError(t, err)
		require.NotEmpty(t, standings)
		for _, p := range standings {
			assert.Zero(t, p.XPEarned, "finalize zeroes the weekly XP")
		}

		processed, err = leagueRepo.FinalizeWeek(ctx, week.WeekID)
		require.NoError(t, err)
		assert.False(t, processed, "second run loses the race")

		err = leagueRepo.SetUserTier(ctx, "00000000-0000-0000-0000-000000000000", domain.TierSilver)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("daily usage counters", func(t *testing.T) {
		user := createUser(t, userRepo, "metered")
		day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

		for want := 1; want <= 3; want++ {
			count, err := usageRepo.IncrementUsage(ctx, user.UserID, "oracle", day)
			require.NoError(t, err)
			assert.Equal(t, want, count)
		}

		count, err := usageRepo.GetUsage(ctx, user.UserID, "oracle", day)
		require.NoError(t, err)
		assert.Equal(t, 3, count)

		count, err = usageRepo.GetUsage(ctx, user.UserID, "oracle", day.AddDate(0, 0, 1))
		require.NoError(t, err)
		assert.Zero(t, count, "counters are per calendar day")
	})

	t.Run("audit log", func(t *testing.T) {
		user := createUser(t, userRepo, "audited")

		err := auditRepo.LogEvent(ctx, "quest.completed", &user.UserID, map[string]interface{}{"xp": 110})
		require.NoError(t, err)

		entries, err := auditRepo.GetEventsByUser(ctx, user.UserID, 10)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "quest.completed", entries[0].EventType)
	})
}
