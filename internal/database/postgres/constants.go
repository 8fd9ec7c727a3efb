package postgres

// PostgreSQL error codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Advisory lock entity prefixes - combined with a user ID to derive lock keys
const (
	lockEntityQuestLog = "quest_log:"
	lockEntityPowerUp  = "powerup:"
	lockEntityStreak   = "streak"
)

const sqlAdvisoryLock = "SELECT pg_advisory_xact_lock($1)"

// SQL - users
const (
	sqlUpsertUser = `
		INSERT INTO users (user_id, username, archetype, league_tier)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (username) DO UPDATE
		SET archetype = COALESCE(EXCLUDED.archetype, users.archetype),
		    updated_at = NOW()
		RETURNING user_id, username, archetype, total_xp, level, league_tier,
		          current_streak, last_quest_date, streak_lost_at, last_streak_count,
		          created_at, updated_at
	`

	sqlSelectUserByID = `
		SELECT user_id, username, archetype, total_xp, level, league_tier,
		       current_streak, last_quest_date, streak_lost_at, last_streak_count,
		       created_at, updated_at
		FROM users
		WHERE user_id = $1
	`

	sqlSelectUserByUsername = `
		SELECT user_id, username, archetype, total_xp, level, league_tier,
		       current_streak, last_quest_date, streak_lost_at, last_streak_count,
		       created_at, updated_at
		FROM users
		WHERE username = $1
	`

	sqlUpdateArchetype = `
		UPDATE users SET archetype = $2, updated_at = NOW() WHERE user_id = $1
	`

	sqlSelectUserForUpdate = `
		SELECT total_xp, level, current_streak, last_quest_date, streak_lost_at, last_streak_count
		FROM users
		WHERE user_id = $1
		FOR UPDATE
	`
)

// SQL - quest catalog and assignments
const (
	sqlSelectActiveQuests = `
		SELECT quest_id, quest_key, title, description, difficulty, archetype, active, created_at, updated_at
		FROM quest_catalog
		WHERE active = TRUE
		ORDER BY quest_id
	`

	sqlSelectQuestByID = `
		SELECT quest_id, quest_key, title, description, difficulty, archetype, active, created_at, updated_at
		FROM quest_catalog
		WHERE quest_id = $1
	`

	sqlSelectRecentQuestIDs = `
		SELECT DISTINCT quest_id
		FROM quest_log
		WHERE user_id = $1 AND assigned_date >= $2
	`

	sqlSelectMostRecentQuestID = `
		SELECT quest_id
		FROM quest_log
		WHERE user_id = $1
		ORDER BY assigned_date DESC
		LIMIT 1
	`

	sqlInsertAssignment = `
		INSERT INTO quest_log (user_id, quest_id, assigned_date)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, assigned_date) DO NOTHING
	`

	sqlSelectAssignment = `
		SELECT l.log_id, l.user_id, l.quest_id, l.assigned_date, l.status,
		       l.accepted_at, l.completed_at, l.xp_awarded, l.reflection_text, l.created_at,
		       q.quest_key, q.title, q.difficulty
		FROM quest_log l
		JOIN quest_catalog q ON q.quest_id = l.quest_id
		WHERE l.log_id = $1
	`

	sqlSelectAssignmentForDate = `
		SELECT l.log_id, l.user_id, l.quest_id, l.assigned_date, l.status,
		       l.accepted_at, l.completed_at, l.xp_awarded, l.reflection_text, l.created_at,
		       q.quest_key, q.title, q.difficulty
		FROM quest_log l
		JOIN quest_catalog q ON q.quest_id = l.quest_id
		WHERE l.user_id = $1 AND l.assigned_date = $2
	`

	sqlAcceptAssignment = `
		UPDATE quest_log
		SET status = 'active', accepted_at = $3
		WHERE log_id = $1 AND user_id = $2 AND status = 'pending'
	`

	sqlCompleteAssignment = `
		UPDATE quest_log
		SET status = 'completed', completed_at = $3, xp_awarded = $4, reflection_text = $5
		WHERE log_id = $1 AND user_id = $2 AND status <> 'completed'
	`

	sqlApplyCompletionToUser = `
		UPDATE users
		SET current_streak = $2,
		    last_quest_date = $3,
		    streak_lost_at = NULL,
		    last_streak_count = NULL,
		    total_xp = $4,
		    level = $5,
		    updated_at = NOW()
		WHERE user_id = $1
	`
)

// SQL - power-ups
const (
	sqlSelectLatestActivation = `
		SELECT activation_id, user_id, powerup_key, activated_at, expires_at, cooldown_until, consumed_at
		FROM powerup_activations
		WHERE user_id = $1 AND powerup_key = $2
		ORDER BY activated_at DESC
		LIMIT 1
	`

	sqlInsertActivation = `
		INSERT INTO powerup_activations (user_id, powerup_key, activated_at, expires_at, cooldown_until)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING activation_id
	`

	sqlSelectActiveActivations = `
		SELECT activation_id, user_id, powerup_key, activated_at, expires_at, cooldown_until, consumed_at
		FROM powerup_activations
		WHERE user_id = $1 AND consumed_at IS NULL AND expires_at > $2
		ORDER BY activated_at DESC
	`

	sqlSelectInsuranceForUpdate = `
		SELECT activation_id
		FROM powerup_activations
		WHERE user_id = $1 AND powerup_key = $2 AND consumed_at IS NULL AND expires_at > $3
		ORDER BY expires_at ASC
		LIMIT 1
		FOR UPDATE
	`

	sqlConsumeActivation = `
		UPDATE powerup_activations SET consumed_at = $2 WHERE activation_id = $1 AND consumed_at IS NULL
	`
)

// SQL - streaks
const (
	sqlCaptureStreakLoss = `
		UPDATE users
		SET last_streak_count = current_streak,
		    streak_lost_at = $2,
		    current_streak = 0,
		    updated_at = NOW()
		WHERE user_id = $1
		  AND current_streak > 0
		  AND streak_lost_at IS NULL
		  AND last_quest_date IS NOT NULL
		  AND last_quest_date < $3
	`

	sqlRestoreStreak = `
		UPDATE users
		SET current_streak = $2,
		    last_quest_date = $3,
		    streak_lost_at = NULL,
		    last_streak_count = NULL,
		    updated_at = NOW()
		WHERE user_id = $1
	`

	sqlSelectMissedStreakUsers = `
		SELECT user_id
		FROM users
		WHERE current_streak > 0
		  AND streak_lost_at IS NULL
		  AND last_quest_date IS NOT NULL
		  AND last_quest_date < $1
		ORDER BY last_quest_date ASC
		LIMIT $2
	`
)

// SQL - league
const (
	sqlSelectUnprocessedEndedWeek = `
		SELECT week_id, starts_at, ends_at, processed
		FROM league_weeks
		WHERE processed = FALSE AND ends_at <= $1
		ORDER BY starts_at DESC
		LIMIT 1
	`

	sqlUpsertWeek = `
		INSERT INTO league_weeks (starts_at, ends_at)
		VALUES ($1, $2)
		ON CONFLICT (starts_at) DO UPDATE SET ends_at = EXCLUDED.ends_at
		RETURNING week_id, starts_at, ends_at, processed
	`

	sqlSelectTierParticipations = `
		SELECT participation_id, user_id, week_id, tier, xp_earned, rank, promoted, demoted, created_at
		FROM league_participations
		WHERE week_id = $1 AND tier = $2
		ORDER BY xp_earned DESC, created_at ASC, user_id ASC
	`

	sqlSelectWeekStandings = `
		SELECT participation_id, user_id, week_id, tier, xp_earned, rank, promoted, demoted, created_at
		FROM league_participations
		WHERE week_id = $1
		ORDER BY tier, rank NULLS LAST, xp_earned DESC, created_at ASC, user_id ASC
	`

	sqlWriteRank = `
		UPDATE league_participations
		SET rank = $2, promoted = $3, demoted = $4
		WHERE participation_id = $1
	`

	sqlSetUserTier = `
		UPDATE users SET league_tier = $2, updated_at = NOW() WHERE user_id = $1
	`

	sqlGrantBadge = `
		INSERT INTO user_badges (user_id, badge_key)
		VALUES ($1, $2)
		ON CONFLICT (user_id, badge_key) DO NOTHING
	`

	sqlResetWeekXP = `
		UPDATE league_participations SET xp_earned = 0 WHERE week_id = $1
	`

	sqlMarkWeekProcessed = `
		UPDATE league_weeks SET processed = TRUE WHERE week_id = $1 AND processed = FALSE
	`

	sqlUpsertParticipation = `
		INSERT INTO league_participations (user_id, week_id, tier, xp_earned)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, week_id) DO UPDATE
		SET xp_earned = league_participations.xp_earned + EXCLUDED.xp_earned
	`

	sqlSelectParticipation = `
		SELECT participation_id, user_id, week_id, tier, xp_earned, rank, promoted, demoted, created_at
		FROM league_participations
		WHERE user_id = $1 AND week_id = $2
	`

	sqlSelectUserTier = `
		SELECT league_tier FROM users WHERE user_id = $1
	`
)

// SQL - daily usage
const (
	sqlIncrementUsage = `
		INSERT INTO daily_usage (user_id, usage_day, category, count)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (user_id, usage_day, category) DO UPDATE
		SET count = daily_usage.count + 1
		RETURNING count
	`

	sqlSelectUsage = `
		SELECT count FROM daily_usage WHERE user_id = $1 AND usage_day = $2 AND category = $3
	`
)

// SQL - audit log
const (
	sqlInsertAuditEvent = `
		INSERT INTO audit_log (event_type, user_id, payload)
		VALUES ($1, $2, $3)
	`

	sqlSelectAuditByUser = `
		SELECT id, event_type, user_id, payload, created_at
		FROM audit_log
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	sqlCleanupAudit = `
		DELETE FROM audit_log WHERE created_at < NOW() - ($1 * INTERVAL '1 day')
	`
)
