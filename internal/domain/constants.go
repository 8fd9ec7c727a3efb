package domain

import "time"

// XP constants
const (
	BaseXPEasy   = 100
	BaseXPMedium = 250
	BaseXPHard   = 500

	// StreakBonusPerDay is added per day of streak (after today's completion counts)
	StreakBonusPerDay = 10

	// XPPerLevel is the total XP required per profile level
	XPPerLevel = int64(1000)
)

// Streak constants
const (
	// StreakRecoveryWindow bounds how long after a captured loss restore() can succeed
	StreakRecoveryWindow = 24 * time.Hour
)

// Quest selection constants
const (
	// QuestExclusionWindowDays is the primary no-repeat window for quest selection
	QuestExclusionWindowDays = 30

	// QuestExclusionWindowWideDays is the widened window when the primary pool is empty
	QuestExclusionWindowWideDays = 60
)

// League constants
const (
	// LeaguePromotionCount is how many top-ranked participants promote per tier
	LeaguePromotionCount = 10

	// LeagueDemotionCount is how many bottom-ranked participants demote per tier
	LeagueDemotionCount = 5

	// LeagueWeekDuration is the length of one scoring period
	LeagueWeekDuration = 7 * 24 * time.Hour
)

// Usage quota constants
const (
	// OracleDailyQuota limits AI-backed oracle consults per user per calendar day
	OracleDailyQuota = 2

	DefaultDailyQuota = 10
)
