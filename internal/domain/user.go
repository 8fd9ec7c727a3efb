package domain

import "time"

// User is the core user profile with embedded progression state
type User struct {
	UserID     string      `json:"user_id"`
	Username   string      `json:"username"`
	Archetype  *string     `json:"archetype,omitempty"`
	TotalXP    int64       `json:"total_xp"`
	Level      int         `json:"level"`
	LeagueTier string      `json:"league_tier"`
	Streak     StreakState `json:"streak"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// LevelForXP derives a level from total XP (1000 XP per level, floor 1)
func LevelForXP(totalXP int64) int {
	return int(totalXP/XPPerLevel) + 1
}
