package domain

import (
	"time"

	"github.com/google/uuid"
)

// Quest represents a quest definition from the catalog
type Quest struct {
	QuestID     int       `json:"quest_id"`
	QuestKey    string    `json:"quest_key"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Difficulty  string    `json:"difficulty"` // 'easy', 'medium', 'hard'
	Archetype   *string   `json:"archetype,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// QuestAssignment binds one user to one quest for one calendar day.
// Status only advances pending -> active -> completed, never backward.
type QuestAssignment struct {
	LogID          uuid.UUID  `json:"log_id"`
	UserID         string     `json:"user_id"`
	QuestID        int        `json:"quest_id"`
	AssignedDate   time.Time  `json:"assigned_date"` // calendar date, midnight UTC
	Status         string     `json:"status"`        // 'pending', 'active', 'completed'
	AcceptedAt     *time.Time `json:"accepted_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	XPAwarded      *int       `json:"xp_awarded,omitempty"`
	ReflectionText *string    `json:"reflection_text,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`

	// Joined fields
	QuestKey   string `json:"quest_key,omitempty"`
	Title      string `json:"title,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
}

// Assignment status constants
const (
	QuestStatusPending   = "pending"
	QuestStatusActive    = "active"
	QuestStatusCompleted = "completed"
)

// Quest difficulty constants
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// BaseXP returns the base XP award for a quest difficulty
func BaseXP(difficulty string) int {
	switch difficulty {
	case DifficultyEasy:
		return BaseXPEasy
	case DifficultyMedium:
		return BaseXPMedium
	case DifficultyHard:
		return BaseXPHard
	default:
		return BaseXPEasy
	}
}

// ComputeQuestXP computes the XP for a quest completion. The streak bonus uses the
// streak value after today's completion is counted; the multiplier comes from the
// strongest XP power-up active at the moment of first completion. Called exactly
// once per assignment - replays must return the stored value instead.
func ComputeQuestXP(difficulty string, streakAfter int, multiplier float64) int {
	subtotal := BaseXP(difficulty) + streakAfter*StreakBonusPerDay
	return int(float64(subtotal) * multiplier)
}
