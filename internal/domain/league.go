package domain

import (
	"time"

	"github.com/google/uuid"
)

// League tier constants, ordered lowest to highest
const (
	TierBronze   = "bronze"
	TierSilver   = "silver"
	TierGold     = "gold"
	TierPlatinum = "platinum"
	TierDiamond  = "diamond"
)

// TierOrder lists tiers lowest to highest; promotion moves right, demotion left
var TierOrder = []string{TierBronze, TierSilver, TierGold, TierPlatinum, TierDiamond}

// NextTier returns the tier one step up, or the same tier at the top
func NextTier(tier string) string {
	for i, t := range TierOrder {
		if t == tier && i < len(TierOrder)-1 {
			return TierOrder[i+1]
		}
	}
	return tier
}

// PreviousTier returns the tier one step down, or the same tier at the bottom
func PreviousTier(tier string) string {
	for i, t := range TierOrder {
		if t == tier && i > 0 {
			return TierOrder[i-1]
		}
	}
	return tier
}

// IsValidTier reports whether tier is a known league tier
func IsValidTier(tier string) bool {
	for _, t := range TierOrder {
		if t == tier {
			return true
		}
	}
	return false
}

// LeagueWeek is a Monday-aligned 7-day scoring period, processed exactly once
type LeagueWeek struct {
	WeekID    uuid.UUID `json:"week_id"`
	StartsAt  time.Time `json:"starts_at"` // Monday 00:00 UTC
	EndsAt    time.Time `json:"ends_at"`
	Processed bool      `json:"processed"`
}

// LeagueParticipation is one user's scoring row for one league week.
// Rank is nil until the week is processed; once processed the row is frozen.
type LeagueParticipation struct {
	ParticipationID uuid.UUID `json:"participation_id"`
	UserID          string    `json:"user_id"`
	WeekID          uuid.UUID `json:"week_id"`
	Tier            string    `json:"tier"`
	XPEarned        int       `json:"xp_earned"`
	Rank            *int      `json:"rank,omitempty"`
	Promoted        bool      `json:"promoted"`
	Demoted         bool      `json:"demoted"`
	CreatedAt       time.Time `json:"created_at"`
}

// WeekReport summarizes one processing run
type WeekReport struct {
	WeekID     uuid.UUID `json:"week_id"`
	WeekStart  time.Time `json:"week_start"`
	Promotions int       `json:"promotions"`
	Demotions  int       `json:"demotions"`
	Badges     int       `json:"badges"`
}

// TierBadgeKey returns the badge granted for a top finish in a tier
func TierBadgeKey(tier string) string {
	return "league_top10_" + tier
}

// WeekStartFor returns the Monday 00:00 UTC that starts the league week containing t
func WeekStartFor(t time.Time) time.Time {
	day := DateOnly(t)
	// Go weekday: Sunday=0, Monday=1
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
