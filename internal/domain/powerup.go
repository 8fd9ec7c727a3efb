package domain

import (
	"time"

	"github.com/google/uuid"
)

// PowerUpKind describes a power-up from the fixed whitelist.
// Cooldown starts when the effect expires, so a kind is reactivatable only
// after activation + Duration + Cooldown.
type PowerUpKind struct {
	Key          string        `json:"key"`
	Name         string        `json:"name"`
	Duration     time.Duration `json:"-"`
	Cooldown     time.Duration `json:"-"`
	XPMultiplier float64       `json:"xp_multiplier"` // 1.0 when not an XP buff
	Consumable   bool          `json:"consumable"`    // consumed on use (streak insurance)
}

// PowerUpActivation represents a user's use of a power-up kind
type PowerUpActivation struct {
	ActivationID  uuid.UUID  `json:"activation_id"`
	UserID        string     `json:"user_id"`
	PowerUpKey    string     `json:"powerup_key"`
	ActivatedAt   time.Time  `json:"activated_at"`
	ExpiresAt     time.Time  `json:"expires_at"`
	CooldownUntil time.Time  `json:"cooldown_until"`
	ConsumedAt    *time.Time `json:"consumed_at,omitempty"`
}

// IsActive reports whether the activation is still in effect at the given time
func (a PowerUpActivation) IsActive(at time.Time) bool {
	return a.ConsumedAt == nil && at.Before(a.ExpiresAt)
}

// CooldownDeadline returns when the kind becomes activatable again after an
// activation at the given time: the cooldown runs from expiry, not activation.
func (k PowerUpKind) CooldownDeadline(activatedAt time.Time) time.Time {
	return activatedAt.Add(k.Duration + k.Cooldown)
}

// Power-up key constants
const (
	PowerUpBloodOath  = "blood_oath"  // 3x XP multiplier
	PowerUpFocusBrand = "focus_brand" // 2x XP multiplier
	PowerUpStreakWard = "streak_ward" // streak insurance, consumed on restore
)

// PowerUpWhitelist is the fixed set of activatable power-ups.
// Unknown keys are rejected before touching the store.
var PowerUpWhitelist = map[string]PowerUpKind{
	PowerUpBloodOath: {
		Key:          PowerUpBloodOath,
		Name:         "Blood Oath",
		Duration:     1 * time.Hour,
		Cooldown:     24 * time.Hour,
		XPMultiplier: 3.0,
	},
	PowerUpFocusBrand: {
		Key:          PowerUpFocusBrand,
		Name:         "Focus Brand",
		Duration:     2 * time.Hour,
		Cooldown:     12 * time.Hour,
		XPMultiplier: 2.0,
	},
	PowerUpStreakWard: {
		Key:          PowerUpStreakWard,
		Name:         "Streak Ward",
		Duration:     7 * 24 * time.Hour,
		Cooldown:     7 * 24 * time.Hour,
		XPMultiplier: 1.0,
		Consumable:   true,
	},
}

// LookupPowerUp returns the whitelisted kind for a key
func LookupPowerUp(key string) (PowerUpKind, bool) {
	kind, ok := PowerUpWhitelist[key]
	return kind, ok
}
