package domain

import (
	"errors"
	"fmt"
	"time"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	ErrMsgUserNotFound       = "user not found"
	ErrMsgAssignmentNotFound = "quest assignment not found"
	ErrMsgQuestNotFound      = "quest not found"
	ErrMsgInvalidPowerUp     = "invalid power-up"
	ErrMsgCooldownActive     = "power-up on cooldown"
	ErrMsgRateLimited        = "daily quota exceeded"
	ErrMsgNoLostStreak       = "no lost streak to restore"
	ErrMsgWindowExpired      = "recovery window expired"
	ErrMsgNoInsurance        = "no streak protection available"
	ErrMsgWeekProcessed      = "league week already processed"
	ErrMsgInvalidInput       = "invalid input"
	ErrMsgInternal           = "internal error"
)

// Common domain errors.
// These errors should be used consistently across all layers of the application.
// Wrap with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrUserNotFound       = errors.New(ErrMsgUserNotFound)
	ErrAssignmentNotFound = errors.New(ErrMsgAssignmentNotFound)
	ErrQuestNotFound      = errors.New(ErrMsgQuestNotFound)
	ErrInvalidPowerUp     = errors.New(ErrMsgInvalidPowerUp)
	ErrNoLostStreak       = errors.New(ErrMsgNoLostStreak)
	ErrWindowExpired      = errors.New(ErrMsgWindowExpired)
	ErrNoInsurance        = errors.New(ErrMsgNoInsurance)
	ErrWeekProcessed      = errors.New(ErrMsgWeekProcessed)
	ErrInvalidInput       = errors.New(ErrMsgInvalidInput)
	ErrInternal           = errors.New(ErrMsgInternal)
)

// ErrCooldownActive is returned when a power-up kind is still on cooldown.
// AvailableAt lets callers render an accurate countdown.
type ErrCooldownActive struct {
	PowerUpKey  string
	AvailableAt time.Time
}

func (e ErrCooldownActive) Error() string {
	return fmt.Sprintf("%s: %s available at %s", ErrMsgCooldownActive, e.PowerUpKey, e.AvailableAt.Format(time.RFC3339))
}

// Is allows errors.Is() to work with ErrCooldownActive
func (e ErrCooldownActive) Is(target error) bool {
	_, ok := target.(ErrCooldownActive)
	return ok
}

// ErrRateLimited is returned when a per-day quota is exhausted.
// AvailableAt is the next local midnight for the supplied calendar date.
type ErrRateLimited struct {
	Category    string
	Count       int
	Quota       int
	AvailableAt time.Time
}

func (e ErrRateLimited) Error() string {
	return fmt.Sprintf("%s: %s used %d/%d", ErrMsgRateLimited, e.Category, e.Count, e.Quota)
}

// Is allows errors.Is() to work with ErrRateLimited
func (e ErrRateLimited) Is(target error) bool {
	_, ok := target.(ErrRateLimited)
	return ok
}
