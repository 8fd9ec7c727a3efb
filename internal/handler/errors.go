package handler

// Generic HTTP error messages for client responses.
// These intentionally do not expose internal error details.
// Both handlers and tests reference these constants.
const (
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
	ErrMsgMissingUserID         = "Missing X-User-ID header"
	ErrMsgInvalidUserID         = "Invalid X-User-ID header"
	ErrMsgInvalidLogID          = "Invalid log ID"
	ErrMsgInvalidDate           = "Invalid date, expected YYYY-MM-DD"

	ErrMsgGenericServerError      = "Something went wrong"
	ErrMsgInvalidRequestError     = "Invalid request. Please check your inputs."
	ErrMsgUserNotFoundError       = "User not found"
	ErrMsgAssignmentNotFoundError = "Quest assignment not found"
	ErrMsgQuestNotFoundError      = "No quest available"
	ErrMsgInvalidPowerUpError     = "Unknown power-up"
	ErrMsgCooldownActiveError     = "Power-up is on cooldown"
	ErrMsgRateLimitedError        = "Daily quota exceeded. Try again tomorrow."
	ErrMsgNoLostStreakError       = "No lost streak to restore"
	ErrMsgWindowExpiredError      = "Recovery window has expired"
	ErrMsgNoInsuranceError        = "No streak protection available"
	ErrMsgWeekProcessedError      = "League week already processed"
)

// Machine-readable reason codes carried alongside error messages
const (
	ReasonNotFound       = "not_found"
	ReasonInvalidPowerUp = "invalid_powerup"
	ReasonCooldownActive = "cooldown_active"
	ReasonRateLimited    = "rate_limited"
	ReasonNoLostStreak   = "no_lost_streak"
	ReasonWindowExpired  = "window_expired"
	ReasonNoInsurance    = "no_insurance"
	ReasonWeekProcessed  = "week_processed"
	ReasonInvalidInput   = "invalid_input"
	ReasonInternal       = "internal_error"
)
