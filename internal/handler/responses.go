package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/osse101/HabitQuest_Go/internal/domain"
	"github.com/osse101/HabitQuest_Go/internal/logger"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error       string     `json:"error"`
	Reason      string     `json:"reason,omitempty"`
	AvailableAt *time.Time `json:"available_at,omitempty"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Encode into a pooled buffer first so a marshal failure can't corrupt the body
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError maps a service error to its HTTP shape and writes it.
// Cooldown and quota errors carry a machine-readable reason plus available_at.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	logger.FromContext(r.Context()).Error("Failed to "+opName, "error", err)

	var cooldownErr domain.ErrCooldownActive
	if errors.As(err, &cooldownErr) {
		respondJSON(w, http.StatusTooManyRequests, ErrorResponse{
			Error:       ErrMsgCooldownActiveError,
			Reason:      ReasonCooldownActive,
			AvailableAt: &cooldownErr.AvailableAt,
		})
		return
	}

	var rateErr domain.ErrRateLimited
	if errors.As(err, &rateErr) {
		respondJSON(w, http.StatusTooManyRequests, ErrorResponse{
			Error:       ErrMsgRateLimitedError,
			Reason:      ReasonRateLimited,
			AvailableAt: &rateErr.AvailableAt,
		})
		return
	}

	status, message, reason := mapServiceError(err)
	respondJSON(w, status, ErrorResponse{Error: message, Reason: reason})
}

// mapServiceError maps domain errors to HTTP status, user message and a
// machine-readable reason code
func mapServiceError(err error) (int, string, string) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError, ReasonNotFound
	case errors.Is(err, domain.ErrAssignmentNotFound):
		return http.StatusNotFound, ErrMsgAssignmentNotFoundError, ReasonNotFound
	case errors.Is(err, domain.ErrQuestNotFound):
		return http.StatusNotFound, ErrMsgQuestNotFoundError, ReasonNotFound
	case errors.Is(err, domain.ErrInvalidPowerUp):
		return http.StatusBadRequest, ErrMsgInvalidPowerUpError, ReasonInvalidPowerUp
	case errors.Is(err, domain.ErrNoLostStreak):
		return http.StatusConflict, ErrMsgNoLostStreakError, ReasonNoLostStreak
	case errors.Is(err, domain.ErrWindowExpired):
		return http.StatusConflict, ErrMsgWindowExpiredError, ReasonWindowExpired
	case errors.Is(err, domain.ErrNoInsurance):
		return http.StatusConflict, ErrMsgNoInsuranceError, ReasonNoInsurance
	case errors.Is(err, domain.ErrWeekProcessed):
		return http.StatusConflict, ErrMsgWeekProcessedError, ReasonWeekProcessed
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestError, ReasonInvalidInput
	default:
		return http.StatusInternalServerError, ErrMsgGenericServerError, ReasonInternal
	}
}
