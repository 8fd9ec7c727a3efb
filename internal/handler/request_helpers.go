package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/HabitQuest_Go/internal/domain"
	"github.com/osse101/HabitQuest_Go/internal/logger"
)

// HeaderUserID carries the caller's user identity; the auth layer in front of
// this service is trusted to have resolved it
const HeaderUserID = "X-User-ID"

// DecodeAndValidateRequest decodes a JSON request body and validates it.
// If it returns an error the HTTP response has already been written.
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Error(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		http.Error(w, ErrMsgInvalidRequest, http.StatusBadRequest)
		return err
	}

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// GetUserID extracts and validates the caller identity header.
// If ok is false the HTTP response has already been written.
func GetUserID(r *http.Request, w http.ResponseWriter) (string, bool) {
	userID := r.Header.Get(HeaderUserID)
	if userID == "" {
		http.Error(w, ErrMsgMissingUserID, http.StatusBadRequest)
		return "", false
	}
	if _, err := uuid.Parse(userID); err != nil {
		http.Error(w, ErrMsgInvalidUserID, http.StatusBadRequest)
		return "", false
	}
	return userID, true
}

// ParseLogID parses a quest log ID from a request field.
// If ok is false the HTTP response has already been written.
func ParseLogID(w http.ResponseWriter, raw string) (uuid.UUID, bool) {
	logID, err := uuid.Parse(raw)
	if err != nil {
		http.Error(w, ErrMsgInvalidLogID, http.StatusBadRequest)
		return uuid.Nil, false
	}
	return logID, true
}

// ParseDateOrToday parses a YYYY-MM-DD date, defaulting to today (UTC) when
// empty. If ok is false the HTTP response has already been written.
func ParseDateOrToday(w http.ResponseWriter, raw string) (time.Time, bool) {
	if raw == "" {
		return domain.DateOnly(time.Now().UTC()), true
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		http.Error(w, ErrMsgInvalidDate, http.StatusBadRequest)
		return time.Time{}, false
	}
	return t, true
}

// GetQueryParam retrieves a required query parameter.
// If ok is false the HTTP response has already been written.
func GetQueryParam(r *http.Request, w http.ResponseWriter, paramName string) (string, bool) {
	log := logger.FromContext(r.Context())
	value := r.URL.Query().Get(paramName)
	if value == "" {
		log.Warn(fmt.Sprintf("Missing %s query parameter", paramName))
		http.Error(w, fmt.Sprintf(ErrMsgMissingQueryParam, paramName), http.StatusBadRequest)
		return "", false
	}
	return value, true
}

// GetOptionalQueryParam retrieves an optional query parameter with a default
func GetOptionalQueryParam(r *http.Request, paramName string, defaultValue string) string {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		return defaultValue
	}
	return value
}
