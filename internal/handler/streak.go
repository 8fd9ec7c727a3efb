package handler

import (
	"net/http"

	"github.com/osse101/HabitQuest_Go/internal/streak"
)

// StreakHandler serves streak recovery and the profile snapshot
type StreakHandler struct {
	service streak.Service
}

func NewStreakHandler(service streak.Service) *StreakHandler {
	return &StreakHandler{service: service}
}

type RestoreStreakResponse struct {
	Success        bool `json:"success"`
	RestoredStreak int  `json:"restored_streak"`
}

// HandleRestoreStreak restores a captured streak loss, consuming a streak ward
// @Summary Restore a lost streak
// @Tags streak
// @Produce json
// @Success 200 {object} RestoreStreakResponse
// @Failure 409 {object} ErrorResponse "no_lost_streak, window_expired or no_insurance"
// @Router /api/v1/streak/restore [post]
func (h *StreakHandler) HandleRestoreStreak(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r, w)
	if !ok {
		return
	}

	restored, err := h.service.Restore(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "restore streak", err)
		return
	}

	respondJSON(w, http.StatusOK, RestoreStreakResponse{
		Success:        true,
		RestoredStreak: restored,
	})
}

// HandleGetProfile returns the caller's progression snapshot
// @Summary Get the progression profile
// @Tags profile
// @Produce json
// @Success 200 {object} streak.Profile
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/profile [get]
func (h *StreakHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r, w)
	if !ok {
		return
	}

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "get profile", err)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}
