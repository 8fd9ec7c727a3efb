package handler

import (
	"net/http"
	"time"

	"github.com/osse101/HabitQuest_Go/internal/domain"
	"github.com/osse101/HabitQuest_Go/internal/quest"
)

// QuestHandler serves the daily quest lifecycle endpoints
type QuestHandler struct {
	service quest.Service
}

func NewQuestHandler(service quest.Service) *QuestHandler {
	return &QuestHandler{service: service}
}

type DailyQuestRequest struct {
	Date string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type DailyQuestResponse struct {
	LogID  string       `json:"log_id"`
	Quest  QuestSummary `json:"quest"`
	Status string       `json:"status"`
	Date   string       `json:"date"`
}

type QuestSummary struct {
	QuestID    int    `json:"quest_id"`
	QuestKey   string `json:"quest_key"`
	Title      string `json:"title"`
	Difficulty string `json:"difficulty"`
}

// HandleDailyQuest returns or creates the caller's quest for the date
// @Summary Get or assign the daily quest
// @Tags quest
// @Accept json
// @Produce json
// @Param request body DailyQuestRequest true "Target date (defaults to today)"
// @Success 200 {object} DailyQuestResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/quest/daily [post]
func (h *QuestHandler) HandleDailyQuest(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r, w)
	if !ok {
		return
	}

	var req DailyQuestRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Get daily quest"); err != nil {
		return
	}
	date, ok := ParseDateOrToday(w, req.Date)
	if !ok {
		return
	}

	assignment, err := h.service.GetOrAssignDaily(r.Context(), userID, date)
	if err != nil {
		respondServiceError(w, r, "get daily quest", err)
		return
	}

	respondJSON(w, http.StatusOK, DailyQuestResponse{
		LogID: assignment.LogID.String(),
		Quest: QuestSummary{
			QuestID:    assignment.QuestID,
			QuestKey:   assignment.QuestKey,
			Title:      assignment.Title,
			Difficulty: assignment.Difficulty,
		},
		Status: assignment.Status,
		Date:   assignment.AssignedDate.Format(time.DateOnly),
	})
}

type AcceptQuestRequest struct {
	LogID string `json:"log_id" validate:"required,uuid"`
}

type AcceptQuestResponse struct {
	Success    bool       `json:"success"`
	Status     string     `json:"status"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
	Idempotent bool       `json:"idempotent"`
}

// HandleAcceptQuest advances the assignment to active
// @Summary Accept the daily quest
// @Tags quest
// @Accept json
// @Produce json
// @Param request body AcceptQuestRequest true "Assignment log ID"
// @Success 200 {object} AcceptQuestResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/quest/accept [post]
func (h *QuestHandler) HandleAcceptQuest(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r, w)
	if !ok {
		return
	}

	var req AcceptQuestRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Accept quest"); err != nil {
		return
	}
	logID, ok := ParseLogID(w, req.LogID)
	if !ok {
		return
	}

	outcome, err := h.service.Accept(r.Context(), userID, logID)
	if err != nil {
		respondServiceError(w, r, "accept quest", err)
		return
	}

	respondJSON(w, http.StatusOK, AcceptQuestResponse{
		Success:    true,
		Status:     outcome.Assignment.Status,
		AcceptedAt: outcome.Assignment.AcceptedAt,
		Idempotent: !outcome.Applied,
	})
}

type CompleteQuestRequest struct {
	LogID          string  `json:"log_id" validate:"required,uuid"`
	ReflectionText *string `json:"reflection_text,omitempty" validate:"omitempty,max=2000"`
}

type CompleteQuestResponse struct {
	Success    bool   `json:"success"`
	XPAwarded  int    `json:"xp_awarded"`
	Streak     int    `json:"streak"`
	Level      int    `json:"level"`
	Idempotent bool   `json:"idempotent"`
	Status     string `json:"status"`
}

// HandleCompleteQuest completes the assignment, awarding XP exactly once
// @Summary Complete the daily quest
// @Tags quest
// @Accept json
// @Produce json
// @Param request body CompleteQuestRequest true "Assignment log ID and optional reflection"
// @Success 200 {object} CompleteQuestResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/quest/complete [post]
func (h *QuestHandler) HandleCompleteQuest(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r, w)
	if !ok {
		return
	}

	var req CompleteQuestRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Complete quest"); err != nil {
		return
	}
	logID, ok := ParseLogID(w, req.LogID)
	if !ok {
		return
	}

	outcome, err := h.service.Complete(r.Context(), userID, logID, req.ReflectionText)
	if err != nil {
		respondServiceError(w, r, "complete quest", err)
		return
	}

	respondJSON(w, http.StatusOK, CompleteQuestResponse{
		Success:    true,
		XPAwarded:  outcome.XPAwarded,
		Streak:     outcome.Streak,
		Level:      outcome.Level,
		Idempotent: !outcome.Applied,
		Status:     domain.QuestStatusCompleted,
	})
}
