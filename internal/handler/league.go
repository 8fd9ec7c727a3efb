package handler

import (
	"net/http"
	"time"

	"github.com/osse101/HabitQuest_Go/internal/domain"
	"github.com/osse101/HabitQuest_Go/internal/league"
)

// LeagueHandler serves league processing and standings endpoints
type LeagueHandler struct {
	service league.Service
}

func NewLeagueHandler(service league.Service) *LeagueHandler {
	return &LeagueHandler{service: service}
}

type ProcessWeekResponse struct {
	Processed  bool   `json:"processed"`
	WeekStart  string `json:"week_start,omitempty"`
	Promotions int    `json:"promotions"`
	Demotions  int    `json:"demotions"`
	Badges     int    `json:"badges"`
}

// HandleProcessWeek processes the most recent ended, unprocessed league week.
// Called by the scheduler; exposed for operators to trigger a catch-up run.
// @Summary Process the last league week
// @Tags league
// @Produce json
// @Success 200 {object} ProcessWeekResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/league/process [post]
func (h *LeagueHandler) HandleProcessWeek(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.ProcessLastWeek(r.Context())
	if err != nil {
		respondServiceError(w, r, "process league week", err)
		return
	}

	if report == nil {
		respondJSON(w, http.StatusOK, ProcessWeekResponse{Processed: false})
		return
	}
	respondJSON(w, http.StatusOK, ProcessWeekResponse{
		Processed:  true,
		WeekStart:  report.WeekStart.Format(time.DateOnly),
		Promotions: report.Promotions,
		Demotions:  report.Demotions,
		Badges:     report.Badges,
	})
}

type StandingsResponse struct {
	WeekStart string                       `json:"week_start"`
	Standings []domain.LeagueParticipation `json:"standings"`
}

// HandleGetStandings returns standings for a week (defaults to the current one)
// @Summary Get league standings
// @Tags league
// @Produce json
// @Param week query string false "Week date (YYYY-MM-DD), any day within the week"
// @Success 200 {object} StandingsResponse
// @Router /api/v1/league/standings [get]
func (h *LeagueHandler) HandleGetStandings(w http.ResponseWriter, r *http.Request) {
	date, ok := ParseDateOrToday(w, r.URL.Query().Get("week"))
	if !ok {
		return
	}
	weekStart := domain.WeekStartFor(date)

	standings, err := h.service.GetStandings(r.Context(), weekStart)
	if err != nil {
		respondServiceError(w, r, "get league standings", err)
		return
	}

	respondJSON(w, http.StatusOK, StandingsResponse{
		WeekStart: weekStart.Format(time.DateOnly),
		Standings: standings,
	})
}
