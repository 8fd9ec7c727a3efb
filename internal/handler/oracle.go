package handler

import (
	"net/http"

	"github.com/osse101/HabitQuest_Go/internal/oracle"
)

// OracleHandler serves the quota-metered oracle consult endpoint
type OracleHandler struct {
	service oracle.Service
}

func NewOracleHandler(service oracle.Service) *OracleHandler {
	return &OracleHandler{service: service}
}

type ConsultOracleRequest struct {
	Date   string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Prompt string `json:"prompt" validate:"required,min=1,max=1000"`
}

// HandleConsultOracle answers a habit reflection prompt, consuming daily quota
// @Summary Consult the oracle
// @Tags oracle
// @Accept json
// @Produce json
// @Param request body ConsultOracleRequest true "Prompt and optional date"
// @Success 200 {object} oracle.Consultation
// @Failure 429 {object} ErrorResponse "Quota exhausted, available_at set"
// @Router /api/v1/oracle/consult [post]
func (h *OracleHandler) HandleConsultOracle(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r, w)
	if !ok {
		return
	}

	var req ConsultOracleRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Consult oracle"); err != nil {
		return
	}
	date, ok := ParseDateOrToday(w, req.Date)
	if !ok {
		return
	}

	consultation, err := h.service.Consult(r.Context(), userID, date, req.Prompt)
	if err != nil {
		respondServiceError(w, r, "consult oracle", err)
		return
	}

	respondJSON(w, http.StatusOK, consultation)
}
