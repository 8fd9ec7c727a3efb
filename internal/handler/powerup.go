package handler

import (
	"net/http"
	"time"

	"github.com/osse101/HabitQuest_Go/internal/powerup"
)

// PowerUpHandler serves power-up activation endpoints
type PowerUpHandler struct {
	service powerup.Service
}

func NewPowerUpHandler(service powerup.Service) *PowerUpHandler {
	return &PowerUpHandler{service: service}
}

type ActivatePowerUpRequest struct {
	PowerUpID string `json:"powerup_id" validate:"required,max=64"`
}

type ActivatePowerUpResponse struct {
	Success    bool      `json:"success"`
	PowerUpKey string    `json:"powerup_key"`
	ExpiresAt  time.Time `json:"expires_at"`
	Idempotent bool      `json:"idempotent"`
}

// HandleActivatePowerUp activates a whitelisted power-up for the caller
// @Summary Activate a power-up
// @Tags powerup
// @Accept json
// @Produce json
// @Param request body ActivatePowerUpRequest true "Power-up key"
// @Success 200 {object} ActivatePowerUpResponse
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse "Cooldown active, available_at set"
// @Router /api/v1/powerup/activate [post]
func (h *PowerUpHandler) HandleActivatePowerUp(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r, w)
	if !ok {
		return
	}

	var req ActivatePowerUpRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Activate power-up"); err != nil {
		return
	}

	outcome, err := h.service.Activate(r.Context(), userID, req.PowerUpID)
	if err != nil {
		respondServiceError(w, r, "activate power-up", err)
		return
	}

	respondJSON(w, http.StatusOK, ActivatePowerUpResponse{
		Success:    true,
		PowerUpKey: outcome.Activation.PowerUpKey,
		ExpiresAt:  outcome.Activation.ExpiresAt,
		Idempotent: !outcome.Applied,
	})
}
