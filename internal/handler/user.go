package handler

import (
	"net/http"

	"github.com/osse101/HabitQuest_Go/internal/user"
)

// UserHandler serves user registration and profile settings
type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

type RegisterUserRequest struct {
	Username  string  `json:"username" validate:"required,min=2,max=32,excludesall= "`
	Archetype *string `json:"archetype,omitempty" validate:"omitempty,max=32"`
}

type RegisterUserResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Level    int    `json:"level"`
}

// HandleRegisterUser creates (or returns) the user keyed on username
// @Summary Register a user
// @Tags user
// @Accept json
// @Produce json
// @Param request body RegisterUserRequest true "Username and optional archetype"
// @Success 201 {object} RegisterUserResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/user/register [post]
func (h *UserHandler) HandleRegisterUser(w http.ResponseWriter, r *http.Request) {
	var req RegisterUserRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Register user"); err != nil {
		return
	}

	u, err := h.service.Register(r.Context(), req.Username, req.Archetype)
	if err != nil {
		respondServiceError(w, r, "register user", err)
		return
	}

	respondJSON(w, http.StatusCreated, RegisterUserResponse{
		UserID:   u.UserID,
		Username: u.Username,
		Level:    u.Level,
	})
}

type SetArchetypeRequest struct {
	Archetype *string `json:"archetype" validate:"omitempty,max=32"`
}

// HandleSetArchetype updates the caller's declared archetype
// @Summary Set the user archetype
// @Tags user
// @Accept json
// @Produce json
// @Param request body SetArchetypeRequest true "Archetype (null clears it)"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/user/archetype [post]
func (h *UserHandler) HandleSetArchetype(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r, w)
	if !ok {
		return
	}

	var req SetArchetypeRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Set archetype"); err != nil {
		return
	}

	if err := h.service.SetArchetype(r.Context(), userID, req.Archetype); err != nil {
		respondServiceError(w, r, "set archetype", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
