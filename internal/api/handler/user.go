// internal/api/handler/user.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"paperbook/internal/service"
	"paperbook/internal/util"
)

// UserHandler handles HTTP requests for user registration and lookup.
type UserHandler struct {
	service service.UserService
	logger  *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		service: svc,
		logger:  logger,
	}
}

// CreateUserRequest represents the request body for registration.
type CreateUserRequest struct {
	Username string `json:"username"`
}

// CreateUser handles the registration request. The user's wallet and
// default preferences are created alongside the account.
// POST /users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, util.ErrInvalidInput)
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		respondWithError(w, util.ErrInvalidInput)
		return
	}

	user, wallet, err := h.service.CreateUser(r.Context(), req.Username)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"user":   user,
		"wallet": wallet,
	})
}

// GetUser handles the user lookup request.
// GET /users/{userID}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		respondWithError(w, err)
		return
	}

	user, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}
