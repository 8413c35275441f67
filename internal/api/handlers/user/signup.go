package user

import (
	"net/http"

	"Quill/internal/api/handlers"
	"Quill/internal/core/users"
)

// SignupHandler handles account registration
type SignupHandler struct {
	userService users.UserService
}

// NewSignupHandler creates a new signup handler
func NewSignupHandler(userService users.UserService) *SignupHandler {
	return &SignupHandler{userService: userService}
}

// HandleSignup handles POST /users/signup
func (h *SignupHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req users.RegisterRequest
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}

	user, err := h.userService.Register(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, users.RegisterResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}
