package user

import (
	"net/http"
	"strconv"

	"Quill/internal/api/handlers"
	"Quill/internal/core/users"

	"github.com/go-chi/chi/v5"
)

// GetHandler serves public user profiles
type GetHandler struct {
	userService users.UserService
}

// NewGetHandler creates a new get handler
func NewGetHandler(userService users.UserService) *GetHandler {
	return &GetHandler{userService: userService}
}

// HandleGet handles GET /users/{id}. Only id and username are exposed.
func (h *GetHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		handlers.WriteError(w, http.StatusNotFound, "NotFound", "User not found")
		return
	}

	user, err := h.userService.GetUser(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, user.Public())
}
