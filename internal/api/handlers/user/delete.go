package user

import (
	"log/slog"
	"net/http"

	"Quill/internal/api/handlers"
	"Quill/internal/api/middleware"
	"Quill/internal/core/users"
)

// DeleteHandler handles account deletion requests
type DeleteHandler struct {
	userService users.UserService
}

// NewDeleteHandler creates a new delete handler
func NewDeleteHandler(userService users.UserService) *DeleteHandler {
	return &DeleteHandler{userService: userService}
}

// HandleDeleteAccount handles DELETE /users/me.
// The account is always the authenticated caller's; posts, favorites and follows go with it.
func (h *DeleteHandler) HandleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if !handlers.RequireUserID(w, userID) {
		return
	}

	if err := h.userService.DeleteAccount(r.Context(), userID); err != nil {
		handleServiceError(w, r, err)
		return
	}

	slog.Info("account deleted",
		slog.Int64("user_id", userID),
		slog.String("username", middleware.GetUsername(r)),
	)

	w.WriteHeader(http.StatusNoContent)
}
