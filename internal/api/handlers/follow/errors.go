package follow

import (
	"errors"
	"net/http"

	"Quill/internal/api/handlers"
	"Quill/internal/core/follows"
)

// handleServiceError maps service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case follows.IsValidationError(err):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())

	case errors.Is(err, follows.ErrFollowNotFound):
		handlers.WriteError(w, http.StatusNotFound, "FollowNotFound", "Follow not found")

	case errors.Is(err, follows.ErrForbidden):
		handlers.WriteError(w, http.StatusForbidden, "NotAuthorized", err.Error())

	case errors.Is(err, follows.ErrFollowerNotFound):
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authenticated user no longer exists")

	default:
		// Don't leak internal error details to clients
		handlers.WriteInternalError(w, r, err)
	}
}
