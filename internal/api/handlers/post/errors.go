package post

import (
	"errors"
	"net/http"

	"Quill/internal/api/handlers"
	"Quill/internal/core/favorites"
	"Quill/internal/core/posts"
	"Quill/internal/core/thumbnails"
)

// handleServiceError maps service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case posts.IsValidationError(err), thumbnails.IsValidationError(err):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())

	case posts.IsNotFound(err):
		handlers.WriteError(w, http.StatusNotFound, "NotFound", "Post not found")

	case errors.Is(err, favorites.ErrPostNotFound):
		handlers.WriteError(w, http.StatusNotFound, "PostNotFound", "Post not found")

	case errors.Is(err, posts.ErrForbidden):
		handlers.WriteError(w, http.StatusForbidden, "NotAuthorized", "Only the post owner may modify this post")

	case errors.Is(err, posts.ErrOwnerNotFound), errors.Is(err, favorites.ErrUserNotFound):
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authenticated user no longer exists")

	default:
		// Don't leak internal error details to clients
		handlers.WriteInternalError(w, r, err)
	}
}
