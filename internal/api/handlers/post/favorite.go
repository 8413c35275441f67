package post

import (
	"net/http"

	"Quill/internal/api/handlers"
	"Quill/internal/api/middleware"
	"Quill/internal/core/favorites"

	"github.com/go-chi/chi/v5"
)

// FavoriteHandler handles favoriting and unfavoriting posts
type FavoriteHandler struct {
	service favorites.Service
}

// NewFavoriteHandler creates a new favorite handler
func NewFavoriteHandler(service favorites.Service) *FavoriteHandler {
	return &FavoriteHandler{service: service}
}

// HandleFavorite handles POST /blogs/{slug}/favorite. Repeat calls succeed without a second record.
func (h *FavoriteHandler) HandleFavorite(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if !handlers.RequireUserID(w, userID) {
		return
	}

	resp, err := h.service.FavoritePost(r.Context(), userID, chi.URLParam(r, "slug"))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, resp)
}

// HandleUnfavorite handles DELETE /blogs/{slug}/favorite
func (h *FavoriteHandler) HandleUnfavorite(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if !handlers.RequireUserID(w, userID) {
		return
	}

	if err := h.service.UnfavoritePost(r.Context(), userID, chi.URLParam(r, "slug")); err != nil {
		handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
