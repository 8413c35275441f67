package user

import (
	"net/http"

	"Quill/internal/api/handlers"
	"Quill/internal/api/middleware"
	"Quill/internal/core/favorites"
)

// FavoritesHandler lists the caller's favorites
type FavoritesHandler struct {
	service favorites.Service
}

// NewFavoritesHandler creates a new favorites handler
func NewFavoritesHandler(service favorites.Service) *FavoritesHandler {
	return &FavoritesHandler{service: service}
}

// HandleMyFavorites handles GET /users/me/favorites
func (h *FavoritesHandler) HandleMyFavorites(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if !handlers.RequireUserID(w, userID) {
		return
	}

	list, err := h.service.ListFavorites(r.Context(), userID)
	if err != nil {
		handlers.WriteInternalError(w, r, err)
		return
	}
	if list == nil {
		list = []*favorites.FavoriteView{}
	}

	handlers.WriteJSON(w, http.StatusOK, list)
}
