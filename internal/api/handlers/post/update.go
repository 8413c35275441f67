package post

import (
	"net/http"

	"Quill/internal/api/handlers"
	"Quill/internal/api/middleware"
	"Quill/internal/core/posts"
	"Quill/internal/core/thumbnails"

	"github.com/go-chi/chi/v5"
)

// UpdateHandler handles post updates
type UpdateHandler struct {
	service    posts.Service
	thumbnails thumbnails.Store
}

// NewUpdateHandler creates a new update handler
func NewUpdateHandler(service posts.Service, thumbnailStore thumbnails.Store) *UpdateHandler {
	return &UpdateHandler{
		service:    service,
		thumbnails: thumbnailStore,
	}
}

// HandleUpdate handles PUT and PATCH /blogs/{slug}.
// PUT replaces title and content (both required); PATCH applies only the fields sent.
func (h *UpdateHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if !handlers.RequireUserID(w, userID) {
		return
	}

	form, ok := readPostForm(w, r)
	if !ok {
		return
	}

	slug := chi.URLParam(r, "slug")
	req := form.fields

	// previous is the upload a new thumbnail replaces, removed once the update lands
	var previous *string
	if form.thumbnail != nil {
		current, err := h.service.GetPost(r.Context(), slug)
		if err != nil {
			handleServiceError(w, r, err)
			return
		}
		previous = current.Thumbnail

		url, err := h.thumbnails.Save(r.Context(), form.thumbnail)
		if err != nil {
			handleServiceError(w, r, err)
			return
		}
		req.Thumbnail = &url
	}

	partial := r.Method == http.MethodPatch
	post, err := h.service.UpdatePost(r.Context(), userID, slug, req, partial)
	if err != nil {
		if req.Thumbnail != nil {
			discardThumbnail(r, h.thumbnails, *req.Thumbnail)
		}
		handleServiceError(w, r, err)
		return
	}

	if previous != nil && *previous != "" && *previous != *req.Thumbnail {
		discardThumbnail(r, h.thumbnails, *previous)
	}

	handlers.WriteJSON(w, http.StatusOK, post.View())
}
