package post

import (
	"log/slog"
	"net/http"

	"Quill/internal/api/handlers"
	"Quill/internal/api/middleware"
	"Quill/internal/core/posts"
	"Quill/internal/core/thumbnails"
)

// CreateHandler handles post creation requests
type CreateHandler struct {
	service    posts.Service
	thumbnails thumbnails.Store
}

// NewCreateHandler creates a new create handler
func NewCreateHandler(service posts.Service, thumbnailStore thumbnails.Store) *CreateHandler {
	return &CreateHandler{
		service:    service,
		thumbnails: thumbnailStore,
	}
}

// HandleCreate handles POST /blogs
// Accepts JSON or multipart/form-data (with an optional "thumbnail" file).
// The owner is always the authenticated caller.
func (h *CreateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if !handlers.RequireUserID(w, userID) {
		return
	}

	form, ok := readPostForm(w, r)
	if !ok {
		return
	}

	req := posts.CreatePostRequest{
		Title:    deref(form.fields.Title),
		Content:  deref(form.fields.Content),
		Category: deref(form.fields.Category),
		IsPublic: form.fields.IsPublic,
	}

	if form.thumbnail != nil {
		url, err := h.thumbnails.Save(r.Context(), form.thumbnail)
		if err != nil {
			handleServiceError(w, r, err)
			return
		}
		req.Thumbnail = &url
	}

	post, err := h.service.CreatePost(r.Context(), userID, req)
	if err != nil {
		if req.Thumbnail != nil {
			discardThumbnail(r, h.thumbnails, *req.Thumbnail)
		}
		handleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, post.View())
}

// discardThumbnail removes an upload whose post was never written
func discardThumbnail(r *http.Request, store thumbnails.Store, url string) {
	if err := store.Delete(r.Context(), url); err != nil {
		slog.Warn("failed to remove orphaned thumbnail",
			slog.String("url", url),
			slog.String("error", err.Error()),
		)
	}
}
