package post

import (
	"net/http"
	"strconv"

	"Quill/internal/api/handlers"
	"Quill/internal/core/posts"

	"github.com/go-chi/chi/v5"
)

// ListHandler serves the post listings
type ListHandler struct {
	service posts.Service
}

// NewListHandler creates a new list handler
func NewListHandler(service posts.Service) *ListHandler {
	return &ListHandler{service: service}
}

// HandleList handles GET /blogs
func (h *ListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListPosts(r.Context())
	h.respond(w, r, list, err)
}

// HandleRecent handles GET /blogs/recent?category=&limit=
func (h *ListHandler) HandleRecent(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "limit must be a positive integer")
			return
		}
		limit = n
	}

	list, err := h.service.ListRecent(r.Context(), r.URL.Query().Get("category"), limit)
	h.respond(w, r, list, err)
}

// HandleByCategory handles GET /blogs/by_category?category=
func (h *ListHandler) HandleByCategory(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListByCategory(r.Context(), r.URL.Query().Get("category"))
	h.respond(w, r, list, err)
}

// HandleCategory handles GET /blogs/category/{category}
func (h *ListHandler) HandleCategory(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListByCategory(r.Context(), chi.URLParam(r, "category"))
	h.respond(w, r, list, err)
}

func (h *ListHandler) respond(w http.ResponseWriter, r *http.Request, list []*posts.Post, err error) {
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, posts.Views(list))
}
