package follow

import (
	"net/http"
	"strconv"

	"Quill/internal/api/handlers"
	"Quill/internal/api/middleware"
	"Quill/internal/core/follows"

	"github.com/go-chi/chi/v5"
)

// Handler serves the follow graph endpoints
type Handler struct {
	service follows.Service
}

// NewHandler creates a new follow handler
func NewHandler(service follows.Service) *Handler {
	return &Handler{service: service}
}

// HandleCreate handles POST /follow. The follower is always the caller.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if !handlers.RequireUserID(w, userID) {
		return
	}

	var req follows.CreateFollowRequest
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}

	follow, err := h.service.Follow(r.Context(), userID, req.FollowedID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, follow)
}

// HandleList handles GET /follow?follower=&followed=
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	var filter follows.FollowFilter
	var ok bool
	if filter.FollowerID, ok = queryID(w, r, "follower"); !ok {
		return
	}
	if filter.FollowedID, ok = queryID(w, r, "followed"); !ok {
		return
	}

	list, err := h.service.ListFollows(r.Context(), filter)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if list == nil {
		list = []*follows.Follow{}
	}

	handlers.WriteJSON(w, http.StatusOK, list)
}

// HandleGet handles GET /follow/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	follow, err := h.service.GetFollow(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, follow)
}

// HandleDelete handles DELETE /follow/{id}. Only the follower may remove the edge.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if !handlers.RequireUserID(w, userID) {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteFollow(r.Context(), userID, id); err != nil {
		handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleUnfollow handles DELETE /follow?followed={id}, removing the caller's edge to that user
func (h *Handler) HandleUnfollow(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if !handlers.RequireUserID(w, userID) {
		return
	}

	followedID, ok := queryID(w, r, "followed")
	if !ok {
		return
	}
	if followedID == 0 {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "followed is required")
		return
	}

	if err := h.service.Unfollow(r.Context(), userID, followedID); err != nil {
		handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// queryID parses an optional positive integer query parameter; absent means zero
func queryID(w http.ResponseWriter, r *http.Request, key string) (int64, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", key+" must be a positive integer")
		return 0, false
	}
	return id, true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		handlers.WriteError(w, http.StatusNotFound, "FollowNotFound", "Follow not found")
		return 0, false
	}
	return id, true
}
