package routes

import (
	"Quill/internal/api/handlers/follow"
	"Quill/internal/api/middleware"
	"Quill/internal/core/follows"

	"github.com/go-chi/chi/v5"
)

// RegisterFollowRoutes registers the follow graph endpoints
func RegisterFollowRoutes(r chi.Router, service follows.Service, authMiddleware *middleware.AuthMiddleware) {
	h := follow.NewHandler(service)

	r.Route("/follow", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.With(authMiddleware.RequireAuth).Post("/", h.HandleCreate)
		r.With(authMiddleware.RequireAuth).Delete("/", h.HandleUnfollow)
		r.Get("/{id}", h.HandleGet)
		r.With(authMiddleware.RequireAuth).Delete("/{id}", h.HandleDelete)
	})
}
