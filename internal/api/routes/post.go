package routes

import (
	"Quill/internal/api/handlers/post"
	"Quill/internal/api/middleware"
	"Quill/internal/core/favorites"
	"Quill/internal/core/posts"
	"Quill/internal/core/thumbnails"

	"github.com/go-chi/chi/v5"
)

// RegisterPostRoutes registers the /blogs endpoints on the router.
// Reads are public; writes require an access token and act as the caller.
func RegisterPostRoutes(r chi.Router, service posts.Service, favoriteService favorites.Service, thumbnailStore thumbnails.Store, authMiddleware *middleware.AuthMiddleware) {
	createHandler := post.NewCreateHandler(service, thumbnailStore)
	getHandler := post.NewGetHandler(service)
	listHandler := post.NewListHandler(service)
	updateHandler := post.NewUpdateHandler(service, thumbnailStore)
	deleteHandler := post.NewDeleteHandler(service)
	favoriteHandler := post.NewFavoriteHandler(favoriteService)

	r.Route("/blogs", func(r chi.Router) {
		r.Get("/", listHandler.HandleList)
		r.With(authMiddleware.RequireAuth).Post("/", createHandler.HandleCreate)

		// Static listings are registered before /{slug} so they win the match
		r.Get("/recent", listHandler.HandleRecent)
		r.Get("/by_category", listHandler.HandleByCategory)
		r.Get("/category/{category}", listHandler.HandleCategory)

		r.Get("/{slug}", getHandler.HandleGet)
		r.With(authMiddleware.RequireAuth).Put("/{slug}", updateHandler.HandleUpdate)
		r.With(authMiddleware.RequireAuth).Patch("/{slug}", updateHandler.HandleUpdate)
		r.With(authMiddleware.RequireAuth).Delete("/{slug}", deleteHandler.HandleDelete)

		r.With(authMiddleware.RequireAuth).Post("/{slug}/favorite", favoriteHandler.HandleFavorite)
		r.With(authMiddleware.RequireAuth).Delete("/{slug}/favorite", favoriteHandler.HandleUnfavorite)
	})
}
