package routes

import (
	"Quill/internal/api/handlers/user"
	"Quill/internal/api/middleware"
	"Quill/internal/core/favorites"
	"Quill/internal/core/users"

	"github.com/go-chi/chi/v5"
)

// RegisterUserRoutes registers account, token and profile endpoints
func RegisterUserRoutes(r chi.Router, service users.UserService, favoriteService favorites.Service, issuer user.TokenIssuer, authMiddleware *middleware.AuthMiddleware) {
	signupHandler := user.NewSignupHandler(service)
	tokenHandler := user.NewTokenHandler(service, issuer)
	getHandler := user.NewGetHandler(service)
	deleteHandler := user.NewDeleteHandler(service)
	favoritesHandler := user.NewFavoritesHandler(favoriteService)

	r.Route("/users", func(r chi.Router) {
		r.Post("/signup", signupHandler.HandleSignup)
		r.Post("/login", tokenHandler.HandleLogin)
		r.Post("/token/refresh", tokenHandler.HandleRefresh)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)
			r.Delete("/me", deleteHandler.HandleDeleteAccount)
			r.Get("/me/favorites", favoritesHandler.HandleMyFavorites)
		})

		r.Get("/{id}", getHandler.HandleGet)
	})
}
