package routes

import (
	"net/http"

	"Quill/internal/api/handlers"
	"Quill/internal/api/handlers/user"
	"Quill/internal/api/handlers/wellknown"
	"Quill/internal/api/middleware"
	"Quill/internal/core/favorites"
	"Quill/internal/core/follows"
	"Quill/internal/core/posts"
	"Quill/internal/core/thumbnails"
	"Quill/internal/core/users"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Dependencies is everything the HTTP surface needs
type Dependencies struct {
	Users      users.UserService
	Posts      posts.Service
	Favorites  favorites.Service
	Follows    follows.Service
	Thumbnails thumbnails.Store
	Tokens     interface {
		user.TokenIssuer
		wellknown.KeySource
	}
	Auth *middleware.AuthMiddleware

	// MediaDir is served read-only under /media/ when set
	MediaDir       string
	AllowedOrigins []string
}

// NewRouter builds the full API router
func NewRouter(d Dependencies) chi.Router {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, http.StatusNotFound, "NotFound", "Resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, http.StatusMethodNotAllowed, "MethodNotAllowed", "Method not allowed on this resource")
	})

	RegisterUserRoutes(r, d.Users, d.Favorites, d.Tokens, d.Auth)
	RegisterPostRoutes(r, d.Posts, d.Favorites, d.Thumbnails, d.Auth)
	RegisterFollowRoutes(r, d.Follows, d.Auth)
	RegisterWellKnownRoutes(r, d.Tokens)

	if d.MediaDir != "" {
		r.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(d.MediaDir))))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}
