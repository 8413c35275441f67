package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"Quill/internal/api/middleware"
	"Quill/internal/api/routes"
	"Quill/internal/auth"
	"Quill/internal/core/favorites"
	"Quill/internal/core/follows"
	"Quill/internal/core/posts"
	"Quill/internal/core/thumbnails"
	"Quill/internal/core/users"
	"Quill/internal/db/migrations"
	postgresRepo "Quill/internal/db/postgres"
)

const addrFlag = "addr"

var serveFlags = map[string]cobraflags.Flag{
	addrFlag: &cobraflags.StringFlag{
		Name:  addrFlag,
		Value: "",
		Usage: "Listen address, overrides the addr setting (e.g. :8080)",
	},
}

func newServeCommand() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Apply pending migrations and start the HTTP API",
		RunE:  serveCommand,
	}

	cobraflags.RegisterMap(serveCmd, rootFlags)
	cobraflags.RegisterMap(serveCmd, serveFlags)
	return serveCmd
}

func serveCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if addr := serveFlags[addrFlag].GetString(); addr != "" {
		cfg.Addr = addr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	slog.Info("connected to database")

	if err := migrations.Up(ctx, db); err != nil {
		return err
	}
	slog.Info("migrations completed successfully")

	issuer, err := auth.NewIssuer(auth.Config{
		PrivateJWK: cfg.JWTPrivateJWK,
		Secret:     []byte(cfg.JWTSecret),
		AccessTTL:  cfg.AccessTTL,
		RefreshTTL: cfg.RefreshTTL,
	})
	if err != nil {
		return fmt.Errorf("failed to configure token issuer: %w", err)
	}
	slog.Info("token issuer ready", slog.String("alg", issuer.Algorithm()))

	thumbnailStore, err := thumbnails.NewDiskStore(cfg.MediaDir, cfg.MediaBaseURL)
	if err != nil {
		return fmt.Errorf("failed to prepare media directory: %w", err)
	}

	// Initialize repositories and services
	userRepo := postgresRepo.NewUserRepository(db)
	postRepo := postgresRepo.NewPostRepository(db)
	favoriteRepo := postgresRepo.NewFavoriteRepository(db)
	followRepo := postgresRepo.NewFollowRepository(db)

	userService := users.NewUserService(userRepo, bcrypt.DefaultCost)
	postService := posts.NewPostService(postRepo)
	favoriteService := favorites.NewFavoriteService(favoriteRepo, postRepo)
	followService := follows.NewFollowService(followRepo)

	router := routes.NewRouter(routes.Dependencies{
		Users:          userService,
		Posts:          postService,
		Favorites:      favoriteService,
		Follows:        followService,
		Thumbnails:     thumbnailStore,
		Tokens:         issuer,
		Auth:           middleware.NewAuthMiddleware(issuer, userService),
		MediaDir:       cfg.MediaDir,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Quill API starting", slog.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
