package favorites

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"Quill/internal/core/posts"
)

// StatusFavorited is the status string returned for a favorite request
const StatusFavorited = "post favorited"

type favoriteService struct {
	repo  Repository
	posts PostLookup
}

// NewFavoriteService creates a new favorite service
func NewFavoriteService(repo Repository, postLookup PostLookup) Service {
	return &favoriteService{
		repo:  repo,
		posts: postLookup,
	}
}

func (s *favoriteService) FavoritePost(ctx context.Context, requesterID int64, slug string) (*FavoriteResponse, error) {
	post, err := s.resolvePost(ctx, slug)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, requesterID, post.ID)
	if err != nil {
		return nil, err
	}

	if created {
		slog.Info("post favorited",
			slog.Int64("user_id", requesterID),
			slog.Int64("post_id", post.ID),
		)
	}

	return &FavoriteResponse{Status: StatusFavorited, Created: created}, nil
}

func (s *favoriteService) UnfavoritePost(ctx context.Context, requesterID int64, slug string) error {
	post, err := s.resolvePost(ctx, slug)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, requesterID, post.ID)
	if err != nil {
		return err
	}
	if deleted {
		slog.Info("post unfavorited",
			slog.Int64("user_id", requesterID),
			slog.Int64("post_id", post.ID),
		)
	}
	return nil
}

func (s *favoriteService) ListFavorites(ctx context.Context, userID int64) ([]*FavoriteView, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *favoriteService) resolvePost(ctx context.Context, slug string) (*posts.Post, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrPostNotFound
	}

	post, err := s.posts.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, posts.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to resolve post %q: %w", slug, err)
	}
	return post, nil
}
