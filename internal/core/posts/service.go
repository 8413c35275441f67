package posts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rivo/uniseg"
)

const (
	// MaxTitleGraphemes is the longest title accepted, counted in user-perceived characters
	MaxTitleGraphemes = 200

	// MaxRecentPosts caps the recent listing
	MaxRecentPosts = 6

	// maxSlugAttempts bounds how many insert races a single create may lose
	maxSlugAttempts = 10
)

type postService struct {
	repo Repository
}

// NewPostService creates a new post service
func NewPostService(repo Repository) Service {
	return &postService{
		repo: repo,
	}
}

// CreatePost creates a post owned by requesterID.
// Flow: Validate -> Slugify title -> pick first free candidate -> insert,
// retrying from the next candidate when the unique constraint reports a lost race.
func (s *postService) CreatePost(ctx context.Context, requesterID int64, req CreatePostRequest) (*Post, error) {
	if requesterID <= 0 {
		return nil, ErrOwnerNotFound
	}

	title, err := validateTitle(req.Title)
	if err != nil {
		return nil, err
	}
	if err := validateContent(req.Content); err != nil {
		return nil, err
	}
	category, err := resolveCategory(req.Category)
	if err != nil {
		return nil, err
	}

	post := &Post{
		Title:     title,
		Content:   req.Content,
		Category:  category,
		Thumbnail: req.Thumbnail,
		IsPublic:  true,
		UserID:    requesterID,
	}
	if req.IsPublic != nil {
		post.IsPublic = *req.IsPublic
	}

	base := Slugify(title)
	if base == "" {
		base = fallbackSlug
	}

	counter := 0
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		slug, next, err := nextFreeSlug(ctx, s.repo, base, counter)
		if err != nil {
			return nil, err
		}
		post.Slug = slug

		err = s.repo.Create(ctx, post)
		if err == nil {
			slog.Info("post created",
				slog.Int64("post_id", post.ID),
				slog.String("slug", post.Slug),
				slog.Int64("user_id", requesterID),
			)
			return post, nil
		}
		if !errors.Is(err, ErrSlugTaken) {
			return nil, err
		}

		slog.Debug("slug taken by concurrent insert, retrying",
			slog.String("slug", slug),
			slog.Int("attempt", attempt+1),
		)
		counter = next
	}

	return nil, NewValidationError("slug", "could not allocate a unique slug, please retry")
}

// GetPost retrieves a post by slug
func (s *postService) GetPost(ctx context.Context, slug string) (*Post, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrNotFound
	}
	return s.repo.GetBySlug(ctx, slug)
}

// UpdatePost updates a post owned by requesterID
func (s *postService) UpdatePost(ctx context.Context, requesterID int64, slug string, req UpdatePostRequest, partial bool) (*Post, error) {
	post, err := s.GetPost(ctx, slug)
	if err != nil {
		return nil, err
	}
	if post.UserID != requesterID {
		return nil, ErrForbidden
	}

	if !partial {
		if req.Title == nil {
			return nil, NewValidationError("title", "title is required")
		}
		if req.Content == nil {
			return nil, NewValidationError("content", "content is required")
		}
	}

	if req.Title != nil {
		title, err := validateTitle(*req.Title)
		if err != nil {
			return nil, err
		}
		post.Title = title
	}
	if req.Content != nil {
		if err := validateContent(*req.Content); err != nil {
			return nil, err
		}
		post.Content = *req.Content
	}
	if req.Category != nil {
		category, err := resolveCategory(*req.Category)
		if err != nil {
			return nil, err
		}
		post.Category = category
	}
	if req.IsPublic != nil {
		post.IsPublic = *req.IsPublic
	}
	if req.Thumbnail != nil {
		post.Thumbnail = req.Thumbnail
	}

	if err := s.repo.Update(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// DeletePost deletes a post owned by requesterID
func (s *postService) DeletePost(ctx context.Context, requesterID int64, slug string) error {
	post, err := s.GetPost(ctx, slug)
	if err != nil {
		return err
	}
	if post.UserID != requesterID {
		return ErrForbidden
	}

	if err := s.repo.Delete(ctx, post.ID); err != nil {
		return err
	}

	slog.Info("post deleted",
		slog.Int64("post_id", post.ID),
		slog.String("slug", post.Slug),
		slog.Int64("user_id", requesterID),
	)
	return nil
}

// ListPosts returns every post, newest first
func (s *postService) ListPosts(ctx context.Context) ([]*Post, error) {
	return s.repo.List(ctx, ListOptions{})
}

// ListRecent returns the most recently created posts
func (s *postService) ListRecent(ctx context.Context, category string, limit int) ([]*Post, error) {
	if limit <= 0 || limit > MaxRecentPosts {
		limit = MaxRecentPosts
	}

	opts := ListOptions{Limit: limit}
	if category = strings.TrimSpace(category); category != "" {
		c, ok := ParseCategory(category)
		if !ok {
			return nil, unknownCategoryError(category)
		}
		opts.Category = c
	}

	return s.repo.List(ctx, opts)
}

// ListByCategory returns every post in one category
func (s *postService) ListByCategory(ctx context.Context, category string) ([]*Post, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, NewValidationError("category", "category not provided")
	}
	c, ok := ParseCategory(category)
	if !ok {
		return nil, unknownCategoryError(category)
	}

	return s.repo.List(ctx, ListOptions{Category: c})
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", NewValidationError("title", "title is required")
	}
	if uniseg.GraphemeClusterCount(title) > MaxTitleGraphemes {
		return "", NewValidationError("title", fmt.Sprintf("title must be at most %d characters", MaxTitleGraphemes))
	}
	return title, nil
}

func validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return NewValidationError("content", "content is required")
	}
	return nil
}

// resolveCategory maps an empty category to the default and rejects unknown values
func resolveCategory(category string) (Category, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return DefaultCategory, nil
	}
	c, ok := ParseCategory(category)
	if !ok {
		return "", unknownCategoryError(category)
	}
	return c, nil
}

func unknownCategoryError(category string) error {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = string(c)
	}
	return NewValidationError("category",
		fmt.Sprintf("%q is not a valid category (expected one of: %s)", category, strings.Join(names, ", ")))
}
