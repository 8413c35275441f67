package posts

import (
	"time"

	"Quill/internal/core/users"
)

// Category is the topical bucket a post is filed under
type Category string

const (
	CategoryWorld       Category = "world"
	CategoryEnvironment Category = "environment"
	CategoryTechnology  Category = "technology"
	CategoryDesign      Category = "design"
	CategoryCulture     Category = "culture"
	CategoryBusiness    Category = "business"
	CategoryPolitics    Category = "politics"
)

// DefaultCategory is used when a post is created without a category
const DefaultCategory = CategoryWorld

// Categories lists every accepted category, in display order
var Categories = []Category{
	CategoryWorld,
	CategoryEnvironment,
	CategoryTechnology,
	CategoryDesign,
	CategoryCulture,
	CategoryBusiness,
	CategoryPolitics,
}

// ParseCategory reports whether s names a known category
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Post represents a blog post row
type Post struct {
	Created       time.Time `db:"created"`
	Thumbnail     *string   `db:"thumbnail"`
	Title         string    `db:"title"`
	Content       string    `db:"content"`
	Slug          string    `db:"slug"`
	Category      Category  `db:"category"`
	OwnerUsername string    `db:"username"`
	ID            int64     `db:"id"`
	UserID        int64     `db:"user_id"`
	IsPublic      bool      `db:"is_public"`
}

// PostView is the single canonical JSON representation of a post
type PostView struct {
	Created   time.Time        `json:"created"`
	Thumbnail *string          `json:"thumbnail"`
	Owner     users.PublicUser `json:"owner"`
	Title     string           `json:"title"`
	Content   string           `json:"content"`
	Slug      string           `json:"slug"`
	Category  Category         `json:"category"`
	ID        int64            `json:"id"`
	IsPublic  bool             `json:"is_public"`
}

// View projects a post into its API representation
func (p *Post) View() *PostView {
	return &PostView{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Slug:      p.Slug,
		Category:  p.Category,
		Created:   p.Created,
		Thumbnail: p.Thumbnail,
		IsPublic:  p.IsPublic,
		Owner: users.PublicUser{
			ID:       p.UserID,
			Username: p.OwnerUsername,
		},
	}
}

// Views projects a slice of posts, never returning nil
func Views(list []*Post) []*PostView {
	views := make([]*PostView, 0, len(list))
	for _, p := range list {
		views = append(views, p.View())
	}
	return views
}

// CreatePostRequest represents input for creating a new post.
// The owner is never read from the request body; it is the authenticated caller.
type CreatePostRequest struct {
	IsPublic  *bool   `json:"is_public,omitempty"`
	Thumbnail *string `json:"-"`
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	Category  string  `json:"category"`
}

// UpdatePostRequest carries the mutable fields of a post. Nil fields are left untouched
// on a partial update. The slug is not updatable.
type UpdatePostRequest struct {
	Title     *string `json:"title,omitempty"`
	Content   *string `json:"content,omitempty"`
	Category  *string `json:"category,omitempty"`
	IsPublic  *bool   `json:"is_public,omitempty"`
	Thumbnail *string `json:"-"`
}

// ListOptions filters post listings
type ListOptions struct {
	Category Category // empty means all categories
	Limit    int      // zero means unlimited
}
