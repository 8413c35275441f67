package favorites

import "time"

// FavoriteView is a favorite joined with the post it points at
type FavoriteView struct {
	CreatedAt time.Time `json:"created_at"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	PostID    int64     `json:"post_id"`
}

// FavoriteResponse is returned by FavoritePost.
// Created is false when the edge already existed.
type FavoriteResponse struct {
	Status  string `json:"status"`
	Created bool   `json:"created"`
}
