package users

import "context"

// UserRepository defines the interface for user data persistence
type UserRepository interface {
	// Create inserts a user. Returns ErrUsernameTaken when the username
	// unique constraint rejects the row.
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)

	// Delete removes the user row. Posts, favorites and follow edges that
	// reference the user are removed by ON DELETE CASCADE.
	Delete(ctx context.Context, id int64) error
}

// UserService defines the interface for user business logic
type UserService interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)

	// Authenticate checks a username/password pair and returns the matching
	// user, or ErrInvalidCredentials.
	Authenticate(ctx context.Context, username, password string) (*User, error)

	GetUser(ctx context.Context, id int64) (*User, error)
	DeleteAccount(ctx context.Context, id int64) error
}
