package users

import (
	"time"
)

// User is a registered account. The password is only ever held as a bcrypt hash.
type User struct {
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	ID           int64     `json:"id" db:"id"`
}

// PublicUser is the public-safe projection of a user: id and username only.
// It is the representation nested in posts and returned from login.
type PublicUser struct {
	Username string `json:"username"`
	ID       int64  `json:"id"`
}

// Public returns the public-safe projection of u.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username}
}

// RegisterRequest is the input for creating a new account
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse is returned from signup. It never carries the password.
type RegisterResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	ID       int64  `json:"id"`
}
