package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	maxUsernameLength = 150
	// RFC 5321 path limit, also the users.email column width
	maxEmailLength    = 254
	minPasswordLength = 8
	// bcrypt ignores input past 72 bytes; reject rather than silently truncate
	maxPasswordBytes = 72
)

// Usernames may contain letters, digits and @ . + - _
var usernameRegex = regexp.MustCompile(`^[\w.@+-]+$`)

type userService struct {
	userRepo  UserRepository
	dummyHash []byte
	hashCost  int
}

// NewUserService creates a new user service.
// hashCost is the bcrypt cost; zero selects bcrypt.DefaultCost.
func NewUserService(userRepo UserRepository, hashCost int) UserService {
	if hashCost == 0 {
		hashCost = bcrypt.DefaultCost
	}

	// Compared against when the username is unknown so that login timing
	// does not reveal which usernames exist.
	dummyHash, err := bcrypt.GenerateFromPassword([]byte("quill-timing-equaliser"), hashCost)
	if err != nil {
		slog.Warn("failed to prepare dummy password hash", slog.String("error", err.Error()))
	}

	return &userService{
		userRepo:  userRepo,
		hashCost:  hashCost,
		dummyHash: dummyHash,
	}
}

// Register creates a new account with a bcrypt-hashed password
func (s *userService) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	req.Username = strings.TrimSpace(req.Username)
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	req.Email = email

	if err := s.validateRegisterRequest(req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}

	// The unique constraint on username is the source of truth; no pre-check.
	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return nil, NewValidationError("username", ErrUsernameTaken.Error())
		}
		return nil, err
	}

	slog.Info("user registered",
		slog.Int64("user_id", created.ID),
		slog.String("username", created.Username),
	)

	return created, nil
}

// Authenticate verifies a username/password pair
func (s *userService) Authenticate(ctx context.Context, username, password string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			if s.dummyHash != nil {
				_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			}
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by id
func (s *userService) GetUser(ctx context.Context, id int64) (*User, error) {
	if id <= 0 {
		return nil, ErrUserNotFound
	}
	return s.userRepo.GetByID(ctx, id)
}

// DeleteAccount removes the user and everything that cascades from it
func (s *userService) DeleteAccount(ctx context.Context, id int64) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, user.ID); err != nil {
		return err
	}

	slog.Info("user account deleted",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return nil
}

// normalizeEmail reduces an optional email to its bare addr-spec, so
// "Alice <alice@example.com>" is stored as "alice@example.com".
func normalizeEmail(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	addr, err := mail.ParseAddress(raw)
	if err != nil {
		return "", NewValidationError("email", "enter a valid email address")
	}
	if len(addr.Address) > maxEmailLength {
		return "", NewValidationError("email", fmt.Sprintf("email must be at most %d characters", maxEmailLength))
	}
	return addr.Address, nil
}

func (s *userService) validateRegisterRequest(req RegisterRequest) error {
	if req.Username == "" {
		return NewValidationError("username", "username is required")
	}
	if len(req.Username) > maxUsernameLength {
		return NewValidationError("username", fmt.Sprintf("username must be at most %d characters", maxUsernameLength))
	}
	if !usernameRegex.MatchString(req.Username) {
		return NewValidationError("username", "username may contain only letters, digits and @/./+/-/_")
	}

	if len(req.Password) < minPasswordLength {
		return NewValidationError("password", fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if len(req.Password) > maxPasswordBytes {
		return NewValidationError("password", fmt.Sprintf("password must be at most %d bytes", maxPasswordBytes))
	}

	return nil
}
