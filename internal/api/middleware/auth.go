package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"Quill/internal/auth"
	"Quill/internal/core/users"
)

// Context keys for storing user information
type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	UsernameKey contextKey = "username"
)

// TokenVerifier checks a bearer token. *auth.Issuer satisfies it.
type TokenVerifier interface {
	Verify(token string, expected auth.TokenType) (*auth.Claims, error)
}

// UserLookup resolves the token subject to a live account. users.UserService satisfies it.
type UserLookup interface {
	GetUser(ctx context.Context, id int64) (*users.User, error)
}

// AuthMiddleware authenticates requests from "Authorization: Bearer <access token>"
type AuthMiddleware struct {
	verifier TokenVerifier
	users    UserLookup
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(verifier TokenVerifier, users UserLookup) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		users:    users,
	}
}

// RequireAuth rejects the request with 401 unless it carries a valid access token
// for an existing user. The user's id and username are injected into the context.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeAuthError(w, "Missing Authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			writeAuthError(w, "Invalid Authorization header format. Expected: Bearer <token>")
			return
		}

		user, err := m.authenticate(r.Context(), strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			if errors.Is(err, errLookupFailed) {
				slog.Error("auth user lookup failed",
					slog.String("path", r.URL.Path),
					slog.String("error", err.Error()),
				)
				writeJSON(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
				return
			}
			slog.Warn("[AUTH_FAILURE]",
				slog.String("type", failureType(err)),
				slog.String("ip", r.RemoteAddr),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("error", err.Error()),
			)
			writeAuthError(w, "Invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
	})
}

var (
	errUnknownUser  = errors.New("token subject does not exist")
	errLookupFailed = errors.New("user lookup failed")
)

func (m *AuthMiddleware) authenticate(ctx context.Context, token string) (*users.User, error) {
	claims, err := m.verifier.Verify(strings.TrimSpace(token), auth.TokenTypeAccess)
	if err != nil {
		return nil, err
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, err
	}

	user, err := m.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, errUnknownUser
		}
		return nil, errors.Join(errLookupFailed, err)
	}

	return user, nil
}

func failureType(err error) string {
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		return "expired"
	case errors.Is(err, auth.ErrWrongTokenType):
		return "wrong_token_type"
	case errors.Is(err, errUnknownUser):
		return "unknown_user"
	default:
		return "verification_failed"
	}
}

func withUser(ctx context.Context, user *users.User) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, user.ID)
	return context.WithValue(ctx, UsernameKey, user.Username)
}

// GetUserID extracts the authenticated user's id from the request context.
// Returns 0 if not authenticated.
func GetUserID(r *http.Request) int64 {
	id, _ := r.Context().Value(UserIDKey).(int64)
	return id
}

// GetUsername extracts the authenticated user's username from the request context
func GetUsername(r *http.Request) string {
	username, _ := r.Context().Value(UsernameKey).(string)
	return username
}

// SetTestUser sets the user in the context for testing purposes.
// This function should ONLY be used in tests to mock authenticated users.
func SetTestUser(ctx context.Context, userID int64, username string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	return context.WithValue(ctx, UsernameKey, username)
}

// writeAuthError writes a JSON error response for authentication failures
func writeAuthError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnauthorized, "AuthRequired", message)
}

func writeJSON(w http.ResponseWriter, status int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"error":   errorType,
		"message": message,
	}); err != nil {
		slog.Warn("failed to write auth error response", slog.String("error", err.Error()))
	}
}
