package user

import (
	"errors"
	"log/slog"
	"net/http"

	"Quill/internal/api/handlers"
	"Quill/internal/auth"
	"Quill/internal/core/users"
)

// TokenIssuer mints and checks token pairs. *auth.Issuer satisfies it.
type TokenIssuer interface {
	Issue(userID int64, username string) (*auth.TokenPair, error)
	Verify(token string, expected auth.TokenType) (*auth.Claims, error)
}

// LoginRequest is the body of POST /users/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshRequest is the body of POST /users/token/refresh
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// LoginResponse carries a fresh token pair and the public view of the user
type LoginResponse struct {
	Access  string           `json:"access"`
	Refresh string           `json:"refresh"`
	User    users.PublicUser `json:"user"`
}

// TokenHandler handles login and token refresh
type TokenHandler struct {
	userService users.UserService
	issuer      TokenIssuer
}

// NewTokenHandler creates a new token handler
func NewTokenHandler(userService users.UserService, issuer TokenIssuer) *TokenHandler {
	return &TokenHandler{
		userService: userService,
		issuer:      issuer,
	}
}

// HandleLogin handles POST /users/login
func (h *TokenHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}

	user, err := h.userService.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			slog.Warn("[AUTH_FAILURE]",
				slog.String("type", "login"),
				slog.String("ip", r.RemoteAddr),
				slog.String("username", req.Username),
			)
		}
		handleServiceError(w, r, err)
		return
	}

	h.respondWithTokens(w, r, user)
}

// HandleRefresh handles POST /users/token/refresh.
// Only refresh tokens are accepted, and the subject must still exist.
func (h *TokenHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}
	if req.Refresh == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "refresh token is required")
		return
	}

	claims, err := h.issuer.Verify(req.Refresh, auth.TokenTypeRefresh)
	if err != nil {
		slog.Warn("[AUTH_FAILURE]",
			slog.String("type", "refresh"),
			slog.String("ip", r.RemoteAddr),
			slog.String("error", err.Error()),
		)
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Invalid or expired refresh token")
		return
	}

	userID, err := claims.UserID()
	if err != nil {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Invalid or expired refresh token")
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "User no longer exists")
			return
		}
		handlers.WriteInternalError(w, r, err)
		return
	}

	h.respondWithTokens(w, r, user)
}

func (h *TokenHandler) respondWithTokens(w http.ResponseWriter, r *http.Request, user *users.User) {
	pair, err := h.issuer.Issue(user.ID, user.Username)
	if err != nil {
		handlers.WriteInternalError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, LoginResponse{
		Access:  pair.Access,
		Refresh: pair.Refresh,
		User:    user.Public(),
	})
}
