package user

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"Quill/internal/api/middleware"
	"Quill/internal/auth"
	"Quill/internal/core/favorites"
	"Quill/internal/core/users"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserService is a mock implementation of users.UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, req users.RegisterRequest) (*users.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, username, password string) (*users.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, id int64) (*users.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockUserService) DeleteAccount(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// MockFavoriteService is a mock implementation of favorites.Service
type MockFavoriteService struct {
	mock.Mock
}

func (m *MockFavoriteService) FavoritePost(ctx context.Context, requesterID int64, slug string) (*favorites.FavoriteResponse, error) {
	args := m.Called(ctx, requesterID, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*favorites.FavoriteResponse), args.Error(1)
}

func (m *MockFavoriteService) UnfavoritePost(ctx context.Context, requesterID int64, slug string) error {
	return m.Called(ctx, requesterID, slug).Error(0)
}

func (m *MockFavoriteService) ListFavorites(ctx context.Context, userID int64) ([]*favorites.FavoriteView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*favorites.FavoriteView), args.Error(1)
}

func newTestIssuer(t *testing.T) *auth.Issuer {
	t.Helper()
	issuer, err := auth.NewIssuer(auth.Config{Secret: []byte(strings.Repeat("k", 32))})
	require.NoError(t, err)
	return issuer
}

func withUser(req *http.Request, id int64) *http.Request {
	return req.WithContext(middleware.SetTestUser(req.Context(), id, "alice"))
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func errorType(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body["error"]
}

func TestSignup(t *testing.T) {
	t.Run("created without password", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("Register", mock.Anything, users.RegisterRequest{
			Username: "alice", Email: "alice@example.com", Password: "hunter2hunter2",
		}).Return(&users.User{ID: 1, Username: "alice", Email: "alice@example.com", PasswordHash: "$2a$hash"}, nil)

		body := `{"username":"alice","email":"alice@example.com","password":"hunter2hunter2"}`
		rec := httptest.NewRecorder()
		NewSignupHandler(svc).HandleSignup(rec, httptest.NewRequest(http.MethodPost, "/users/signup", strings.NewReader(body)))

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"id":1,"username":"alice","email":"alice@example.com"}`, rec.Body.String())
	})

	t.Run("duplicate username", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("Register", mock.Anything, mock.Anything).
			Return(nil, users.NewValidationError("username", users.ErrUsernameTaken.Error()))

		rec := httptest.NewRecorder()
		NewSignupHandler(svc).HandleSignup(rec, httptest.NewRequest(http.MethodPost, "/users/signup",
			strings.NewReader(`{"username":"alice","password":"hunter2hunter2"}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "InvalidRequest", errorType(t, rec))
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewSignupHandler(new(MockUserService)).HandleSignup(rec,
			httptest.NewRequest(http.MethodPost, "/users/signup", strings.NewReader(`not json`)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLogin(t *testing.T) {
	issuer := newTestIssuer(t)

	t.Run("valid credentials return a verifiable pair", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("Authenticate", mock.Anything, "alice", "hunter2hunter2").
			Return(&users.User{ID: 1, Username: "alice", Email: "alice@example.com"}, nil)

		rec := httptest.NewRecorder()
		NewTokenHandler(svc, issuer).HandleLogin(rec, httptest.NewRequest(http.MethodPost, "/users/login",
			strings.NewReader(`{"username":"alice","password":"hunter2hunter2"}`)))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp LoginResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, users.PublicUser{ID: 1, Username: "alice"}, resp.User)

		claims, err := issuer.Verify(resp.Access, auth.TokenTypeAccess)
		require.NoError(t, err)
		assert.Equal(t, "alice", claims.Name)

		_, err = issuer.Verify(resp.Refresh, auth.TokenTypeRefresh)
		assert.NoError(t, err)
	})

	t.Run("bad credentials", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("Authenticate", mock.Anything, "alice", "wrong").Return(nil, users.ErrInvalidCredentials)

		rec := httptest.NewRecorder()
		NewTokenHandler(svc, issuer).HandleLogin(rec, httptest.NewRequest(http.MethodPost, "/users/login",
			strings.NewReader(`{"username":"alice","password":"wrong"}`)))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "InvalidCredentials", errorType(t, rec))
	})
}

func TestRefresh(t *testing.T) {
	issuer := newTestIssuer(t)
	pair, err := issuer.Issue(1, "alice")
	require.NoError(t, err)

	refresh := func(svc users.UserService, token string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(RefreshRequest{Refresh: token})
		rec := httptest.NewRecorder()
		NewTokenHandler(svc, issuer).HandleRefresh(rec,
			httptest.NewRequest(http.MethodPost, "/users/token/refresh", strings.NewReader(string(body))))
		return rec
	}

	t.Run("refresh token yields a new pair", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("GetUser", mock.Anything, int64(1)).Return(&users.User{ID: 1, Username: "alice"}, nil)

		rec := refresh(svc, pair.Refresh)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp LoginResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.NotEmpty(t, resp.Access)
		assert.NotEmpty(t, resp.Refresh)
	})

	t.Run("access token is rejected", func(t *testing.T) {
		svc := new(MockUserService)
		rec := refresh(svc, pair.Access)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		svc.AssertNotCalled(t, "GetUser", mock.Anything, mock.Anything)
	})

	t.Run("deleted user", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("GetUser", mock.Anything, int64(1)).Return(nil, users.ErrUserNotFound)
		assert.Equal(t, http.StatusUnauthorized, refresh(svc, pair.Refresh).Code)
	})

	t.Run("missing token", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, refresh(new(MockUserService), "").Code)
	})
}

func TestGetUser(t *testing.T) {
	svc := new(MockUserService)
	svc.On("GetUser", mock.Anything, int64(5)).
		Return(&users.User{ID: 5, Username: "erin", Email: "erin@example.com"}, nil)
	svc.On("GetUser", mock.Anything, int64(6)).Return(nil, users.ErrUserNotFound)
	h := NewGetHandler(svc)

	rec := httptest.NewRecorder()
	h.HandleGet(rec, withURLParam(httptest.NewRequest(http.MethodGet, "/users/5", nil), "id", "5"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":5,"username":"erin"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.HandleGet(rec, withURLParam(httptest.NewRequest(http.MethodGet, "/users/6", nil), "id", "6"))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.HandleGet(rec, withURLParam(httptest.NewRequest(http.MethodGet, "/users/abc", nil), "id", "abc"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteAccount(t *testing.T) {
	t.Run("deletes the caller", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("DeleteAccount", mock.Anything, int64(3)).Return(nil)

		rec := httptest.NewRecorder()
		NewDeleteHandler(svc).HandleDeleteAccount(rec, withUser(httptest.NewRequest(http.MethodDelete, "/users/me", nil), 3))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		svc := new(MockUserService)
		rec := httptest.NewRecorder()
		NewDeleteHandler(svc).HandleDeleteAccount(rec, httptest.NewRequest(http.MethodDelete, "/users/me", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		svc.AssertNotCalled(t, "DeleteAccount", mock.Anything, mock.Anything)
	})

	t.Run("internal error", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("DeleteAccount", mock.Anything, int64(3)).Return(errors.New("connection reset"))

		rec := httptest.NewRecorder()
		NewDeleteHandler(svc).HandleDeleteAccount(rec, withUser(httptest.NewRequest(http.MethodDelete, "/users/me", nil), 3))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "connection reset")
	})
}

func TestMyFavorites(t *testing.T) {
	fav := new(MockFavoriteService)
	fav.On("ListFavorites", mock.Anything, int64(3)).Return([]*favorites.FavoriteView{
		{PostID: 10, Slug: "hello-world", Title: "Hello World"},
	}, nil)
	fav.On("ListFavorites", mock.Anything, int64(4)).Return(nil, nil)
	h := NewFavoritesHandler(fav)

	rec := httptest.NewRecorder()
	h.HandleMyFavorites(rec, withUser(httptest.NewRequest(http.MethodGet, "/users/me/favorites", nil), 3))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slug":"hello-world"`)

	rec = httptest.NewRecorder()
	h.HandleMyFavorites(rec, withUser(httptest.NewRequest(http.MethodGet, "/users/me/favorites", nil), 4))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
