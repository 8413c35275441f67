package favorites

import (
	"context"
	"errors"
	"testing"

	"Quill/internal/core/posts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Create(ctx context.Context, userID, postID int64) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) Delete(ctx context.Context, userID, postID int64) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) ListByUser(ctx context.Context, userID int64) ([]*FavoriteView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*FavoriteView), args.Error(1)
}

type MockPostLookup struct {
	mock.Mock
}

func (m *MockPostLookup) GetBySlug(ctx context.Context, slug string) (*posts.Post, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*posts.Post), args.Error(1)
}

func TestFavoritePost_Idempotent(t *testing.T) {
	repo := new(MockFavoriteRepository)
	lookup := new(MockPostLookup)
	lookup.On("GetBySlug", mock.Anything, "hello-world").Return(&posts.Post{ID: 10, Slug: "hello-world"}, nil)
	repo.On("Create", mock.Anything, int64(1), int64(10)).Return(true, nil).Once()
	repo.On("Create", mock.Anything, int64(1), int64(10)).Return(false, nil).Once()

	service := NewFavoriteService(repo, lookup)

	first, err := service.FavoritePost(context.Background(), 1, "hello-world")
	require.NoError(t, err)
	assert.True(t, first.Created)
	assert.Equal(t, StatusFavorited, first.Status)

	second, err := service.FavoritePost(context.Background(), 1, "hello-world")
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, StatusFavorited, second.Status)

	repo.AssertExpectations(t)
}

func TestFavoritePost_PostNotFound(t *testing.T) {
	repo := new(MockFavoriteRepository)
	lookup := new(MockPostLookup)
	lookup.On("GetBySlug", mock.Anything, "missing").Return(nil, posts.ErrNotFound)

	_, err := NewFavoriteService(repo, lookup).FavoritePost(context.Background(), 1, "missing")
	assert.ErrorIs(t, err, ErrPostNotFound)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestFavoritePost_EmptySlug(t *testing.T) {
	repo := new(MockFavoriteRepository)
	lookup := new(MockPostLookup)

	_, err := NewFavoriteService(repo, lookup).FavoritePost(context.Background(), 1, "  ")
	assert.ErrorIs(t, err, ErrPostNotFound)
	lookup.AssertNotCalled(t, "GetBySlug", mock.Anything, mock.Anything)
}

func TestFavoritePost_LookupFailureIsWrapped(t *testing.T) {
	repo := new(MockFavoriteRepository)
	lookup := new(MockPostLookup)
	dbErr := errors.New("connection reset")
	lookup.On("GetBySlug", mock.Anything, "hello-world").Return(nil, dbErr)

	_, err := NewFavoriteService(repo, lookup).FavoritePost(context.Background(), 1, "hello-world")
	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrPostNotFound)
}

func TestUnfavoritePost(t *testing.T) {
	t.Run("missing edge is not an error", func(t *testing.T) {
		repo := new(MockFavoriteRepository)
		lookup := new(MockPostLookup)
		lookup.On("GetBySlug", mock.Anything, "hello-world").Return(&posts.Post{ID: 10}, nil)
		repo.On("Delete", mock.Anything, int64(1), int64(10)).Return(false, nil)

		err := NewFavoriteService(repo, lookup).UnfavoritePost(context.Background(), 1, "hello-world")
		assert.NoError(t, err)
	})

	t.Run("missing post", func(t *testing.T) {
		repo := new(MockFavoriteRepository)
		lookup := new(MockPostLookup)
		lookup.On("GetBySlug", mock.Anything, "gone").Return(nil, posts.ErrNotFound)

		err := NewFavoriteService(repo, lookup).UnfavoritePost(context.Background(), 1, "gone")
		assert.ErrorIs(t, err, ErrPostNotFound)
	})
}

func TestListFavorites(t *testing.T) {
	repo := new(MockFavoriteRepository)
	views := []*FavoriteView{{PostID: 10, Slug: "hello-world"}}
	repo.On("ListByUser", mock.Anything, int64(1)).Return(views, nil)

	got, err := NewFavoriteService(repo, new(MockPostLookup)).ListFavorites(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, views, got)
}
