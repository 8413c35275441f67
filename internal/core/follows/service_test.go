package follows

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) Create(ctx context.Context, follow *Follow) error {
	args := m.Called(ctx, follow)
	return args.Error(0)
}

func (m *MockFollowRepository) GetByID(ctx context.Context, id int64) (*Follow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Follow), args.Error(1)
}

func (m *MockFollowRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockFollowRepository) DeleteByPair(ctx context.Context, followerID, followedID int64) error {
	return m.Called(ctx, followerID, followedID).Error(0)
}

func (m *MockFollowRepository) List(ctx context.Context, filter FollowFilter) ([]*Follow, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Follow), args.Error(1)
}

func TestFollow_Success(t *testing.T) {
	repo := new(MockFollowRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(f *Follow) bool {
		return f.FollowerID == 1 && f.FollowedID == 2
	})).Run(func(args mock.Arguments) {
		f := args.Get(1).(*Follow)
		f.ID = 42
		f.CreatedAt = time.Now()
	}).Return(nil)

	follow, err := NewFollowService(repo).Follow(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(42), follow.ID)
	assert.Equal(t, int64(1), follow.FollowerID)
	assert.Equal(t, int64(2), follow.FollowedID)
	repo.AssertExpectations(t)
}

func TestFollow_SelfFollowRejectedBeforeStore(t *testing.T) {
	repo := new(MockFollowRepository)

	_, err := NewFollowService(repo).Follow(context.Background(), 5, 5)
	assert.True(t, IsValidationError(err))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFollow_MissingTarget(t *testing.T) {
	repo := new(MockFollowRepository)

	_, err := NewFollowService(repo).Follow(context.Background(), 5, 0)
	assert.True(t, IsValidationError(err))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFollow_StoreConstraintsBecomeValidationErrors(t *testing.T) {
	for _, storeErr := range []error{ErrAlreadyFollowing, ErrSelfFollow, ErrFollowedNotFound} {
		t.Run(storeErr.Error(), func(t *testing.T) {
			repo := new(MockFollowRepository)
			repo.On("Create", mock.Anything, mock.Anything).Return(storeErr)

			_, err := NewFollowService(repo).Follow(context.Background(), 1, 2)
			require.Error(t, err)
			assert.True(t, IsValidationError(err))
		})
	}
}

func TestFollow_FollowerGoneIsNotValidation(t *testing.T) {
	repo := new(MockFollowRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(ErrFollowerNotFound)

	_, err := NewFollowService(repo).Follow(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrFollowerNotFound)
	assert.False(t, IsValidationError(err))
}

func TestUnfollow(t *testing.T) {
	t.Run("existing edge", func(t *testing.T) {
		repo := new(MockFollowRepository)
		repo.On("DeleteByPair", mock.Anything, int64(1), int64(2)).Return(nil)

		assert.NoError(t, NewFollowService(repo).Unfollow(context.Background(), 1, 2))
	})

	t.Run("missing edge", func(t *testing.T) {
		repo := new(MockFollowRepository)
		repo.On("DeleteByPair", mock.Anything, int64(1), int64(2)).Return(ErrFollowNotFound)

		assert.ErrorIs(t, NewFollowService(repo).Unfollow(context.Background(), 1, 2), ErrFollowNotFound)
	})
}

func TestDeleteFollow(t *testing.T) {
	edge := &Follow{ID: 9, FollowerID: 1, FollowedID: 2}

	t.Run("follower can delete", func(t *testing.T) {
		repo := new(MockFollowRepository)
		repo.On("GetByID", mock.Anything, int64(9)).Return(edge, nil)
		repo.On("Delete", mock.Anything, int64(9)).Return(nil)

		assert.NoError(t, NewFollowService(repo).DeleteFollow(context.Background(), 1, 9))
		repo.AssertExpectations(t)
	})

	t.Run("followed user cannot delete", func(t *testing.T) {
		repo := new(MockFollowRepository)
		repo.On("GetByID", mock.Anything, int64(9)).Return(edge, nil)

		err := NewFollowService(repo).DeleteFollow(context.Background(), 2, 9)
		assert.ErrorIs(t, err, ErrForbidden)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("missing edge", func(t *testing.T) {
		repo := new(MockFollowRepository)
		repo.On("GetByID", mock.Anything, int64(9)).Return(nil, ErrFollowNotFound)

		assert.ErrorIs(t, NewFollowService(repo).DeleteFollow(context.Background(), 1, 9), ErrFollowNotFound)
	})
}

func TestGetFollow_InvalidID(t *testing.T) {
	repo := new(MockFollowRepository)

	_, err := NewFollowService(repo).GetFollow(context.Background(), 0)
	assert.ErrorIs(t, err, ErrFollowNotFound)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestListFollows_PassesFilter(t *testing.T) {
	repo := new(MockFollowRepository)
	filter := FollowFilter{FollowedID: 2}
	repo.On("List", mock.Anything, filter).Return([]*Follow{{ID: 1, FollowerID: 3, FollowedID: 2}}, nil)

	got, err := NewFollowService(repo).ListFollows(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
