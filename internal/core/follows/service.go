package follows

import (
	"context"
	"errors"
	"log/slog"
)

type followService struct {
	repo Repository
}

// NewFollowService creates a new follow service
func NewFollowService(repo Repository) Service {
	return &followService{
		repo: repo,
	}
}

func (s *followService) Follow(ctx context.Context, followerID, followedID int64) (*Follow, error) {
	if followedID <= 0 {
		return nil, NewValidationError("followed", "followed is required")
	}
	if followerID == followedID {
		return nil, NewValidationError("followed", ErrSelfFollow.Error())
	}

	follow := &Follow{
		FollowerID: followerID,
		FollowedID: followedID,
	}
	if err := s.repo.Create(ctx, follow); err != nil {
		switch {
		case errors.Is(err, ErrSelfFollow):
			return nil, NewValidationError("followed", ErrSelfFollow.Error())
		case errors.Is(err, ErrAlreadyFollowing):
			return nil, NewValidationError("followed", ErrAlreadyFollowing.Error())
		case errors.Is(err, ErrFollowedNotFound):
			return nil, NewValidationError("followed", "user does not exist")
		default:
			return nil, err
		}
	}

	slog.Info("follow created",
		slog.Int64("follow_id", follow.ID),
		slog.Int64("follower_id", followerID),
		slog.Int64("followed_id", followedID),
	)
	return follow, nil
}

func (s *followService) Unfollow(ctx context.Context, followerID, followedID int64) error {
	if err := s.repo.DeleteByPair(ctx, followerID, followedID); err != nil {
		return err
	}

	slog.Info("follow removed",
		slog.Int64("follower_id", followerID),
		slog.Int64("followed_id", followedID),
	)
	return nil
}

func (s *followService) DeleteFollow(ctx context.Context, requesterID, id int64) error {
	follow, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if follow.FollowerID != requesterID {
		return ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	slog.Info("follow removed",
		slog.Int64("follow_id", id),
		slog.Int64("follower_id", follow.FollowerID),
		slog.Int64("followed_id", follow.FollowedID),
	)
	return nil
}

func (s *followService) GetFollow(ctx context.Context, id int64) (*Follow, error) {
	if id <= 0 {
		return nil, ErrFollowNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *followService) ListFollows(ctx context.Context, filter FollowFilter) ([]*Follow, error) {
	return s.repo.List(ctx, filter)
}
