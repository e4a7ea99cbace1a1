package service

import (
	"context"

	"fotofocus-backend/internal/model"
	"fotofocus-backend/internal/repository"
)

// FollowService manages the follow graph.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow creates the edge; following twice is a no-op.
func (s *FollowService) Follow(ctx context.Context, followerID, followingID int64) error {
	if followerID == followingID {
		return model.ErrSelfFollow
	}
	if _, err := s.userRepo.GetByID(ctx, followingID); err != nil {
		return err
	}
	return s.followRepo.Create(ctx, followerID, followingID)
}

// Unfollow removes the edge; removing an absent edge is a no-op.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followingID int64) error {
	if _, err := s.userRepo.GetByID(ctx, followingID); err != nil {
		return err
	}
	return s.followRepo.Delete(ctx, followerID, followingID)
}

func (s *FollowService) Followers(ctx context.Context, userID int64) ([]model.PublicUser, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.Followers(ctx, userID)
}

func (s *FollowService) Following(ctx context.Context, userID int64) ([]model.PublicUser, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.Following(ctx, userID)
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, followingID int64) (bool, error) {
	return s.followRepo.Exists(ctx, followerID, followingID)
}
