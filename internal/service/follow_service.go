package service

import (
	"context"

	"quill/internal/models"
	"quill/internal/repository"
)

// FollowService owns the follow/unfollow edge rules.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService creates a new follow service.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{followRepo: followRepo, userRepo: userRepo}
}

// Follow creates the edge userID -> username. Following yourself or an
// author you already follow is a no-op, not an error.
func (s *FollowService) Follow(ctx context.Context, userID uint, username string) (*models.User, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if author.ID == userID {
		return author, nil
	}

	exists, err := s.followRepo.Exists(ctx, userID, author.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return author, nil
	}

	if err := s.followRepo.Create(ctx, userID, author.ID); err != nil {
		return nil, err
	}
	return author, nil
}

// Unfollow removes the edge userID -> username. A missing edge is a no-op;
// only an unknown username is an error.
func (s *FollowService) Unfollow(ctx context.Context, userID uint, username string) (*models.User, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := s.followRepo.Delete(ctx, userID, author.ID); err != nil {
		return nil, err
	}
	return author, nil
}
