// Package service contains the business logic of the application.
package service

import (
	"context"

	"wenje/internal/models"
	"wenje/internal/repository"
)

// RelationshipService maintains the follow graph. Follow and unfollow write a
// single edge row, so the "following" and "followers" views of the two users
// involved can never diverge.
type RelationshipService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

// NewRelationshipService creates a new relationship service
func NewRelationshipService(userRepo repository.UserRepository, followRepo repository.FollowRepository) *RelationshipService {
	return &RelationshipService{userRepo: userRepo, followRepo: followRepo}
}

// Follow makes actor follow target and returns the actor with refreshed
// follow lists. Repeated follows are no-ops (set semantics).
func (s *RelationshipService) Follow(ctx context.Context, actorID, targetID uint) (*models.User, error) {
	if targetID == 0 {
		return nil, models.NewValidationError("Please provide ID of the user to be followed.")
	}
	if actorID == targetID {
		return nil, models.NewValidationError("User ID is same as ID of the user to be followed.")
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return nil, err
	}

	if err := s.followRepo.Create(ctx, actorID, targetID); err != nil {
		return nil, err
	}

	return s.UserWithFollowLists(ctx, actorID)
}

// Unfollow removes the edge if present. Unfollowing a user that is not
// followed succeeds silently.
func (s *RelationshipService) Unfollow(ctx context.Context, actorID, targetID uint) (*models.User, error) {
	if targetID == 0 {
		return nil, models.NewValidationError("Please provide ID of the user to be unfollowed.")
	}

	if err := s.followRepo.Delete(ctx, actorID, targetID); err != nil {
		return nil, err
	}

	return s.UserWithFollowLists(ctx, actorID)
}

// UserWithFollowLists loads a user and attaches both follow list views.
func (s *RelationshipService) UserWithFollowLists(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.AttachFollowLists(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// AttachFollowLists populates the derived Following and Followers fields.
func (s *RelationshipService) AttachFollowLists(ctx context.Context, user *models.User) error {
	following, err := s.followRepo.Following(ctx, user.ID)
	if err != nil {
		return err
	}
	followers, err := s.followRepo.Followers(ctx, user.ID)
	if err != nil {
		return err
	}
	user.Following = following
	user.Followers = followers
	return nil
}
