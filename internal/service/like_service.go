package service

import (
	"context"

	"wenje/internal/middleware"
	"wenje/internal/models"
	"wenje/internal/repository"
)

// LikeService implements like toggling over posts and comments.
type LikeService struct {
	likeRepo    repository.LikeRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

// ToggleResult reports the outcome of a like toggle.
type ToggleResult struct {
	// Liked is true when the toggle created a like, false when it removed one.
	Liked bool
}

// NewLikeService creates a new like service
func NewLikeService(
	likeRepo repository.LikeRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
) *LikeService {
	return &LikeService{likeRepo: likeRepo, postRepo: postRepo, commentRepo: commentRepo}
}

// Toggle likes the target when no like by this user exists, and unlikes it
// otherwise. The target must exist; liking a deleted post or comment is
// NOT_FOUND rather than a silent orphan.
func (s *LikeService) Toggle(ctx context.Context, userID uint, kind models.LikeTargetKind, targetID uint) (ToggleResult, error) {
	if !kind.Valid() {
		return ToggleResult{}, models.NewValidationError("Like target must be a post or a comment.")
	}

	if err := s.targetExists(ctx, kind, targetID); err != nil {
		return ToggleResult{}, err
	}

	removed, err := s.likeRepo.DeleteByUserAndTarget(ctx, userID, kind, targetID)
	if err != nil {
		return ToggleResult{}, err
	}
	if removed {
		middleware.LikeToggles.WithLabelValues(string(kind), "unliked").Inc()
		return ToggleResult{Liked: false}, nil
	}

	// Not liked before: create. A concurrent toggle may win the insert; the
	// unique index makes that a no-op and the outcome is still "liked".
	if _, err := s.likeRepo.Insert(ctx, userID, kind, targetID); err != nil {
		return ToggleResult{}, err
	}
	middleware.LikeToggles.WithLabelValues(string(kind), "liked").Inc()
	return ToggleResult{Liked: true}, nil
}

func (s *LikeService) targetExists(ctx context.Context, kind models.LikeTargetKind, targetID uint) error {
	switch kind {
	case models.LikeTargetPost:
		_, err := s.postRepo.GetByID(ctx, targetID)
		return err
	case models.LikeTargetComment:
		_, err := s.commentRepo.GetByID(ctx, targetID)
		return err
	}
	return models.NewValidationError("Like target must be a post or a comment.")
}
