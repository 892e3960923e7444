package service

import (
	"context"
	"log/slog"

	"wenje/internal/middleware"
	"wenje/internal/models"
	"wenje/internal/repository"
	"wenje/internal/storage"
)

// CascadeService removes an entity together with everything that references
// it. Steps run dependents-first so a failure part way through leaves the
// primary record in place and the cascade retryable.
type CascadeService struct {
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	likeRepo    repository.LikeRepository
	followRepo  repository.FollowRepository
	images      storage.ImageStore
	logger      *slog.Logger
}

// NewCascadeService creates a new cascade service
func NewCascadeService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	likeRepo repository.LikeRepository,
	followRepo repository.FollowRepository,
	images storage.ImageStore,
	logger *slog.Logger,
) *CascadeService {
	return &CascadeService{
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		followRepo:  followRepo,
		images:      images,
		logger:      logger,
	}
}

// DeletePost removes a post, its comments, and all likes on the post or on
// any of its comments.
func (s *CascadeService) DeletePost(ctx context.Context, post *models.Post) error {
	commentIDs, err := s.commentRepo.ListIDsByPost(ctx, post.ID)
	if err != nil {
		return s.fail(ctx, "post", "list_comments", err)
	}
	if err := s.likeRepo.DeleteByTargets(ctx, models.LikeTargetComment, commentIDs); err != nil {
		return s.fail(ctx, "post", "delete_comment_likes", err)
	}
	if err := s.likeRepo.DeleteByTarget(ctx, models.LikeTargetPost, post.ID); err != nil {
		return s.fail(ctx, "post", "delete_post_likes", err)
	}
	if err := s.commentRepo.DeleteByPost(ctx, post.ID); err != nil {
		return s.fail(ctx, "post", "delete_comments", err)
	}
	s.releaseImage(ctx, "post", post.ImagePublicID)
	if err := s.postRepo.Delete(ctx, post.ID); err != nil {
		return s.fail(ctx, "post", "delete_post", err)
	}
	return nil
}

// DeleteComment removes a comment and its likes.
func (s *CascadeService) DeleteComment(ctx context.Context, commentID uint) error {
	if err := s.likeRepo.DeleteByTarget(ctx, models.LikeTargetComment, commentID); err != nil {
		return s.fail(ctx, "comment", "delete_likes", err)
	}
	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return s.fail(ctx, "comment", "delete_comment", err)
	}
	return nil
}

// DeleteUser removes a user account and all content attached to it: the
// follow edges in both directions, every authored post with its own cascade,
// comments and likes the user left on other content, and the profile image.
func (s *CascadeService) DeleteUser(ctx context.Context, user *models.User) error {
	if err := s.followRepo.RemoveAllForUser(ctx, user.ID); err != nil {
		return s.fail(ctx, "user", "delete_follow_edges", err)
	}

	postIDs, err := s.postRepo.ListIDsByAuthor(ctx, user.ID)
	if err != nil {
		return s.fail(ctx, "user", "list_posts", err)
	}
	for _, postID := range postIDs {
		post, err := s.postRepo.GetByID(ctx, postID)
		if err != nil {
			return s.fail(ctx, "user", "load_post", err)
		}
		if err := s.DeletePost(ctx, post); err != nil {
			return err
		}
	}

	commentIDs, err := s.commentRepo.ListIDsByAuthor(ctx, user.ID)
	if err != nil {
		return s.fail(ctx, "user", "list_comments", err)
	}
	if err := s.likeRepo.DeleteByTargets(ctx, models.LikeTargetComment, commentIDs); err != nil {
		return s.fail(ctx, "user", "delete_comment_likes", err)
	}
	if err := s.commentRepo.DeleteByAuthor(ctx, user.ID); err != nil {
		return s.fail(ctx, "user", "delete_comments", err)
	}
	if err := s.likeRepo.DeleteByUser(ctx, user.ID); err != nil {
		return s.fail(ctx, "user", "delete_likes", err)
	}

	s.releaseImage(ctx, "user", user.ImagePublicID)
	if err := s.userRepo.Delete(ctx, user.ID); err != nil {
		return s.fail(ctx, "user", "delete_user", err)
	}
	return nil
}

// releaseImage is best effort: a stranded remote image must not block the
// delete, it only gets logged and counted.
func (s *CascadeService) releaseImage(ctx context.Context, entity, publicID string) {
	if err := s.images.Release(ctx, publicID); err != nil {
		middleware.CascadeFailures.WithLabelValues(entity, "release_image").Inc()
		s.logger.WarnContext(ctx, "image release failed during cascade",
			slog.String("entity", entity),
			slog.String("public_id", publicID),
			slog.Any("error", err),
		)
	}
}

func (s *CascadeService) fail(ctx context.Context, entity, step string, err error) error {
	middleware.CascadeFailures.WithLabelValues(entity, step).Inc()
	s.logger.ErrorContext(ctx, "cascade step failed",
		slog.String("entity", entity),
		slog.String("step", step),
		slog.Any("error", err),
	)
	return err
}
