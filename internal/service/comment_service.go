package service

import (
	"context"
	"fmt"
	"strings"

	"wenje/internal/models"
	"wenje/internal/repository"
)

// CommentService handles comment creation and deletion.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	cascade     *CascadeService
}

// CreateCommentInput contains the data needed to create a comment
type CreateCommentInput struct {
	AuthorID uint
	PostID   uint
	Content  string
}

// NewCommentService creates a new comment service
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository, cascade *CascadeService) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo, cascade: cascade}
}

// Create validates and stores a new comment on an existing post.
func (s *CommentService) Create(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Please add some content to your comment.")
	}
	if len(content) > models.MaxCommentContentLen {
		return nil, models.NewValidationError(
			fmt.Sprintf("Comment content must be at most %d characters.", models.MaxCommentContentLen))
	}

	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		AuthorID: in.AuthorID,
		PostID:   in.PostID,
		Content:  content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// Delete removes a comment and its likes. Only the author may delete a
// comment.
func (s *CommentService) Delete(ctx context.Context, actorID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != actorID {
		return models.NewForbiddenError("You can only delete your own comments.")
	}
	return s.cascade.DeleteComment(ctx, commentID)
}
