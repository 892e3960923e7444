package service

import (
	"context"
	"fmt"
	"strings"

	"wenje/internal/models"
	"wenje/internal/repository"
	"wenje/internal/validation"
)

// PostService handles post creation and deletion.
type PostService struct {
	postRepo repository.PostRepository
	cascade  *CascadeService
}

// CreatePostInput contains the data needed to create a post
type CreatePostInput struct {
	AuthorID      uint
	Content       string
	ImageURL      string
	ImagePublicID string
}

// NewPostService creates a new post service
func NewPostService(postRepo repository.PostRepository, cascade *CascadeService) *PostService {
	return &PostService{postRepo: postRepo, cascade: cascade}
}

// Create validates and stores a new post, returning it with author and counts.
func (s *PostService) Create(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Please add some content to your post.")
	}
	if len(content) > models.MaxPostContentLen {
		return nil, models.NewValidationError(
			fmt.Sprintf("Post content must be at most %d characters.", models.MaxPostContentLen))
	}
	if in.ImageURL != "" {
		if err := validation.ValidateImageURL(in.ImageURL); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
	}

	post := &models.Post{
		AuthorID:      in.AuthorID,
		Content:       content,
		ImageURL:      in.ImageURL,
		ImagePublicID: in.ImagePublicID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// Delete removes a post and everything attached to it. Only the author may
// delete a post.
func (s *PostService) Delete(ctx context.Context, actorID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != actorID {
		return models.NewForbiddenError("You can only delete your own posts.")
	}
	return s.cascade.DeletePost(ctx, post)
}
