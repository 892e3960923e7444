package service

import (
	"context"
	"time"

	"wenje/internal/models"
	"wenje/internal/repository"
)

const (
	// UserPostsPageSize caps a single page of a user's own posts.
	UserPostsPageSize = 10
	// CommentPreviewLimit is the page size for the limited comment view.
	CommentPreviewLimit = 5
)

// FeedService assembles post and comment read views: the newsfeed, per-user
// post pages, and comment pages, each enriched with like information.
type FeedService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	likeRepo    repository.LikeRepository
	followRepo  repository.FollowRepository
}

// NewFeedService creates a new feed service
func NewFeedService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	likeRepo repository.LikeRepository,
	followRepo repository.FollowRepository,
) *FeedService {
	return &FeedService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		followRepo:  followRepo,
	}
}

// NewsFeed returns posts authored by the user or anyone they follow, created
// strictly before the cursor, newest first. A zero cursor means now.
func (s *FeedService) NewsFeed(ctx context.Context, userID uint, before time.Time) ([]*models.Post, error) {
	authorIDs, err := s.followRepo.FollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	authorIDs = append(authorIDs, userID)

	posts, err := s.postRepo.ListByAuthors(ctx, authorIDs, cursorOrNow(before), 0)
	if err != nil {
		return nil, err
	}
	if err := s.attachLikers(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// PostsByUser returns one page of a user's posts before the cursor.
func (s *FeedService) PostsByUser(ctx context.Context, authorID uint, before time.Time) ([]*models.Post, error) {
	posts, err := s.postRepo.ListByAuthors(ctx, []uint{authorID}, cursorOrNow(before), UserPostsPageSize)
	if err != nil {
		return nil, err
	}
	if err := s.attachLikers(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// PostByID returns a single post with its author, counts, and liker ids.
func (s *FeedService) PostByID(ctx context.Context, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := s.attachLikers(ctx, []*models.Post{post}); err != nil {
		return nil, err
	}
	return post, nil
}

// CommentsOnPost returns comments on a post before the cursor along with the
// post's total comment count. When limited, at most CommentPreviewLimit
// comments are returned.
func (s *FeedService) CommentsOnPost(ctx context.Context, postID uint, before time.Time, limited bool) ([]*models.Comment, int64, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, 0, err
	}

	limit := 0
	if limited {
		limit = CommentPreviewLimit
	}
	comments, err := s.commentRepo.ListByPost(ctx, postID, cursorOrNow(before), limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.commentRepo.CountByPost(ctx, postID)
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (s *FeedService) attachLikers(ctx context.Context, posts []*models.Post) error {
	for _, post := range posts {
		ids, err := s.likeRepo.LikerIDsByTarget(ctx, models.LikeTargetPost, post.ID)
		if err != nil {
			return err
		}
		post.LikedByIDs = ids
	}
	return nil
}

func cursorOrNow(before time.Time) time.Time {
	if before.IsZero() {
		return time.Now()
	}
	return before
}
