package service

import (
	"context"
	"testing"

	"wenje/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleLikesWhenNotLiked(t *testing.T) {
	likeRepo := noopLikeRepo()
	inserted := false
	likeRepo.insertFn = func(_ context.Context, userID uint, kind models.LikeTargetKind, targetID uint) (bool, error) {
		inserted = true
		assert.Equal(t, uint(1), userID)
		assert.Equal(t, models.LikeTargetPost, kind)
		assert.Equal(t, uint(10), targetID)
		return true, nil
	}

	svc := NewLikeService(likeRepo, noopPostRepo(), noopCommentRepo())

	res, err := svc.Toggle(context.Background(), 1, models.LikeTargetPost, 10)
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.True(t, inserted)
}

func TestToggleUnlikesWhenAlreadyLiked(t *testing.T) {
	likeRepo := noopLikeRepo()
	likeRepo.deleteByUserAndTargetFn = func(_ context.Context, _ uint, _ models.LikeTargetKind, _ uint) (bool, error) {
		return true, nil
	}
	likeRepo.insertFn = func(_ context.Context, _ uint, _ models.LikeTargetKind, _ uint) (bool, error) {
		t.Fatal("insert must not run when the like was removed")
		return false, nil
	}

	svc := NewLikeService(likeRepo, noopPostRepo(), noopCommentRepo())

	res, err := svc.Toggle(context.Background(), 1, models.LikeTargetPost, 10)
	require.NoError(t, err)
	assert.False(t, res.Liked)
}

func TestToggleRoundTrip(t *testing.T) {
	liked := false
	likeRepo := noopLikeRepo()
	likeRepo.deleteByUserAndTargetFn = func(_ context.Context, _ uint, _ models.LikeTargetKind, _ uint) (bool, error) {
		if liked {
			liked = false
			return true, nil
		}
		return false, nil
	}
	likeRepo.insertFn = func(_ context.Context, _ uint, _ models.LikeTargetKind, _ uint) (bool, error) {
		liked = true
		return true, nil
	}

	svc := NewLikeService(likeRepo, noopPostRepo(), noopCommentRepo())

	res, err := svc.Toggle(context.Background(), 1, models.LikeTargetComment, 4)
	require.NoError(t, err)
	assert.True(t, res.Liked)

	res, err = svc.Toggle(context.Background(), 1, models.LikeTargetComment, 4)
	require.NoError(t, err)
	assert.False(t, res.Liked)
	assert.False(t, liked, "round trip must leave no like behind")
}

func TestToggleNonexistentPostFails(t *testing.T) {
	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
		return nil, models.NewNotFoundError("Post doesn't exist.")
	}

	svc := NewLikeService(noopLikeRepo(), postRepo, noopCommentRepo())

	_, err := svc.Toggle(context.Background(), 1, models.LikeTargetPost, 404)
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestToggleNonexistentCommentFails(t *testing.T) {
	commentRepo := noopCommentRepo()
	commentRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) {
		return nil, models.NewNotFoundError("Comment doesn't exist.")
	}

	svc := NewLikeService(noopLikeRepo(), noopPostRepo(), commentRepo)

	_, err := svc.Toggle(context.Background(), 1, models.LikeTargetComment, 404)
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestToggleRejectsUnknownKind(t *testing.T) {
	svc := NewLikeService(noopLikeRepo(), noopPostRepo(), noopCommentRepo())

	_, err := svc.Toggle(context.Background(), 1, models.LikeTargetKind("story"), 1)
	assertAppErrorCode(t, err, models.CodeValidation)
}

func TestToggleConcurrentInsertLoserStillLiked(t *testing.T) {
	likeRepo := noopLikeRepo()
	likeRepo.insertFn = func(_ context.Context, _ uint, _ models.LikeTargetKind, _ uint) (bool, error) {
		// Another toggle won the insert; the unique index made ours a no-op.
		return false, nil
	}

	svc := NewLikeService(likeRepo, noopPostRepo(), noopCommentRepo())

	res, err := svc.Toggle(context.Background(), 1, models.LikeTargetPost, 10)
	require.NoError(t, err)
	assert.True(t, res.Liked)
}
