package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"wenje/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDeletePostCascadeRemovesEverything(t *testing.T) {
	var steps []string

	commentRepo := noopCommentRepo()
	commentRepo.listIDsByPostFn = func(_ context.Context, postID uint) ([]uint, error) {
		return []uint{21, 22}, nil
	}
	commentRepo.deleteByPostFn = func(_ context.Context, postID uint) error {
		steps = append(steps, fmt.Sprintf("comments:%d", postID))
		return nil
	}

	likeRepo := noopLikeRepo()
	likeRepo.deleteByTargetsFn = func(_ context.Context, kind models.LikeTargetKind, ids []uint) error {
		steps = append(steps, fmt.Sprintf("likes:%s:%v", kind, ids))
		return nil
	}
	likeRepo.deleteByTargetFn = func(_ context.Context, kind models.LikeTargetKind, id uint) error {
		steps = append(steps, fmt.Sprintf("likes:%s:%d", kind, id))
		return nil
	}

	postRepo := noopPostRepo()
	postRepo.deleteFn = func(_ context.Context, id uint) error {
		steps = append(steps, fmt.Sprintf("post:%d", id))
		return nil
	}

	images := &imageStoreStub{}
	svc := NewCascadeService(noopUserRepo(), postRepo, commentRepo, likeRepo,
		noopFollowRepo(), images, discardLogger())

	post := &models.Post{ID: 10, ImagePublicID: "post-img"}
	require.NoError(t, svc.DeletePost(context.Background(), post))

	assert.Equal(t, []string{
		"likes:comment:[21 22]",
		"likes:post:10",
		"comments:10",
		"post:10",
	}, steps)
	assert.Equal(t, []string{"post-img"}, images.released)
}

func TestDeletePostCascadeStopsOnFailure(t *testing.T) {
	commentRepo := noopCommentRepo()
	commentRepo.deleteByPostFn = func(_ context.Context, _ uint) error {
		return models.NewInternalError(errors.New("db down"))
	}

	postDeleted := false
	postRepo := noopPostRepo()
	postRepo.deleteFn = func(_ context.Context, _ uint) error {
		postDeleted = true
		return nil
	}

	svc := NewCascadeService(noopUserRepo(), postRepo, commentRepo, noopLikeRepo(),
		noopFollowRepo(), &imageStoreStub{}, discardLogger())

	err := svc.DeletePost(context.Background(), &models.Post{ID: 10})
	require.Error(t, err)
	assert.False(t, postDeleted, "primary record must survive a failed dependent step")
}

func TestDeleteCommentCascade(t *testing.T) {
	var steps []string

	likeRepo := noopLikeRepo()
	likeRepo.deleteByTargetFn = func(_ context.Context, kind models.LikeTargetKind, id uint) error {
		steps = append(steps, fmt.Sprintf("likes:%s:%d", kind, id))
		return nil
	}
	commentRepo := noopCommentRepo()
	commentRepo.deleteFn = func(_ context.Context, id uint) error {
		steps = append(steps, fmt.Sprintf("comment:%d", id))
		return nil
	}

	svc := NewCascadeService(noopUserRepo(), noopPostRepo(), commentRepo, likeRepo,
		noopFollowRepo(), &imageStoreStub{}, discardLogger())

	require.NoError(t, svc.DeleteComment(context.Background(), 33))
	assert.Equal(t, []string{"likes:comment:33", "comment:33"}, steps)
}

func TestDeleteUserCascadeIsComplete(t *testing.T) {
	var steps []string

	followRepo := noopFollowRepo()
	followRepo.removeAllForUserFn = func(_ context.Context, userID uint) error {
		steps = append(steps, fmt.Sprintf("edges:%d", userID))
		return nil
	}

	postRepo := noopPostRepo()
	postRepo.listIDsByAuthorFn = func(_ context.Context, _ uint) ([]uint, error) {
		return []uint{10}, nil
	}
	postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id}, nil
	}
	postRepo.deleteFn = func(_ context.Context, id uint) error {
		steps = append(steps, fmt.Sprintf("post:%d", id))
		return nil
	}

	commentRepo := noopCommentRepo()
	commentRepo.listIDsByPostFn = func(_ context.Context, _ uint) ([]uint, error) { return nil, nil }
	commentRepo.listIDsByAuthorFn = func(_ context.Context, _ uint) ([]uint, error) {
		return []uint{40, 41}, nil
	}
	commentRepo.deleteByPostFn = func(_ context.Context, postID uint) error {
		steps = append(steps, fmt.Sprintf("post_comments:%d", postID))
		return nil
	}
	commentRepo.deleteByAuthorFn = func(_ context.Context, authorID uint) error {
		steps = append(steps, fmt.Sprintf("authored_comments:%d", authorID))
		return nil
	}

	likeRepo := noopLikeRepo()
	likeRepo.deleteByTargetsFn = func(_ context.Context, kind models.LikeTargetKind, ids []uint) error {
		steps = append(steps, fmt.Sprintf("likes:%s:%v", kind, ids))
		return nil
	}
	likeRepo.deleteByTargetFn = func(_ context.Context, kind models.LikeTargetKind, id uint) error {
		steps = append(steps, fmt.Sprintf("likes:%s:%d", kind, id))
		return nil
	}
	likeRepo.deleteByUserFn = func(_ context.Context, userID uint) error {
		steps = append(steps, fmt.Sprintf("user_likes:%d", userID))
		return nil
	}

	userDeleted := false
	userRepo := noopUserRepo()
	userRepo.deleteFn = func(_ context.Context, id uint) error {
		userDeleted = true
		steps = append(steps, fmt.Sprintf("user:%d", id))
		return nil
	}

	images := &imageStoreStub{}
	svc := NewCascadeService(userRepo, postRepo, commentRepo, likeRepo,
		followRepo, images, discardLogger())

	user := &models.User{ID: 1, ImagePublicID: "avatar-1"}
	require.NoError(t, svc.DeleteUser(context.Background(), user))

	assert.Equal(t, []string{
		"edges:1",
		"likes:comment:[]",
		"likes:post:10",
		"post_comments:10",
		"post:10",
		"likes:comment:[40 41]",
		"authored_comments:1",
		"user_likes:1",
		"user:1",
	}, steps)
	assert.True(t, userDeleted)
	assert.Equal(t, []string{"avatar-1"}, images.released)
}

func TestDeleteUserImageFailureDoesNotBlockDelete(t *testing.T) {
	userDeleted := false
	userRepo := noopUserRepo()
	userRepo.deleteFn = func(_ context.Context, _ uint) error {
		userDeleted = true
		return nil
	}

	images := &imageStoreStub{err: errors.New("image store unreachable")}
	svc := NewCascadeService(userRepo, noopPostRepo(), noopCommentRepo(), noopLikeRepo(),
		noopFollowRepo(), images, discardLogger())

	err := svc.DeleteUser(context.Background(), &models.User{ID: 1, ImagePublicID: "avatar-1"})
	require.NoError(t, err)
	assert.True(t, userDeleted)
}
