package service

import (
	"context"
	"time"

	"wenje/internal/models"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn              func(context.Context, *models.User) error
	getByIDFn             func(context.Context, uint) (*models.User, error)
	getByEmailFn          func(context.Context, string) (*models.User, error)
	getByResetTokenHashFn func(context.Context, string, time.Time) (*models.User, error)
	updateFn              func(context.Context, *models.User) error
	deleteFn              func(context.Context, uint) error
	listFn                func(context.Context) ([]models.User, error)
	searchByNameFn        func(context.Context, string) ([]models.UserSummary, error)
	listExcludingFn       func(context.Context, []uint, int) ([]models.UserSummary, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByResetTokenHash(ctx context.Context, hash string, now time.Time) (*models.User, error) {
	return s.getByResetTokenHashFn(ctx, hash, now)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context) ([]models.User, error) {
	return s.listFn(ctx)
}
func (s *userRepoStub) SearchByName(ctx context.Context, name string) ([]models.UserSummary, error) {
	return s.searchByNameFn(ctx, name)
}
func (s *userRepoStub) ListExcluding(ctx context.Context, excludedIDs []uint, limit int) ([]models.UserSummary, error) {
	return s.listExcludingFn(ctx, excludedIDs, limit)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:  func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) {
			return nil, nil
		},
		getByResetTokenHashFn: func(_ context.Context, _ string, _ time.Time) (*models.User, error) {
			return nil, models.NewNotFoundError("Password reset URL is invalid or has expired.")
		},
		updateFn:       func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:       func(_ context.Context, _ uint) error { return nil },
		listFn:         func(_ context.Context) ([]models.User, error) { return nil, nil },
		searchByNameFn: func(_ context.Context, _ string) ([]models.UserSummary, error) { return nil, nil },
		listExcludingFn: func(_ context.Context, _ []uint, _ int) ([]models.UserSummary, error) {
			return nil, nil
		},
	}
}

// followRepoStub is a stub for repository.FollowRepository.
type followRepoStub struct {
	createFn           func(context.Context, uint, uint) error
	deleteFn           func(context.Context, uint, uint) error
	followingFn        func(context.Context, uint) ([]models.UserSummary, error)
	followersFn        func(context.Context, uint) ([]models.UserSummary, error)
	followingIDsFn     func(context.Context, uint) ([]uint, error)
	removeAllForUserFn func(context.Context, uint) error
}

func (s *followRepoStub) Create(ctx context.Context, followerID, followeeID uint) error {
	return s.createFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) Delete(ctx context.Context, followerID, followeeID uint) error {
	return s.deleteFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) Following(ctx context.Context, userID uint) ([]models.UserSummary, error) {
	return s.followingFn(ctx, userID)
}
func (s *followRepoStub) Followers(ctx context.Context, userID uint) ([]models.UserSummary, error) {
	return s.followersFn(ctx, userID)
}
func (s *followRepoStub) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.followingIDsFn(ctx, userID)
}
func (s *followRepoStub) RemoveAllForUser(ctx context.Context, userID uint) error {
	return s.removeAllForUserFn(ctx, userID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		createFn:           func(_ context.Context, _, _ uint) error { return nil },
		deleteFn:           func(_ context.Context, _, _ uint) error { return nil },
		followingFn:        func(_ context.Context, _ uint) ([]models.UserSummary, error) { return nil, nil },
		followersFn:        func(_ context.Context, _ uint) ([]models.UserSummary, error) { return nil, nil },
		followingIDsFn:     func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
		removeAllForUserFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn          func(context.Context, *models.Post) error
	getByIDFn         func(context.Context, uint) (*models.Post, error)
	listByAuthorsFn   func(context.Context, []uint, time.Time, int) ([]*models.Post, error)
	listIDsByAuthorFn func(context.Context, uint) ([]uint, error)
	deleteFn          func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) ListByAuthors(ctx context.Context, authorIDs []uint, before time.Time, limit int) ([]*models.Post, error) {
	return s.listByAuthorsFn(ctx, authorIDs, before, limit)
}
func (s *postRepoStub) ListIDsByAuthor(ctx context.Context, authorID uint) ([]uint, error) {
	return s.listIDsByAuthorFn(ctx, authorID)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:  func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		listByAuthorsFn: func(_ context.Context, _ []uint, _ time.Time, _ int) ([]*models.Post, error) {
			return nil, nil
		},
		listIDsByAuthorFn: func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
		deleteFn:          func(_ context.Context, _ uint) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn          func(context.Context, *models.Comment) error
	getByIDFn         func(context.Context, uint) (*models.Comment, error)
	listByPostFn      func(context.Context, uint, time.Time, int) ([]*models.Comment, error)
	countByPostFn     func(context.Context, uint) (int64, error)
	listIDsByPostFn   func(context.Context, uint) ([]uint, error)
	listIDsByAuthorFn func(context.Context, uint) ([]uint, error)
	deleteFn          func(context.Context, uint) error
	deleteByPostFn    func(context.Context, uint) error
	deleteByAuthorFn  func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint, before time.Time, limit int) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID, before, limit)
}
func (s *commentRepoStub) CountByPost(ctx context.Context, postID uint) (int64, error) {
	return s.countByPostFn(ctx, postID)
}
func (s *commentRepoStub) ListIDsByPost(ctx context.Context, postID uint) ([]uint, error) {
	return s.listIDsByPostFn(ctx, postID)
}
func (s *commentRepoStub) ListIDsByAuthor(ctx context.Context, authorID uint) ([]uint, error) {
	return s.listIDsByAuthorFn(ctx, authorID)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *commentRepoStub) DeleteByPost(ctx context.Context, postID uint) error {
	return s.deleteByPostFn(ctx, postID)
}
func (s *commentRepoStub) DeleteByAuthor(ctx context.Context, authorID uint) error {
	return s.deleteByAuthorFn(ctx, authorID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id}, nil
		},
		listByPostFn: func(_ context.Context, _ uint, _ time.Time, _ int) ([]*models.Comment, error) {
			return nil, nil
		},
		countByPostFn:     func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		listIDsByPostFn:   func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
		listIDsByAuthorFn: func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
		deleteFn:          func(_ context.Context, _ uint) error { return nil },
		deleteByPostFn:    func(_ context.Context, _ uint) error { return nil },
		deleteByAuthorFn:  func(_ context.Context, _ uint) error { return nil },
	}
}

// likeRepoStub is a stub for repository.LikeRepository.
type likeRepoStub struct {
	insertFn                func(context.Context, uint, models.LikeTargetKind, uint) (bool, error)
	deleteByUserAndTargetFn func(context.Context, uint, models.LikeTargetKind, uint) (bool, error)
	likerIDsByTargetFn      func(context.Context, models.LikeTargetKind, uint) ([]uint, error)
	deleteByTargetFn        func(context.Context, models.LikeTargetKind, uint) error
	deleteByTargetsFn       func(context.Context, models.LikeTargetKind, []uint) error
	deleteByUserFn          func(context.Context, uint) error
}

func (s *likeRepoStub) Insert(ctx context.Context, userID uint, kind models.LikeTargetKind, targetID uint) (bool, error) {
	return s.insertFn(ctx, userID, kind, targetID)
}
func (s *likeRepoStub) DeleteByUserAndTarget(ctx context.Context, userID uint, kind models.LikeTargetKind, targetID uint) (bool, error) {
	return s.deleteByUserAndTargetFn(ctx, userID, kind, targetID)
}
func (s *likeRepoStub) LikerIDsByTarget(ctx context.Context, kind models.LikeTargetKind, targetID uint) ([]uint, error) {
	return s.likerIDsByTargetFn(ctx, kind, targetID)
}
func (s *likeRepoStub) DeleteByTarget(ctx context.Context, kind models.LikeTargetKind, targetID uint) error {
	return s.deleteByTargetFn(ctx, kind, targetID)
}
func (s *likeRepoStub) DeleteByTargets(ctx context.Context, kind models.LikeTargetKind, targetIDs []uint) error {
	return s.deleteByTargetsFn(ctx, kind, targetIDs)
}
func (s *likeRepoStub) DeleteByUser(ctx context.Context, userID uint) error {
	return s.deleteByUserFn(ctx, userID)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		insertFn: func(_ context.Context, _ uint, _ models.LikeTargetKind, _ uint) (bool, error) {
			return true, nil
		},
		deleteByUserAndTargetFn: func(_ context.Context, _ uint, _ models.LikeTargetKind, _ uint) (bool, error) {
			return false, nil
		},
		likerIDsByTargetFn: func(_ context.Context, _ models.LikeTargetKind, _ uint) ([]uint, error) {
			return nil, nil
		},
		deleteByTargetFn:  func(_ context.Context, _ models.LikeTargetKind, _ uint) error { return nil },
		deleteByTargetsFn: func(_ context.Context, _ models.LikeTargetKind, _ []uint) error { return nil },
		deleteByUserFn:    func(_ context.Context, _ uint) error { return nil },
	}
}

// imageStoreStub records released public ids.
type imageStoreStub struct {
	released []string
	err      error
}

func (s *imageStoreStub) Release(_ context.Context, publicID string) error {
	if s.err != nil {
		return s.err
	}
	s.released = append(s.released, publicID)
	return nil
}
