package repository

import (
	"context"

	"wenje/internal/cache"
	"wenje/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository defines the interface for follow graph operations.
// Both directions of the relationship are views over the same edge rows, so
// a single write keeps them consistent.
type FollowRepository interface {
	Create(ctx context.Context, followerID, followeeID uint) error
	Delete(ctx context.Context, followerID, followeeID uint) error
	Following(ctx context.Context, userID uint) ([]models.UserSummary, error)
	Followers(ctx context.Context, userID uint) ([]models.UserSummary, error)
	FollowingIDs(ctx context.Context, userID uint) ([]uint, error)
	RemoveAllForUser(ctx context.Context, userID uint) error
}

// followRepository implements FollowRepository
type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(ctx context.Context, followerID, followeeID uint) error {
	follow := models.Follow{FollowerID: followerID, FolloweeID: followeeID}
	// DO NOTHING on conflict gives set semantics: repeated follows are no-ops.
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&follow).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, followerID)
	cache.InvalidateUser(ctx, followeeID)
	return nil
}

func (r *followRepository) Delete(ctx context.Context, followerID, followeeID uint) error {
	err := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, followerID)
	cache.InvalidateUser(ctx, followeeID)
	return nil
}

func (r *followRepository) Following(ctx context.Context, userID uint) ([]models.UserSummary, error) {
	return r.listEdgeUsers(ctx, "follows.follower_id = ?", "follows.followee_id", userID)
}

func (r *followRepository) Followers(ctx context.Context, userID uint) ([]models.UserSummary, error) {
	return r.listEdgeUsers(ctx, "follows.followee_id = ?", "follows.follower_id", userID)
}

// listEdgeUsers selects the user summaries on the far side of the edges
// matched by cond.
func (r *followRepository) listEdgeUsers(ctx context.Context, cond, farColumn string, userID uint) ([]models.UserSummary, error) {
	var results []models.UserSummary
	err := r.db.WithContext(ctx).
		Table("users").
		Select("users.id, users.name, users.bio, users.country, users.image_url").
		Joins("JOIN follows ON users.id = "+farColumn).
		Where(cond, userID).
		Order("follows.created_at DESC").
		Scan(&results).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return results, nil
}

func (r *followRepository) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Pluck("followee_id", &ids).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *followRepository) RemoveAllForUser(ctx context.Context, userID uint) error {
	err := r.db.WithContext(ctx).
		Where("follower_id = ? OR followee_id = ?", userID, userID).
		Delete(&models.Follow{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, userID)
	return nil
}
