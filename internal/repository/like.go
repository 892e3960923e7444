package repository

import (
	"context"

	"wenje/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	// Insert creates the like if absent and reports whether a row was written.
	Insert(ctx context.Context, userID uint, kind models.LikeTargetKind, targetID uint) (bool, error)
	// DeleteByUserAndTarget removes the like if present and reports whether a
	// row was removed.
	DeleteByUserAndTarget(ctx context.Context, userID uint, kind models.LikeTargetKind, targetID uint) (bool, error)
	LikerIDsByTarget(ctx context.Context, kind models.LikeTargetKind, targetID uint) ([]uint, error)
	DeleteByTarget(ctx context.Context, kind models.LikeTargetKind, targetID uint) error
	DeleteByTargets(ctx context.Context, kind models.LikeTargetKind, targetIDs []uint) error
	DeleteByUser(ctx context.Context, userID uint) error
}

// likeRepository implements LikeRepository
type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Insert(ctx context.Context, userID uint, kind models.LikeTargetKind, targetID uint) (bool, error) {
	like := models.Like{UserID: userID, TargetKind: kind, TargetID: targetID}
	// The unique (user, kind, target) index plus DO NOTHING makes the toggle
	// race-safe: a concurrent duplicate insert affects zero rows.
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&like)
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *likeRepository) DeleteByUserAndTarget(ctx context.Context, userID uint, kind models.LikeTargetKind, targetID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND target_kind = ? AND target_id = ?", userID, kind, targetID).
		Delete(&models.Like{})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *likeRepository) LikerIDsByTarget(ctx context.Context, kind models.LikeTargetKind, targetID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("target_kind = ? AND target_id = ?", kind, targetID).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *likeRepository) DeleteByTarget(ctx context.Context, kind models.LikeTargetKind, targetID uint) error {
	err := r.db.WithContext(ctx).
		Where("target_kind = ? AND target_id = ?", kind, targetID).
		Delete(&models.Like{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *likeRepository) DeleteByTargets(ctx context.Context, kind models.LikeTargetKind, targetIDs []uint) error {
	if len(targetIDs) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Where("target_kind = ? AND target_id IN ?", kind, targetIDs).
		Delete(&models.Like{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *likeRepository) DeleteByUser(ctx context.Context, userID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Like{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
