package mysql

import (
	"context"

	"github.com/heyZakaria/01Blog/internal/model"

	"gorm.io/gorm"
)

type LikeRepository struct{}

func (r *LikeRepository) Create(tx *gorm.DB, like *model.Like) error {
	return tx.Create(like).Error
}

// DeleteByUserAndPost reports whether a row was actually removed, so a
// concurrent double-unlike stays idempotent.
func (r *LikeRepository) DeleteByUserAndPost(ctx context.Context, userID, postID uint64) (bool, error) {
	res := DB.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.Like{})
	return res.RowsAffected > 0, res.Error
}

func (r *LikeRepository) Exists(ctx context.Context, userID, postID uint64) (bool, error) {
	var n int64
	err := DB.WithContext(ctx).Model(&model.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&n).Error
	return n > 0, err
}

func (r *LikeRepository) CountByPost(ctx context.Context, postID uint64) (int64, error) {
	var n int64
	err := DB.WithContext(ctx).Model(&model.Like{}).Where("post_id = ?", postID).Count(&n).Error
	return n, err
}
