package mysql

import (
	"context"

	"github.com/heyZakaria/01Blog/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct{}

func (r *CommentRepository) Create(tx *gorm.DB, comment *model.Comment) error {
	return tx.Create(comment).Error
}

func (r *CommentRepository) FindByID(ctx context.Context, id uint64) (*model.Comment, error) {
	var comment model.Comment
	err := DB.WithContext(ctx).Preload("Author").First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID uint64) ([]model.Comment, error) {
	var comments []model.Comment
	err := DB.WithContext(ctx).Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return comments, err
}

func (r *CommentRepository) Save(ctx context.Context, comment *model.Comment) error {
	return DB.WithContext(ctx).Omit("Author").Save(comment).Error
}

func (r *CommentRepository) Delete(ctx context.Context, id uint64) error {
	return DB.WithContext(ctx).Delete(&model.Comment{}, id).Error
}

func (r *CommentRepository) CountByPost(ctx context.Context, postID uint64) (int64, error) {
	var n int64
	err := DB.WithContext(ctx).Model(&model.Comment{}).Where("post_id = ?", postID).Count(&n).Error
	return n, err
}
