package mysql

import (
	"context"

	"github.com/heyZakaria/01Blog/internal/model"

	"gorm.io/gorm"
)

type PostRepository struct{}

func (r *PostRepository) Create(tx *gorm.DB, post *model.Post) error {
	return tx.Create(post).Error
}

func (r *PostRepository) FindByID(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := DB.WithContext(ctx).Preload("Author").First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostRepository) Exists(ctx context.Context, id uint64) (bool, error) {
	var n int64
	err := DB.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *PostRepository) FindAll(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	err := DB.WithContext(ctx).Preload("Author").
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	return posts, err
}

func (r *PostRepository) FindByAuthor(ctx context.Context, authorID uint64) ([]model.Post, error) {
	var posts []model.Post
	err := DB.WithContext(ctx).Preload("Author").
		Where("author_id = ?", authorID).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	return posts, err
}

// FindFeed returns posts authored by any of the given users, newest first.
func (r *PostRepository) FindFeed(ctx context.Context, authorIDs []uint64) ([]model.Post, error) {
	var posts []model.Post
	err := DB.WithContext(ctx).Preload("Author").
		Where("author_id IN ?", authorIDs).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	return posts, err
}

func (r *PostRepository) Save(ctx context.Context, post *model.Post) error {
	return DB.WithContext(ctx).Omit("Author").Save(post).Error
}

// Delete removes the post and its dependent rows in one transaction.
func (r *PostRepository) Delete(ctx context.Context, id uint64) error {
	return DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("related_post_id = ?", id).Delete(&model.Notification{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Post{}, id).Error
	})
}
