package mysql

import (
	"context"

	"github.com/heyZakaria/01Blog/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct{}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return DB.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*model.User, error) {
	var user model.User
	err := DB.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := DB.WithContext(ctx).Order("id ASC").Find(&users).Error
	return users, err
}

func (r *UserRepository) Save(ctx context.Context, user *model.User) error {
	return DB.WithContext(ctx).Save(user).Error
}

func (r *UserRepository) UpdatePassword(ctx context.Context, user *model.User, hashed string) error {
	return DB.WithContext(ctx).Model(user).Update("password", hashed).Error
}

func (r *UserRepository) SetBanned(tx *gorm.DB, id uint64, banned bool) error {
	return tx.Model(&model.User{}).Where("id = ?", id).Update("banned", banned).Error
}

// DeleteCascade removes a user and every row that references them in one
// transaction. Returns the media filenames of the user's posts so the caller
// can clean up files after commit.
func (r *UserRepository) DeleteCascade(ctx context.Context, id uint64) ([]string, error) {
	var mediaFiles []string

	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var posts []model.Post
		if err := tx.Where("author_id = ?", id).Find(&posts).Error; err != nil {
			return err
		}

		postIDs := make([]uint64, 0, len(posts))
		for _, p := range posts {
			postIDs = append(postIDs, p.ID)
			if p.MediaURL != nil {
				mediaFiles = append(mediaFiles, *p.MediaURL)
			}
		}

		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&model.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&model.Like{}).Error; err != nil {
				return err
			}
			if err := tx.Where("related_post_id IN ?", postIDs).Delete(&model.Notification{}).Error; err != nil {
				return err
			}
			if err := tx.Where("author_id = ?", id).Delete(&model.Post{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("author_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("follower_id = ? OR following_id = ?", id, id).Delete(&model.Subscription{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipient_id = ? OR related_user_id = ?", id, id).Delete(&model.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("reporter_id = ? OR reported_user_id = ?", id, id).Delete(&model.Report{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model.User{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return mediaFiles, nil
}
