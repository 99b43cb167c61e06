package mysql

import (
	"context"

	"github.com/heyZakaria/01Blog/internal/model"

	"gorm.io/gorm"
)

type SubscriptionRepository struct{}

func (r *SubscriptionRepository) Create(tx *gorm.DB, sub *model.Subscription) error {
	return tx.Create(sub).Error
}

func (r *SubscriptionRepository) DeleteByPair(ctx context.Context, followerID, followingID uint64) (bool, error) {
	res := DB.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&model.Subscription{})
	return res.RowsAffected > 0, res.Error
}

func (r *SubscriptionRepository) Exists(ctx context.Context, followerID, followingID uint64) (bool, error) {
	var n int64
	err := DB.WithContext(ctx).Model(&model.Subscription{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&n).Error
	return n > 0, err
}

// FollowersOf returns the users following the given user.
func (r *SubscriptionRepository) FollowersOf(ctx context.Context, userID uint64) ([]model.User, error) {
	var users []model.User
	err := DB.WithContext(ctx).Model(&model.User{}).
		Joins("JOIN subscriptions ON subscriptions.follower_id = users.id").
		Where("subscriptions.following_id = ?", userID).
		Order("subscriptions.id DESC").
		Find(&users).Error
	return users, err
}

// FollowingOf returns the users the given user follows.
func (r *SubscriptionRepository) FollowingOf(ctx context.Context, userID uint64) ([]model.User, error) {
	var users []model.User
	err := DB.WithContext(ctx).Model(&model.User{}).
		Joins("JOIN subscriptions ON subscriptions.following_id = users.id").
		Where("subscriptions.follower_id = ?", userID).
		Order("subscriptions.id DESC").
		Find(&users).Error
	return users, err
}

func (r *SubscriptionRepository) FollowingIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	var ids []uint64
	err := DB.WithContext(ctx).Model(&model.Subscription{}).
		Where("follower_id = ?", userID).
		Pluck("following_id", &ids).Error
	return ids, err
}

func (r *SubscriptionRepository) FollowerIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	var ids []uint64
	err := DB.WithContext(ctx).Model(&model.Subscription{}).
		Where("following_id = ?", userID).
		Pluck("follower_id", &ids).Error
	return ids, err
}

func (r *SubscriptionRepository) CountFollowers(ctx context.Context, userID uint64) (int64, error) {
	var n int64
	err := DB.WithContext(ctx).Model(&model.Subscription{}).
		Where("following_id = ?", userID).Count(&n).Error
	return n, err
}

func (r *SubscriptionRepository) CountFollowing(ctx context.Context, userID uint64) (int64, error) {
	var n int64
	err := DB.WithContext(ctx).Model(&model.Subscription{}).
		Where("follower_id = ?", userID).Count(&n).Error
	return n, err
}
