package mysql

import (
	"context"
	"time"

	"github.com/heyZakaria/01Blog/internal/model"
)

type StatsRepository struct{}

type Totals struct {
	Users         int64 `json:"users"`
	BannedUsers   int64 `json:"banned_users"`
	Posts         int64 `json:"posts"`
	Comments      int64 `json:"comments"`
	Likes         int64 `json:"likes"`
	Subscriptions int64 `json:"subscriptions"`
}

func (r *StatsRepository) Totals(ctx context.Context) (*Totals, error) {
	db := DB.WithContext(ctx)
	var t Totals

	if err := db.Model(&model.User{}).Count(&t.Users).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.User{}).Where("banned = ?", true).Count(&t.BannedUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Post{}).Count(&t.Posts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Comment{}).Count(&t.Comments).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Like{}).Count(&t.Likes).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Subscription{}).Count(&t.Subscriptions).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// PostsSince counts posts created at or after the given time.
func (r *StatsRepository) PostsSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := DB.WithContext(ctx).Model(&model.Post{}).
		Where("created_at >= ?", since).Count(&n).Error
	return n, err
}
