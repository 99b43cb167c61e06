package model

import "time"

// Subscription is a follow edge: follower -> following.
type Subscription struct {
	ID          uint64 `gorm:"primaryKey" json:"id"`
	FollowerID  uint64 `gorm:"not null;index;uniqueIndex:uk_follower_following" json:"follower_id"`
	FollowingID uint64 `gorm:"not null;index;uniqueIndex:uk_follower_following" json:"following_id"`
	CreatedAt   time.Time
}
