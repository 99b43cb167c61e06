package model

import "time"

// Like is a join row: its existence means "user liked post". The unique
// index is the tie-breaker for concurrent toggles on the same pair.
type Like struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	UserID    uint64 `gorm:"not null;uniqueIndex:uk_like_user_post" json:"user_id"`
	PostID    uint64 `gorm:"not null;index;uniqueIndex:uk_like_user_post" json:"post_id"`
	CreatedAt time.Time
}

func (Like) TableName() string {
	return "likes"
}
