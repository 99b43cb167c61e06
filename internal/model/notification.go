package model

import "time"

type NotificationType string

const (
	NotificationNewPost     NotificationType = "NEW_POST"
	NotificationPostLike    NotificationType = "POST_LIKE"
	NotificationPostComment NotificationType = "POST_COMMENT"
	NotificationNewFollower NotificationType = "NEW_FOLLOWER"
)

// Notification rows are only ever created as a side effect of another
// mutation, never directly by a client request.
type Notification struct {
	ID            uint64           `gorm:"primaryKey" json:"id"`
	RecipientID   uint64           `gorm:"not null;index" json:"recipient_id"`
	Type          NotificationType `gorm:"size:32;not null" json:"type"`
	Message       string           `gorm:"size:255;not null" json:"message"`
	RelatedUserID *uint64          `json:"related_user_id,omitempty"`
	RelatedUser   *User            `gorm:"foreignKey:RelatedUserID" json:"related_user,omitempty"`
	RelatedPostID *uint64          `json:"related_post_id,omitempty"`
	IsRead        bool             `gorm:"not null;default:false;index" json:"is_read"`
	CreatedAt     time.Time        `json:"created_at"`
}
