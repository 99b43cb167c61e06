package model

import "time"

type Post struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:150;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	AuthorID    uint64    `gorm:"not null;index:idx_posts_author_time,priority:1" json:"author_id"`
	Author      *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	MediaURL    *string   `gorm:"size:255" json:"media_url,omitempty"`
	MediaType   *string   `gorm:"size:16" json:"media_type,omitempty"`
	CreatedAt   time.Time `gorm:"index:idx_posts_author_time,priority:2,sort:desc" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
