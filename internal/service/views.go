package service

import (
	"time"

	"github.com/heyZakaria/01Blog/internal/model"
)

// Read models composed for the HTTP layer. Cross-entity fields (counts,
// liked flag) are computed per request, never cached.

type UserView struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PostView struct {
	ID            uint64    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Author        UserView  `json:"author"`
	LikeCount     int64     `json:"like_count"`
	CommentCount  int64     `json:"comment_count"`
	LikedByViewer bool      `json:"liked_by_current_user"`
	MediaURL      *string   `json:"media_url,omitempty"`
	MediaType     *string   `json:"media_type,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CommentView struct {
	ID        uint64    `json:"id"`
	Content   string    `json:"content"`
	PostID    uint64    `json:"post_id"`
	Author    UserView  `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type NotificationView struct {
	ID            uint64                 `json:"id"`
	Type          model.NotificationType `json:"type"`
	Message       string                 `json:"message"`
	RelatedUser   *UserView              `json:"related_user,omitempty"`
	RelatedPostID *uint64                `json:"related_post_id,omitempty"`
	IsRead        bool                   `json:"is_read"`
	CreatedAt     time.Time              `json:"created_at"`
}

type ReportView struct {
	ID           uint64             `json:"id"`
	Reporter     UserView           `json:"reporter"`
	ReportedUser UserView           `json:"reported_user"`
	Reason       string             `json:"reason"`
	Status       model.ReportStatus `json:"status"`
	AdminNotes   string             `json:"admin_notes,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	ResolvedAt   *time.Time         `json:"resolved_at,omitempty"`
}

func toUserView(u *model.User) UserView {
	return UserView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toCommentView(c *model.Comment) CommentView {
	v := CommentView{
		ID:        c.ID,
		Content:   c.Content,
		PostID:    c.PostID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.Author != nil {
		v.Author = toUserView(c.Author)
	}
	return v
}

func toNotificationView(n *model.Notification) NotificationView {
	v := NotificationView{
		ID:            n.ID,
		Type:          n.Type,
		Message:       n.Message,
		RelatedPostID: n.RelatedPostID,
		IsRead:        n.IsRead,
		CreatedAt:     n.CreatedAt,
	}
	if n.RelatedUser != nil {
		u := toUserView(n.RelatedUser)
		v.RelatedUser = &u
	}
	return v
}

func toReportView(r *model.Report) ReportView {
	v := ReportView{
		ID:         r.ID,
		Reason:     r.Reason,
		Status:     r.Status,
		AdminNotes: r.AdminNotes,
		CreatedAt:  r.CreatedAt,
		ResolvedAt: r.ResolvedAt,
	}
	if r.Reporter != nil {
		v.Reporter = toUserView(r.Reporter)
	}
	if r.ReportedUser != nil {
		v.ReportedUser = toUserView(r.ReportedUser)
	}
	return v
}
