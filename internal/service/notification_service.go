package service

import (
	"context"
	"errors"

	"github.com/heyZakaria/01Blog/internal/model"
	"github.com/heyZakaria/01Blog/internal/repository/mysql"

	"gorm.io/gorm"
)

type NotificationService struct {
	repo *mysql.NotificationRepository
}

func NewNotificationService() *NotificationService {
	return &NotificationService{repo: &mysql.NotificationRepository{}}
}

// Emit appends a notification inside the caller's transaction, so the
// fan-out commits or rolls back with the mutation that triggered it.
// Notifications are never created from a client request directly.
func (s *NotificationService) Emit(tx *gorm.DB, recipientID uint64, t model.NotificationType, message string, relatedUserID, relatedPostID *uint64) error {
	n := &model.Notification{
		RecipientID:   recipientID,
		Type:          t,
		Message:       message,
		RelatedUserID: relatedUserID,
		RelatedPostID: relatedPostID,
	}
	return s.repo.Create(tx, n)
}

func (s *NotificationService) ListFor(ctx context.Context, userID uint64) ([]NotificationView, error) {
	list, err := s.repo.ListByRecipient(ctx, userID)
	if err != nil {
		return nil, err
	}
	views := make([]NotificationView, 0, len(list))
	for i := range list {
		views = append(views, toNotificationView(&list[i]))
	}
	return views, nil
}

func (s *NotificationService) ListUnread(ctx context.Context, userID uint64) ([]NotificationView, error) {
	list, err := s.repo.ListUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	views := make([]NotificationView, 0, len(list))
	for i := range list {
		views = append(views, toNotificationView(&list[i]))
	}
	return views, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uint64) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

// MarkRead flips one notification; only the recipient may touch it.
func (s *NotificationService) MarkRead(ctx context.Context, id, actorID uint64) error {
	n, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotificationNotFound
	}
	if err != nil {
		return err
	}
	if n.RecipientID != actorID {
		return ErrForbidden
	}
	return s.repo.MarkRead(ctx, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint64) error {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *NotificationService) Delete(ctx context.Context, id, actorID uint64) error {
	n, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotificationNotFound
	}
	if err != nil {
		return err
	}
	if n.RecipientID != actorID {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

func (s *NotificationService) DeleteAllFor(ctx context.Context, userID uint64) error {
	return s.repo.DeleteAllByRecipient(ctx, userID)
}
