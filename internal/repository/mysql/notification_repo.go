package mysql

import (
	"context"

	"github.com/heyZakaria/01Blog/internal/model"

	"gorm.io/gorm"
)

type NotificationRepository struct{}

// Create takes the caller's transaction: notifications are written in the
// same transaction as the mutation that caused them.
func (r *NotificationRepository) Create(tx *gorm.DB, n *model.Notification) error {
	return tx.Create(n).Error
}

func (r *NotificationRepository) FindByID(ctx context.Context, id uint64) (*model.Notification, error) {
	var n model.Notification
	err := DB.WithContext(ctx).First(&n, id).Error
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepository) ListByRecipient(ctx context.Context, userID uint64) ([]model.Notification, error) {
	var list []model.Notification
	err := DB.WithContext(ctx).Preload("RelatedUser").
		Where("recipient_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&list).Error
	return list, err
}

func (r *NotificationRepository) ListUnread(ctx context.Context, userID uint64) ([]model.Notification, error) {
	var list []model.Notification
	err := DB.WithContext(ctx).Preload("RelatedUser").
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Order("created_at DESC, id DESC").
		Find(&list).Error
	return list, err
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uint64) (int64, error) {
	var n int64
	err := DB.WithContext(ctx).Model(&model.Notification{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Count(&n).Error
	return n, err
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id uint64) error {
	return DB.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ?", id).Update("is_read", true).Error
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uint64) error {
	return DB.WithContext(ctx).Model(&model.Notification{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

func (r *NotificationRepository) Delete(ctx context.Context, id uint64) error {
	return DB.WithContext(ctx).Delete(&model.Notification{}, id).Error
}

func (r *NotificationRepository) DeleteAllByRecipient(ctx context.Context, userID uint64) error {
	return DB.WithContext(ctx).Where("recipient_id = ?", userID).Delete(&model.Notification{}).Error
}
