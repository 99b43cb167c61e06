package mysql

import (
	"context"

	"github.com/heyZakaria/01Blog/internal/model"

	"gorm.io/gorm"
)

type ReportRepository struct{}

func (r *ReportRepository) Create(ctx context.Context, report *model.Report) error {
	return DB.WithContext(ctx).Create(report).Error
}

func (r *ReportRepository) FindByID(ctx context.Context, id uint64) (*model.Report, error) {
	var report model.Report
	err := DB.WithContext(ctx).Preload("Reporter").Preload("ReportedUser").
		First(&report, id).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// ExistsOpen reports whether the reporter already has a non-terminal report
// against the target.
func (r *ReportRepository) ExistsOpen(ctx context.Context, reporterID, reportedUserID uint64) (bool, error) {
	var n int64
	err := DB.WithContext(ctx).Model(&model.Report{}).
		Where("reporter_id = ? AND reported_user_id = ? AND active IS NOT NULL", reporterID, reportedUserID).
		Count(&n).Error
	return n > 0, err
}

func (r *ReportRepository) FindAll(ctx context.Context) ([]model.Report, error) {
	var reports []model.Report
	err := DB.WithContext(ctx).Preload("Reporter").Preload("ReportedUser").
		Order("created_at DESC, id DESC").
		Find(&reports).Error
	return reports, err
}

func (r *ReportRepository) FindByStatus(ctx context.Context, status model.ReportStatus) ([]model.Report, error) {
	var reports []model.Report
	err := DB.WithContext(ctx).Preload("Reporter").Preload("ReportedUser").
		Where("status = ?", status).
		Order("created_at DESC, id DESC").
		Find(&reports).Error
	return reports, err
}

func (r *ReportRepository) CountByStatus(ctx context.Context, status model.ReportStatus) (int64, error) {
	var n int64
	err := DB.WithContext(ctx).Model(&model.Report{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

// Resolve persists the updated report and, when requested, bans the
// reported user in the same transaction.
func (r *ReportRepository) Resolve(ctx context.Context, report *model.Report, banUser bool) error {
	return DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Reporter", "ReportedUser").Save(report).Error; err != nil {
			return err
		}
		if banUser {
			users := &UserRepository{}
			return users.SetBanned(tx, report.ReportedUserID, true)
		}
		return nil
	})
}

func (r *ReportRepository) Delete(ctx context.Context, id uint64) error {
	return DB.WithContext(ctx).Delete(&model.Report{}, id).Error
}
