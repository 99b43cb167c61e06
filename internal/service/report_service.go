package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/heyZakaria/01Blog/internal/model"
	"github.com/heyZakaria/01Blog/internal/repository/mysql"

	"gorm.io/gorm"
)

type ReportService struct {
	repo  *mysql.ReportRepository
	users *mysql.UserRepository
}

func NewReportService() *ReportService {
	return &ReportService{
		repo:  &mysql.ReportRepository{},
		users: &mysql.UserRepository{},
	}
}

// Create files a report against a user. A reporter may have at most one open
// report per target; the unique index backs up the pre-check under
// concurrency.
func (s *ReportService) Create(ctx context.Context, reporterID, reportedUserID uint64, reason string) (*ReportView, error) {
	if reporterID == reportedUserID {
		return nil, ErrSelfReport
	}
	if n := utf8.RuneCountInString(reason); n < 5 || n > 1000 {
		return nil, fmt.Errorf("%w: reason must be 5-1000 characters", ErrValidation)
	}

	reporter, err := s.users.FindByID(ctx, reporterID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	reported, err := s.users.FindByID(ctx, reportedUserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	open, err := s.repo.ExistsOpen(ctx, reporterID, reportedUserID)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, ErrDuplicateReport
	}

	active := true
	report := &model.Report{
		ReporterID:     reporterID,
		ReportedUserID: reportedUserID,
		Reason:         reason,
		Status:         model.ReportPending,
		Active:         &active,
	}
	if err := s.repo.Create(ctx, report); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateReport
		}
		return nil, err
	}

	report.Reporter = reporter
	report.ReportedUser = reported
	view := toReportView(report)
	return &view, nil
}

// Resolve moves a report to a new status with admin notes, optionally banning
// the reported user. Terminal reports reject further transitions.
func (s *ReportService) Resolve(ctx context.Context, id uint64, status, notes string, banUser bool) (*ReportView, error) {
	newStatus, err := parseReportStatus(status)
	if err != nil {
		return nil, err
	}

	report, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}
	if report.Status.Terminal() {
		return nil, ErrReportClosed
	}

	report.Status = newStatus
	report.AdminNotes = notes
	if newStatus.Terminal() {
		now := time.Now()
		report.ResolvedAt = &now
		report.Active = nil
	}

	if err := s.repo.Resolve(ctx, report, banUser); err != nil {
		return nil, err
	}
	view := toReportView(report)
	return &view, nil
}

func (s *ReportService) GetByID(ctx context.Context, id uint64) (*ReportView, error) {
	report, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}
	view := toReportView(report)
	return &view, nil
}

func (s *ReportService) ListAll(ctx context.Context) ([]ReportView, error) {
	reports, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toReportViews(reports), nil
}

func (s *ReportService) ListByStatus(ctx context.Context, status string) ([]ReportView, error) {
	parsed, err := parseReportStatus(status)
	if err != nil {
		return nil, err
	}
	reports, err := s.repo.FindByStatus(ctx, parsed)
	if err != nil {
		return nil, err
	}
	return toReportViews(reports), nil
}

func (s *ReportService) PendingCount(ctx context.Context) (int64, error) {
	return s.repo.CountByStatus(ctx, model.ReportPending)
}

func (s *ReportService) Delete(ctx context.Context, id uint64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReportNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func parseReportStatus(s string) (model.ReportStatus, error) {
	switch model.ReportStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case model.ReportPending:
		return model.ReportPending, nil
	case model.ReportReviewed:
		return model.ReportReviewed, nil
	case model.ReportResolved:
		return model.ReportResolved, nil
	case model.ReportDismissed:
		return model.ReportDismissed, nil
	default:
		return "", fmt.Errorf("%w: unknown report status %q", ErrValidation, s)
	}
}

func toReportViews(reports []model.Report) []ReportView {
	views := make([]ReportView, 0, len(reports))
	for i := range reports {
		views = append(views, toReportView(&reports[i]))
	}
	return views
}
