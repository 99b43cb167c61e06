package service

import (
	"context"
	"time"

	"github.com/heyZakaria/01Blog/internal/model"
	"github.com/heyZakaria/01Blog/internal/repository/mysql"
)

type StatsService struct {
	stats   *mysql.StatsRepository
	reports *mysql.ReportRepository
}

func NewStatsService() *StatsService {
	return &StatsService{
		stats:   &mysql.StatsRepository{},
		reports: &mysql.ReportRepository{},
	}
}

type Overview struct {
	mysql.Totals
	PendingReports int64 `json:"pending_reports"`
	PostsLastWeek  int64 `json:"posts_last_week"`
}

func (s *StatsService) Overview(ctx context.Context) (*Overview, error) {
	totals, err := s.stats.Totals(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.reports.CountByStatus(ctx, model.ReportPending)
	if err != nil {
		return nil, err
	}
	recent, err := s.stats.PostsSince(ctx, time.Now().AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}
	return &Overview{Totals: *totals, PendingReports: pending, PostsLastWeek: recent}, nil
}
