package dashboard

import (
	"context"
	"time"

	"solestride/domain"
)

// DashboardRepository contract interface
type DashboardRepository interface {
	SummaryBetween(ctx context.Context, start, end time.Time) (domain.TodaySummary, error)
	SalesByDay(ctx context.Context, start, end time.Time) ([]domain.DailyPoint, error)
	OrdersByDay(ctx context.Context, start, end time.Time) ([]domain.DailyPoint, error)
	TopBrands(ctx context.Context, start, end time.Time, limit int) ([]domain.NameCount, error)
	StatusDistribution(ctx context.Context) ([]domain.NameCount, error)
	PaymentMethods(ctx context.Context, start, end time.Time) ([]domain.NameCount, error)
}

type dashboardService struct {
	repo DashboardRepository
}

func NewDashboardService(repo DashboardRepository) *dashboardService {
	return &dashboardService{repo: repo}
}

func (s *dashboardService) TodaySummary(ctx context.Context) (domain.TodaySummary, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)

	return s.repo.SummaryBetween(ctx, start, end)
}

func (s *dashboardService) SalesPerformance(ctx context.Context, start, end time.Time) ([]domain.DailyPoint, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}

	return s.repo.SalesByDay(ctx, start, end.AddDate(0, 0, 1))
}

func (s *dashboardService) OrderPerformance(ctx context.Context, start, end time.Time) ([]domain.DailyPoint, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}

	return s.repo.OrdersByDay(ctx, start, end.AddDate(0, 0, 1))
}

func (s *dashboardService) TopSellingBrands(ctx context.Context, start, end time.Time, limit int) ([]domain.NameCount, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 5
	}

	return s.repo.TopBrands(ctx, start, end.AddDate(0, 0, 1), limit)
}

func (s *dashboardService) StatusDistribution(ctx context.Context) ([]domain.NameCount, error) {
	return s.repo.StatusDistribution(ctx)
}

func (s *dashboardService) PaymentMethods(ctx context.Context, start, end time.Time) ([]domain.NameCount, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}

	return s.repo.PaymentMethods(ctx, start, end.AddDate(0, 0, 1))
}

func validateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return domain.NewValidationError("start and end dates are required")
	}
	if end.Before(start) {
		return domain.NewValidationError("end date must not be before start date")
	}

	return nil
}
