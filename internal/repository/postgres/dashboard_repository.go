package postgres

import (
	"context"
	"fmt"
	"time"

	"solestride/domain"

	"gorm.io/gorm"
)

// DashboardRepository aggregates order rows for the owner dashboard. The
// queries run raw SQL because they group over jsonb line items and date
// buckets that gorm's query builder does not express well. Cancelled
// orders are excluded from every revenue figure.
type DashboardRepository struct {
	DB *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{
		DB: db,
	}
}

func (r *DashboardRepository) SummaryBetween(ctx context.Context, start, end time.Time) (domain.TodaySummary, error) {
	if err := ctx.Err(); err != nil {
		return domain.TodaySummary{}, fmt.Errorf("context error: %w", err)
	}

	var summary domain.TodaySummary
	err := r.DB.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total_price), 0) AS total_sales,
		       COUNT(*)                      AS total_orders
		FROM orders
		WHERE created_at >= ? AND created_at < ? AND status <> ?`,
		start, end, domain.StatusCancelled,
	).Scan(&summary).Error
	if err != nil {
		return domain.TodaySummary{}, fmt.Errorf("failed to load sales summary: %w", err)
	}

	return summary, nil
}

func (r *DashboardRepository) SalesByDay(ctx context.Context, start, end time.Time) ([]domain.DailyPoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var points []domain.DailyPoint
	err := r.DB.WithContext(ctx).Raw(`
		SELECT to_char(created_at, 'YYYY-MM-DD') AS day,
		       SUM(total_price)                  AS total
		FROM orders
		WHERE created_at >= ? AND created_at < ? AND status <> ?
		GROUP BY 1
		ORDER BY 1`,
		start, end, domain.StatusCancelled,
	).Scan(&points).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load sales per day: %w", err)
	}

	return points, nil
}

func (r *DashboardRepository) OrdersByDay(ctx context.Context, start, end time.Time) ([]domain.DailyPoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var points []domain.DailyPoint
	err := r.DB.WithContext(ctx).Raw(`
		SELECT to_char(created_at, 'YYYY-MM-DD') AS day,
		       COUNT(*)                          AS count
		FROM orders
		WHERE created_at >= ? AND created_at < ? AND status <> ?
		GROUP BY 1
		ORDER BY 1`,
		start, end, domain.StatusCancelled,
	).Scan(&points).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load orders per day: %w", err)
	}

	return points, nil
}

// TopBrands unnests the jsonb line items and sums quantities per brand.
func (r *DashboardRepository) TopBrands(ctx context.Context, start, end time.Time, limit int) ([]domain.NameCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []domain.NameCount
	err := r.DB.WithContext(ctx).Raw(`
		SELECT item->>'brand'                   AS name,
		       SUM((item->>'quantity')::int)    AS value
		FROM orders,
		     jsonb_array_elements(line_items) AS item
		WHERE created_at >= ? AND created_at < ?
		  AND status <> ?
		  AND COALESCE(item->>'brand', '') <> ''
		GROUP BY 1
		ORDER BY value DESC, name ASC
		LIMIT ?`,
		start, end, domain.StatusCancelled, limit,
	).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load top brands: %w", err)
	}

	return rows, nil
}

func (r *DashboardRepository) StatusDistribution(ctx context.Context) ([]domain.NameCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []domain.NameCount
	err := r.DB.WithContext(ctx).Raw(`
		SELECT status   AS name,
		       COUNT(*) AS value
		FROM orders
		GROUP BY status
		ORDER BY value DESC, name ASC`,
	).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load status distribution: %w", err)
	}

	return rows, nil
}

func (r *DashboardRepository) PaymentMethods(ctx context.Context, start, end time.Time) ([]domain.NameCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []domain.NameCount
	err := r.DB.WithContext(ctx).Raw(`
		SELECT payment_method AS name,
		       COUNT(*)       AS value
		FROM orders
		WHERE created_at >= ? AND created_at < ? AND status <> ?
		GROUP BY payment_method
		ORDER BY value DESC, name ASC`,
		start, end, domain.StatusCancelled,
	).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load payment method distribution: %w", err)
	}

	return rows, nil
}
