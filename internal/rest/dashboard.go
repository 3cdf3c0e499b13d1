package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"solestride/domain"
	"solestride/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type DashboardService interface {
	TodaySummary(ctx context.Context) (domain.TodaySummary, error)
	SalesPerformance(ctx context.Context, start, end time.Time) ([]domain.DailyPoint, error)
	OrderPerformance(ctx context.Context, start, end time.Time) ([]domain.DailyPoint, error)
	TopSellingBrands(ctx context.Context, start, end time.Time, limit int) ([]domain.NameCount, error)
	StatusDistribution(ctx context.Context) ([]domain.NameCount, error)
	PaymentMethods(ctx context.Context, start, end time.Time) ([]domain.NameCount, error)
}

type DashboardHandler struct {
	dashboardService DashboardService
	timeout          time.Duration
}

func NewDashboardHandler(dashboardService DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		timeout:          10 * time.Second,
	}
}

// dateRange parses the start/end query params as YYYY-MM-DD.
func dateRange(c echo.Context) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", c.QueryParam("start"))
	if err != nil {
		return time.Time{}, time.Time{}, domain.NewValidationError("invalid start date, expected YYYY-MM-DD")
	}

	end, err := time.Parse("2006-01-02", c.QueryParam("end"))
	if err != nil {
		return time.Time{}, time.Time{}, domain.NewValidationError("invalid end date, expected YYYY-MM-DD")
	}

	return start, end, nil
}

func (h *DashboardHandler) TodaySummary(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	summary, err := h.dashboardService.TodaySummary(ctx)
	if err != nil {
		logger.Error("Failed to load today summary", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(summary))
}

func (h *DashboardHandler) SalesPerformance(c echo.Context) error {
	start, end, err := dateRange(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	points, err := h.dashboardService.SalesPerformance(ctx, start, end)
	if err != nil {
		logger.Error("Failed to load sales performance", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(points))
}

func (h *DashboardHandler) OrderPerformance(c echo.Context) error {
	start, end, err := dateRange(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	points, err := h.dashboardService.OrderPerformance(ctx, start, end)
	if err != nil {
		logger.Error("Failed to load order performance", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(points))
}

func (h *DashboardHandler) TopSellingBrands(c echo.Context) error {
	start, end, err := dateRange(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid limit"})
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	brands, err := h.dashboardService.TopSellingBrands(ctx, start, end, limit)
	if err != nil {
		logger.Error("Failed to load top brands", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(brands))
}

func (h *DashboardHandler) StatusDistribution(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	distribution, err := h.dashboardService.StatusDistribution(ctx)
	if err != nil {
		logger.Error("Failed to load status distribution", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(distribution))
}

func (h *DashboardHandler) PaymentMethods(c echo.Context) error {
	start, end, err := dateRange(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	methods, err := h.dashboardService.PaymentMethods(ctx, start, end)
	if err != nil {
		logger.Error("Failed to load payment methods", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(methods))
}
