package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"solestride/domain"
	"solestride/pkg/logger"
	"solestride/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type RecommendationService interface {
	Recommend(ctx context.Context, userID string, topK int) ([]domain.Product, error)
}

type RecommendationHandler struct {
	recoService RecommendationService
	timeout     time.Duration
}

func NewRecommendationHandler(recoService RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		recoService: recoService,
		timeout:     10 * time.Second,
	}
}

// Recommend serves personalized picks for the logged-in user. Guests and
// users without purchase history get an empty list, still with 200, so
// the storefront can always render the section.
func (h *RecommendationHandler) Recommend(c echo.Context) error {
	start := time.Now()
	defer func() {
		metrics.RecommendDuration.Observe(time.Since(start).Seconds())
		metrics.RecommendTotal.Inc()
	}()

	topK := 0
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid limit"})
		}
		topK = n
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.recoService.Recommend(ctx, actorID(c), topK)
	if err != nil {
		logger.Error("Failed to build recommendations", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(products))
}
