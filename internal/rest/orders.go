package rest

import (
	"context"
	"net/http"
	"time"

	"solestride/business/orders"
	"solestride/domain"
	"solestride/pkg/logger"
	"solestride/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	OrdersHandler struct {
		validate      *validator.Validate
		ordersService OrdersService
		timeout       time.Duration
	}

	OrdersService interface {
		PlaceOrder(ctx context.Context, input orders.PlaceOrderInput) (domain.Order, error)
		GetUserOrders(ctx context.Context, userID string) ([]domain.Order, error)
		GetOrder(ctx context.Context, orderID string) (domain.Order, error)
		GetAllOrders(ctx context.Context) ([]domain.Order, error)
		UpdateStatus(ctx context.Context, orderID, newStatus string) (domain.Order, error)
		ConfirmReceived(ctx context.Context, orderID, userID string) (domain.Order, error)
		UpdateDetails(ctx context.Context, orderID, userID, name, phoneNum, address string) (domain.Order, error)
	}

	OrderLineInput struct {
		ProductID    string `json:"product_id" validate:"required"`
		SelectedSize int    `json:"selected_size" validate:"required"`
		Quantity     int    `json:"quantity" validate:"required,gt=0"`
	}

	PlaceOrderInput struct {
		Name          string           `json:"name" validate:"required"`
		Email         string           `json:"email" validate:"required,email"`
		PhoneNum      string           `json:"phone_num"`
		Address       string           `json:"address" validate:"required"`
		PaymentMethod string           `json:"payment_method" validate:"required"`
		Items         []OrderLineInput `json:"items" validate:"required,min=1,dive"`
	}

	UpdateStatusInput struct {
		Status string `json:"status" validate:"required"`
	}

	UpdateDetailsInput struct {
		Name     string `json:"name" validate:"required"`
		PhoneNum string `json:"phone_num"`
		Address  string `json:"address" validate:"required"`
	}
)

func NewOrdersHandler(ordersService OrdersService) *OrdersHandler {
	return &OrdersHandler{
		validate:      validator.New(),
		ordersService: ordersService,
		timeout:       10 * time.Second,
	}
}

func (h *OrdersHandler) PlaceOrder(c echo.Context) error {
	userID := actorID(c)

	var request PlaceOrderInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate order request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	lines := make([]orders.PlaceOrderLine, 0, len(request.Items))
	for _, item := range request.Items {
		lines = append(lines, orders.PlaceOrderLine{
			ProductID:    item.ProductID,
			SelectedSize: item.SelectedSize,
			Quantity:     item.Quantity,
		})
	}

	order, err := h.ordersService.PlaceOrder(ctx, orders.PlaceOrderInput{
		UserID:        userID,
		Name:          request.Name,
		Email:         request.Email,
		PhoneNum:      request.PhoneNum,
		Address:       request.Address,
		PaymentMethod: request.PaymentMethod,
		Lines:         lines,
	})
	if err != nil {
		logger.Error("Failed to place order", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	metrics.OrdersPlacedTotal.Inc()

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(order))
}

func (h *OrdersHandler) GetMyOrders(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	userOrders, err := h.ordersService.GetUserOrders(ctx, actorID(c))
	if err != nil {
		logger.Error("Failed to get user orders", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(userOrders))
}

// GetOrderByID returns one order. Customers only see their own orders;
// an order belonging to someone else reads as not found.
func (h *OrdersHandler) GetOrderByID(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.GetOrder(ctx, c.Param("id"))
	if err != nil {
		logger.Error("Failed to get order by id", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	role := actorRole(c)
	if role != domain.RoleAdmin && role != domain.RoleOwner && order.UserID != actorID(c) {
		return c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(order))
}

func (h *OrdersHandler) GetAllOrders(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	allOrders, err := h.ordersService.GetAllOrders(ctx)
	if err != nil {
		logger.Error("Failed to get all orders", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(allOrders))
}

func (h *OrdersHandler) UpdateStatus(c echo.Context) error {
	var request UpdateStatusInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate status request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.UpdateStatus(ctx, c.Param("id"), request.Status)
	if err != nil {
		logger.Error("Failed to update order status", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	metrics.OrderStatusUpdates.WithLabelValues(order.Status).Inc()

	return c.JSON(http.StatusOK, fres.Response.StatusOK(order))
}

// CancelOrder lets a customer cancel their own order while it has not
// been delivered yet.
func (h *OrdersHandler) CancelOrder(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.GetOrder(ctx, c.Param("id"))
	if err != nil {
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}
	if order.UserID != actorID(c) {
		return c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
	}

	cancelled, err := h.ordersService.UpdateStatus(ctx, order.OrderID, domain.StatusCancelled)
	if err != nil {
		logger.Error("Failed to cancel order", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	metrics.OrderStatusUpdates.WithLabelValues(domain.StatusCancelled).Inc()

	return c.JSON(http.StatusOK, fres.Response.StatusOK(cancelled))
}

func (h *OrdersHandler) ConfirmReceived(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.ConfirmReceived(ctx, c.Param("id"), actorID(c))
	if err != nil {
		logger.Error("Failed to confirm order received", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	metrics.OrderStatusUpdates.WithLabelValues(domain.StatusReceived).Inc()

	return c.JSON(http.StatusOK, fres.Response.StatusOK(order))
}

func (h *OrdersHandler) UpdateDetails(c echo.Context) error {
	var request UpdateDetailsInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate details request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.UpdateDetails(ctx, c.Param("id"), actorID(c),
		request.Name, request.PhoneNum, request.Address)
	if err != nil {
		logger.Error("Failed to update order details", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(order))
}
