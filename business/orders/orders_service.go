package orders

import (
	"context"
	"errors"
	"fmt"

	"solestride/business/seqid"
	"solestride/domain"
	"solestride/pkg/logger"

	"github.com/google/uuid"
)

// How many times order creation re-reads the highest order ID after a
// uniqueness collision before giving up.
const maxIDAttempts = 3

const (
	subjectOrderConfirmation = "Order %s confirmed"
	bodyOrderConfirmation    = "Hi %v, thanks for your order %v. Total: %.2f. We'll email you again when it ships."
	subjectStatusUpdate      = "Order %s update"
	bodyStatusUpdate         = "Hi %v, your order %v is now %v."
)

// OrdersRepository contract interface
type OrdersRepository interface {
	CreateWithStockDecrement(ctx context.Context, order *domain.Order, decrements []domain.StockDecrement) error
	FindByOrderID(ctx context.Context, orderID string) (domain.Order, error)
	FindByUser(ctx context.Context, userID string) ([]domain.Order, error)
	FindAll(ctx context.Context) ([]domain.Order, error)
	FindLastOrderID(ctx context.Context) (string, error)
	UpdateStatus(ctx context.Context, orderID, status string) error
	UpdateDetails(ctx context.Context, orderID, name, phoneNum, address string) error
}

// ProductRepository contract interface
type ProductRepository interface {
	FindByProductID(ctx context.Context, productID string) (domain.Product, error)
}

// NotificationRepository contract interface
type NotificationRepository interface {
	SendEmail(toName, toEmail, subject, message string) (err error)
}

type OrdersService struct {
	ordersRepo  OrdersRepository
	productRepo ProductRepository
	notifRepo   NotificationRepository
}

func NewOrdersService(ordersRepo OrdersRepository, productRepo ProductRepository, notifRepo NotificationRepository) *OrdersService {
	return &OrdersService{
		ordersRepo:  ordersRepo,
		productRepo: productRepo,
		notifRepo:   notifRepo,
	}
}

type PlaceOrderLine struct {
	ProductID    string
	SelectedSize int
	Quantity     int
}

type PlaceOrderInput struct {
	UserID        string
	Name          string
	Email         string
	PhoneNum      string
	Address       string
	PaymentMethod string
	Status        string
	Lines         []PlaceOrderLine
}

// PlaceOrder snapshots each requested product, decrements stock and
// inserts the order in a single transaction. Stock is taken conditionally
// (quantity >= requested in the same update), so two concurrent orders
// for the last pair can never drive stock negative: one succeeds, the
// other gets an insufficient-stock error.
func (s *OrdersService) PlaceOrder(ctx context.Context, input PlaceOrderInput) (domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("context error: %w", err)
	}

	if len(input.Lines) == 0 {
		return domain.Order{}, domain.NewValidationError("order must contain at least one item")
	}

	status := input.Status
	if status == "" {
		status = domain.StatusPending
	}
	if !IsValidStatus(status) {
		return domain.Order{}, domain.NewValidationError("invalid order status %q", status)
	}

	items := make([]domain.OrderItem, 0, len(input.Lines))
	decrements := make([]domain.StockDecrement, 0, len(input.Lines))
	total := 0.0

	for _, line := range input.Lines {
		if line.Quantity <= 0 {
			return domain.Order{}, domain.NewValidationError("quantity for product %s must be positive", line.ProductID)
		}

		product, err := s.productRepo.FindByProductID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.Order{}, domain.NewValidationError("product %s not found", line.ProductID)
			}
			return domain.Order{}, err
		}

		if !hasSize(product.Sizes, line.SelectedSize) {
			return domain.Order{}, domain.NewValidationError("product %s is not available in size %d", line.ProductID, line.SelectedSize)
		}

		if product.Quantity < line.Quantity {
			return domain.Order{}, domain.NewValidationError("insufficient stock for %s", product.Name)
		}

		subprice := product.Price * float64(line.Quantity)
		total += subprice

		items = append(items, domain.OrderItem{
			ProductID:    product.ProductID,
			Name:         product.Name,
			Description:  product.Description,
			Images:       product.Images,
			Price:        product.Price,
			Quantity:     line.Quantity,
			SelectedSize: line.SelectedSize,
			Brand:        product.Brand,
			ShoeType:     product.ShoeType,
			Gender:       product.Gender,
			Subprice:     subprice,
		})
		decrements = append(decrements, domain.StockDecrement{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	var lastErr error
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		lastID, err := s.ordersRepo.FindLastOrderID(ctx)
		if err != nil {
			return domain.Order{}, err
		}

		orderID, err := seqid.Order.Next(lastID)
		if err != nil {
			return domain.Order{}, err
		}

		order := domain.Order{
			OrderID:       orderID,
			UserID:        input.UserID,
			Name:          input.Name,
			Email:         input.Email,
			PhoneNum:      input.PhoneNum,
			Address:       input.Address,
			Items:         items,
			TotalPrice:    total,
			Status:        status,
			PaymentMethod: input.PaymentMethod,
			PaymentRef:    uuid.NewString(),
		}

		err = s.ordersRepo.CreateWithStockDecrement(ctx, &order, decrements)
		if errors.Is(err, domain.ErrDuplicateID) {
			// Another request took this ID between our read and insert.
			lastErr = err
			continue
		}
		if errors.Is(err, domain.ErrInsufficientStock) {
			return domain.Order{}, domain.NewValidationError("insufficient stock")
		}
		if err != nil {
			return domain.Order{}, err
		}

		s.dispatchEmail(order.Name, order.Email,
			fmt.Sprintf(subjectOrderConfirmation, order.OrderID),
			fmt.Sprintf(bodyOrderConfirmation, order.Name, order.OrderID, order.TotalPrice),
		)

		return order, nil
	}

	logger.Error("Exhausted order ID allocation attempts", lastErr)

	return domain.Order{}, fmt.Errorf("failed to allocate order id: %w", lastErr)
}

// UpdateStatus applies one transition of the order state machine and
// notifies the purchaser. Notification failure never rolls the
// transition back.
func (s *OrdersService) UpdateStatus(ctx context.Context, orderID, newStatus string) (domain.Order, error) {
	order, err := s.ordersRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}

	if err := ValidateTransition(order.Status, newStatus); err != nil {
		return domain.Order{}, err
	}

	if err := s.ordersRepo.UpdateStatus(ctx, orderID, newStatus); err != nil {
		return domain.Order{}, err
	}
	order.Status = newStatus

	s.dispatchEmail(order.Name, order.Email,
		fmt.Sprintf(subjectStatusUpdate, order.OrderID),
		fmt.Sprintf(bodyStatusUpdate, order.Name, order.OrderID, newStatus),
	)

	return order, nil
}

// ConfirmReceived is the purchaser acknowledging a delivered order.
func (s *OrdersService) ConfirmReceived(ctx context.Context, orderID, userID string) (domain.Order, error) {
	order, err := s.ordersRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}

	if order.UserID != userID {
		return domain.Order{}, domain.ErrNotFound
	}

	if order.Status != domain.StatusDelivered {
		return domain.Order{}, domain.NewValidationError("only delivered orders can be confirmed as received")
	}

	if err := s.ordersRepo.UpdateStatus(ctx, orderID, domain.StatusReceived); err != nil {
		return domain.Order{}, err
	}
	order.Status = domain.StatusReceived

	s.dispatchEmail(order.Name, order.Email,
		fmt.Sprintf(subjectStatusUpdate, order.OrderID),
		fmt.Sprintf(bodyStatusUpdate, order.Name, order.OrderID, domain.StatusReceived),
	)

	return order, nil
}

// UpdateDetails lets the purchaser fix contact details while the order is
// still being processed.
func (s *OrdersService) UpdateDetails(ctx context.Context, orderID, userID, name, phoneNum, address string) (domain.Order, error) {
	order, err := s.ordersRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}

	if order.UserID != userID {
		return domain.Order{}, domain.ErrNotFound
	}

	if order.Status != domain.StatusProcessing {
		return domain.Order{}, domain.NewValidationError("only processing orders can be updated")
	}

	if err := s.ordersRepo.UpdateDetails(ctx, orderID, name, phoneNum, address); err != nil {
		return domain.Order{}, err
	}

	order.Name = name
	order.PhoneNum = phoneNum
	order.Address = address

	return order, nil
}

func (s *OrdersService) GetUserOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.ordersRepo.FindByUser(ctx, userID)
}

func (s *OrdersService) GetOrder(ctx context.Context, orderID string) (domain.Order, error) {
	return s.ordersRepo.FindByOrderID(ctx, orderID)
}

func (s *OrdersService) GetAllOrders(ctx context.Context) ([]domain.Order, error) {
	return s.ordersRepo.FindAll(ctx)
}

// dispatchEmail sends fire-and-forget; a notification failure is logged
// and swallowed so it can never fail the order operation that caused it.
func (s *OrdersService) dispatchEmail(toName, toEmail, subject, body string) {
	if s.notifRepo == nil || toEmail == "" {
		return
	}

	go func() {
		if err := s.notifRepo.SendEmail(toName, toEmail, subject, body); err != nil {
			logger.Error("Failed to send order email", err)
		}
	}()
}

func hasSize(sizes []int, size int) bool {
	for _, s := range sizes {
		if s == size {
			return true
		}
	}
	return false
}
