package postgres

import (
	"context"
	"errors"
	"fmt"
	"solestride/domain"

	"gorm.io/gorm"
)

type OrdersRepository struct {
	DB *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		DB: db,
	}
}

// CreateWithStockDecrement applies every stock deduction and inserts the
// order inside one transaction. Each deduction is conditional on the row
// still holding enough stock, so a concurrent order for the same product
// either wins the row or rolls back with domain.ErrInsufficientStock.
func (r *OrdersRepository) CreateWithStockDecrement(ctx context.Context, order *domain.Order, decrements []domain.StockDecrement) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, d := range decrements {
			result := tx.Model(&domain.Product{}).
				Where("product_id = ? AND quantity >= ?", d.ProductID, d.Quantity).
				UpdateColumn("quantity", gorm.Expr("quantity - ?", d.Quantity))
			if result.Error != nil {
				return fmt.Errorf("failed to decrement stock for %s: %w", d.ProductID, result.Error)
			}
			if result.RowsAffected == 0 {
				return domain.ErrInsufficientStock
			}
		}

		if err := tx.Create(order).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrDuplicateID
			}
			return fmt.Errorf("failed to create order: %w", err)
		}

		return nil
	})
}

func (r *OrdersRepository) FindByOrderID(ctx context.Context, orderID string) (domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("context error: %w", err)
	}

	var order domain.Order
	err := r.DB.WithContext(ctx).Where("order_id = ?", orderID).First(&order).Error
	if err != nil {
		return domain.Order{}, translateError(err)
	}

	return order, nil
}

func (r *OrdersRepository) FindByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var orders []domain.Order
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}

	return orders, nil
}

// FindByUserAndStatuses feeds the recommendation profile. Rows come back
// oldest first so purchase history keeps its original order.
func (r *OrdersRepository) FindByUserAndStatuses(ctx context.Context, userID string, statuses []string) ([]domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var orders []domain.Order
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND status IN ?", userID, statuses).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}

	return orders, nil
}

func (r *OrdersRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var orders []domain.Order
	err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}

	return orders, nil
}

// FindLastOrderID returns the highest allocated order ID, or "" when no
// orders exist yet. Length sorts before the lexicographic compare so
// identifiers that outgrew the pad width still rank highest.
func (r *OrdersRepository) FindLastOrderID(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("context error: %w", err)
	}

	var id string
	err := r.DB.WithContext(ctx).Model(&domain.Order{}).
		Select("order_id").
		Order("length(order_id) DESC, order_id DESC").
		Limit(1).
		Scan(&id).Error
	if err != nil {
		return "", fmt.Errorf("failed to find last order id: %w", err)
	}

	return id, nil
}

func (r *OrdersRepository) UpdateStatus(ctx context.Context, orderID, status string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Model(&domain.Order{}).
		Where("order_id = ?", orderID).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *OrdersRepository) UpdateDetails(ctx context.Context, orderID, name, phoneNum, address string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Model(&domain.Order{}).
		Where("order_id = ?", orderID).
		Updates(map[string]interface{}{
			"name":      name,
			"phone_num": phoneNum,
			"address":   address,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update order details: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}
