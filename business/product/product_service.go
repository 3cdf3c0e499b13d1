package product

import (
	"context"
	"errors"
	"fmt"
	"time"

	"solestride/business/seqid"
	"solestride/domain"
	"solestride/pkg/logger"
)

const maxIDAttempts = 3

// ProductRepository contract interface
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByProductID(ctx context.Context, productID string) (domain.Product, error)
	FindAll(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	FindLastProductID(ctx context.Context) (string, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, productID string) error
}

type productService struct {
	productRepo ProductRepository
}

func NewProductService(productRepo ProductRepository) *productService {
	return &productService{
		productRepo: productRepo,
	}
}

func (s *productService) GetAllProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		logger.Error("Failed to find all products", err)
		return nil, err
	}

	return products, nil
}

func (s *productService) GetProductByID(ctx context.Context, productID string) (domain.Product, error) {
	if productID == "" {
		return domain.Product{}, domain.NewValidationError("product id is required")
	}

	return s.productRepo.FindByProductID(ctx, productID)
}

func (s *productService) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if err := validateAttributes(product); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		lastID, err := s.productRepo.FindLastProductID(ctx)
		if err != nil {
			return nil, err
		}

		productID, err := seqid.Product.Next(lastID)
		if err != nil {
			return nil, err
		}
		product.ProductID = productID

		err = s.productRepo.Create(ctx, product)
		if errors.Is(err, domain.ErrDuplicateID) {
			lastErr = err
			continue
		}
		if err != nil {
			logger.Error("Failed to create product", err)
			return nil, fmt.Errorf("failed to create product: %w", err)
		}

		logger.Info("Product created", "product_id", product.ProductID)

		return product, nil
	}

	logger.Error("Exhausted product ID allocation attempts", lastErr)

	return nil, fmt.Errorf("failed to allocate product id: %w", lastErr)
}

func (s *productService) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if product.ProductID == "" {
		return nil, domain.NewValidationError("product id is required")
	}

	if err := validateAttributes(product); err != nil {
		return nil, err
	}

	existing, err := s.productRepo.FindByProductID(ctx, product.ProductID)
	if err != nil {
		return nil, err
	}
	product.UpdatedAt = time.Now()
	product.ID = existing.ID

	if err := s.productRepo.Update(ctx, product); err != nil {
		logger.Error("Failed to update product", err)
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	updated, err := s.productRepo.FindByProductID(ctx, product.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated product: %w", err)
	}

	return &updated, nil
}

// DeleteProduct removes a product from the live catalog. Orders keep
// their own line-item snapshots, so history is unaffected.
func (s *productService) DeleteProduct(ctx context.Context, productID string) error {
	if productID == "" {
		return domain.NewValidationError("product id is required")
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := s.productRepo.Delete(ctx, productID); err != nil {
		logger.Error("Failed to delete product", err)
		return err
	}

	logger.Info("Product deleted", "product_id", productID)

	return nil
}

func validateAttributes(product *domain.Product) error {
	if product.Name == "" {
		return domain.NewValidationError("product name is required")
	}
	if product.Price <= 0 {
		return domain.NewValidationError("price must be greater than 0")
	}
	if product.Quantity < 0 {
		return domain.NewValidationError("quantity cannot be negative")
	}
	if !domain.IsValidBrand(product.Brand) {
		return domain.NewValidationError("invalid brand %q", product.Brand)
	}
	if !domain.IsValidShoeType(product.ShoeType) {
		return domain.NewValidationError("invalid shoe type %q", product.ShoeType)
	}
	if !domain.IsValidGender(product.Gender) {
		return domain.NewValidationError("invalid gender %q", product.Gender)
	}
	if len(product.Sizes) == 0 {
		return domain.NewValidationError("at least one size is required")
	}
	for _, size := range product.Sizes {
		if !domain.IsValidSize(size) {
			return domain.NewValidationError("invalid size %d", size)
		}
	}

	return nil
}
