package postgres

import (
	"context"
	"fmt"
	"solestride/domain"

	"gorm.io/gorm"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		DB: db,
	}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(product).Error; err != nil {
		return translateError(err)
	}

	return nil
}

func (r *ProductRepository) FindByProductID(ctx context.Context, productID string) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("context error: %w", err)
	}

	var product domain.Product
	err := r.DB.WithContext(ctx).Where("product_id = ?", productID).First(&product).Error
	if err != nil {
		return domain.Product{}, translateError(err)
	}

	return product, nil
}

func (r *ProductRepository) FindAll(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	q := r.DB.WithContext(ctx).Model(&domain.Product{})
	if filter.Gender != "" {
		q = q.Where("gender = ?", filter.Gender)
	}
	if filter.Brand != "" {
		q = q.Where("brand = ?", filter.Brand)
	}
	if filter.ShoeType != "" {
		q = q.Where("shoe_type = ?", filter.ShoeType)
	}
	if filter.MinPrice > 0 {
		q = q.Where("price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		q = q.Where("price <= ?", filter.MaxPrice)
	}

	var products []domain.Product
	if err := q.Order("product_id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	return products, nil
}

// FindCandidates returns in-stock products outside the excluded set, in
// catalog order so recommendation ranking is deterministic.
func (r *ProductRepository) FindCandidates(ctx context.Context, excludedProductIDs []string) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	q := r.DB.WithContext(ctx).Where("quantity > 0")
	if len(excludedProductIDs) > 0 {
		q = q.Where("product_id NOT IN ?", excludedProductIDs)
	}

	var products []domain.Product
	if err := q.Order("product_id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find candidate products: %w", err)
	}

	return products, nil
}

// FindLastProductID returns the highest allocated product ID, or "" when
// the catalog is empty. Length sorts before the lexicographic compare so
// identifiers that outgrew the pad width still rank highest.
func (r *ProductRepository) FindLastProductID(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("context error: %w", err)
	}

	var id string
	err := r.DB.WithContext(ctx).Model(&domain.Product{}).
		Select("product_id").
		Order("length(product_id) DESC, product_id DESC").
		Limit(1).
		Scan(&id).Error
	if err != nil {
		return "", fmt.Errorf("failed to find last product id: %w", err)
	}

	return id, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"name":            product.Name,
		"description":     product.Description,
		"images":          product.Images,
		"price":           product.Price,
		"quantity":        product.Quantity,
		"sizes":           product.Sizes,
		"brand":           product.Brand,
		"shoe_type":       product.ShoeType,
		"gender":          product.Gender,
		"updated_by":      product.UpdatedBy,
		"updated_by_role": product.UpdatedByRole,
		"updated_at":      product.UpdatedAt,
	}

	result := r.DB.WithContext(ctx).Model(&domain.Product{}).Where("product_id = ?", product.ProductID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, productID string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Where("product_id = ?", productID).Delete(&domain.Product{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}
