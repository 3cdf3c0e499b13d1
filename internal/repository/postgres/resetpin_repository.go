package postgres

import (
	"context"
	"fmt"
	"solestride/domain"

	"gorm.io/gorm"
)

type ResetPinRepository struct {
	DB *gorm.DB
}

func NewResetPinRepository(db *gorm.DB) *ResetPinRepository {
	return &ResetPinRepository{
		DB: db,
	}
}

func (r *ResetPinRepository) Create(ctx context.Context, pin *domain.ResetPin) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(pin).Error; err != nil {
		return fmt.Errorf("failed to store reset pin: %w", err)
	}

	return nil
}

func (r *ResetPinRepository) FindLatestByEmail(ctx context.Context, email string) (domain.ResetPin, error) {
	if err := ctx.Err(); err != nil {
		return domain.ResetPin{}, fmt.Errorf("context error: %w", err)
	}

	var pin domain.ResetPin
	err := r.DB.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at DESC").
		First(&pin).Error
	if err != nil {
		return domain.ResetPin{}, translateError(err)
	}

	return pin, nil
}

func (r *ResetPinRepository) DeleteByEmail(ctx context.Context, email string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Where("email = ?", email).Delete(&domain.ResetPin{}).Error; err != nil {
		return fmt.Errorf("failed to delete reset pins: %w", err)
	}

	return nil
}
