package postgres

import (
	"context"
	"fmt"
	"solestride/domain"

	"gorm.io/gorm"
)

type AdminRepository struct {
	DB *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{
		DB: db,
	}
}

func (r *AdminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(admin).Error; err != nil {
		return translateError(err)
	}

	return nil
}

func (r *AdminRepository) FindByAdminID(ctx context.Context, adminID string) (domain.Admin, error) {
	if err := ctx.Err(); err != nil {
		return domain.Admin{}, fmt.Errorf("context error: %w", err)
	}

	var admin domain.Admin
	err := r.DB.WithContext(ctx).Where("admin_id = ?", adminID).First(&admin).Error
	if err != nil {
		return domain.Admin{}, translateError(err)
	}

	return admin, nil
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (domain.Admin, error) {
	if err := ctx.Err(); err != nil {
		return domain.Admin{}, fmt.Errorf("context error: %w", err)
	}

	var admin domain.Admin
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&admin).Error
	if err != nil {
		return domain.Admin{}, translateError(err)
	}

	return admin, nil
}

func (r *AdminRepository) FindAll(ctx context.Context) ([]domain.Admin, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var admins []domain.Admin
	err := r.DB.WithContext(ctx).Order("admin_id").Find(&admins).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find admins: %w", err)
	}

	return admins, nil
}

// FindLastIDByRole returns the highest allocated ID for one role prefix
// (ADM or OWN), or "" when that namespace is empty. Admins and owners
// count separately.
func (r *AdminRepository) FindLastIDByRole(ctx context.Context, prefix string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("context error: %w", err)
	}

	var id string
	err := r.DB.WithContext(ctx).Model(&domain.Admin{}).
		Select("admin_id").
		Where("admin_id LIKE ?", prefix+"%").
		Order("length(admin_id) DESC, admin_id DESC").
		Limit(1).
		Scan(&id).Error
	if err != nil {
		return "", fmt.Errorf("failed to find last admin id: %w", err)
	}

	return id, nil
}

func (r *AdminRepository) Update(ctx context.Context, admin *domain.Admin) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Save(admin).Error; err != nil {
		return translateError(err)
	}

	return nil
}

func (r *AdminRepository) Delete(ctx context.Context, adminID string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Where("admin_id = ?", adminID).Delete(&domain.Admin{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete admin: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}
