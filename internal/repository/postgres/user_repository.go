package postgres

import (
	"context"
	"fmt"
	"solestride/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		DB: db,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(user).Error; err != nil {
		return translateError(err)
	}

	return nil
}

func (r *UserRepository) FindByUserID(ctx context.Context, userID string) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, fmt.Errorf("context error: %w", err)
	}

	var user domain.User
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&user).Error
	if err != nil {
		return domain.User{}, translateError(err)
	}

	return user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, fmt.Errorf("context error: %w", err)
	}

	var user domain.User
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return domain.User{}, translateError(err)
	}

	return user, nil
}

// FindLastUserID returns the highest allocated user ID, or "" when no
// users exist yet.
func (r *UserRepository) FindLastUserID(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("context error: %w", err)
	}

	var id string
	err := r.DB.WithContext(ctx).Model(&domain.User{}).
		Select("user_id").
		Order("length(user_id) DESC, user_id DESC").
		Limit(1).
		Scan(&id).Error
	if err != nil {
		return "", fmt.Errorf("failed to find last user id: %w", err)
	}

	return id, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Save(user).Error; err != nil {
		return translateError(err)
	}

	return nil
}

func (r *UserRepository) UpdateCart(ctx context.Context, userID string, cart []domain.CartItem) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Model(&domain.User{}).
		Where("user_id = ?", userID).
		Update("cart_data", datatypes.NewJSONSlice(cart))
	if result.Error != nil {
		return fmt.Errorf("failed to update cart: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Model(&domain.User{}).
		Where("email = ?", email).
		Update("password", passwordHash)
	if result.Error != nil {
		return fmt.Errorf("failed to update password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}
