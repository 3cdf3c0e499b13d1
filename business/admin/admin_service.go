package admin

import (
	"context"
	"errors"
	"fmt"

	"solestride/business/seqid"
	"solestride/domain"
	"solestride/pkg/logger"
	"solestride/pkg/utils"

	"github.com/go-playground/validator/v10"
)

const maxIDAttempts = 3

// AdminRepository contract interface
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) error
	FindByAdminID(ctx context.Context, adminID string) (domain.Admin, error)
	FindByEmail(ctx context.Context, email string) (domain.Admin, error)
	FindAll(ctx context.Context) ([]domain.Admin, error)
	FindLastIDByRole(ctx context.Context, prefix string) (string, error)
	Update(ctx context.Context, admin *domain.Admin) error
	Delete(ctx context.Context, adminID string) error
}

type adminService struct {
	adminRepo AdminRepository
	validate  *validator.Validate
}

func NewAdminService(adminRepo AdminRepository, validate *validator.Validate) *adminService {
	return &adminService{
		adminRepo: adminRepo,
		validate:  validate,
	}
}

// CreateAdmin provisions an admin or owner account. Only owners may do
// this; admins and owners draw IDs from separate namespaces (ADM001 /
// OWN001).
func (s *adminService) CreateAdmin(ctx context.Context, creatorRole string, admin *domain.Admin) (domain.Admin, error) {
	if creatorRole != domain.RoleOwner {
		return domain.Admin{}, domain.NewValidationError("only owners can add new admins")
	}

	if admin.Role == "" {
		admin.Role = domain.RoleAdmin
	}
	if admin.Role != domain.RoleAdmin && admin.Role != domain.RoleOwner {
		return domain.Admin{}, domain.NewValidationError("invalid role %q", admin.Role)
	}

	if err := s.validate.Var(admin.Email, "required,email"); err != nil {
		return domain.Admin{}, domain.NewValidationError("please enter a valid email")
	}

	if err := utils.ValidatePasswordStrength(admin.Password); err != nil {
		return domain.Admin{}, domain.NewValidationError("%s", err.Error())
	}

	existing, err := s.adminRepo.FindByEmail(ctx, admin.Email)
	if err == nil && existing.ID > 0 {
		return domain.Admin{}, domain.NewValidationError("admin with this email already exists")
	}

	passwordHash, err := utils.HashPassword(admin.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return domain.Admin{}, errors.New("failed to hash password")
	}

	kind := seqid.ForRole(admin.Role)

	var lastErr error
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		lastID, err := s.adminRepo.FindLastIDByRole(ctx, kind.Prefix)
		if err != nil {
			return domain.Admin{}, err
		}

		adminID, err := kind.Next(lastID)
		if err != nil {
			return domain.Admin{}, err
		}

		newAdmin := domain.Admin{
			AdminID:        adminID,
			Name:           admin.Name,
			Email:          admin.Email,
			Password:       passwordHash,
			Role:           admin.Role,
			ProfilePicture: admin.ProfilePicture,
		}

		err = s.adminRepo.Create(ctx, &newAdmin)
		if errors.Is(err, domain.ErrDuplicateID) {
			lastErr = err
			continue
		}
		if err != nil {
			logger.Error("Failed to create admin", err)
			return domain.Admin{}, err
		}

		logger.Info("Admin account created", "admin_id", newAdmin.AdminID, "role", newAdmin.Role)

		return newAdmin, nil
	}

	logger.Error("Exhausted admin ID allocation attempts", lastErr)

	return domain.Admin{}, fmt.Errorf("failed to allocate admin id: %w", lastErr)
}

func (s *adminService) Login(ctx context.Context, email, password string) (string, domain.Admin, error) {
	admin, err := s.adminRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", domain.Admin{}, domain.NewValidationError("invalid credentials")
	}

	if !utils.CheckPassword(admin.Password, password) {
		return "", domain.Admin{}, domain.NewValidationError("invalid credentials")
	}

	token, err := utils.GenerateJWT(admin.AdminID, admin.Role)
	if err != nil {
		logger.Error("Failed to generate token", err)
		return "", domain.Admin{}, errors.New("failed to generate token")
	}

	return token, admin, nil
}

func (s *adminService) GetAllAdmins(ctx context.Context) ([]domain.Admin, error) {
	return s.adminRepo.FindAll(ctx)
}

func (s *adminService) GetAdmin(ctx context.Context, adminID string) (domain.Admin, error) {
	return s.adminRepo.FindByAdminID(ctx, adminID)
}

func (s *adminService) UpdateAdmin(ctx context.Context, adminID string, updates *domain.Admin) (domain.Admin, error) {
	admin, err := s.adminRepo.FindByAdminID(ctx, adminID)
	if err != nil {
		return domain.Admin{}, err
	}

	if updates.Name != "" {
		admin.Name = updates.Name
	}
	if updates.Email != "" {
		if err := s.validate.Var(updates.Email, "email"); err != nil {
			return domain.Admin{}, domain.NewValidationError("please enter a valid email")
		}
		admin.Email = updates.Email
	}
	if updates.ProfilePicture != "" {
		admin.ProfilePicture = updates.ProfilePicture
	}
	if updates.Password != "" {
		if err := utils.ValidatePasswordStrength(updates.Password); err != nil {
			return domain.Admin{}, domain.NewValidationError("%s", err.Error())
		}
		hash, err := utils.HashPassword(updates.Password)
		if err != nil {
			return domain.Admin{}, errors.New("failed to hash password")
		}
		admin.Password = hash
	}

	if err := s.adminRepo.Update(ctx, &admin); err != nil {
		logger.Error("Failed to update admin", err)
		return domain.Admin{}, err
	}

	return admin, nil
}

// DeleteAdmin removes an admin account. Owner accounts cannot be deleted
// through this operation.
func (s *adminService) DeleteAdmin(ctx context.Context, adminID string) error {
	admin, err := s.adminRepo.FindByAdminID(ctx, adminID)
	if err != nil {
		return err
	}

	if admin.Role == domain.RoleOwner {
		return domain.NewValidationError("owner accounts cannot be deleted")
	}

	return s.adminRepo.Delete(ctx, adminID)
}
