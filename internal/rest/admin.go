package rest

import (
	"context"
	"net/http"
	"time"

	"solestride/domain"
	"solestride/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	AdminHandler struct {
		validate     *validator.Validate
		adminService AdminService
		timeout      time.Duration
	}

	AdminService interface {
		CreateAdmin(ctx context.Context, creatorRole string, admin *domain.Admin) (domain.Admin, error)
		Login(ctx context.Context, email, password string) (string, domain.Admin, error)
		GetAllAdmins(ctx context.Context) ([]domain.Admin, error)
		GetAdmin(ctx context.Context, adminID string) (domain.Admin, error)
		UpdateAdmin(ctx context.Context, adminID string, updates *domain.Admin) (domain.Admin, error)
		DeleteAdmin(ctx context.Context, adminID string) error
	}

	CreateAdminInput struct {
		Name           string `json:"name" validate:"required"`
		Email          string `json:"email" validate:"required,email"`
		Password       string `json:"password" validate:"required"`
		Role           string `json:"role"`
		ProfilePicture string `json:"profile_picture"`
	}

	AdminLoginInput struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	UpdateAdminInput struct {
		Name           string `json:"name"`
		Email          string `json:"email"`
		Password       string `json:"password"`
		ProfilePicture string `json:"profile_picture"`
	}
)

func NewAdminHandler(adminService AdminService) *AdminHandler {
	return &AdminHandler{
		validate:     validator.New(),
		adminService: adminService,
		timeout:      10 * time.Second,
	}
}

func (h *AdminHandler) CreateAdmin(c echo.Context) error {
	var request CreateAdminInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	admin, err := h.adminService.CreateAdmin(ctx, actorRole(c), &domain.Admin{
		Name:           request.Name,
		Email:          request.Email,
		Password:       request.Password,
		Role:           request.Role,
		ProfilePicture: request.ProfilePicture,
	})
	if err != nil {
		logger.Error("Failed to create admin", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(admin))
}

func (h *AdminHandler) Login(c echo.Context) error {
	var request AdminLoginInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	token, admin, err := h.adminService.Login(ctx, request.Email, request.Password)
	if err != nil {
		logger.Error("Failed admin login", err)
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]interface{}{
		"token": token,
		"admin": admin,
	}))
}

func (h *AdminHandler) GetAllAdmins(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	admins, err := h.adminService.GetAllAdmins(ctx)
	if err != nil {
		logger.Error("Failed to get admins", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(admins))
}

func (h *AdminHandler) GetAdmin(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	admin, err := h.adminService.GetAdmin(ctx, c.Param("id"))
	if err != nil {
		logger.Error("Failed to get admin", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(admin))
}

func (h *AdminHandler) UpdateAdmin(c echo.Context) error {
	var request UpdateAdminInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	admin, err := h.adminService.UpdateAdmin(ctx, c.Param("id"), &domain.Admin{
		Name:           request.Name,
		Email:          request.Email,
		Password:       request.Password,
		ProfilePicture: request.ProfilePicture,
	})
	if err != nil {
		logger.Error("Failed to update admin", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(admin))
}

func (h *AdminHandler) DeleteAdmin(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.adminService.DeleteAdmin(ctx, c.Param("id")); err != nil {
		logger.Error("Failed to delete admin", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Admin deleted successfully"))
}
