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
	UserHandler struct {
		validate    *validator.Validate
		userService UserService
		timeout     time.Duration
	}

	UserService interface {
		Register(ctx context.Context, user *domain.User) (domain.User, error)
		Login(ctx context.Context, email, password string) (string, domain.User, error)
		Logout(ctx context.Context, userID, token string) error
		GetProfile(ctx context.Context, userID string) (domain.User, error)
		UpdateProfile(ctx context.Context, userID string, updates *domain.User) (domain.User, error)
		GetCart(ctx context.Context, userID string) ([]domain.CartItem, error)
		UpdateCart(ctx context.Context, userID string, cart []domain.CartItem) error
		ForgotPassword(ctx context.Context, email string) error
		ResetPassword(ctx context.Context, email, pin, newPassword string) error
	}

	RegisterInput struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		PhoneNum string `json:"phone_num"`
		Password string `json:"password" validate:"required"`
	}

	LoginInput struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	UpdateProfileInput struct {
		Name           string `json:"name"`
		PhoneNum       string `json:"phone_num"`
		Address        string `json:"address"`
		ProfilePicture string `json:"profile_picture"`
		Password       string `json:"password"`
	}

	CartItemInput struct {
		ProductID    string `json:"product_id" validate:"required"`
		SelectedSize int    `json:"selected_size"`
		Quantity     int    `json:"quantity" validate:"required,gt=0"`
	}

	UpdateCartInput struct {
		Items []CartItemInput `json:"items" validate:"dive"`
	}

	ForgotPasswordInput struct {
		Email string `json:"email" validate:"required,email"`
	}

	ResetPasswordInput struct {
		Email       string `json:"email" validate:"required,email"`
		Pin         string `json:"pin" validate:"required,len=6"`
		NewPassword string `json:"new_password" validate:"required"`
	}
)

func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{
		validate:    validator.New(),
		userService: userService,
		timeout:     10 * time.Second,
	}
}

func (h *UserHandler) Register(c echo.Context) error {
	var request RegisterInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate register request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.userService.Register(ctx, &domain.User{
		Name:     request.Name,
		Email:    request.Email,
		PhoneNum: request.PhoneNum,
		Password: request.Password,
	})
	if err != nil {
		logger.Error("Failed to register user", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(user))
}

func (h *UserHandler) Login(c echo.Context) error {
	var request LoginInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	token, user, err := h.userService.Login(ctx, request.Email, request.Password)
	if err != nil {
		logger.Error("Failed to login", err)
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]interface{}{
		"token": token,
		"user":  user,
	}))
}

func (h *UserHandler) Logout(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	token, _ := c.Get("token").(string)
	if err := h.userService.Logout(ctx, actorID(c), token); err != nil {
		logger.Error("Failed to logout", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Logged out successfully"))
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.userService.GetProfile(ctx, actorID(c))
	if err != nil {
		logger.Error("Failed to get profile", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(user))
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var request UpdateProfileInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.userService.UpdateProfile(ctx, actorID(c), &domain.User{
		Name:           request.Name,
		PhoneNum:       request.PhoneNum,
		Address:        request.Address,
		ProfilePicture: request.ProfilePicture,
		Password:       request.Password,
	})
	if err != nil {
		logger.Error("Failed to update profile", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(user))
}

func (h *UserHandler) GetCart(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	cart, err := h.userService.GetCart(ctx, actorID(c))
	if err != nil {
		logger.Error("Failed to get cart", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(cart))
}

func (h *UserHandler) UpdateCart(c echo.Context) error {
	var request UpdateCartInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	cart := make([]domain.CartItem, 0, len(request.Items))
	for _, item := range request.Items {
		cart = append(cart, domain.CartItem{
			ProductID:    item.ProductID,
			SelectedSize: item.SelectedSize,
			Quantity:     item.Quantity,
		})
	}

	if err := h.userService.UpdateCart(ctx, actorID(c), cart); err != nil {
		logger.Error("Failed to update cart", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Cart updated successfully"))
}

func (h *UserHandler) ForgotPassword(c echo.Context) error {
	var request ForgotPasswordInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.userService.ForgotPassword(ctx, request.Email); err != nil {
		logger.Error("Failed to process forgot password", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	// Same response whether or not the account exists.
	return c.JSON(http.StatusOK, fres.Response.StatusOK("If the account exists, a reset PIN has been sent"))
}

func (h *UserHandler) ResetPassword(c echo.Context) error {
	var request ResetPasswordInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.userService.ResetPassword(ctx, request.Email, request.Pin, request.NewPassword); err != nil {
		logger.Error("Failed to reset password", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Password reset successfully"))
}
