package user

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"solestride/business/seqid"
	"solestride/domain"
	"solestride/pkg/logger"
	"solestride/pkg/utils"

	"github.com/go-playground/validator/v10"
)

const (
	maxIDAttempts = 3
	sessionTTL    = 24 * time.Hour
	resetPinTTL   = 15 * time.Minute

	subjectWelcome       = "Welcome to SoleStride!"
	bodyWelcome          = "Hi %v, your account %v is ready. Happy shoe hunting!"
	subjectPasswordReset = "Your password reset PIN"
	bodyPasswordReset    = "Hi %v, your password reset PIN is %v. It expires in %v minutes."
)

var nonDigits = regexp.MustCompile(`\D`)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByUserID(ctx context.Context, userID string) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindLastUserID(ctx context.Context) (string, error)
	Update(ctx context.Context, user *domain.User) error
	UpdateCart(ctx context.Context, userID string, cart []domain.CartItem) error
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

// TokenRepository contract interface
type TokenRepository interface {
	StoreToken(ctx context.Context, userID, token string, ttl time.Duration) error
	ValidateToken(ctx context.Context, token string) (string, error)
	DeleteToken(ctx context.Context, userID, token string) error
}

// ResetPinRepository contract interface
type ResetPinRepository interface {
	Create(ctx context.Context, pin *domain.ResetPin) error
	FindLatestByEmail(ctx context.Context, email string) (domain.ResetPin, error)
	DeleteByEmail(ctx context.Context, email string) error
}

// NotificationRepository contract interface
type NotificationRepository interface {
	SendEmail(toName, toEmail, subject, message string) (err error)
}

type userService struct {
	userRepo  UserRepository
	tokenRepo TokenRepository
	pinRepo   ResetPinRepository
	notifRepo NotificationRepository
	validate  *validator.Validate
}

func NewUserService(
	userRepo UserRepository,
	tokenRepo TokenRepository,
	pinRepo ResetPinRepository,
	notifRepo NotificationRepository,
	validate *validator.Validate,
) *userService {
	return &userService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		pinRepo:   pinRepo,
		notifRepo: notifRepo,
		validate:  validate,
	}
}

func (s *userService) Register(ctx context.Context, user *domain.User) (domain.User, error) {
	if err := s.validate.Var(user.Email, "required,email"); err != nil {
		return domain.User{}, domain.NewValidationError("please enter a valid email")
	}

	if user.PhoneNum != "" {
		clean := nonDigits.ReplaceAllString(user.PhoneNum, "")
		if len(clean) < 10 || len(clean) > 13 {
			return domain.User{}, domain.NewValidationError("phone number must be between 10-13 digits")
		}
		user.PhoneNum = clean
	}

	if err := utils.ValidatePasswordStrength(user.Password); err != nil {
		return domain.User{}, domain.NewValidationError("%s", err.Error())
	}

	existing, err := s.userRepo.FindByEmail(ctx, user.Email)
	if err == nil && existing.ID > 0 {
		return domain.User{}, domain.NewValidationError("user already exists")
	}

	passwordHash, err := utils.HashPassword(user.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return domain.User{}, errors.New("failed to hash password")
	}

	var lastErr error
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		lastID, err := s.userRepo.FindLastUserID(ctx)
		if err != nil {
			return domain.User{}, err
		}

		userID, err := seqid.User.Next(lastID)
		if err != nil {
			return domain.User{}, err
		}

		newUser := domain.User{
			UserID:   userID,
			Name:     user.Name,
			Email:    user.Email,
			PhoneNum: user.PhoneNum,
			Password: passwordHash,
		}

		err = s.userRepo.Create(ctx, &newUser)
		if errors.Is(err, domain.ErrDuplicateID) {
			lastErr = err
			continue
		}
		if err != nil {
			logger.Error("Failed to create new user", err)
			return domain.User{}, err
		}

		s.dispatchEmail(newUser.Name, newUser.Email,
			subjectWelcome,
			fmt.Sprintf(bodyWelcome, newUser.Name, newUser.UserID),
		)

		return newUser, nil
	}

	logger.Error("Exhausted user ID allocation attempts", lastErr)

	return domain.User{}, fmt.Errorf("failed to allocate user id: %w", lastErr)
}

func (s *userService) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", domain.User{}, domain.NewValidationError("invalid credentials")
	}

	if !utils.CheckPassword(user.Password, password) {
		return "", domain.User{}, domain.NewValidationError("invalid credentials")
	}

	token, err := utils.GenerateJWT(user.UserID, "customer")
	if err != nil {
		logger.Error("Failed to generate token", err)
		return "", domain.User{}, errors.New("failed to generate token")
	}

	if err := s.tokenRepo.StoreToken(ctx, user.UserID, token, sessionTTL); err != nil {
		logger.Error("Failed to store session token", err)
		return "", domain.User{}, errors.New("failed to create session")
	}

	return token, user, nil
}

func (s *userService) Logout(ctx context.Context, userID, token string) error {
	return s.tokenRepo.DeleteToken(ctx, userID, token)
}

// ValidateTokenFromRedis lets the auth middleware confirm a bearer token
// still belongs to an active session.
func (s *userService) ValidateTokenFromRedis(ctx context.Context, token string) (string, error) {
	return s.tokenRepo.ValidateToken(ctx, token)
}

func (s *userService) GetProfile(ctx context.Context, userID string) (domain.User, error) {
	return s.userRepo.FindByUserID(ctx, userID)
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, updates *domain.User) (domain.User, error) {
	user, err := s.userRepo.FindByUserID(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}

	if updates.Name != "" {
		user.Name = updates.Name
	}
	if updates.PhoneNum != "" {
		clean := nonDigits.ReplaceAllString(updates.PhoneNum, "")
		if len(clean) < 10 || len(clean) > 13 {
			return domain.User{}, domain.NewValidationError("phone number must be between 10-13 digits")
		}
		user.PhoneNum = clean
	}
	if updates.Address != "" {
		user.Address = updates.Address
	}
	if updates.ProfilePicture != "" {
		user.ProfilePicture = updates.ProfilePicture
	}
	if updates.Password != "" {
		if err := utils.ValidatePasswordStrength(updates.Password); err != nil {
			return domain.User{}, domain.NewValidationError("%s", err.Error())
		}
		hash, err := utils.HashPassword(updates.Password)
		if err != nil {
			return domain.User{}, errors.New("failed to hash password")
		}
		user.Password = hash
	}

	if err := s.userRepo.Update(ctx, &user); err != nil {
		logger.Error("Failed to update user", err)
		return domain.User{}, err
	}

	return user, nil
}

func (s *userService) GetCart(ctx context.Context, userID string) ([]domain.CartItem, error) {
	user, err := s.userRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return []domain.CartItem(user.Cart), nil
}

func (s *userService) UpdateCart(ctx context.Context, userID string, cart []domain.CartItem) error {
	for _, item := range cart {
		if item.ProductID == "" {
			return domain.NewValidationError("cart item is missing a product id")
		}
		if item.Quantity <= 0 {
			return domain.NewValidationError("cart quantity for %s must be positive", item.ProductID)
		}
	}

	return s.userRepo.UpdateCart(ctx, userID, cart)
}

// ForgotPassword issues a short-lived PIN and emails it. The response is
// identical whether or not the email exists, so accounts cannot be
// enumerated.
func (s *userService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}

	pin, err := generatePin()
	if err != nil {
		logger.Error("Failed to generate reset pin", err)
		return errors.New("failed to generate reset pin")
	}

	if err := s.pinRepo.Create(ctx, &domain.ResetPin{
		Email:     email,
		Pin:       pin,
		ExpiresAt: time.Now().Add(resetPinTTL),
	}); err != nil {
		logger.Error("Failed to store reset pin", err)
		return err
	}

	s.dispatchEmail(user.Name, email,
		subjectPasswordReset,
		fmt.Sprintf(bodyPasswordReset, user.Name, pin, int(resetPinTTL.Minutes())),
	)

	return nil
}

func (s *userService) ResetPassword(ctx context.Context, email, pin, newPassword string) error {
	stored, err := s.pinRepo.FindLatestByEmail(ctx, email)
	if err != nil {
		return domain.NewValidationError("invalid or expired reset pin")
	}

	if stored.Pin != pin || time.Now().After(stored.ExpiresAt) {
		return domain.NewValidationError("invalid or expired reset pin")
	}

	if err := utils.ValidatePasswordStrength(newPassword); err != nil {
		return domain.NewValidationError("%s", err.Error())
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return errors.New("failed to hash password")
	}

	if err := s.userRepo.UpdatePassword(ctx, email, hash); err != nil {
		return err
	}

	if err := s.pinRepo.DeleteByEmail(ctx, email); err != nil {
		logger.Warn("Failed to clear used reset pins", err)
	}

	return nil
}

func (s *userService) dispatchEmail(toName, toEmail, subject, body string) {
	if s.notifRepo == nil || toEmail == "" {
		return
	}

	go func() {
		if err := s.notifRepo.SendEmail(toName, toEmail, subject, body); err != nil {
			logger.Error("Failed to send email", err)
		}
	}()
}

func generatePin() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%06d", n.Int64()), nil
}
