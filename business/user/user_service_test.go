package user

import (
	"context"
	"testing"
	"time"

	"solestride/domain"
	"solestride/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	utils.InitJWT("test-secret")
	m.Run()
}

type fakeUserRepo struct {
	byEmail       map[string]domain.User
	byUserID      map[string]domain.User
	lastUserID    string
	duplicateHits int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail:  make(map[string]domain.User),
		byUserID: make(map[string]domain.User),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if f.duplicateHits > 0 {
		f.duplicateHits--
		return domain.ErrDuplicateID
	}
	user.ID = uint(len(f.byUserID) + 1)
	f.byEmail[user.Email] = *user
	f.byUserID[user.UserID] = *user
	f.lastUserID = user.UserID
	return nil
}

func (f *fakeUserRepo) FindByUserID(_ context.Context, userID string) (domain.User, error) {
	u, ok := f.byUserID[userID]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindLastUserID(_ context.Context) (string, error) {
	return f.lastUserID, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	f.byEmail[user.Email] = *user
	f.byUserID[user.UserID] = *user
	return nil
}

func (f *fakeUserRepo) UpdateCart(_ context.Context, userID string, cart []domain.CartItem) error {
	u, ok := f.byUserID[userID]
	if !ok {
		return domain.ErrNotFound
	}
	u.Cart = cart
	f.byUserID[userID] = u
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, email, passwordHash string) error {
	u, ok := f.byEmail[email]
	if !ok {
		return domain.ErrNotFound
	}
	u.Password = passwordHash
	f.byEmail[email] = u
	f.byUserID[u.UserID] = u
	return nil
}

type fakeTokenRepo struct {
	tokens map[string]string // token -> userID
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]string)}
}

func (f *fakeTokenRepo) StoreToken(_ context.Context, userID, token string, _ time.Duration) error {
	f.tokens[token] = userID
	return nil
}

func (f *fakeTokenRepo) ValidateToken(_ context.Context, token string) (string, error) {
	userID, ok := f.tokens[token]
	if !ok {
		return "", domain.ErrNotFound
	}
	return userID, nil
}

func (f *fakeTokenRepo) DeleteToken(_ context.Context, _, token string) error {
	delete(f.tokens, token)
	return nil
}

type fakePinRepo struct {
	pins map[string]domain.ResetPin
}

func newFakePinRepo() *fakePinRepo {
	return &fakePinRepo{pins: make(map[string]domain.ResetPin)}
}

func (f *fakePinRepo) Create(_ context.Context, pin *domain.ResetPin) error {
	f.pins[pin.Email] = *pin
	return nil
}

func (f *fakePinRepo) FindLatestByEmail(_ context.Context, email string) (domain.ResetPin, error) {
	p, ok := f.pins[email]
	if !ok {
		return domain.ResetPin{}, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakePinRepo) DeleteByEmail(_ context.Context, email string) error {
	delete(f.pins, email)
	return nil
}

type fakeNotifier struct {
	sent chan string
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{sent: make(chan string, 8)}
}

func (f *fakeNotifier) SendEmail(_, _, subject, _ string) error {
	f.sent <- subject
	return nil
}

func newTestService(repo *fakeUserRepo, tokens *fakeTokenRepo, pins *fakePinRepo, notifier NotificationRepository) *userService {
	return NewUserService(repo, tokens, pins, notifier, validator.New())
}

func TestRegister_Success(t *testing.T) {
	repo := newFakeUserRepo()
	notifier := newFakeNotifier()
	svc := newTestService(repo, newFakeTokenRepo(), newFakePinRepo(), notifier)

	user, err := svc.Register(context.Background(), &domain.User{
		Name:     "Ali",
		Email:    "ali@example.com",
		PhoneNum: "012-3456789",
		Password: "Str0ng!pass",
	})
	require.NoError(t, err)

	assert.Equal(t, "USER0001", user.UserID)
	assert.Equal(t, "0123456789", user.PhoneNum, "phone number is normalized to digits")
	assert.NotEqual(t, "Str0ng!pass", user.Password, "password is stored hashed")
	assert.True(t, utils.CheckPassword(user.Password, "Str0ng!pass"))

	select {
	case subject := <-notifier.sent:
		assert.Contains(t, subject, "Welcome")
	case <-time.After(time.Second):
		t.Fatal("welcome email was not dispatched")
	}
}

func TestRegister_SequentialIDs(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo, newFakeTokenRepo(), newFakePinRepo(), nil)

	first, err := svc.Register(context.Background(), &domain.User{Name: "A", Email: "a@example.com", Password: "Str0ng!pass"})
	require.NoError(t, err)
	second, err := svc.Register(context.Background(), &domain.User{Name: "B", Email: "b@example.com", Password: "Str0ng!pass"})
	require.NoError(t, err)

	assert.Equal(t, "USER0001", first.UserID)
	assert.Equal(t, "USER0002", second.UserID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo, newFakeTokenRepo(), newFakePinRepo(), nil)

	_, err := svc.Register(context.Background(), &domain.User{Name: "A", Email: "a@example.com", Password: "Str0ng!pass"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &domain.User{Name: "B", Email: "a@example.com", Password: "Str0ng!pass"})
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
}

func TestRegister_RejectsBadInput(t *testing.T) {
	svc := newTestService(newFakeUserRepo(), newFakeTokenRepo(), newFakePinRepo(), nil)

	cases := []struct {
		name string
		user domain.User
	}{
		{"invalid email", domain.User{Name: "A", Email: "not-an-email", Password: "Str0ng!pass"}},
		{"weak password", domain.User{Name: "A", Email: "a@example.com", Password: "weak"}},
		{"short phone", domain.User{Name: "A", Email: "a@example.com", PhoneNum: "12345", Password: "Str0ng!pass"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), &tc.user)
			require.Error(t, err)
			assert.True(t, domain.IsValidationError(err))
		})
	}
}

func TestRegister_RetriesOnDuplicateID(t *testing.T) {
	repo := newFakeUserRepo()
	repo.duplicateHits = 2
	svc := newTestService(repo, newFakeTokenRepo(), newFakePinRepo(), nil)

	user, err := svc.Register(context.Background(), &domain.User{Name: "A", Email: "a@example.com", Password: "Str0ng!pass"})
	require.NoError(t, err)
	assert.Equal(t, "USER0001", user.UserID)
}

func TestLogin_StoresSessionToken(t *testing.T) {
	repo := newFakeUserRepo()
	tokens := newFakeTokenRepo()
	svc := newTestService(repo, tokens, newFakePinRepo(), nil)

	registered, err := svc.Register(context.Background(), &domain.User{Name: "A", Email: "a@example.com", Password: "Str0ng!pass"})
	require.NoError(t, err)

	token, user, err := svc.Login(context.Background(), "a@example.com", "Str0ng!pass")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, registered.UserID, user.UserID)

	userID, err := svc.ValidateTokenFromRedis(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, registered.UserID, userID)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo, newFakeTokenRepo(), newFakePinRepo(), nil)

	_, err := svc.Register(context.Background(), &domain.User{Name: "A", Email: "a@example.com", Password: "Str0ng!pass"})
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "a@example.com", "Wr0ng!pass")
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
}

func TestLogout_RevokesSession(t *testing.T) {
	repo := newFakeUserRepo()
	tokens := newFakeTokenRepo()
	svc := newTestService(repo, tokens, newFakePinRepo(), nil)

	_, err := svc.Register(context.Background(), &domain.User{Name: "A", Email: "a@example.com", Password: "Str0ng!pass"})
	require.NoError(t, err)
	token, user, err := svc.Login(context.Background(), "a@example.com", "Str0ng!pass")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), user.UserID, token))

	_, err = svc.ValidateTokenFromRedis(context.Background(), token)
	require.Error(t, err)
}

func TestUpdateCart_Validation(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo, newFakeTokenRepo(), newFakePinRepo(), nil)

	registered, err := svc.Register(context.Background(), &domain.User{Name: "A", Email: "a@example.com", Password: "Str0ng!pass"})
	require.NoError(t, err)

	err = svc.UpdateCart(context.Background(), registered.UserID, []domain.CartItem{{ProductID: "", Quantity: 1}})
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))

	err = svc.UpdateCart(context.Background(), registered.UserID, []domain.CartItem{{ProductID: "PRO0001", Quantity: 0}})
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))

	err = svc.UpdateCart(context.Background(), registered.UserID, []domain.CartItem{{ProductID: "PRO0001", SelectedSize: 9, Quantity: 2}})
	require.NoError(t, err)

	cart, err := svc.GetCart(context.Background(), registered.UserID)
	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, "PRO0001", cart[0].ProductID)
}

func TestForgotPassword_UnknownEmailIsSilent(t *testing.T) {
	notifier := newFakeNotifier()
	svc := newTestService(newFakeUserRepo(), newFakeTokenRepo(), newFakePinRepo(), notifier)

	err := svc.ForgotPassword(context.Background(), "nobody@example.com")
	require.NoError(t, err, "unknown accounts must not be revealed")

	select {
	case <-notifier.sent:
		t.Fatal("no email should be sent for unknown accounts")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestResetPassword_Flow(t *testing.T) {
	repo := newFakeUserRepo()
	pins := newFakePinRepo()
	notifier := newFakeNotifier()
	svc := newTestService(repo, newFakeTokenRepo(), pins, notifier)

	_, err := svc.Register(context.Background(), &domain.User{Name: "A", Email: "a@example.com", Password: "Str0ng!pass"})
	require.NoError(t, err)
	<-notifier.sent // drain welcome

	require.NoError(t, svc.ForgotPassword(context.Background(), "a@example.com"))

	select {
	case subject := <-notifier.sent:
		assert.Contains(t, subject, "PIN")
	case <-time.After(time.Second):
		t.Fatal("reset email was not dispatched")
	}

	stored := pins.pins["a@example.com"]
	require.Len(t, stored.Pin, 6)

	// wrong pin
	err = svc.ResetPassword(context.Background(), "a@example.com", "000000", "N3w!passwd")
	if stored.Pin != "000000" {
		require.Error(t, err)
		assert.True(t, domain.IsValidationError(err))
	}

	require.NoError(t, svc.ResetPassword(context.Background(), "a@example.com", stored.Pin, "N3w!passwd"))

	_, _, err = svc.Login(context.Background(), "a@example.com", "N3w!passwd")
	require.NoError(t, err)

	// pin is single use
	err = svc.ResetPassword(context.Background(), "a@example.com", stored.Pin, "An0ther!pass")
	require.Error(t, err)
}

func TestResetPassword_ExpiredPin(t *testing.T) {
	repo := newFakeUserRepo()
	pins := newFakePinRepo()
	svc := newTestService(repo, newFakeTokenRepo(), pins, nil)

	_, err := svc.Register(context.Background(), &domain.User{Name: "A", Email: "a@example.com", Password: "Str0ng!pass"})
	require.NoError(t, err)

	pins.pins["a@example.com"] = domain.ResetPin{
		Email:     "a@example.com",
		Pin:       "123456",
		ExpiresAt: time.Now().Add(-time.Minute),
	}

	err = svc.ResetPassword(context.Background(), "a@example.com", "123456", "N3w!passwd")
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
}
