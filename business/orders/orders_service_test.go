package orders

import (
	"context"
	"testing"
	"time"

	"solestride/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type fakeOrdersRepo struct {
	orders        map[string]domain.Order
	lastOrderID   string
	duplicateHits int
	created       []domain.Order
	decrements    [][]domain.StockDecrement
}

func newFakeOrdersRepo() *fakeOrdersRepo {
	return &fakeOrdersRepo{orders: make(map[string]domain.Order)}
}

func (f *fakeOrdersRepo) CreateWithStockDecrement(_ context.Context, order *domain.Order, decrements []domain.StockDecrement) error {
	if f.duplicateHits > 0 {
		f.duplicateHits--
		return domain.ErrDuplicateID
	}
	f.created = append(f.created, *order)
	f.decrements = append(f.decrements, decrements)
	f.orders[order.OrderID] = *order
	f.lastOrderID = order.OrderID
	return nil
}

func (f *fakeOrdersRepo) FindByOrderID(_ context.Context, orderID string) (domain.Order, error) {
	o, ok := f.orders[orderID]
	if !ok {
		return domain.Order{}, domain.ErrNotFound
	}
	return o, nil
}

func (f *fakeOrdersRepo) FindByUser(_ context.Context, userID string) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrdersRepo) FindAll(_ context.Context) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.orders {
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOrdersRepo) FindLastOrderID(_ context.Context) (string, error) {
	return f.lastOrderID, nil
}

func (f *fakeOrdersRepo) UpdateStatus(_ context.Context, orderID, status string) error {
	o, ok := f.orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	f.orders[orderID] = o
	return nil
}

func (f *fakeOrdersRepo) UpdateDetails(_ context.Context, orderID, name, phoneNum, address string) error {
	o, ok := f.orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	o.Name, o.PhoneNum, o.Address = name, phoneNum, address
	f.orders[orderID] = o
	return nil
}

type fakeProductRepo struct {
	products map[string]domain.Product
}

func (f *fakeProductRepo) FindByProductID(_ context.Context, productID string) (domain.Product, error) {
	p, ok := f.products[productID]
	if !ok {
		return domain.Product{}, domain.ErrNotFound
	}
	return p, nil
}

type fakeNotifier struct {
	sent chan string
	err  error
}

func newFakeNotifier(err error) *fakeNotifier {
	return &fakeNotifier{sent: make(chan string, 8), err: err}
}

func (f *fakeNotifier) SendEmail(_, toEmail, subject, _ string) error {
	f.sent <- subject
	return f.err
}

func testCatalog() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]domain.Product{
		"PRO0001": {
			ProductID: "PRO0001",
			Name:      "Air Zoom",
			Price:     120,
			Quantity:  5,
			Sizes:     datatypes.NewJSONSlice([]int{8, 9, 10}),
			Brand:     "Nike",
			ShoeType:  "Running",
			Gender:    "men",
		},
		"PRO0002": {
			ProductID: "PRO0002",
			Name:      "Gel Kayano",
			Price:     150,
			Quantity:  1,
			Sizes:     datatypes.NewJSONSlice([]int{7}),
			Brand:     "Asics",
			ShoeType:  "Running",
			Gender:    "women",
		},
	}}
}

func placeInput(lines ...PlaceOrderLine) PlaceOrderInput {
	return PlaceOrderInput{
		UserID:        "USER0001",
		Name:          "Ali",
		Email:         "ali@example.com",
		PhoneNum:      "0123456789",
		Address:       "1 Shoe Street",
		PaymentMethod: "card",
		Lines:         lines,
	}
}

func TestPlaceOrder_Success(t *testing.T) {
	repo := newFakeOrdersRepo()
	notifier := newFakeNotifier(nil)
	svc := NewOrdersService(repo, testCatalog(), notifier)

	order, err := svc.PlaceOrder(context.Background(), placeInput(
		PlaceOrderLine{ProductID: "PRO0001", SelectedSize: 9, Quantity: 2},
		PlaceOrderLine{ProductID: "PRO0002", SelectedSize: 7, Quantity: 1},
	))
	require.NoError(t, err)

	assert.Equal(t, "ORD0001", order.OrderID)
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.InDelta(t, 390.0, order.TotalPrice, 1e-9)
	assert.NotEmpty(t, order.PaymentRef)

	require.Len(t, order.Items, 2)
	snap := order.Items[0]
	assert.Equal(t, "PRO0001", snap.ProductID)
	assert.Equal(t, "Air Zoom", snap.Name)
	assert.Equal(t, 120.0, snap.Price)
	assert.Equal(t, 2, snap.Quantity)
	assert.Equal(t, 9, snap.SelectedSize)
	assert.Equal(t, "Nike", snap.Brand)
	assert.InDelta(t, 240.0, snap.Subprice, 1e-9)

	require.Len(t, repo.decrements, 1)
	assert.Equal(t, []domain.StockDecrement{
		{ProductID: "PRO0001", Quantity: 2},
		{ProductID: "PRO0002", Quantity: 1},
	}, repo.decrements[0])

	select {
	case subject := <-notifier.sent:
		assert.Contains(t, subject, "ORD0001")
	case <-time.After(time.Second):
		t.Fatal("confirmation email was not dispatched")
	}
}

func TestPlaceOrder_SequentialIDs(t *testing.T) {
	repo := newFakeOrdersRepo()
	svc := NewOrdersService(repo, testCatalog(), nil)

	first, err := svc.PlaceOrder(context.Background(), placeInput(PlaceOrderLine{ProductID: "PRO0001", SelectedSize: 9, Quantity: 1}))
	require.NoError(t, err)
	second, err := svc.PlaceOrder(context.Background(), placeInput(PlaceOrderLine{ProductID: "PRO0001", SelectedSize: 9, Quantity: 1}))
	require.NoError(t, err)

	assert.Equal(t, "ORD0001", first.OrderID)
	assert.Equal(t, "ORD0002", second.OrderID)
}

func TestPlaceOrder_RetriesOnDuplicateID(t *testing.T) {
	repo := newFakeOrdersRepo()
	repo.duplicateHits = 2
	svc := NewOrdersService(repo, testCatalog(), nil)

	order, err := svc.PlaceOrder(context.Background(), placeInput(PlaceOrderLine{ProductID: "PRO0001", SelectedSize: 9, Quantity: 1}))
	require.NoError(t, err)
	assert.Equal(t, "ORD0001", order.OrderID)
}

func TestPlaceOrder_GivesUpAfterRepeatedCollisions(t *testing.T) {
	repo := newFakeOrdersRepo()
	repo.duplicateHits = maxIDAttempts
	svc := NewOrdersService(repo, testCatalog(), nil)

	_, err := svc.PlaceOrder(context.Background(), placeInput(PlaceOrderLine{ProductID: "PRO0001", SelectedSize: 9, Quantity: 1}))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicateID)
}

func TestPlaceOrder_InsufficientStock(t *testing.T) {
	svc := NewOrdersService(newFakeOrdersRepo(), testCatalog(), nil)

	_, err := svc.PlaceOrder(context.Background(), placeInput(PlaceOrderLine{ProductID: "PRO0002", SelectedSize: 7, Quantity: 3}))
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
	assert.Contains(t, err.Error(), "insufficient stock")
}

func TestPlaceOrder_UnknownProduct(t *testing.T) {
	svc := NewOrdersService(newFakeOrdersRepo(), testCatalog(), nil)

	_, err := svc.PlaceOrder(context.Background(), placeInput(PlaceOrderLine{ProductID: "PRO9999", SelectedSize: 9, Quantity: 1}))
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
}

func TestPlaceOrder_UnavailableSize(t *testing.T) {
	svc := NewOrdersService(newFakeOrdersRepo(), testCatalog(), nil)

	_, err := svc.PlaceOrder(context.Background(), placeInput(PlaceOrderLine{ProductID: "PRO0001", SelectedSize: 12, Quantity: 1}))
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
}

func TestPlaceOrder_EmptyLines(t *testing.T) {
	svc := NewOrdersService(newFakeOrdersRepo(), testCatalog(), nil)

	_, err := svc.PlaceOrder(context.Background(), placeInput())
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
}

func TestUpdateStatus_Transition(t *testing.T) {
	repo := newFakeOrdersRepo()
	notifier := newFakeNotifier(nil)
	svc := NewOrdersService(repo, testCatalog(), notifier)

	placed, err := svc.PlaceOrder(context.Background(), placeInput(PlaceOrderLine{ProductID: "PRO0001", SelectedSize: 9, Quantity: 1}))
	require.NoError(t, err)
	<-notifier.sent // drain confirmation

	updated, err := svc.UpdateStatus(context.Background(), placed.OrderID, domain.StatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusProcessing, updated.Status)

	select {
	case subject := <-notifier.sent:
		assert.Contains(t, subject, placed.OrderID)
	case <-time.After(time.Second):
		t.Fatal("status email was not dispatched")
	}
}

func TestUpdateStatus_RejectsTerminal(t *testing.T) {
	repo := newFakeOrdersRepo()
	svc := NewOrdersService(repo, testCatalog(), nil)

	placed, err := svc.PlaceOrder(context.Background(), placeInput(PlaceOrderLine{ProductID: "PRO0001", SelectedSize: 9, Quantity: 1}))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), placed.OrderID, domain.StatusCancelled)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), placed.OrderID, domain.StatusProcessing)
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
}

func TestUpdateStatus_NotificationFailureDoesNotFailTransition(t *testing.T) {
	repo := newFakeOrdersRepo()
	notifier := newFakeNotifier(assert.AnError)
	svc := NewOrdersService(repo, testCatalog(), notifier)

	placed, err := svc.PlaceOrder(context.Background(), placeInput(PlaceOrderLine{ProductID: "PRO0001", SelectedSize: 9, Quantity: 1}))
	require.NoError(t, err)
	<-notifier.sent

	updated, err := svc.UpdateStatus(context.Background(), placed.OrderID, domain.StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, updated.Status)
	<-notifier.sent
}

func TestConfirmReceived(t *testing.T) {
	repo := newFakeOrdersRepo()
	svc := NewOrdersService(repo, testCatalog(), nil)

	placed, err := svc.PlaceOrder(context.Background(), placeInput(PlaceOrderLine{ProductID: "PRO0001", SelectedSize: 9, Quantity: 1}))
	require.NoError(t, err)

	// not delivered yet
	_, err = svc.ConfirmReceived(context.Background(), placed.OrderID, "USER0001")
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))

	_, err = svc.UpdateStatus(context.Background(), placed.OrderID, domain.StatusDelivered)
	require.NoError(t, err)

	// wrong purchaser
	_, err = svc.ConfirmReceived(context.Background(), placed.OrderID, "USER0002")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	confirmed, err := svc.ConfirmReceived(context.Background(), placed.OrderID, "USER0001")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReceived, confirmed.Status)
}

func TestUpdateDetails_OnlyWhileProcessing(t *testing.T) {
	repo := newFakeOrdersRepo()
	svc := NewOrdersService(repo, testCatalog(), nil)

	placed, err := svc.PlaceOrder(context.Background(), placeInput(PlaceOrderLine{ProductID: "PRO0001", SelectedSize: 9, Quantity: 1}))
	require.NoError(t, err)

	_, err = svc.UpdateDetails(context.Background(), placed.OrderID, "USER0001", "Ali B", "0199999999", "2 Shoe Street")
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))

	_, err = svc.UpdateStatus(context.Background(), placed.OrderID, domain.StatusProcessing)
	require.NoError(t, err)

	updated, err := svc.UpdateDetails(context.Background(), placed.OrderID, "USER0001", "Ali B", "0199999999", "2 Shoe Street")
	require.NoError(t, err)
	assert.Equal(t, "Ali B", updated.Name)
	assert.Equal(t, "2 Shoe Street", updated.Address)
}
