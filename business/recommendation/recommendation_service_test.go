package recommendation

import (
	"context"
	"testing"

	"solestride/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type fakeOrdersRepo struct {
	orders []domain.Order
	err    error
}

func (f *fakeOrdersRepo) FindByUserAndStatuses(_ context.Context, _ string, _ []string) ([]domain.Order, error) {
	return f.orders, f.err
}

type fakeProductRepo struct {
	products    []domain.Product
	gotExcluded []string
	called      bool
}

func (f *fakeProductRepo) FindCandidates(_ context.Context, excludedProductIDs []string) ([]domain.Product, error) {
	f.called = true
	f.gotExcluded = excludedProductIDs

	out := make([]domain.Product, 0, len(f.products))
	for _, p := range f.products {
		if p.Quantity <= 0 || contains(excludedProductIDs, p.ProductID) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func orderWith(items ...domain.OrderItem) domain.Order {
	return domain.Order{Status: domain.StatusDelivered, Items: datatypes.NewJSONSlice(items)}
}

func catalogProduct(id, brand, shoeType, gender string, sizes []int, qty int) domain.Product {
	return domain.Product{
		ProductID: id,
		Brand:     brand,
		ShoeType:  shoeType,
		Gender:    gender,
		Sizes:     datatypes.NewJSONSlice(sizes),
		Quantity:  qty,
	}
}

func TestRecommend_EmptyHistoryShortCircuits(t *testing.T) {
	products := &fakeProductRepo{}
	svc := NewService(&fakeOrdersRepo{}, products)

	got, err := svc.Recommend(context.Background(), "USER0001", 4)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.False(t, products.called, "candidates must not be fetched without history")
}

func TestRecommend_UnauthenticatedUserGetsEmptyList(t *testing.T) {
	svc := NewService(&fakeOrdersRepo{}, &fakeProductRepo{})

	got, err := svc.Recommend(context.Background(), "", 4)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecommend_ExcludesPurchasedAndSoldOut(t *testing.T) {
	orders := &fakeOrdersRepo{orders: []domain.Order{
		orderWith(domain.OrderItem{ProductID: "PRO0001", Brand: "Nike", ShoeType: "Running", Gender: "men", SelectedSize: 9}),
	}}
	products := &fakeProductRepo{products: []domain.Product{
		catalogProduct("PRO0001", "Nike", "Running", "men", []int{9}, 5),
		catalogProduct("PRO0002", "Nike", "Running", "men", []int{9}, 0),
		catalogProduct("PRO0003", "Nike", "Running", "men", []int{9}, 3),
	}}
	svc := NewService(orders, products)

	got, err := svc.Recommend(context.Background(), "USER0001", 4)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "PRO0003", got[0].ProductID)
	assert.Equal(t, []string{"PRO0001"}, products.gotExcluded)
}

func TestRecommend_RanksBySimilarity(t *testing.T) {
	orders := &fakeOrdersRepo{orders: []domain.Order{
		orderWith(
			domain.OrderItem{ProductID: "PRO0001", Brand: "Nike", ShoeType: "Running", Gender: "men", SelectedSize: 9},
			domain.OrderItem{ProductID: "PRO0002", Brand: "Nike", ShoeType: "Running", Gender: "men", SelectedSize: 9},
		),
	}}
	products := &fakeProductRepo{products: []domain.Product{
		catalogProduct("PRO0010", "Puma", "Badminton", "women", []int{4}, 9),
		catalogProduct("PRO0011", "Nike", "Running", "men", []int{9, 10}, 2),
		catalogProduct("PRO0012", "Nike", "Lifestyle", "men", []int{9}, 7),
	}}
	svc := NewService(orders, products)

	got, err := svc.Recommend(context.Background(), "USER0001", 4)
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, "PRO0011", got[0].ProductID)
	assert.Equal(t, "PRO0012", got[1].ProductID)
	assert.Equal(t, "PRO0010", got[2].ProductID)
}

func TestRecommend_TiesKeepCandidateOrder(t *testing.T) {
	orders := &fakeOrdersRepo{orders: []domain.Order{
		orderWith(domain.OrderItem{ProductID: "PRO0001", Brand: "Asics", ShoeType: "Running", Gender: "men", SelectedSize: 8}),
	}}
	// Identical candidates score identically; stable sort keeps their
	// original catalog order.
	products := &fakeProductRepo{products: []domain.Product{
		catalogProduct("PRO0020", "Asics", "Running", "men", []int{8}, 1),
		catalogProduct("PRO0021", "Asics", "Running", "men", []int{8}, 1),
		catalogProduct("PRO0022", "Asics", "Running", "men", []int{8}, 1),
	}}
	svc := NewService(orders, products)

	got, err := svc.Recommend(context.Background(), "USER0001", 4)
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, "PRO0020", got[0].ProductID)
	assert.Equal(t, "PRO0021", got[1].ProductID)
	assert.Equal(t, "PRO0022", got[2].ProductID)
}

func TestRecommend_TopKTruncates(t *testing.T) {
	orders := &fakeOrdersRepo{orders: []domain.Order{
		orderWith(domain.OrderItem{ProductID: "PRO0001", Brand: "Nike", ShoeType: "Running", Gender: "men", SelectedSize: 9}),
	}}
	var catalog []domain.Product
	for _, id := range []string{"PRO0030", "PRO0031", "PRO0032", "PRO0033", "PRO0034", "PRO0035"} {
		catalog = append(catalog, catalogProduct(id, "Nike", "Running", "men", []int{9}, 1))
	}
	svc := NewService(orders, &fakeProductRepo{products: catalog})

	got, err := svc.Recommend(context.Background(), "USER0001", 0)
	require.NoError(t, err)
	assert.Len(t, got, DefaultTopK)
}

func TestRecommend_CancelledOrdersDoNotCount(t *testing.T) {
	// The repository filter is responsible for honored statuses; the fake
	// mirrors an empty honored set.
	products := &fakeProductRepo{products: []domain.Product{
		catalogProduct("PRO0040", "Nike", "Running", "men", []int{9}, 5),
	}}
	svc := NewService(&fakeOrdersRepo{orders: nil}, products)

	got, err := svc.Recommend(context.Background(), "USER0001", 4)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecommend_EmptyCandidateSet(t *testing.T) {
	orders := &fakeOrdersRepo{orders: []domain.Order{
		orderWith(domain.OrderItem{ProductID: "PRO0001", Brand: "Nike", ShoeType: "Running", Gender: "men", SelectedSize: 9}),
	}}
	svc := NewService(orders, &fakeProductRepo{})

	got, err := svc.Recommend(context.Background(), "USER0001", 4)
	require.NoError(t, err)
	assert.Empty(t, got)
}
