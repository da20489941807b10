package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopmind/shopmind/internal/domain"
	"github.com/shopmind/shopmind/internal/store"
)

type fakeProductRepo struct {
	products map[int64]*domain.Product
	saveErr  error
	saved    []int64
}

func newFakeProductRepo(products ...*domain.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[int64]*domain.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (r *fakeProductRepo) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, store.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) List(_ context.Context) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProductRepo) Search(_ context.Context, _ string) ([]domain.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Save(_ context.Context, product *domain.Product) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	cp := *product
	r.products[product.ID] = &cp
	r.saved = append(r.saved, product.ID)
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id int64) error {
	delete(r.products, id)
	return nil
}

type fakeOrderRepo struct {
	orders    []*domain.Order
	createErr error
}

func (r *fakeOrderRepo) Create(_ context.Context, order *domain.Order) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.orders = append(r.orders, order)
	return nil
}

func (r *fakeOrderRepo) List(_ context.Context) ([]domain.Order, error) {
	out := make([]domain.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *fakeOrderRepo) GetByCode(_ context.Context, code string) (*domain.Order, error) {
	for _, o := range r.orders {
		if o.OrderCode == code {
			return o, nil
		}
	}
	return nil, errors.New("not found")
}

type fakeIndexer struct {
	syncedProducts []int64
	orderSummaries []string
}

func (ix *fakeIndexer) SyncProduct(_ context.Context, product *domain.Product) {
	ix.syncedProducts = append(ix.syncedProducts, product.ID)
}

func (ix *fakeIndexer) AddOrderSummary(_ context.Context, order *domain.Order) {
	ix.orderSummaries = append(ix.orderSummaries, order.OrderCode)
}

func testProduct(id int64, price string, stock int) *domain.Product {
	return &domain.Product{
		ID:          id,
		Name:        "Widget",
		Description: "A widget",
		Brand:       "Acme",
		Category:    "Tools",
		Price:       decimal.RequireFromString(price),
		ReleaseDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Available:   true,
		StockQty:    stock,
	}
}

func TestPlaceOrderDecrementsStockAndComputesTotals(t *testing.T) {
	products := newFakeProductRepo(testProduct(1, "19.99", 10))
	orders := &fakeOrderRepo{}
	indexer := &fakeIndexer{}
	svc := NewService(products, orders, indexer)

	resp, err := svc.PlaceOrder(context.Background(), &domain.OrderRequest{
		CustomerName: "Alice",
		Email:        "alice@example.com",
		Items:        []domain.OrderItemRequest{{ProductID: 1, Quantity: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, 8, products.products[1].StockQty)
	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].TotalPrice.Equal(decimal.RequireFromString("39.98")),
		"expected 39.98, got %s", resp.Items[0].TotalPrice)
	assert.Equal(t, "Alice", resp.CustomerName)
	assert.Equal(t, domain.OrderStatusPlaced, resp.Status)
}

func TestPlaceOrderCodeFormat(t *testing.T) {
	products := newFakeProductRepo(testProduct(1, "5.00", 3))
	svc := NewService(products, &fakeOrderRepo{}, &fakeIndexer{})

	resp, err := svc.PlaceOrder(context.Background(), &domain.OrderRequest{
		CustomerName: "Bob",
		Items:        []domain.OrderItemRequest{{ProductID: 1, Quantity: 1}},
	})
	require.NoError(t, err)

	require.Len(t, resp.OrderID, 11)
	assert.Equal(t, "ORD", resp.OrderID[:3])
	for _, c := range resp.OrderID[3:] {
		assert.Contains(t, "0123456789ABCDEF", string(c))
	}
}

func TestPlaceOrderDateIsDateOnly(t *testing.T) {
	products := newFakeProductRepo(testProduct(1, "5.00", 3))
	svc := NewService(products, &fakeOrderRepo{}, &fakeIndexer{})

	resp, err := svc.PlaceOrder(context.Background(), &domain.OrderRequest{
		CustomerName: "Bob",
		Items:        []domain.OrderItemRequest{{ProductID: 1, Quantity: 1}},
	})
	require.NoError(t, err)

	now := time.Now()
	assert.Equal(t, now.Format("2006-01-02"), resp.OrderDate)
}

func TestPlaceOrderEmptyItems(t *testing.T) {
	svc := NewService(newFakeProductRepo(), &fakeOrderRepo{}, &fakeIndexer{})

	_, err := svc.PlaceOrder(context.Background(), &domain.OrderRequest{CustomerName: "Eve"})
	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestPlaceOrderUnknownProduct(t *testing.T) {
	svc := NewService(newFakeProductRepo(), &fakeOrderRepo{}, &fakeIndexer{})

	_, err := svc.PlaceOrder(context.Background(), &domain.OrderRequest{
		CustomerName: "Eve",
		Items:        []domain.OrderItemRequest{{ProductID: 99, Quantity: 1}},
	})
	assert.ErrorIs(t, err, store.ErrProductNotFound)
}

// A failure on a later item leaves earlier stock mutations and index
// writes in place; there is no compensating rollback.
func TestPlaceOrderPartialFailureKeepsEarlierMutations(t *testing.T) {
	products := newFakeProductRepo(testProduct(1, "10.00", 5))
	orders := &fakeOrderRepo{}
	indexer := &fakeIndexer{}
	svc := NewService(products, orders, indexer)

	_, err := svc.PlaceOrder(context.Background(), &domain.OrderRequest{
		CustomerName: "Mallory",
		Items: []domain.OrderItemRequest{
			{ProductID: 1, Quantity: 2},
			{ProductID: 404, Quantity: 1},
		},
	})
	require.ErrorIs(t, err, store.ErrProductNotFound)

	assert.Equal(t, 3, products.products[1].StockQty)
	assert.Equal(t, []int64{1}, indexer.syncedProducts)
	assert.Empty(t, orders.orders, "failed placement must not persist an order")
	assert.Empty(t, indexer.orderSummaries)
}

// Stock is decremented unconditionally, even past zero.
func TestPlaceOrderAllowsNegativeStock(t *testing.T) {
	products := newFakeProductRepo(testProduct(1, "10.00", 1))
	svc := NewService(products, &fakeOrderRepo{}, &fakeIndexer{})

	_, err := svc.PlaceOrder(context.Background(), &domain.OrderRequest{
		CustomerName: "Oscar",
		Items:        []domain.OrderItemRequest{{ProductID: 1, Quantity: 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, -2, products.products[1].StockQty)
}

func TestListOrdersRoundTrip(t *testing.T) {
	products := newFakeProductRepo(testProduct(1, "19.99", 10))
	orders := &fakeOrderRepo{}
	svc := NewService(products, orders, &fakeIndexer{})

	placed, err := svc.PlaceOrder(context.Background(), &domain.OrderRequest{
		CustomerName: "Alice",
		Email:        "alice@example.com",
		Items:        []domain.OrderItemRequest{{ProductID: 1, Quantity: 2}},
	})
	require.NoError(t, err)

	listed, err := svc.ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, placed.OrderID, listed[0].OrderID)
	assert.Equal(t, "Widget", listed[0].Items[0].ProductName)
	assert.True(t, listed[0].Items[0].TotalPrice.Equal(decimal.RequireFromString("39.98")))
}
