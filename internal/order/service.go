// Package order implements order placement and listing. Placement is the
// one path that touches both the relational store and the semantic index:
// stock mutation and order persistence are durable writes, index documents
// follow best-effort through the indexer.
package order

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shopmind/shopmind/internal/domain"
	"github.com/shopmind/shopmind/internal/store"
)

const orderCodePrefix = "ORD"

// ErrEmptyOrder reports a placement request without line items.
var ErrEmptyOrder = errors.New("order has no items")

// Indexer is the slice of the semantic indexer that placement needs.
type Indexer interface {
	SyncProduct(ctx context.Context, product *domain.Product)
	AddOrderSummary(ctx context.Context, order *domain.Order)
}

// Service orchestrates order placement: stock decrement, product
// persistence, index resync per product, order persistence and the order
// summary document.
type Service struct {
	products store.ProductRepository
	orders   store.OrderRepository
	indexer  Indexer
}

func NewService(products store.ProductRepository, orders store.OrderRepository, indexer Indexer) *Service {
	return &Service{products: products, orders: orders, indexer: indexer}
}

// newOrderCode returns "ORD" plus 8 uppercase hex chars. Uniqueness is
// probabilistic; collisions are not retried and the unique index on
// order_code would reject one.
func newOrderCode() string {
	return orderCodePrefix + strings.ToUpper(uuid.NewString()[:8])
}

// PlaceOrder validates nothing beyond product existence: stock is
// decremented unconditionally and may go negative, matching the observed
// behavior of the system this replaces. There is no compensating rollback:
// a missing product aborts placement but leaves earlier items' stock
// mutations and index writes in place.
func (s *Service) PlaceOrder(ctx context.Context, req *domain.OrderRequest) (*domain.OrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	now := time.Now()
	order := &domain.Order{
		OrderCode:    newOrderCode(),
		CustomerName: req.CustomerName,
		Email:        req.Email,
		Status:       domain.OrderStatusPlaced,
		// date only, no time of day retained
		OrderDate: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
	}

	for _, itemReq := range req.Items {
		product, err := s.products.GetByID(ctx, itemReq.ProductID)
		if err != nil {
			return nil, err
		}

		product.StockQty -= itemReq.Quantity
		if err := s.products.Save(ctx, product); err != nil {
			return nil, err
		}

		s.indexer.SyncProduct(ctx, product)

		order.Items = append(order.Items, domain.OrderItem{
			ProductID:  product.ID,
			Product:    *product,
			Quantity:   itemReq.Quantity,
			TotalPrice: product.Price.Mul(decimal.NewFromInt(int64(itemReq.Quantity))),
		})
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	s.indexer.AddOrderSummary(ctx, order)

	zap.L().Info("order placed",
		zap.String("order_code", order.OrderCode),
		zap.String("customer", order.CustomerName),
		zap.Int("items", len(order.Items)))

	resp := domain.OrderResponseFromOrder(order)
	return &resp, nil
}

// ListOrders returns every persisted order in storage order.
func (s *Service) ListOrders(ctx context.Context) ([]domain.OrderResponse, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]domain.OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, domain.OrderResponseFromOrder(&orders[i]))
	}
	return responses, nil
}
