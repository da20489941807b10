package semantic

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/shopmind/shopmind/internal/domain"
)

func TestProductSnapshotFormat(t *testing.T) {
	product := &domain.Product{
		ID:          7,
		Name:        "Aurora Wireless Headphones",
		Description: "Over-ear wireless headphones.",
		Brand:       "Aurora",
		Category:    "Electronics",
		Price:       decimal.RequireFromString("129.9"),
		ReleaseDate: time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC),
		Available:   true,
		StockQty:    50,
	}

	want := `
Product Name: Aurora Wireless Headphones
Description: Over-ear wireless headphones.
Brand: Aurora
Category: Electronics
Price: 129.90
Release Date: 2025-02-14
Available: true
Stock: 50
`
	assert.Equal(t, want, ProductSnapshot(product))
}

func TestOrderSummaryFormat(t *testing.T) {
	order := &domain.Order{
		OrderCode:    "ORDA1B2C3D4",
		CustomerName: "Alice",
		Email:        "alice@example.com",
		Status:       domain.OrderStatusPlaced,
		OrderDate:    time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Items: []domain.OrderItem{
			{
				Product:    domain.Product{Name: "Widget"},
				Quantity:   2,
				TotalPrice: decimal.RequireFromString("39.98"),
			},
		},
	}

	want := "Order Summary: \n" +
		"Order ID: ORDA1B2C3D4\n" +
		"Customer: Alice\n" +
		"Email: alice@example.com\n" +
		"Date: 2025-03-01\n" +
		"Status: PLACED\n" +
		"Products: \n" +
		"- Widget x 2 = 39.98\n"
	assert.Equal(t, want, OrderSummary(order))
}
