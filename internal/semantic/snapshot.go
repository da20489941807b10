package semantic

import (
	"fmt"
	"strings"

	"github.com/shopmind/shopmind/internal/domain"
)

// Metadata keys used to tag index documents.
const (
	MetaProductID = "productId"
	MetaOrderID   = "orderId"
)

// ProductSnapshot renders the free-text document describing a product's
// current state. Chat answers are grounded on these snapshots, so every
// catalog mutation must re-render one.
func ProductSnapshot(product *domain.Product) string {
	return fmt.Sprintf(`
Product Name: %s
Description: %s
Brand: %s
Category: %s
Price: %s
Release Date: %s
Available: %t
Stock: %d
`,
		product.Name,
		product.Description,
		product.Brand,
		product.Category,
		product.Price.StringFixed(2),
		product.ReleaseDate.Format("2006-01-02"),
		product.Available,
		product.StockQty,
	)
}

// OrderSummary renders the free-text document describing a placed order.
func OrderSummary(order *domain.Order) string {
	var b strings.Builder
	b.WriteString("Order Summary: \n")
	b.WriteString("Order ID: " + order.OrderCode + "\n")
	b.WriteString("Customer: " + order.CustomerName + "\n")
	b.WriteString("Email: " + order.Email + "\n")
	b.WriteString("Date: " + order.OrderDate.Format("2006-01-02") + "\n")
	b.WriteString("Status: " + order.Status + "\n")
	b.WriteString("Products: \n")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "- %s x %d = %s\n", item.Product.Name, item.Quantity, item.TotalPrice.StringFixed(2))
	}
	return b.String()
}
