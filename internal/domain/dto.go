package domain

import (
	"github.com/shopspring/decimal"
)

// OrderItemRequest is one requested line of an order.
type OrderItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// OrderRequest is the order placement payload.
type OrderRequest struct {
	CustomerName string             `json:"customerName"`
	Email        string             `json:"email"`
	Items        []OrderItemRequest `json:"items"`
}

// OrderItemResponse mirrors one persisted order line.
type OrderItemResponse struct {
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

// OrderResponse mirrors a persisted order. OrderDate is formatted as a
// plain date, no time of day is retained.
type OrderResponse struct {
	OrderID      string              `json:"orderId"`
	CustomerName string              `json:"customerName"`
	Email        string              `json:"email"`
	Status       string              `json:"status"`
	OrderDate    string              `json:"orderDate"`
	Items        []OrderItemResponse `json:"items"`
}

// OrderResponseFromOrder maps a persisted order and its items into the
// response shape shared by placement and listing.
func OrderResponseFromOrder(order *Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
			TotalPrice:  item.TotalPrice,
		})
	}
	return OrderResponse{
		OrderID:      order.OrderCode,
		CustomerName: order.CustomerName,
		Email:        order.Email,
		Status:       order.Status,
		OrderDate:    order.OrderDate.Format("2006-01-02"),
		Items:        items,
	}
}

// GenerateDescriptionRequest asks the AI layer for a product description.
type GenerateDescriptionRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// GenerateImageRequest asks the AI layer for a product image.
type GenerateImageRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
}
