package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order status values. Only OrderStatusPlaced is ever written today; the
// column stays a plain string so later states need no migration.
const (
	OrderStatusPlaced = "PLACED"
)

// Order is a placed customer order. OrderCode is the human-readable
// identifier exposed over the API ("ORD" + 8 hex chars); the numeric ID
// stays internal.
type Order struct {
	ID           int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderCode    string      `gorm:"uniqueIndex;size:32" json:"order_code"`
	CustomerName string      `json:"customer_name"`
	Email        string      `json:"email"`
	Status       string      `gorm:"size:32" json:"status"`
	OrderDate    time.Time   `json:"order_date"`
	Items        []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// TableName Specify table name
func (Order) TableName() string {
	return "ecom_order"
}

// OrderItem is one line of an order. TotalPrice is the unit price at
// placement time multiplied by quantity; it is never re-derived.
type OrderItem struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID    int64           `gorm:"index" json:"order_id"`
	ProductID  int64           `gorm:"index" json:"product_id"`
	Product    Product         `gorm:"foreignKey:ProductID" json:"product"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(10,2)" json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
}

// TableName Specify table name
func (OrderItem) TableName() string {
	return "ecom_order_item"
}
