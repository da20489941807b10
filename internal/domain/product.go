package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog item. Image bytes are stored inline; an
// external object store is out of scope.
type Product struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"index" json:"name" form:"name"`
	Description string          `gorm:"type:text" json:"description" form:"description"`
	Brand       string          `json:"brand" form:"brand"`
	Category    string          `gorm:"index" json:"category" form:"category"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2)" json:"price" form:"price"`
	ReleaseDate time.Time       `json:"release_date" form:"release_date"`
	Available   bool            `json:"available" form:"available"`
	StockQty    int             `json:"stock_qty" form:"stock_qty"`
	ImageName   string          `gorm:"size:255" json:"image_name"`
	ImageType   string          `gorm:"size:128" json:"image_type"`
	ImageData   []byte          `json:"-"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "ecom_product"
}
