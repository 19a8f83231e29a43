// internal/domain/product/entity.go
package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a sellable product
type Product struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"not null;size:100" json:"name"`
	Price     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	CreatedAt time.Time       `json:"created_at"`
}

// TableName overrides the table name
func (Product) TableName() string {
	return "products"
}
