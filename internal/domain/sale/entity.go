// internal/domain/sale/entity.go
package sale

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/pos-backend/internal/domain/client"
	"github.com/your-org/pos-backend/internal/domain/product"
)

// Sale represents a committed sale owned by a client
type Sale struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	ClientID  uint          `gorm:"not null;index" json:"client_id"`
	Client    client.Client `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"client"`
	CreatedAt time.Time     `json:"created_at"`

	// Details are exclusively owned and removed with the sale
	Details []SaleDetail `gorm:"foreignKey:SaleID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"details"`
}

// SaleDetail represents one line item of a sale
type SaleDetail struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	SaleID    uint            `gorm:"not null;index" json:"sale_id"`
	ProductID uint            `gorm:"not null;index" json:"product_id"`
	Product   product.Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"product"`
	Quantity  int             `gorm:"not null;default:1" json:"quantity"`
}

// TableName overrides
func (Sale) TableName() string       { return "sales" }
func (SaleDetail) TableName() string { return "sale_details" }

// Subtotal derives the line value from the current product price.
// The price is intentionally not stored on the detail, so the value
// floats with later price changes.
func (d *SaleDetail) Subtotal() decimal.Decimal {
	return d.Product.Price.Mul(decimal.NewFromInt(int64(d.Quantity)))
}

// Total sums the subtotals of all loaded details
func (s *Sale) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range s.Details {
		total = total.Add(s.Details[i].Subtotal())
	}
	return total
}
