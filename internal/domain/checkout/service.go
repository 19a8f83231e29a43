// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/cart"
	"github.com/your-org/pos-backend/internal/domain/client"
	"github.com/your-org/pos-backend/internal/domain/product"
	"github.com/your-org/pos-backend/internal/domain/sale"
	"gorm.io/gorm"
)

// ErrEmptyCart is returned when confirming a cart with no items
var ErrEmptyCart = errors.New("no items to confirm")

// Service materializes a session cart into durable Sale and SaleDetail
// rows. The whole commit runs inside one database transaction.
type Service struct {
	db     *gorm.DB
	store  cart.SessionStore
	config *config.Config
}

// NewService creates a new checkout service
func NewService(db *gorm.DB, store cart.SessionStore, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		store:  store,
		config: cfg,
	}
}

// Confirm commits the session's cart. All rows are written atomically:
// any failure mid-loop (a product deleted between add and confirm)
// rolls the whole sale back and leaves the cart untouched so the user
// can retry. The cart's snapshot price is discarded here; details only
// record product and quantity, so subtotals are always derived from the
// live product price.
func (s *Service) Confirm(ctx context.Context, sessionID string) (*sale.Sale, error) {
	crt := s.store.Get(ctx, sessionID)
	if crt.IsEmpty() {
		return nil, ErrEmptyCart
	}
	if crt.ClientID == nil {
		return nil, client.ErrNotFound
	}

	var committed sale.Sale
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var cl client.Client
		if err := tx.First(&cl, *crt.ClientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return client.ErrNotFound
			}
			return fmt.Errorf("failed to get client: %w", err)
		}

		committed = sale.Sale{ClientID: cl.ID}
		if err := tx.Create(&committed).Error; err != nil {
			return fmt.Errorf("failed to create sale: %w", err)
		}
		committed.Client = cl

		for _, item := range crt.Items {
			var p product.Product
			if err := tx.First(&p, item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return product.ErrNotFound
				}
				return fmt.Errorf("failed to get product: %w", err)
			}

			detail := sale.SaleDetail{
				SaleID:    committed.ID,
				ProductID: p.ID,
				Quantity:  item.Quantity,
			}
			if err := tx.Create(&detail).Error; err != nil {
				return fmt.Errorf("failed to create sale detail: %w", err)
			}
			detail.Product = p
			committed.Details = append(committed.Details, detail)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// The sale is durable at this point; a failed cart reset should not
	// undo it.
	if err := s.store.Clear(ctx, sessionID); err != nil {
		return &committed, fmt.Errorf("sale committed but failed to clear cart: %w", err)
	}
	return &committed, nil
}
