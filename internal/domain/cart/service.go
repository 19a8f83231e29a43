// internal/domain/cart/service.go
package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/client"
	"github.com/your-org/pos-backend/internal/domain/product"
	"gorm.io/gorm"
)

// Sentinel errors surfaced to the HTTP layer
var (
	// ErrNoClient means no client has been picked yet; callers should
	// send the user back to the start step instead of failing hard.
	ErrNoClient     = errors.New("no client selected")
	ErrItemNotFound = errors.New("item not found in cart")
	ErrInvalidQty   = errors.New("quantity must be at least 1")
)

// Service drives the cart workflow: start, add items, remove items,
// cancel. Committing the cart lives in the checkout service.
type Service struct {
	db     *gorm.DB
	store  SessionStore
	config *config.Config
}

// NewService creates a new cart workflow service
func NewService(db *gorm.DB, store SessionStore, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		store:  store,
		config: cfg,
	}
}

// AddItemRequest represents the add-item form submission
type AddItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// Line is a cart item enriched with decimal arithmetic for display
type Line struct {
	Index    int             `json:"index"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Totals is the computed cart view: lines plus the running total.
// It is informational only; the commit recomputes from live prices.
type Totals struct {
	Lines []Line          `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

// Current returns the session's cart, empty if none exists
func (s *Service) Current(ctx context.Context, sessionID string) Cart {
	return s.store.Get(ctx, sessionID)
}

// StartSale validates the client and replaces the cart with a fresh one
// bound to that client.
func (s *Service) StartSale(ctx context.Context, sessionID string, clientID uint) (*client.Client, error) {
	var cl client.Client
	if err := s.db.First(&cl, clientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, client.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	fresh := Cart{ClientID: &cl.ID, Items: []CartItem{}}
	if err := s.store.Save(ctx, sessionID, fresh); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return &cl, nil
}

// AddItem appends a line snapshotting the product's current name and
// price. Adding the same product twice yields two separate lines;
// quantities are never merged.
func (s *Service) AddItem(ctx context.Context, sessionID string, req *AddItemRequest) (Cart, error) {
	crt := s.store.Get(ctx, sessionID)
	if crt.ClientID == nil {
		return crt, ErrNoClient
	}
	if req.Quantity < 1 {
		return crt, ErrInvalidQty
	}

	var p product.Product
	if err := s.db.First(&p, req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return crt, product.ErrNotFound
		}
		return crt, fmt.Errorf("failed to get product: %w", err)
	}

	crt.Items = append(crt.Items, CartItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price.String(),
		Quantity:  req.Quantity,
	})
	if err := s.store.Save(ctx, sessionID, crt); err != nil {
		return crt, fmt.Errorf("failed to save cart: %w", err)
	}
	return crt, nil
}

// RemoveItem drops the line at the zero-based position. An invalid
// index leaves the cart unchanged and reports ErrItemNotFound.
func (s *Service) RemoveItem(ctx context.Context, sessionID string, index int) (Cart, error) {
	crt := s.store.Get(ctx, sessionID)
	if index < 0 || index >= len(crt.Items) {
		return crt, ErrItemNotFound
	}

	crt.Items = append(crt.Items[:index], crt.Items[index+1:]...)
	if err := s.store.Save(ctx, sessionID, crt); err != nil {
		return crt, fmt.Errorf("failed to save cart: %w", err)
	}
	return crt, nil
}

// Cancel resets the cart unconditionally. Safe to call in any state.
func (s *Service) Cancel(ctx context.Context, sessionID string) error {
	if err := s.store.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// Client resolves the cart's selected client
func (s *Service) Client(crt Cart) (*client.Client, error) {
	if crt.ClientID == nil {
		return nil, ErrNoClient
	}
	var cl client.Client
	if err := s.db.First(&cl, *crt.ClientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, client.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return &cl, nil
}

// ComputeTotals derives per-line subtotals and the grand total from the
// snapshot prices. Pure; the cart is not touched. A snapshot that no
// longer parses counts as zero rather than failing the whole view.
func ComputeTotals(crt Cart) Totals {
	totals := Totals{
		Lines: make([]Line, 0, len(crt.Items)),
		Total: decimal.Zero,
	}
	for i, item := range crt.Items {
		price, err := decimal.NewFromString(item.Price)
		if err != nil {
			price = decimal.Zero
		}
		subtotal := price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		totals.Total = totals.Total.Add(subtotal)
		totals.Lines = append(totals.Lines, Line{
			Index:    i,
			Name:     item.Name,
			Price:    price,
			Quantity: item.Quantity,
			Subtotal: subtotal,
		})
	}
	return totals
}
