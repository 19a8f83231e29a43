// internal/domain/cart/cart.go
package cart

import "context"

// Cart is the transient, session-scoped state of an in-progress sale.
// It only becomes durable when the checkout commits it.
type Cart struct {
	ClientID *uint      `json:"client_id"`
	Items    []CartItem `json:"items"`
}

// CartItem is one cart line. Name and price are snapshots taken when the
// item was added; the price is kept as a string-encoded decimal so the
// session payload stays plain JSON.
type CartItem struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
}

// Empty returns the reset cart shape: no client, no items
func Empty() Cart {
	return Cart{ClientID: nil, Items: []CartItem{}}
}

// IsEmpty reports whether the cart holds no items
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// SessionStore persists carts keyed by session id. Implementations must
// treat a missing or unreadable value as an empty cart so a corrupt
// session never breaks the workflow.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) Cart
	Save(ctx context.Context, sessionID string, cart Cart) error
	Clear(ctx context.Context, sessionID string) error
}
