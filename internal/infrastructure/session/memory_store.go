// internal/infrastructure/session/memory_store.go
package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/your-org/pos-backend/internal/domain/cart"
)

// MemoryStore keeps session carts in process memory. It mirrors the
// Redis store's JSON round-trip so both behave identically, and exists
// mainly for tests and local development without Redis.
type MemoryStore struct {
	mu       sync.RWMutex
	payloads map[string][]byte
}

// NewMemoryStore creates an in-memory session store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		payloads: make(map[string][]byte),
	}
}

// Get returns the session's cart, empty on miss or corrupt payload
func (s *MemoryStore) Get(ctx context.Context, sessionID string) cart.Cart {
	s.mu.RLock()
	data, ok := s.payloads[sessionID]
	s.mu.RUnlock()
	if !ok {
		return cart.Empty()
	}

	var crt cart.Cart
	if err := json.Unmarshal(data, &crt); err != nil {
		return cart.Empty()
	}
	if crt.Items == nil {
		crt.Items = []cart.CartItem{}
	}
	return crt
}

// Save overwrites the session's cart
func (s *MemoryStore) Save(ctx context.Context, sessionID string, crt cart.Cart) error {
	data, err := json.Marshal(crt)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.payloads[sessionID] = data
	s.mu.Unlock()
	return nil
}

// Clear resets the session's cart to the empty shape
func (s *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	return s.Save(ctx, sessionID, cart.Empty())
}

// Corrupt overwrites the stored payload with raw bytes. Test hook for
// exercising the defensive decode path.
func (s *MemoryStore) Corrupt(sessionID string, payload []byte) {
	s.mu.Lock()
	s.payloads[sessionID] = payload
	s.mu.Unlock()
}
