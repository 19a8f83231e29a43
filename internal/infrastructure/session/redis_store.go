// internal/infrastructure/session/redis_store.go
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/pos-backend/internal/domain/cart"
)

// RedisStore persists session carts in Redis as JSON under a per-session
// key. It implements cart.SessionStore.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed session store
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("pos:session:%s", sessionID)
}

// Get returns the session's cart. A missing key, a Redis failure, or a
// payload that does not decode all yield the empty cart; the workflow
// never sees a broken session.
func (s *RedisStore) Get(ctx context.Context, sessionID string) cart.Cart {
	if sessionID == "" {
		return cart.Empty()
	}

	data, err := s.client.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return cart.Empty()
	}

	var crt cart.Cart
	if err := json.Unmarshal([]byte(data), &crt); err != nil {
		return cart.Empty()
	}
	if crt.Items == nil {
		crt.Items = []cart.CartItem{}
	}
	return crt
}

// Save overwrites the session's cart and refreshes its expiration
func (s *RedisStore) Save(ctx context.Context, sessionID string, crt cart.Cart) error {
	data, err := json.Marshal(crt)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store cart: %w", err)
	}
	return nil
}

// Clear resets the session's cart to the empty shape
func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	return s.Save(ctx, sessionID, cart.Empty())
}
