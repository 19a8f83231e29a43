package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/pos-backend/internal/domain/cart"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	clientID := uint(7)
	in := cart.Cart{
		ClientID: &clientID,
		Items: []cart.CartItem{
			{ProductID: 1, Name: "Coffee", Price: "3.50", Quantity: 2},
		},
	}
	require.NoError(t, store.Save(ctx, "s1", in))

	out := store.Get(ctx, "s1")
	require.NotNil(t, out.ClientID)
	assert.Equal(t, clientID, *out.ClientID)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "3.50", out.Items[0].Price)
}

func TestMemoryStoreMissingSession(t *testing.T) {
	store := NewMemoryStore()

	out := store.Get(context.Background(), "nope")
	assert.Nil(t, out.ClientID)
	assert.NotNil(t, out.Items)
	assert.Empty(t, out.Items)
}

func TestMemoryStoreCorruptPayload(t *testing.T) {
	store := NewMemoryStore()

	store.Corrupt("s1", []byte("{broken"))
	out := store.Get(context.Background(), "s1")
	assert.Nil(t, out.ClientID)
	assert.Empty(t, out.Items)
}

func TestMemoryStoreClear(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	clientID := uint(1)
	require.NoError(t, store.Save(ctx, "s1", cart.Cart{
		ClientID: &clientID,
		Items:    []cart.CartItem{{ProductID: 1, Name: "Tea", Price: "2.00", Quantity: 1}},
	}))
	require.NoError(t, store.Clear(ctx, "s1"))

	out := store.Get(ctx, "s1")
	assert.Nil(t, out.ClientID)
	assert.True(t, out.IsEmpty())
}
