package cart_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/cart"
	"github.com/your-org/pos-backend/internal/domain/client"
	"github.com/your-org/pos-backend/internal/domain/product"
	"github.com/your-org/pos-backend/internal/infrastructure/session"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCartTest(t *testing.T) (*cart.Service, *session.MemoryStore, *gorm.DB) {
	t.Helper()

	dsn := "file:cart_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&client.Client{}, &product.Product{}))

	store := session.NewMemoryStore()
	return cart.NewService(db, store, &config.Config{}), store, db
}

func seedClient(t *testing.T, db *gorm.DB, name string) *client.Client {
	t.Helper()
	cl := client.Client{Name: name}
	require.NoError(t, db.Create(&cl).Error)
	return &cl
}

func seedProduct(t *testing.T, db *gorm.DB, name, price string) *product.Product {
	t.Helper()
	p := product.Product{Name: name, Price: decimal.RequireFromString(price)}
	require.NoError(t, db.Create(&p).Error)
	return &p
}

func TestStartSaleReplacesCart(t *testing.T) {
	svc, _, db := setupCartTest(t)
	ctx := context.Background()

	cl := seedClient(t, db, "Ana")
	p := seedProduct(t, db, "Coffee", "3.50")

	_, err := svc.StartSale(ctx, "s1", cl.ID)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "s1", &cart.AddItemRequest{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)

	// Starting again discards the items and rebinds the client
	other := seedClient(t, db, "Luis")
	_, err = svc.StartSale(ctx, "s1", other.ID)
	require.NoError(t, err)

	crt := svc.Current(ctx, "s1")
	require.NotNil(t, crt.ClientID)
	assert.Equal(t, other.ID, *crt.ClientID)
	assert.Empty(t, crt.Items)
}

func TestStartSaleUnknownClient(t *testing.T) {
	svc, _, _ := setupCartTest(t)

	_, err := svc.StartSale(context.Background(), "s1", 999)
	assert.ErrorIs(t, err, client.ErrNotFound)
}

func TestAddItemAppendsWithoutMerging(t *testing.T) {
	svc, _, db := setupCartTest(t)
	ctx := context.Background()

	cl := seedClient(t, db, "Ana")
	p := seedProduct(t, db, "Coffee", "3.50")
	_, err := svc.StartSale(ctx, "s1", cl.ID)
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, "s1", &cart.AddItemRequest{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)
	crt, err := svc.AddItem(ctx, "s1", &cart.AddItemRequest{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)

	// Same product twice stays two lines, quantities untouched
	require.Len(t, crt.Items, 2)
	assert.Equal(t, 2, crt.Items[0].Quantity)
	assert.Equal(t, 1, crt.Items[1].Quantity)
	assert.Equal(t, "3.5", crt.Items[0].Price)
}

func TestAddItemSnapshotSurvivesPriceChange(t *testing.T) {
	svc, _, db := setupCartTest(t)
	ctx := context.Background()

	cl := seedClient(t, db, "Ana")
	p := seedProduct(t, db, "Coffee", "3.50")
	_, err := svc.StartSale(ctx, "s1", cl.ID)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "s1", &cart.AddItemRequest{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, db.Model(&product.Product{}).
		Where("id = ?", p.ID).
		Update("price", decimal.RequireFromString("9.99")).Error)

	totals := cart.ComputeTotals(svc.Current(ctx, "s1"))
	assert.True(t, totals.Total.Equal(decimal.RequireFromString("3.50")),
		"displayed total uses the snapshot, got %s", totals.Total)
}

func TestAddItemRequiresClient(t *testing.T) {
	svc, _, db := setupCartTest(t)

	p := seedProduct(t, db, "Coffee", "3.50")
	_, err := svc.AddItem(context.Background(), "s1", &cart.AddItemRequest{ProductID: p.ID, Quantity: 1})
	assert.ErrorIs(t, err, cart.ErrNoClient)
}

func TestAddItemUnknownProduct(t *testing.T) {
	svc, _, db := setupCartTest(t)
	ctx := context.Background()

	cl := seedClient(t, db, "Ana")
	_, err := svc.StartSale(ctx, "s1", cl.ID)
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, "s1", &cart.AddItemRequest{ProductID: 999, Quantity: 1})
	assert.ErrorIs(t, err, product.ErrNotFound)
}

func TestRemoveItemByIndex(t *testing.T) {
	svc, _, db := setupCartTest(t)
	ctx := context.Background()

	cl := seedClient(t, db, "Ana")
	coffee := seedProduct(t, db, "Coffee", "3.50")
	tea := seedProduct(t, db, "Tea", "2.00")
	_, err := svc.StartSale(ctx, "s1", cl.ID)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "s1", &cart.AddItemRequest{ProductID: coffee.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "s1", &cart.AddItemRequest{ProductID: tea.ID, Quantity: 3})
	require.NoError(t, err)

	crt, err := svc.RemoveItem(ctx, "s1", 0)
	require.NoError(t, err)
	require.Len(t, crt.Items, 1)
	assert.Equal(t, "Tea", crt.Items[0].Name)
}

func TestRemoveItemOutOfRange(t *testing.T) {
	svc, _, db := setupCartTest(t)
	ctx := context.Background()

	cl := seedClient(t, db, "Ana")
	p := seedProduct(t, db, "Coffee", "3.50")
	_, err := svc.StartSale(ctx, "s1", cl.ID)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "s1", &cart.AddItemRequest{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)

	for _, index := range []int{-1, 1, 99} {
		_, err := svc.RemoveItem(ctx, "s1", index)
		assert.ErrorIs(t, err, cart.ErrItemNotFound, "index %d", index)
	}

	// The failed removals left the cart alone
	assert.Len(t, svc.Current(ctx, "s1").Items, 1)
}

func TestCancelIsIdempotent(t *testing.T) {
	svc, _, db := setupCartTest(t)
	ctx := context.Background()

	cl := seedClient(t, db, "Ana")
	p := seedProduct(t, db, "Coffee", "3.50")
	_, err := svc.StartSale(ctx, "s1", cl.ID)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "s1", &cart.AddItemRequest{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(ctx, "s1"))
	require.NoError(t, svc.Cancel(ctx, "s1"))

	crt := svc.Current(ctx, "s1")
	assert.Nil(t, crt.ClientID)
	assert.True(t, crt.IsEmpty())
}

func TestComputeTotals(t *testing.T) {
	crt := cart.Cart{Items: []cart.CartItem{
		{Name: "Coffee", Price: "3.50", Quantity: 2},
		{Name: "Tea", Price: "2.25", Quantity: 3},
	}}

	totals := cart.ComputeTotals(crt)
	require.Len(t, totals.Lines, 2)
	assert.True(t, totals.Lines[0].Subtotal.Equal(decimal.RequireFromString("7.00")))
	assert.True(t, totals.Lines[1].Subtotal.Equal(decimal.RequireFromString("6.75")))
	assert.True(t, totals.Total.Equal(decimal.RequireFromString("13.75")))
}

func TestComputeTotalsBadSnapshot(t *testing.T) {
	crt := cart.Cart{Items: []cart.CartItem{
		{Name: "Coffee", Price: "not-a-number", Quantity: 2},
		{Name: "Tea", Price: "2.00", Quantity: 1},
	}}

	totals := cart.ComputeTotals(crt)
	assert.True(t, totals.Lines[0].Subtotal.IsZero())
	assert.True(t, totals.Total.Equal(decimal.RequireFromString("2.00")))
}

func TestCorruptSessionYieldsEmptyCart(t *testing.T) {
	svc, store, _ := setupCartTest(t)

	store.Corrupt("s1", []byte("{not json"))
	crt := svc.Current(context.Background(), "s1")
	assert.Nil(t, crt.ClientID)
	assert.Empty(t, crt.Items)
}
