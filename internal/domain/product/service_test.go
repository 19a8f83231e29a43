package product

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/pos-backend/internal/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupProductTest(t *testing.T) *Service {
	t.Helper()

	dsn := "file:product_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Product{}))

	return NewService(db, &config.Config{})
}

func TestProductCRUD(t *testing.T) {
	svc := setupProductTest(t)

	p, err := svc.Create(&CreateRequest{Name: "Coffee", Price: decimal.RequireFromString("3.50")})
	require.NoError(t, err)
	require.NotZero(t, p.ID)

	got, err := svc.Get(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Coffee", got.Name)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("3.50")))

	name := "Espresso"
	price := decimal.RequireFromString("4.25")
	updated, err := svc.Update(p.ID, &UpdateRequest{Name: &name, Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "Espresso", updated.Name)
	assert.True(t, updated.Price.Equal(price))

	require.NoError(t, svc.Delete(p.ID))
	_, err = svc.Get(p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(p.ID), ErrNotFound)
}

func TestProductRejectsNegativePrice(t *testing.T) {
	svc := setupProductTest(t)

	_, err := svc.Create(&CreateRequest{Name: "Coffee", Price: decimal.RequireFromString("-1.00")})
	assert.Error(t, err)

	p, err := svc.Create(&CreateRequest{Name: "Coffee", Price: decimal.RequireFromString("3.50")})
	require.NoError(t, err)

	bad := decimal.RequireFromString("-0.01")
	_, err = svc.Update(p.ID, &UpdateRequest{Price: &bad})
	assert.Error(t, err)
}
