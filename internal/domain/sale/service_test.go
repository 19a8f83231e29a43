package sale

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/client"
	"github.com/your-org/pos-backend/internal/domain/product"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSaleTest(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	dsn := "file:sale_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&client.Client{}, &product.Product{}, &Sale{}, &SaleDetail{},
	))

	return NewService(db, &config.Config{}), db
}

func seedSale(t *testing.T, db *gorm.DB) (*Sale, *product.Product) {
	t.Helper()

	cl := client.Client{Name: "Ana"}
	require.NoError(t, db.Create(&cl).Error)
	p := product.Product{Name: "Coffee", Price: decimal.RequireFromString("3.50")}
	require.NoError(t, db.Create(&p).Error)
	sl := Sale{ClientID: cl.ID}
	require.NoError(t, db.Create(&sl).Error)
	return &sl, &p
}

func TestGetUnknownSale(t *testing.T) {
	svc, _ := setupSaleTest(t)

	_, err := svc.Get(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddDetailValidates(t *testing.T) {
	svc, db := setupSaleTest(t)
	sl, p := seedSale(t, db)

	_, err := svc.AddDetail(999, &AddDetailRequest{ProductID: p.ID, Quantity: 1})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.AddDetail(sl.ID, &AddDetailRequest{ProductID: 999, Quantity: 1})
	assert.ErrorIs(t, err, product.ErrNotFound)

	_, err = svc.AddDetail(sl.ID, &AddDetailRequest{ProductID: p.ID, Quantity: 0})
	assert.ErrorIs(t, err, ErrInvalidQty)

	detail, err := svc.AddDetail(sl.ID, &AddDetailRequest{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, sl.ID, detail.SaleID)
	assert.Equal(t, "Coffee", detail.Product.Name)
}

func TestRemoveDetailScopedToSale(t *testing.T) {
	svc, db := setupSaleTest(t)
	sl, p := seedSale(t, db)

	other := Sale{ClientID: sl.ClientID}
	require.NoError(t, db.Create(&other).Error)
	foreign := SaleDetail{SaleID: other.ID, ProductID: p.ID, Quantity: 1}
	require.NoError(t, db.Create(&foreign).Error)

	// A detail id from another sale must not be reachable
	err := svc.RemoveDetail(sl.ID, foreign.ID)
	assert.ErrorIs(t, err, ErrDetailNotFound)

	var count int64
	require.NoError(t, db.Model(&SaleDetail{}).Where("id = ?", foreign.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// Scoped to its own sale it goes away
	require.NoError(t, svc.RemoveDetail(other.ID, foreign.ID))
}

func TestDeleteCascadesDetails(t *testing.T) {
	svc, db := setupSaleTest(t)
	sl, p := seedSale(t, db)

	_, err := svc.AddDetail(sl.ID, &AddDetailRequest{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(sl.ID))

	var details int64
	require.NoError(t, db.Model(&SaleDetail{}).Count(&details).Error)
	assert.Zero(t, details)

	assert.ErrorIs(t, svc.Delete(sl.ID), ErrNotFound)
}

func TestDetailLinesUseLivePrices(t *testing.T) {
	svc, db := setupSaleTest(t)
	sl, p := seedSale(t, db)

	_, err := svc.AddDetail(sl.ID, &AddDetailRequest{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = svc.AddDetail(sl.ID, &AddDetailRequest{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, db.Model(&product.Product{}).
		Where("id = ?", p.ID).
		Update("price", decimal.RequireFromString("4.00")).Error)

	fetched, err := svc.Get(sl.ID)
	require.NoError(t, err)

	lines, total := svc.DetailLines(fetched)
	require.Len(t, lines, 2)
	assert.True(t, lines[0].LineTotal.Equal(decimal.RequireFromString("8.00")))
	assert.True(t, lines[1].LineTotal.Equal(decimal.RequireFromString("4.00")))
	assert.True(t, total.Equal(decimal.RequireFromString("12.00")))
	assert.True(t, fetched.Total().Equal(total))
}

func TestUpdateDetail(t *testing.T) {
	svc, db := setupSaleTest(t)
	sl, p := seedSale(t, db)

	detail, err := svc.AddDetail(sl.ID, &AddDetailRequest{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)

	qty := 5
	updated, err := svc.UpdateDetail(detail.ID, &UpdateDetailRequest{Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Quantity)

	bad := 0
	_, err = svc.UpdateDetail(detail.ID, &UpdateDetailRequest{Quantity: &bad})
	assert.ErrorIs(t, err, ErrInvalidQty)
}

func TestCreateAndReassignSale(t *testing.T) {
	svc, db := setupSaleTest(t)

	cl := client.Client{Name: "Ana"}
	require.NoError(t, db.Create(&cl).Error)
	other := client.Client{Name: "Luis"}
	require.NoError(t, db.Create(&other).Error)

	sl, err := svc.Create(&CreateRequest{ClientID: cl.ID})
	require.NoError(t, err)
	assert.Equal(t, cl.ID, sl.ClientID)
	assert.Empty(t, sl.Details)

	_, err = svc.Create(&CreateRequest{ClientID: 999})
	assert.ErrorIs(t, err, client.ErrNotFound)

	moved, err := svc.Update(sl.ID, &UpdateRequest{ClientID: other.ID})
	require.NoError(t, err)
	assert.Equal(t, other.ID, moved.ClientID)
}
