package analytics

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/client"
	"github.com/your-org/pos-backend/internal/domain/product"
	"github.com/your-org/pos-backend/internal/domain/sale"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAnalyticsTest(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	dsn := "file:analytics_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&client.Client{}, &product.Product{}, &sale.Sale{}, &sale.SaleDetail{},
	))

	return NewService(db, &config.Config{}), db
}

func TestGetDashboardStatsEmpty(t *testing.T) {
	svc, _ := setupAnalyticsTest(t)

	stats, err := svc.GetDashboardStats()
	require.NoError(t, err)
	assert.True(t, stats.TotalRevenue.IsZero())
	assert.Zero(t, stats.ItemsSold)
	assert.Zero(t, stats.ActiveClients)
	assert.Zero(t, stats.TotalSales)
	assert.Empty(t, stats.TopProducts)
	assert.Empty(t, stats.TopClients)
}

func TestGetDashboardStats(t *testing.T) {
	svc, db := setupAnalyticsTest(t)

	ana := client.Client{Name: "Ana"}
	luis := client.Client{Name: "Luis"}
	require.NoError(t, db.Create(&ana).Error)
	require.NoError(t, db.Create(&luis).Error)

	coffee := product.Product{Name: "Coffee", Price: decimal.RequireFromString("3.50")}
	tea := product.Product{Name: "Tea", Price: decimal.RequireFromString("2.00")}
	unsold := product.Product{Name: "Sugar", Price: decimal.RequireFromString("1.00")}
	require.NoError(t, db.Create(&coffee).Error)
	require.NoError(t, db.Create(&tea).Error)
	require.NoError(t, db.Create(&unsold).Error)

	s1 := sale.Sale{ClientID: ana.ID}
	s2 := sale.Sale{ClientID: ana.ID}
	s3 := sale.Sale{ClientID: luis.ID}
	require.NoError(t, db.Create(&s1).Error)
	require.NoError(t, db.Create(&s2).Error)
	require.NoError(t, db.Create(&s3).Error)

	for _, d := range []sale.SaleDetail{
		{SaleID: s1.ID, ProductID: coffee.ID, Quantity: 2},
		{SaleID: s2.ID, ProductID: tea.ID, Quantity: 5},
		{SaleID: s3.ID, ProductID: coffee.ID, Quantity: 1},
	} {
		detail := d
		require.NoError(t, db.Create(&detail).Error)
	}

	stats, err := svc.GetDashboardStats()
	require.NoError(t, err)

	// 3 x 3.50 coffee + 5 x 2.00 tea
	assert.True(t, stats.TotalRevenue.Equal(decimal.RequireFromString("20.50")),
		"got %s", stats.TotalRevenue)
	assert.EqualValues(t, 8, stats.ItemsSold)
	assert.EqualValues(t, 2, stats.ActiveClients)
	assert.EqualValues(t, 3, stats.TotalSales)
	assert.EqualValues(t, 3, stats.TotalProducts)

	require.Len(t, stats.TopProducts, 2)
	assert.Equal(t, "Tea", stats.TopProducts[0].ProductName)
	assert.EqualValues(t, 5, stats.TopProducts[0].TotalSold)
	assert.Equal(t, "Coffee", stats.TopProducts[1].ProductName)
	assert.EqualValues(t, 3, stats.TopProducts[1].TotalSold)

	require.Len(t, stats.TopClients, 2)
	assert.Equal(t, "Ana", stats.TopClients[0].ClientName)
	assert.EqualValues(t, 7, stats.TopClients[0].TotalItems)
	assert.Equal(t, "Luis", stats.TopClients[1].ClientName)
	assert.EqualValues(t, 1, stats.TopClients[1].TotalItems)
}
