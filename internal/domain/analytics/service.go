// internal/domain/analytics/service.go
package analytics

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/your-org/pos-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles dashboard analytics queries
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new analytics service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// DashboardStats represents the dashboard KPI block
type DashboardStats struct {
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	ItemsSold     int64           `json:"items_sold"`
	ActiveClients int64           `json:"active_clients"`
	TotalSales    int64           `json:"total_sales"`
	TotalProducts int64           `json:"total_products"`

	TopProducts []ProductSalesData `json:"top_products"`
	TopClients  []ClientSalesData  `json:"top_clients"`
}

// ProductSalesData ranks a product by units sold
type ProductSalesData struct {
	ProductName string `json:"product_name"`
	TotalSold   int64  `json:"total_sold"`
}

// ClientSalesData ranks a client by items bought
type ClientSalesData struct {
	ClientName string `json:"client_name"`
	TotalItems int64  `json:"total_items"`
}

// GetDashboardStats aggregates the KPI totals and the top-5 rankings
func (s *Service) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{
		TotalRevenue: decimal.Zero,
		TopProducts:  []ProductSalesData{},
		TopClients:   []ClientSalesData{},
	}

	// Revenue derives from live product prices, matching how sale
	// subtotals are computed on read.
	var revenue struct {
		Total decimal.NullDecimal
	}
	err := s.db.Table("sale_details").
		Select("SUM(sale_details.quantity * products.price) AS total").
		Joins("JOIN products ON products.id = sale_details.product_id").
		Scan(&revenue).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate revenue: %w", err)
	}
	if revenue.Total.Valid {
		stats.TotalRevenue = revenue.Total.Decimal
	}

	var itemsSold struct {
		Quantity *int64
	}
	err = s.db.Table("sale_details").
		Select("SUM(quantity) AS quantity").
		Scan(&itemsSold).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate items sold: %w", err)
	}
	if itemsSold.Quantity != nil {
		stats.ItemsSold = *itemsSold.Quantity
	}

	err = s.db.Table("sales").
		Distinct("client_id").
		Count(&stats.ActiveClients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count active clients: %w", err)
	}

	if err := s.db.Table("sales").Count(&stats.TotalSales).Error; err != nil {
		return nil, fmt.Errorf("failed to count sales: %w", err)
	}
	if err := s.db.Table("products").Count(&stats.TotalProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	err = s.db.Table("sale_details").
		Select("products.name AS product_name, SUM(sale_details.quantity) AS total_sold").
		Joins("JOIN products ON products.id = sale_details.product_id").
		Group("products.name").
		Order("total_sold DESC").
		Limit(5).
		Scan(&stats.TopProducts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank products: %w", err)
	}

	err = s.db.Table("sales").
		Select("clients.name AS client_name, SUM(sale_details.quantity) AS total_items").
		Joins("JOIN clients ON clients.id = sales.client_id").
		Joins("JOIN sale_details ON sale_details.sale_id = sales.id").
		Group("clients.name").
		Order("total_items DESC").
		Limit(5).
		Scan(&stats.TopClients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank clients: %w", err)
	}

	return stats, nil
}
