// internal/domain/sale/service.go
package sale

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/product"
	"gorm.io/gorm"
)

// Sentinel errors surfaced to the HTTP layer
var (
	ErrNotFound       = errors.New("sale not found")
	ErrDetailNotFound = errors.New("sale detail not found")
	ErrInvalidQty     = errors.New("quantity must be at least 1")
)

// Service handles persisted sale business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new sale service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// AddDetailRequest represents a line item added to an existing sale
type AddDetailRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// DetailLine is a detail enriched with its live line total for display
type DetailLine struct {
	Detail    SaleDetail      `json:"detail"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// List returns all sales with their clients and details, newest first
func (s *Service) List() ([]Sale, error) {
	var sales []Sale
	err := s.db.
		Preload("Client").
		Preload("Details").
		Preload("Details.Product").
		Order("created_at DESC").
		Find(&sales).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return sales, nil
}

// Get retrieves a sale with its client and details
func (s *Service) Get(id uint) (*Sale, error) {
	var sl Sale
	err := s.db.
		Preload("Client").
		Preload("Details", func(db *gorm.DB) *gorm.DB { return db.Order("sale_details.id") }).
		Preload("Details.Product").
		First(&sl, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}
	return &sl, nil
}

// Delete removes a sale; its details are cascade-deleted
func (s *Service) Delete(id uint) error {
	result := s.db.Select("Details").Delete(&Sale{ID: id})
	if result.Error != nil {
		return fmt.Errorf("failed to delete sale: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddDetail inserts a single line item against an already committed sale.
// It bypasses the cart entirely.
func (s *Service) AddDetail(saleID uint, req *AddDetailRequest) (*SaleDetail, error) {
	if req.Quantity < 1 {
		return nil, ErrInvalidQty
	}

	var sl Sale
	if err := s.db.First(&sl, saleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}

	var p product.Product
	if err := s.db.First(&p, req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, product.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	detail := SaleDetail{
		SaleID:    sl.ID,
		ProductID: p.ID,
		Quantity:  req.Quantity,
	}
	if err := s.db.Create(&detail).Error; err != nil {
		return nil, fmt.Errorf("failed to create sale detail: %w", err)
	}
	detail.Product = p
	return &detail, nil
}

// RemoveDetail deletes one detail scoped to the given sale. A detail id
// belonging to a different sale is reported as not found so guessed ids
// cannot reach across sales.
func (s *Service) RemoveDetail(saleID, detailID uint) error {
	var sl Sale
	if err := s.db.First(&sl, saleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get sale: %w", err)
	}

	result := s.db.Where("sale_id = ?", saleID).Delete(&SaleDetail{}, detailID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete sale detail: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrDetailNotFound
	}
	return nil
}

// DetailLines returns the sale's details enriched with live line totals
// plus the grand total, for the edit view.
func (s *Service) DetailLines(sl *Sale) ([]DetailLine, decimal.Decimal) {
	lines := make([]DetailLine, 0, len(sl.Details))
	total := decimal.Zero
	for i := range sl.Details {
		lineTotal := sl.Details[i].Subtotal()
		total = total.Add(lineTotal)
		lines = append(lines, DetailLine{
			Detail:    sl.Details[i],
			LineTotal: lineTotal,
		})
	}
	return lines, total
}
