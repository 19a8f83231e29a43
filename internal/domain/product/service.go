// internal/domain/product/service.go
package product

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/your-org/pos-backend/internal/config"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a product id does not exist
var ErrNotFound = errors.New("product not found")

// Service handles product business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new product service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateRequest represents product creation data
type CreateRequest struct {
	Name  string          `json:"name" binding:"required"`
	Price decimal.Decimal `json:"price" binding:"required"`
}

// UpdateRequest represents product update data
type UpdateRequest struct {
	Name  *string          `json:"name"`
	Price *decimal.Decimal `json:"price"`
}

// List returns all products, newest first
func (s *Service) List() ([]Product, error) {
	var products []Product
	if err := s.db.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// Get retrieves a product by id
func (s *Service) Get(id uint) (*Product, error) {
	var p Product
	if err := s.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &p, nil
}

// Create creates a new product
func (s *Service) Create(req *CreateRequest) (*Product, error) {
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("price must be greater than or equal to 0")
	}

	p := Product{
		Name:  req.Name,
		Price: req.Price,
	}
	if err := s.db.Create(&p).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &p, nil
}

// Update updates an existing product
func (s *Service) Update(id uint, req *UpdateRequest) (*Product, error) {
	p, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, fmt.Errorf("price must be greater than or equal to 0")
		}
		p.Price = *req.Price
	}

	if err := s.db.Save(p).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return p, nil
}

// Delete removes a product
func (s *Service) Delete(id uint) error {
	result := s.db.Delete(&Product{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
