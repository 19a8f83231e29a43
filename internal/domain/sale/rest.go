// internal/domain/sale/rest.go
package sale

import (
	"errors"
	"fmt"

	"github.com/your-org/pos-backend/internal/domain/client"
	"github.com/your-org/pos-backend/internal/domain/product"
	"gorm.io/gorm"
)

// Operations backing the flat REST surface. The cart workflow does not
// use these; they exist for direct API manipulation of sales and
// details.

// CreateRequest represents direct sale creation data
type CreateRequest struct {
	ClientID uint `json:"client_id" binding:"required"`
}

// UpdateRequest represents direct sale update data
type UpdateRequest struct {
	ClientID uint `json:"client_id" binding:"required"`
}

// UpdateDetailRequest represents direct detail update data
type UpdateDetailRequest struct {
	ProductID *uint `json:"product_id"`
	Quantity  *int  `json:"quantity"`
}

// Create inserts a sale with no details for the given client
func (s *Service) Create(req *CreateRequest) (*Sale, error) {
	var cl client.Client
	if err := s.db.First(&cl, req.ClientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, client.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	sl := Sale{ClientID: cl.ID}
	if err := s.db.Create(&sl).Error; err != nil {
		return nil, fmt.Errorf("failed to create sale: %w", err)
	}
	sl.Client = cl
	sl.Details = []SaleDetail{}
	return &sl, nil
}

// Update reassigns the sale to another client
func (s *Service) Update(id uint, req *UpdateRequest) (*Sale, error) {
	sl, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	var cl client.Client
	if err := s.db.First(&cl, req.ClientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, client.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	sl.ClientID = cl.ID
	sl.Client = cl
	if err := s.db.Model(&Sale{}).Where("id = ?", sl.ID).Update("client_id", cl.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to update sale: %w", err)
	}
	return sl, nil
}

// ListDetails returns all sale details, newest first
func (s *Service) ListDetails() ([]SaleDetail, error) {
	var details []SaleDetail
	err := s.db.
		Preload("Product").
		Order("id DESC").
		Find(&details).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sale details: %w", err)
	}
	return details, nil
}

// GetDetail retrieves one detail by id
func (s *Service) GetDetail(id uint) (*SaleDetail, error) {
	var d SaleDetail
	if err := s.db.Preload("Product").First(&d, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDetailNotFound
		}
		return nil, fmt.Errorf("failed to get sale detail: %w", err)
	}
	return &d, nil
}

// UpdateDetail changes a detail's product or quantity
func (s *Service) UpdateDetail(id uint, req *UpdateDetailRequest) (*SaleDetail, error) {
	d, err := s.GetDetail(id)
	if err != nil {
		return nil, err
	}

	if req.ProductID != nil {
		var p product.Product
		if err := s.db.First(&p, *req.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, product.ErrNotFound
			}
			return nil, fmt.Errorf("failed to get product: %w", err)
		}
		d.ProductID = p.ID
		d.Product = p
	}
	if req.Quantity != nil {
		if *req.Quantity < 1 {
			return nil, ErrInvalidQty
		}
		d.Quantity = *req.Quantity
	}

	if err := s.db.Save(d).Error; err != nil {
		return nil, fmt.Errorf("failed to update sale detail: %w", err)
	}
	return d, nil
}

// DeleteDetail removes one detail by id, regardless of owning sale
func (s *Service) DeleteDetail(id uint) error {
	result := s.db.Delete(&SaleDetail{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete sale detail: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrDetailNotFound
	}
	return nil
}
