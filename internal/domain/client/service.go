// internal/domain/client/service.go
package client

import (
	"errors"
	"fmt"

	"github.com/your-org/pos-backend/internal/config"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a client id does not exist
var ErrNotFound = errors.New("client not found")

// Service handles client business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new client service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateRequest represents client creation data
type CreateRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone"`
}

// UpdateRequest represents client update data
type UpdateRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
	Phone *string `json:"phone"`
}

// List returns all clients, newest first
func (s *Service) List() ([]Client, error) {
	var clients []Client
	if err := s.db.Order("id DESC").Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

// Get retrieves a client by id
func (s *Service) Get(id uint) (*Client, error) {
	var c Client
	if err := s.db.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return &c, nil
}

// Create creates a new client
func (s *Service) Create(req *CreateRequest) (*Client, error) {
	c := Client{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}
	if err := s.db.Create(&c).Error; err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return &c, nil
}

// Update updates an existing client
func (s *Service) Update(id uint, req *UpdateRequest) (*Client, error) {
	c, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}

	if err := s.db.Save(c).Error; err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return c, nil
}

// Delete removes a client and cascades to their sales
func (s *Service) Delete(id uint) error {
	result := s.db.Delete(&Client{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete client: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
