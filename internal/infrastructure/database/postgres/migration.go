// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"github.com/your-org/pos-backend/internal/domain/client"
	"github.com/your-org/pos-backend/internal/domain/product"
	"github.com/your-org/pos-backend/internal/domain/sale"
	"github.com/your-org/pos-backend/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Dependency order: referenced tables first
	models := []interface{}{
		&user.User{},
		&product.Product{},
		&client.Client{},
		&sale.Sale{},
		&sale.SaleDetail{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	log.Println("✅ Database migrations completed")
	return nil
}

// SeedInitialData seeds an admin account and sample catalog data for
// development environments
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	var userCount int64
	if err := m.db.Model(&user.User{}).Count(&userCount).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}

	if userCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		admin := user.User{
			Email:     "admin@example.com",
			Password:  string(hash),
			FirstName: "Admin",
			IsAdmin:   true,
		}
		if err := m.db.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to seed admin user: %w", err)
		}
		log.Println("Seeded admin user: admin@example.com")
	}

	var productCount int64
	if err := m.db.Model(&product.Product{}).Count(&productCount).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}

	if productCount == 0 {
		samples := []product.Product{
			{Name: "Mechanical keyboard", Price: decimal.NewFromFloat(19990.00)},
			{Name: "Wireless mouse", Price: decimal.NewFromFloat(9990.00)},
			{Name: "USB-C hub", Price: decimal.NewFromFloat(14990.00)},
		}
		if err := m.db.Create(&samples).Error; err != nil {
			return fmt.Errorf("failed to seed products: %w", err)
		}
		log.Printf("Seeded %d sample products", len(samples))
	}

	log.Println("✅ Data seeding completed")
	return nil
}
