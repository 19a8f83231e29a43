// internal/domain/client/entity.go
package client

// Client represents a customer a sale is made to
type Client struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"not null;size:120" json:"name"`
	Email string `gorm:"size:255" json:"email"`
	Phone string `gorm:"size:20" json:"phone"`
}

// TableName overrides the table name
func (Client) TableName() string {
	return "clients"
}
