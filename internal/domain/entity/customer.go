package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer represents a customer of one shop. At most one customer exists per
// (shop, normalized name); NameKey holds the normalized form and backs the
// uniqueness constraint the find-or-create contract relies on.
type Customer struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ShopID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_customers_shop_name_key" json:"shop_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	NameKey   string         `gorm:"size:255;not null;uniqueIndex:idx_customers_shop_name_key" json:"-"`
	Phone     *string        `gorm:"size:50" json:"phone,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Shop         Shop          `gorm:"foreignKey:ShopID" json:"-"`
	Transactions []Transaction `gorm:"foreignKey:CustomerID" json:"-"`
	Quotations   []Quotation   `gorm:"foreignKey:CustomerID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
