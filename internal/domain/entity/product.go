package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is the shop-scoped product master: the priced catalogue entry that
// quotation lines and inventory items reference.
type Product struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ShopID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"shop_id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Category    string         `gorm:"size:100" json:"category"`
	CostPrice   float64        `gorm:"type:decimal(15,2);default:0" json:"cost_price"`
	RetailPrice float64        `gorm:"type:decimal(15,2);default:0" json:"retail_price"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Shop  Shop   `gorm:"foreignKey:ShopID" json:"-"`
	Items []Item `gorm:"foreignKey:ProductID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// Item is a stocked instance of a product in one shop. Quantity is only ever
// mutated through the bounded add/remove adjustment.
type Item struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ShopID             uuid.UUID      `gorm:"type:uuid;not null;index" json:"shop_id"`
	ProductID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity           int            `gorm:"not null;default:0" json:"quantity"`
	QuantityAlert      int            `gorm:"default:0" json:"quantity_alert"`
	ColorCode          *string        `gorm:"size:50" json:"color_code,omitempty"`
	Category           string         `gorm:"size:100" json:"category"`
	DiscountPercentage float64        `gorm:"type:decimal(5,2);default:0" json:"discount_percentage"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Shop    Shop    `gorm:"foreignKey:ShopID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new item
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Item model
func (Item) TableName() string {
	return "items"
}
