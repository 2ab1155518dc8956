package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Quotation is a priced document offered to a customer. The total and every
// line's sale price are derived server-side; none of them are authored.
type Quotation struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ShopID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"shop_id"`
	CustomerID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"customer_id"`
	Reference   string         `gorm:"size:100;unique;not null" json:"reference"`
	TotalAmount float64        `gorm:"type:decimal(15,2);default:0" json:"total_amount"`
	DocumentURL string         `gorm:"size:512" json:"document_url"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Shop     Shop            `gorm:"foreignKey:ShopID" json:"-"`
	Customer *Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Lines    []QuotationLine `gorm:"foreignKey:QuotationID" json:"lines,omitempty"`
}

// BeforeCreate generates a UUID before creating a new quotation
func (q *Quotation) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Quotation model
func (Quotation) TableName() string {
	return "quotations"
}

// QuotationLine is one priced line item of a quotation. SalePrice and
// LineTotal are recomputed from retail price and discount on write.
type QuotationLine struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	QuotationID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"quotation_id"`
	ProductID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName        string         `gorm:"size:255" json:"product_name"`
	Quantity           int            `gorm:"not null" json:"quantity"`
	CostPrice          float64        `gorm:"type:decimal(15,2);not null" json:"cost_price"`
	RetailPrice        float64        `gorm:"type:decimal(15,2);not null" json:"retail_price"`
	DiscountPercentage float64        `gorm:"type:decimal(5,2);default:0" json:"discount_percentage"`
	SalePrice          float64        `gorm:"type:decimal(15,2);not null" json:"sale_price"`
	LineTotal          float64        `gorm:"type:decimal(15,2);not null" json:"line_total"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Quotation Quotation `gorm:"foreignKey:QuotationID" json:"-"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new quotation line
func (l *QuotationLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the QuotationLine model
func (QuotationLine) TableName() string {
	return "quotation_lines"
}
