package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/kmutua/dukabook-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Transaction is one ledger entry: money owed to the shop (receivable) or by
// the shop (payable). Exactly one of Payable/Receivable carries the total,
// matching Type; the other is zero.
type Transaction struct {
	ID            uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	ShopID        uuid.UUID            `gorm:"type:uuid;not null;index" json:"shop_id"`
	CustomerID    uuid.UUID            `gorm:"type:uuid;not null;index" json:"customer_id"`
	Type          enum.TransactionType `gorm:"size:20;not null" json:"type"`
	TotalAmount   float64              `gorm:"type:decimal(15,2);not null" json:"total_amount"`
	Payable       float64              `gorm:"type:decimal(15,2);default:0" json:"payable"`
	Receivable    float64              `gorm:"type:decimal(15,2);default:0" json:"receivable"`
	Category      *string              `gorm:"size:100" json:"category,omitempty"`
	PaymentMethod enum.PaymentMethod   `gorm:"size:50;not null" json:"payment_method"`
	Description   *string              `gorm:"type:text" json:"description,omitempty"`
	Date          time.Time            `gorm:"type:date;not null" json:"date"`
	DueDate       *time.Time           `gorm:"type:date" json:"due_date,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
	DeletedAt     gorm.DeletedAt       `gorm:"index" json:"-"`

	// Relationships
	Shop     Shop      `gorm:"foreignKey:ShopID" json:"-"`
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

// BeforeCreate generates a UUID before creating a new transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}
