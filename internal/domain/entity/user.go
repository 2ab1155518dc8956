package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/kmutua/dukabook-api/internal/domain/enum"
	"gorm.io/gorm"
)

// User represents a staff account. A scoped user belongs to exactly one shop;
// a privileged user has no home shop and selects one per request.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ShopID    *uuid.UUID     `gorm:"type:uuid;index" json:"shop_id,omitempty"`
	FirstName string         `gorm:"size:255;not null" json:"first_name"`
	LastName  string         `gorm:"size:255" json:"last_name"`
	Email     string         `gorm:"size:255;unique;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      enum.Role      `gorm:"size:50;not null;default:'scoped'" json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Shop *Shop `gorm:"foreignKey:ShopID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsPrivileged reports whether the user holds the cross-shop role
func (u *User) IsPrivileged() bool {
	return u.Role == enum.RolePrivileged
}
