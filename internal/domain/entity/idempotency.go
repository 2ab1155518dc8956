package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IdempotencyKey stores the captured response of a completed mutating request
// so that a retry with the same key replays it instead of re-executing.
type IdempotencyKey struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Key          string         `gorm:"size:255;unique;not null" json:"key"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	RequestPath  string         `gorm:"size:512;not null" json:"request_path"`
	StatusCode   int            `gorm:"not null" json:"status_code"`
	ResponseBody string         `gorm:"type:text" json:"response_body"`
	ExpiresAt    time.Time      `gorm:"not null;index" json:"expires_at"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new idempotency key
func (k *IdempotencyKey) BeforeCreate(tx *gorm.DB) error {
	if k.ID == uuid.Nil {
		k.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the IdempotencyKey model
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired reports whether the stored response is past its retention window
func (k *IdempotencyKey) IsExpired() bool {
	return time.Now().After(k.ExpiresAt)
}
