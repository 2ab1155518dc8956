package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kmutua/dukabook-api/internal/domain/entity"
	"github.com/kmutua/dukabook-api/pkg/pagination"
)

// TransactionFilter narrows transaction listings
type TransactionFilter struct {
	CustomerID *uuid.UUID
	Type       *string
	DateFrom   *time.Time
	DateTo     *time.Time
}

// TransactionRepository defines the interface for transaction data access
type TransactionRepository interface {
	Create(ctx context.Context, transaction *entity.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
	List(ctx context.Context, params *pagination.PaginationParams, filter TransactionFilter) ([]*entity.Transaction, int64, error)
	ListDue(ctx context.Context, asOf time.Time, params *pagination.PaginationParams) ([]*entity.Transaction, int64, error)
	Update(ctx context.Context, transaction *entity.Transaction) error
	Delete(ctx context.Context, id uuid.UUID) error
}
