package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/kmutua/dukabook-api/internal/domain/entity"
	"github.com/kmutua/dukabook-api/pkg/pagination"
)

// QuotationRepository defines the interface for quotation data access
type QuotationRepository interface {
	// Create persists the quotation together with its lines in one
	// transaction.
	Create(ctx context.Context, quotation *entity.Quotation) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Quotation, error)
	GetByReference(ctx context.Context, reference string) (*entity.Quotation, error)
	List(ctx context.Context, params *pagination.PaginationParams) ([]*entity.Quotation, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
