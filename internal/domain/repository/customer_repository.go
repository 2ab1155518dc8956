package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/kmutua/dukabook-api/internal/domain/entity"
	"github.com/kmutua/dukabook-api/pkg/pagination"
)

// CustomerRepository defines the interface for customer data access
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	GetByNameKey(ctx context.Context, nameKey string) (*entity.Customer, error)
	// FindOrCreate returns the existing customer for the normalized name in
	// the current shop scope, creating it first if absent. The boolean
	// reports whether a new row was created.
	FindOrCreate(ctx context.Context, customer *entity.Customer) (*entity.Customer, bool, error)
	List(ctx context.Context, params *pagination.PaginationParams) ([]*entity.Customer, int64, error)
	Search(ctx context.Context, query string, limit int) ([]*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
}
