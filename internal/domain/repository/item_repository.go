package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/kmutua/dukabook-api/internal/domain/entity"
	"github.com/kmutua/dukabook-api/pkg/pagination"
)

// ItemRepository defines the interface for inventory item data access
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Item, error)
	List(ctx context.Context, params *pagination.PaginationParams) ([]*entity.Item, int64, error)
	ListLowStock(ctx context.Context) ([]*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	// AddQuantity increases stock by amount in a single guarded update.
	AddQuantity(ctx context.Context, id uuid.UUID, amount int) error
	// RemoveQuantity decreases stock by amount only when at least that much
	// is on hand; returns ErrInsufficientStock otherwise.
	RemoveQuantity(ctx context.Context, id uuid.UUID, amount int) error
}
